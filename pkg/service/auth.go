package service

import (
	"context"

	"github.com/Siddaarth-Babu/mooc/pkg/api"
	"github.com/Siddaarth-Babu/mooc/pkg/session"
)

type loginInput struct {
	Email    string `json:"email" validate:"notblank,email"`
	Password string `json:"password" validate:"notblank"`
}

// Login exchanges credentials for a token and makes it the active session.
func (s *Service) Login(ctx context.Context, email, password string) (*session.Session, error) {
	if err := validateInput(loginInput{Email: email, Password: password}); err != nil {
		return nil, err
	}
	resp, err := s.api.Login(ctx, api.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	sess := session.FromToken(resp.BearerToken())
	if sess.Role == "" {
		sess.Role = session.ParseRole(resp.Role)
	}
	if sess.Email == "" {
		sess.Email = email
	}
	if err := s.sessions.Set(sess); err != nil {
		return nil, err
	}
	s.log.WithField("role", sess.Role).Info("logged in")
	return sess, nil
}

// Logout clears the active session.
func (s *Service) Logout() error {
	return s.sessions.Clear()
}
