// Package session holds the authenticated identity of the current user.
// It is created by login, cleared by logout and injected into whatever
// needs a credential.
package session

import (
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Role is the backend role claim.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
	RoleAnalyst    Role = "analyst"
)

// ParseRole normalizes a role string. Unknown roles are returned as is.
func ParseRole(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

// Session is a logged-in user.
type Session struct {
	Token     string    `json:"-" yaml:"-"`
	Role      Role      `json:"role" yaml:"role"`
	UserID    string    `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	Email     string    `json:"email,omitempty" yaml:"email,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

// Expired reports whether the token's expiry has passed. Tokens without an
// expiry never expire locally.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// FromToken builds a session from a bearer token, reading the role, user
// id, email and expiry claims without verifying the signature; the backend
// does that. A token that is not a JWT yields a session with only Token set.
func FromToken(token string) *Session {
	s := &Session{Token: token}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return s
	}
	s.Role = ParseRole(claimString(claims["role"]))
	s.UserID = claimString(claims["user_id"])
	if s.UserID == "" {
		s.UserID = claimString(claims["sub"])
	}
	s.Email = claimString(claims["email"])
	if exp := claimString(claims["exp"]); exp != "" {
		if secs, err := strconv.ParseFloat(exp, 64); err == nil {
			s.ExpiresAt = time.Unix(int64(secs), 0)
		}
	}
	return s
}

func claimString(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	}
	return ""
}

// Manager owns the current session and implements api.TokenSource.
type Manager struct {
	store *Store
	now   func() time.Time

	mu      sync.RWMutex
	current *Session
}

// NewManager loads any persisted session from store. A nil store keeps the
// session in memory only.
func NewManager(store *Store) (*Manager, error) {
	m := &Manager{store: store, now: time.Now}
	if store == nil {
		return m, nil
	}
	s, err := store.Load()
	if err != nil {
		return nil, err
	}
	m.current = s
	return m, nil
}

// Current returns the active session, or nil when logged out or expired.
func (m *Manager) Current() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil || m.current.Token == "" || m.current.Expired(m.now()) {
		return nil
	}
	cp := *m.current
	return &cp
}

// Token returns the bearer token of the active session.
func (m *Manager) Token() string {
	if s := m.Current(); s != nil {
		return s.Token
	}
	return ""
}

// Role returns the role of the active session, empty when logged out.
func (m *Manager) Role() Role {
	if s := m.Current(); s != nil {
		return s.Role
	}
	return ""
}

// Set makes s the active session and persists it.
func (m *Manager) Set(s *Session) error {
	if m.store != nil {
		if err := m.store.Save(s); err != nil {
			return err
		}
	}
	m.mu.Lock()
	cp := *s
	m.current = &cp
	m.mu.Unlock()
	return nil
}

// Clear logs out.
func (m *Manager) Clear() error {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
	if m.store != nil {
		return m.store.Clear()
	}
	return nil
}
