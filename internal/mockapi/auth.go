package mockapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type claimsKey struct{}

// tokenClaims are the claims carried by issued tokens.
type tokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func withClaims(ctx context.Context, c *tokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

func claimsFrom(r *http.Request) *tokenClaims {
	c, _ := r.Context().Value(claimsKey{}).(*tokenClaims)
	return c
}

func (s *Server) issue(u *user) (string, error) {
	id := strconv.FormatInt(u.ID, 10)
	now := time.Now()
	claims := tokenClaims{
		UserID: id,
		Email:  u.Email,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) authenticate(r *http.Request) (*tokenClaims, error) {
	header := r.Header.Get("Authorization")
	raw := strings.TrimPrefix(header, "Bearer ")
	if header == "" || raw == header {
		return nil, errors.New("not authenticated")
	}

	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func requireRole(w http.ResponseWriter, r *http.Request, roles ...string) (*tokenClaims, bool) {
	c := claimsFrom(r)
	if c == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return nil, false
	}
	for _, role := range roles {
		if c.Role == role {
			return c, true
		}
	}
	writeError(w, http.StatusForbidden, "Not permitted for role "+c.Role)
	return nil, false
}
