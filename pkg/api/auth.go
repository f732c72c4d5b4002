package api

import (
	"context"
	"fmt"
	"net/http"
)

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Token       string `json:"token,omitempty"`
	TokenType   string `json:"token_type,omitempty"`
	Role        string `json:"role,omitempty"`
}

// BearerToken returns whichever token field the backend populated.
func (r LoginResponse) BearerToken() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}
	return r.Token
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: RouteLogin, body: creds}, &out); err != nil {
		return nil, err
	}
	if out.BearerToken() == "" {
		return nil, fmt.Errorf("login response carried no token")
	}
	return &out, nil
}
