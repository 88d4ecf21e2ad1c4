package api

import (
	"context"
	"fmt"
	"net/http"
)

type tokenResponse struct {
	Token string `json:"token"`
}

// Login authenticates against the role-appropriate endpoint and returns the
// issued bearer credential.
func (c *HTTPClient) Login(ctx context.Context, role Role, email, password string) (string, error) {
	in := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var out tokenResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/auth/%s/login", role), nil, in, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Register creates an account and returns the issued bearer credential.
func (c *HTTPClient) Register(ctx context.Context, role Role, req RegisterRequest) (string, error) {
	var out tokenResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/auth/%s/register", role), nil, req, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}
