package api

import (
	"context"
	"net/http"

	"github.com/covtrace/tracetriage/internal/model"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges credentials for a bearer token. The token is returned,
// not installed; the session store decides whether to keep it.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

// Register creates an account. Validation failures (duplicate email,
// weak password) come back as *model.ValidationError.
func (c *Client) Register(ctx context.Context, email, password, fullName string) error {
	return c.do(ctx, http.MethodPost, "/auth/register", nil,
		registerRequest{Email: email, Password: password, FullName: fullName}, nil)
}

// Me validates the current token and returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
