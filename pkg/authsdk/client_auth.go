package authsdk

import (
	"context"
	"net/http"
)

// Register creates a new ROLE_USER account.
func (c *Client) Register(ctx context.Context, username, password string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return err
	}

	var msg MessageResponse
	return decodeJSON(resp, &msg, http.StatusOK)
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", "", LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
