package authsdk

import (
	"context"
	"net/http"
)

// Hello calls the open greeting endpoint. token may be empty.
func (c *Client) Hello(ctx context.Context, token string) (string, error) {
	return c.message(ctx, "/api/test/hello", token)
}

// Me returns the caller as the server sees it. Requires a token.
func (c *Client) Me(ctx context.Context, token string) (*MeResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/test/me", token, nil)
	if err != nil {
		return nil, err
	}

	var me MeResponse
	if err := decodeJSON(resp, &me, http.StatusOK); err != nil {
		return nil, err
	}
	return &me, nil
}

// Admin calls the ADMIN-only endpoint.
func (c *Client) Admin(ctx context.Context, token string) (string, error) {
	return c.message(ctx, "/api/test/admin", token)
}

func (c *Client) message(ctx context.Context, path, token string) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return "", err
	}

	var msg MessageResponse
	if err := decodeJSON(resp, &msg, http.StatusOK); err != nil {
		return "", err
	}
	return msg.Message, nil
}
