package authsdk

import (
	"net/http"
	"strings"
	"time"
)

// Client is a client for the gatekeeper authentication service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Scheme prefixes the token in the Authorization header.
	Scheme string
}

// NewClient creates a client with a 10 second request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Scheme: "Bearer ",
	}
}
