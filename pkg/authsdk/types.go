package authsdk

// ErrorResponse is the JSON error envelope returned by every endpoint.
type ErrorResponse struct {
	// Error is the machine readable code (e.g. "invalid_token", "username_taken")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// RegisterRequest creates an account. Usernames are 3-32 characters of
// letters, digits, '.', '_' or '-'. Passwords are 1-72 bytes.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32,username"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginRequest exchanges credentials for a token.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	// Token is the signed JWT to send as "Authorization: Bearer <token>"
	Token string `json:"token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the token lifetime in seconds
	ExpiresIn int `json:"expires_in"`
}

// MeResponse describes the authenticated caller.
type MeResponse struct {
	Username    string   `json:"username"`
	Authorities []string `json:"authorities"`
}

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`

	// Signer indicates whether a signing secret is loaded
	Signer string `json:"signer"`

	// Schema is the applied migration version
	Schema string `json:"schema,omitempty"`
}
