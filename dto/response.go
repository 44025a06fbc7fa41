// Package dto holds the request and response shapes of the HTTP API.
package dto

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
	// RetryAfterSeconds is set on rate-limit rejections.
	RetryAfterSeconds int `json:"retry_after_seconds,omitempty"`
}

// StatusResponse is a bare acknowledgment body.
type StatusResponse struct {
	Status string `json:"status"`
}
