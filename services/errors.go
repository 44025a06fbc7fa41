// Package services holds the application logic between the HTTP
// handlers and the repositories. Services validate input, enforce
// ownership and quotas, and return *Error values the handlers map
// straight onto HTTP responses.
package services

import (
	"net/http"
	"time"
)

// Error is the service-level failure type. StatusCode and ErrorCode are
// what the handler serializes; Cause carries the underlying error for
// logging only and is never sent to the client.
type Error struct {
	StatusCode int
	ErrorCode  string
	Cause      error
	// RetryAfter is set on rate-limit rejections.
	RetryAfter time.Duration
}

func (e *Error) Error() string {
	if e == nil {
		return "service_failed"
	}
	return e.ErrorCode
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func Validation(code string) *Error {
	return &Error{StatusCode: http.StatusBadRequest, ErrorCode: code}
}

func Unauthorized(code string) *Error {
	return &Error{StatusCode: http.StatusUnauthorized, ErrorCode: code}
}

func NotFound(code string) *Error {
	return &Error{StatusCode: http.StatusNotFound, ErrorCode: code}
}

func RateLimited(retryAfter time.Duration) *Error {
	return &Error{
		StatusCode: http.StatusTooManyRequests,
		ErrorCode:  "rate_limited",
		RetryAfter: retryAfter,
	}
}

func Unavailable(code string, cause error) *Error {
	return &Error{StatusCode: http.StatusServiceUnavailable, ErrorCode: code, Cause: cause}
}

func Internal(code string, cause error) *Error {
	return &Error{StatusCode: http.StatusInternalServerError, ErrorCode: code, Cause: cause}
}
