package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrReadOnly indicates a mutating operation was attempted.
	// This driver never allows writes, whatever the provider's access role says.
	ErrReadOnly = errors.New("calendar source is read-only")

	// Authentication Errors.

	// ErrClientNotReady indicates the OAuth client is not configured.
	// Raised by the callback handler when client credentials are missing.
	ErrClientNotReady = errors.New("oauth client not ready")

	// ErrMissingCode indicates the callback was invoked without an authorization code.
	ErrMissingCode = errors.New("missing authorization code")

	// ErrNotAuthenticated indicates no valid token is installed.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrTokenRefreshFailed indicates the single token refresh attempt failed.
	ErrTokenRefreshFailed = errors.New("token refresh failed")
)

// OAuthProviderError is an error reported by the OAuth provider during the
// authorization code exchange, e.g. "invalid_grant" for a rejected code.
// The Code field carries the provider's error tag unmodified.
type OAuthProviderError struct {
	// Code is the provider's error tag (e.g. "invalid_grant").
	Code string
	// Description is the provider's human-readable detail, if any.
	Description string
}

// Error implements the error interface.
func (e *OAuthProviderError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("oauth provider error: %s", e.Code)
	}
	return fmt.Sprintf("oauth provider error: %s (%s)", e.Code, e.Description)
}

// AsProviderError unwraps err into an OAuthProviderError if possible.
func AsProviderError(err error) (*OAuthProviderError, bool) {
	var perr *OAuthProviderError
	if errors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}
