package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrNotFound indicates the requested title does not exist
	ErrNotFound = errors.New("title not found")

	// ErrUnauthorized indicates the API key or session is invalid
	ErrUnauthorized = errors.New("api credentials are invalid")

	// ErrRateLimited indicates the API rejected the request for rate limiting
	ErrRateLimited = errors.New("api rate limit exceeded")
)
