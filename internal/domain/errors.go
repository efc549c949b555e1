package domain

import "errors"

var (
	// ErrInvalidPayload means required fields were empty or malformed.
	ErrInvalidPayload = errors.New("invalid payload")
	// ErrServiceUnavailable means storage is not configured or unreachable.
	ErrServiceUnavailable = errors.New("service unavailable")
	// ErrNotFound means the requested share id is unknown.
	ErrNotFound = errors.New("not found")
)
