package shared

import "errors"

// Sentinel errors shared across modules. Repositories return these so
// handlers can map them to HTTP status codes without importing pgx.
var (
	// ErrNotFound signals that the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials covers every login failure, inactive accounts included.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
