package domain

import "errors"

var (
	// Auth errors.
	ErrUserExists         = errors.New("username already in use")
	ErrUserNotFound       = errors.New("user not found")
	ErrRoleNotFound       = errors.New("role not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")

	// Customer directory errors.
	ErrCustomerExists     = errors.New("customer already exists")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrProductNotFound    = errors.New("banking product not found")
	ErrNoProducts         = errors.New("customer must have at least one banking product")
	ErrEmptyBatch         = errors.New("batch request must contain at least one item")
	ErrNationalIDMismatch = errors.New("national id in path and body do not match")
)
