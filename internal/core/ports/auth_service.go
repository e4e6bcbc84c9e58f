package ports

import (
	"context"

	"github.com/banco/cliente-api/internal/core/domain"
)

// AuthService implements signup and signin.
type AuthService interface {
	// Register creates a new account. roleNames uses the wire aliases
	// ("admin", "mod", anything else mapping to USER); an empty list
	// assigns the default USER role.
	Register(ctx context.Context, username, password string, roleNames []string) (*domain.User, error)
	// Login verifies credentials and returns a signed bearer token together
	// with the account. All credential failures surface as
	// domain.ErrInvalidCredentials without detail about which check failed.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}

// TokenService issues and validates signed, time-limited bearer tokens.
// Validation is pure computation: purely a function of the token, the server
// key, and the clock.
type TokenService interface {
	Issue(username string) (string, error)
	// Validate returns the embedded subject, or an error for malformed,
	// tampered, expired, or subject-less tokens.
	Validate(token string) (string, error)
}

// LoginLimiter tracks failed signin attempts per username so the auth service
// can refuse further tries within the configured window.
type LoginLimiter interface {
	TooManyFailures(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
