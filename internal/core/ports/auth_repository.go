package ports

import (
	"context"

	"github.com/banco/cliente-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Create must surface domain.ErrUserExists when the username is already taken,
// including when the storage layer's unique constraint arbitrates a race.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// RoleRepository provides lookup of the seeded role reference rows.
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Role, error)
}
