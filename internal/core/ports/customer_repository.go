package ports

import (
	"context"

	"github.com/banco/cliente-api/internal/core/domain"
)

// CustomerRepository defines persistence operations for customers.
// Create must surface domain.ErrCustomerExists when the national ID is already
// taken, including when the storage layer's unique constraint arbitrates a
// race between two concurrent creates.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	FindAll(ctx context.Context) ([]*domain.Customer, error)
	FindByNationalID(ctx context.Context, nationalID string) (*domain.Customer, error)
	// FindByProductCode returns every customer associated with the given
	// product code; an empty slice when none match.
	FindByProductCode(ctx context.Context, code string) ([]*domain.Customer, error)
	// UpdatePhone mutates only the phone field and returns the updated
	// customer, or domain.ErrCustomerNotFound.
	UpdatePhone(ctx context.Context, nationalID, phone string) (*domain.Customer, error)
	// Delete removes the customer and its product associations. The
	// referenced products themselves are untouched.
	Delete(ctx context.Context, nationalID string) error
}

// ProductRepository provides read-only lookup of the banking product catalog.
type ProductRepository interface {
	FindByCode(ctx context.Context, code string) (*domain.BankingProduct, error)
	// FindByCodes resolves a set of codes; the result may be shorter than the
	// input when some codes do not exist.
	FindByCodes(ctx context.Context, codes []string) ([]*domain.BankingProduct, error)
}
