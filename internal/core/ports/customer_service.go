package ports

import (
	"context"

	"github.com/banco/cliente-api/internal/core/domain"
)

// CreateCustomerInput carries all data needed to create a customer.
type CreateCustomerInput struct {
	NationalID   string
	FirstName    string
	LastName     string
	Street       string
	Number       *int
	PostalCode   string
	Phone        string
	Mobile       string
	ProductCodes []string
}

// PhoneUpdateInput identifies a customer and the new phone value.
type PhoneUpdateInput struct {
	NationalID string
	Phone      string
}

// Batch item outcome strings.
const (
	BatchCreated = "created"
	BatchUpdated = "updated"
	BatchDeleted = "deleted"
	BatchError   = "error"
)

// BatchItemResult reports the outcome of one item in a batch operation.
// Batch processing is per-item independent: one failing item never rolls back
// or aborts the others.
type BatchItemResult struct {
	NationalID string           `json:"nationalId"`
	Status     string           `json:"status"`
	Error      string           `json:"error,omitempty"`
	Customer   *domain.Customer `json:"customer,omitempty"`
}

// CustomerService defines the client directory use cases.
type CustomerService interface {
	Create(ctx context.Context, input CreateCustomerInput) (*domain.Customer, error)
	GetAll(ctx context.Context) ([]*domain.Customer, error)
	GetByNationalID(ctx context.Context, nationalID string) (*domain.Customer, error)
	UpdatePhone(ctx context.Context, nationalID, phone string) (*domain.Customer, error)
	GetByProductCode(ctx context.Context, code string) ([]*domain.Customer, error)
	Delete(ctx context.Context, nationalID string) error

	CreateBatch(ctx context.Context, inputs []CreateCustomerInput) ([]BatchItemResult, error)
	UpdatePhoneBatch(ctx context.Context, updates []PhoneUpdateInput) ([]BatchItemResult, error)
	DeleteBatch(ctx context.Context, nationalIDs []string) ([]BatchItemResult, error)
}
