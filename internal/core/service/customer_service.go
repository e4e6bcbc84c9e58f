package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/banco/cliente-api/internal/core/domain"
	"github.com/banco/cliente-api/internal/core/ports"
)

// CustomerService enforces the client directory invariants: national ID
// uniqueness, product-association validity, and not-found semantics.
type CustomerService struct {
	customers ports.CustomerRepository
	products  ports.ProductRepository
	logger    zerolog.Logger
}

func NewCustomerService(customers ports.CustomerRepository, products ports.ProductRepository, logger zerolog.Logger) *CustomerService {
	return &CustomerService{customers: customers, products: products, logger: logger}
}

// Create persists a new customer together with its product associations.
// All product codes must resolve against the catalog before anything is
// written; an unknown code fails the whole operation. A duplicate national ID
// is rejected whether it is caught by the upfront check or by the storage
// layer's unique constraint during a concurrent race.
func (s *CustomerService) Create(ctx context.Context, input ports.CreateCustomerInput) (*domain.Customer, error) {
	codes, err := s.resolveProductCodes(ctx, input.ProductCodes)
	if err != nil {
		return nil, err
	}

	if _, err := s.customers.FindByNationalID(ctx, input.NationalID); err == nil {
		return nil, domain.ErrCustomerExists
	}

	customer := &domain.Customer{
		NationalID:   input.NationalID,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Street:       input.Street,
		Number:       input.Number,
		PostalCode:   input.PostalCode,
		Phone:        input.Phone,
		Mobile:       input.Mobile,
		ProductCodes: codes,
	}

	created, err := s.customers.Create(ctx, customer)
	if err != nil {
		s.logger.Error().Err(err).Str("national_id", input.NationalID).Msg("customer create failed")
		return nil, err
	}

	s.logger.Info().Str("national_id", created.NationalID).Strs("products", created.ProductCodes).Msg("customer created")
	return created, nil
}

func (s *CustomerService) GetAll(ctx context.Context) ([]*domain.Customer, error) {
	return s.customers.FindAll(ctx)
}

func (s *CustomerService) GetByNationalID(ctx context.Context, nationalID string) (*domain.Customer, error) {
	return s.customers.FindByNationalID(ctx, nationalID)
}

// UpdatePhone mutates only the phone field of an existing customer.
func (s *CustomerService) UpdatePhone(ctx context.Context, nationalID, phone string) (*domain.Customer, error) {
	updated, err := s.customers.UpdatePhone(ctx, nationalID, phone)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("national_id", nationalID).Msg("customer phone updated")
	return updated, nil
}

// GetByProductCode returns every customer associated with the code. An empty
// result is a valid answer, not an error.
func (s *CustomerService) GetByProductCode(ctx context.Context, code string) ([]*domain.Customer, error) {
	return s.customers.FindByProductCode(ctx, code)
}

// Delete removes the customer and its associations. The referenced banking
// products are independent reference data and survive.
func (s *CustomerService) Delete(ctx context.Context, nationalID string) error {
	if err := s.customers.Delete(ctx, nationalID); err != nil {
		return err
	}
	s.logger.Info().Str("national_id", nationalID).Msg("customer deleted")
	return nil
}

// CreateBatch processes each item independently and reports a per-item
// outcome; one failing item does not abort the rest.
func (s *CustomerService) CreateBatch(ctx context.Context, inputs []ports.CreateCustomerInput) ([]ports.BatchItemResult, error) {
	if len(inputs) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	results := make([]ports.BatchItemResult, 0, len(inputs))
	for _, input := range inputs {
		created, err := s.Create(ctx, input)
		if err != nil {
			results = append(results, ports.BatchItemResult{NationalID: input.NationalID, Status: ports.BatchError, Error: err.Error()})
			continue
		}
		results = append(results, ports.BatchItemResult{NationalID: created.NationalID, Status: ports.BatchCreated, Customer: created})
	}
	return results, nil
}

// UpdatePhoneBatch applies the same per-item policy as CreateBatch.
func (s *CustomerService) UpdatePhoneBatch(ctx context.Context, updates []ports.PhoneUpdateInput) ([]ports.BatchItemResult, error) {
	if len(updates) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	results := make([]ports.BatchItemResult, 0, len(updates))
	for _, u := range updates {
		updated, err := s.UpdatePhone(ctx, u.NationalID, u.Phone)
		if err != nil {
			results = append(results, ports.BatchItemResult{NationalID: u.NationalID, Status: ports.BatchError, Error: err.Error()})
			continue
		}
		results = append(results, ports.BatchItemResult{NationalID: u.NationalID, Status: ports.BatchUpdated, Customer: updated})
	}
	return results, nil
}

// DeleteBatch applies the same per-item policy as CreateBatch.
func (s *CustomerService) DeleteBatch(ctx context.Context, nationalIDs []string) ([]ports.BatchItemResult, error) {
	if len(nationalIDs) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	results := make([]ports.BatchItemResult, 0, len(nationalIDs))
	for _, id := range nationalIDs {
		if err := s.Delete(ctx, id); err != nil {
			results = append(results, ports.BatchItemResult{NationalID: id, Status: ports.BatchError, Error: err.Error()})
			continue
		}
		results = append(results, ports.BatchItemResult{NationalID: id, Status: ports.BatchDeleted})
	}
	return results, nil
}

// resolveProductCodes checks every code against the catalog and returns the
// deduplicated set. Any unknown code fails the whole resolution.
func (s *CustomerService) resolveProductCodes(ctx context.Context, codes []string) ([]string, error) {
	if len(codes) == 0 {
		return nil, domain.ErrNoProducts
	}

	unique := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		unique = append(unique, code)
	}

	found, err := s.products.FindByCodes(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(found) != len(unique) {
		known := make(map[string]struct{}, len(found))
		for _, p := range found {
			known[p.Code] = struct{}{}
		}
		for _, code := range unique {
			if _, ok := known[code]; !ok {
				return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, code)
			}
		}
	}
	return unique, nil
}
