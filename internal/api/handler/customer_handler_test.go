package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/banco/cliente-api/internal/core/domain"
	"github.com/banco/cliente-api/internal/core/ports"
)

type stubCustomerService struct {
	createFn           func(ctx context.Context, input ports.CreateCustomerInput) (*domain.Customer, error)
	getAllFn           func(ctx context.Context) ([]*domain.Customer, error)
	getByNationalIDFn  func(ctx context.Context, nationalID string) (*domain.Customer, error)
	updatePhoneFn      func(ctx context.Context, nationalID, phone string) (*domain.Customer, error)
	getByProductCodeFn func(ctx context.Context, code string) ([]*domain.Customer, error)
	deleteFn           func(ctx context.Context, nationalID string) error
	createBatchFn      func(ctx context.Context, inputs []ports.CreateCustomerInput) ([]ports.BatchItemResult, error)
	updatePhoneBatchFn func(ctx context.Context, updates []ports.PhoneUpdateInput) ([]ports.BatchItemResult, error)
	deleteBatchFn      func(ctx context.Context, nationalIDs []string) ([]ports.BatchItemResult, error)
}

func (s *stubCustomerService) Create(ctx context.Context, input ports.CreateCustomerInput) (*domain.Customer, error) {
	return s.createFn(ctx, input)
}

func (s *stubCustomerService) GetAll(ctx context.Context) ([]*domain.Customer, error) {
	return s.getAllFn(ctx)
}

func (s *stubCustomerService) GetByNationalID(ctx context.Context, nationalID string) (*domain.Customer, error) {
	return s.getByNationalIDFn(ctx, nationalID)
}

func (s *stubCustomerService) UpdatePhone(ctx context.Context, nationalID, phone string) (*domain.Customer, error) {
	return s.updatePhoneFn(ctx, nationalID, phone)
}

func (s *stubCustomerService) GetByProductCode(ctx context.Context, code string) ([]*domain.Customer, error) {
	return s.getByProductCodeFn(ctx, code)
}

func (s *stubCustomerService) Delete(ctx context.Context, nationalID string) error {
	return s.deleteFn(ctx, nationalID)
}

func (s *stubCustomerService) CreateBatch(ctx context.Context, inputs []ports.CreateCustomerInput) ([]ports.BatchItemResult, error) {
	return s.createBatchFn(ctx, inputs)
}

func (s *stubCustomerService) UpdatePhoneBatch(ctx context.Context, updates []ports.PhoneUpdateInput) ([]ports.BatchItemResult, error) {
	return s.updatePhoneBatchFn(ctx, updates)
}

func (s *stubCustomerService) DeleteBatch(ctx context.Context, nationalIDs []string) ([]ports.BatchItemResult, error) {
	return s.deleteBatchFn(ctx, nationalIDs)
}

const validCustomerBody = `{
	"nationalId": "12345678",
	"firstName": "Juan",
	"lastName": "Perez",
	"street": "Calle Falsa",
	"number": 123,
	"postalCode": "1425",
	"mobile": "11-5555-1234",
	"productCodes": ["CA", "TC"]
}`

func TestCustomerCreate_Success(t *testing.T) {
	svc := &stubCustomerService{
		createFn: func(_ context.Context, input ports.CreateCustomerInput) (*domain.Customer, error) {
			if input.NationalID != "12345678" {
				t.Fatalf("unexpected national ID: %s", input.NationalID)
			}
			if len(input.ProductCodes) != 2 {
				t.Fatalf("unexpected product codes: %v", input.ProductCodes)
			}
			return &domain.Customer{ID: "1", NationalID: input.NationalID, FirstName: input.FirstName}, nil
		},
	}
	h := NewCustomerHandler(svc)

	c, rec := jsonContext(t, http.MethodPost, "/api/clientes", validCustomerBody)

	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var created domain.Customer
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.NationalID != "12345678" {
		t.Fatalf("unexpected body: %+v", created)
	}
}

func TestCustomerCreate_InvalidNationalID_Rejected(t *testing.T) {
	h := NewCustomerHandler(&stubCustomerService{
		createFn: func(context.Context, ports.CreateCustomerInput) (*domain.Customer, error) {
			t.Fatalf("service must not be called on validation failure")
			return nil, nil
		},
	})

	// Too short and non-numeric values both fail the national ID rules.
	for _, dni := range []string{"123", "12345678901", "ABCDEFGH"} {
		body := `{"nationalId":"` + dni + `","firstName":"Juan","lastName":"Perez","productCodes":["CA"]}`
		c, _ := jsonContext(t, http.MethodPost, "/api/clientes", body)

		err := h.Create(c)
		var httpErr *echo.HTTPError
		if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
			t.Fatalf("dni %q: expected 400, got %v", dni, err)
		}
	}
}

func TestCustomerCreate_BadMobileFormat_Rejected(t *testing.T) {
	h := NewCustomerHandler(&stubCustomerService{})

	body := `{"nationalId":"12345678","firstName":"Juan","lastName":"Perez","mobile":"abc!","productCodes":["CA"]}`
	c, _ := jsonContext(t, http.MethodPost, "/api/clientes", body)

	err := h.Create(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestCustomerGetAll_EmptyReturnsArray(t *testing.T) {
	h := NewCustomerHandler(&stubCustomerService{
		getAllFn: func(context.Context) ([]*domain.Customer, error) { return nil, nil },
	})

	c, rec := jsonContext(t, http.MethodGet, "/api/clientes", "")

	if err := h.GetAll(c); err != nil {
		t.Fatalf("get all: %v", err)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty JSON array, got %q", body)
	}
}

func TestCustomerGetByNationalID_NotFound_Propagates(t *testing.T) {
	h := NewCustomerHandler(&stubCustomerService{
		getByNationalIDFn: func(context.Context, string) (*domain.Customer, error) {
			return nil, domain.ErrCustomerNotFound
		},
	})

	c, _ := jsonContext(t, http.MethodGet, "/api/clientes/00000000", "")
	c.SetParamNames("dni")
	c.SetParamValues("00000000")

	if err := h.GetByNationalID(c); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestCustomerUpdatePhone_Success(t *testing.T) {
	h := NewCustomerHandler(&stubCustomerService{
		updatePhoneFn: func(_ context.Context, nationalID, phone string) (*domain.Customer, error) {
			return &domain.Customer{ID: "1", NationalID: nationalID, Phone: phone}, nil
		},
	})

	c, rec := jsonContext(t, http.MethodPatch, "/api/clientes/12345678/telefono",
		`{"nationalId":"12345678","phone":"9999999999"}`)
	c.SetParamNames("dni")
	c.SetParamValues("12345678")

	if err := h.UpdatePhone(c); err != nil {
		t.Fatalf("update phone: %v", err)
	}

	var updated domain.Customer
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Phone != "9999999999" {
		t.Fatalf("unexpected phone: %q", updated.Phone)
	}
}

func TestCustomerUpdatePhone_PathBodyMismatch(t *testing.T) {
	h := NewCustomerHandler(&stubCustomerService{
		updatePhoneFn: func(context.Context, string, string) (*domain.Customer, error) {
			t.Fatalf("service must not be called on mismatch")
			return nil, nil
		},
	})

	c, _ := jsonContext(t, http.MethodPatch, "/api/clientes/12345678/telefono",
		`{"nationalId":"87654321","phone":"9999999999"}`)
	c.SetParamNames("dni")
	c.SetParamValues("12345678")

	if err := h.UpdatePhone(c); !errors.Is(err, domain.ErrNationalIDMismatch) {
		t.Fatalf("expected ErrNationalIDMismatch, got %v", err)
	}
}

func TestCustomerGetByProductCode_EmptyReturnsArray(t *testing.T) {
	h := NewCustomerHandler(&stubCustomerService{
		getByProductCodeFn: func(_ context.Context, code string) ([]*domain.Customer, error) {
			if code != "CJAHRR" {
				t.Fatalf("unexpected code: %s", code)
			}
			return nil, nil
		},
	})

	c, rec := jsonContext(t, http.MethodGet, "/api/clientes/por-producto/CJAHRR", "")
	c.SetParamNames("codigo")
	c.SetParamValues("CJAHRR")

	if err := h.GetByProductCode(c); err != nil {
		t.Fatalf("get by product code: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty JSON array, got %q", body)
	}
}

func TestCustomerDelete_Success(t *testing.T) {
	h := NewCustomerHandler(&stubCustomerService{
		deleteFn: func(_ context.Context, nationalID string) error {
			if nationalID != "12345678" {
				t.Fatalf("unexpected national ID: %s", nationalID)
			}
			return nil
		},
	})

	c, rec := jsonContext(t, http.MethodDelete, "/api/clientes/12345678", "")
	c.SetParamNames("dni")
	c.SetParamValues("12345678")

	if err := h.Delete(c); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var resp deleteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.NationalID != "12345678" || resp.Message == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCustomerCreateBatch_PerItemResults(t *testing.T) {
	h := NewCustomerHandler(&stubCustomerService{
		createBatchFn: func(_ context.Context, inputs []ports.CreateCustomerInput) ([]ports.BatchItemResult, error) {
			if len(inputs) != 2 {
				t.Fatalf("expected 2 inputs, got %d", len(inputs))
			}
			return []ports.BatchItemResult{
				{NationalID: inputs[0].NationalID, Status: ports.BatchCreated},
				{NationalID: inputs[1].NationalID, Status: ports.BatchError, Error: "customer already exists"},
			}, nil
		},
	})

	body := `[
		{"nationalId":"12345678","firstName":"Juan","lastName":"Perez","productCodes":["CA"]},
		{"nationalId":"87654321","firstName":"Ana","lastName":"Gomez","productCodes":["TC"]}
	]`
	c, rec := jsonContext(t, http.MethodPost, "/api/clientes/batch", body)

	if err := h.CreateBatch(c); err != nil {
		t.Fatalf("create batch: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var results []ports.BatchItemResult
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Status != ports.BatchCreated || results[1].Status != ports.BatchError {
		t.Fatalf("unexpected statuses: %+v", results)
	}
}

func TestCustomerCreateBatch_InvalidItem_RejectsWhole(t *testing.T) {
	h := NewCustomerHandler(&stubCustomerService{
		createBatchFn: func(context.Context, []ports.CreateCustomerInput) ([]ports.BatchItemResult, error) {
			t.Fatalf("service must not be called when an item fails validation")
			return nil, nil
		},
	})

	body := `[{"nationalId":"12345678","firstName":"Juan","lastName":"Perez","productCodes":[]}]`
	c, _ := jsonContext(t, http.MethodPost, "/api/clientes/batch", body)

	err := h.CreateBatch(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestCustomerUpdatePhoneBatch_PerItemResults(t *testing.T) {
	h := NewCustomerHandler(&stubCustomerService{
		updatePhoneBatchFn: func(_ context.Context, updates []ports.PhoneUpdateInput) ([]ports.BatchItemResult, error) {
			results := make([]ports.BatchItemResult, 0, len(updates))
			for _, u := range updates {
				results = append(results, ports.BatchItemResult{NationalID: u.NationalID, Status: ports.BatchUpdated})
			}
			return results, nil
		},
	})

	body := `[
		{"nationalId":"12345678","phone":"111"},
		{"nationalId":"87654321","phone":"222"}
	]`
	c, rec := jsonContext(t, http.MethodPatch, "/api/clientes/telefono/batch", body)

	if err := h.UpdatePhoneBatch(c); err != nil {
		t.Fatalf("update phone batch: %v", err)
	}

	var results []ports.BatchItemResult
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(results) != 2 || results[0].Status != ports.BatchUpdated {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestCustomerDeleteBatch_PerItemResults(t *testing.T) {
	h := NewCustomerHandler(&stubCustomerService{
		deleteBatchFn: func(_ context.Context, nationalIDs []string) ([]ports.BatchItemResult, error) {
			if len(nationalIDs) != 3 {
				t.Fatalf("expected 3 IDs, got %d", len(nationalIDs))
			}
			return []ports.BatchItemResult{
				{NationalID: nationalIDs[0], Status: ports.BatchDeleted},
				{NationalID: nationalIDs[1], Status: ports.BatchDeleted},
				{NationalID: nationalIDs[2], Status: ports.BatchError, Error: "customer not found"},
			}, nil
		},
	})

	c, rec := jsonContext(t, http.MethodDelete, "/api/clientes/batch",
		`["12345678","87654321","00000000"]`)

	if err := h.DeleteBatch(c); err != nil {
		t.Fatalf("delete batch: %v", err)
	}

	var results []ports.BatchItemResult
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(results) != 3 || results[2].Status != ports.BatchError {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestCustomerDeleteBatch_EmptyList_Propagates(t *testing.T) {
	h := NewCustomerHandler(&stubCustomerService{
		deleteBatchFn: func(context.Context, []string) ([]ports.BatchItemResult, error) {
			return nil, domain.ErrEmptyBatch
		},
	})

	c, _ := jsonContext(t, http.MethodDelete, "/api/clientes/batch", `[]`)

	if err := h.DeleteBatch(c); !errors.Is(err, domain.ErrEmptyBatch) {
		t.Fatalf("expected ErrEmptyBatch, got %v", err)
	}
}
