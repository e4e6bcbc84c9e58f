package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/banco/cliente-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/clientes/12345678", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return rec.Code, resp
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"customer not found", domain.ErrCustomerNotFound, http.StatusNotFound},
		{"customer exists", domain.ErrCustomerExists, http.StatusConflict},
		{"product not found", domain.ErrProductNotFound, http.StatusBadRequest},
		{"no products", domain.ErrNoProducts, http.StatusBadRequest},
		{"empty batch", domain.ErrEmptyBatch, http.StatusBadRequest},
		{"national id mismatch", domain.ErrNationalIDMismatch, http.StatusBadRequest},
		{"user exists", domain.ErrUserExists, http.StatusBadRequest},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"too many attempts", domain.ErrTooManyAttempts, http.StatusTooManyRequests},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, resp := renderError(t, tc.err)
			if code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, code)
			}
			if resp.Status != tc.wantCode {
				t.Fatalf("envelope status %d does not match HTTP code %d", resp.Status, tc.wantCode)
			}
			if resp.Error != http.StatusText(tc.wantCode) {
				t.Fatalf("unexpected error field: %q", resp.Error)
			}
		})
	}
}

func TestErrorHandler_EnvelopeShape(t *testing.T) {
	code, resp := renderError(t, domain.ErrCustomerNotFound)
	if code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	if resp.Path != "/api/clientes/12345678" {
		t.Fatalf("unexpected path: %q", resp.Path)
	}
	if resp.Timestamp == "" {
		t.Fatalf("timestamp missing")
	}
	if resp.Message != domain.ErrCustomerNotFound.Error() {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestErrorHandler_CredentialFailuresAreUniform(t *testing.T) {
	_, invalid := renderError(t, domain.ErrInvalidCredentials)
	_, unauth := renderError(t, domain.ErrUnauthenticated)
	if invalid.Message != "invalid credentials" || unauth.Message != "invalid credentials" {
		t.Fatalf("credential failures must not reveal which check failed: %q vs %q",
			invalid.Message, unauth.Message)
	}
}

func TestErrorHandler_HTTPErrorPassthrough(t *testing.T) {
	code, resp := renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "authentication required"))
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if resp.Message != "authentication required" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestErrorHandler_UnknownErrorHidesDetail(t *testing.T) {
	code, resp := renderError(t, errors.New("dial tcp 10.0.0.5:27017: connection refused"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if resp.Message != "internal server error" {
		t.Fatalf("internal detail leaked: %q", resp.Message)
	}
}
