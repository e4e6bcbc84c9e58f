package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/banco/cliente-api/internal/api/metrics"
	"github.com/banco/cliente-api/internal/core/domain"
	"github.com/banco/cliente-api/internal/core/ports"
)

// CustomerHandler handles HTTP requests for the client directory.
type CustomerHandler struct {
	service ports.CustomerService
}

func NewCustomerHandler(service ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// Create handles POST /api/clientes (ADMIN only).
//
// @Summary      Create a customer
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      customerRequest  true  "Customer details"
// @Success      201   {object}  domain.Customer
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/clientes [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), toCreateInput(req))
	if err != nil {
		return err
	}

	metrics.CustomersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, created)
}

// GetAll handles GET /api/clientes.
//
// @Summary      List all customers
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Customer
// @Failure      401  {object}  errorResponse
// @Router       /api/clientes [get]
func (h *CustomerHandler) GetAll(c echo.Context) error {
	customers, err := h.service.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	if customers == nil {
		customers = []*domain.Customer{}
	}
	return c.JSON(http.StatusOK, customers)
}

// GetByNationalID handles GET /api/clientes/:dni.
//
// @Summary      Get a customer by national ID
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        dni  path      string  true  "National ID"
// @Success      200  {object}  domain.Customer
// @Failure      404  {object}  errorResponse
// @Router       /api/clientes/{dni} [get]
func (h *CustomerHandler) GetByNationalID(c echo.Context) error {
	customer, err := h.service.GetByNationalID(c.Request().Context(), c.Param("dni"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// UpdatePhone handles PATCH /api/clientes/:dni/telefono. The new phone travels
// in the request body; the body's national ID must match the path.
//
// @Summary      Update a customer's phone
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        dni   path      string              true  "National ID"
// @Param        body  body      phoneUpdateRequest  true  "New phone"
// @Success      200   {object}  domain.Customer
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/clientes/{dni}/telefono [patch]
func (h *CustomerHandler) UpdatePhone(c echo.Context) error {
	var req phoneUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.NationalID != c.Param("dni") {
		return domain.ErrNationalIDMismatch
	}

	updated, err := h.service.UpdatePhone(c.Request().Context(), req.NationalID, req.Phone)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// GetByProductCode handles GET /api/clientes/por-producto/:codigo. An empty
// result is a valid 200 with an empty list.
//
// @Summary      List customers holding a banking product
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        codigo  path      string  true  "Product code (e.g. CJAHRR)"
// @Success      200     {array}   domain.Customer
// @Failure      401     {object}  errorResponse
// @Router       /api/clientes/por-producto/{codigo} [get]
func (h *CustomerHandler) GetByProductCode(c echo.Context) error {
	customers, err := h.service.GetByProductCode(c.Request().Context(), c.Param("codigo"))
	if err != nil {
		return err
	}
	if customers == nil {
		customers = []*domain.Customer{}
	}
	return c.JSON(http.StatusOK, customers)
}

// Delete handles DELETE /api/clientes/:dni (ADMIN only).
//
// @Summary      Delete a customer
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        dni  path      string  true  "National ID"
// @Success      200  {object}  deleteResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/clientes/{dni} [delete]
func (h *CustomerHandler) Delete(c echo.Context) error {
	dni := c.Param("dni")
	if err := h.service.Delete(c.Request().Context(), dni); err != nil {
		return err
	}

	metrics.CustomersDeletedTotal.Inc()
	return c.JSON(http.StatusOK, deleteResponse{
		Message:    "customer deleted successfully",
		NationalID: dni,
	})
}

// CreateBatch handles POST /api/clientes/batch (ADMIN only). Items are
// processed independently; the response reports a per-item outcome.
//
// @Summary      Create multiple customers
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []customerRequest  true  "Customers"
// @Success      200   {array}   ports.BatchItemResult
// @Failure      400   {object}  errorResponse
// @Router       /api/clientes/batch [post]
func (h *CustomerHandler) CreateBatch(c echo.Context) error {
	var reqs []customerRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	for _, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	inputs := make([]ports.CreateCustomerInput, 0, len(reqs))
	for _, req := range reqs {
		inputs = append(inputs, toCreateInput(req))
	}

	results, err := h.service.CreateBatch(c.Request().Context(), inputs)
	if err != nil {
		return err
	}
	countBatch("create", results)
	return c.JSON(http.StatusOK, results)
}

// UpdatePhoneBatch handles PATCH /api/clientes/telefono/batch.
//
// @Summary      Update phones for multiple customers
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []phoneUpdateRequest  true  "Phone updates"
// @Success      200   {array}   ports.BatchItemResult
// @Failure      400   {object}  errorResponse
// @Router       /api/clientes/telefono/batch [patch]
func (h *CustomerHandler) UpdatePhoneBatch(c echo.Context) error {
	var reqs []phoneUpdateRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	for _, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	updates := make([]ports.PhoneUpdateInput, 0, len(reqs))
	for _, req := range reqs {
		updates = append(updates, ports.PhoneUpdateInput{NationalID: req.NationalID, Phone: req.Phone})
	}

	results, err := h.service.UpdatePhoneBatch(c.Request().Context(), updates)
	if err != nil {
		return err
	}
	countBatch("update_phone", results)
	return c.JSON(http.StatusOK, results)
}

// DeleteBatch handles DELETE /api/clientes/batch (ADMIN only). The body is a
// plain list of national IDs.
//
// @Summary      Delete multiple customers
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []string  true  "National IDs"
// @Success      200   {array}   ports.BatchItemResult
// @Failure      400   {object}  errorResponse
// @Router       /api/clientes/batch [delete]
func (h *CustomerHandler) DeleteBatch(c echo.Context) error {
	var nationalIDs []string
	if err := c.Bind(&nationalIDs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	results, err := h.service.DeleteBatch(c.Request().Context(), nationalIDs)
	if err != nil {
		return err
	}
	countBatch("delete", results)
	return c.JSON(http.StatusOK, results)
}

func toCreateInput(req customerRequest) ports.CreateCustomerInput {
	return ports.CreateCustomerInput{
		NationalID:   req.NationalID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Street:       req.Street,
		Number:       req.Number,
		PostalCode:   req.PostalCode,
		Phone:        req.Phone,
		Mobile:       req.Mobile,
		ProductCodes: req.ProductCodes,
	}
}

func countBatch(operation string, results []ports.BatchItemResult) {
	for _, r := range results {
		result := "ok"
		if r.Status == ports.BatchError {
			result = "error"
		}
		metrics.BatchItemsTotal.WithLabelValues(operation, result).Inc()
	}
}
