package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	partnerapp "github.com/mampirjaya/backoffice/internal/application/partner"
)

// PartnerService is the customer and supplier surface used by PartnerHandler
type PartnerService interface {
	CreateCustomer(ctx context.Context, req partnerapp.CreateCustomerRequest) (*partnerapp.CustomerResponse, error)
	GetCustomer(ctx context.Context, id uint64) (*partnerapp.CustomerResponse, error)
	ListCustomers(ctx context.Context, filter partnerapp.ListFilter) ([]partnerapp.CustomerResponse, int64, error)
	CreateSupplier(ctx context.Context, req partnerapp.CreateSupplierRequest) (*partnerapp.SupplierResponse, error)
	GetSupplier(ctx context.Context, id uint64) (*partnerapp.SupplierResponse, error)
	ListSuppliers(ctx context.Context, filter partnerapp.ListFilter) ([]partnerapp.SupplierResponse, int64, error)
}

// PartnerHandler serves /customers and /suppliers
type PartnerHandler struct {
	BaseHandler
	partnerService PartnerService
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(partnerService PartnerService) *PartnerHandler {
	return &PartnerHandler{partnerService: partnerService}
}

// CreateCustomer godoc
// @Summary      Create a customer
// @Description  Create a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateCustomerRequest true "Customer creation request"
// @Success      201 {object} dto.Response{data=partnerapp.CustomerResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /customers [post]
func (h *PartnerHandler) CreateCustomer(c *gin.Context) {
	var req partnerapp.CreateCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	customer, err := h.partnerService.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// GetCustomer godoc
// @Summary      Get customer by ID
// @Description  Retrieve a customer by its ID
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id path int true "Customer ID"
// @Success      200 {object} dto.Response{data=partnerapp.CustomerResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /customers/{id} [get]
func (h *PartnerHandler) GetCustomer(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	customer, err := h.partnerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// ListCustomers godoc
// @Summary      List customers
// @Description  Retrieve a paginated list of customers
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        q query string false "Name search"
// @Param        page query int false "Page number" default(1)
// @Param        pageSize query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]partnerapp.CustomerResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /customers [get]
func (h *PartnerHandler) ListCustomers(c *gin.Context) {
	var filter partnerapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	customers, total, err := h.partnerService.ListCustomers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOrDefault(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, customers, total, page, pageSize)
}

// CreateSupplier godoc
// @Summary      Create a supplier
// @Description  Create a supplier
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateSupplierRequest true "Supplier creation request"
// @Success      201 {object} dto.Response{data=partnerapp.SupplierResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /suppliers [post]
func (h *PartnerHandler) CreateSupplier(c *gin.Context) {
	var req partnerapp.CreateSupplierRequest
	if !h.bindJSON(c, &req) {
		return
	}
	supplier, err := h.partnerService.CreateSupplier(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, supplier)
}

// GetSupplier godoc
// @Summary      Get supplier by ID
// @Description  Retrieve a supplier by its ID
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        id path int true "Supplier ID"
// @Success      200 {object} dto.Response{data=partnerapp.SupplierResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /suppliers/{id} [get]
func (h *PartnerHandler) GetSupplier(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	supplier, err := h.partnerService.GetSupplier(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// ListSuppliers godoc
// @Summary      List suppliers
// @Description  Retrieve a paginated list of suppliers
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        q query string false "Name search"
// @Param        page query int false "Page number" default(1)
// @Param        pageSize query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]partnerapp.SupplierResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /suppliers [get]
func (h *PartnerHandler) ListSuppliers(c *gin.Context) {
	var filter partnerapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	suppliers, total, err := h.partnerService.ListSuppliers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOrDefault(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, suppliers, total, page, pageSize)
}
