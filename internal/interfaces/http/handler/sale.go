package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mampirjaya/backoffice/internal/domain/trade"
)

// SaleHandler serves /sales. Creating a sale decrements stock and issues an invoice number.
type SaleHandler struct {
	orderEndpoints
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(commands OrderCommands, queries OrderQueries) *SaleHandler {
	return &SaleHandler{orderEndpoints{kind: trade.OrderKindSale, commands: commands, queries: queries}}
}

// Create godoc
// @Summary      Create a sale
// @Description  Create a sale, decrement stock for every line and issue an INV- invoice number in one transaction
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Replays the first response for a repeated key"
// @Param        request body CreateSaleRequest true "Sale creation request"
// @Success      201 {object} dto.Response{data=SaleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales [post]
func (h *SaleHandler) Create(c *gin.Context) {
	var req CreateSaleRequest
	if !h.bindJSON(c, &req) {
		return
	}
	header, ok := h.create(c, req.party(), req.Items)
	if !ok {
		return
	}
	h.Created(c, toSaleResponse(header))
}

// List godoc
// @Summary      List sales
// @Description  Retrieve a paginated list of sales, newest first
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        q query string false "Search by document number or party name"
// @Param        page query int false "Page number" default(1)
// @Param        pageSize query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]SaleListItem,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	h.list(c, func(s trade.DocumentSummary) any { return toSaleListItem(s) })
}

// Get godoc
// @Summary      Get sale by ID
// @Description  Retrieve a sale with its party and line items
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id path int true "Sale ID"
// @Success      200 {object} dto.Response{data=SaleDetailResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales/{id} [get]
func (h *SaleHandler) Get(c *gin.Context) {
	details, ok := h.details(c)
	if !ok {
		return
	}
	h.Success(c, toSaleDetail(details))
}

// Update godoc
// @Summary      Update a sale
// @Description  Replace the customer and items of a sale; previous quantities return to stock and the new ones are taken
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id path int true "Sale ID"
// @Param        request body CreateSaleRequest true "Replacement party and items"
// @Success      200 {object} dto.Response{data=SaleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales/{id} [put]
func (h *SaleHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req CreateSaleRequest
	if !h.bindJSON(c, &req) {
		return
	}
	header, ok := h.update(c, id, req.party(), req.Items)
	if !ok {
		return
	}
	h.Success(c, toSaleResponse(header))
}

// Delete godoc
// @Summary      Delete a sale
// @Description  Delete a sale and return its quantities to stock
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id path int true "Sale ID"
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales/{id} [delete]
func (h *SaleHandler) Delete(c *gin.Context) {
	h.delete(c)
}
