package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mampirjaya/backoffice/internal/domain/trade"
)

// PurchaseHandler serves /purchases
type PurchaseHandler struct {
	orderEndpoints
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(commands OrderCommands, queries OrderQueries) *PurchaseHandler {
	return &PurchaseHandler{orderEndpoints{kind: trade.OrderKindPurchase, commands: commands, queries: queries}}
}

// Create godoc
// @Summary      Create a purchase
// @Description  Create a purchase, increment stock for every line and issue a PO- number in one transaction
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Replays the first response for a repeated key"
// @Param        request body CreatePurchaseRequest true "Purchase creation request"
// @Success      201 {object} dto.Response{data=PurchaseResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /purchases [post]
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req CreatePurchaseRequest
	if !h.bindJSON(c, &req) {
		return
	}
	header, ok := h.create(c, req.Supplier, req.Items)
	if !ok {
		return
	}
	h.Created(c, toPurchaseResponse(header))
}

// List godoc
// @Summary      List purchases
// @Description  Retrieve a paginated list of purchases, newest first
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        q query string false "Search by document number or party name"
// @Param        page query int false "Page number" default(1)
// @Param        pageSize query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]PurchaseListItem,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /purchases [get]
func (h *PurchaseHandler) List(c *gin.Context) {
	h.list(c, func(s trade.DocumentSummary) any { return toPurchaseListItem(s) })
}

// Get godoc
// @Summary      Get purchase by ID
// @Description  Retrieve a purchase with its party and line items
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        id path int true "Purchase ID"
// @Success      200 {object} dto.Response{data=PurchaseDetailResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /purchases/{id} [get]
func (h *PurchaseHandler) Get(c *gin.Context) {
	details, ok := h.details(c)
	if !ok {
		return
	}
	h.Success(c, toPurchaseDetail(details))
}

// Update godoc
// @Summary      Update a purchase
// @Description  Replace the supplier and items of a purchase; stock is reconciled against the previous items
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        id path int true "Purchase ID"
// @Param        request body CreatePurchaseRequest true "Replacement party and items"
// @Success      200 {object} dto.Response{data=PurchaseResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /purchases/{id} [put]
func (h *PurchaseHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req CreatePurchaseRequest
	if !h.bindJSON(c, &req) {
		return
	}
	header, ok := h.update(c, id, req.Supplier, req.Items)
	if !ok {
		return
	}
	h.Success(c, toPurchaseResponse(header))
}

// Delete godoc
// @Summary      Delete a purchase
// @Description  Delete a purchase and remove its quantities from stock; fails when the goods were already sold
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        id path int true "Purchase ID"
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /purchases/{id} [delete]
func (h *PurchaseHandler) Delete(c *gin.Context) {
	h.delete(c)
}
