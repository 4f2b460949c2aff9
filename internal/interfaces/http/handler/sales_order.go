package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mampirjaya/backoffice/internal/domain/trade"
)

// SalesOrderHandler serves /sales-orders. Sales orders reserve nothing; stock
// moves only when an order is invoiced into a sale.
type SalesOrderHandler struct {
	orderEndpoints
}

// NewSalesOrderHandler creates a new SalesOrderHandler
func NewSalesOrderHandler(commands OrderCommands, queries OrderQueries) *SalesOrderHandler {
	return &SalesOrderHandler{orderEndpoints{kind: trade.OrderKindSalesOrder, commands: commands, queries: queries}}
}

// Create godoc
// @Summary      Create a sales order
// @Description  Create a pending sales order with an SO- number; stock is not touched
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Replays the first response for a repeated key"
// @Param        request body CreateSaleRequest true "Sales order creation request"
// @Success      201 {object} dto.Response{data=SalesOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales-orders [post]
func (h *SalesOrderHandler) Create(c *gin.Context) {
	var req CreateSaleRequest
	if !h.bindJSON(c, &req) {
		return
	}
	header, ok := h.create(c, req.party(), req.Items)
	if !ok {
		return
	}
	h.Created(c, toSalesOrderResponse(header))
}

// List godoc
// @Summary      List sales orders
// @Description  Retrieve a paginated list of sales orders, newest first
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        q query string false "Search by document number or party name"
// @Param        page query int false "Page number" default(1)
// @Param        pageSize query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]SalesOrderListItem,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales-orders [get]
func (h *SalesOrderHandler) List(c *gin.Context) {
	h.list(c, func(s trade.DocumentSummary) any { return toSalesOrderListItem(s) })
}

// Get godoc
// @Summary      Get sales order by ID
// @Description  Retrieve a sales order with its party and line items
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        id path int true "Sales order ID"
// @Success      200 {object} dto.Response{data=SalesOrderDetailResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales-orders/{id} [get]
func (h *SalesOrderHandler) Get(c *gin.Context) {
	details, ok := h.details(c)
	if !ok {
		return
	}
	h.Success(c, toSalesOrderDetail(details))
}

// Update godoc
// @Summary      Update a sales order
// @Description  Replace the customer and items of a sales order that is not invoiced
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        id path int true "Sales order ID"
// @Param        request body CreateSaleRequest true "Replacement party and items"
// @Success      200 {object} dto.Response{data=SalesOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales-orders/{id} [put]
func (h *SalesOrderHandler) Update(c *gin.Context) {
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
	h.Success(c, toSalesOrderResponse(header))
}

// Delete godoc
// @Summary      Delete a sales order
// @Description  Delete a sales order that is not invoiced
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        id path int true "Sales order ID"
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales-orders/{id} [delete]
func (h *SalesOrderHandler) Delete(c *gin.Context) {
	h.delete(c)
}

// ChangeStatus godoc
// @Summary      Change sales order status
// @Description  Move a sales order between pending and confirmed
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        id path int true "Sales order ID"
// @Param        request body ChangeStatusRequest true "Target status"
// @Success      200 {object} dto.Response{data=SalesOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales-orders/{id}/status [patch]
func (h *SalesOrderHandler) ChangeStatus(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req ChangeStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	header, err := h.commands.ChangeSalesOrderStatus(c.Request.Context(), id, trade.SalesOrderStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toSalesOrderResponse(header))
}

// Invoice godoc
// @Summary      Invoice a sales order
// @Description  Create a sale from a confirmed sales order, decrement stock and mark the order invoiced
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        id path int true "Sales order ID"
// @Success      201 {object} dto.Response{data=SaleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales-orders/{id}/invoice [post]
func (h *SalesOrderHandler) Invoice(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	header, err := h.commands.InvoiceSalesOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toSaleResponse(header))
}
