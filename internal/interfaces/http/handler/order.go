package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	tradeapp "github.com/mampirjaya/backoffice/internal/application/trade"
	"github.com/mampirjaya/backoffice/internal/domain/shared"
	"github.com/mampirjaya/backoffice/internal/domain/trade"
)

// OrderCommands is the write side used by the document handlers
type OrderCommands interface {
	CreateOrder(ctx context.Context, in tradeapp.CreateOrderInput) (*tradeapp.OrderHeader, error)
	UpdateOrder(ctx context.Context, kind trade.OrderKind, id uint64, in tradeapp.UpdateOrderInput) (*tradeapp.OrderHeader, error)
	DeleteOrder(ctx context.Context, kind trade.OrderKind, id uint64) error
	ChangeSalesOrderStatus(ctx context.Context, id uint64, status trade.SalesOrderStatus) (*tradeapp.OrderHeader, error)
	InvoiceSalesOrder(ctx context.Context, id uint64) (*tradeapp.OrderHeader, error)
}

// OrderQueries is the read side used by the document handlers
type OrderQueries interface {
	List(ctx context.Context, kind trade.OrderKind, filter tradeapp.ListFilter) (shared.Paginated[trade.DocumentSummary], error)
	Get(ctx context.Context, kind trade.OrderKind, id uint64) (*trade.DocumentDetails, error)
}

// orderEndpoints holds the parts shared by sales, purchases and sales orders
type orderEndpoints struct {
	BaseHandler
	kind     trade.OrderKind
	commands OrderCommands
	queries  OrderQueries
}

func (h *orderEndpoints) list(c *gin.Context, convert func(trade.DocumentSummary) any) {
	var query ListOrdersQuery
	if !h.bindQuery(c, &query) {
		return
	}

	result, err := h.queries.List(c.Request.Context(), h.kind, query.toFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, s := range result.Items {
		items[i] = convert(s)
	}
	page, pageSize := pageOrDefault(result.Page, result.PageSize)
	h.SuccessWithMeta(c, items, result.Total, page, pageSize)
}

func (h *orderEndpoints) details(c *gin.Context) (*trade.DocumentDetails, bool) {
	id, ok := h.parseID(c)
	if !ok {
		return nil, false
	}
	details, err := h.queries.Get(c.Request.Context(), h.kind, id)
	if err != nil {
		h.HandleError(c, err)
		return nil, false
	}
	return details, true
}

func (h *orderEndpoints) create(c *gin.Context, party shared.Reference, items []OrderLineRequest) (*tradeapp.OrderHeader, bool) {
	lines, err := toLineInputs(items)
	if err != nil {
		h.HandleError(c, err)
		return nil, false
	}
	header, err := h.commands.CreateOrder(c.Request.Context(), tradeapp.CreateOrderInput{
		Kind:  h.kind,
		Party: party,
		Items: lines,
	})
	if err != nil {
		h.HandleError(c, err)
		return nil, false
	}
	return header, true
}

func (h *orderEndpoints) update(c *gin.Context, id uint64, party shared.Reference, items []OrderLineRequest) (*tradeapp.OrderHeader, bool) {
	lines, err := toLineInputs(items)
	if err != nil {
		h.HandleError(c, err)
		return nil, false
	}
	header, err := h.commands.UpdateOrder(c.Request.Context(), h.kind, id, tradeapp.UpdateOrderInput{
		Party: party,
		Items: lines,
	})
	if err != nil {
		h.HandleError(c, err)
		return nil, false
	}
	return header, true
}

func (h *orderEndpoints) delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.commands.DeleteOrder(c.Request.Context(), h.kind, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
