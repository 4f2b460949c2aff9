package trade

import (
	"time"

	"github.com/mampirjaya/backoffice/internal/domain/shared"
	"github.com/mampirjaya/backoffice/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// LineInput is one submitted order line
type LineInput struct {
	Product  shared.Reference
	Quantity int64
	Price    decimal.Decimal
}

// CreateOrderInput is the input of CreateOrder
type CreateOrderInput struct {
	Kind  trade.OrderKind
	Party shared.Reference
	Items []LineInput
}

// UpdateOrderInput replaces the party and lines of an existing document
type UpdateOrderInput struct {
	Party shared.Reference
	Items []LineInput
}

// OrderHeader is the created or updated document header returned to callers
type OrderHeader struct {
	ID        uint64
	Kind      trade.OrderKind
	Number    string
	PartyID   uint64
	Total     decimal.Decimal
	Status    trade.SalesOrderStatus
	SaleID    *uint64
	ItemCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ToOrderHeader converts a document to its header view
func ToOrderHeader(doc *trade.Document) OrderHeader {
	return OrderHeader{
		ID:        doc.ID,
		Kind:      doc.Kind,
		Number:    doc.Number,
		PartyID:   doc.PartyID,
		Total:     doc.Total,
		Status:    doc.Status,
		SaleID:    doc.SaleID,
		ItemCount: doc.ItemCount(),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

// ListFilter is the paging input for document listings
type ListFilter struct {
	Page     int
	PageSize int
	Search   string
}

// ToShared converts to a repository filter with defaults applied
func (f ListFilter) ToShared() shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	filter.Search = f.Search
	return filter
}

// validateLines is step 1 of order creation: shape checks only, no lookups
func validateLines(items []LineInput) error {
	if len(items) == 0 {
		return shared.NewValidationError("items must not be empty")
	}
	for i, item := range items {
		if err := item.Product.Validate(); err != nil {
			return shared.NewValidationError("items[%d].product: %s", i, err.Error())
		}
		if err := trade.ValidateLineShape(item.Quantity, item.Price); err != nil {
			return shared.NewValidationError("items[%d]: %s", i, err.Error())
		}
	}
	return nil
}
