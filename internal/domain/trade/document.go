package trade

import (
	"time"

	"github.com/mampirjaya/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SalesOrderStatus represents the status of a sales order
type SalesOrderStatus string

const (
	SalesOrderStatusPending   SalesOrderStatus = "pending"
	SalesOrderStatusConfirmed SalesOrderStatus = "confirmed"
	SalesOrderStatusInvoiced  SalesOrderStatus = "invoiced"
)

// IsValid checks if the status is a valid SalesOrderStatus
func (s SalesOrderStatus) IsValid() bool {
	switch s {
	case SalesOrderStatusPending, SalesOrderStatusConfirmed, SalesOrderStatusInvoiced:
		return true
	}
	return false
}

// CanTransitionTo checks if a transition from s to target is allowed
func (s SalesOrderStatus) CanTransitionTo(target SalesOrderStatus) bool {
	switch s {
	case SalesOrderStatusPending:
		return target == SalesOrderStatusConfirmed
	case SalesOrderStatusConfirmed:
		return target == SalesOrderStatusPending || target == SalesOrderStatusInvoiced
	default:
		return false
	}
}

// OrderLine is one item row of a document. Price is the unit price submitted
// with the order, independent of the product's current price.
type OrderLine struct {
	ID        uint64
	ProductID uint64
	Quantity  int64
	Price     decimal.Decimal
}

// NewOrderLine creates a validated line
func NewOrderLine(productID uint64, quantity int64, price decimal.Decimal) (OrderLine, error) {
	if err := ValidateLineShape(quantity, price); err != nil {
		return OrderLine{}, err
	}
	return OrderLine{ProductID: productID, Quantity: quantity, Price: price}, nil
}

// ValidateLineShape enforces quantity > 0, price >= 0 and at most two
// fractional digits in price, so the stored lines always add up to the stored total
func ValidateLineShape(quantity int64, price decimal.Decimal) error {
	if quantity <= 0 {
		return shared.NewValidationError("quantity must be greater than zero, got %d", quantity)
	}
	if price.IsNegative() {
		return shared.NewValidationError("price cannot be negative, got %s", price.String())
	}
	if !shared.FitsMoneyScale(price) {
		return shared.NewValidationError("price cannot have more than %d decimal places, got %s", shared.MoneyScale, price.String())
	}
	return nil
}

// Amount returns quantity * price
func (l OrderLine) Amount() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(l.Quantity))
}

// ComputeTotal returns the sum of line amounts, exact in decimal arithmetic
func ComputeTotal(lines []OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount())
	}
	return total
}

// Document is a Sale, Purchase or SalesOrder header with its line items
type Document struct {
	shared.BaseEntity
	Kind    OrderKind
	Number  string
	PartyID uint64
	Total   decimal.Decimal
	Lines   []OrderLine

	// Sales orders only
	Status SalesOrderStatus
	SaleID *uint64
}

// NewDocument creates a new document header with its lines; the total is derived from the lines
func NewDocument(kind OrderKind, number string, partyID uint64, lines []OrderLine) (*Document, error) {
	if !kind.IsValid() {
		return nil, shared.NewValidationError("unknown order kind %q", kind)
	}
	if number == "" {
		return nil, shared.NewValidationError("document number is required")
	}
	if partyID == 0 {
		return nil, shared.NewValidationError("%s is required", kind.PartyKind())
	}
	if len(lines) == 0 {
		return nil, shared.NewValidationError("items must not be empty")
	}
	for _, l := range lines {
		if err := ValidateLineShape(l.Quantity, l.Price); err != nil {
			return nil, err
		}
	}

	doc := &Document{
		BaseEntity: shared.NewBaseEntity(),
		Kind:       kind,
		Number:     number,
		PartyID:    partyID,
		Lines:      lines,
		Total:      ComputeTotal(lines),
	}
	if kind == OrderKindSalesOrder {
		doc.Status = SalesOrderStatusPending
	}
	return doc, nil
}

// ReplaceLines swaps party and lines in place, keeping id and number, and recomputes the total
func (d *Document) ReplaceLines(partyID uint64, lines []OrderLine) error {
	if !d.CanModify() {
		return shared.NewInvalidStateError("cannot modify %s %s in %s status", d.Kind, d.Number, d.Status)
	}
	if partyID == 0 {
		return shared.NewValidationError("%s is required", d.Kind.PartyKind())
	}
	if len(lines) == 0 {
		return shared.NewValidationError("items must not be empty")
	}
	d.PartyID = partyID
	d.Lines = lines
	d.Total = ComputeTotal(lines)
	d.UpdatedAt = time.Now()
	return nil
}

// CanModify reports whether the document's lines may still change
func (d *Document) CanModify() bool {
	return d.Kind != OrderKindSalesOrder || d.Status != SalesOrderStatusInvoiced
}

// Confirm moves a pending sales order to confirmed
func (d *Document) Confirm() error {
	return d.transition(SalesOrderStatusConfirmed)
}

// Reopen moves a confirmed sales order back to pending
func (d *Document) Reopen() error {
	return d.transition(SalesOrderStatusPending)
}

// MarkInvoiced links a confirmed sales order to the sale created from it
func (d *Document) MarkInvoiced(saleID uint64) error {
	if err := d.transition(SalesOrderStatusInvoiced); err != nil {
		return err
	}
	d.SaleID = &saleID
	return nil
}

// TransitionTo moves a sales order to target if allowed
func (d *Document) TransitionTo(target SalesOrderStatus) error {
	switch target {
	case SalesOrderStatusConfirmed:
		return d.Confirm()
	case SalesOrderStatusPending:
		return d.Reopen()
	case SalesOrderStatusInvoiced:
		return shared.NewInvalidStateError("sales orders are invoiced through the invoice operation")
	default:
		return shared.NewValidationError("unknown sales order status %q", target)
	}
}

func (d *Document) transition(target SalesOrderStatus) error {
	if d.Kind != OrderKindSalesOrder {
		return shared.NewInvalidStateError("%s documents have no status", d.Kind)
	}
	if !d.Status.CanTransitionTo(target) {
		return shared.NewInvalidStateError("cannot move sales order %s from %s to %s", d.Number, d.Status, target)
	}
	d.Status = target
	d.UpdatedAt = time.Now()
	return nil
}

// ItemCount returns the number of lines
func (d *Document) ItemCount() int {
	return len(d.Lines)
}

// TotalQuantity returns the sum of line quantities
func (d *Document) TotalQuantity() int64 {
	var q int64
	for _, l := range d.Lines {
		q += l.Quantity
	}
	return q
}
