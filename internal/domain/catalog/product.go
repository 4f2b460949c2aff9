package catalog

import (
	"strings"

	"github.com/mampirjaya/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a stocked item in the catalog.
// Stock is only mutated through the inventory StockLedger.
type Product struct {
	shared.BaseEntity
	Name     string
	Category string
	Price    decimal.Decimal // current unit price; order lines snapshot their own price
	Stock    int64
	Unit     string // unit label, e.g. "sak", "pcs", "m3"
}

// NewProduct creates a new product
func NewProduct(name, category, unit string, price decimal.Decimal, stock int64) (*Product, error) {
	name = strings.TrimSpace(name)
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewValidationError("product price cannot be negative")
	}
	if !shared.FitsMoneyScale(price) {
		return nil, shared.NewValidationError("product price cannot have more than %d decimal places", shared.MoneyScale)
	}
	if stock < 0 {
		return nil, shared.NewValidationError("product stock cannot be negative")
	}
	if len(unit) > 20 {
		return nil, shared.NewValidationError("product unit cannot exceed 20 characters")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Category:   strings.TrimSpace(category),
		Price:      price,
		Stock:      stock,
		Unit:       unit,
	}, nil
}

// CanCover reports whether the current stock covers quantity
func (p *Product) CanCover(quantity int64) bool {
	return p.Stock >= quantity
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewValidationError("product name is required")
	}
	if len(name) > 200 {
		return shared.NewValidationError("product name cannot exceed 200 characters")
	}
	return nil
}
