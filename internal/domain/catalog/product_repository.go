package catalog

import (
	"context"

	"github.com/mampirjaya/backoffice/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uint64) (*Product, error)

	// FindByName finds the oldest product whose name matches exactly
	FindByName(ctx context.Context, name string) (*Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uint64) ([]Product, error)

	// FindAll finds all products matching the filter; Filter.Search matches name substrings
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error
}
