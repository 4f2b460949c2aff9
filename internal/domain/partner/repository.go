package partner

import (
	"context"

	"github.com/mampirjaya/backoffice/internal/domain/shared"
)

// CustomerRepository persists customers.
// FindByName matches the name exactly; when several customers share it the
// oldest one is returned, so reference resolution stays deterministic.
type CustomerRepository interface {
	FindByID(ctx context.Context, id uint64) (*Customer, error)
	FindByName(ctx context.Context, name string) (*Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, customer *Customer) error
}

// SupplierRepository persists suppliers. Suppliers are never created while
// resolving a purchase, only through the partner service.
type SupplierRepository interface {
	FindByID(ctx context.Context, id uint64) (*Supplier, error)
	FindByName(ctx context.Context, name string) (*Supplier, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Supplier, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, supplier *Supplier) error
}
