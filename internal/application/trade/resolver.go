package trade

import (
	"context"
	"errors"

	"github.com/mampirjaya/backoffice/internal/domain/partner"
	"github.com/mampirjaya/backoffice/internal/domain/shared"
)

// EntityKind names the entity a reference resolves to
type EntityKind string

const (
	EntityCustomer EntityKind = "customer"
	EntitySupplier EntityKind = "supplier"
	EntityProduct  EntityKind = "product"
)

// ReferenceResolver maps a Reference to a canonical entity id, creating
// customers or suppliers on demand when asked to. Products are never created.
type ReferenceResolver struct{}

// NewReferenceResolver creates a new ReferenceResolver
func NewReferenceResolver() *ReferenceResolver {
	return &ReferenceResolver{}
}

// Resolve returns the id of the entity ref points at.
// Id references must exist. Name references match exactly; an existing match is
// returned unchanged, a missing one is created only when createIfMissing is set.
func (r *ReferenceResolver) Resolve(
	ctx context.Context,
	repos TransactionalRepositories,
	kind EntityKind,
	ref shared.Reference,
	createIfMissing bool,
) (uint64, error) {
	if err := ref.Validate(); err != nil {
		return 0, shared.NewValidationError("invalid %s reference: %s", kind, err.Error())
	}
	if createIfMissing && kind == EntityProduct {
		return 0, shared.NewValidationError("products cannot be created from an order")
	}

	if ref.Kind() == shared.ReferenceByID {
		return r.resolveByID(ctx, repos, kind, ref)
	}

	id, err := r.findByName(ctx, repos, kind, ref.Name())
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, shared.ErrNotFound) || !createIfMissing {
		return 0, err
	}
	return r.create(ctx, repos, kind, ref)
}

func (r *ReferenceResolver) resolveByID(ctx context.Context, repos TransactionalRepositories, kind EntityKind, ref shared.Reference) (uint64, error) {
	var err error
	switch kind {
	case EntityCustomer:
		_, err = repos.Customers().FindByID(ctx, ref.ID())
	case EntitySupplier:
		_, err = repos.Suppliers().FindByID(ctx, ref.ID())
	case EntityProduct:
		_, err = repos.Products().FindByID(ctx, ref.ID())
	default:
		return 0, shared.NewValidationError("unknown entity kind %q", kind)
	}
	if err != nil {
		return 0, notFoundAs(err, kind, ref)
	}
	return ref.ID(), nil
}

func (r *ReferenceResolver) findByName(ctx context.Context, repos TransactionalRepositories, kind EntityKind, name string) (uint64, error) {
	switch kind {
	case EntityCustomer:
		c, err := repos.Customers().FindByName(ctx, name)
		if err != nil {
			return 0, notFoundAs(err, kind, shared.ByName(name, shared.PartyDetails{}))
		}
		return c.ID, nil
	case EntitySupplier:
		s, err := repos.Suppliers().FindByName(ctx, name)
		if err != nil {
			return 0, notFoundAs(err, kind, shared.ByName(name, shared.PartyDetails{}))
		}
		return s.ID, nil
	case EntityProduct:
		p, err := repos.Products().FindByName(ctx, name)
		if err != nil {
			return 0, notFoundAs(err, kind, shared.ByName(name, shared.PartyDetails{}))
		}
		return p.ID, nil
	default:
		return 0, shared.NewValidationError("unknown entity kind %q", kind)
	}
}

func (r *ReferenceResolver) create(ctx context.Context, repos TransactionalRepositories, kind EntityKind, ref shared.Reference) (uint64, error) {
	details := ref.Details()
	switch kind {
	case EntityCustomer:
		customer, err := partner.NewCustomerFromDetails(ref.Name(), details)
		if err != nil {
			return 0, err
		}
		if err := repos.Customers().Save(ctx, customer); err != nil {
			return 0, err
		}
		return customer.ID, nil
	case EntitySupplier:
		supplier, err := partner.NewSupplier(ref.Name(), details.Address, details.Phone, details.Email)
		if err != nil {
			return 0, err
		}
		if err := repos.Suppliers().Save(ctx, supplier); err != nil {
			return 0, err
		}
		return supplier.ID, nil
	default:
		return 0, shared.NewValidationError("cannot create %s from a reference", kind)
	}
}

// notFoundAs rewrites a repository not-found error so the message names the reference
func notFoundAs(err error, kind EntityKind, ref shared.Reference) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewNotFoundError(string(kind), ref.String())
	}
	return err
}
