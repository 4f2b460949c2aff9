package trade

import (
	"context"

	"github.com/mampirjaya/backoffice/internal/domain/shared"
	"github.com/mampirjaya/backoffice/internal/domain/trade"
)

// OrderQueryService serves document listings and detail views
type OrderQueryService struct {
	readModel trade.DocumentReadModel
}

// NewOrderQueryService creates a new OrderQueryService
func NewOrderQueryService(readModel trade.DocumentReadModel) *OrderQueryService {
	return &OrderQueryService{readModel: readModel}
}

// List returns a page of documents of kind, newest first
func (s *OrderQueryService) List(ctx context.Context, kind trade.OrderKind, filter ListFilter) (shared.Paginated[trade.DocumentSummary], error) {
	f := filter.ToShared()
	items, total, err := s.readModel.List(ctx, kind, f)
	if err != nil {
		return shared.Paginated[trade.DocumentSummary]{}, shared.AsDomainError(err)
	}
	return shared.NewPaginated(items, total, f.Page, f.Limit()), nil
}

// Get returns one document with its party and product-enriched lines
func (s *OrderQueryService) Get(ctx context.Context, kind trade.OrderKind, id uint64) (*trade.DocumentDetails, error) {
	details, err := s.readModel.GetDetails(ctx, kind, id)
	if err != nil {
		return nil, shared.AsDomainError(err)
	}
	return details, nil
}
