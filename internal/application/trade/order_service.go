package trade

import (
	"context"
	"errors"

	"github.com/mampirjaya/backoffice/internal/domain/inventory"
	"github.com/mampirjaya/backoffice/internal/domain/shared"
	"github.com/mampirjaya/backoffice/internal/domain/trade"
	"github.com/mampirjaya/backoffice/internal/infrastructure/logger"
	"github.com/mampirjaya/backoffice/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DefaultAllocationRetries is how many times an order is re-run after a document number conflict
const DefaultAllocationRetries = 3

// OrderService creates, updates and deletes sales, purchases and sales orders.
// Every command runs as one atomic unit through the TransactionScope.
type OrderService struct {
	txScope  TransactionScope
	resolver *ReferenceResolver
	metrics  OrderMetrics
	logger   *zap.Logger
	retries  int
}

// NewOrderService creates a new OrderService
func NewOrderService(txScope TransactionScope, log *zap.Logger) *OrderService {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderService{
		txScope:  txScope,
		resolver: NewReferenceResolver(),
		metrics:  noopOrderMetrics{},
		logger:   log,
		retries:  DefaultAllocationRetries,
	}
}

// SetMetrics sets the business metrics sink
func (s *OrderService) SetMetrics(metrics OrderMetrics) {
	if metrics != nil {
		s.metrics = metrics
	}
}

// SetAllocationRetries sets how many times a number conflict is retried before it is surfaced
func (s *OrderService) SetAllocationRetries(n int) {
	if n >= 0 {
		s.retries = n
	}
}

// CreateSale creates a sale for a customer, creating the customer if a name reference is unknown
func (s *OrderService) CreateSale(ctx context.Context, customer shared.Reference, items []LineInput) (*OrderHeader, error) {
	return s.CreateOrder(ctx, CreateOrderInput{Kind: trade.OrderKindSale, Party: customer, Items: items})
}

// CreatePurchase creates a purchase from an existing supplier
func (s *OrderService) CreatePurchase(ctx context.Context, supplier shared.Reference, items []LineInput) (*OrderHeader, error) {
	return s.CreateOrder(ctx, CreateOrderInput{Kind: trade.OrderKindPurchase, Party: supplier, Items: items})
}

// CreateSalesOrder creates a pending sales order; stock is untouched until it is invoiced
func (s *OrderService) CreateSalesOrder(ctx context.Context, customer shared.Reference, items []LineInput) (*OrderHeader, error) {
	return s.CreateOrder(ctx, CreateOrderInput{Kind: trade.OrderKindSalesOrder, Party: customer, Items: items})
}

// CreateOrder validates the input, then resolves the party and products, allocates
// a document number, persists header and lines and applies stock deltas in one
// transaction. Any failure leaves the store exactly as it was.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*OrderHeader, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "create",
		telemetry.WithAttribute(telemetry.SpanAttrOrderKind, string(in.Kind)),
		telemetry.WithAttribute(telemetry.SpanAttrItemCount, len(in.Items)),
	)
	defer span.End()

	if !in.Kind.IsValid() {
		return nil, s.fail(ctx, span, in.Kind, shared.NewValidationError("unknown order kind %q", in.Kind))
	}
	if in.Party.IsZero() {
		return nil, s.fail(ctx, span, in.Kind, shared.NewValidationError("%s is required", in.Kind.PartyKind()))
	}
	if err := validateLines(in.Items); err != nil {
		return nil, s.fail(ctx, span, in.Kind, err)
	}

	var doc *trade.Document
	var err error
	telemetry.WithProfilingLabels(ctx, func(ctx context.Context) {
		err = s.retryOnConflict(ctx, in.Kind.DocumentType(), func() error {
			return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
				partyID, err := s.resolveParty(ctx, repos, in.Kind, in.Party)
				if err != nil {
					return err
				}
				lines, err := s.resolveLines(ctx, repos, in.Items)
				if err != nil {
					return err
				}
				created, err := s.issue(ctx, repos, in.Kind, partyID, lines)
				if err != nil {
					return err
				}
				doc = created
				return nil
			})
		})
	}, "order_kind", string(in.Kind))
	if err != nil {
		return nil, s.fail(ctx, span, in.Kind, err)
	}

	s.succeed(ctx, span, doc)
	header := ToOrderHeader(doc)
	return &header, nil
}

// UpdateOrder replaces the party and lines of an existing document in place.
// The id and document number are kept, the old lines' stock effect is reversed,
// the new lines' effect applied and the total recomputed, atomically.
func (s *OrderService) UpdateOrder(ctx context.Context, kind trade.OrderKind, id uint64, in UpdateOrderInput) (*OrderHeader, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "update",
		telemetry.WithAttribute(telemetry.SpanAttrOrderKind, string(kind)),
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, int64(id)),
	)
	defer span.End()

	if in.Party.IsZero() {
		return nil, s.fail(ctx, span, kind, shared.NewValidationError("%s is required", kind.PartyKind()))
	}
	if err := validateLines(in.Items); err != nil {
		return nil, s.fail(ctx, span, kind, err)
	}

	var doc *trade.Document
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		existing, err := repos.Documents().FindByIDForUpdate(ctx, kind, id)
		if err != nil {
			return err
		}
		if !existing.CanModify() {
			return shared.NewInvalidStateError("%s %s can no longer be modified", kind, existing.Number)
		}
		partyID, err := s.resolveParty(ctx, repos, kind, in.Party)
		if err != nil {
			return err
		}
		lines, err := s.resolveLines(ctx, repos, in.Items)
		if err != nil {
			return err
		}

		movements := append(stockMovements(kind, existing.Lines, -1), stockMovements(kind, lines, 1)...)
		if err := existing.ReplaceLines(partyID, lines); err != nil {
			return err
		}
		if err := repos.Documents().Update(ctx, existing); err != nil {
			return err
		}
		if err := inventory.Apply(ctx, repos.Ledger(), inventory.Net(movements)); err != nil {
			return err
		}
		doc = existing
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, span, kind, err)
	}

	telemetry.SetAttribute(span, telemetry.SpanAttrOrderNumber, doc.Number)
	logger.Ctx(ctx, s.logger).Info("Document updated",
		zap.String("kind", string(kind)),
		zap.Uint64("id", doc.ID),
		zap.String("number", doc.Number),
		zap.String("total", doc.Total.String()),
	)
	header := ToOrderHeader(doc)
	return &header, nil
}

// DeleteOrder removes a document and reverses its stock effect atomically.
// Deleting a purchase whose goods were already sold fails with INSUFFICIENT_STOCK.
func (s *OrderService) DeleteOrder(ctx context.Context, kind trade.OrderKind, id uint64) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "delete",
		telemetry.WithAttribute(telemetry.SpanAttrOrderKind, string(kind)),
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, int64(id)),
	)
	defer span.End()

	var number string
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		existing, err := repos.Documents().FindByIDForUpdate(ctx, kind, id)
		if err != nil {
			return err
		}
		if !existing.CanModify() {
			return shared.NewInvalidStateError("%s %s is invoiced and cannot be deleted", kind, existing.Number)
		}
		if err := repos.Documents().Delete(ctx, kind, id); err != nil {
			return err
		}
		if err := inventory.Apply(ctx, repos.Ledger(), inventory.Net(stockMovements(kind, existing.Lines, -1))); err != nil {
			return err
		}
		number = existing.Number
		return nil
	})
	if err != nil {
		return s.fail(ctx, span, kind, err)
	}

	logger.Ctx(ctx, s.logger).Info("Document deleted",
		zap.String("kind", string(kind)),
		zap.Uint64("id", id),
		zap.String("number", number),
	)
	return nil
}

// ChangeSalesOrderStatus moves a sales order between pending and confirmed
func (s *OrderService) ChangeSalesOrderStatus(ctx context.Context, id uint64, status trade.SalesOrderStatus) (*OrderHeader, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sales_order", "change_status",
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, int64(id)),
		telemetry.WithAttribute(telemetry.SpanAttrOrderStatus, string(status)),
	)
	defer span.End()

	var doc *trade.Document
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.Documents().FindByIDForUpdate(ctx, trade.OrderKindSalesOrder, id)
		if err != nil {
			return err
		}
		if err := order.TransitionTo(status); err != nil {
			return err
		}
		if err := repos.Documents().UpdateStatus(ctx, order); err != nil {
			return err
		}
		doc = order
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, span, trade.OrderKindSalesOrder, err)
	}
	header := ToOrderHeader(doc)
	return &header, nil
}

// InvoiceSalesOrder turns a confirmed sales order into a sale with the same
// customer and lines, applies the sale's stock effect and marks the order
// invoiced, all in one transaction. Returns the created sale.
func (s *OrderService) InvoiceSalesOrder(ctx context.Context, id uint64) (*OrderHeader, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sales_order", "invoice",
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, int64(id)),
	)
	defer span.End()

	var sale *trade.Document
	err := s.retryOnConflict(ctx, trade.DocumentTypeInvoice, func() error {
		return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
			order, err := repos.Documents().FindByIDForUpdate(ctx, trade.OrderKindSalesOrder, id)
			if err != nil {
				return err
			}
			if order.Status != trade.SalesOrderStatusConfirmed {
				return shared.NewInvalidStateError("sales order %s must be confirmed before invoicing, status is %s", order.Number, order.Status)
			}

			lines := make([]trade.OrderLine, len(order.Lines))
			for i, l := range order.Lines {
				lines[i] = trade.OrderLine{ProductID: l.ProductID, Quantity: l.Quantity, Price: l.Price}
			}
			created, err := s.issue(ctx, repos, trade.OrderKindSale, order.PartyID, lines)
			if err != nil {
				return err
			}
			if err := order.MarkInvoiced(created.ID); err != nil {
				return err
			}
			if err := repos.Documents().UpdateStatus(ctx, order); err != nil {
				return err
			}
			sale = created
			return nil
		})
	})
	if err != nil {
		return nil, s.fail(ctx, span, trade.OrderKindSalesOrder, err)
	}

	s.succeed(ctx, span, sale)
	header := ToOrderHeader(sale)
	return &header, nil
}

// issue allocates a number, persists a new document with its lines and applies its stock effect
func (s *OrderService) issue(ctx context.Context, repos TransactionalRepositories, kind trade.OrderKind, partyID uint64, lines []trade.OrderLine) (*trade.Document, error) {
	number, err := repos.Allocator().Allocate(ctx, kind.DocumentType())
	if err != nil {
		return nil, err
	}
	doc, err := trade.NewDocument(kind, number, partyID, lines)
	if err != nil {
		return nil, err
	}
	if err := repos.Documents().Create(ctx, doc); err != nil {
		return nil, err
	}
	if err := inventory.Apply(ctx, repos.Ledger(), inventory.Net(stockMovements(kind, doc.Lines, 1))); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *OrderService) resolveParty(ctx context.Context, repos TransactionalRepositories, kind trade.OrderKind, ref shared.Reference) (uint64, error) {
	entity := EntityCustomer
	if kind.PartyKind() == trade.PartySupplier {
		entity = EntitySupplier
	}
	return s.resolver.Resolve(ctx, repos, entity, ref, kind.CreatesMissingParty())
}

func (s *OrderService) resolveLines(ctx context.Context, repos TransactionalRepositories, items []LineInput) ([]trade.OrderLine, error) {
	lines := make([]trade.OrderLine, 0, len(items))
	for _, item := range items {
		productID, err := s.resolver.Resolve(ctx, repos, EntityProduct, item.Product, false)
		if err != nil {
			return nil, err
		}
		line, err := trade.NewOrderLine(productID, item.Quantity, item.Price)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// retryOnConflict re-runs fn while it fails with a document number CONFLICT, up to s.retries extra times
func (s *OrderService) retryOnConflict(ctx context.Context, docType trade.DocumentType, fn func() error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = fn()
		if !errors.Is(err, shared.ErrConflict) || attempt >= s.retries || ctx.Err() != nil {
			return err
		}
		s.metrics.RecordNumberConflict(ctx, string(docType))
		logger.Ctx(ctx, s.logger).Warn("Document number conflict, retrying",
			zap.String("document_type", string(docType)),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}
}

func (s *OrderService) succeed(ctx context.Context, span trace.Span, doc *trade.Document) {
	telemetry.AnnotateDocument(span, doc.ID, doc.Number, doc.Total.String())
	s.metrics.RecordOrderCreated(ctx, string(doc.Kind), doc.Total, doc.ItemCount())
	logger.Ctx(ctx, s.logger).Info("Document created",
		zap.String("kind", string(doc.Kind)),
		zap.Uint64("id", doc.ID),
		zap.String("number", doc.Number),
		zap.Uint64("party_id", doc.PartyID),
		zap.String("total", doc.Total.String()),
		zap.Int("items", doc.ItemCount()),
	)
}

// fail normalizes err to a DomainError, records it on the span and in metrics and returns it
func (s *OrderService) fail(ctx context.Context, span trace.Span, kind trade.OrderKind, err error) error {
	de := shared.AsDomainError(err)
	telemetry.RecordFailure(span, de.Code, de)
	s.metrics.RecordOrderRejected(ctx, string(kind), de.Code)

	fields := []zap.Field{
		zap.String("kind", string(kind)),
		zap.String("code", de.Code),
		zap.Error(err),
	}
	if de.Code == shared.CodeInternal {
		logger.Ctx(ctx, s.logger).Error("Order operation failed", fields...)
	} else {
		logger.Ctx(ctx, s.logger).Info("Order operation rejected", fields...)
	}
	return de
}

// stockMovements maps lines to ledger movements for kind; sign -1 reverses them
func stockMovements(kind trade.OrderKind, lines []trade.OrderLine, sign int64) []inventory.Movement {
	movements := make([]inventory.Movement, 0, len(lines))
	for _, l := range lines {
		delta := kind.StockDelta(l.Quantity) * sign
		if delta == 0 {
			continue
		}
		movements = append(movements, inventory.Movement{ProductID: l.ProductID, Delta: delta})
	}
	return movements
}
