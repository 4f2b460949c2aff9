package telemetry

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const (
	attrOrderKind    = attribute.Key("order.kind")
	attrErrorCode    = attribute.Key("error.code")
	attrDocumentType = attribute.Key("document.type")
)

// LowStockProvider counts products whose stock is at or below a threshold
type LowStockProvider interface {
	CountLowStock(ctx context.Context, threshold int64) (int64, error)
}

// OrderMetrics records order outcomes as OpenTelemetry instruments
type OrderMetrics struct {
	created   metric.Int64Counter
	amount    metric.Float64Counter
	items     metric.Int64Histogram
	rejected  metric.Int64Counter
	conflicts metric.Int64Counter
	logger    *zap.Logger
}

// NewOrderMetrics creates the order instruments on meter
func NewOrderMetrics(meter metric.Meter, logger *zap.Logger) (*OrderMetrics, error) {
	m := &OrderMetrics{logger: logger}
	var err error

	if m.created, err = meter.Int64Counter("orders.created",
		metric.WithDescription("Documents committed, by kind"),
		metric.WithUnit("{document}")); err != nil {
		return nil, err
	}
	if m.amount, err = meter.Float64Counter("orders.amount",
		metric.WithDescription("Sum of committed document totals, by kind")); err != nil {
		return nil, err
	}
	if m.items, err = meter.Int64Histogram("orders.items",
		metric.WithDescription("Line items per committed document"),
		metric.WithExplicitBucketBoundaries(1, 2, 5, 10, 20, 50, 100)); err != nil {
		return nil, err
	}
	if m.rejected, err = meter.Int64Counter("orders.rejected",
		metric.WithDescription("Failed order operations, by kind and error code")); err != nil {
		return nil, err
	}
	if m.conflicts, err = meter.Int64Counter("orders.number_conflicts",
		metric.WithDescription("Document number collisions that triggered a retry")); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordOrderCreated records a committed document
func (m *OrderMetrics) RecordOrderCreated(ctx context.Context, kind string, total decimal.Decimal, items int) {
	attrs := metric.WithAttributes(attrOrderKind.String(kind))
	m.created.Add(ctx, 1, attrs)
	m.amount.Add(ctx, total.InexactFloat64(), attrs)
	m.items.Record(ctx, int64(items), attrs)
}

// RecordOrderRejected records a failed order with its error code
func (m *OrderMetrics) RecordOrderRejected(ctx context.Context, kind string, code string) {
	m.rejected.Add(ctx, 1, metric.WithAttributes(attrOrderKind.String(kind), attrErrorCode.String(code)))
}

// RecordNumberConflict records a document number collision
func (m *OrderMetrics) RecordNumberConflict(ctx context.Context, docType string) {
	m.conflicts.Add(ctx, 1, metric.WithAttributes(attrDocumentType.String(docType)))
}

// RegisterLowStockGauge reports the number of products at or below threshold.
// The provider is queried on each collection with a short timeout.
func RegisterLowStockGauge(meter metric.Meter, provider LowStockProvider, threshold int64, logger *zap.Logger) error {
	gauge, err := meter.Int64ObservableGauge("inventory.low_stock_products",
		metric.WithDescription("Products with stock at or below the low-stock threshold"))
	if err != nil {
		return err
	}
	_, err = meter.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		n, err := provider.CountLowStock(ctx, threshold)
		if err != nil {
			logger.Warn("Failed to collect low stock count", zap.Error(err))
			return nil
		}
		o.ObserveInt64(gauge, n, metric.WithAttributes(attribute.Int64("threshold", threshold)))
		return nil
	}, gauge)
	return err
}
