package trade

import (
	"context"

	"github.com/shopspring/decimal"
)

// OrderMetrics receives business measurements from the order service
type OrderMetrics interface {
	// RecordOrderCreated records a committed document
	RecordOrderCreated(ctx context.Context, kind string, total decimal.Decimal, items int)
	// RecordOrderRejected records a failed order with its error code
	RecordOrderRejected(ctx context.Context, kind string, code string)
	// RecordNumberConflict records a document number collision that triggered a retry
	RecordNumberConflict(ctx context.Context, docType string)
}

type noopOrderMetrics struct{}

func (noopOrderMetrics) RecordOrderCreated(context.Context, string, decimal.Decimal, int) {}
func (noopOrderMetrics) RecordOrderRejected(context.Context, string, string)             {}
func (noopOrderMetrics) RecordNumberConflict(context.Context, string)                    {}
