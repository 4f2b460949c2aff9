package inventory

import (
	"context"
	"sort"
)

// StockLedger applies signed quantity deltas to product stock.
// ApplyDelta is a single atomic read-modify-write: if stock + delta would be
// negative it fails with INSUFFICIENT_STOCK and leaves stock unchanged.
// A missing product fails with NOT_FOUND.
type StockLedger interface {
	ApplyDelta(ctx context.Context, productID uint64, delta int64) (newStock int64, err error)
}

// Movement is a pending stock change for one product
type Movement struct {
	ProductID uint64
	Delta     int64
}

// Net folds movements per product, drops zero nets and orders the result by product id.
// Applying movements in a fixed product order keeps concurrent orders from deadlocking on row locks.
func Net(movements []Movement) []Movement {
	index := make(map[uint64]int, len(movements))
	out := make([]Movement, 0, len(movements))
	for _, m := range movements {
		if i, ok := index[m.ProductID]; ok {
			out[i].Delta += m.Delta
			continue
		}
		index[m.ProductID] = len(out)
		out = append(out, m)
	}
	result := out[:0]
	for _, m := range out {
		if m.Delta != 0 {
			result = append(result, m)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ProductID < result[j].ProductID })
	return result
}

// Apply runs every movement through the ledger, stopping at the first failure
func Apply(ctx context.Context, ledger StockLedger, movements []Movement) error {
	for _, m := range movements {
		if _, err := ledger.ApplyDelta(ctx, m.ProductID, m.Delta); err != nil {
			return err
		}
	}
	return nil
}
