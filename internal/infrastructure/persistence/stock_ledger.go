package persistence

import (
	"context"
	"fmt"

	"github.com/mampirjaya/backoffice/internal/domain/inventory"
	"github.com/mampirjaya/backoffice/internal/domain/shared"
	"github.com/mampirjaya/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStockLedger applies stock deltas with a single conditional UPDATE, so the
// non-negative check and the write happen atomically under the row lock.
type GormStockLedger struct {
	db *gorm.DB
}

// NewGormStockLedger creates a new GormStockLedger
func NewGormStockLedger(db *gorm.DB) *GormStockLedger {
	return &GormStockLedger{db: db}
}

// ApplyDelta adds delta to the product's stock and returns the new level.
// Stock that would go negative fails with INSUFFICIENT_STOCK and is left unchanged.
func (l *GormStockLedger) ApplyDelta(ctx context.Context, productID uint64, delta int64) (int64, error) {
	db := l.db.WithContext(ctx)
	ref := fmt.Sprintf("#%d", productID)

	result := db.Model(&models.ProductModel{}).
		Where("id = ? AND stock + ? >= 0", productID, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		return 0, translateError(result.Error, "product", ref)
	}

	var product models.ProductModel
	err := db.Select("id", "name", "stock").Where("id = ?", productID).Take(&product).Error
	if err != nil {
		return 0, translateError(err, "product", ref)
	}
	if result.RowsAffected == 0 {
		return 0, shared.NewInsufficientStockError(product.ID, product.Name, product.Stock, -delta)
	}
	return product.Stock, nil
}

var _ inventory.StockLedger = (*GormStockLedger)(nil)
