package persistence

import (
	"path/filepath"
	"testing"

	"github.com/mampirjaya/backoffice/internal/infrastructure/config"
	"github.com/mampirjaya/backoffice/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newSQLiteDB opens a migrated file-backed sqlite database private to the test.
// A single connection serializes transactions the way row locks would.
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := NewDatabase(&config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		Path:         filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db.DB
}

func seedProduct(t *testing.T, db *gorm.DB, name string, stock int64, price int64) *models.ProductModel {
	t.Helper()
	p := &models.ProductModel{Name: name, Category: "material", Price: decimal.NewFromInt(price), Stock: stock, Unit: "sak"}
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedCustomer(t *testing.T, db *gorm.DB, name string) *models.CustomerModel {
	t.Helper()
	c := &models.CustomerModel{Name: name}
	require.NoError(t, db.Create(c).Error)
	return c
}

func seedSupplier(t *testing.T, db *gorm.DB, name string) *models.SupplierModel {
	t.Helper()
	s := &models.SupplierModel{Name: name}
	require.NoError(t, db.Create(s).Error)
	return s
}

func stockOf(t *testing.T, db *gorm.DB, productID uint64) int64 {
	t.Helper()
	var p models.ProductModel
	require.NoError(t, db.Where("id = ?", productID).Take(&p).Error)
	return p.Stock
}

func countRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table(table).Count(&n).Error)
	return n
}
