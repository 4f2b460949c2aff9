package models

import (
	"github.com/mampirjaya/backoffice/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
// The check constraint backs the stock ledger: stock can never go negative.
type ProductModel struct {
	BaseModel
	Name     string          `gorm:"type:varchar(200);not null;index"`
	Category string          `gorm:"type:varchar(100);not null;default:''"`
	Price    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Stock    int64           `gorm:"not null;default:0;check:chk_products_stock_non_negative,stock >= 0"`
	Unit     string          `gorm:"type:varchar(20);not null;default:''"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Category:   m.Category,
		Price:      m.Price,
		Stock:      m.Stock,
		Unit:       m.Unit,
	}
}

// ProductModelFromDomain creates a persistence model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price,
		Stock:    p.Stock,
		Unit:     p.Unit,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}
