package persistence

import (
	"context"

	"github.com/mampirjaya/backoffice/internal/domain/catalog"
	"github.com/mampirjaya/backoffice/internal/domain/shared"
	"github.com/mampirjaya/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uint64) (*catalog.Product, error) {
	var m models.ProductModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		return nil, translateError(err, "product", id)
	}
	return m.ToDomain(), nil
}

// FindByName finds the oldest product with exactly this name
func (r *GormProductRepository) FindByName(ctx context.Context, name string) (*catalog.Product, error) {
	var m models.ProductModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("id ASC").Take(&m).Error; err != nil {
		return nil, translateError(err, "product", name)
	}
	return m.ToDomain(), nil
}

// FindByIDs finds multiple products by their IDs
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uint64) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, translateError(err, "product", ids)
	}
	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products, nil
}

// FindAll finds products matching the filter; Search matches name substrings
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var rows []models.ProductModel
	err := r.db.WithContext(ctx).
		Scopes(searchScope("name", filter.Search), pageScope(filter, ProductSortFields, "name")).
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err, "product", filter.Search)
	}
	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products, nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Scopes(searchScope("name", filter.Search)).
		Count(&count).Error
	if err != nil {
		return 0, translateError(err, "product", filter.Search)
	}
	return count, nil
}

// Save creates a product or updates all of its columns
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	m := models.ProductModelFromDomain(product)
	db := r.db.WithContext(ctx)
	var err error
	if m.ID == 0 {
		err = db.Create(m).Error
	} else {
		err = db.Save(m).Error
	}
	if err != nil {
		return translateError(err, "product", product.Name)
	}
	product.BaseEntity = m.BaseModel.ToDomain()
	return nil
}

// CountLowStock counts products with stock at or below threshold
func (r *GormProductRepository) CountLowStock(ctx context.Context, threshold int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("stock <= ?", threshold).
		Count(&count).Error
	if err != nil {
		return 0, translateError(err, "product", threshold)
	}
	return count, nil
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
