package persistence

import (
	"context"

	"github.com/mampirjaya/backoffice/internal/domain/partner"
	"github.com/mampirjaya/backoffice/internal/domain/shared"
	"github.com/mampirjaya/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSupplierRepository implements SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByID finds a supplier by its ID
func (r *GormSupplierRepository) FindByID(ctx context.Context, id uint64) (*partner.Supplier, error) {
	var m models.SupplierModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		return nil, translateError(err, "supplier", id)
	}
	return m.ToDomain(), nil
}

// FindByName finds the oldest supplier with exactly this name
func (r *GormSupplierRepository) FindByName(ctx context.Context, name string) (*partner.Supplier, error) {
	var m models.SupplierModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("id ASC").Take(&m).Error; err != nil {
		return nil, translateError(err, "supplier", name)
	}
	return m.ToDomain(), nil
}

// FindAll finds suppliers matching the filter
func (r *GormSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	var rows []models.SupplierModel
	err := r.db.WithContext(ctx).
		Scopes(searchScope("name", filter.Search), pageScope(filter, PartnerSortFields, "name")).
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err, "supplier", filter.Search)
	}
	suppliers := make([]partner.Supplier, len(rows))
	for i := range rows {
		suppliers[i] = *rows[i].ToDomain()
	}
	return suppliers, nil
}

// Count counts suppliers matching the filter
func (r *GormSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SupplierModel{}).
		Scopes(searchScope("name", filter.Search)).
		Count(&count).Error
	if err != nil {
		return 0, translateError(err, "supplier", filter.Search)
	}
	return count, nil
}

// Save creates a supplier or updates all of its columns
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	m := models.SupplierModelFromDomain(supplier)
	db := r.db.WithContext(ctx)
	var err error
	if m.ID == 0 {
		err = db.Create(m).Error
	} else {
		err = db.Save(m).Error
	}
	if err != nil {
		return translateError(err, "supplier", supplier.Name)
	}
	supplier.BaseEntity = m.BaseModel.ToDomain()
	return nil
}

var _ partner.SupplierRepository = (*GormSupplierRepository)(nil)
