package persistence

import (
	"context"

	"github.com/mampirjaya/backoffice/internal/domain/partner"
	"github.com/mampirjaya/backoffice/internal/domain/shared"
	"github.com/mampirjaya/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uint64) (*partner.Customer, error) {
	var m models.CustomerModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		return nil, translateError(err, "customer", id)
	}
	return m.ToDomain(), nil
}

// FindByName finds the oldest customer with exactly this name
func (r *GormCustomerRepository) FindByName(ctx context.Context, name string) (*partner.Customer, error) {
	var m models.CustomerModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("id ASC").Take(&m).Error; err != nil {
		return nil, translateError(err, "customer", name)
	}
	return m.ToDomain(), nil
}

// FindAll finds customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	var rows []models.CustomerModel
	err := r.db.WithContext(ctx).
		Scopes(searchScope("name", filter.Search), pageScope(filter, PartnerSortFields, "name")).
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err, "customer", filter.Search)
	}
	customers := make([]partner.Customer, len(rows))
	for i := range rows {
		customers[i] = *rows[i].ToDomain()
	}
	return customers, nil
}

// Count counts customers matching the filter
func (r *GormCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CustomerModel{}).
		Scopes(searchScope("name", filter.Search)).
		Count(&count).Error
	if err != nil {
		return 0, translateError(err, "customer", filter.Search)
	}
	return count, nil
}

// Save creates a customer or updates all of its columns
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	m := models.CustomerModelFromDomain(customer)
	db := r.db.WithContext(ctx)
	var err error
	if m.ID == 0 {
		err = db.Create(m).Error
	} else {
		err = db.Save(m).Error
	}
	if err != nil {
		return translateError(err, "customer", customer.Name)
	}
	customer.BaseEntity = m.BaseModel.ToDomain()
	return nil
}

var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)
