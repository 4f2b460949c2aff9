package models

import (
	"github.com/mampirjaya/backoffice/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer domain entity.
// Names are not unique: name lookups resolve to the oldest match.
type CustomerModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(200);not null;index"`
	Address string `gorm:"type:varchar(500);not null;default:''"`
	Phone   string `gorm:"type:varchar(50);not null;default:''"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Address:    m.Address,
		Phone:      m.Phone,
	}
}

// CustomerModelFromDomain creates a persistence model from a domain Customer
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{Name: c.Name, Address: c.Address, Phone: c.Phone}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// SupplierModel is the persistence model for the Supplier domain entity
type SupplierModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(200);not null;index"`
	Address string `gorm:"type:varchar(500);not null;default:''"`
	Phone   string `gorm:"type:varchar(50);not null;default:''"`
	Email   string `gorm:"type:varchar(200);not null;default:''"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier
func (m *SupplierModel) ToDomain() *partner.Supplier {
	return &partner.Supplier{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Address:    m.Address,
		Phone:      m.Phone,
		Email:      m.Email,
	}
}

// SupplierModelFromDomain creates a persistence model from a domain Supplier
func SupplierModelFromDomain(s *partner.Supplier) *SupplierModel {
	m := &SupplierModel{Name: s.Name, Address: s.Address, Phone: s.Phone, Email: s.Email}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}
