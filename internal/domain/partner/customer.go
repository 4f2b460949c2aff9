package partner

import (
	"strings"

	"github.com/mampirjaya/backoffice/internal/domain/shared"
)

// Customer represents a buyer. Customers are created explicitly or implicitly
// when a sale names a customer that does not exist yet.
type Customer struct {
	shared.BaseEntity
	Name    string
	Address string
	Phone   string
}

// NewCustomer creates a new customer
func NewCustomer(name, address, phone string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if err := validatePartyName("customer", name); err != nil {
		return nil, err
	}
	if err := validatePhone(phone); err != nil {
		return nil, err
	}
	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Address:    strings.TrimSpace(address),
		Phone:      strings.TrimSpace(phone),
	}, nil
}

// NewCustomerFromDetails creates a customer from the details carried by a name reference
func NewCustomerFromDetails(name string, details shared.PartyDetails) (*Customer, error) {
	return NewCustomer(name, details.Address, details.Phone)
}

func validatePartyName(kind, name string) error {
	if name == "" {
		return shared.NewValidationError("%s name is required", kind)
	}
	if len(name) > 200 {
		return shared.NewValidationError("%s name cannot exceed 200 characters", kind)
	}
	return nil
}

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewValidationError("phone cannot exceed 50 characters")
	}
	return nil
}
