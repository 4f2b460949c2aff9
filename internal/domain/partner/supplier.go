package partner

import (
	"regexp"
	"strings"

	"github.com/mampirjaya/backoffice/internal/domain/shared"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Supplier represents a vendor goods are purchased from.
// Suppliers are never created implicitly by an order.
type Supplier struct {
	shared.BaseEntity
	Name    string
	Address string
	Phone   string
	Email   string
}

// NewSupplier creates a new supplier
func NewSupplier(name, address, phone, email string) (*Supplier, error) {
	name = strings.TrimSpace(name)
	if err := validatePartyName("supplier", name); err != nil {
		return nil, err
	}
	if err := validatePhone(phone); err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	if email != "" && !emailRegex.MatchString(email) {
		return nil, shared.NewValidationError("invalid supplier email: %s", email)
	}
	return &Supplier{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Address:    strings.TrimSpace(address),
		Phone:      strings.TrimSpace(phone),
		Email:      email,
	}, nil
}
