package partner

import (
	"time"

	"github.com/mampirjaya/backoffice/internal/domain/partner"
)

// CreateCustomerRequest represents a request to create a customer
// @Description Request body for creating a customer
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200" example:"Toko Bangunan Jaya"`
	Address string `json:"address" binding:"max=500" example:"Jl. Raya Bogor No. 12"`
	Phone   string `json:"phone" binding:"max=50" example:"0812-3456-7890"`
}

// CreateSupplierRequest represents a request to create a supplier
// @Description Request body for creating a supplier
type CreateSupplierRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200" example:"PT Semen Indonesia"`
	Address string `json:"address" binding:"max=500" example:"Jl. Veteran, Gresik"`
	Phone   string `json:"phone" binding:"max=50" example:"031-398-1732"`
	Email   string `json:"email" binding:"omitempty,email,max=200" example:"sales@semenindonesia.example"`
}

// ListFilter represents paging options for partner lists
type ListFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
	Search   string `form:"q"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToCustomerResponse converts a domain customer to a response
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Address:   c.Address,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}

// ToSupplierResponse converts a domain supplier to a response
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Address:   s.Address,
		Phone:     s.Phone,
		Email:     s.Email,
		CreatedAt: s.CreatedAt,
	}
}
