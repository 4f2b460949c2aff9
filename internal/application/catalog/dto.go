package catalog

import (
	"time"

	"github.com/mampirjaya/backoffice/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
// @Description Request body for creating a product
type CreateProductRequest struct {
	Name     string          `json:"name" binding:"required,min=1,max=200" example:"Semen Gresik 40kg"`
	Category string          `json:"category" binding:"max=100" example:"Semen"`
	Unit     string          `json:"unit" binding:"max=20" example:"sak"`
	Price    decimal.Decimal `json:"price" swaggertype:"string" example:"65000.00"`
	Stock    int64           `json:"stock" binding:"min=0" example:"150"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
	Search   string `form:"q"`
}

// ProductResponse represents a product in API responses
// @Description Product response
type ProductResponse struct {
	ID        uint64          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Unit      string          `json:"unit"`
	Price     decimal.Decimal `json:"price" swaggertype:"string"`
	Stock     int64           `json:"stock"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ToProductResponse converts a domain product to a response
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Unit:      p.Unit,
		Price:     p.Price,
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}
