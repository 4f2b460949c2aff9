package handler

import (
	"time"

	tradeapp "github.com/mampirjaya/backoffice/internal/application/trade"
	"github.com/mampirjaya/backoffice/internal/domain/shared"
	"github.com/mampirjaya/backoffice/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderLineRequest is one submitted line. Product is a product id (number or
// numeric string) or an exact product name. Price is required; zero is a valid price.
// @Description Order line; product is an id or an exact product name
type OrderLineRequest struct {
	Product  shared.Reference `json:"product" swaggertype:"string" example:"Semen Gresik 40kg"`
	Quantity int64            `json:"quantity" binding:"required,gt=0" example:"10"`
	Price    *decimal.Decimal `json:"price" binding:"required" swaggertype:"string" example:"65000.00"`
}

// CreateSaleRequest is the body of POST /sales and PUT /sales/:id.
// Customer is an id or a name; an unknown name creates the customer from CustomerDetails.
// @Description Request body for creating or replacing a sale or sales order
type CreateSaleRequest struct {
	Customer        shared.Reference     `json:"customer" swaggertype:"string" example:"Toko Bangunan Jaya"`
	CustomerDetails *shared.PartyDetails `json:"customerDetails"`
	Items           []OrderLineRequest   `json:"items" binding:"required,min=1,dive"`
}

// CreatePurchaseRequest is the body of POST /purchases and PUT /purchases/:id
// @Description Request body for creating or replacing a purchase; supplier must exist
type CreatePurchaseRequest struct {
	Supplier shared.Reference   `json:"supplier" swaggertype:"integer" example:"3"`
	Items    []OrderLineRequest `json:"items" binding:"required,min=1,dive"`
}

// ChangeStatusRequest is the body of PATCH /sales-orders/:id/status
// @Description Target status of a sales order
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed" enums:"pending,confirmed" example:"confirmed"`
}

// ListOrdersQuery holds paging parameters of document listings
type ListOrdersQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
	Search   string `form:"q" binding:"max=100"`
}

func (q ListOrdersQuery) toFilter() tradeapp.ListFilter {
	return tradeapp.ListFilter{Page: q.Page, PageSize: q.PageSize, Search: q.Search}
}

func (r CreateSaleRequest) party() shared.Reference {
	if r.CustomerDetails != nil {
		return r.Customer.WithDetails(*r.CustomerDetails)
	}
	return r.Customer
}

func toLineInputs(items []OrderLineRequest) ([]tradeapp.LineInput, error) {
	out := make([]tradeapp.LineInput, len(items))
	for i, item := range items {
		if item.Price == nil {
			return nil, shared.NewValidationError("items[%d].price is required", i)
		}
		out[i] = tradeapp.LineInput{Product: item.Product, Quantity: item.Quantity, Price: *item.Price}
	}
	return out, nil
}

// SaleResponse is a created or updated sale
// @Description Created or updated sale
type SaleResponse struct {
	ID            uint64          `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	CustomerID    uint64          `json:"customerId"`
	Total         decimal.Decimal `json:"total" swaggertype:"string"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// PurchaseResponse is a created or updated purchase
// @Description Created or updated purchase
type PurchaseResponse struct {
	ID            uint64          `json:"id"`
	PurchaseOrder string          `json:"purchaseOrder"`
	SupplierID    uint64          `json:"supplierId"`
	Total         decimal.Decimal `json:"total" swaggertype:"string"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// SalesOrderResponse is a created or updated sales order
// @Description Created or updated sales order
type SalesOrderResponse struct {
	ID          uint64          `json:"id"`
	OrderNumber string          `json:"orderNumber"`
	CustomerID  uint64          `json:"customerId"`
	Total       decimal.Decimal `json:"total" swaggertype:"string"`
	Status      string          `json:"status"`
	SaleID      *uint64         `json:"saleId,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// OrderLineResponse is a document line joined with its product
// @Description Document line with product name
type OrderLineResponse struct {
	ID          uint64          `json:"id"`
	ProductID   uint64          `json:"productId"`
	ProductName string          `json:"productName"`
	Unit        string          `json:"unit"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price" swaggertype:"string"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string"`
}

// SaleListItem is a row of GET /sales
// @Description Sale list item
type SaleListItem struct {
	SaleResponse
	CustomerName string `json:"customerName"`
	ItemCount    int    `json:"itemCount"`
}

// SaleDetailResponse is GET /sales/:id
// @Description Sale with customer and items
type SaleDetailResponse struct {
	SaleListItem
	CustomerAddress string              `json:"customerAddress"`
	CustomerPhone   string              `json:"customerPhone"`
	Items           []OrderLineResponse `json:"items"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// PurchaseListItem is a row of GET /purchases
// @Description Purchase list item
type PurchaseListItem struct {
	PurchaseResponse
	SupplierName string `json:"supplierName"`
	ItemCount    int    `json:"itemCount"`
}

// PurchaseDetailResponse is GET /purchases/:id
// @Description Purchase with supplier and items
type PurchaseDetailResponse struct {
	PurchaseListItem
	SupplierAddress string              `json:"supplierAddress"`
	SupplierPhone   string              `json:"supplierPhone"`
	Items           []OrderLineResponse `json:"items"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// SalesOrderListItem is a row of GET /sales-orders
// @Description Sales order list item
type SalesOrderListItem struct {
	ID           uint64          `json:"id"`
	OrderNumber  string          `json:"orderNumber"`
	CustomerID   uint64          `json:"customerId"`
	CustomerName string          `json:"customerName"`
	Total        decimal.Decimal `json:"total" swaggertype:"string"`
	Status       string          `json:"status"`
	ItemCount    int             `json:"itemCount"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// SalesOrderDetailResponse is GET /sales-orders/:id
// @Description Sales order with customer and items
type SalesOrderDetailResponse struct {
	SalesOrderListItem
	CustomerAddress string              `json:"customerAddress"`
	CustomerPhone   string              `json:"customerPhone"`
	SaleID          *uint64             `json:"saleId,omitempty"`
	Items           []OrderLineResponse `json:"items"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

func toSaleResponse(h *tradeapp.OrderHeader) SaleResponse {
	return SaleResponse{ID: h.ID, InvoiceNumber: h.Number, CustomerID: h.PartyID, Total: h.Total, CreatedAt: h.CreatedAt}
}

func toPurchaseResponse(h *tradeapp.OrderHeader) PurchaseResponse {
	return PurchaseResponse{ID: h.ID, PurchaseOrder: h.Number, SupplierID: h.PartyID, Total: h.Total, CreatedAt: h.CreatedAt}
}

func toSalesOrderResponse(h *tradeapp.OrderHeader) SalesOrderResponse {
	return SalesOrderResponse{
		ID:          h.ID,
		OrderNumber: h.Number,
		CustomerID:  h.PartyID,
		Total:       h.Total,
		Status:      string(h.Status),
		SaleID:      h.SaleID,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}

func toLineResponses(lines []trade.LineDetail) []OrderLineResponse {
	out := make([]OrderLineResponse, len(lines))
	for i, l := range lines {
		out[i] = OrderLineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Unit:        l.Unit,
			Quantity:    l.Quantity,
			Price:       l.Price,
			Amount:      l.Amount(),
		}
	}
	return out
}

func toSaleListItem(s trade.DocumentSummary) SaleListItem {
	return SaleListItem{
		SaleResponse: SaleResponse{ID: s.ID, InvoiceNumber: s.Number, CustomerID: s.PartyID, Total: s.Total, CreatedAt: s.CreatedAt},
		CustomerName: s.PartyName,
		ItemCount:    s.ItemCount,
	}
}

func toSaleDetail(d *trade.DocumentDetails) SaleDetailResponse {
	return SaleDetailResponse{
		SaleListItem:    toSaleListItem(d.DocumentSummary),
		CustomerAddress: d.PartyAddress,
		CustomerPhone:   d.PartyPhone,
		Items:           toLineResponses(d.Lines),
		UpdatedAt:       d.UpdatedAt,
	}
}

func toPurchaseListItem(s trade.DocumentSummary) PurchaseListItem {
	return PurchaseListItem{
		PurchaseResponse: PurchaseResponse{ID: s.ID, PurchaseOrder: s.Number, SupplierID: s.PartyID, Total: s.Total, CreatedAt: s.CreatedAt},
		SupplierName:     s.PartyName,
		ItemCount:        s.ItemCount,
	}
}

func toPurchaseDetail(d *trade.DocumentDetails) PurchaseDetailResponse {
	return PurchaseDetailResponse{
		PurchaseListItem: toPurchaseListItem(d.DocumentSummary),
		SupplierAddress:  d.PartyAddress,
		SupplierPhone:    d.PartyPhone,
		Items:            toLineResponses(d.Lines),
		UpdatedAt:        d.UpdatedAt,
	}
}

func toSalesOrderListItem(s trade.DocumentSummary) SalesOrderListItem {
	return SalesOrderListItem{
		ID:           s.ID,
		OrderNumber:  s.Number,
		CustomerID:   s.PartyID,
		CustomerName: s.PartyName,
		Total:        s.Total,
		Status:       string(s.Status),
		ItemCount:    s.ItemCount,
		CreatedAt:    s.CreatedAt,
	}
}

func toSalesOrderDetail(d *trade.DocumentDetails) SalesOrderDetailResponse {
	return SalesOrderDetailResponse{
		SalesOrderListItem: toSalesOrderListItem(d.DocumentSummary),
		CustomerAddress:    d.PartyAddress,
		CustomerPhone:      d.PartyPhone,
		SaleID:             d.SaleID,
		Items:              toLineResponses(d.Lines),
		UpdatedAt:          d.UpdatedAt,
	}
}
