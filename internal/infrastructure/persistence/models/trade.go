package models

import (
	"fmt"

	"github.com/mampirjaya/backoffice/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// DocumentModel is implemented by the header model of every document kind
type DocumentModel interface {
	TableName() string
	GetID() uint64
	ToDomain() *trade.Document
	// ItemsFor stamps every item with the header id and returns a pointer to the item slice
	ItemsFor(headerID uint64) any
}

// DocumentSchema describes the table layout of one document kind
type DocumentSchema struct {
	Kind         trade.OrderKind
	Table        string
	ItemTable    string
	NumberColumn string
	PartyColumn  string
	PartyTable   string
	ForeignKey   string
	HasStatus    bool
}

var documentSchemas = map[trade.OrderKind]DocumentSchema{
	trade.OrderKindSale: {
		Kind:         trade.OrderKindSale,
		Table:        "sales",
		ItemTable:    "sale_items",
		NumberColumn: "invoice_number",
		PartyColumn:  "customer_id",
		PartyTable:   "customers",
		ForeignKey:   "sale_id",
	},
	trade.OrderKindPurchase: {
		Kind:         trade.OrderKindPurchase,
		Table:        "purchases",
		ItemTable:    "purchase_items",
		NumberColumn: "purchase_order",
		PartyColumn:  "supplier_id",
		PartyTable:   "suppliers",
		ForeignKey:   "purchase_id",
	},
	trade.OrderKindSalesOrder: {
		Kind:         trade.OrderKindSalesOrder,
		Table:        "sales_orders",
		ItemTable:    "sales_order_items",
		NumberColumn: "order_number",
		PartyColumn:  "customer_id",
		PartyTable:   "customers",
		ForeignKey:   "sales_order_id",
		HasStatus:    true,
	},
}

// SchemaFor returns the table layout of kind
func SchemaFor(kind trade.OrderKind) (DocumentSchema, error) {
	s, ok := documentSchemas[kind]
	if !ok {
		return DocumentSchema{}, fmt.Errorf("unknown order kind %q", kind)
	}
	return s, nil
}

// SchemaForType returns the table layout of the kind numbered by docType
func SchemaForType(docType trade.DocumentType) (DocumentSchema, error) {
	for _, s := range documentSchemas {
		if s.Kind.DocumentType() == docType {
			return s, nil
		}
	}
	return DocumentSchema{}, fmt.Errorf("unknown document type %q", docType)
}

// NewDocumentModel returns an empty header model for kind, ready to be scanned into
func NewDocumentModel(kind trade.OrderKind) (DocumentModel, error) {
	switch kind {
	case trade.OrderKindSale:
		return &SaleModel{}, nil
	case trade.OrderKindPurchase:
		return &PurchaseModel{}, nil
	case trade.OrderKindSalesOrder:
		return &SalesOrderModel{}, nil
	default:
		return nil, fmt.Errorf("unknown order kind %q", kind)
	}
}

// NewItemModel returns an empty item model for kind, for deletes by foreign key
func NewItemModel(kind trade.OrderKind) (any, error) {
	switch kind {
	case trade.OrderKindSale:
		return &SaleItemModel{}, nil
	case trade.OrderKindPurchase:
		return &PurchaseItemModel{}, nil
	case trade.OrderKindSalesOrder:
		return &SalesOrderItemModel{}, nil
	default:
		return nil, fmt.Errorf("unknown order kind %q", kind)
	}
}

// DocumentModelFromDomain creates the header model with items for a domain document
func DocumentModelFromDomain(doc *trade.Document) (DocumentModel, error) {
	switch doc.Kind {
	case trade.OrderKindSale:
		m := &SaleModel{InvoiceNumber: doc.Number, CustomerID: doc.PartyID, Total: doc.Total}
		m.FromDomainBaseEntity(doc.BaseEntity)
		for _, l := range doc.Lines {
			m.Items = append(m.Items, SaleItemModel{ID: l.ID, SaleID: doc.ID, ProductID: l.ProductID, Quantity: l.Quantity, Price: l.Price})
		}
		return m, nil
	case trade.OrderKindPurchase:
		m := &PurchaseModel{PurchaseOrder: doc.Number, SupplierID: doc.PartyID, Total: doc.Total}
		m.FromDomainBaseEntity(doc.BaseEntity)
		for _, l := range doc.Lines {
			m.Items = append(m.Items, PurchaseItemModel{ID: l.ID, PurchaseID: doc.ID, ProductID: l.ProductID, Quantity: l.Quantity, Price: l.Price})
		}
		return m, nil
	case trade.OrderKindSalesOrder:
		m := &SalesOrderModel{OrderNumber: doc.Number, CustomerID: doc.PartyID, Total: doc.Total, Status: string(doc.Status), SaleID: doc.SaleID}
		m.FromDomainBaseEntity(doc.BaseEntity)
		for _, l := range doc.Lines {
			m.Items = append(m.Items, SalesOrderItemModel{ID: l.ID, SalesOrderID: doc.ID, ProductID: l.ProductID, Quantity: l.Quantity, Price: l.Price})
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown order kind %q", doc.Kind)
	}
}

// SaleModel is the persistence model for a sale header
type SaleModel struct {
	BaseModel
	InvoiceNumber string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	CustomerID    uint64          `gorm:"not null;index"`
	Total         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Items         []SaleItemModel `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string { return "sales" }

// GetID returns the primary key
func (m *SaleModel) GetID() uint64 { return m.ID }

// ItemsFor stamps items with the sale id
func (m *SaleModel) ItemsFor(headerID uint64) any {
	for i := range m.Items {
		m.Items[i].SaleID = headerID
	}
	return &m.Items
}

// ToDomain converts the persistence model to a domain Document
func (m *SaleModel) ToDomain() *trade.Document {
	lines := make([]trade.OrderLine, len(m.Items))
	for i, it := range m.Items {
		lines[i] = it.toLine()
	}
	return &trade.Document{
		BaseEntity: m.BaseModel.ToDomain(),
		Kind:       trade.OrderKindSale,
		Number:     m.InvoiceNumber,
		PartyID:    m.CustomerID,
		Total:      m.Total,
		Lines:      lines,
	}
}

// SaleItemModel is one line of a sale
type SaleItemModel struct {
	ID        uint64          `gorm:"primaryKey;autoIncrement"`
	SaleID    uint64          `gorm:"not null;index"`
	ProductID uint64          `gorm:"not null;index"`
	Quantity  int64           `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (SaleItemModel) TableName() string { return "sale_items" }

func (it SaleItemModel) toLine() trade.OrderLine {
	return trade.OrderLine{ID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price}
}

// PurchaseModel is the persistence model for a purchase header
type PurchaseModel struct {
	BaseModel
	PurchaseOrder string              `gorm:"type:varchar(32);not null;uniqueIndex"`
	SupplierID    uint64              `gorm:"not null;index"`
	Total         decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	Items         []PurchaseItemModel `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (PurchaseModel) TableName() string { return "purchases" }

// GetID returns the primary key
func (m *PurchaseModel) GetID() uint64 { return m.ID }

// ItemsFor stamps items with the purchase id
func (m *PurchaseModel) ItemsFor(headerID uint64) any {
	for i := range m.Items {
		m.Items[i].PurchaseID = headerID
	}
	return &m.Items
}

// ToDomain converts the persistence model to a domain Document
func (m *PurchaseModel) ToDomain() *trade.Document {
	lines := make([]trade.OrderLine, len(m.Items))
	for i, it := range m.Items {
		lines[i] = trade.OrderLine{ID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price}
	}
	return &trade.Document{
		BaseEntity: m.BaseModel.ToDomain(),
		Kind:       trade.OrderKindPurchase,
		Number:     m.PurchaseOrder,
		PartyID:    m.SupplierID,
		Total:      m.Total,
		Lines:      lines,
	}
}

// PurchaseItemModel is one line of a purchase
type PurchaseItemModel struct {
	ID         uint64          `gorm:"primaryKey;autoIncrement"`
	PurchaseID uint64          `gorm:"not null;index"`
	ProductID  uint64          `gorm:"not null;index"`
	Quantity   int64           `gorm:"not null"`
	Price      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (PurchaseItemModel) TableName() string { return "purchase_items" }

// SalesOrderModel is the persistence model for a sales order header.
// SaleID links an invoiced order to the sale created from it.
type SalesOrderModel struct {
	BaseModel
	OrderNumber string                `gorm:"type:varchar(32);not null;uniqueIndex"`
	CustomerID  uint64                `gorm:"not null;index"`
	Total       decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	Status      string                `gorm:"type:varchar(20);not null;default:'pending';index"`
	SaleID      *uint64               `gorm:"index"`
	Items       []SalesOrderItemModel `gorm:"foreignKey:SalesOrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (SalesOrderModel) TableName() string { return "sales_orders" }

// GetID returns the primary key
func (m *SalesOrderModel) GetID() uint64 { return m.ID }

// ItemsFor stamps items with the sales order id
func (m *SalesOrderModel) ItemsFor(headerID uint64) any {
	for i := range m.Items {
		m.Items[i].SalesOrderID = headerID
	}
	return &m.Items
}

// ToDomain converts the persistence model to a domain Document
func (m *SalesOrderModel) ToDomain() *trade.Document {
	lines := make([]trade.OrderLine, len(m.Items))
	for i, it := range m.Items {
		lines[i] = trade.OrderLine{ID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price}
	}
	return &trade.Document{
		BaseEntity: m.BaseModel.ToDomain(),
		Kind:       trade.OrderKindSalesOrder,
		Number:     m.OrderNumber,
		PartyID:    m.CustomerID,
		Total:      m.Total,
		Lines:      lines,
		Status:     trade.SalesOrderStatus(m.Status),
		SaleID:     m.SaleID,
	}
}

// SalesOrderItemModel is one line of a sales order
type SalesOrderItemModel struct {
	ID           uint64          `gorm:"primaryKey;autoIncrement"`
	SalesOrderID uint64          `gorm:"not null;index"`
	ProductID    uint64          `gorm:"not null;index"`
	Quantity     int64           `gorm:"not null"`
	Price        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (SalesOrderItemModel) TableName() string { return "sales_order_items" }

// AllModels lists every model, in dependency order, for AutoMigrate
func AllModels() []any {
	return []any{
		&ProductModel{},
		&CustomerModel{},
		&SupplierModel{},
		&SaleModel{},
		&SaleItemModel{},
		&PurchaseModel{},
		&PurchaseItemModel{},
		&SalesOrderModel{},
		&SalesOrderItemModel{},
		&DocumentSequenceModel{},
	}
}
