package trade

// OrderKind identifies the document an order creates
type OrderKind string

const (
	OrderKindSale       OrderKind = "sale"
	OrderKindPurchase   OrderKind = "purchase"
	OrderKindSalesOrder OrderKind = "sales_order"
)

// PartyKind identifies the counterparty entity of a document
type PartyKind string

const (
	PartyCustomer PartyKind = "customer"
	PartySupplier PartyKind = "supplier"
)

// IsValid checks if the kind is known
func (k OrderKind) IsValid() bool {
	switch k {
	case OrderKindSale, OrderKindPurchase, OrderKindSalesOrder:
		return true
	}
	return false
}

// DocumentType returns the numbering sequence used by the kind
func (k OrderKind) DocumentType() DocumentType {
	switch k {
	case OrderKindPurchase:
		return DocumentTypePurchaseOrder
	case OrderKindSalesOrder:
		return DocumentTypeSalesOrder
	default:
		return DocumentTypeInvoice
	}
}

// PartyKind returns the counterparty entity kind
func (k OrderKind) PartyKind() PartyKind {
	if k == OrderKindPurchase {
		return PartySupplier
	}
	return PartyCustomer
}

// CreatesMissingParty reports whether a name reference to an unknown party creates it.
// Customers are created on demand; suppliers must already exist.
func (k OrderKind) CreatesMissingParty() bool {
	return k.PartyKind() == PartyCustomer
}

// StockDelta returns the signed stock change for a line of quantity
func (k OrderKind) StockDelta(quantity int64) int64 {
	switch k {
	case OrderKindSale:
		return -quantity
	case OrderKindPurchase:
		return quantity
	default:
		return 0
	}
}

// MovesStock reports whether documents of this kind change stock
func (k OrderKind) MovesStock() bool {
	return k == OrderKindSale || k == OrderKindPurchase
}

// String returns a human readable name
func (k OrderKind) String() string {
	switch k {
	case OrderKindSale:
		return "sale"
	case OrderKindPurchase:
		return "purchase"
	case OrderKindSalesOrder:
		return "sales order"
	default:
		return string(k)
	}
}
