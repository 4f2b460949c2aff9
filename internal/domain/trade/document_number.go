package trade

import (
	"fmt"
	"strconv"
	"strings"
)

// DocumentType identifies a numbering sequence. The value is the number prefix.
type DocumentType string

const (
	DocumentTypeInvoice       DocumentType = "INV"
	DocumentTypePurchaseOrder DocumentType = "PO"
	DocumentTypeSalesOrder    DocumentType = "SO"
)

// documentNumberWidth is the minimum zero-padded width of the sequence part
const documentNumberWidth = 6

// IsValid checks if the document type is known
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeInvoice, DocumentTypePurchaseOrder, DocumentTypeSalesOrder:
		return true
	}
	return false
}

// Prefix returns the number prefix for the type
func (t DocumentType) Prefix() string {
	return string(t)
}

// DocumentTypes lists every numbered document type
func DocumentTypes() []DocumentType {
	return []DocumentType{DocumentTypeInvoice, DocumentTypePurchaseOrder, DocumentTypeSalesOrder}
}

// FormatDocumentNumber renders prefix-seq with the sequence zero-padded to six digits.
// Sequences beyond 999999 widen instead of wrapping.
func FormatDocumentNumber(t DocumentType, seq int64) string {
	return fmt.Sprintf("%s-%0*d", t.Prefix(), documentNumberWidth, seq)
}

// ParseDocumentNumber extracts the sequence from a number of the given type
func ParseDocumentNumber(t DocumentType, number string) (int64, error) {
	prefix := t.Prefix() + "-"
	if !strings.HasPrefix(number, prefix) {
		return 0, fmt.Errorf("document number %q does not start with %q", number, prefix)
	}
	seq, err := strconv.ParseInt(strings.TrimPrefix(number, prefix), 10, 64)
	if err != nil || seq <= 0 {
		return 0, fmt.Errorf("document number %q has no positive sequence", number)
	}
	return seq, nil
}
