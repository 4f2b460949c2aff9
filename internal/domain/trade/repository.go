package trade

import (
	"context"
	"time"

	"github.com/mampirjaya/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DocumentRepository defines the interface for document persistence.
// Each kind is stored in its own header and item tables.
type DocumentRepository interface {
	// Create inserts the header and its lines; a duplicate number fails with CONFLICT
	Create(ctx context.Context, doc *Document) error

	// FindByID loads a header with its lines
	FindByID(ctx context.Context, kind OrderKind, id uint64) (*Document, error)

	// FindByIDForUpdate loads a header with its lines and locks the header row until commit
	FindByIDForUpdate(ctx context.Context, kind OrderKind, id uint64) (*Document, error)

	// Update rewrites the header scalar fields and replaces all lines
	Update(ctx context.Context, doc *Document) error

	// UpdateStatus persists a sales order status change
	UpdateStatus(ctx context.Context, doc *Document) error

	// Delete removes the header and its lines
	Delete(ctx context.Context, kind OrderKind, id uint64) error

	// LastIssuedNumber returns the highest number issued for the type, or "" if none
	LastIssuedNumber(ctx context.Context, docType DocumentType) (string, error)
}

// NumberAllocator hands out document numbers. Allocation joins the caller's transaction.
type NumberAllocator interface {
	Allocate(ctx context.Context, docType DocumentType) (string, error)
}

// DocumentSummary is a list row: header plus counterparty name
type DocumentSummary struct {
	ID        uint64
	Kind      OrderKind
	Number    string
	PartyID   uint64
	PartyName string
	Total     decimal.Decimal
	Status    SalesOrderStatus
	ItemCount int
	CreatedAt time.Time
}

// LineDetail is a line joined with its product
type LineDetail struct {
	OrderLine
	ProductName string
	Unit        string
}

// DocumentDetails is a header joined with its counterparty and product-enriched lines
type DocumentDetails struct {
	DocumentSummary
	PartyAddress string
	PartyPhone   string
	SaleID       *uint64
	Lines        []LineDetail
	UpdatedAt    time.Time
}

// DocumentReadModel serves read-side projections of documents
type DocumentReadModel interface {
	// List returns a page of summaries, newest first, and the total count
	List(ctx context.Context, kind OrderKind, filter shared.Filter) ([]DocumentSummary, int64, error)

	// GetDetails returns the header, counterparty and lines of one document
	GetDetails(ctx context.Context, kind OrderKind, id uint64) (*DocumentDetails, error)
}
