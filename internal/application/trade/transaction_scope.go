package trade

import (
	"context"

	"github.com/mampirjaya/backoffice/internal/domain/catalog"
	"github.com/mampirjaya/backoffice/internal/domain/inventory"
	"github.com/mampirjaya/backoffice/internal/domain/partner"
	"github.com/mampirjaya/backoffice/internal/domain/trade"
)

// TransactionScope provides transactional access to the order repositories.
// All repository operations inside Execute are committed or rolled back together.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, or ctx is cancelled before commit, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to every store an order touches.
// All repositories returned share the same underlying database transaction.
type TransactionalRepositories interface {
	// Products returns the product repository scoped to the current transaction
	Products() catalog.ProductRepository
	// Customers returns the customer repository scoped to the current transaction
	Customers() partner.CustomerRepository
	// Suppliers returns the supplier repository scoped to the current transaction
	Suppliers() partner.SupplierRepository
	// Documents returns the document repository scoped to the current transaction
	Documents() trade.DocumentRepository
	// Allocator returns the document number allocator scoped to the current transaction
	Allocator() trade.NumberAllocator
	// Ledger returns the stock ledger scoped to the current transaction
	Ledger() inventory.StockLedger
}

// NoOpTransactionScope runs the function against fixed repositories without a transaction.
// Useful for unit tests with mocked repositories.
type NoOpTransactionScope struct {
	products  catalog.ProductRepository
	customers partner.CustomerRepository
	suppliers partner.SupplierRepository
	documents trade.DocumentRepository
	allocator trade.NumberAllocator
	ledger    inventory.StockLedger
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	products catalog.ProductRepository,
	customers partner.CustomerRepository,
	suppliers partner.SupplierRepository,
	documents trade.DocumentRepository,
	allocator trade.NumberAllocator,
	ledger inventory.StockLedger,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		products:  products,
		customers: customers,
		suppliers: suppliers,
		documents: documents,
		allocator: allocator,
		ledger:    ledger,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Products returns the product repository.
func (s *NoOpTransactionScope) Products() catalog.ProductRepository { return s.products }

// Customers returns the customer repository.
func (s *NoOpTransactionScope) Customers() partner.CustomerRepository { return s.customers }

// Suppliers returns the supplier repository.
func (s *NoOpTransactionScope) Suppliers() partner.SupplierRepository { return s.suppliers }

// Documents returns the document repository.
func (s *NoOpTransactionScope) Documents() trade.DocumentRepository { return s.documents }

// Allocator returns the number allocator.
func (s *NoOpTransactionScope) Allocator() trade.NumberAllocator { return s.allocator }

// Ledger returns the stock ledger.
func (s *NoOpTransactionScope) Ledger() inventory.StockLedger { return s.ledger }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
