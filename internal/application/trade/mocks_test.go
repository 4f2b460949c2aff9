package trade

import (
	"context"

	"github.com/mampirjaya/backoffice/internal/domain/catalog"
	"github.com/mampirjaya/backoffice/internal/domain/partner"
	"github.com/mampirjaya/backoffice/internal/domain/shared"
	"github.com/mampirjaya/backoffice/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// ==================== Repository Mocks ====================

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint64) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByName(ctx context.Context, name string) (*catalog.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uint64) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uint64) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByName(ctx context.Context, name string) (*partner.Customer, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

// MockSupplierRepository is a mock implementation of partner.SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uint64) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByName(ctx context.Context, name string) (*partner.Supplier, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

// MockDocumentRepository is a mock implementation of trade.DocumentRepository
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *trade.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, kind trade.OrderKind, id uint64) (*trade.Document, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByIDForUpdate(ctx context.Context, kind trade.OrderKind, id uint64) (*trade.Document, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Document), args.Error(1)
}

func (m *MockDocumentRepository) Update(ctx context.Context, doc *trade.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateStatus(ctx context.Context, doc *trade.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, kind trade.OrderKind, id uint64) error {
	args := m.Called(ctx, kind, id)
	return args.Error(0)
}

func (m *MockDocumentRepository) LastIssuedNumber(ctx context.Context, docType trade.DocumentType) (string, error) {
	args := m.Called(ctx, docType)
	return args.String(0), args.Error(1)
}

// MockNumberAllocator is a mock implementation of trade.NumberAllocator
type MockNumberAllocator struct {
	mock.Mock
}

func (m *MockNumberAllocator) Allocate(ctx context.Context, docType trade.DocumentType) (string, error) {
	args := m.Called(ctx, docType)
	return args.String(0), args.Error(1)
}

// MockStockLedger is a mock implementation of inventory.StockLedger
type MockStockLedger struct {
	mock.Mock
}

func (m *MockStockLedger) ApplyDelta(ctx context.Context, productID uint64, delta int64) (int64, error) {
	args := m.Called(ctx, productID, delta)
	return args.Get(0).(int64), args.Error(1)
}

// MockOrderMetrics is a mock implementation of OrderMetrics
type MockOrderMetrics struct {
	mock.Mock
}

func (m *MockOrderMetrics) RecordOrderCreated(ctx context.Context, kind string, total decimal.Decimal, items int) {
	m.Called(ctx, kind, total, items)
}

func (m *MockOrderMetrics) RecordOrderRejected(ctx context.Context, kind string, code string) {
	m.Called(ctx, kind, code)
}

func (m *MockOrderMetrics) RecordNumberConflict(ctx context.Context, docType string) {
	m.Called(ctx, docType)
}

// ==================== Fixture ====================

type orderFixture struct {
	products  *MockProductRepository
	customers *MockCustomerRepository
	suppliers *MockSupplierRepository
	documents *MockDocumentRepository
	allocator *MockNumberAllocator
	ledger    *MockStockLedger
	service   *OrderService
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		products:  new(MockProductRepository),
		customers: new(MockCustomerRepository),
		suppliers: new(MockSupplierRepository),
		documents: new(MockDocumentRepository),
		allocator: new(MockNumberAllocator),
		ledger:    new(MockStockLedger),
	}
	scope := NewNoOpTransactionScope(f.products, f.customers, f.suppliers, f.documents, f.allocator, f.ledger)
	f.service = NewOrderService(scope, nil)
	return f
}

func (f *orderFixture) assertExpectations(t mock.TestingT) {
	f.products.AssertExpectations(t)
	f.customers.AssertExpectations(t)
	f.suppliers.AssertExpectations(t)
	f.documents.AssertExpectations(t)
	f.allocator.AssertExpectations(t)
	f.ledger.AssertExpectations(t)
}

func newTestProduct(id uint64, name string, stock int64) *catalog.Product {
	p, _ := catalog.NewProduct(name, "Bahan", "pcs", decimal.NewFromInt(1000), stock)
	p.ID = id
	return p
}

// createdWithID makes a mocked Create assign an id, as the database would
func createdWithID(id uint64) func(mock.Arguments) {
	return func(args mock.Arguments) {
		args.Get(1).(*trade.Document).ID = id
	}
}
