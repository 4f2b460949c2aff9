package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/mampirjaya/backoffice/internal/application/catalog"
	partnerapp "github.com/mampirjaya/backoffice/internal/application/partner"
	tradeapp "github.com/mampirjaya/backoffice/internal/application/trade"
	"github.com/mampirjaya/backoffice/internal/domain/shared"
	"github.com/mampirjaya/backoffice/internal/domain/trade"
	"github.com/mampirjaya/backoffice/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

func newTestEngine() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	return r
}

type mockOrderCommands struct {
	mock.Mock
}

func (m *mockOrderCommands) CreateOrder(ctx context.Context, in tradeapp.CreateOrderInput) (*tradeapp.OrderHeader, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.OrderHeader), args.Error(1)
}

func (m *mockOrderCommands) UpdateOrder(ctx context.Context, kind trade.OrderKind, id uint64, in tradeapp.UpdateOrderInput) (*tradeapp.OrderHeader, error) {
	args := m.Called(ctx, kind, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.OrderHeader), args.Error(1)
}

func (m *mockOrderCommands) DeleteOrder(ctx context.Context, kind trade.OrderKind, id uint64) error {
	return m.Called(ctx, kind, id).Error(0)
}

func (m *mockOrderCommands) ChangeSalesOrderStatus(ctx context.Context, id uint64, status trade.SalesOrderStatus) (*tradeapp.OrderHeader, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.OrderHeader), args.Error(1)
}

func (m *mockOrderCommands) InvoiceSalesOrder(ctx context.Context, id uint64) (*tradeapp.OrderHeader, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.OrderHeader), args.Error(1)
}

type mockOrderQueries struct {
	mock.Mock
}

func (m *mockOrderQueries) List(ctx context.Context, kind trade.OrderKind, filter tradeapp.ListFilter) (shared.Paginated[trade.DocumentSummary], error) {
	args := m.Called(ctx, kind, filter)
	return args.Get(0).(shared.Paginated[trade.DocumentSummary]), args.Error(1)
}

func (m *mockOrderQueries) Get(ctx context.Context, kind trade.OrderKind, id uint64) (*trade.DocumentDetails, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.DocumentDetails), args.Error(1)
}

type mockProductService struct {
	mock.Mock
}

func (m *mockProductService) Create(ctx context.Context, req catalogapp.CreateProductRequest) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductResponse), args.Error(1)
}

func (m *mockProductService) GetByID(ctx context.Context, id uint64) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductResponse), args.Error(1)
}

func (m *mockProductService) List(ctx context.Context, filter catalogapp.ProductListFilter) ([]catalogapp.ProductResponse, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]catalogapp.ProductResponse), args.Get(1).(int64), args.Error(2)
}

type mockPartnerService struct {
	mock.Mock
}

func (m *mockPartnerService) CreateCustomer(ctx context.Context, req partnerapp.CreateCustomerRequest) (*partnerapp.CustomerResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.CustomerResponse), args.Error(1)
}

func (m *mockPartnerService) GetCustomer(ctx context.Context, id uint64) (*partnerapp.CustomerResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.CustomerResponse), args.Error(1)
}

func (m *mockPartnerService) ListCustomers(ctx context.Context, filter partnerapp.ListFilter) ([]partnerapp.CustomerResponse, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]partnerapp.CustomerResponse), args.Get(1).(int64), args.Error(2)
}

func (m *mockPartnerService) CreateSupplier(ctx context.Context, req partnerapp.CreateSupplierRequest) (*partnerapp.SupplierResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.SupplierResponse), args.Error(1)
}

func (m *mockPartnerService) GetSupplier(ctx context.Context, id uint64) (*partnerapp.SupplierResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.SupplierResponse), args.Error(1)
}

func (m *mockPartnerService) ListSuppliers(ctx context.Context, filter partnerapp.ListFilter) ([]partnerapp.SupplierResponse, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]partnerapp.SupplierResponse), args.Get(1).(int64), args.Error(2)
}

type mockPinger struct {
	mock.Mock
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
