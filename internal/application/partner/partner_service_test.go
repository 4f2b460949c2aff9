package partner

import (
	"context"
	"testing"

	"github.com/mampirjaya/backoffice/internal/domain/partner"
	"github.com/mampirjaya/backoffice/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCustomerRepository is a mock implementation of CustomerRepository
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

// MockSupplierRepository is a mock implementation of SupplierRepository
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

func TestPartnerService_CreateCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("saves and returns the customer", func(t *testing.T) {
		customers := new(MockCustomerRepository)
		svc := NewPartnerService(customers, new(MockSupplierRepository))

		customers.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*partner.Customer).ID = 3
			}).
			Return(nil)

		resp, err := svc.CreateCustomer(ctx, CreateCustomerRequest{Name: "ACME Co", Phone: "0812"})
		require.NoError(t, err)
		assert.Equal(t, uint64(3), resp.ID)
		assert.Equal(t, "ACME Co", resp.Name)
		customers.AssertExpectations(t)
	})

	t.Run("rejects blank name without saving", func(t *testing.T) {
		customers := new(MockCustomerRepository)
		svc := NewPartnerService(customers, new(MockSupplierRepository))

		_, err := svc.CreateCustomer(ctx, CreateCustomerRequest{Name: " "})
		assert.ErrorIs(t, err, shared.ErrValidation)
		customers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPartnerService_GetSupplier_NotFound(t *testing.T) {
	ctx := context.Background()
	suppliers := new(MockSupplierRepository)
	svc := NewPartnerService(new(MockCustomerRepository), suppliers)

	suppliers.On("FindByID", ctx, uint64(9)).Return(nil, shared.ErrNotFound)

	_, err := svc.GetSupplier(ctx, 9)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPartnerService_ListSuppliers(t *testing.T) {
	ctx := context.Background()
	suppliers := new(MockSupplierRepository)
	svc := NewPartnerService(new(MockCustomerRepository), suppliers)

	suppliers.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 2 && f.PageSize == 5 && f.OrderBy == "name"
	})).Return([]partner.Supplier{{Name: "PT Semen"}}, nil)
	suppliers.On("Count", ctx, mock.Anything).Return(int64(6), nil)

	items, total, err := svc.ListSuppliers(ctx, ListFilter{Page: 2, PageSize: 5})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(6), total)
}
