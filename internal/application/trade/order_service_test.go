package trade

import (
	"context"
	"errors"
	"testing"

	"github.com/mampirjaya/backoffice/internal/domain/partner"
	"github.com/mampirjaya/backoffice/internal/domain/shared"
	"github.com/mampirjaya/backoffice/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderService_CreateSale(t *testing.T) {
	ctx := context.Background()

	t.Run("creates missing customer and decrements stock", func(t *testing.T) {
		f := newOrderFixture()

		f.customers.On("FindByName", mock.Anything, "Budi").Return(nil, shared.ErrNotFound)
		f.customers.On("Save", mock.Anything, mock.MatchedBy(func(c *partner.Customer) bool {
			return c.Name == "Budi" && c.Address == "Jl. Merdeka 1"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*partner.Customer).ID = 7
		}).Return(nil)
		f.products.On("FindByID", mock.Anything, uint64(1)).Return(newTestProduct(1, "Semen", 10), nil)
		f.allocator.On("Allocate", mock.Anything, trade.DocumentTypeInvoice).Return("INV-000001", nil)
		f.documents.On("Create", mock.Anything, mock.AnythingOfType("*trade.Document")).Run(createdWithID(1)).Return(nil)
		f.ledger.On("ApplyDelta", mock.Anything, uint64(1), int64(-2)).Return(int64(8), nil)

		customer := shared.ByName("Budi", shared.PartyDetails{Address: "Jl. Merdeka 1"})
		header, err := f.service.CreateSale(ctx, customer, []LineInput{
			{Product: shared.ByID(1), Quantity: 2, Price: decimal.NewFromInt(150000)},
		})
		require.NoError(t, err)

		assert.Equal(t, uint64(1), header.ID)
		assert.Equal(t, "INV-000001", header.Number)
		assert.Equal(t, uint64(7), header.PartyID)
		assert.True(t, header.Total.Equal(decimal.NewFromInt(300000)))
		assert.Equal(t, 1, header.ItemCount)
		f.assertExpectations(t)
	})

	t.Run("reuses existing customer by name", func(t *testing.T) {
		f := newOrderFixture()
		existing, _ := partner.NewCustomer("Budi", "", "")
		existing.ID = 4

		f.customers.On("FindByName", mock.Anything, "Budi").Return(existing, nil)
		f.products.On("FindByName", mock.Anything, "Semen").Return(newTestProduct(2, "Semen", 10), nil)
		f.allocator.On("Allocate", mock.Anything, trade.DocumentTypeInvoice).Return("INV-000002", nil)
		f.documents.On("Create", mock.Anything, mock.Anything).Run(createdWithID(2)).Return(nil)
		f.ledger.On("ApplyDelta", mock.Anything, uint64(2), int64(-3)).Return(int64(7), nil)

		header, err := f.service.CreateSale(ctx, shared.ByName("Budi", shared.PartyDetails{}), []LineInput{
			{Product: shared.ByName("Semen", shared.PartyDetails{}), Quantity: 3, Price: decimal.NewFromInt(10)},
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(4), header.PartyID)
		f.customers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("insufficient stock surfaces the ledger error", func(t *testing.T) {
		f := newOrderFixture()
		existing, _ := partner.NewCustomer("Budi", "", "")
		existing.ID = 4

		f.customers.On("FindByID", mock.Anything, uint64(4)).Return(existing, nil)
		f.products.On("FindByID", mock.Anything, uint64(1)).Return(newTestProduct(1, "Semen", 1), nil)
		f.allocator.On("Allocate", mock.Anything, trade.DocumentTypeInvoice).Return("INV-000003", nil)
		f.documents.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.ledger.On("ApplyDelta", mock.Anything, uint64(1), int64(-5)).
			Return(int64(0), shared.NewInsufficientStockError(1, "Semen", 1, 5))

		_, err := f.service.CreateSale(ctx, shared.ByID(4), []LineInput{
			{Product: shared.ByID(1), Quantity: 5, Price: decimal.NewFromInt(10)},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)

		var detail *shared.InsufficientStockError
		require.True(t, errors.As(err, &detail))
		assert.Equal(t, int64(1), detail.Available)
		assert.Equal(t, int64(5), detail.Requested)
	})

	t.Run("unknown product fails with not found", func(t *testing.T) {
		f := newOrderFixture()
		existing, _ := partner.NewCustomer("Budi", "", "")
		existing.ID = 4

		f.customers.On("FindByID", mock.Anything, uint64(4)).Return(existing, nil)
		f.products.On("FindByID", mock.Anything, uint64(99)).Return(nil, shared.ErrNotFound)

		_, err := f.service.CreateSale(ctx, shared.ByID(4), []LineInput{
			{Product: shared.ByID(99), Quantity: 1, Price: decimal.NewFromInt(10)},
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Contains(t, err.Error(), "#99")
		f.allocator.AssertNotCalled(t, "Allocate", mock.Anything, mock.Anything)
	})
}

func TestOrderService_CreateOrder_Validation(t *testing.T) {
	ctx := context.Background()
	item := LineInput{Product: shared.ByID(1), Quantity: 1, Price: decimal.NewFromInt(10)}

	tests := []struct {
		name  string
		input CreateOrderInput
	}{
		{"unknown kind", CreateOrderInput{Kind: "refund", Party: shared.ByID(1), Items: []LineInput{item}}},
		{"missing party", CreateOrderInput{Kind: trade.OrderKindSale, Items: []LineInput{item}}},
		{"empty items", CreateOrderInput{Kind: trade.OrderKindSale, Party: shared.ByID(1)}},
		{"zero quantity", CreateOrderInput{Kind: trade.OrderKindPurchase, Party: shared.ByID(1), Items: []LineInput{
			{Product: shared.ByID(1), Quantity: 0, Price: decimal.NewFromInt(10)},
		}}},
		{"negative price", CreateOrderInput{Kind: trade.OrderKindPurchase, Party: shared.ByID(1), Items: []LineInput{
			{Product: shared.ByID(1), Quantity: 1, Price: decimal.NewFromInt(-1)},
		}}},
		{"blank product name", CreateOrderInput{Kind: trade.OrderKindSale, Party: shared.ByID(1), Items: []LineInput{
			{Product: shared.ByName("  ", shared.PartyDetails{}), Quantity: 1, Price: decimal.NewFromInt(1)},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture()
			_, err := f.service.CreateOrder(ctx, tt.input)
			assert.ErrorIs(t, err, shared.ErrValidation)
			f.assertExpectations(t)
		})
	}
}

func TestOrderService_CreatePurchase(t *testing.T) {
	ctx := context.Background()

	t.Run("increments stock", func(t *testing.T) {
		f := newOrderFixture()
		supplier, _ := partner.NewSupplier("PT Semen", "", "", "")
		supplier.ID = 3

		f.suppliers.On("FindByID", mock.Anything, uint64(3)).Return(supplier, nil)
		f.products.On("FindByID", mock.Anything, uint64(1)).Return(newTestProduct(1, "Semen", 0), nil)
		f.products.On("FindByID", mock.Anything, uint64(2)).Return(newTestProduct(2, "Pasir", 0), nil)
		f.allocator.On("Allocate", mock.Anything, trade.DocumentTypePurchaseOrder).Return("PO-000001", nil)
		f.documents.On("Create", mock.Anything, mock.Anything).Run(createdWithID(1)).Return(nil)
		f.ledger.On("ApplyDelta", mock.Anything, uint64(1), int64(15)).Return(int64(15), nil).Once()
		f.ledger.On("ApplyDelta", mock.Anything, uint64(2), int64(4)).Return(int64(4), nil).Once()

		header, err := f.service.CreatePurchase(ctx, shared.ByID(3), []LineInput{
			{Product: shared.ByID(2), Quantity: 4, Price: decimal.NewFromInt(5)},
			{Product: shared.ByID(1), Quantity: 10, Price: decimal.NewFromInt(2)},
			{Product: shared.ByID(1), Quantity: 5, Price: decimal.NewFromInt(2)},
		})
		require.NoError(t, err)
		assert.Equal(t, "PO-000001", header.Number)
		assert.True(t, header.Total.Equal(decimal.NewFromInt(50)))
		assert.Equal(t, 3, header.ItemCount)
		f.assertExpectations(t)
	})

	t.Run("unknown supplier name is not created", func(t *testing.T) {
		f := newOrderFixture()
		f.suppliers.On("FindByName", mock.Anything, "PT Baru").Return(nil, shared.ErrNotFound)

		_, err := f.service.CreatePurchase(ctx, shared.ByName("PT Baru", shared.PartyDetails{}), []LineInput{
			{Product: shared.ByID(1), Quantity: 1, Price: decimal.NewFromInt(1)},
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Contains(t, err.Error(), "supplier")
		f.suppliers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestOrderService_CreateSalesOrder_LeavesStock(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()
	existing, _ := partner.NewCustomer("Budi", "", "")
	existing.ID = 4

	f.customers.On("FindByID", mock.Anything, uint64(4)).Return(existing, nil)
	f.products.On("FindByID", mock.Anything, uint64(1)).Return(newTestProduct(1, "Semen", 0), nil)
	f.allocator.On("Allocate", mock.Anything, trade.DocumentTypeSalesOrder).Return("SO-000001", nil)
	f.documents.On("Create", mock.Anything, mock.Anything).Run(createdWithID(1)).Return(nil)

	header, err := f.service.CreateSalesOrder(ctx, shared.ByID(4), []LineInput{
		{Product: shared.ByID(1), Quantity: 100, Price: decimal.NewFromInt(1)},
	})
	require.NoError(t, err)
	assert.Equal(t, trade.SalesOrderStatusPending, header.Status)
	f.ledger.AssertNotCalled(t, "ApplyDelta", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_NumberConflictRetry(t *testing.T) {
	ctx := context.Background()
	supplier, _ := partner.NewSupplier("PT Semen", "", "", "")
	supplier.ID = 3
	items := []LineInput{{Product: shared.ByID(1), Quantity: 1, Price: decimal.NewFromInt(1)}}
	conflict := shared.NewConflictError("document number already issued", errors.New("duplicated key"))

	t.Run("retries and succeeds", func(t *testing.T) {
		f := newOrderFixture()
		metrics := new(MockOrderMetrics)
		f.service.SetMetrics(metrics)

		f.suppliers.On("FindByID", mock.Anything, uint64(3)).Return(supplier, nil)
		f.products.On("FindByID", mock.Anything, uint64(1)).Return(newTestProduct(1, "Semen", 0), nil)
		f.allocator.On("Allocate", mock.Anything, trade.DocumentTypePurchaseOrder).Return("PO-000001", nil).Once()
		f.allocator.On("Allocate", mock.Anything, trade.DocumentTypePurchaseOrder).Return("PO-000002", nil).Once()
		f.documents.On("Create", mock.Anything, mock.MatchedBy(func(d *trade.Document) bool {
			return d.Number == "PO-000001"
		})).Return(conflict).Once()
		f.documents.On("Create", mock.Anything, mock.MatchedBy(func(d *trade.Document) bool {
			return d.Number == "PO-000002"
		})).Run(createdWithID(9)).Return(nil).Once()
		f.ledger.On("ApplyDelta", mock.Anything, uint64(1), int64(1)).Return(int64(1), nil).Once()
		metrics.On("RecordNumberConflict", mock.Anything, "PO").Once()
		metrics.On("RecordOrderCreated", mock.Anything, "purchase", mock.Anything, 1).Once()

		header, err := f.service.CreatePurchase(ctx, shared.ByID(3), items)
		require.NoError(t, err)
		assert.Equal(t, "PO-000002", header.Number)
		f.assertExpectations(t)
		metrics.AssertExpectations(t)
	})

	t.Run("surfaces conflict once retries are exhausted", func(t *testing.T) {
		f := newOrderFixture()
		f.service.SetAllocationRetries(1)

		f.suppliers.On("FindByID", mock.Anything, uint64(3)).Return(supplier, nil)
		f.products.On("FindByID", mock.Anything, uint64(1)).Return(newTestProduct(1, "Semen", 0), nil)
		f.allocator.On("Allocate", mock.Anything, trade.DocumentTypePurchaseOrder).Return("PO-000001", nil)
		f.documents.On("Create", mock.Anything, mock.Anything).Return(conflict)

		_, err := f.service.CreatePurchase(ctx, shared.ByID(3), items)
		assert.ErrorIs(t, err, shared.ErrConflict)
		f.allocator.AssertNumberOfCalls(t, "Allocate", 2)
	})
}

func TestOrderService_StorageFailureIsInternal(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()
	f.customers.On("FindByID", mock.Anything, uint64(4)).Return(nil, errors.New("connection reset"))

	_, err := f.service.CreateSale(ctx, shared.ByID(4), []LineInput{
		{Product: shared.ByID(1), Quantity: 1, Price: decimal.NewFromInt(1)},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInternal)
}

func TestOrderService_UpdateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("reverses old lines and applies new ones in place", func(t *testing.T) {
		f := newOrderFixture()
		existing := &trade.Document{
			Kind:    trade.OrderKindSale,
			Number:  "INV-000005",
			PartyID: 4,
			Lines: []trade.OrderLine{
				{ProductID: 1, Quantity: 2, Price: decimal.NewFromInt(10)},
				{ProductID: 2, Quantity: 1, Price: decimal.NewFromInt(10)},
			},
		}
		existing.ID = 5
		customer, _ := partner.NewCustomer("Budi", "", "")
		customer.ID = 4

		f.documents.On("FindByIDForUpdate", mock.Anything, trade.OrderKindSale, uint64(5)).Return(existing, nil)
		f.customers.On("FindByID", mock.Anything, uint64(4)).Return(customer, nil)
		f.products.On("FindByID", mock.Anything, uint64(1)).Return(newTestProduct(1, "Semen", 10), nil)
		f.documents.On("Update", mock.Anything, existing).Return(nil)
		// product 1: +2 -5 = -3; product 2: +1
		f.ledger.On("ApplyDelta", mock.Anything, uint64(1), int64(-3)).Return(int64(7), nil).Once()
		f.ledger.On("ApplyDelta", mock.Anything, uint64(2), int64(1)).Return(int64(11), nil).Once()

		header, err := f.service.UpdateOrder(ctx, trade.OrderKindSale, 5, UpdateOrderInput{
			Party: shared.ByID(4),
			Items: []LineInput{{Product: shared.ByID(1), Quantity: 5, Price: decimal.NewFromInt(20)}},
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(5), header.ID)
		assert.Equal(t, "INV-000005", header.Number)
		assert.True(t, header.Total.Equal(decimal.NewFromInt(100)))
		f.assertExpectations(t)
	})

	t.Run("invoiced sales order cannot be modified", func(t *testing.T) {
		f := newOrderFixture()
		saleID := uint64(3)
		existing := &trade.Document{
			Kind:   trade.OrderKindSalesOrder,
			Number: "SO-000001",
			Status: trade.SalesOrderStatusInvoiced,
			SaleID: &saleID,
		}
		f.documents.On("FindByIDForUpdate", mock.Anything, trade.OrderKindSalesOrder, uint64(1)).Return(existing, nil)

		_, err := f.service.UpdateOrder(ctx, trade.OrderKindSalesOrder, 1, UpdateOrderInput{
			Party: shared.ByID(4),
			Items: []LineInput{{Product: shared.ByID(1), Quantity: 1, Price: decimal.NewFromInt(1)}},
		})
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestOrderService_DeleteOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("purchase delete takes stock back out", func(t *testing.T) {
		f := newOrderFixture()
		existing := &trade.Document{
			Kind:   trade.OrderKindPurchase,
			Number: "PO-000001",
			Lines:  []trade.OrderLine{{ProductID: 1, Quantity: 10, Price: decimal.NewFromInt(1)}},
		}
		f.documents.On("FindByIDForUpdate", mock.Anything, trade.OrderKindPurchase, uint64(1)).Return(existing, nil)
		f.documents.On("Delete", mock.Anything, trade.OrderKindPurchase, uint64(1)).Return(nil)
		f.ledger.On("ApplyDelta", mock.Anything, uint64(1), int64(-10)).
			Return(int64(0), shared.NewInsufficientStockError(1, "Semen", 4, 10))

		err := f.service.DeleteOrder(ctx, trade.OrderKindPurchase, 1)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	})

	t.Run("missing document", func(t *testing.T) {
		f := newOrderFixture()
		f.documents.On("FindByIDForUpdate", mock.Anything, trade.OrderKindSale, uint64(8)).
			Return(nil, shared.NewNotFoundError("sale", 8))

		err := f.service.DeleteOrder(ctx, trade.OrderKindSale, 8)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOrderService_SalesOrderLifecycle(t *testing.T) {
	ctx := context.Background()

	newOrder := func(status trade.SalesOrderStatus) *trade.Document {
		doc := &trade.Document{
			Kind:    trade.OrderKindSalesOrder,
			Number:  "SO-000001",
			PartyID: 4,
			Status:  status,
			Lines:   []trade.OrderLine{{ID: 11, ProductID: 1, Quantity: 2, Price: decimal.NewFromInt(10)}},
			Total:   decimal.NewFromInt(20),
		}
		doc.ID = 1
		return doc
	}

	t.Run("confirm", func(t *testing.T) {
		f := newOrderFixture()
		order := newOrder(trade.SalesOrderStatusPending)
		f.documents.On("FindByIDForUpdate", mock.Anything, trade.OrderKindSalesOrder, uint64(1)).Return(order, nil)
		f.documents.On("UpdateStatus", mock.Anything, order).Return(nil)

		header, err := f.service.ChangeSalesOrderStatus(ctx, 1, trade.SalesOrderStatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, trade.SalesOrderStatusConfirmed, header.Status)
	})

	t.Run("invoice requires confirmed", func(t *testing.T) {
		f := newOrderFixture()
		f.documents.On("FindByIDForUpdate", mock.Anything, trade.OrderKindSalesOrder, uint64(1)).
			Return(newOrder(trade.SalesOrderStatusPending), nil)

		_, err := f.service.InvoiceSalesOrder(ctx, 1)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		f.allocator.AssertNotCalled(t, "Allocate", mock.Anything, mock.Anything)
	})

	t.Run("invoice creates a sale and marks the order", func(t *testing.T) {
		f := newOrderFixture()
		order := newOrder(trade.SalesOrderStatusConfirmed)
		f.documents.On("FindByIDForUpdate", mock.Anything, trade.OrderKindSalesOrder, uint64(1)).Return(order, nil)
		f.allocator.On("Allocate", mock.Anything, trade.DocumentTypeInvoice).Return("INV-000010", nil)
		f.documents.On("Create", mock.Anything, mock.MatchedBy(func(d *trade.Document) bool {
			return d.Kind == trade.OrderKindSale && d.PartyID == 4 && d.Lines[0].ID == 0
		})).Run(createdWithID(10)).Return(nil)
		f.ledger.On("ApplyDelta", mock.Anything, uint64(1), int64(-2)).Return(int64(3), nil)
		f.documents.On("UpdateStatus", mock.Anything, order).Return(nil)

		header, err := f.service.InvoiceSalesOrder(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, trade.OrderKindSale, header.Kind)
		assert.Equal(t, "INV-000010", header.Number)
		assert.Equal(t, trade.SalesOrderStatusInvoiced, order.Status)
		require.NotNil(t, order.SaleID)
		assert.Equal(t, uint64(10), *order.SaleID)
		f.assertExpectations(t)
	})

	t.Run("status cannot be set to invoiced directly", func(t *testing.T) {
		f := newOrderFixture()
		f.documents.On("FindByIDForUpdate", mock.Anything, trade.OrderKindSalesOrder, uint64(1)).
			Return(newOrder(trade.SalesOrderStatusConfirmed), nil)

		_, err := f.service.ChangeSalesOrderStatus(ctx, 1, trade.SalesOrderStatusInvoiced)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}
