package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	tradeapp "github.com/mampirjaya/backoffice/internal/application/trade"
	"github.com/mampirjaya/backoffice/internal/domain/shared"
	"github.com/mampirjaya/backoffice/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupPurchaseRouter() (*gin.Engine, *mockOrderCommands, *mockOrderQueries) {
	commands := new(mockOrderCommands)
	queries := new(mockOrderQueries)
	h := NewPurchaseHandler(commands, queries)

	r := newTestEngine()
	r.POST("/purchases", h.Create)
	r.GET("/purchases", h.List)
	r.GET("/purchases/:id", h.Get)
	r.PUT("/purchases/:id", h.Update)
	r.DELETE("/purchases/:id", h.Delete)
	return r, commands, queries
}

func TestPurchaseHandler_Create(t *testing.T) {
	r, commands, _ := setupPurchaseRouter()
	commands.On("CreateOrder", mock.Anything, mock.MatchedBy(func(in tradeapp.CreateOrderInput) bool {
		return in.Kind == trade.OrderKindPurchase && in.Party == shared.ByName("Globex", shared.PartyDetails{})
	})).Return(sampleHeader(trade.OrderKindPurchase, "PO-000001"), nil)

	w := doJSON(r, http.MethodPost, "/purchases", `{"supplier":"Globex","items":[{"product":3,"quantity":20,"price":"4.10"}]}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp PurchaseResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &resp))
	assert.Equal(t, "PO-000001", resp.PurchaseOrder)
	assert.Equal(t, uint64(7), resp.SupplierID)
	commands.AssertExpectations(t)
}

func TestPurchaseHandler_List(t *testing.T) {
	r, _, queries := setupPurchaseRouter()
	queries.On("List", mock.Anything, trade.OrderKindPurchase, tradeapp.ListFilter{}).
		Return(shared.Paginated[trade.DocumentSummary]{
			Items:      []trade.DocumentSummary{{ID: 1, Number: "PO-000001", PartyName: "Globex", Total: decimal.NewFromInt(82)}},
			Total:      1,
			Page:       1,
			PageSize:   20,
			TotalPages: 1,
		}, nil)

	w := doJSON(r, http.MethodGet, "/purchases", "")

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	var items []PurchaseListItem
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Globex", items[0].SupplierName)
	assert.Equal(t, 20, env.Meta.PageSize)
}

func TestPurchaseHandler_Delete(t *testing.T) {
	r, commands, _ := setupPurchaseRouter()
	commands.On("DeleteOrder", mock.Anything, trade.OrderKindPurchase, uint64(3)).
		Return(shared.NewInsufficientStockError(3, "Widget", 5, 20))

	w := doJSON(r, http.MethodDelete, "/purchases/3", "")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
