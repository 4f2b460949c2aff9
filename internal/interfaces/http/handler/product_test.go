package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/mampirjaya/backoffice/internal/application/catalog"
	"github.com/mampirjaya/backoffice/internal/domain/shared"
	"github.com/mampirjaya/backoffice/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupProductRouter() (*gin.Engine, *mockProductService) {
	svc := new(mockProductService)
	h := NewProductHandler(svc)

	r := newTestEngine()
	r.POST("/products", h.Create)
	r.GET("/products", h.List)
	r.GET("/products/:id", h.GetByID)
	return r, svc
}

func TestProductHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		r, svc := setupProductRouter()
		svc.On("Create", mock.Anything, mock.MatchedBy(func(req catalogapp.CreateProductRequest) bool {
			return req.Name == "Widget" && req.Stock == 10 && req.Price.Equal(decimal.RequireFromString("2.5"))
		})).Return(&catalogapp.ProductResponse{ID: 1, Name: "Widget", Stock: 10, Price: decimal.RequireFromString("2.5")}, nil)

		w := doJSON(r, http.MethodPost, "/products", `{"name":"Widget","unit":"pcs","price":"2.5","stock":10}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		var p catalogapp.ProductResponse
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &p))
		assert.Equal(t, uint64(1), p.ID)
	})

	t.Run("name required", func(t *testing.T) {
		r, _ := setupProductRouter()

		w := doJSON(r, http.MethodPost, "/products", `{"price":"2.5"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		require.Len(t, env.Error.Details, 1)
		assert.Equal(t, "name", env.Error.Details[0].Field)
		assert.Equal(t, "This field is required", env.Error.Details[0].Message)
	})

	t.Run("duplicate name", func(t *testing.T) {
		r, svc := setupProductRouter()
		svc.On("Create", mock.Anything, mock.Anything).
			Return(nil, shared.NewConflictError("product Widget already exists", nil))

		w := doJSON(r, http.MethodPost, "/products", `{"name":"Widget"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, dto.ErrCodeConflict, decodeEnvelope(t, w).Error.Code)
	})
}

func TestProductHandler_List(t *testing.T) {
	r, svc := setupProductRouter()
	svc.On("List", mock.Anything, catalogapp.ProductListFilter{Search: "wid"}).
		Return([]catalogapp.ProductResponse{{ID: 1, Name: "Widget"}}, int64(1), nil)

	w := doJSON(r, http.MethodGet, "/products?q=wid", "")

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, int64(1), env.Meta.Total)
	assert.Equal(t, 1, env.Meta.Page)
	svc.AssertExpectations(t)
}

func TestProductHandler_GetByID(t *testing.T) {
	r, svc := setupProductRouter()
	svc.On("GetByID", mock.Anything, uint64(5)).Return(nil, shared.NewNotFoundError("product", 5))

	w := doJSON(r, http.MethodGet, "/products/5", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
