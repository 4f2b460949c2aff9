package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag/v2"
)

func TestSwaggerDocumentRenders(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Swagger  string                     `json:"swagger"`
		BasePath string                     `json:"basePath"`
		Info     map[string]any             `json:"info"`
		Paths    map[string]json.RawMessage `json:"paths"`
		Defs     map[string]json.RawMessage `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "/api/v1", doc.BasePath)
	assert.Equal(t, "Back-office API", doc.Info["title"])
	for _, p := range []string{
		"/sales", "/sales/{id}",
		"/purchases", "/purchases/{id}",
		"/sales-orders", "/sales-orders/{id}/status", "/sales-orders/{id}/invoice",
		"/products", "/customers", "/suppliers", "/health",
	} {
		assert.Contains(t, doc.Paths, p)
	}
	assert.Contains(t, doc.Defs, "handler.OrderLineRequest")
}

func TestOrderLinePriceIsRequired(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Definitions map[string]struct {
			Required []string `json:"required"`
		} `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Contains(t, doc.Definitions["handler.OrderLineRequest"].Required, "price")
}
