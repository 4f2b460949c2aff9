package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validationLine struct {
	Quantity int64 `json:"quantity" binding:"required,gt=0"`
}

type validationRequest struct {
	Name  string           `json:"name" binding:"required,max=5"`
	Items []validationLine `json:"items" binding:"required,min=1,dive"`
}

func TestValidationDetails(t *testing.T) {
	SetupValidator()

	bind := func(body string) error {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		var req validationRequest
		return c.ShouldBindJSON(&req)
	}

	t.Run("uses json field paths", func(t *testing.T) {
		details := ValidationDetails(bind(`{"name":"toolong","items":[{"quantity":0}]}`))
		require.Len(t, details, 2)

		byField := map[string]string{}
		for _, d := range details {
			byField[d.Field] = d.Message
		}
		assert.Equal(t, "Must be at most 5 characters", byField["name"])
		assert.Equal(t, "This field is required", byField["items[0].quantity"])
	})

	t.Run("empty items", func(t *testing.T) {
		details := ValidationDetails(bind(`{"name":"ok","items":[]}`))
		require.Len(t, details, 1)
		assert.Equal(t, "items", details[0].Field)
		assert.Equal(t, "Must contain at least 1 item(s)", details[0].Message)
	})

	t.Run("non validator errors", func(t *testing.T) {
		assert.Nil(t, ValidationDetails(errors.New("unexpected EOF")))
	})
}
