package partner

import (
	"strings"
	"testing"

	"github.com/mampirjaya/backoffice/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	tests := []struct {
		name    string
		cname   string
		phone   string
		wantErr bool
	}{
		{"valid", "ACME Co", "0812", false},
		{"blank name", "   ", "", true},
		{"name too long", strings.Repeat("x", 201), "", true},
		{"phone too long", "ACME", strings.Repeat("9", 51), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCustomer(tt.cname, "Jl. Merdeka 1", tt.phone)
			if tt.wantErr {
				assert.ErrorIs(t, err, shared.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cname, c.Name)
		})
	}
}

func TestNewCustomerFromDetails(t *testing.T) {
	c, err := NewCustomerFromDetails("ACME Co", shared.PartyDetails{Address: "Jl. Sudirman", Phone: "021"})
	require.NoError(t, err)
	assert.Equal(t, "Jl. Sudirman", c.Address)
	assert.Equal(t, "021", c.Phone)
}

func TestNewSupplier(t *testing.T) {
	t.Run("valid email", func(t *testing.T) {
		s, err := NewSupplier("PT Semen", "Gresik", "031", "sales@semen.co.id")
		require.NoError(t, err)
		assert.Equal(t, "sales@semen.co.id", s.Email)
	})

	t.Run("empty email allowed", func(t *testing.T) {
		_, err := NewSupplier("PT Semen", "", "", "")
		assert.NoError(t, err)
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := NewSupplier("PT Semen", "", "", "not-an-email")
		assert.ErrorIs(t, err, shared.ErrValidation)
	})
}
