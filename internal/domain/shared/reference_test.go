package shared

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReference_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind ReferenceKind
		wantID   uint64
		wantName string
		wantErr  bool
	}{
		{name: "number", input: `1`, wantKind: ReferenceByID, wantID: 1},
		{name: "numeric string", input: `"42"`, wantKind: ReferenceByID, wantID: 42},
		{name: "name", input: `"ACME Co"`, wantKind: ReferenceByName, wantName: "ACME Co"},
		{name: "name is trimmed", input: `"  Cement "`, wantKind: ReferenceByName, wantName: "Cement"},
		{name: "null", input: `null`, wantKind: 0},
		{name: "negative number", input: `-1`, wantErr: true},
		{name: "fraction", input: `1.5`, wantErr: true},
		{name: "bool", input: `true`, wantErr: true},
		{name: "object", input: `{"id":1}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ref Reference
			err := json.Unmarshal([]byte(tt.input), &ref)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, ref.Kind())
			assert.Equal(t, tt.wantID, ref.ID())
			assert.Equal(t, tt.wantName, ref.Name())
		})
	}
}

func TestReference_InStruct(t *testing.T) {
	var body struct {
		Customer Reference `json:"customer"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"customer":"ACME Co"}`), &body))
	assert.Equal(t, ReferenceByName, body.Customer.Kind())

	out, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"customer":"ACME Co"}`, string(out))
}

func TestReference_Validate(t *testing.T) {
	assert.NoError(t, ByID(1).Validate())
	assert.NoError(t, ByName("Cement", PartyDetails{}).Validate())
	assert.ErrorIs(t, ByID(0).Validate(), ErrValidation)
	assert.ErrorIs(t, ByName("  ", PartyDetails{}).Validate(), ErrValidation)
	assert.ErrorIs(t, Reference{}.Validate(), ErrValidation)
}

func TestReference_WithDetails(t *testing.T) {
	details := PartyDetails{Address: "Jl. Merdeka", Phone: "0812"}
	assert.Equal(t, details, ByName("ACME", PartyDetails{}).WithDetails(details).Details())
	assert.Equal(t, PartyDetails{}, ByID(3).WithDetails(details).Details())
}

func TestReference_String(t *testing.T) {
	assert.Equal(t, "#7", ByID(7).String())
	assert.Equal(t, `"Cement"`, ByName("Cement", PartyDetails{}).String())
}
