package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoice_UnmarshalJSON_KeepsUnknownFields(t *testing.T) {
	var inv Invoice
	data := `{"id":1,"invoice_id":"A","seller_name":"Acme","line_items":[{"sku":"x","qty":2}],"currency":"USD"}`

	require.NoError(t, json.Unmarshal([]byte(data), &inv))

	assert.Equal(t, int64(1), inv.ID)
	assert.Equal(t, "A", inv.InvoiceID)
	assert.Equal(t, "Acme", inv.SellerName)
	assert.Equal(t, map[string]any{
		"line_items": []any{map[string]any{"sku": "x", "qty": float64(2)}},
		"currency":   "USD",
	}, inv.Extra)
}

func TestInvoice_UnmarshalJSON_NoUnknownFields(t *testing.T) {
	var inv Invoice

	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"summary":"s","risk_percentage":null}`), &inv))

	assert.Nil(t, inv.Extra)
	assert.True(t, inv.RiskPercentage.IsNull())
}

func TestInvoice_UnmarshalJSON_ScalarInvoiceID(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`42`, "42"},
		{`4.5`, "4.5"},
		{`true`, "true"},
		{`null`, ""},
		{`"INV-9"`, "INV-9"},
	}

	for _, tt := range tests {
		var inv Invoice
		require.NoError(t, json.Unmarshal([]byte(`{"id":1,"invoice_id":`+tt.raw+`}`), &inv), tt.raw)
		assert.Equal(t, tt.want, inv.InvoiceID, tt.raw)
	}
}

func TestInvoicePage_NumericInvoiceIDDecodes(t *testing.T) {
	var page InvoicePage
	data := `{"invoices":[{"id":1,"invoice_id":1001},{"id":2,"invoice_id":"B-2"}],"total":2}`

	require.NoError(t, json.Unmarshal([]byte(data), &page))

	require.Len(t, page.Invoices, 2)
	assert.Equal(t, "1001", page.Invoices[0].InvoiceID)
	assert.Equal(t, "B-2", page.Invoices[1].InvoiceID)
}

func TestInvoice_ExtraSurvivesCacheRoundTrip(t *testing.T) {
	var inv Invoice
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"line_items":[1,2]}`), &inv))

	data, err := json.Marshal(inv)
	require.NoError(t, err)

	var back Invoice
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, inv.Extra, back.Extra)
}

func TestContract_UnmarshalJSON(t *testing.T) {
	var c Contract
	data := `{"id":7,"contract_id":77,"summary":"Supply","parties":["Acme","Globex"]}`

	require.NoError(t, json.Unmarshal([]byte(data), &c))

	assert.Equal(t, int64(7), c.ID)
	assert.Equal(t, "77", c.ContractID)
	assert.Equal(t, "Supply", c.Summary)
	assert.Equal(t, map[string]any{"parties": []any{"Acme", "Globex"}}, c.Extra)
}

func TestInvoice_UnmarshalJSON_Malformed(t *testing.T) {
	var inv Invoice

	assert.Error(t, json.Unmarshal([]byte(`{"id":"one"}`), &inv))
}
