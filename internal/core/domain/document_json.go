package domain

import (
	"bytes"
	"encoding/json"
	"slices"
)

var invoiceFields = []string{
	"id", "invoice_id", "seller_name", "seller_address", "tax_id",
	"subtotal_amount", "tax_amount", "summary", "risk_percentage",
	"created_at", "updated_at", "extra",
}

var contractFields = []string{
	"id", "contract_id", "summary", "text", "created_at", "updated_at", "extra",
}

// UnmarshalJSON accepts a numeric invoice_id and keeps unmodelled keys,
// such as line_items, in Extra.
func (inv *Invoice) UnmarshalJSON(data []byte) error {
	type plain Invoice
	var aux struct {
		plain
		InvoiceID json.RawMessage `json:"invoice_id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*inv = Invoice(aux.plain)
	inv.InvoiceID = scalarText(aux.InvoiceID)

	extra, err := unknownFields(data, invoiceFields, inv.Extra)
	if err != nil {
		return err
	}
	inv.Extra = extra
	return nil
}

// UnmarshalJSON accepts a numeric contract_id and keeps unmodelled keys in Extra.
func (c *Contract) UnmarshalJSON(data []byte) error {
	type plain Contract
	var aux struct {
		plain
		ContractID json.RawMessage `json:"contract_id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = Contract(aux.plain)
	c.ContractID = scalarText(aux.ContractID)

	extra, err := unknownFields(data, contractFields, c.Extra)
	if err != nil {
		return err
	}
	c.Extra = extra
	return nil
}

// scalarText renders a JSON id as text. Strings are unquoted, null and
// absent are empty, and anything else keeps its compact JSON form.
func scalarText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// unknownFields merges every top-level key of data not in known into extra.
// It returns nil when there is nothing to keep.
func unknownFields(data []byte, known []string, extra map[string]any) (map[string]any, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for key, raw := range fields {
		if slices.Contains(known, key) {
			continue
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[key] = v
	}
	return extra, nil
}
