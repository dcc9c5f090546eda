package services

import (
	"sort"
	"strings"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
)

func containsFold(query string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// FilterInvoices keeps invoices whose number, seller, summary, tax ID or
// seller address contains query, ignoring case. A blank query keeps all.
func FilterInvoices(invoices []domain.Invoice, query string) []domain.Invoice {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return invoices
	}
	out := make([]domain.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if containsFold(q, inv.InvoiceID, inv.SellerName, inv.Summary, inv.TaxID, inv.SellerAddress) {
			out = append(out, inv)
		}
	}
	return out
}

// FilterContracts keeps contracts whose number, summary or text contains
// query, ignoring case. A blank query keeps all.
func FilterContracts(contracts []domain.Contract, query string) []domain.Contract {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return contracts
	}
	out := make([]domain.Contract, 0, len(contracts))
	for _, c := range contracts {
		if containsFold(q, c.ContractID, c.Summary, c.Text) {
			out = append(out, c)
		}
	}
	return out
}

// RecentUploads merges invoices and contracts, keeps those matching query,
// orders them newest first and caps the list at limit.
func RecentUploads(invoices []domain.Invoice, contracts []domain.Contract, query string, limit int) []domain.RecentUpload {
	rows := make([]domain.RecentUpload, 0, len(invoices)+len(contracts))
	for _, inv := range FilterInvoices(invoices, query) {
		rows = append(rows, domain.RecentUpload{
			Type:      domain.DocumentTypeInvoice,
			ID:        inv.ID,
			Label:     labelOr(inv.InvoiceID, "Invoice", inv.ID),
			Summary:   inv.Summary,
			CreatedAt: inv.CreatedAt,
		})
	}
	for _, c := range FilterContracts(contracts, query) {
		rows = append(rows, domain.RecentUpload{
			Type:      domain.DocumentTypeContract,
			ID:        c.ID,
			Label:     labelOr(c.ContractID, "Contract", c.ID),
			Summary:   c.Summary,
			CreatedAt: c.CreatedAt,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return parseTimestamp(rows[i].CreatedAt).After(parseTimestamp(rows[j].CreatedAt))
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

func labelOr(label, kind string, id int64) string {
	if label != "" {
		return label
	}
	return kind + " #" + stringify(id)
}
