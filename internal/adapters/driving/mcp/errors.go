// Package mcp provides an MCP (Model Context Protocol) server adapter for DocuFlow.
// It lets AI assistants list invoices and contracts, ask questions about them
// and run the compliance workflow.
package mcp

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
)

// ErrMissingInvoiceService is returned when the invoice service is not provided.
var ErrMissingInvoiceService = errors.New("mcp: invoice service is required")

// errNotConfigured is returned by tools whose service was not wired.
var errNotConfigured = fmt.Errorf("mcp: service not configured: %w", domain.ErrNotImplemented)

// toolError prefixes err with a stable category so assistants can branch on it.
// The original error stays in the chain.
func toolError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", errorCategory(err), err)
}

func errorCategory(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNoReport):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrEmptyQuery),
		errors.Is(err, domain.ErrEmptySelection):
		return "invalid_input"
	case errors.Is(err, domain.ErrBackendUnavailable):
		return "backend_unavailable"
	case errors.Is(err, domain.ErrNotImplemented):
		return "not_configured"
	default:
		return "error"
	}
}
