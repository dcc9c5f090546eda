package mcp

import (
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Invoices lists, fetches and queries invoices.
	Invoices driving.InvoiceService

	// Contracts lists, fetches and queries contracts.
	Contracts driving.ContractService

	// Workflow runs the compliance workflow.
	Workflow driving.WorkflowService

	// Reports reads the stored workflow batch.
	Reports driving.ReportService

	// Dashboard provides the backend health check.
	Dashboard driving.DashboardService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Invoices == nil {
		return ErrMissingInvoiceService
	}
	// The remaining services are optional; their tools report not_configured.
	return nil
}
