// Package tui provides the interactive terminal interface for docuflow.
// It is a driving adapter: every view talks to the core through the
// driving ports aggregated in Ports.
package tui

import (
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces used by the TUI.
type Ports struct {
	// Invoices backs the invoices view and the workflow selection.
	Invoices driving.InvoiceService

	// Contracts backs the contracts view.
	Contracts driving.ContractService

	// Dashboard backs the dashboard view and the health poll.
	Dashboard driving.DashboardService

	// Workflow runs the compliance analysis on selected invoices.
	Workflow driving.WorkflowService

	// Reports exposes the stored workflow batch.
	Reports driving.ReportService

	// Upload sends PDF documents to the backend.
	Upload driving.UploadService

	// Theme persists the colour scheme. Optional; without it the
	// light palette is used and ctrl+t is a no-op.
	Theme driving.ThemeService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Invoices == nil {
		return ErrMissingInvoiceService
	}
	if p.Contracts == nil {
		return ErrMissingContractService
	}
	if p.Dashboard == nil {
		return ErrMissingDashboardService
	}
	if p.Workflow == nil {
		return ErrMissingWorkflowService
	}
	if p.Reports == nil {
		return ErrMissingReportService
	}
	if p.Upload == nil {
		return ErrMissingUploadService
	}
	return nil
}
