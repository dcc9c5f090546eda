package tui

import "errors"

var (
	// ErrMissingInvoiceService is returned when the invoice service is not provided.
	ErrMissingInvoiceService = errors.New("tui: invoice service is required")

	// ErrMissingContractService is returned when the contract service is not provided.
	ErrMissingContractService = errors.New("tui: contract service is required")

	// ErrMissingDashboardService is returned when the dashboard service is not provided.
	ErrMissingDashboardService = errors.New("tui: dashboard service is required")

	// ErrMissingWorkflowService is returned when the workflow service is not provided.
	ErrMissingWorkflowService = errors.New("tui: workflow service is required")

	// ErrMissingReportService is returned when the report service is not provided.
	ErrMissingReportService = errors.New("tui: report service is required")

	// ErrMissingUploadService is returned when the upload service is not provided.
	ErrMissingUploadService = errors.New("tui: upload service is required")

	// ErrInvalidPorts is returned when no ports are given at all.
	ErrInvalidPorts = errors.New("tui: invalid ports configuration")
)
