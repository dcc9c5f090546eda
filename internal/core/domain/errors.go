package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrBackendUnavailable indicates the DocuFlow backend did not answer a health check.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// Upload Errors.
	// Their messages are shown to the user verbatim.

	// ErrNoFile indicates no file was chosen for upload.
	ErrNoFile = errors.New("Please select a PDF file to upload")

	// ErrNotPDF indicates the chosen file is not a PDF document.
	ErrNotPDF = errors.New("Only PDF documents are supported")

	// ErrFileTooLarge indicates the chosen file exceeds MaxUploadSize.
	ErrFileTooLarge = errors.New("File must be 10 MB or smaller")

	// ErrInvalidDocumentType indicates a document type other than invoice or contract.
	ErrInvalidDocumentType = errors.New("document type must be invoice or contract")

	// Workflow Errors.

	// ErrEmptySelection indicates a workflow run was requested with no invoices.
	ErrEmptySelection = errors.New("Select at least one invoice to run the workflow.")

	// ErrNoReport indicates no workflow batch has been stored yet.
	ErrNoReport = errors.New("no workflow report available, run the workflow first")

	// ErrEmptyQuery indicates an inline AI question was blank.
	ErrEmptyQuery = errors.New("query must not be empty")

	// ErrInvalidTheme indicates a theme other than light or dark.
	ErrInvalidTheme = errors.New("theme must be light or dark")
)
