package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for DocuFlow resources.
	uriScheme = "docuflow://"

	latestReportURI = uriScheme + "reports/latest"
	invoicePrefix   = uriScheme + "invoices/"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         latestReportURI,
		Name:        "latest-report",
		Description: "The most recent workflow batch as JSON",
		MIMEType:    "application/json",
	}, s.handleLatestReportResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: invoicePrefix + "{id}",
		Name:        "invoice",
		Description: "One invoice by database id",
		MIMEType:    "application/json",
	}, s.handleInvoiceResource)
}

// handleLatestReportResource returns the stored batch, or "null" when no
// workflow has run yet.
func (s *Server) handleLatestReportResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Reports == nil {
		return jsonResource(req.Params.URI, "null"), nil
	}

	batch, _, err := s.ports.Reports.Current()
	if errors.Is(err, domain.ErrNoReport) {
		return jsonResource(req.Params.URI, "null"), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}

	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling report: %w", err)
	}
	return jsonResource(req.Params.URI, string(data)), nil
}

// handleInvoiceResource returns one invoice.
func (s *Server) handleInvoiceResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id, ok := extractInvoiceID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	invoice, err := s.ports.Invoices.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	data, err := json.MarshalIndent(invoiceOutput(*invoice), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling invoice: %w", err)
	}
	return jsonResource(req.Params.URI, string(data)), nil
}

func jsonResource(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractInvoiceID parses the id from a URI like docuflow://invoices/{id}.
func extractInvoiceID(uri string) (int64, bool) {
	if !strings.HasPrefix(uri, invoicePrefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(uri, invoicePrefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
