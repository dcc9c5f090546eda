package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/services"
)

// ListInput is the input schema for the list tools.
type ListInput struct {
	Page   int    `json:"page,omitempty" jsonschema:"one-based page number (default 1)"`
	Search string `json:"search,omitempty" jsonschema:"case-insensitive filter applied to the fetched page"`
}

// IDInput is the input schema for the get tools.
type IDInput struct {
	ID int64 `json:"id" jsonschema:"database id of the document"`
}

// QueryInput is the input schema for the query tools.
type QueryInput struct {
	ID       int64  `json:"id" jsonschema:"database id of the document"`
	Question string `json:"question" jsonschema:"question to ask the AI about the document"`
}

// RunWorkflowInput is the input schema for the run_workflow tool.
type RunWorkflowInput struct {
	InvoiceIDs []int64 `json:"invoice_ids,omitempty" jsonschema:"invoice database ids; defaults to the current selection"`
}

// ReportSummaryInput is the input schema for the report_summary tool.
type ReportSummaryInput struct {
	InvoiceID string `json:"invoice_id,omitempty" jsonschema:"restrict the answer to one invoice number"`
}

// HealthInput is the (empty) input schema for the health tool.
type HealthInput struct{}

// InvoiceOutput is a single invoice.
type InvoiceOutput struct {
	ID             int64    `json:"id"`
	InvoiceID      string   `json:"invoice_id,omitempty"`
	SellerName     string   `json:"seller_name,omitempty"`
	SellerAddress  string   `json:"seller_address,omitempty"`
	TaxID          string   `json:"tax_id,omitempty"`
	SubtotalAmount *float64 `json:"subtotal_amount,omitempty"`
	TaxAmount      *float64 `json:"tax_amount,omitempty"`
	Summary        string   `json:"summary,omitempty"`
	RiskPercentage *float64 `json:"risk_percentage,omitempty"`
	RiskLevel      string   `json:"risk_level,omitempty"`
	CreatedAt      string   `json:"created_at,omitempty"`
}

// ListInvoicesOutput is the output schema for list_invoices.
type ListInvoicesOutput struct {
	Invoices   []InvoiceOutput `json:"invoices"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	Total      int             `json:"total"`
}

// ContractOutput is a single contract.
type ContractOutput struct {
	ID         int64  `json:"id"`
	ContractID string `json:"contract_id,omitempty"`
	Summary    string `json:"summary,omitempty"`
	Text       string `json:"text,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// ListContractsOutput is the output schema for list_contracts.
type ListContractsOutput struct {
	Contracts  []ContractOutput `json:"contracts"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
	Total      int              `json:"total"`
}

// AnswerOutput is the output schema for the query tools.
type AnswerOutput struct {
	Answer string `json:"answer"`
}

// ReportOutput is one workflow report.
type ReportOutput struct {
	InvoiceID      string   `json:"invoice_id"`
	InvoiceDBID    *int64   `json:"invoice_db_id,omitempty"`
	Status         string   `json:"status"`
	ProcessedAt    string   `json:"processed_at,omitempty"`
	Violations     int      `json:"violations"`
	RiskPercentage *float64 `json:"risk_percentage,omitempty"`
	RiskLevel      string   `json:"risk_level"`
}

// RunWorkflowOutput is the output schema for run_workflow.
type RunWorkflowOutput struct {
	Message string         `json:"message"`
	Reports []ReportOutput `json:"reports"`
}

// ReportSummaryOutput is the output schema for report_summary.
type ReportSummaryOutput struct {
	GeneratedAt         string                  `json:"generated_at"`
	TotalInvoices       int                     `json:"total_invoices"`
	TotalViolations     int                     `json:"total_violations"`
	LineItemsEvaluated  int                     `json:"line_items_evaluated"`
	RulesEvaluated      int                     `json:"rules_evaluated"`
	AverageNextRunHours *float64                `json:"average_next_run_hours,omitempty"`
	RiskBreakdown       map[string]int          `json:"risk_breakdown"`
	TopViolations       []domain.ViolationCount `json:"top_violations"`
	Reports             []ReportOutput          `json:"reports"`
}

// HealthOutput is the output schema for health.
type HealthOutput struct {
	State string `json:"state"`
	Label string `json:"label"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_invoices",
		Description: "List one page of invoices, newest first",
	}, s.handleListInvoices)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_invoice",
		Description: "Get one invoice by database id",
	}, s.handleGetInvoice)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_invoice",
		Description: "Ask the AI a question about one invoice",
	}, s.handleQueryInvoice)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_contracts",
		Description: "List one page of contracts",
	}, s.handleListContracts)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_contract",
		Description: "Get one contract by database id",
	}, s.handleGetContract)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_contract",
		Description: "Ask the AI a question about one contract",
	}, s.handleQueryContract)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "run_workflow",
		Description: "Run the compliance workflow over invoices and store the report",
	}, s.handleRunWorkflow)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "report_summary",
		Description: "Summarise the latest workflow report",
	}, s.handleReportSummary)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "health",
		Description: "Check whether the DocuFlow backend is reachable",
	}, s.handleHealth)
}

func (s *Server) handleListInvoices(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListInvoicesOutput, error) {
	view, err := s.ports.Invoices.List(ctx, input.Page)
	if err != nil {
		return nil, ListInvoicesOutput{}, toolError(err)
	}

	invoices := services.FilterInvoices(view.Invoices, input.Search)
	output := ListInvoicesOutput{
		Invoices:   make([]InvoiceOutput, len(invoices)),
		Page:       view.Page,
		TotalPages: view.TotalPages,
		Total:      view.Total,
	}
	for i := range invoices {
		output.Invoices[i] = invoiceOutput(invoices[i])
	}
	return nil, output, nil
}

func (s *Server) handleGetInvoice(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IDInput,
) (*mcp.CallToolResult, InvoiceOutput, error) {
	invoice, err := s.ports.Invoices.Get(ctx, input.ID)
	if err != nil {
		return nil, InvoiceOutput{}, toolError(err)
	}
	return nil, invoiceOutput(*invoice), nil
}

func (s *Server) handleQueryInvoice(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, AnswerOutput, error) {
	answer, err := s.ports.Invoices.Query(ctx, input.ID, input.Question)
	if err != nil {
		return nil, AnswerOutput{}, toolError(err)
	}
	return nil, AnswerOutput{Answer: answer}, nil
}

func (s *Server) handleListContracts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListContractsOutput, error) {
	if s.ports.Contracts == nil {
		return nil, ListContractsOutput{}, toolError(errNotConfigured)
	}
	view, err := s.ports.Contracts.List(ctx, input.Page)
	if err != nil {
		return nil, ListContractsOutput{}, toolError(err)
	}

	contracts := services.FilterContracts(view.Contracts, input.Search)
	output := ListContractsOutput{
		Contracts:  make([]ContractOutput, len(contracts)),
		Page:       view.Page,
		TotalPages: view.TotalPages,
		Total:      view.Total,
	}
	for i := range contracts {
		output.Contracts[i] = contractOutput(contracts[i])
	}
	return nil, output, nil
}

func (s *Server) handleGetContract(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IDInput,
) (*mcp.CallToolResult, ContractOutput, error) {
	if s.ports.Contracts == nil {
		return nil, ContractOutput{}, toolError(errNotConfigured)
	}
	contract, err := s.ports.Contracts.Get(ctx, input.ID)
	if err != nil {
		return nil, ContractOutput{}, toolError(err)
	}
	return nil, contractOutput(*contract), nil
}

func (s *Server) handleQueryContract(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, AnswerOutput, error) {
	if s.ports.Contracts == nil {
		return nil, AnswerOutput{}, toolError(errNotConfigured)
	}
	answer, err := s.ports.Contracts.Query(ctx, input.ID, input.Question)
	if err != nil {
		return nil, AnswerOutput{}, toolError(err)
	}
	return nil, AnswerOutput{Answer: answer}, nil
}

func (s *Server) handleRunWorkflow(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RunWorkflowInput,
) (*mcp.CallToolResult, RunWorkflowOutput, error) {
	if s.ports.Workflow == nil {
		return nil, RunWorkflowOutput{}, toolError(errNotConfigured)
	}
	ids := input.InvoiceIDs
	if len(ids) == 0 {
		ids = s.ports.Invoices.Selection()
	}

	batch, err := s.ports.Workflow.Run(ctx, ids)
	if err != nil {
		return nil, RunWorkflowOutput{}, toolError(err)
	}
	return nil, RunWorkflowOutput{
		Message: services.WorkflowCompletedMessage(batch),
		Reports: reportOutputs(batch.Invoices),
	}, nil
}

func (s *Server) handleReportSummary(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ReportSummaryInput,
) (*mcp.CallToolResult, ReportSummaryOutput, error) {
	if s.ports.Reports == nil {
		return nil, ReportSummaryOutput{}, toolError(errNotConfigured)
	}

	batch, summary, err := s.ports.Reports.Current()
	if err != nil {
		return nil, ReportSummaryOutput{}, toolError(err)
	}
	reports := batch.Invoices
	if input.InvoiceID != "" {
		group, err := s.ports.Reports.Invoice(input.InvoiceID)
		if err != nil {
			return nil, ReportSummaryOutput{}, toolError(err)
		}
		one := domain.NewWorkflowBatch(batch.GeneratedAt)
		one.Invoices = group.Reports
		sum := services.Summarize(one)
		summary = &sum
		reports = group.Reports
	}

	output := ReportSummaryOutput{
		GeneratedAt:         summary.GeneratedAt,
		TotalInvoices:       summary.TotalInvoices,
		TotalViolations:     summary.TotalViolations,
		LineItemsEvaluated:  summary.LineItemsEvaluated,
		RulesEvaluated:      summary.RulesEvaluated,
		AverageNextRunHours: summary.AverageNextRunHours,
		RiskBreakdown:       make(map[string]int, len(summary.RiskBreakdown)),
		TopViolations:       summary.TopViolations,
		Reports:             reportOutputs(reports),
	}
	for level, n := range summary.RiskBreakdown {
		output.RiskBreakdown[string(level)] = n
	}
	return nil, output, nil
}

func (s *Server) handleHealth(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ HealthInput,
) (*mcp.CallToolResult, HealthOutput, error) {
	if s.ports.Dashboard == nil {
		return nil, HealthOutput{}, toolError(errNotConfigured)
	}
	state := s.ports.Dashboard.CheckHealth(ctx)
	return nil, HealthOutput{State: string(state), Label: state.Label()}, nil
}

func riskOutput(r domain.RiskPercentage) *float64 {
	v, ok := r.Value()
	if !ok {
		return nil
	}
	return &v
}

func invoiceOutput(inv domain.Invoice) InvoiceOutput {
	out := InvoiceOutput{
		ID:             inv.ID,
		InvoiceID:      inv.InvoiceID,
		SellerName:     inv.SellerName,
		SellerAddress:  inv.SellerAddress,
		TaxID:          inv.TaxID,
		SubtotalAmount: inv.SubtotalAmount,
		TaxAmount:      inv.TaxAmount,
		Summary:        inv.Summary,
		RiskPercentage: riskOutput(inv.RiskPercentage),
		CreatedAt:      inv.CreatedAt,
	}
	if !inv.RiskPercentage.IsUnknown() {
		out.RiskLevel = string(inv.RiskPercentage.Level())
	}
	return out
}

func contractOutput(c domain.Contract) ContractOutput {
	return ContractOutput{
		ID:         c.ID,
		ContractID: c.ContractID,
		Summary:    c.Summary,
		Text:       c.Text,
		CreatedAt:  c.CreatedAt,
	}
}

func reportOutputs(reports []domain.WorkflowReport) []ReportOutput {
	out := make([]ReportOutput, len(reports))
	for i, r := range reports {
		out[i] = ReportOutput{
			InvoiceID:      r.InvoiceID,
			InvoiceDBID:    r.InvoiceDBID,
			Status:         r.Status,
			ProcessedAt:    r.ProcessedAt,
			Violations:     len(r.Violations),
			RiskPercentage: riskOutput(r.RiskPercentage),
			RiskLevel:      string(r.RiskPercentage.Level()),
		}
	}
	return out
}
