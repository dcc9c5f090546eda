package docuflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docuflow-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.DocuFlowAPI = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL   = domain.DefaultAPIBaseURL
	DefaultTimeout   = time.Duration(domain.DefaultTimeoutSeconds) * time.Second
	DefaultRateLimit = domain.DefaultRateLimit
)

// HeaderRequestID carries a per-request UUID for backend log correlation.
const HeaderRequestID = "X-Request-ID"

var log = logger.Component("api")

// Config holds configuration for the DocuFlow client.
type Config struct {
	// BaseURL is the backend root (default: http://localhost:8001).
	BaseURL string

	// Timeout bounds every request (default: 300s).
	Timeout time.Duration

	// RateLimit is the sustained requests per second. Zero disables pacing.
	RateLimit float64

	// Notifier receives a notification for every failed request. Optional.
	Notifier driven.Notifier

	// HTTPClient overrides the transport. Its Timeout is left untouched.
	HTTPClient *http.Client
}

// Client talks to the DocuFlow REST API.
type Client struct {
	client   *http.Client
	baseURL  string
	limiter  *rate.Limiter
	notifier driven.Notifier
}

// NewClient creates a new DocuFlow client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	return &Client{
		client:   httpClient,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		limiter:  rate.NewLimiter(limit, 1),
		notifier: cfg.Notifier,
	}
}

// BaseURL returns the backend root the client sends to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// envelope is the {success, metadata} wrapper of single-document responses.
type envelope[T any] struct {
	Success  bool `json:"success"`
	Metadata *T   `json:"metadata"`
}

type queryRequest struct {
	ID    int64  `json:"id"`
	Query string `json:"query"`
}

type analyzeRequest struct {
	InvoiceIDs []int64 `json:"invoice_ids"`
}

// UploadDocument sends a PDF as multipart form data.
func (c *Client) UploadDocument(ctx context.Context, file io.Reader, filename string, docType domain.DocumentType) (*domain.UploadResult, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", "application/pdf")
	part, err := form.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if err := form.WriteField("document_type", docType.String()); err != nil {
		return nil, fmt.Errorf("write form field: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/upload_document", nil, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	var result domain.UploadResult
	if err := c.send(req, &result, ""); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListInvoices returns one page of invoices.
func (c *Client) ListInvoices(ctx context.Context, params domain.ListParams) (*domain.InvoicePage, error) {
	var page domain.InvoicePage
	if err := c.getJSON(ctx, "/invoices", pageQuery(params), &page); err != nil {
		return nil, err
	}
	if page.Invoices == nil {
		page.Invoices = []domain.Invoice{}
	}
	return &page, nil
}

// GetInvoice returns one invoice by database ID.
func (c *Client) GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error) {
	var resp envelope[domain.Invoice]
	if err := c.getJSON(ctx, "/invoices/"+strconv.FormatInt(id, 10), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Metadata == nil {
		return nil, fmt.Errorf("invoice %d: %w", id, domain.ErrNotFound)
	}
	return resp.Metadata, nil
}

// ListContracts returns one page of contracts.
func (c *Client) ListContracts(ctx context.Context, params domain.ListParams) (*domain.ContractPage, error) {
	var page domain.ContractPage
	if err := c.getJSON(ctx, "/contracts", pageQuery(params), &page); err != nil {
		return nil, err
	}
	if page.Contracts == nil {
		page.Contracts = []domain.Contract{}
	}
	return &page, nil
}

// GetContract returns one contract by database ID.
func (c *Client) GetContract(ctx context.Context, id int64) (*domain.Contract, error) {
	var resp envelope[domain.Contract]
	if err := c.getJSON(ctx, "/contracts/"+strconv.FormatInt(id, 10), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Metadata == nil {
		return nil, fmt.Errorf("contract %d: %w", id, domain.ErrNotFound)
	}
	return resp.Metadata, nil
}

// Health returns the backend status.
func (c *Client) Health(ctx context.Context) (*domain.HealthStatus, error) {
	var status domain.HealthStatus
	if err := c.getJSON(ctx, "/health", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// QueryInvoice asks an AI question about one invoice.
func (c *Client) QueryInvoice(ctx context.Context, id int64, query string) (any, error) {
	var answer any
	if err := c.postJSON(ctx, "/query_invoices", queryRequest{ID: id, Query: query}, &answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// QueryContract asks an AI question about one contract.
func (c *Client) QueryContract(ctx context.Context, id int64, query string) (any, error) {
	var answer any
	if err := c.postJSON(ctx, "/query_contracts", queryRequest{ID: id, Query: query}, &answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// AnalyzeInvoices runs the compliance workflow and returns the raw payload.
func (c *Client) AnalyzeInvoices(ctx context.Context, invoiceIDs []int64) (any, error) {
	var payload any
	if err := c.postJSON(ctx, "/analyze_invoices", analyzeRequest{InvoiceIDs: invoiceIDs}, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// DownloadURL returns a presigned link to the stored PDF.
func (c *Client) DownloadURL(ctx context.Context, docType domain.DocumentType, id int64) (*domain.DownloadURL, error) {
	path := fmt.Sprintf("/documents/%s/%d/download_url", docType, id)
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	notFound := fmt.Sprintf("%s not found (ID: %d)", titleCase(docType.String()), id)
	var resp domain.DownloadURL
	if err := c.send(req, &resp, notFound); err != nil {
		return nil, err
	}
	return &resp, nil
}

func pageQuery(params domain.ListParams) url.Values {
	q := url.Values{}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	q.Set("offset", strconv.Itoa(params.Offset))
	return q
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return c.send(req, out, "")
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	jsonBody, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.send(req, out, "")
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	if body == nil {
		body = http.NoBody
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, uuid.NewString())
	return req, nil
}

// send paces, performs and decodes one request. notFound, when set,
// replaces the backend message of a 404.
func (c *Client) send(req *http.Request, out any, notFound string) error {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	log.Debug("%s %s (%s)", req.Method, req.URL.Path, req.Header.Get(HeaderRequestID))
	resp, err := c.client.Do(req)
	if err != nil {
		c.notify(err.Error())
		return fmt.Errorf("send request: %w: %w", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.StatusCode, body)}
		if resp.StatusCode == http.StatusNotFound && notFound != "" {
			apiErr.Message = notFound
		}
		log.Debug("%s %s failed with %d: %s", req.Method, req.URL.Path, resp.StatusCode, apiErr.Message)
		c.notify(apiErr.Message)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		c.notify(domain.FallbackErrorMessage)
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) notify(message string) {
	if c.notifier == nil {
		return
	}
	if message == "" {
		message = domain.FallbackErrorMessage
	}
	c.notifier.Notify(domain.Notification{Level: domain.NotifyError, Message: message})
}
