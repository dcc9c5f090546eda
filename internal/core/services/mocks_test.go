package services

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
)

// fakeAPI is an in-memory driven.DocuFlowAPI that records calls.
type fakeAPI struct {
	mu sync.Mutex

	invoicePage  *domain.InvoicePage
	contractPage *domain.ContractPage
	invoice      *domain.Invoice
	contract     *domain.Contract
	health       *domain.HealthStatus
	queryAnswer  any
	analyzeReply any
	download     *domain.DownloadURL
	upload       *domain.UploadResult

	listErr    error
	healthErr  error
	analyzeErr error
	uploadErr  error

	listParams   []domain.ListParams
	analyzedIDs  [][]int64
	queries      []string
	uploadedName []string
	uploadedBody []string
	downloadReq  []domain.DocumentType
}

// decodeJSON returns v decoded as encoding/json would produce it.
func decodeJSON(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		panic(err)
	}
	return v
}

func (f *fakeAPI) UploadDocument(_ context.Context, file io.Reader, filename string, _ domain.DocumentType) (*domain.UploadResult, error) {
	body, _ := io.ReadAll(file)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploadedName = append(f.uploadedName, filename)
	f.uploadedBody = append(f.uploadedBody, string(body))
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	if f.upload != nil {
		return f.upload, nil
	}
	return &domain.UploadResult{Success: true, Message: "uploaded"}, nil
}

func (f *fakeAPI) ListInvoices(_ context.Context, params domain.ListParams) (*domain.InvoicePage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listParams = append(f.listParams, params)
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.invoicePage == nil {
		return &domain.InvoicePage{}, nil
	}
	return f.invoicePage, nil
}

func (f *fakeAPI) GetInvoice(_ context.Context, id int64) (*domain.Invoice, error) {
	if f.invoice == nil || f.invoice.ID != id {
		return nil, domain.ErrNotFound
	}
	return f.invoice, nil
}

func (f *fakeAPI) ListContracts(_ context.Context, params domain.ListParams) (*domain.ContractPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listParams = append(f.listParams, params)
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.contractPage == nil {
		return &domain.ContractPage{}, nil
	}
	return f.contractPage, nil
}

func (f *fakeAPI) GetContract(_ context.Context, id int64) (*domain.Contract, error) {
	if f.contract == nil || f.contract.ID != id {
		return nil, domain.ErrNotFound
	}
	return f.contract, nil
}

func (f *fakeAPI) Health(_ context.Context) (*domain.HealthStatus, error) {
	if f.healthErr != nil {
		return nil, f.healthErr
	}
	if f.health == nil {
		return &domain.HealthStatus{Status: "healthy"}, nil
	}
	return f.health, nil
}

func (f *fakeAPI) QueryInvoice(_ context.Context, _ int64, query string) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	return f.queryAnswer, nil
}

func (f *fakeAPI) QueryContract(_ context.Context, _ int64, query string) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	return f.queryAnswer, nil
}

func (f *fakeAPI) AnalyzeInvoices(_ context.Context, ids []int64) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.analyzedIDs = append(f.analyzedIDs, ids)
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	return f.analyzeReply, nil
}

func (f *fakeAPI) DownloadURL(_ context.Context, docType domain.DocumentType, _ int64) (*domain.DownloadURL, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloadReq = append(f.downloadReq, docType)
	if f.download == nil {
		return nil, domain.ErrNotFound
	}
	return f.download, nil
}

// fakeOpener records opened URLs.
type fakeOpener struct {
	opened []string
	err    error
}

func (o *fakeOpener) Open(url string) error {
	o.opened = append(o.opened, url)
	return o.err
}

// fakeExporter records exports.
type fakeExporter struct {
	path    string
	batch   domain.WorkflowBatch
	summary domain.ReportSummary
}

func (e *fakeExporter) Export(_ context.Context, path string, batch domain.WorkflowBatch, summary domain.ReportSummary) error {
	e.path = path
	e.batch = batch
	e.summary = summary
	return nil
}

// fakeWatcher replays a fixed list of paths.
type fakeWatcher struct {
	paths []string
}

func (w *fakeWatcher) Watch(_ context.Context, _ string, onFile func(string)) error {
	for _, p := range w.paths {
		onFile(p)
	}
	return nil
}

// failingStore is a driven.KVStore whose every call fails.
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, io.ErrUnexpectedEOF }
func (failingStore) Set(context.Context, string, []byte) error   { return io.ErrShortWrite }
func (failingStore) Delete(context.Context, string) error        { return io.ErrShortWrite }
func (failingStore) Close() error                                { return nil }

func float(v float64) *float64 { return &v }
