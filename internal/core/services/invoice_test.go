package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docuflow-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
)

func invoicePage(total int, invoices ...domain.Invoice) *domain.InvoicePage {
	return &domain.InvoicePage{Invoices: invoices, Count: len(invoices), Total: total}
}

func TestInvoiceService_NilAPI(t *testing.T) {
	svc := NewInvoiceService(context.Background(), nil, nil, nil)

	_, err := svc.List(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	_, err = svc.Get(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	_, err = svc.Query(context.Background(), 1, "q")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	_, err = svc.Open(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestInvoiceService_ListPagination(t *testing.T) {
	api := &fakeAPI{invoicePage: invoicePage(23, domain.Invoice{ID: 11})}
	svc := NewInvoiceService(context.Background(), api, memory.NewKVStore(), nil)

	view, err := svc.List(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, []domain.ListParams{{Limit: 10, Offset: 10}}, api.listParams)
	assert.Equal(t, 2, view.Page)
	assert.Equal(t, 23, view.Total)
	assert.Equal(t, 3, view.TotalPages)
	require.Len(t, view.Invoices, 1)
}

func TestInvoiceService_ListClampsPage(t *testing.T) {
	api := &fakeAPI{}
	svc := NewInvoiceService(context.Background(), api, nil, nil)

	view, err := svc.List(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, 1, view.Page)
	assert.Equal(t, 1, view.TotalPages)
	assert.Equal(t, 0, api.listParams[0].Offset)
}

func TestInvoiceService_ListErrorKeepsCache(t *testing.T) {
	api := &fakeAPI{invoicePage: invoicePage(1, domain.Invoice{ID: 1})}
	svc := NewInvoiceService(context.Background(), api, nil, nil)
	_, err := svc.List(context.Background(), 1)
	require.NoError(t, err)

	api.listErr = errors.New("boom")
	_, err = svc.List(context.Background(), 2)
	require.Error(t, err)

	cached, ok := svc.Cached()
	require.True(t, ok)
	assert.Equal(t, 1, cached.Page)
	assert.Len(t, cached.Invoices, 1)
}

func TestInvoiceService_HydratesFromStore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	api := &fakeAPI{invoicePage: invoicePage(1, domain.Invoice{ID: 5, InvoiceID: "INV-5"})}

	first := NewInvoiceService(ctx, api, store, nil)
	_, ok := first.Cached()
	assert.False(t, ok)
	_, err := first.List(ctx, 1)
	require.NoError(t, err)
	first.Select(5)

	second := NewInvoiceService(ctx, nil, store, nil)
	cached, ok := second.Cached()
	require.True(t, ok)
	assert.Equal(t, "INV-5", cached.Invoices[0].InvoiceID)
	assert.Equal(t, []int64{5}, second.Selection())
}

func TestInvoiceService_Selection(t *testing.T) {
	svc := NewInvoiceService(context.Background(), nil, memory.NewKVStore(), nil)

	svc.Select(3, 1, 3)
	assert.Equal(t, []int64{3, 1}, svc.Selection())

	assert.True(t, svc.ToggleSelect(2))
	assert.False(t, svc.ToggleSelect(3))
	assert.Equal(t, []int64{1, 2}, svc.Selection())

	svc.Unselect(1, 99)
	assert.Equal(t, []int64{2}, svc.Selection())

	svc.ClearSelection()
	assert.Empty(t, svc.Selection())
}

func TestInvoiceService_SelectionSurvivesPageChange(t *testing.T) {
	api := &fakeAPI{invoicePage: invoicePage(30, domain.Invoice{ID: 1})}
	svc := NewInvoiceService(context.Background(), api, nil, nil)
	svc.Select(1)

	_, err := svc.List(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, svc.Selection())
}

func TestInvoiceService_Query(t *testing.T) {
	api := &fakeAPI{queryAnswer: decodeJSON(`{"answer":"Total is 40"}`)}
	svc := NewInvoiceService(context.Background(), api, nil, nil)

	_, err := svc.Query(context.Background(), 1, "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyQuery)

	answer, err := svc.Query(context.Background(), 1, "  what is the total?  ")
	require.NoError(t, err)
	assert.Equal(t, "Total is 40", answer)
	assert.Equal(t, []string{"what is the total?"}, api.queries)
}

func TestInvoiceService_DownloadAndOpen(t *testing.T) {
	api := &fakeAPI{download: &domain.DownloadURL{Success: true, URL: "https://s3/inv.pdf"}}
	opener := &fakeOpener{}
	svc := NewInvoiceService(context.Background(), api, nil, opener)

	url, err := svc.Open(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "https://s3/inv.pdf", url)
	assert.Equal(t, []string{"https://s3/inv.pdf"}, opener.opened)
	assert.Equal(t, []domain.DocumentType{domain.DocumentTypeInvoice}, api.downloadReq)
}

func TestInvoiceService_DownloadUnsuccessful(t *testing.T) {
	api := &fakeAPI{download: &domain.DownloadURL{Success: false}}
	svc := NewInvoiceService(context.Background(), api, nil, nil)

	_, err := svc.DownloadURL(context.Background(), 4)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceService_OpenWithoutOpenerReturnsURL(t *testing.T) {
	api := &fakeAPI{download: &domain.DownloadURL{Success: true, URL: "https://s3/inv.pdf"}}
	svc := NewInvoiceService(context.Background(), api, nil, nil)

	url, err := svc.Open(context.Background(), 4)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	assert.Equal(t, "https://s3/inv.pdf", url)
}

func TestInvoiceService_OpenerFailureWrapped(t *testing.T) {
	api := &fakeAPI{download: &domain.DownloadURL{Success: true, URL: "u"}}
	opener := &fakeOpener{err: errors.New("no display")}
	svc := NewInvoiceService(context.Background(), api, nil, opener)

	_, err := svc.Open(context.Background(), 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open browser")
}
