package dashboard

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docuflow-cli/internal/core/services"
)

type mockDashboardService struct {
	view        *driving.DashboardView
	cached      *driving.DashboardView
	loadErr     error
	health      domain.HealthState
	loadCalls   int
	healthCalls int
}

func (m *mockDashboardService) Load(_ context.Context) (*driving.DashboardView, error) {
	m.loadCalls++
	return m.view, m.loadErr
}

func (m *mockDashboardService) Cached() (*driving.DashboardView, bool) {
	return m.cached, m.cached != nil
}

func (m *mockDashboardService) CheckHealth(_ context.Context) domain.HealthState {
	m.healthCalls++
	return m.health
}

func (m *mockDashboardService) RecentUploads(view *driving.DashboardView, query string) []domain.RecentUpload {
	if view == nil {
		return nil
	}
	return services.RecentUploads(view.Invoices, view.Contracts, query, domain.RecentUploadsLimit)
}

func sampleDashboard() *driving.DashboardView {
	return &driving.DashboardView{
		Invoices: []domain.Invoice{
			{ID: 1, InvoiceID: "INV-001", SellerName: "Acme", Summary: "Office chairs", CreatedAt: "2025-03-10T10:00:00Z"},
			{ID: 2, InvoiceID: "INV-002", SellerName: "Globex", Summary: "Cloud hosting", CreatedAt: "2025-03-12T10:00:00Z"},
		},
		Contracts: []domain.Contract{
			{ID: 7, ContractID: "CT-7", Summary: "Master services agreement", CreatedAt: "2025-03-11T10:00:00Z"},
		},
		InvoiceTotal:  12,
		ContractTotal: 3,
		Health:        domain.HealthHealthy,
		LastChecked:   "9:00AM",
		Errors:        map[string]error{},
	}
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.Equal(t, 0, view.gen)
	assert.Nil(t, view.Data())
}

func TestView_InitUsesCacheAndStartsLoading(t *testing.T) {
	svc := &mockDashboardService{cached: sampleDashboard()}
	view := NewView(nil, svc)

	cmd := view.Init()

	assert.NotNil(t, cmd)
	assert.True(t, view.loading)
	assert.Equal(t, 1, view.gen)
	require.NotNil(t, view.Data())
	assert.Equal(t, 12, view.Data().InvoiceTotal)
	assert.Len(t, view.Recent(), 3)
}

func TestView_LoadCommand(t *testing.T) {
	svc := &mockDashboardService{view: sampleDashboard()}
	view := NewView(nil, svc)

	msg := view.load()()

	loaded, ok := msg.(messages.DashboardLoaded)
	require.True(t, ok)
	assert.NoError(t, loaded.Err)
	assert.Equal(t, 1, svc.loadCalls)

	view.Update(loaded)
	assert.False(t, view.loading)
	assert.Equal(t, 15, view.Data().TotalDocuments())
	require.Len(t, view.Recent(), 3)
	assert.Equal(t, "INV-002", view.Recent()[0].Label)
}

func TestView_LoadWithoutService(t *testing.T) {
	view := NewView(nil, nil)

	msg := view.load()()

	loaded, ok := msg.(messages.DashboardLoaded)
	require.True(t, ok)
	assert.ErrorIs(t, loaded.Err, errServiceUnavailable)
}

func TestView_LoadErrorKeepsPreviousData(t *testing.T) {
	view := NewView(nil, &mockDashboardService{})
	view.Update(messages.DashboardLoaded{View: sampleDashboard()})

	view.Update(messages.DashboardLoaded{Err: errors.New("boom")})

	assert.EqualError(t, view.Err(), "boom")
	assert.Equal(t, 12, view.Data().InvoiceTotal)
}

func TestView_HealthTickPollsCurrentSession(t *testing.T) {
	svc := &mockDashboardService{health: domain.HealthDegraded}
	view := NewView(nil, svc)
	view.Init()

	_, cmd := view.Update(messages.HealthTick{Gen: view.gen})
	require.NotNil(t, cmd)

	checked, ok := cmd().(messages.HealthChecked)
	require.True(t, ok)
	assert.Equal(t, domain.HealthDegraded, checked.Health)
	assert.Equal(t, 1, svc.healthCalls)

	_, next := view.Update(checked)
	assert.NotNil(t, next)
	assert.Equal(t, domain.HealthDegraded, view.Data().Health)
}

func TestView_StaleHealthTickIgnored(t *testing.T) {
	svc := &mockDashboardService{health: domain.HealthHealthy}
	view := NewView(nil, svc)
	view.Init()
	view.Init()

	_, cmd := view.Update(messages.HealthTick{Gen: 1})
	assert.Nil(t, cmd)

	_, cmd = view.Update(messages.HealthChecked{Gen: 1, Health: domain.HealthDown})
	assert.Nil(t, cmd)
	assert.Nil(t, view.Data())
}

func TestView_SearchFiltersRecent(t *testing.T) {
	view := NewView(nil, &mockDashboardService{})
	view.Update(messages.DashboardLoaded{View: sampleDashboard()})

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	require.True(t, view.search.Focused())

	for _, r := range "globex" {
		view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	require.Len(t, view.Recent(), 1)
	assert.Equal(t, "INV-002", view.Recent()[0].Label)

	view.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, view.search.Focused())
}

func TestView_EscReturnsToMenu(t *testing.T) {
	view := NewView(nil, &mockDashboardService{})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
}

func TestView_RefreshReloads(t *testing.T) {
	svc := &mockDashboardService{view: sampleDashboard()}
	view := NewView(nil, svc)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	assert.NotNil(t, cmd)
	assert.True(t, view.loading)
}

func TestView_View(t *testing.T) {
	view := NewView(nil, &mockDashboardService{})
	assert.Equal(t, "Initialising...", view.View())

	view.SetDimensions(120, 40)
	data := sampleDashboard()
	data.Errors[services.CardContracts] = errors.New("timeout")
	view.Update(messages.DashboardLoaded{View: data})

	out := view.View()
	assert.Contains(t, out, "Dashboard")
	assert.Contains(t, out, "Invoices")
	assert.Contains(t, out, "12")
	assert.Contains(t, out, "Operational")
	assert.Contains(t, out, "unavailable")
	assert.Contains(t, out, "Recent uploads")
	assert.Contains(t, out, "CT-7")
}

func TestView_ViewWithoutData(t *testing.T) {
	view := NewView(nil, &mockDashboardService{})
	view.SetDimensions(80, 24)

	assert.Contains(t, view.View(), "No dashboard data")
}
