package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driving"
)

// Ensure DashboardService implements the interface.
var _ driving.DashboardService = (*DashboardService)(nil)

// Dashboard card names used as keys of DashboardView.Errors.
const (
	CardInvoices  = "invoices"
	CardContracts = "contracts"
	CardHealth    = "health"
)

// HealthPollInterval is how often the dashboard re-checks the backend.
const HealthPollInterval = 30 * time.Second

// dashboardListSize is the page size of the dashboard's lists.
const dashboardListSize = 10

// DashboardService backs the dashboard page.
type DashboardService struct {
	mu     sync.Mutex
	api    driven.DocuFlowAPI
	store  driven.KVStore
	now    func() time.Time
	state  domain.DashboardState
	cached bool
}

// NewDashboardService creates the service and restores the cached dashboard.
func NewDashboardService(ctx context.Context, api driven.DocuFlowAPI, store driven.KVStore) *DashboardService {
	s := &DashboardService{api: api, store: store, now: time.Now}
	if state, ok := loadState[domain.DashboardState](ctx, store, domain.StorageKeyDashboard); ok {
		s.state = state
		s.cached = true
	}
	return s
}

func (s *DashboardService) view() *driving.DashboardView {
	return &driving.DashboardView{
		Invoices:      s.state.Invoices,
		Contracts:     s.state.Contracts,
		InvoiceTotal:  s.state.InvoiceTotal,
		ContractTotal: s.state.ContractTotal,
		Health:        s.state.Health,
		LastChecked:   s.state.LastHealthTime,
		Errors:        map[string]error{},
	}
}

// Load fetches invoices, contracts and health concurrently. A failed card
// keeps its previous cached value and is reported in Errors.
func (s *DashboardService) Load(ctx context.Context) (*driving.DashboardView, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}

	params := domain.ListParams{Limit: dashboardListSize, Offset: 0}
	var (
		wg        sync.WaitGroup
		invoices  *domain.InvoicePage
		contracts *domain.ContractPage
		invErr    error
		conErr    error
		health    domain.HealthState
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		invoices, invErr = s.api.ListInvoices(ctx, params)
	}()
	go func() {
		defer wg.Done()
		contracts, conErr = s.api.ListContracts(ctx, params)
	}()
	go func() {
		defer wg.Done()
		health = s.CheckHealth(ctx)
	}()
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	errs := map[string]error{}
	if invErr != nil {
		errs[CardInvoices] = invErr
	} else {
		s.state.Invoices = invoices.Invoices
		s.state.InvoiceTotal = invoices.Total
	}
	if conErr != nil {
		errs[CardContracts] = conErr
	} else {
		s.state.Contracts = contracts.Contracts
		s.state.ContractTotal = contracts.Total
	}
	if health == domain.HealthDown {
		errs[CardHealth] = domain.ErrBackendUnavailable
	}
	s.cached = true
	SaveState(ctx, s.store, domain.StorageKeyDashboard, s.state)

	view := s.view()
	view.Errors = errs
	return view, nil
}

// Cached returns the last loaded dashboard.
func (s *DashboardService) Cached() (*driving.DashboardView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cached {
		return nil, false
	}
	return s.view(), true
}

// CheckHealth polls /health. A request failure means the backend is down.
func (s *DashboardService) CheckHealth(ctx context.Context) domain.HealthState {
	state := domain.HealthDown
	if s.api != nil {
		if status, err := s.api.Health(ctx); err == nil && status != nil {
			state = domain.HealthFromStatus(status.Status)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Health = state
	s.state.LastHealthTime = s.now().Format(time.Kitchen)
	return state
}

// RecentUploads returns the newest matching uploads of view.
func (s *DashboardService) RecentUploads(view *driving.DashboardView, query string) []domain.RecentUpload {
	if view == nil {
		return nil
	}
	return RecentUploads(view.Invoices, view.Contracts, query, domain.RecentUploadsLimit)
}
