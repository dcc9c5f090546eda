package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driving"
)

// Ensure ThemeService implements the interface.
var _ driving.ThemeService = (*ThemeService)(nil)

// ThemeService persists the UI theme under domain.StorageKeyTheme.
type ThemeService struct {
	mu    sync.RWMutex
	store driven.KVStore
	theme domain.Theme
}

// NewThemeService loads the stored theme, defaulting to light.
func NewThemeService(ctx context.Context, store driven.KVStore) *ThemeService {
	theme := LoadState(ctx, store, domain.StorageKeyTheme, domain.ThemeLight)
	if !theme.IsValid() {
		theme = domain.ThemeLight
	}
	return &ThemeService{store: store, theme: theme}
}

// Theme returns the current theme.
func (s *ThemeService) Theme() domain.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// SetTheme changes and persists the theme.
func (s *ThemeService) SetTheme(theme domain.Theme) error {
	if !theme.IsValid() {
		return domain.ErrInvalidTheme
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	SaveState(context.Background(), s.store, domain.StorageKeyTheme, theme)
	return nil
}

// Toggle switches between light and dark and returns the new theme.
func (s *ThemeService) Toggle() domain.Theme {
	next := s.Theme().Toggle()
	_ = s.SetTheme(next)
	return next
}
