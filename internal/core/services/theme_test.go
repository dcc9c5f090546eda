package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docuflow-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
)

func TestThemeService_DefaultsToLight(t *testing.T) {
	svc := NewThemeService(context.Background(), memory.NewKVStore())
	assert.Equal(t, domain.ThemeLight, svc.Theme())
}

func TestThemeService_PersistsChoice(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()

	require.NoError(t, NewThemeService(ctx, store).SetTheme(domain.ThemeDark))

	assert.Equal(t, domain.ThemeDark, NewThemeService(ctx, store).Theme())
}

func TestThemeService_RejectsInvalid(t *testing.T) {
	svc := NewThemeService(context.Background(), memory.NewKVStore())

	err := svc.SetTheme(domain.Theme("sepia"))

	assert.ErrorIs(t, err, domain.ErrInvalidTheme)
	assert.Equal(t, domain.ThemeLight, svc.Theme())
}

func TestThemeService_IgnoresInvalidStoredValue(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	require.NoError(t, store.Set(ctx, domain.StorageKeyTheme, []byte(`"neon"`)))

	assert.Equal(t, domain.ThemeLight, NewThemeService(ctx, store).Theme())
}

func TestThemeService_Toggle(t *testing.T) {
	svc := NewThemeService(context.Background(), memory.NewKVStore())

	assert.Equal(t, domain.ThemeDark, svc.Toggle())
	assert.Equal(t, domain.ThemeLight, svc.Toggle())
}
