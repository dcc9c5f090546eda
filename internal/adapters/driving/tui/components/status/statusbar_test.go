package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
)

func TestNewBar_Defaults(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
	assert.Equal(t, 80, bar.Width())

	_, ok := bar.Toast()
	assert.False(t, ok)
	assert.Contains(t, bar.View(), "Ready")
}

func TestBar_NotifyShowsToast(t *testing.T) {
	bar := NewBar(nil, nil)

	cmd := bar.Notify(domain.Notification{Level: domain.NotifySuccess, Message: "Upload complete"})

	assert.NotNil(t, cmd)
	toast, ok := bar.Toast()
	require.True(t, ok)
	assert.Equal(t, "Upload complete", toast.Message)
	assert.Contains(t, bar.View(), "✓ Upload complete")
}

func TestBar_NotifyEmptyMessageUsesFallback(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.Notify(domain.Notification{Level: domain.NotifyError})

	toast, ok := bar.Toast()
	require.True(t, ok)
	assert.Equal(t, domain.FallbackErrorMessage, toast.Message)
	assert.Contains(t, bar.View(), "✗ ")
}

func TestBar_ExpireIgnoresStaleSequence(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.Notify(domain.Notification{Level: domain.NotifyInfo, Message: "first"})
	bar.Notify(domain.Notification{Level: domain.NotifyInfo, Message: "second"})

	bar.Expire(1)
	toast, ok := bar.Toast()
	require.True(t, ok)
	assert.Equal(t, "second", toast.Message)

	bar.Expire(2)
	_, ok = bar.Toast()
	assert.False(t, ok)
}

func TestBar_SetHints(t *testing.T) {
	km := keymap.DefaultKeyMap()
	bar := NewBar(nil, km)
	bar.SetWidth(200)

	bar.SetHints(nil)
	assert.Contains(t, bar.View(), "ctrl+t: theme")

	bar.SetHints(nil)
	bar.SetHints(append(bar.hints, km.Run))
	assert.Contains(t, bar.View(), "w: run workflow")
	assert.NotContains(t, bar.View(), "ctrl+t: theme")
}
