package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "docuflow", rootCmd.Use)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"verbose", "api-url", "ephemeral"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing flag %s", name)
	}
	assert.Equal(t, "v", rootCmd.PersistentFlags().Lookup("verbose").Shorthand)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{
		"version", "health", "dashboard", "invoice", "contract", "upload",
		"workflow", "report", "settings", "theme", "mcp", "tui",
	} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestRootCmd_InitializerReceivesOptions(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	defer func() {
		apiURL = ""
		ephemeral = false
	}()

	var got Options
	SetInitializer(func(_ context.Context, opts Options) (*Services, error) {
		got = opts
		return &Services{Dashboard: ts.dashboard}, nil
	})

	out, err := execute("health", "--api-url", "http://backend:9000", "--ephemeral")

	require.NoError(t, err)
	assert.Equal(t, "http://backend:9000", got.APIURL)
	assert.True(t, got.Ephemeral)
	assert.False(t, got.Interactive)
	assert.Contains(t, out, "Backend: Operational")
}

func TestRootCmd_InitializerError(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	SetInitializer(func(context.Context, Options) (*Services, error) {
		return nil, errors.New("no config")
	})

	_, err := execute("health")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialise")
	assert.Contains(t, err.Error(), "no config")
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "abc", "0", "-3", "1.5"} {
		_, err := parseID(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "input %q", bad)
	}
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs([]string{"3", "1", "2"})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 2}, ids)

	_, err = parseIDs([]string{"1", "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ids, err = parseIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "a", truncate("abc", 1))
}
