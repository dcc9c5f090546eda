package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
}

func TestVersionCmd_Executes(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	out, err := execute("version")

	assert.NoError(t, err)
	assert.Contains(t, out, "docuflow version test-version-1.0.0")
}

func TestVersionCmd_SkipsInitializer(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	called := false
	SetInitializer(func(_ context.Context, _ Options) (*Services, error) {
		called = true
		return &Services{}, nil
	})

	_, err := execute("version")

	assert.NoError(t, err)
	assert.False(t, called)
}

func TestSetVersion(t *testing.T) {
	originalVersion := version
	defer func() { version = originalVersion }()

	SetVersion("")
	assert.Equal(t, originalVersion, version)

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)
}
