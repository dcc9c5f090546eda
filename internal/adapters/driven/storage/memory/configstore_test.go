package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestNewConfigStore_Seeded(t *testing.T) {
	seed := map[string]any{"api.rate_limit": 4.0}
	store := NewConfigStore(seed, map[string]any{"api.base_url": "http://seed"})

	assert.Equal(t, 4.0, store.GetFloat("api.rate_limit"))
	assert.Equal(t, "http://seed", store.GetString("api.base_url"))

	require.NoError(t, store.Set("api.rate_limit", 1.0))
	assert.Equal(t, 4.0, seed["api.rate_limit"], "seed must not be mutated")
	assert.NoError(t, store.Load())
}

func TestConfigStore_Set_Update(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("api.base_url", "http://a"))
	require.NoError(t, store.Set("api.base_url", "http://b"))

	val, ok := store.Get("api.base_url")
	assert.True(t, ok)
	assert.Equal(t, "http://b", val)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("api.base_url", "http://localhost:8001")
	_ = store.Set("api.timeout_seconds", 300)
	_ = store.Set("api.rate_limit", 2.5)
	_ = store.Set("big", int64(7))

	assert.Equal(t, "http://localhost:8001", store.GetString("api.base_url"))
	assert.Equal(t, 300, store.GetInt("api.timeout_seconds"))
	assert.Equal(t, 2.5, store.GetFloat("api.rate_limit"))
	assert.Equal(t, 7, store.GetInt("big"))
}

func TestConfigStore_WrongTypesReturnZero(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("api.base_url", 42)
	_ = store.Set("api.timeout_seconds", "slow")

	assert.Empty(t, store.GetString("api.base_url"))
	assert.Zero(t, store.GetInt("api.timeout_seconds"))
	assert.Zero(t, store.GetFloat("missing"))
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("key", n)
			_ = store.GetInt("key")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("key")
	assert.True(t, ok)
}
