package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docuflow-cli/internal/logger"
)

var storageLog = logger.Component("storage")

// LoadState reads key from store and decodes it as T.
// Missing keys, store failures and decode failures all yield fallback;
// failures are logged, never returned.
func LoadState[T any](ctx context.Context, store driven.KVStore, key string, fallback T) T {
	value, ok := loadState[T](ctx, store, key)
	if !ok {
		return fallback
	}
	return value
}

func loadState[T any](ctx context.Context, store driven.KVStore, key string) (T, bool) {
	var zero T
	if store == nil {
		return zero, false
	}
	data, err := store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			storageLog.Warn("failed to read %s: %v", key, err)
		}
		return zero, false
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		storageLog.Warn("failed to decode %s: %v", key, err)
		return zero, false
	}
	return value, true
}

// SaveState encodes value and writes it under key.
// Failures are logged and swallowed; the caller's in-memory state stays valid.
func SaveState(ctx context.Context, store driven.KVStore, key string, value any) {
	if store == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		storageLog.Warn("failed to encode %s: %v", key, err)
		return
	}
	if err := store.Set(ctx, key, data); err != nil {
		storageLog.Warn("failed to write %s: %v", key, err)
		return
	}
	storageLog.Debug("saved %s (%d bytes)", key, len(data))
}

// ClearState removes key. Failures are logged and swallowed.
func ClearState(ctx context.Context, store driven.KVStore, key string) {
	if store == nil {
		return
	}
	if err := store.Delete(ctx, key); err != nil {
		storageLog.Warn("failed to clear %s: %v", key, err)
	}
}
