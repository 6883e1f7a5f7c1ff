package kvstore

import (
	"context"
	"encoding/json"
	"strings"

	apperrors "ordertrack/internal/errors"
)

const settingsKey = "custom-settings"

// SettingsStore manages the flat custom-settings object. Individual
// entries are addressed with dotted paths; path resolution happens
// client-side over the whole object, so every write is still one
// whole-value store write.
type SettingsStore struct {
	store Store
}

func NewSettingsStore(store Store) *SettingsStore {
	return &SettingsStore{store: store}
}

// All returns the whole settings object, empty when nothing was ever set.
func (s *SettingsStore) All(ctx context.Context) (map[string]any, error) {
	raw, ok, err := s.store.Get(ctx, settingsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return map[string]any{}, nil
	}

	var settings map[string]any
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, apperrors.NewStoreError("decoding custom settings", err)
	}
	if settings == nil {
		settings = map[string]any{}
	}
	return settings, nil
}

// Get resolves a dotted path inside the settings object.
func (s *SettingsStore) Get(ctx context.Context, path string) (any, error) {
	settings, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	value, ok := resolvePath(settings, path)
	if !ok {
		return nil, apperrors.NewNotFoundError("setting " + path + " not found")
	}
	return value, nil
}

// Set writes a value at a dotted path, creating intermediate objects as
// needed, and persists the whole settings object back.
func (s *SettingsStore) Set(ctx context.Context, path string, value any) error {
	settings, err := s.All(ctx)
	if err != nil {
		return err
	}

	node := settings
	parts := strings.Split(path, ".")
	for _, part := range parts[:len(parts)-1] {
		child, ok := node[part].(map[string]any)
		if !ok {
			child = map[string]any{}
			node[part] = child
		}
		node = child
	}
	node[parts[len(parts)-1]] = value

	raw, err := json.Marshal(settings)
	if err != nil {
		return apperrors.NewStoreError("encoding custom settings", err)
	}
	return s.store.Set(ctx, settingsKey, raw)
}

func resolvePath(settings map[string]any, path string) (any, bool) {
	node := any(settings)
	for _, part := range strings.Split(path, ".") {
		obj, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		node, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return node, true
}
