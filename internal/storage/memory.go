package storage

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryAdapter keeps every profile partition in process memory. Used
// in tests and for the throwaway dev mode.
type MemoryAdapter struct {
	mu       sync.RWMutex
	profiles map[string]map[string]json.RawMessage
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{profiles: map[string]map[string]json.RawMessage{}}
}

func (a *MemoryAdapter) Get(ctx context.Context, profileID, key string) (json.RawMessage, bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	part, ok := a.profiles[profileID]
	if !ok {
		return nil, false, nil
	}
	val, ok := part[key]
	if !ok {
		return nil, false, nil
	}
	cp := make(json.RawMessage, len(val))
	copy(cp, val)
	return cp, true, nil
}

func (a *MemoryAdapter) Set(ctx context.Context, profileID, key string, value json.RawMessage) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	part, ok := a.profiles[profileID]
	if !ok {
		part = map[string]json.RawMessage{}
		a.profiles[profileID] = part
	}
	cp := make(json.RawMessage, len(value))
	copy(cp, value)
	part[key] = cp
	return nil
}

func (a *MemoryAdapter) Delete(ctx context.Context, profileID, key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if part, ok := a.profiles[profileID]; ok {
		delete(part, key)
	}
	return nil
}

func (a *MemoryAdapter) Exists(ctx context.Context, profileID, key string) (bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	part, ok := a.profiles[profileID]
	if !ok {
		return false, nil
	}
	_, ok = part[key]
	return ok, nil
}

func (a *MemoryAdapter) Clear(ctx context.Context, profileID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.profiles, profileID)
	return nil
}
