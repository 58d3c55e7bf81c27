package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lumilearn/lumilearn-backend/internal/domain"
	pkgerrors "github.com/lumilearn/lumilearn-backend/internal/pkg/errors"
	"github.com/lumilearn/lumilearn-backend/internal/platform/logger"
	"github.com/lumilearn/lumilearn-backend/internal/storage"
)

// CoreStore owns the per-profile document: load/save through the
// storage adapter, a profile-keyed in-memory cache of the last saved
// snapshot, and the bounded event/agent-action logs.
//
// A single mutex serializes mutations; the hosting process is the only
// writer, and callers get at-most-one-outstanding-write for free.
type CoreStore struct {
	adapter storage.Adapter
	log     *logger.Logger

	mu    sync.Mutex
	cache map[string]*domain.Document
}

func NewCoreStore(adapter storage.Adapter, baseLog *logger.Logger) *CoreStore {
	return &CoreStore{
		adapter: adapter,
		log:     baseLog.With("store", "CoreStore"),
		cache:   map[string]*domain.Document{},
	}
}

// Load returns a private copy of the profile's document. A fresh
// profile gets the default document, persisted immediately so
// subsequent reads are stable.
func (s *CoreStore) Load(ctx context.Context, profileID string) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.loadLocked(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return cloneDocument(doc)
}

// Save stamps metadata.lastUpdated and writes through the adapter
// before replacing the cache entry, so no uncommitted cache state can
// survive a failure between the two steps.
func (s *CoreStore) Save(ctx context.Context, profileID string, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, profileID, doc)
}

// Update runs one read-modify-write cycle under the store mutex.
func (s *CoreStore) Update(ctx context.Context, profileID string, fn func(doc *domain.Document) error) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cached, err := s.loadLocked(ctx, profileID)
	if err != nil {
		return nil, err
	}
	doc, err := cloneDocument(cached)
	if err != nil {
		return nil, err
	}
	if err := fn(doc); err != nil {
		return nil, err
	}
	if err := s.saveLocked(ctx, profileID, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// AppendEvent appends a typed event, trimming the log to the most
// recent EventLogCap entries in original relative order.
func (s *CoreStore) AppendEvent(ctx context.Context, profileID, eventType string, data map[string]any) (*domain.Event, error) {
	ev := domain.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
	_, err := s.Update(ctx, profileID, func(doc *domain.Document) error {
		doc.AppendEvent(ev)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// AppendAgentAction mirrors AppendEvent for the agent-action log.
func (s *CoreStore) AppendAgentAction(ctx context.Context, profileID, actionType string, payload map[string]any) (*domain.AgentAction, error) {
	act := domain.AgentAction{
		ID:        uuid.NewString(),
		Type:      actionType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	_, err := s.Update(ctx, profileID, func(doc *domain.Document) error {
		doc.AppendAgentAction(act)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &act, nil
}

// HasAbilityProfile reports whether the profile partition carries an
// ability profile written by the assessment flow.
func (s *CoreStore) HasAbilityProfile(ctx context.Context, profileID string) (bool, error) {
	ok, err := s.adapter.Exists(ctx, profileID, storage.KeyAbilityProfile)
	if err != nil {
		return false, &pkgerrors.StorageError{Op: "exists", Key: storage.KeyAbilityProfile, Cause: err}
	}
	return ok, nil
}

// ClearCache drops the cached document for one profile. Called on
// profile switch to prevent stale cross-profile reads.
func (s *CoreStore) ClearCache(profileID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, profileID)
}

// ClearAllCaches drops every cached document.
func (s *CoreStore) ClearAllCaches() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = map[string]*domain.Document{}
}

func (s *CoreStore) loadLocked(ctx context.Context, profileID string) (*domain.Document, error) {
	if doc, ok := s.cache[profileID]; ok {
		return doc, nil
	}

	raw, found, err := s.adapter.Get(ctx, profileID, storage.KeyCoreData)
	if err != nil {
		return nil, &pkgerrors.StorageError{Op: "get", Key: storage.KeyCoreData, Cause: err}
	}
	if found {
		var doc domain.Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, &pkgerrors.StorageError{Op: "decode", Key: storage.KeyCoreData, Cause: err}
		}
		s.cache[profileID] = &doc
		return &doc, nil
	}

	doc := domain.NewDocument(time.Now().UTC())
	if err := s.saveLocked(ctx, profileID, doc); err != nil {
		return nil, err
	}
	s.log.Debug("Synthesized default document for fresh profile", "profile_id", profileID)
	return s.cache[profileID], nil
}

func (s *CoreStore) saveLocked(ctx context.Context, profileID string, doc *domain.Document) error {
	now := time.Now().UTC()
	if prev, ok := s.cache[profileID]; ok && now.Before(prev.Metadata.LastUpdated) {
		now = prev.Metadata.LastUpdated
	}
	doc.Metadata.LastUpdated = now
	if doc.Metadata.Version == "" {
		doc.Metadata.Version = domain.SchemaVersion
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return &pkgerrors.StorageError{Op: "encode", Key: storage.KeyCoreData, Cause: err}
	}
	if err := s.adapter.Set(ctx, profileID, storage.KeyCoreData, raw); err != nil {
		return &pkgerrors.StorageError{Op: "set", Key: storage.KeyCoreData, Cause: err}
	}

	saved, err := cloneDocument(doc)
	if err != nil {
		return err
	}
	s.cache[profileID] = saved
	return nil
}

func cloneDocument(doc *domain.Document) (*domain.Document, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, &pkgerrors.StorageError{Op: "encode", Key: storage.KeyCoreData, Cause: err}
	}
	var cp domain.Document
	if err := json.Unmarshal(raw, &cp); err != nil {
		return nil, &pkgerrors.StorageError{Op: "decode", Key: storage.KeyCoreData, Cause: err}
	}
	return &cp, nil
}
