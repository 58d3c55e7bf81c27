package storage

import (
	"context"
	"encoding/json"
)

// Well-known keys inside a profile partition.
const (
	KeyCoreData       = "coreData"
	KeyAbilityProfile = "abilityProfile"
)

// Adapter is the profile-scoped key/value persistence contract the
// core consumes. Implementations own retries and timeouts; callers
// treat every failure as opaque.
type Adapter interface {
	Get(ctx context.Context, profileID, key string) (json.RawMessage, bool, error)
	Set(ctx context.Context, profileID, key string, value json.RawMessage) error
	Delete(ctx context.Context, profileID, key string) error
	Exists(ctx context.Context, profileID, key string) (bool, error)
	Clear(ctx context.Context, profileID string) error
}
