package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultTTL is how long a cached payload stays fresh.
const DefaultTTL = 24 * time.Hour

// envelope wraps every cached payload with its write timestamp. A
// refetch replaces the whole envelope; entries are never patched.
type envelope struct {
	WrittenAt int64           `json:"written_at"` // epoch seconds
	Payload   json.RawMessage `json:"payload"`
}

// Manager adds staleness checking on top of a Store. Read failures and
// corrupt payloads degrade to a miss instead of surfacing errors, so a
// broken cache can never take the service down.
type Manager struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

func NewManager(store Store, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

// NewManagerWithClock is used by tests to control staleness.
func NewManagerWithClock(store Store, ttl time.Duration, now func() time.Time) *Manager {
	m := NewManager(store, ttl)
	m.now = now
	return m
}

// Fresh loads the cached payload for key into dst and reports whether a
// fresh entry was found. Stale, missing, unreadable and corrupt entries
// all report false.
func (m *Manager) Fresh(ctx context.Context, key string, dst interface{}) bool {
	raw, err := m.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warnf("cache get %s: %s", key, err)
		}
		return false
	}

	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		log.Warnf("cache entry %s corrupt, treating as miss: %s", key, err)
		return false
	}

	writtenAt := time.Unix(env.WrittenAt, 0)
	if m.now().Sub(writtenAt) >= m.ttl {
		log.Tracef("cache entry %s stale (written at %s)", key, writtenAt.UTC())
		return false
	}

	if err := json.Unmarshal(env.Payload, dst); err != nil {
		log.Warnf("cache payload %s corrupt, treating as miss: %s", key, err)
		return false
	}

	return true
}

// Write stores the payload under key, replacing any previous entry
// wholesale. Last write wins; payloads for the same key are
// deterministic given the same inputs, so racing writers are harmless.
func (m *Manager) Write(ctx context.Context, key string, payload interface{}) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal cache payload %s: %w", key, err)
	}

	envJSON, err := json.Marshal(envelope{
		WrittenAt: m.now().Unix(),
		Payload:   payloadJSON,
	})
	if err != nil {
		return fmt.Errorf("marshal cache envelope %s: %w", key, err)
	}

	if err := m.store.Set(ctx, key, string(envJSON)); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Invalidate drops the entry for key.
func (m *Manager) Invalidate(ctx context.Context, key string) error {
	return m.store.Del(ctx, key)
}
