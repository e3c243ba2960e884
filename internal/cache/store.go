package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"cinelog/internal/metrics"
	"cinelog/internal/models"

	"github.com/sirupsen/logrus"
)

// Store is the read-through cache over the durable bolthold table. The key's
// uniqueness constraint is the only concurrency control: concurrent first-time
// populators converge on the first successful writer's record, losers read it
// back. No application-level locks are taken.
type Store struct {
	db     *models.Database
	logger *logrus.Logger
	now    func() time.Time
}

// NewStore creates a new cache store
func NewStore(db *models.Database, logger *logrus.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// RefreshFunc computes a fresh payload when a key is missing or stale
type RefreshFunc func() (interface{}, error)

// GetOrRefresh returns the cached payload for key decoded into out. A record
// younger than ttl is served as-is with no upstream work. Otherwise refresh
// runs, its result replaces the record (insert on first population, overwrite
// in place on staleness) and is decoded into out. A refresh failure
// propagates unchanged and leaves any stale record untouched; callers decide
// whether to fall back to stale data.
func (s *Store) GetOrRefresh(key string, ttl time.Duration, refresh RefreshFunc, out interface{}) error {
	entry, err := s.db.GetCacheEntry(key)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("cache lookup for %s: %w", key, err)
	}

	kind := kindOf(key)
	if entry != nil && s.now().UTC().Sub(entry.RefreshedAt) < ttl {
		metrics.CacheHits.WithLabelValues(kind).Inc()
		return json.Unmarshal(entry.Payload, out)
	}
	metrics.CacheMisses.WithLabelValues(kind).Inc()

	value, err := refresh()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal payload for %s: %w", key, err)
	}

	if entry != nil {
		// Stale record: overwrite in place. Two writers racing here both
		// recomputed from the same upstream truth, last write wins.
		entry.Payload = payload
		if err := s.db.UpdateCacheEntry(entry); err != nil {
			return fmt.Errorf("cache update for %s: %w", key, err)
		}
		return json.Unmarshal(payload, out)
	}

	fresh := &models.CacheEntry{Key: key, Payload: payload}
	if err := s.db.InsertCacheEntry(fresh); err != nil {
		if errors.Is(err, models.ErrCacheConflict) {
			return s.readBack(key, payload, out)
		}
		return fmt.Errorf("cache insert for %s: %w", key, err)
	}

	return json.Unmarshal(payload, out)
}

// readBack resolves a concurrent-insert conflict: the first successful writer
// wins, our locally computed payload is discarded in favor of its record. If
// the winning record cannot be read back the local payload is served without
// being persisted.
func (s *Store) readBack(key string, local json.RawMessage, out interface{}) error {
	winner, err := s.db.GetCacheEntry(key)
	if err != nil {
		s.logger.WithField("key", key).WithError(err).Warn("Read-back after insert conflict failed, serving unpersisted payload")
		return json.Unmarshal(local, out)
	}

	s.logger.WithField("key", key).Debug("Concurrent cache population, using first writer's record")
	return json.Unmarshal(winner.Payload, out)
}

// lastRefreshed reports when the record for key was last written
func (s *Store) lastRefreshed(key string) (time.Time, bool) {
	entry, err := s.db.GetCacheEntry(key)
	if err != nil {
		return time.Time{}, false
	}
	return entry.RefreshedAt, true
}

// kindOf extracts the namespace portion of a composite cache key
func kindOf(key string) string {
	if i := strings.IndexByte(key, '/'); i > 0 {
		return key[:i]
	}
	return key
}
