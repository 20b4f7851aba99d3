// Package stores provides concrete cache store implementations
package stores

import (
	"time"

	"github.com/fortunekit/fortune-go/internal/infrastructure/caching/types"
	"github.com/fortunekit/fortune-go/internal/infrastructure/observability/logging"
)

// FortunesStore implements AI fortune caching operations over a single
// process-wide map. Reads treat expired entries as absent but leave them in
// place; the cleanup worker deletes them.
type FortunesStore struct {
	cache  *types.FortuneCache
	logger *logging.ChanneledLogger
	now    func() time.Time
}

// NewFortunesStore creates a new fortunes cache store
func NewFortunesStore(logger *logging.ChanneledLogger) *FortunesStore {
	if logger != nil {
		logger.Cache().Info("Initializing fortunes cache store")
	}
	return &FortunesStore{
		cache: &types.FortuneCache{
			Entries:   make(map[string]*types.AIFortuneEntry),
			LastSwept: time.Now().UTC(),
		},
		logger: logger,
		now:    time.Now,
	}
}

// SetClock replaces the store's time source.
func (fs *FortunesStore) SetClock(now func() time.Time) {
	fs.now = now
}

// Get returns cached fortune text for the key if present and unexpired.
func (fs *FortunesStore) Get(key string) (string, bool) {
	start := time.Now()
	fs.cache.Mu.RLock()
	entry, found := fs.cache.Entries[key]
	fs.cache.Mu.RUnlock()

	if !found || entry.Expired(fs.now()) {
		if fs.logger != nil {
			fs.logger.Cache().Debug("Cache operation", "operation", "get", "key", key, "hit", false, "expired", found, "duration", time.Since(start))
		}
		return "", false
	}

	if fs.logger != nil {
		fs.logger.Cache().Debug("Cache operation", "operation", "get", "key", key, "hit", true, "duration", time.Since(start))
	}
	return entry.Text, true
}

// Set stores fortune text under the key. Expiry is always now+ttl, regardless
// of what calendar day the key claims to describe.
func (fs *FortunesStore) Set(key, text string, ttl time.Duration) {
	start := time.Now()
	expiresAt := fs.now().Add(ttl)

	fs.cache.Mu.Lock()
	fs.cache.Entries[key] = &types.AIFortuneEntry{
		Text:      text,
		ExpiresAt: expiresAt,
	}
	fs.cache.Mu.Unlock()

	if fs.logger != nil {
		fs.logger.Cache().Debug("Cache operation", "operation", "set", "key", key, "expiresAt", expiresAt, "duration", time.Since(start))
	}
}

// PurgeExpired deletes expired entries and returns the number removed.
func (fs *FortunesStore) PurgeExpired() int {
	now := fs.now()
	cleaned := 0

	fs.cache.Mu.Lock()
	for key, entry := range fs.cache.Entries {
		if entry.Expired(now) {
			delete(fs.cache.Entries, key)
			cleaned++
		}
	}
	fs.cache.LastSwept = now.UTC()
	fs.cache.Mu.Unlock()

	return cleaned
}

// Count returns the number of stored entries, expired or not.
func (fs *FortunesStore) Count() int {
	fs.cache.Mu.RLock()
	defer fs.cache.Mu.RUnlock()
	return len(fs.cache.Entries)
}
