// Package manager provides centralized cache operations by delegating to
// specialized stores.
package manager

import (
	"time"

	"github.com/fortunekit/fortune-go/internal/infrastructure/caching/interfaces"
	"github.com/fortunekit/fortune-go/internal/infrastructure/caching/stores"
	"github.com/fortunekit/fortune-go/internal/infrastructure/observability/logging"
)

// Interface assertion to ensure Manager implements the cache contract.
var _ interfaces.Cache = (*Manager)(nil)

// Manager fronts the fortune cache store. It exists so services and the
// cleanup worker depend on one cache surface rather than individual stores.
type Manager struct {
	fortunesStore *stores.FortunesStore
	logger        *logging.ChanneledLogger
}

func NewManager(logger *logging.ChanneledLogger) *Manager {
	if logger != nil {
		logger.Cache().Info("Initializing cache manager", "stores", []string{"fortunes"})
	}

	return &Manager{
		fortunesStore: stores.NewFortunesStore(logger),
		logger:        logger,
	}
}

// GetAIFortune returns cached text for the key, treating expired entries as absent.
func (m *Manager) GetAIFortune(key string) (string, bool) {
	return m.fortunesStore.Get(key)
}

// SetAIFortune stores text under the key with expiry now+ttl.
func (m *Manager) SetAIFortune(key, text string, ttl time.Duration) {
	m.fortunesStore.Set(key, text, ttl)
}

// PurgeExpired deletes expired entries and returns how many were removed.
func (m *Manager) PurgeExpired() int {
	return m.fortunesStore.PurgeExpired()
}

// EntryCount returns the number of stored entries, expired or not.
func (m *Manager) EntryCount() int {
	return m.fortunesStore.Count()
}

// SetClock replaces the underlying store's time source.
func (m *Manager) SetClock(now func() time.Time) {
	m.fortunesStore.SetClock(now)
}
