package cleanup

import (
	"context"
	"time"

	"github.com/fortunekit/fortune-go/internal/infrastructure/caching/interfaces"
	"github.com/fortunekit/fortune-go/internal/infrastructure/observability/logging"
)

// Worker periodically deletes expired AI fortune entries. Reads already treat
// expired entries as absent, so the sweep only bounds memory growth in
// long-running deployments.
type Worker struct {
	cache  interfaces.Cache
	config *Config
	logger *logging.ChanneledLogger
}

// NewWorker creates a new cleanup worker with injected configuration
func NewWorker(cache interfaces.Cache, config *Config, logger *logging.ChanneledLogger) *Worker {
	return &Worker{
		cache:  cache,
		config: config,
		logger: logger,
	}
}

// Start begins the cleanup worker routine, using the configured interval
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.config.CleanupInterval)
	defer ticker.Stop()

	if w.logger != nil {
		w.logger.Cache().Info("Cache cleanup worker started",
			"interval", w.config.CleanupInterval,
			"verbose", w.config.VerboseReporting)
	}

	for {
		select {
		case <-ctx.Done():
			if w.logger != nil {
				w.logger.Cache().Info("Cache cleanup worker stopping")
			}
			return
		case <-ticker.C:
			w.performCleanup()
		}
	}
}

// performCleanup executes one sweep over the fortune cache
func (w *Worker) performCleanup() {
	start := time.Now()
	cleaned := w.cache.PurgeExpired()
	remaining := w.cache.EntryCount()

	if w.logger == nil {
		return
	}

	if cleaned > 0 {
		w.logger.Cache().Info("Cache cleanup finished",
			"cleaned", cleaned,
			"remaining", remaining,
			"duration", time.Since(start))
	} else if w.config.VerboseReporting {
		w.logger.Cache().Debug("Cache cleanup completed - no expired entries",
			"remaining", remaining,
			"duration", time.Since(start))
	}
}
