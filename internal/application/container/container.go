// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/fortunekit/fortune-go/internal/application/services"
	"github.com/fortunekit/fortune-go/internal/domain/entities/fortune"
	"github.com/fortunekit/fortune-go/internal/infrastructure/ai"
	"github.com/fortunekit/fortune-go/internal/infrastructure/caching/manager"
	"github.com/fortunekit/fortune-go/internal/infrastructure/observability/logging"
	"github.com/fortunekit/fortune-go/internal/infrastructure/observability/metrics"
	"github.com/fortunekit/fortune-go/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application Services (stateless singletons)
	ClassicFortuneService *services.ClassicFortuneService
	AIFortuneService      *services.AIFortuneService

	// Infrastructure Dependencies
	CacheManager *manager.Manager
	Generator    *ai.OpenAIClient
	Logger       *logging.ChanneledLogger
	Metrics      *metrics.Registry
}

// NewContainer creates and wires all singleton services
func NewContainer(logger *logging.ChanneledLogger) *Container {
	cacheManager := manager.NewManager(logger)
	reg := metrics.NewRegistry()
	generator := ai.NewOpenAIClient(config.OpenAIAPIKey, config.OpenAIModel)

	return &Container{
		ClassicFortuneService: services.NewClassicFortuneService(fortune.DefaultCatalog, logger),
		AIFortuneService:      services.NewAIFortuneService(cacheManager, generator, reg, logger, config.AIFortuneTTL),

		CacheManager: cacheManager,
		Generator:    generator,
		Logger:       logger,
		Metrics:      reg,
	}
}
