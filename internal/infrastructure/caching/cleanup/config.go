// Package cleanup provides the background cache sweep worker
package cleanup

import (
	"time"

	"github.com/fortunekit/fortune-go/pkg/config"
)

// Config controls the cleanup worker's behavior
type Config struct {
	CleanupInterval  time.Duration
	VerboseReporting bool
}

// NewConfig creates cleanup configuration from application defaults
func NewConfig() *Config {
	return &Config{
		CleanupInterval:  config.CleanupInterval,
		VerboseReporting: config.CleanupVerbose,
	}
}
