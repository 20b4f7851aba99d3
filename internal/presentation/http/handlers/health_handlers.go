package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/fortunekit/fortune-go/internal/infrastructure/ai"
	"github.com/gin-gonic/gin"
)

// HealthHandlers contains the diagnostics HTTP handlers
type HealthHandlers struct {
	generator *ai.OpenAIClient
	startedAt time.Time
}

// NewHealthHandlers creates diagnostics handlers
func NewHealthHandlers(generator *ai.OpenAIClient) *HealthHandlers {
	return &HealthHandlers{
		generator: generator,
		startedAt: time.Now(),
	}
}

// GetHealth handles GET /api/health - runtime and provider diagnostics
func (h *HealthHandlers) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":              "ok",
		"openaiKeyConfigured": h.generator.Configured(),
		"goVersion":           runtime.Version(),
		"openaiLibVersion":    ai.LibraryVersion(),
		"uptimeSeconds":       int(time.Since(h.startedAt).Seconds()),
	})
}
