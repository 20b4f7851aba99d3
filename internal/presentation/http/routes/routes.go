// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"path/filepath"

	"github.com/fortunekit/fortune-go/internal/application/container"
	"github.com/fortunekit/fortune-go/internal/presentation/http/handlers"
	"github.com/fortunekit/fortune-go/internal/presentation/http/middleware"
	"github.com/fortunekit/fortune-go/pkg/config"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestIDMiddleware(container.Logger))

	// Serve the static fortune page from the /app URL.
	r.Static("/app", config.StaticDir)
	r.StaticFile("/favicon.ico", filepath.Join(config.StaticDir, "favicon.ico"))

	// Initialize handlers
	fortuneHandlers := handlers.NewFortuneHandlers(container.ClassicFortuneService, container.AIFortuneService, container.Logger, container.Metrics)
	healthHandlers := handlers.NewHealthHandlers(container.Generator)

	api := r.Group("/api")
	{
		api.GET("/fortune", fortuneHandlers.GetFortune)
		api.POST("/fortune-ai", fortuneHandlers.PostAIFortune)
		api.GET("/health", healthHandlers.GetHealth)
	}

	r.GET("/metrics", gin.WrapH(container.Metrics.Handler()))

	return r
}
