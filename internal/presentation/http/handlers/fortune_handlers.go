// Package handlers provides HTTP request handlers for the presentation layer.
package handlers

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/fortunekit/fortune-go/internal/application/services"
	"github.com/fortunekit/fortune-go/internal/domain/entities/fortune"
	"github.com/fortunekit/fortune-go/internal/infrastructure/observability/logging"
	"github.com/fortunekit/fortune-go/internal/infrastructure/observability/metrics"
	"github.com/fortunekit/fortune-go/internal/infrastructure/security"
	"github.com/gin-gonic/gin"
)

const (
	anonymousIDCookie = "fortune_uid"
	anonymousIDMaxAge = 365 * 24 * 3600
)

var localDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// FortuneHandlers contains the fortune HTTP handlers
type FortuneHandlers struct {
	classicService *services.ClassicFortuneService
	aiService      *services.AIFortuneService
	logger         *logging.ChanneledLogger
	metrics        *metrics.Registry
}

// NewFortuneHandlers creates fortune handlers with injected dependencies
func NewFortuneHandlers(classicService *services.ClassicFortuneService, aiService *services.AIFortuneService, logger *logging.ChanneledLogger, reg *metrics.Registry) *FortuneHandlers {
	return &FortuneHandlers{
		classicService: classicService,
		aiService:      aiService,
		logger:         logger,
		metrics:        reg,
	}
}

// GetFortune handles GET /api/fortune - deterministic daily fortune
func (h *FortuneHandlers) GetFortune(c *gin.Context) {
	tz := c.DefaultQuery("tz", "UTC")

	text, secondsUntilNext := h.classicService.Select(tz, c.ClientIP(), c.Request.UserAgent())

	if h.metrics != nil {
		h.metrics.RequestsTotal.WithLabelValues(fortune.SourceClassic).Inc()
	}

	c.JSON(http.StatusOK, gin.H{
		"fortune":          text,
		"secondsUntilNext": secondsUntilNext,
		"source":           fortune.SourceClassic,
	})
}

type aiFortuneBody struct {
	Lang      string `json:"lang"`
	Theme     string `json:"theme"`
	Lines     int    `json:"lines"`
	LocalDate string `json:"localDate"`
}

// PostAIFortune handles POST /api/fortune-ai - per-user daily-cached AI fortune
func (h *FortuneHandlers) PostAIFortune(c *gin.Context) {
	var body aiFortuneBody
	// Malformed bodies leave LocalDate empty and fail validation below.
	_ = c.ShouldBindJSON(&body)

	if !localDateRe.MatchString(body.LocalDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "localDate (YYYY-MM-DD) is required"})
		return
	}

	req := fortune.AIFortuneRequest{
		UserID:    h.anonymousID(c),
		Lang:      body.Lang,
		Theme:     body.Theme,
		Lines:     body.Lines,
		LocalDate: body.LocalDate,
	}
	req.Normalize()

	result, err := h.aiService.GetFortune(c.Request.Context(), req)
	if errors.Is(err, fortune.ErrEmptyResult) {
		if h.logger != nil {
			h.logger.AI().Warn("Provider returned no usable text", "lang", req.Lang, "theme", req.Theme)
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Empty AI result"})
		return
	}
	if err != nil {
		// Masked failure: the caller sees success with static fallback text.
		if h.metrics != nil {
			h.metrics.FallbackTotal.Inc()
			h.metrics.RequestsTotal.WithLabelValues(fortune.SourceFallback).Inc()
		}
		if h.logger != nil {
			h.logger.AI().Error("AI fortune generation failed, serving fallback", "error", err.Error(), "lang", req.Lang)
		}
		c.JSON(http.StatusOK, gin.H{
			"fortune": fortune.FallbackText(req.Lang),
			"source":  fortune.SourceFallback,
		})
		return
	}

	if h.metrics != nil {
		h.metrics.RequestsTotal.WithLabelValues(result.Source).Inc()
	}

	resp := gin.H{"fortune": result.Text, "source": result.Source}
	if result.Cached {
		resp["cached"] = true
	}
	c.JSON(http.StatusOK, resp)
}

// anonymousID returns the caller's anonymous id, minting one and setting the
// long-lived cookie when absent. Presented ids are reused as-is.
func (h *FortuneHandlers) anonymousID(c *gin.Context) string {
	if id, err := c.Cookie(anonymousIDCookie); err == nil && id != "" {
		return id
	}

	id, err := security.GenerateAnonymousID()
	if err != nil {
		id = security.GenerateULID()
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(anonymousIDCookie, id, anonymousIDMaxAge, "/", "", false, true)
	return id
}
