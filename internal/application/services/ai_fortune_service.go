package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fortunekit/fortune-go/internal/domain/entities/fortune"
	"github.com/fortunekit/fortune-go/internal/infrastructure/ai"
	"github.com/fortunekit/fortune-go/internal/infrastructure/caching/interfaces"
	"github.com/fortunekit/fortune-go/internal/infrastructure/observability/logging"
	"github.com/fortunekit/fortune-go/internal/infrastructure/observability/metrics"
)

// MaxLineLength caps each formatted fortune line, truncation marker included.
const MaxLineLength = 140

const truncationMark = "…"

const englishPrompt = "Write a short daily fortune about %s in at most %d lines. " +
	"Focus on closeness, communication, repair, and healing after breakups. " +
	"Use a warm, modern, clear tone. No emoji. Avoid cliches."

const turkishPrompt = "%s hakkında en fazla %d satırlık kısa bir günlük fal yaz. " +
	"Yakınlık, iletişim, onarım ve ayrılık sonrası iyileşmeye odaklan. " +
	"Sıcak, modern ve net bir ton kullan. Emoji kullanma. Klişelerden kaçın."

// AIFortuneService orchestrates the daily AI fortune: cache lookup, provider
// generation, formatting, and cache fill.
//
// Lookup and fill are not atomic across a miss; two concurrent misses for the
// same key may both invoke the provider and the last write wins. Any valid
// fortune is interchangeable, so no locking spans the generation call.
type AIFortuneService struct {
	cache     interfaces.Cache
	generator ai.Generator
	metrics   *metrics.Registry
	logger    *logging.ChanneledLogger
	ttl       time.Duration
}

// NewAIFortuneService wires the AI fortune orchestration.
func NewAIFortuneService(cache interfaces.Cache, generator ai.Generator, reg *metrics.Registry, logger *logging.ChanneledLogger, ttl time.Duration) *AIFortuneService {
	return &AIFortuneService{
		cache:     cache,
		generator: generator,
		metrics:   reg,
		logger:    logger,
		ttl:       ttl,
	}
}

// GetFortune returns the cached fortune for the request's composite key or
// generates, formats, and caches a fresh one.
//
// fortune.ErrEmptyResult is returned when the provider produced no usable
// text; that failure must reach the caller. Every other error is expected to
// be masked with fallback text at the handler boundary.
func (s *AIFortuneService) GetFortune(ctx context.Context, req fortune.AIFortuneRequest) (fortune.AIFortuneResult, error) {
	req.Normalize()
	key := req.CacheKey()

	if text, ok := s.cache.GetAIFortune(key); ok {
		if s.metrics != nil {
			s.metrics.CacheHitsTotal.Inc()
		}
		return fortune.AIFortuneResult{Text: text, Source: fortune.SourceCache, Cached: true}, nil
	}
	if s.metrics != nil {
		s.metrics.CacheMissesTotal.Inc()
	}

	raw, err := s.generator.Generate(ctx, BuildPrompt(req.Lang, req.Theme, req.Lines))
	if err != nil {
		return fortune.AIFortuneResult{}, fmt.Errorf("generate fortune: %w", err)
	}

	text := FormatFortune(raw, req.Lines)
	if text == "" {
		return fortune.AIFortuneResult{}, fortune.ErrEmptyResult
	}

	s.cache.SetAIFortune(key, text, s.ttl)
	if s.logger != nil {
		s.logger.AI().Info("Fortune generated", "lang", req.Lang, "theme", req.Theme, "lines", req.Lines)
	}

	return fortune.AIFortuneResult{Text: text, Source: fortune.SourceOpenAI}, nil
}

// BuildPrompt returns the language-conditioned provider prompt.
func BuildPrompt(lang, theme string, lines int) string {
	if lang == fortune.LangTurkish {
		return fmt.Sprintf(turkishPrompt, theme, lines)
	}
	return fmt.Sprintf(englishPrompt, theme, lines)
}

// FormatFortune normalizes raw provider output: carriage returns stripped,
// lines trimmed, empty lines dropped, at most maxLines kept, each line capped
// at MaxLineLength with a truncation marker.
func FormatFortune(raw string, maxLines int) string {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, "\r", ""))

	var lines []string
	for _, line := range strings.Split(cleaned, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, truncateLine(line))
		if len(lines) == maxLines {
			break
		}
	}

	return strings.Join(lines, "\n")
}

func truncateLine(line string) string {
	runes := []rune(line)
	if len(runes) <= MaxLineLength {
		return line
	}
	return string(runes[:MaxLineLength-1]) + truncationMark
}
