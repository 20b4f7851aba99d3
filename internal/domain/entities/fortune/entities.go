// Package fortune defines the core entities for fortune selection and
// AI fortune generation.
package fortune

import (
	"errors"
	"fmt"
)

// Source values tag every response with where its text came from.
const (
	SourceClassic  = "classic"
	SourceCache    = "cache"
	SourceOpenAI   = "openai"
	SourceFallback = "fallback"
)

const (
	// LangEnglish and LangTurkish are the supported prompt languages.
	// Anything else normalizes to English.
	LangEnglish = "en"
	LangTurkish = "tr"

	// DefaultTheme is used when the caller supplies no theme label.
	DefaultTheme = "relationship"

	// MinLines and MaxLines bound the requested line count.
	MinLines = 1
	MaxLines = 2
)

// ErrEmptyResult signals that the provider returned no usable text. It is the
// one generation failure surfaced to the caller instead of being masked.
var ErrEmptyResult = errors.New("empty AI result")

// AIFortuneRequest carries the normalized inputs for one AI fortune lookup.
type AIFortuneRequest struct {
	UserID    string
	Lang      string
	Theme     string
	Lines     int
	LocalDate string
}

// Normalize coerces caller-supplied fields into their supported ranges.
// LocalDate is deliberately untouched; it must be validated before the
// request reaches the cache.
func (r *AIFortuneRequest) Normalize() {
	if r.Lang != LangEnglish && r.Lang != LangTurkish {
		r.Lang = LangEnglish
	}
	if r.Theme == "" {
		r.Theme = DefaultTheme
	}
	if r.Lines < MinLines {
		r.Lines = MinLines
	}
	if r.Lines > MaxLines {
		r.Lines = MaxLines
	}
}

// CacheKey builds the composite daily-cache key. Every component except
// UserID is caller supplied.
func (r *AIFortuneRequest) CacheKey() string {
	return fmt.Sprintf("%s:%s:%s:%d:%s", r.UserID, r.Lang, r.Theme, r.Lines, r.LocalDate)
}

// AIFortuneResult is the outcome of a successful AI fortune lookup.
type AIFortuneResult struct {
	Text   string
	Source string
	Cached bool
}

// FallbackText returns the static text served when generation fails.
func FallbackText(lang string) string {
	if lang == LangTurkish {
		return "Kalbin yapılacak nazik şeyi zaten biliyor. Bugün onu yap."
	}
	return "Your heart already knows the next kind thing to do. Do it today."
}
