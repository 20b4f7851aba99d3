// Package types defines cache data structures
package types

import (
	"sync"
	"time"
)

// AIFortuneEntry is one cached generation result. Entries are never updated
// in place; a regeneration overwrites the whole entry.
type AIFortuneEntry struct {
	Text      string
	ExpiresAt time.Time
}

// Expired reports whether the entry should be treated as absent.
func (e *AIFortuneEntry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// FortuneCache holds all AI fortune entries for the process. Readers must
// hold Mu.RLock; writers Mu.Lock.
type FortuneCache struct {
	Mu        sync.RWMutex
	Entries   map[string]*AIFortuneEntry
	LastSwept time.Time
}
