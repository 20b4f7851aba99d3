// Package interfaces defines cache contracts consumed by services and workers
package interfaces

import "time"

// Cache is the operation surface of the AI fortune cache.
type Cache interface {
	// GetAIFortune returns cached text for the key, treating expired
	// entries as absent.
	GetAIFortune(key string) (string, bool)

	// SetAIFortune stores text under the key with expiry now+ttl.
	SetAIFortune(key, text string, ttl time.Duration)

	// PurgeExpired deletes expired entries and returns how many were removed.
	PurgeExpired() int

	// EntryCount returns the number of stored entries, expired or not.
	EntryCount() int
}
