// Package services provides the application service layer
package services

import (
	"time"

	"github.com/fortunekit/fortune-go/internal/infrastructure/observability/logging"
)

// ClassicFortuneService maps (local date, client IP, user agent) onto a fixed
// fortune catalog. Same day, same client, same fortune.
type ClassicFortuneService struct {
	catalog []string
	logger  *logging.ChanneledLogger
	now     func() time.Time
}

// NewClassicFortuneService creates the selector over the given catalog.
func NewClassicFortuneService(catalog []string, logger *logging.ChanneledLogger) *ClassicFortuneService {
	return &ClassicFortuneService{
		catalog: catalog,
		logger:  logger,
		now:     time.Now,
	}
}

// SetClock replaces the service's time source.
func (s *ClassicFortuneService) SetClock(now func() time.Time) {
	s.now = now
}

// Select returns the fortune for this client and calendar day, plus the
// seconds remaining until the next fortune becomes available at local
// midnight. Timezone resolution never fails the request; unknown zones fall
// back to the server's local zone.
func (s *ClassicFortuneService) Select(tz, clientIP, userAgent string) (string, int) {
	localNow := s.now().In(s.resolveLocation(tz))

	seed := localNow.Format("2006-01-02") + "|" + clientIP + "|" + userAgent
	text := s.catalog[seedIndex(seed, len(s.catalog))]

	return text, secondsUntilMidnight(localNow)
}

func (s *ClassicFortuneService) resolveLocation(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		if s.logger != nil {
			s.logger.HTTP().Debug("Unknown timezone, using server default", "tz", tz)
		}
		return time.Local
	}
	return loc
}

// seedIndex hashes the seed with a 31-multiplier rolling hash wrapped to
// signed 32 bits, then maps its absolute value into [0, catalogLen).
func seedIndex(seed string, catalogLen int) int {
	var h int32
	for _, r := range seed {
		h = h*31 + int32(r)
	}

	v := int64(h)
	if v < 0 {
		v = -v
	}
	return int(v % int64(catalogLen))
}

// secondsUntilMidnight returns the non-negative whole seconds until the next
// local midnight.
func secondsUntilMidnight(localNow time.Time) int {
	year, month, day := localNow.Date()
	midnight := time.Date(year, month, day+1, 0, 0, 0, 0, localNow.Location())

	secs := int(midnight.Sub(localNow).Seconds())
	if secs < 0 {
		secs = 0
	}
	return secs
}
