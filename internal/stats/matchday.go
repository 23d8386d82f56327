package stats

import (
	"time"

	"github.com/ramonehamilton/PokePoke-Tracker/internal/storage/models"
)

// Clock returns the current time.
type Clock func() time.Time

// MatchDay returns the calendar date of t as observed in loc.
// A nil location is treated as UTC.
func MatchDay(t time.Time, loc *time.Location) models.Date {
	if loc == nil {
		loc = time.UTC
	}
	return models.DateOf(t.In(loc))
}

// Today returns the current calendar date in loc according to clock.
func Today(clock Clock, loc *time.Location) models.Date {
	if clock == nil {
		clock = time.Now
	}
	return MatchDay(clock(), loc)
}
