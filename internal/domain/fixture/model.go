package fixture

import (
	"strings"
	"time"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusDelayed   = "delayed"
	StatusCancelled = "cancelled"
)

// statusByPhrase translates the long status phrases the sources emit into
// the canonical set the fixtures table accepts.
var statusByPhrase = map[string]string{
	"match finished":      StatusCompleted,
	"match postponed":     StatusDelayed,
	"match cancelled":     StatusCancelled,
	"match suspended":     StatusDelayed,
	"match delayed":       StatusDelayed,
	"match abandoned":     StatusCancelled,
	"match not finished":  StatusDelayed,
	"not started":         StatusPending,
	"halftime":            StatusPending,
	"second half started": StatusPending,
	"extra time":          StatusPending,
	"break time":          StatusPending,
	"penalty in progress": StatusPending,
}

// Fixture is the canonical representation of one scheduled sporting event
// or session. A Fixture is built once per raw fragment and never mutated
// afterwards.
type Fixture struct {
	// MatchID is the deterministic natural key derived from content. It is
	// the dedup key and the unique column in storage.
	MatchID   string
	SportType string

	// HomeTeam and AwayTeam are empty for non-team sessions (a race).
	HomeTeam string
	AwayTeam string
	Venue    string

	// Date is always populated (YYYY-MM-DD). Time is the source-local wall
	// clock string and may be empty. KickoffAt degrades to midnight on Date
	// when the time component could not be parsed.
	Date      string
	Time      string
	KickoffAt time.Time

	Status string

	// Extra holds source-specific auxiliary fields (referee, league name,
	// raw api ids) persisted as an opaque JSONB payload.
	Extra map[string]any

	// FixtureID is a random storage surrogate regenerated per insertion
	// attempt. It carries no identity semantics and must never be used for
	// deduplication.
	FixtureID string

	// NotificationSentAt is reserved for the downstream notifier; always
	// nil at creation.
	NotificationSentAt *time.Time
}

// MapStatus resolves a free-text source status phrase to the canonical
// enum. Unrecognized phrases map to pending rather than failing.
func MapStatus(phrase string) string {
	if status, ok := statusByPhrase[strings.ToLower(strings.TrimSpace(phrase))]; ok {
		return status
	}
	return StatusPending
}
