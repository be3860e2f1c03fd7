package fixture

import (
	"fmt"
	"strings"
)

// Identity derivation is deterministic by contract: the same logical fixture
// must always yield the same match id so repeated ingestion runs stay
// idempotent. Neither resolver may touch the clock, random state, or any
// process-local counter.

// ContentID derives a match id from the fixture content: sport tag, ISO
// date and truncated participant names, e.g. "soc-2025-04-06-Ars-Che".
// Two distinct fixtures sharing sport, date and both 3-char prefixes would
// collide; accepted tradeoff for sources without stable upstream ids.
func ContentID(sport, isoDate, homeTeam, awayTeam string) string {
	return fmt.Sprintf("%s-%s-%s-%s",
		truncate(sport, 3),
		strings.TrimSpace(isoDate),
		truncate(homeTeam, 3),
		truncate(awayTeam, 3),
	)
}

// RoundID derives a match id from the competition tag, numeric round and
// session type, e.g. "f1_2025_3_race". Exact for schedules with a single
// session of each type per round.
func RoundID(tag string, round int, session string) string {
	return fmt.Sprintf("%s_%d_%s", strings.TrimSpace(tag), round, strings.ToLower(strings.TrimSpace(session)))
}

func truncate(value string, max int) string {
	value = strings.TrimSpace(value)
	if len(value) <= max {
		return value
	}
	return value[:max]
}
