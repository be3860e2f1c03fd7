package usecase

import "github.com/House-of-Events/mike/internal/domain/fixture"

// ResolveIdentity picks the identity strategy for a normalized fixture.
// Round-keyed sources (one session of each type per round) use the exact
// round-derived id; everything else derives the id from content.
func ResolveIdentity(tag string, n Normalized) string {
	if n.Round > 0 && n.Session != "" {
		return fixture.RoundID(tag, n.Round, n.Session)
	}
	return fixture.ContentID(tag, n.Fixture.Date, n.Fixture.HomeTeam, n.Fixture.AwayTeam)
}
