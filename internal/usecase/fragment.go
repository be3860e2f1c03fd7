package usecase

import (
	"context"
	"fmt"
	"strings"
)

// Source yields one complete batch of raw fragments per run. Sources are
// not streamed; a run either gets the full batch or a fatal error.
type Source interface {
	// Name is the sport/competition tag recorded on every fixture the
	// source produces, e.g. "f1_2025" or "soccer".
	Name() string
	FetchBatch(ctx context.Context) ([]Fragment, error)
}

// Fragment is the tagged union of raw per-source shapes. The loose shape
// never travels past the normalizer.
type Fragment interface {
	// Ref is a short handle identifying the fragment in per-item logs.
	Ref() string
	fragment()
}

// RacePageFragment is one session row extracted from a rendered race
// calendar page. Sources emit two of these per round (race and qualifying).
type RacePageFragment struct {
	Round     string // raw round label, e.g. "Round 3" or "ROUND 3"
	Country   string
	RaceDay   string // day of month, e.g. "6"
	RaceMonth string // month abbreviation, e.g. "APR"
	RaceTime  string // wall clock, e.g. "14:00"; may be empty
	RaceType  string // "race" or "qualifying"
	Circuit   string // optional; falls back to "<country> Circuit"
	City      string // optional; falls back to country
	Season    int    // calendar year the page covers
}

func (f RacePageFragment) Ref() string {
	return fmt.Sprintf("%s %s %s", f.Round, f.Country, strings.ToLower(f.RaceType))
}

func (RacePageFragment) fragment() {}

// MatchPageFragment is one match row extracted from a rendered fixtures
// page, with the date as the page prints it.
type MatchPageFragment struct {
	DateText string // e.g. "Saturday 5 April 2025"
	Kickoff  string // e.g. "15:00"; may be empty
	HomeTeam string
	AwayTeam string
	Venue    string // optional
	League   string // optional
}

func (f MatchPageFragment) Ref() string {
	return fmt.Sprintf("%s v %s %s", f.HomeTeam, f.AwayTeam, f.DateText)
}

func (MatchPageFragment) fragment() {}

// APIFixtureFragment is one fixture object from the football REST API.
type APIFixtureFragment struct {
	StartingAt   string // ISO-8601, Z suffix denotes UTC
	HomeTeam     string
	AwayTeam     string
	Venue        string // optional
	League       string
	StatusLong   string // free-text phrase, e.g. "Match Finished"
	Referee      string
	Timezone     string
	APIFixtureID string
}

func (f APIFixtureFragment) Ref() string {
	return fmt.Sprintf("%s v %s %s", f.HomeTeam, f.AwayTeam, f.StartingAt)
}

func (APIFixtureFragment) fragment() {}

// BrokenFragment records a fragment whose expected raw fields the source
// could not extract. It always fails at the normalize stage so the run
// counts it without aborting the batch.
type BrokenFragment struct {
	Context string
	Reason  string
}

func (f BrokenFragment) Ref() string { return f.Context }

func (BrokenFragment) fragment() {}
