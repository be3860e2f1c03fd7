package pagefeed

// Rows are the structured export of a rendered schedule page. The DOM
// traversal itself lives in the renderer; the pipeline only sees these
// shapes.

// SessionCell is one session's schedule cell on a race calendar page.
type SessionCell struct {
	Day   string `json:"day"`
	Month string `json:"month"`
	Time  string `json:"time"`
}

// RaceRow is one round entry on a race calendar page, carrying both
// sessions extracted from the round's detail view.
type RaceRow struct {
	Round      string      `json:"round"`
	Country    string      `json:"country"`
	Circuit    string      `json:"circuit"`
	City       string      `json:"city"`
	Race       SessionCell `json:"race"`
	Qualifying SessionCell `json:"qualifying"`
}

// MatchRow is one match entry on a fixtures page.
type MatchRow struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	Venue    string `json:"venue"`
	League   string `json:"league"`
}
