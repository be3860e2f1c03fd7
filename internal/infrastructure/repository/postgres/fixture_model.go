package postgres

import "time"

// fixtureInsertModel mirrors the columns the pipeline writes. The surrogate
// id column is handled separately so the table default can apply when no
// surrogate was generated.
type fixtureInsertModel struct {
	MatchID            string     `db:"match_id"`
	SportType          string     `db:"sport_type"`
	FixtureData        string     `db:"fixture_data"`
	Status             string     `db:"status"`
	DateTime           time.Time  `db:"date_time"`
	NotificationSentAt *time.Time `db:"notification_sent_at"`
}
