package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/House-of-Events/mike/internal/domain/fixture"
	qb "github.com/House-of-Events/mike/internal/platform/querybuilder"
)

// FixtureRepository persists canonical fixtures into the unified fixtures
// table. Every insert runs in its own transaction; the unique constraint on
// match_id is the final dedup backstop behind the coordinator's gate.
type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) Exists(ctx context.Context, matchID string) (bool, error) {
	query, args, err := qb.Select("1").From("fixtures").
		Where(
			qb.Eq("match_id", matchID),
			qb.IsNull("date_deleted"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build fixture exists query: %w", err)
	}

	var one int
	if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check fixture exists match_id=%s: %w", matchID, err)
	}
	return true, nil
}

func (r *FixtureRepository) Insert(ctx context.Context, fx fixture.Fixture) (string, error) {
	payload, err := sonic.MarshalString(buildFixtureData(fx))
	if err != nil {
		return "", fmt.Errorf("marshal fixture data match_id=%s: %w", fx.MatchID, err)
	}

	model := fixtureInsertModel{
		MatchID:            fx.MatchID,
		SportType:          fx.SportType,
		FixtureData:        payload,
		Status:             fx.Status,
		DateTime:           fx.KickoffAt,
		NotificationSentAt: fx.NotificationSentAt,
	}

	var (
		query string
		args  []any
	)
	if fx.FixtureID != "" {
		// Surrogate minted by the run; otherwise the table default applies.
		query, args, err = qb.InsertInto("fixtures").
			Columns("id", "match_id", "sport_type", "fixture_data", "status", "date_time", "notification_sent_at").
			Values(fx.FixtureID, model.MatchID, model.SportType, model.FixtureData, model.Status, model.DateTime, model.NotificationSentAt).
			Suffix("RETURNING id").
			ToSQL()
	} else {
		query, args, err = qb.InsertModel("fixtures", model, "RETURNING id")
	}
	if err != nil {
		return "", fmt.Errorf("build insert fixture query: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx insert fixture: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var rowID string
	if err := tx.GetContext(ctx, &rowID, query, args...); err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("insert fixture match_id=%s: %w", fx.MatchID, fixture.ErrDuplicate)
		}
		return "", fmt.Errorf("insert fixture match_id=%s: %w", fx.MatchID, err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit insert fixture match_id=%s: %w", fx.MatchID, err)
	}
	return rowID, nil
}

// buildFixtureData assembles the opaque JSONB payload: the source-specific
// auxiliary fields plus the canonical columns the original consumers read
// back out of the blob.
func buildFixtureData(fx fixture.Fixture) map[string]any {
	data := make(map[string]any, len(fx.Extra)+6)
	for key, value := range fx.Extra {
		data[key] = value
	}
	data["sport_type"] = fx.SportType
	data["date"] = fx.Date
	data["time"] = fx.Time
	if fx.HomeTeam != "" || fx.AwayTeam != "" {
		data["home_team"] = fx.HomeTeam
		data["away_team"] = fx.AwayTeam
	}
	if fx.Venue != "" {
		data["venue"] = fx.Venue
	}
	return data
}
