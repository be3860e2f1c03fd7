package fixture

import (
	"context"
	"errors"
)

// ErrDuplicate is returned by Insert when the store's uniqueness constraint
// on match_id rejects the row. The constraint is the authoritative dedup
// backstop when the existence check races a concurrent run.
var ErrDuplicate = errors.New("fixture already exists")

// Store persists canonical fixtures.
type Store interface {
	// Exists reports whether a fixture with the given match id is already
	// persisted.
	Exists(ctx context.Context, matchID string) (bool, error)
	// Insert persists one fixture inside its own transaction and returns
	// the generated row key.
	Insert(ctx context.Context, fx Fixture) (string, error)
}
