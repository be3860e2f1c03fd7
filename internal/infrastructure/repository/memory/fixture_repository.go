package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/House-of-Events/mike/internal/domain/fixture"
)

// FixtureRepository is an in-memory Store used by tests and local runs.
// It enforces the same at-most-one-row-per-match-id contract as the
// postgres table.
type FixtureRepository struct {
	mu       sync.RWMutex
	byMatch  map[string]fixture.Fixture
	inserted int
}

func NewFixtureRepository() *FixtureRepository {
	return &FixtureRepository{byMatch: make(map[string]fixture.Fixture)}
}

func (r *FixtureRepository) Exists(_ context.Context, matchID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byMatch[matchID]
	return ok, nil
}

func (r *FixtureRepository) Insert(_ context.Context, fx fixture.Fixture) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byMatch[fx.MatchID]; ok {
		return "", fmt.Errorf("insert fixture match_id=%s: %w", fx.MatchID, fixture.ErrDuplicate)
	}

	r.inserted++
	rowID := fx.FixtureID
	if rowID == "" {
		rowID = fmt.Sprintf("fix_%06d", r.inserted)
	}
	r.byMatch[fx.MatchID] = fx
	return rowID, nil
}

// Get returns the stored fixture for assertions in tests.
func (r *FixtureRepository) Get(matchID string) (fixture.Fixture, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fx, ok := r.byMatch[matchID]
	return fx, ok
}

// Len reports how many fixtures are stored.
func (r *FixtureRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byMatch)
}
