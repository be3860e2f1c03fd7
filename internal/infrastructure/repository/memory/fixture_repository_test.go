package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/House-of-Events/mike/internal/domain/fixture"
)

func TestFixtureRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("insert then exists", func(t *testing.T) {
		t.Parallel()

		repo := NewFixtureRepository()
		rowID, err := repo.Insert(ctx, fixture.Fixture{MatchID: "f1_2025_3_race", SportType: "f1_2025"})
		if err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		if rowID == "" {
			t.Fatal("Insert() returned empty row id")
		}

		exists, err := repo.Exists(ctx, "f1_2025_3_race")
		if err != nil {
			t.Fatalf("Exists() error = %v", err)
		}
		if !exists {
			t.Fatal("Exists() = false after insert")
		}
	})

	t.Run("duplicate match id is rejected", func(t *testing.T) {
		t.Parallel()

		repo := NewFixtureRepository()
		if _, err := repo.Insert(ctx, fixture.Fixture{MatchID: "soc-2025-04-05-Ars-Che"}); err != nil {
			t.Fatalf("first Insert() error = %v", err)
		}

		_, err := repo.Insert(ctx, fixture.Fixture{MatchID: "soc-2025-04-05-Ars-Che"})
		if !errors.Is(err, fixture.ErrDuplicate) {
			t.Fatalf("second Insert() error = %v, want ErrDuplicate", err)
		}
		if repo.Len() != 1 {
			t.Fatalf("Len() = %d, want 1", repo.Len())
		}
	})

	t.Run("caller surrogate id wins", func(t *testing.T) {
		t.Parallel()

		repo := NewFixtureRepository()
		rowID, err := repo.Insert(ctx, fixture.Fixture{MatchID: "m1", FixtureID: "fix_000042"})
		if err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		if rowID != "fix_000042" {
			t.Fatalf("rowID = %q, want fix_000042", rowID)
		}
	})
}
