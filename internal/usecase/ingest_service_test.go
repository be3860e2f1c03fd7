package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/House-of-Events/mike/internal/domain/fixture"
	"github.com/House-of-Events/mike/internal/infrastructure/repository/memory"
	fixturemock "github.com/House-of-Events/mike/internal/mocks/domain/fixture"
	"github.com/House-of-Events/mike/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

type stubSource struct {
	name  string
	batch []Fragment
	err   error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) FetchBatch(context.Context) ([]Fragment, error) {
	return s.batch, s.err
}

type stubIDs struct {
	next int
	err  error
}

func (g *stubIDs) NewFixtureID() (string, error) {
	if g.err != nil {
		return "", g.err
	}
	g.next++
	return fmt.Sprintf("fix_%06d", g.next), nil
}

type failingExistsStore struct {
	inner fixture.Store
}

func (s *failingExistsStore) Exists(context.Context, string) (bool, error) {
	return false, errors.New("connection refused")
}

func (s *failingExistsStore) Insert(ctx context.Context, fx fixture.Fixture) (string, error) {
	return s.inner.Insert(ctx, fx)
}

func TestIngestService_RaceCalendarRun(t *testing.T) {
	t.Parallel()

	store := memory.NewFixtureRepository()
	svc := NewIngestService(store, &stubIDs{}, logging.NewNop())
	src := &stubSource{
		name: "f1_2025",
		batch: []Fragment{
			RacePageFragment{
				Round:     "Round 3",
				Country:   "Japan",
				RaceDay:   "6",
				RaceMonth: "APR",
				RaceTime:  "14:00",
				RaceType:  "race",
				Season:    2025,
			},
		},
	}

	sum, err := svc.Ingest(context.Background(), src)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if sum.Persisted != 1 || sum.Skipped != 0 || sum.Failed != 0 {
		t.Fatalf("summary = %+v, want 1 persisted", sum)
	}

	fx, ok := store.Get("f1_2025_3_race")
	if !ok {
		t.Fatal("fixture not stored under f1_2025_3_race")
	}
	if fx.Date != "2025-04-06" {
		t.Errorf("Date = %q, want 2025-04-06", fx.Date)
	}
	if fx.Time != "14:00" {
		t.Errorf("Time = %q, want 14:00", fx.Time)
	}
	if !fx.KickoffAt.Equal(time.Date(2025, 4, 6, 14, 0, 0, 0, time.UTC)) {
		t.Errorf("KickoffAt = %v, want 2025-04-06T14:00Z", fx.KickoffAt)
	}
	if fx.Status != fixture.StatusPending {
		t.Errorf("Status = %q, want pending", fx.Status)
	}

	// A second full run over the same batch must insert nothing.
	sum, err = svc.Ingest(context.Background(), src)
	if err != nil {
		t.Fatalf("second Ingest() error = %v", err)
	}
	if sum.Persisted != 0 || sum.Skipped != 1 {
		t.Fatalf("second run summary = %+v, want 1 skipped", sum)
	}
	if store.Len() != 1 {
		t.Fatalf("store has %d fixtures after rerun, want 1", store.Len())
	}
}

func TestIngestService_FragmentFailuresAreIsolated(t *testing.T) {
	t.Parallel()

	store := memory.NewFixtureRepository()
	svc := NewIngestService(store, &stubIDs{}, logging.NewNop())
	src := &stubSource{
		name: "soccer",
		batch: []Fragment{
			APIFixtureFragment{
				StartingAt: "2025-06-15T18:00:00Z",
				HomeTeam:   "Brazil",
				AwayTeam:   "Argentina",
			},
			APIFixtureFragment{
				StartingAt: "not a timestamp",
				HomeTeam:   "Chelsea",
				AwayTeam:   "Flamengo",
			},
			BrokenFragment{Context: "row 7", Reason: "teams missing"},
			APIFixtureFragment{
				StartingAt: "2025-06-16T20:00:00Z",
				HomeTeam:   "Bayern",
				AwayTeam:   "Boca Juniors",
			},
		},
	}

	sum, err := svc.Ingest(context.Background(), src)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if sum.Persisted != 2 || sum.Failed != 2 || sum.Skipped != 0 {
		t.Fatalf("summary = %+v, want 2 persisted 2 failed", sum)
	}
	if store.Len() != 2 {
		t.Fatalf("store has %d fixtures, want 2", store.Len())
	}
}

func TestIngestService_GateFailureFallsThroughToInsert(t *testing.T) {
	t.Parallel()

	inner := memory.NewFixtureRepository()
	svc := NewIngestService(&failingExistsStore{inner: inner}, &stubIDs{}, logging.NewNop())
	frag := APIFixtureFragment{
		StartingAt: "2025-06-15T18:00:00Z",
		HomeTeam:   "Brazil",
		AwayTeam:   "Argentina",
	}
	src := &stubSource{name: "soccer", batch: []Fragment{frag}}

	sum, err := svc.Ingest(context.Background(), src)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if sum.Persisted != 1 {
		t.Fatalf("summary = %+v, want 1 persisted despite gate failure", sum)
	}

	// With the row now present and the gate still down, the unique
	// constraint decides and the fragment counts as failed.
	sum, err = svc.Ingest(context.Background(), src)
	if err != nil {
		t.Fatalf("second Ingest() error = %v", err)
	}
	if sum.Failed != 1 || sum.Persisted != 0 {
		t.Fatalf("second run summary = %+v, want 1 failed", sum)
	}
	if inner.Len() != 1 {
		t.Fatalf("store has %d fixtures, want 1", inner.Len())
	}
}

func TestIngestService_SurrogateFailureDoesNotBlockInsert(t *testing.T) {
	t.Parallel()

	store := memory.NewFixtureRepository()
	svc := NewIngestService(store, &stubIDs{err: errors.New("entropy exhausted")}, logging.NewNop())
	src := &stubSource{
		name: "soccer",
		batch: []Fragment{
			APIFixtureFragment{
				StartingAt: "2025-06-15T18:00:00Z",
				HomeTeam:   "Brazil",
				AwayTeam:   "Argentina",
			},
		},
	}

	sum, err := svc.Ingest(context.Background(), src)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if sum.Persisted != 1 {
		t.Fatalf("summary = %+v, want 1 persisted", sum)
	}

	fx, ok := store.Get("soc-2025-06-15-Bra-Arg")
	if !ok {
		t.Fatal("fixture not stored under content id")
	}
	if fx.FixtureID != "" {
		t.Errorf("FixtureID = %q, want empty so the store default applies", fx.FixtureID)
	}
}

func TestIngestService_FatalSourceErrors(t *testing.T) {
	t.Parallel()

	t.Run("fetch failure aborts the run", func(t *testing.T) {
		t.Parallel()

		svc := NewIngestService(memory.NewFixtureRepository(), &stubIDs{}, logging.NewNop())
		src := &stubSource{name: "soccer", err: errors.New("502 bad gateway")}

		_, err := svc.Ingest(context.Background(), src)
		if !errors.Is(err, ErrFatalSource) {
			t.Fatalf("Ingest() error = %v, want ErrFatalSource", err)
		}
	})

	t.Run("nil source", func(t *testing.T) {
		t.Parallel()

		svc := NewIngestService(memory.NewFixtureRepository(), &stubIDs{}, logging.NewNop())
		if _, err := svc.Ingest(context.Background(), nil); !errors.Is(err, ErrFatalSource) {
			t.Fatalf("Ingest() error = %v, want ErrFatalSource", err)
		}
	})

	t.Run("nil store", func(t *testing.T) {
		t.Parallel()

		svc := NewIngestService(nil, &stubIDs{}, logging.NewNop())
		src := &stubSource{name: "soccer"}
		if _, err := svc.Ingest(context.Background(), src); !errors.Is(err, ErrFatalSource) {
			t.Fatalf("Ingest() error = %v, want ErrFatalSource", err)
		}
	})
}

func TestIngestService_EmptyBatch(t *testing.T) {
	t.Parallel()

	svc := NewIngestService(memory.NewFixtureRepository(), &stubIDs{}, logging.NewNop())
	sum, err := svc.Ingest(context.Background(), &stubSource{name: "soccer"})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if sum != (Summary{}) {
		t.Fatalf("summary = %+v, want zero", sum)
	}
}

func TestIngestService_DuplicateInsertCountsAsFailedUsingMockery(t *testing.T) {
	t.Parallel()

	store := fixturemock.NewStore(t)
	svc := NewIngestService(store, &stubIDs{}, logging.NewNop())
	src := &stubSource{
		name: "soccer",
		batch: []Fragment{
			APIFixtureFragment{
				StartingAt: "2025-06-15T18:00:00Z",
				HomeTeam:   "Brazil",
				AwayTeam:   "Argentina",
			},
		},
	}

	store.
		On("Exists", mock.Anything, "soc-2025-06-15-Bra-Arg").
		Return(false, nil).
		Once()
	store.
		On("Insert", mock.Anything, mock.MatchedBy(func(fx fixture.Fixture) bool {
			return fx.MatchID == "soc-2025-06-15-Bra-Arg"
		})).
		Return("", fmt.Errorf("insert fixture: %w", fixture.ErrDuplicate)).
		Once()

	sum, err := svc.Ingest(context.Background(), src)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if sum.Failed != 1 || sum.Persisted != 0 {
		t.Fatalf("summary = %+v, want 1 failed", sum)
	}
}
