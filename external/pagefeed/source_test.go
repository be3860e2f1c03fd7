package pagefeed

import (
	"context"
	"errors"
	"testing"

	"github.com/House-of-Events/mike/internal/usecase"
)

type stubRaceFetcher struct {
	rows []RaceRow
	err  error
}

func (f *stubRaceFetcher) FetchRaceRows(context.Context) ([]RaceRow, error) {
	return f.rows, f.err
}

type stubMatchFetcher struct {
	rows []MatchRow
	err  error
}

func (f *stubMatchFetcher) FetchMatchRows(context.Context) ([]MatchRow, error) {
	return f.rows, f.err
}

func TestRaceSourceFetchBatch(t *testing.T) {
	t.Parallel()

	t.Run("each row expands into race and qualifying fragments", func(t *testing.T) {
		t.Parallel()

		src := NewRaceSource(&stubRaceFetcher{rows: []RaceRow{
			{
				Round:      "Round 3",
				Country:    "Japan",
				Circuit:    "Suzuka",
				City:       "Suzuka",
				Race:       SessionCell{Day: "6", Month: "APR", Time: "14:00"},
				Qualifying: SessionCell{Day: "5", Month: "APR", Time: "15:00"},
			},
		}}, "f1_2025", 2025)

		batch, err := src.FetchBatch(context.Background())
		if err != nil {
			t.Fatalf("FetchBatch() error = %v", err)
		}
		if len(batch) != 2 {
			t.Fatalf("got %d fragments, want 2", len(batch))
		}

		race, ok := batch[0].(usecase.RacePageFragment)
		if !ok {
			t.Fatalf("fragment 0 is %T, want RacePageFragment", batch[0])
		}
		if race.RaceType != "race" || race.RaceDay != "6" || race.RaceTime != "14:00" {
			t.Errorf("race fragment = %+v", race)
		}
		if race.Season != 2025 {
			t.Errorf("Season = %d, want 2025", race.Season)
		}

		quali, ok := batch[1].(usecase.RacePageFragment)
		if !ok {
			t.Fatalf("fragment 1 is %T, want RacePageFragment", batch[1])
		}
		if quali.RaceType != "qualifying" || quali.RaceDay != "5" {
			t.Errorf("qualifying fragment = %+v", quali)
		}
	})

	t.Run("empty session cell becomes a broken fragment", func(t *testing.T) {
		t.Parallel()

		src := NewRaceSource(&stubRaceFetcher{rows: []RaceRow{
			{
				Round:   "Round 7",
				Country: "Monaco",
				Race:    SessionCell{Day: "25", Month: "MAY", Time: "14:00"},
			},
		}}, "f1_2025", 2025)

		batch, err := src.FetchBatch(context.Background())
		if err != nil {
			t.Fatalf("FetchBatch() error = %v", err)
		}
		if len(batch) != 2 {
			t.Fatalf("got %d fragments, want 2", len(batch))
		}
		if _, ok := batch[0].(usecase.RacePageFragment); !ok {
			t.Fatalf("fragment 0 is %T, want RacePageFragment", batch[0])
		}
		if _, ok := batch[1].(usecase.BrokenFragment); !ok {
			t.Fatalf("fragment 1 is %T, want BrokenFragment", batch[1])
		}
	})

	t.Run("fetch failure is fatal", func(t *testing.T) {
		t.Parallel()

		src := NewRaceSource(&stubRaceFetcher{err: errors.New("render timed out")}, "f1_2025", 2025)
		if _, err := src.FetchBatch(context.Background()); err == nil {
			t.Fatal("FetchBatch() expected error")
		}
	})
}

func TestMatchSourceFetchBatch(t *testing.T) {
	t.Parallel()

	t.Run("rows map to match fragments", func(t *testing.T) {
		t.Parallel()

		src := NewMatchSource(&stubMatchFetcher{rows: []MatchRow{
			{
				Date:     "Saturday 5 April 2025",
				Time:     "15:00",
				HomeTeam: "Arsenal",
				AwayTeam: "Chelsea",
				Venue:    "Emirates Stadium",
				League:   "Premier League",
			},
		}}, "soccer")

		batch, err := src.FetchBatch(context.Background())
		if err != nil {
			t.Fatalf("FetchBatch() error = %v", err)
		}
		if len(batch) != 1 {
			t.Fatalf("got %d fragments, want 1", len(batch))
		}

		frag, ok := batch[0].(usecase.MatchPageFragment)
		if !ok {
			t.Fatalf("fragment is %T, want MatchPageFragment", batch[0])
		}
		if frag.DateText != "Saturday 5 April 2025" || frag.Kickoff != "15:00" {
			t.Errorf("fragment = %+v", frag)
		}
		if frag.HomeTeam != "Arsenal" || frag.AwayTeam != "Chelsea" {
			t.Errorf("teams = %q v %q", frag.HomeTeam, frag.AwayTeam)
		}
	})

	t.Run("missing team names become a broken fragment", func(t *testing.T) {
		t.Parallel()

		src := NewMatchSource(&stubMatchFetcher{rows: []MatchRow{
			{Date: "Saturday 5 April 2025", HomeTeam: "Arsenal"},
		}}, "soccer")

		batch, err := src.FetchBatch(context.Background())
		if err != nil {
			t.Fatalf("FetchBatch() error = %v", err)
		}
		if len(batch) != 1 {
			t.Fatalf("got %d fragments, want 1", len(batch))
		}
		if _, ok := batch[0].(usecase.BrokenFragment); !ok {
			t.Fatalf("fragment is %T, want BrokenFragment", batch[0])
		}
	})

	t.Run("source name is the configured tag", func(t *testing.T) {
		t.Parallel()

		src := NewMatchSource(&stubMatchFetcher{}, "soccer")
		if src.Name() != "soccer" {
			t.Fatalf("Name() = %q, want soccer", src.Name())
		}
	})
}
