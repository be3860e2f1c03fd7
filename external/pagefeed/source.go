package pagefeed

import (
	"context"
	"fmt"
	"strings"

	"github.com/House-of-Events/mike/internal/usecase"
)

// RaceSource turns rendered race calendar rows into fragments. Each row
// expands into two independent fragments, one per session, mirroring how
// the calendar publishes a race and a qualifying slot per round.
type RaceSource struct {
	fetcher RaceFetcher
	tag     string
	season  int
}

func NewRaceSource(fetcher RaceFetcher, tag string, season int) *RaceSource {
	return &RaceSource{fetcher: fetcher, tag: tag, season: season}
}

func (s *RaceSource) Name() string { return s.tag }

func (s *RaceSource) FetchBatch(ctx context.Context) ([]usecase.Fragment, error) {
	rows, err := s.fetcher.FetchRaceRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch race rows: %w", err)
	}

	fragments := make([]usecase.Fragment, 0, len(rows)*2)
	for _, row := range rows {
		fragments = append(fragments,
			s.sessionFragment(row, "race", row.Race),
			s.sessionFragment(row, "qualifying", row.Qualifying),
		)
	}
	return fragments, nil
}

func (s *RaceSource) sessionFragment(row RaceRow, session string, cell SessionCell) usecase.Fragment {
	if strings.TrimSpace(cell.Day) == "" {
		return usecase.BrokenFragment{
			Context: fmt.Sprintf("%s %s %s", row.Round, row.Country, session),
			Reason:  "session cell missing from rendered page",
		}
	}

	return usecase.RacePageFragment{
		Round:     row.Round,
		Country:   row.Country,
		RaceDay:   cell.Day,
		RaceMonth: cell.Month,
		RaceTime:  cell.Time,
		RaceType:  session,
		Circuit:   row.Circuit,
		City:      row.City,
		Season:    s.season,
	}
}

// MatchSource turns rendered fixtures-page rows into fragments.
type MatchSource struct {
	fetcher MatchFetcher
	tag     string
}

func NewMatchSource(fetcher MatchFetcher, tag string) *MatchSource {
	return &MatchSource{fetcher: fetcher, tag: tag}
}

func (s *MatchSource) Name() string { return s.tag }

func (s *MatchSource) FetchBatch(ctx context.Context) ([]usecase.Fragment, error) {
	rows, err := s.fetcher.FetchMatchRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch match rows: %w", err)
	}

	fragments := make([]usecase.Fragment, 0, len(rows))
	for _, row := range rows {
		if strings.TrimSpace(row.HomeTeam) == "" || strings.TrimSpace(row.AwayTeam) == "" {
			fragments = append(fragments, usecase.BrokenFragment{
				Context: fmt.Sprintf("match on %s", row.Date),
				Reason:  "team names missing from rendered page",
			})
			continue
		}
		fragments = append(fragments, usecase.MatchPageFragment{
			DateText: row.Date,
			Kickoff:  row.Time,
			HomeTeam: row.HomeTeam,
			AwayTeam: row.AwayTeam,
			Venue:    row.Venue,
			League:   row.League,
		})
	}
	return fragments, nil
}
