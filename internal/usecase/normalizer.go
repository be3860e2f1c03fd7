package usecase

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/House-of-Events/mike/internal/domain/fixture"
)

const (
	isoDateLayout     = "2006-01-02"
	isoDateTimeLayout = "2006-01-02 15:04"
	isoOffsetLayout   = "2006-01-02T15:04:05-07:00"
	pageDateLayout    = "Monday 2 January 2006"
	pageDateTime      = "Monday 2 January 2006 15:04"
)

// monthByAbbr maps month abbreviations to their number. Unrecognized
// abbreviations resolve to January; a long-standing quirk of the race
// calendar extraction kept on purpose so a bad month never sinks the row.
var monthByAbbr = map[string]int{
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
}

// Normalized couples a canonical fixture with the inputs the identity
// resolver needs. Round and Session are set only by round-keyed sources.
type Normalized struct {
	Fixture fixture.Fixture
	Round   int
	Session string
}

// Normalize converts one raw fragment into a canonical fixture, tagged with
// the source's sport/competition name. It is a pure transformation: one
// fragment in, one fixture or one error out.
func Normalize(tag string, frag Fragment) (Normalized, error) {
	switch f := frag.(type) {
	case RacePageFragment:
		return normalizeRacePage(tag, f)
	case MatchPageFragment:
		return normalizeMatchPage(tag, f)
	case APIFixtureFragment:
		return normalizeAPIFixture(tag, f)
	case BrokenFragment:
		return Normalized{}, fmt.Errorf("%w: %s: %s", ErrExtraction, f.Context, f.Reason)
	default:
		return Normalized{}, fmt.Errorf("%w: unsupported fragment type %T", ErrNormalization, frag)
	}
}

func normalizeRacePage(tag string, f RacePageFragment) (Normalized, error) {
	round, err := parseRound(f.Round)
	if err != nil {
		return Normalized{}, normErr("round", f.Ref(), err)
	}
	if f.Season <= 0 {
		return Normalized{}, normErr("season", f.Ref(), fmt.Errorf("season year is missing"))
	}

	day, err := strconv.Atoi(strings.TrimSpace(f.RaceDay))
	if err != nil {
		return Normalized{}, normErr("race_day", f.Ref(), err)
	}
	month := monthNumber(f.RaceMonth)
	date := fmt.Sprintf("%04d-%02d-%02d", f.Season, month, day)

	clock := strings.TrimSpace(f.RaceTime)
	if clock == "" {
		clock = "00:00"
	}
	kickoff, err := time.Parse(isoDateTimeLayout, date+" "+clock)
	if err != nil {
		// Time did not parse; record a date-only moment instead of losing
		// the fixture.
		kickoff, err = time.Parse(isoDateLayout, date)
		if err != nil {
			return Normalized{}, normErr("date", f.Ref(), err)
		}
		clock = ""
	}

	country := strings.TrimSpace(f.Country)
	circuit := strings.TrimSpace(f.Circuit)
	if circuit == "" {
		circuit = country + " Circuit"
	}
	city := strings.TrimSpace(f.City)
	if city == "" {
		city = country
	}
	session := strings.ToLower(strings.TrimSpace(f.RaceType))

	return Normalized{
		Fixture: fixture.Fixture{
			SportType: tag,
			Venue:     circuit,
			Date:      date,
			Time:      clock,
			KickoffAt: kickoff,
			Status:    fixture.MapStatus(""),
			Extra: map[string]any{
				"round":     round,
				"country":   country,
				"circuit":   circuit,
				"city":      city,
				"race_type": session,
			},
		},
		Round:   round,
		Session: session,
	}, nil
}

func normalizeMatchPage(tag string, f MatchPageFragment) (Normalized, error) {
	home := strings.TrimSpace(f.HomeTeam)
	away := strings.TrimSpace(f.AwayTeam)
	if home == "" || away == "" {
		return Normalized{}, normErr("teams", f.Ref(), fmt.Errorf("home and away teams are required"))
	}

	dateText := strings.TrimSpace(f.DateText)
	clock := strings.TrimSpace(f.Kickoff)
	kickoff, err := time.Parse(pageDateTime, dateText+" "+clock)
	if err != nil {
		kickoff, err = time.Parse(pageDateLayout, dateText)
		if err != nil {
			return Normalized{}, normErr("date", f.Ref(), err)
		}
		clock = ""
	}

	venue := strings.TrimSpace(f.Venue)
	if venue == "" {
		venue = "Unknown"
	}

	return Normalized{
		Fixture: fixture.Fixture{
			SportType: tag,
			HomeTeam:  home,
			AwayTeam:  away,
			Venue:     venue,
			Date:      kickoff.Format(isoDateLayout),
			Time:      clock,
			KickoffAt: kickoff,
			Status:    fixture.MapStatus(""),
			Extra: map[string]any{
				"league":    strings.TrimSpace(f.League),
				"home_team": home,
				"away_team": away,
				"venue":     venue,
			},
		},
	}, nil
}

func normalizeAPIFixture(tag string, f APIFixtureFragment) (Normalized, error) {
	home := strings.TrimSpace(f.HomeTeam)
	away := strings.TrimSpace(f.AwayTeam)
	if home == "" || away == "" {
		return Normalized{}, normErr("teams", f.Ref(), fmt.Errorf("home and away teams are required"))
	}

	kickoff, clock, err := parseISOTimestamp(f.StartingAt)
	if err != nil {
		return Normalized{}, normErr("date", f.Ref(), err)
	}
	date := kickoff.Format(isoDateLayout)

	venue := strings.TrimSpace(f.Venue)
	if venue == "" {
		venue = "Unknown"
	}

	return Normalized{
		Fixture: fixture.Fixture{
			SportType: tag,
			HomeTeam:  home,
			AwayTeam:  away,
			Venue:     venue,
			Date:      date,
			Time:      clock,
			KickoffAt: kickoff,
			Status:    fixture.MapStatus(f.StatusLong),
			Extra: map[string]any{
				"league":         strings.TrimSpace(f.League),
				"home_team":      home,
				"away_team":      away,
				"venue":          venue,
				"date":           date,
				"time":           clock,
				"date_time":      kickoff.Format(time.RFC3339),
				"api_fixture_id": f.APIFixtureID,
				"referee":        strings.TrimSpace(f.Referee),
				"timezone":       strings.TrimSpace(f.Timezone),
			},
		},
	}, nil
}

// parseISOTimestamp parses an ISO-8601 timestamp, rewriting a Z zone suffix
// to an explicit UTC offset first. When the time component is unparseable
// the date portion alone is used and the returned clock string is empty.
func parseISOTimestamp(value string) (time.Time, string, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(value), "Z", "+00:00")
	if parsed, err := time.Parse(isoOffsetLayout, normalized); err == nil {
		return parsed.UTC(), parsed.UTC().Format("15:04:05"), nil
	}

	if len(normalized) >= len(isoDateLayout) {
		if parsed, err := time.Parse(isoDateLayout, normalized[:len(isoDateLayout)]); err == nil {
			return parsed, "", nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unparseable timestamp %q", value)
}

func parseRound(raw string) (int, error) {
	cleaned := strings.TrimSpace(strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(raw)), "ROUND"))
	round, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, fmt.Errorf("unparseable round %q", raw)
	}
	return round, nil
}

func monthNumber(abbr string) int {
	if month, ok := monthByAbbr[strings.ToUpper(strings.TrimSpace(abbr))]; ok {
		return month
	}
	return 1
}
