package apisports

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/House-of-Events/mike/internal/platform/logging"
	"github.com/House-of-Events/mike/internal/usecase"
)

const (
	defaultBaseURL = "https://v3.football.api-sports.io"
	defaultTimeout = 20 * time.Second
	defaultSport   = "soccer"
)

var errTransient = crerr.New("api-sports transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Key        string
	Season     string
	League     string
	Timeout    time.Duration
	MaxRetries int
	Logger     *logging.Logger
}

// Client is a fixture source backed by the api-sports football API. One
// FetchBatch call pulls the whole season's fixtures for the configured
// league.
type Client struct {
	httpClient *http.Client
	baseURL    string
	key        string
	season     string
	league     string
	maxRetries int
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		key:        strings.TrimSpace(cfg.Key),
		season:     strings.TrimSpace(cfg.Season),
		league:     strings.TrimSpace(cfg.League),
		maxRetries: max(cfg.MaxRetries, 0),
		logger:     logger,
	}
}

func (c *Client) Name() string {
	return defaultSport
}

func (c *Client) FetchBatch(ctx context.Context) ([]usecase.Fragment, error) {
	if c.key == "" {
		return nil, crerr.New("api key is required")
	}

	params := url.Values{}
	params.Set("season", c.season)
	params.Set("league", c.league)

	var envelope fixturesEnvelope
	if err := c.doJSON(ctx, "/fixtures", params, &envelope); err != nil {
		return nil, crerr.Wrapf(err, "fetch fixtures season=%s league=%s", c.season, c.league)
	}

	c.logger.InfoContext(ctx, "fetched fixtures from api-sports",
		"season", c.season, "league", c.league, "count", len(envelope.Response))

	fragments := make([]usecase.Fragment, 0, len(envelope.Response))
	for _, item := range envelope.Response {
		fragments = append(fragments, mapItemToFragment(item))
	}
	return fragments, nil
}

func mapItemToFragment(item fixtureItem) usecase.Fragment {
	ref := fmt.Sprintf("api fixture %d", item.Fixture.ID)
	if item.Teams.Home.Name == "" || item.Teams.Away.Name == "" {
		return usecase.BrokenFragment{Context: ref, Reason: "participant names missing from response"}
	}
	if strings.TrimSpace(item.Fixture.Date) == "" {
		return usecase.BrokenFragment{Context: ref, Reason: "fixture date missing from response"}
	}

	return usecase.APIFixtureFragment{
		StartingAt:   item.Fixture.Date,
		HomeTeam:     item.Teams.Home.Name,
		AwayTeam:     item.Teams.Away.Name,
		Venue:        item.Fixture.Venue.Name,
		League:       item.League.Name,
		StatusLong:   item.Fixture.Status.Long,
		Referee:      item.Fixture.Referee,
		Timezone:     item.Fixture.Timezone,
		APIFixtureID: strconv.FormatInt(item.Fixture.ID, 10),
	}
}

func (c *Client) doJSON(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	attempts := c.maxRetries + 1
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			c.logger.WarnContext(ctx, "retrying api-sports request",
				"path", path, "attempt", attempt, "error", lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		lastErr = c.doOnce(ctx, endpoint, out)
		if lastErr == nil {
			return nil
		}
		if !crerr.Is(lastErr, errTransient) {
			return lastErr
		}
	}
	return lastErr
}

func (c *Client) doOnce(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return crerr.Wrap(err, "build request")
	}
	req.Header.Set("x-rapidapi-host", strings.TrimPrefix(strings.TrimPrefix(c.baseURL, "https://"), "http://"))
	req.Header.Set("x-rapidapi-key", c.key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return crerr.Mark(crerr.Wrap(err, "perform request"), errTransient)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return crerr.Mark(crerr.Wrap(err, "read response body"), errTransient)
	}

	if resp.StatusCode != http.StatusOK {
		err := crerr.Newf("unexpected status %d", resp.StatusCode)
		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			return crerr.Mark(err, errTransient)
		}
		return err
	}

	if err := sonic.Unmarshal(body, out); err != nil {
		return crerr.Wrap(err, "decode response body")
	}
	return nil
}
