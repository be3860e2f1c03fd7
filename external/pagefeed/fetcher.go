package pagefeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/House-of-Events/mike/internal/platform/logging"
)

// RaceFetcher yields the complete set of race rows for a season.
type RaceFetcher interface {
	FetchRaceRows(ctx context.Context) ([]RaceRow, error)
}

// MatchFetcher yields the complete set of match rows for a season.
type MatchFetcher interface {
	FetchMatchRows(ctx context.Context) ([]MatchRow, error)
}

// HTTPRowFetcher reads row exports published by the page renderer over
// HTTP. An optional fixed delay before each request paces calls against
// the origin.
type HTTPRowFetcher struct {
	httpClient *http.Client
	url        string
	delay      time.Duration
	logger     *logging.Logger
}

func NewHTTPRowFetcher(httpClient *http.Client, url string, delay time.Duration, logger *logging.Logger) *HTTPRowFetcher {
	if logger == nil {
		logger = logging.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &HTTPRowFetcher{httpClient: httpClient, url: url, delay: delay, logger: logger}
}

func (f *HTTPRowFetcher) FetchRaceRows(ctx context.Context) ([]RaceRow, error) {
	var rows []RaceRow
	if err := f.getJSON(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (f *HTTPRowFetcher) FetchMatchRows(ctx context.Context) ([]MatchRow, error) {
	var rows []MatchRow
	if err := f.getJSON(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (f *HTTPRowFetcher) getJSON(ctx context.Context, out any) error {
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(f.delay):
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return fmt.Errorf("build page feed request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch page feed %s: %w", f.url, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch page feed %s: unexpected status %d", f.url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read page feed body: %w", err)
	}
	if err := sonic.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode page feed body: %w", err)
	}

	f.logger.DebugContext(ctx, "fetched page feed", "url", f.url)
	return nil
}
