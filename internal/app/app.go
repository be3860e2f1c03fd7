package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/House-of-Events/mike/external/apisports"
	"github.com/House-of-Events/mike/external/pagefeed"
	"github.com/House-of-Events/mike/internal/config"
	"github.com/House-of-Events/mike/internal/infrastructure/repository/postgres"
	idgen "github.com/House-of-Events/mike/internal/platform/id"
	"github.com/House-of-Events/mike/internal/platform/logging"
	"github.com/House-of-Events/mike/internal/usecase"
)

// App owns the database handle and the wired ingestion pipeline for
// one process lifetime.
type App struct {
	cfg     config.Config
	db      *sqlx.DB
	logger  *logging.Logger
	ingest  *usecase.IngestService
	sources map[string]usecase.Source
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	db, err := otelsqlx.Connect("postgres", cfg.DBURL,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	store := postgres.NewFixtureRepository(db)
	ingest := usecase.NewIngestService(store, idgen.NewRandomGenerator(), logger)

	a := &App{
		cfg:     cfg,
		db:      db,
		logger:  logger,
		ingest:  ingest,
		sources: map[string]usecase.Source{},
	}

	if cfg.APISportsKey != "" {
		a.sources["soccer"] = apisports.NewClient(apisports.ClientConfig{
			BaseURL:    cfg.APISportsBaseURL,
			Key:        cfg.APISportsKey,
			Season:     cfg.APISportsSeason,
			League:     cfg.APISportsLeague,
			Timeout:    cfg.APISportsTimeout,
			MaxRetries: cfg.APISportsMaxRetries,
			Logger:     logger,
		})
	}

	if cfg.F1FeedURL != "" {
		fetcher := pagefeed.NewHTTPRowFetcher(nil, cfg.F1FeedURL, cfg.PageFetchDelay, logger)
		a.sources["f1"] = pagefeed.NewRaceSource(fetcher, fmt.Sprintf("f1_%d", cfg.F1Season), cfg.F1Season)
	}

	if cfg.PLFeedURL != "" {
		fetcher := pagefeed.NewHTTPRowFetcher(nil, cfg.PLFeedURL, cfg.PageFetchDelay, logger)
		a.sources["premier-league"] = pagefeed.NewMatchSource(fetcher, cfg.PLTag)
	}

	return a, nil
}

// Run executes one ingestion pass for the named source.
func (a *App) Run(ctx context.Context, sourceName string) (usecase.Summary, error) {
	src, ok := a.sources[sourceName]
	if !ok {
		return usecase.Summary{}, fmt.Errorf("unknown source %q (configured: %s)", sourceName, a.sourceNames())
	}
	return a.ingest.Ingest(ctx, src)
}

func (a *App) sourceNames() string {
	if len(a.sources) == 0 {
		return "none"
	}
	names := ""
	for name := range a.sources {
		if names != "" {
			names += ", "
		}
		names += name
	}
	return names
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
