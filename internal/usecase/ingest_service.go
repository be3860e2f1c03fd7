package usecase

import (
	"context"
	"fmt"

	"github.com/House-of-Events/mike/internal/domain/fixture"
	"github.com/House-of-Events/mike/internal/platform/logging"
)

// Summary reports the outcome of one full ingestion pass. Persisted counts
// only fragments that resulted in a new stored fixture.
type Summary struct {
	Persisted int
	Skipped   int
	Failed    int
}

// SurrogateGenerator mints the storage bookkeeping id attached to each
// insertion attempt.
type SurrogateGenerator interface {
	NewFixtureID() (string, error)
}

// IngestService drives the source -> normalize -> identify -> dedup ->
// persist sequence, isolating each fragment's failure from the rest of the
// batch. Fragments are processed one at a time; there is no retry within a
// run, a subsequent full run is the retry mechanism.
type IngestService struct {
	store  fixture.Store
	ids    SurrogateGenerator
	logger *logging.Logger
}

func NewIngestService(store fixture.Store, ids SurrogateGenerator, logger *logging.Logger) *IngestService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestService{store: store, ids: ids, logger: logger}
}

type outcome int

const (
	outcomeFailed outcome = iota
	outcomeSkipped
	outcomePersisted
)

// Ingest runs one full pass over the source's fragment batch. Only a fatal
// source/setup failure returns an error; per-fragment errors are logged and
// counted in the summary.
func (s *IngestService) Ingest(ctx context.Context, src Source) (Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestService.Ingest")
	defer span.End()

	if src == nil {
		return Summary{}, fmt.Errorf("%w: source is required", ErrFatalSource)
	}
	if s.store == nil {
		return Summary{}, fmt.Errorf("%w: fixture store is required", ErrFatalSource)
	}

	tag := src.Name()
	batch, err := src.FetchBatch(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: fetch batch source=%s: %w", ErrFatalSource, tag, err)
	}

	var sum Summary
	for _, frag := range batch {
		switch s.ingestFragment(ctx, tag, frag) {
		case outcomePersisted:
			sum.Persisted++
		case outcomeSkipped:
			sum.Skipped++
		default:
			sum.Failed++
		}
	}

	s.logger.InfoContext(ctx, "ingestion run finished",
		"source", tag,
		"fragments", len(batch),
		"persisted", sum.Persisted,
		"skipped", sum.Skipped,
		"failed", sum.Failed,
	)
	return sum, nil
}

func (s *IngestService) ingestFragment(ctx context.Context, tag string, frag Fragment) outcome {
	norm, err := Normalize(tag, frag)
	if err != nil {
		s.logger.ErrorContext(ctx, "normalize fragment", "source", tag, "fragment", frag.Ref(), "error", err)
		return outcomeFailed
	}

	fx := norm.Fixture
	fx.MatchID = ResolveIdentity(tag, norm)

	exists, err := s.store.Exists(ctx, fx.MatchID)
	if err != nil {
		// Gate read failed: treat presence as unknown and fall through to
		// the insert, where the unique constraint has the final word.
		s.logger.WarnContext(ctx, "existence check failed, attempting insert",
			"source", tag, "match_id", fx.MatchID, "error", err)
	} else if exists {
		s.logger.DebugContext(ctx, "fixture already present, skipping", "source", tag, "match_id", fx.MatchID)
		return outcomeSkipped
	}

	if s.ids != nil {
		surrogate, err := s.ids.NewFixtureID()
		if err != nil {
			s.logger.WarnContext(ctx, "surrogate id generation failed, store default applies", "error", err)
		} else {
			fx.FixtureID = surrogate
		}
	}

	rowID, err := s.store.Insert(ctx, fx)
	if err != nil {
		s.logger.ErrorContext(ctx, "persist fixture",
			"source", tag,
			"fragment", frag.Ref(),
			"match_id", fx.MatchID,
			"error", fmt.Errorf("%w: %w", ErrPersistence, err),
		)
		return outcomeFailed
	}

	s.logger.InfoContext(ctx, "fixture persisted", "source", tag, "match_id", fx.MatchID, "row_id", rowID)
	return outcomePersisted
}
