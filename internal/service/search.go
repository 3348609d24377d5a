package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mkarpenko/trademark-registry/backend/internal/domain"
	"github.com/mkarpenko/trademark-registry/backend/internal/metrics"
	"github.com/mkarpenko/trademark-registry/backend/internal/repo"
)

// DefaultSimilarity is the fuzzy-match threshold used when the caller does
// not supply one.
const DefaultSimilarity = 0.5

// SearchRequest selects between exact and fuzzy title lookup.
// Similarity is only consulted when ExactMatch is false and must lie in the
// open interval (0, 1).
type SearchRequest struct {
	Title      string
	ExactMatch bool
	Similarity float64
}

// SearchService looks up trademarks by title.
type SearchService struct {
	log     *slog.Logger
	repo    repo.TrademarkRepo
	metrics *metrics.Metrics
}

// NewSearchService constructs a SearchService. metrics may be nil.
func NewSearchService(log *slog.Logger, r repo.TrademarkRepo, m *metrics.Metrics) *SearchService {
	return &SearchService{log: log, repo: r, metrics: m}
}

// Search returns the trademarks matching the request.
//
// Exact mode returns a zero-or-one element slice: equality on title never
// yields more. Fuzzy mode returns every record whose trigram similarity to
// the title strictly exceeds the threshold, in unspecified order.
//
// An empty result is a success — the returned slice is non-nil and the error
// is nil. domain.ErrStorage is the only failure; its cause is logged here
// and not propagated. A similarity outside (0, 1) yields
// domain.ErrValidation, though handlers are expected to reject that earlier.
func (s *SearchService) Search(ctx context.Context, req SearchRequest) ([]domain.Trademark, error) {
	if req.ExactMatch {
		return s.findExact(ctx, req.Title)
	}
	return s.findSimilar(ctx, req.Title, req.Similarity)
}

func (s *SearchService) findExact(ctx context.Context, title string) ([]domain.Trademark, error) {
	tm, err := s.repo.FindExact(ctx, title)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.Search("exact", "empty")
			return []domain.Trademark{}, nil
		}
		s.log.ErrorContext(ctx, "search: exact lookup failed", "title", title, "error", err)
		s.metrics.Search("exact", "error")
		return nil, domain.ErrStorage
	}

	s.metrics.Search("exact", "hit")
	return []domain.Trademark{tm}, nil
}

func (s *SearchService) findSimilar(ctx context.Context, title string, similarity float64) ([]domain.Trademark, error) {
	if similarity <= 0 || similarity >= 1 {
		return nil, fmt.Errorf("%w: similarity must be in (0, 1), got %v",
			domain.ErrValidation, similarity)
	}

	tms, err := s.repo.FindSimilar(ctx, title, similarity)
	if err != nil {
		s.log.ErrorContext(ctx, "search: similarity lookup failed", "title", title, "error", err)
		s.metrics.Search("similar", "error")
		return nil, domain.ErrStorage
	}

	if tms == nil {
		tms = []domain.Trademark{}
	}
	s.metrics.Search("similar", "ok")
	return tms, nil
}
