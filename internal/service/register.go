// Package service contains the business logic for the trademark registry.
// Services enforce the workflow semantics and translate storage failures
// into domain outcomes. No SQL lives here — services depend on the repo
// interface, not its implementation.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mkarpenko/trademark-registry/backend/internal/domain"
	"github.com/mkarpenko/trademark-registry/backend/internal/metrics"
	"github.com/mkarpenko/trademark-registry/backend/internal/repo"
)

// RegisterRequest carries the fields of a registration candidate.
// Title must be non-empty; the handler validates that before calling.
type RegisterRequest struct {
	Title             string
	Description       *string
	ApplicationNumber *string
	ApplicationDate   *time.Time
	RegistrationDate  *time.Time
	ExpiryDate        *time.Time
}

// RegisterService registers new trademarks while preventing duplicate titles.
type RegisterService struct {
	log     *slog.Logger
	repo    repo.TrademarkRepo
	metrics *metrics.Metrics
}

// NewRegisterService constructs a RegisterService. metrics may be nil.
func NewRegisterService(log *slog.Logger, r repo.TrademarkRepo, m *metrics.Metrics) *RegisterService {
	return &RegisterService{log: log, repo: r, metrics: m}
}

// Register creates a Trademark from the request and persists it unless the
// title is already taken. The returned error is one of:
//
//   - nil: the trademark was created; the returned value is the new record.
//   - domain.ErrAlreadyRegistered: a record with this title exists; nothing
//     was inserted. Callers must not treat this as a failure.
//   - domain.ErrStorage: a database call failed. The cause is logged here
//     and not propagated.
//
// Uniqueness is checked application-level first (FindExact), but the unique
// index on title is the backstop: if a concurrent registration wins the race
// between the check and the insert, the constraint violation is reported as
// the same already-registered outcome.
func (s *RegisterService) Register(ctx context.Context, req RegisterRequest) (domain.Trademark, error) {
	tm := domain.NewTrademark(
		req.Title,
		req.Description,
		req.ApplicationNumber,
		req.ApplicationDate,
		req.RegistrationDate,
		req.ExpiryDate,
	)

	_, err := s.repo.FindExact(ctx, tm.Title)
	switch {
	case err == nil:
		s.metrics.Registration("already_registered")
		return domain.Trademark{}, domain.ErrAlreadyRegistered
	case errors.Is(err, domain.ErrNotFound):
		// No existing record — proceed to insert.
	default:
		s.log.ErrorContext(ctx, "register: duplicate check failed", "title", tm.Title, "error", err)
		s.metrics.Registration("error")
		return domain.Trademark{}, domain.ErrStorage
	}

	if err := s.repo.Create(ctx, tm); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			// Lost the race to a concurrent registration of the same title.
			s.metrics.Registration("already_registered")
			return domain.Trademark{}, domain.ErrAlreadyRegistered
		}
		s.log.ErrorContext(ctx, "register: insert failed", "title", tm.Title, "error", err)
		s.metrics.Registration("error")
		return domain.Trademark{}, domain.ErrStorage
	}

	s.metrics.Registration("success")
	return tm, nil
}
