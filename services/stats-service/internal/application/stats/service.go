package stats

import (
	"context"
	"time"

	"github.com/explorewithme/explore-with-me/services/stats-service/internal/domain"
)

type Clock interface {
	Now() time.Time
}

type HitRepo interface {
	Insert(ctx context.Context, h *domain.Hit) (*domain.Hit, error)

	// Aggregate groups hits with timestamp in [start, end] by (app, uri),
	// optionally restricted to a uri set, counting rows or distinct ips.
	// Rows come back sorted descending by the count.
	Aggregate(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]domain.ViewStats, error)
}

type Service struct {
	repo  HitRepo
	clock Clock
}

func New(repo HitRepo, clock Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

// RecordHit appends one hit. No deduplication: every hit counts toward the
// total metric, while the unique metric collapses by ip at query time.
func (s *Service) RecordHit(ctx context.Context, app, uri, ip string, ts time.Time) (*domain.Hit, error) {
	h, err := domain.NewHit(app, uri, ip, ts)
	if err != nil {
		return nil, err
	}
	return s.repo.Insert(ctx, h)
}

// QueryStats answers a ranked aggregation over [start, end]. Reads are
// idempotent against an unchanged hit log.
func (s *Service) QueryStats(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]domain.ViewStats, error) {
	if start.IsZero() || end.IsZero() {
		return nil, domain.ErrValidation("start and end are both required")
	}
	if end.Before(start) {
		return nil, domain.ErrValidationMeta("invalid range", map[string]string{
			"end": "must not precede start",
		})
	}
	if start.After(s.clock.Now()) {
		return nil, domain.ErrValidationMeta("invalid range", map[string]string{
			"start": "must not be in the future",
		})
	}
	return s.repo.Aggregate(ctx, start.UTC(), end.UTC(), uris, unique)
}
