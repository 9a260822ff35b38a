package event

import (
	"context"

	"github.com/explorewithme/explore-with-me/services/main-service/internal/domain"
)

// ListPublic returns published events matching the filter, with view counts
// keyed by event id.
func (s *Service) ListPublic(ctx context.Context, f PublicFilter) ([]*domain.Event, map[int64]int64, error) {
	if f.RangeStart != nil && f.RangeEnd != nil && f.RangeEnd.Before(*f.RangeStart) {
		return nil, nil, domain.ErrValidationMeta("invalid range", map[string]string{
			"range_end": "must not precede range_start",
		})
	}
	items, err := s.repo.ListPublished(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	views, err := s.viewCounts(ctx, items)
	if err != nil {
		return nil, nil, err
	}
	return items, views, nil
}

func (s *Service) ListByInitiator(ctx context.Context, initiatorID int64, from, size int) ([]*domain.Event, map[int64]int64, error) {
	if _, err := s.users.GetByID(ctx, initiatorID); err != nil {
		return nil, nil, err
	}
	items, err := s.repo.ListByInitiator(ctx, initiatorID, from, size)
	if err != nil {
		return nil, nil, err
	}
	views, err := s.viewCounts(ctx, items)
	if err != nil {
		return nil, nil, err
	}
	return items, views, nil
}

// AdminSearch returns events matching the admin filter, any state.
func (s *Service) AdminSearch(ctx context.Context, f AdminFilter) ([]*domain.Event, map[int64]int64, error) {
	if f.RangeStart != nil && f.RangeEnd != nil && f.RangeEnd.Before(*f.RangeStart) {
		return nil, nil, domain.ErrValidationMeta("invalid range", map[string]string{
			"range_end": "must not precede range_start",
		})
	}
	items, err := s.repo.AdminSearch(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	views, err := s.viewCounts(ctx, items)
	if err != nil {
		return nil, nil, err
	}
	return items, views, nil
}
