package event

import (
	"context"

	zlog "github.com/rs/zerolog/log"

	"github.com/explorewithme/explore-with-me/services/main-service/internal/domain"
)

// GetPublic returns a published event with its unique-visitor view count.
func (s *Service) GetPublic(ctx context.Context, id int64) (*domain.Event, int64, error) {
	key := DetailsCacheKey(id)
	var ev *domain.Event

	if s.cache != nil {
		var cached domain.Event
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("cache get failed")
		} else if found {
			ev = &cached
		}
	}

	if ev == nil {
		e, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, 0, err
		}
		if e.State != domain.StatePublished {
			return nil, 0, domain.ErrNotFound("event not found")
		}
		ev = e

		if s.cache != nil {
			if err := s.cache.Set(ctx, key, ev, s.ttlDetails); err != nil {
				zlog.Warn().Err(err).Str("key", key).Msg("cache set failed")
			}
		}
	}

	views, err := s.viewCounts(ctx, []*domain.Event{ev})
	if err != nil {
		return nil, 0, err
	}
	return ev, views[ev.ID], nil
}

// GetForInitiator returns the initiator's own event regardless of state.
// No caching here: the owner view needs strict consistency.
func (s *Service) GetForInitiator(ctx context.Context, eventID, initiatorID int64) (*domain.Event, int64, error) {
	ev, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, 0, err
	}
	if ev.InitiatorID != initiatorID {
		return nil, 0, domain.ErrForbidden("only the initiator can view this event")
	}
	views, err := s.viewCounts(ctx, []*domain.Event{ev})
	if err != nil {
		return nil, 0, err
	}
	return ev, views[ev.ID], nil
}
