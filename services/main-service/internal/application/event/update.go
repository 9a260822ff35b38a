package event

import (
	"context"

	zlog "github.com/rs/zerolog/log"

	"github.com/explorewithme/explore-with-me/services/main-service/internal/domain"
)

type UpdateCmd struct {
	InitiatorID int64
	EventID     int64

	Fields      domain.EventUpdate
	StateAction *domain.StateAction
}

// Update applies an initiator's edit, optionally with a SEND_TO_REVIEW or
// CANCEL_REVIEW transition.
func (s *Service) Update(ctx context.Context, cmd UpdateCmd) (*domain.Event, error) {
	ev, err := s.repo.GetByID(ctx, cmd.EventID)
	if err != nil {
		return nil, err
	}
	if ev.InitiatorID != cmd.InitiatorID {
		return nil, domain.ErrForbidden("only the initiator can edit this event")
	}
	if cmd.StateAction != nil && !cmd.StateAction.InitiatorAction() {
		return nil, domain.ErrForbidden("action " + string(*cmd.StateAction) + " requires admin rights")
	}

	if err := ev.ApplyInitiatorUpdate(cmd.Fields, cmd.StateAction, s.clock.Now()); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, ev); err != nil {
		return nil, err
	}

	if s.cache != nil {
		key := DetailsCacheKey(ev.ID)
		if err := s.cache.Delete(ctx, key); err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("cache invalidate failed")
		}
	}

	return ev, nil
}
