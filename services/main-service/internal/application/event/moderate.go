package event

import (
	"context"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/explorewithme/explore-with-me/services/main-service/internal/domain"
)

type ModerateCmd struct {
	EventID int64

	Fields      domain.EventUpdate
	StateAction *domain.StateAction
}

// Moderate applies an admin edit, optionally with a PUBLISH_EVENT or
// REJECT_EVENT transition.
func (s *Service) Moderate(ctx context.Context, cmd ModerateCmd) (*domain.Event, error) {
	ev, err := s.repo.GetByID(ctx, cmd.EventID)
	if err != nil {
		return nil, err
	}
	if cmd.StateAction != nil && !cmd.StateAction.AdminAction() {
		return nil, domain.ErrValidation("unknown admin action " + string(*cmd.StateAction))
	}

	now := s.clock.Now().UTC()
	if err := ev.ApplyAdminUpdate(cmd.Fields, cmd.StateAction, now); err != nil {
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

	// --- MQ domain event (best-effort) ---
	if s.pub != nil && cmd.StateAction != nil {
		rk := ""
		switch *cmd.StateAction {
		case domain.ActionPublishEvent:
			rk = "event.published"
		case domain.ActionRejectEvent:
			rk = "event.rejected"
		}
		if rk != "" {
			env := DomainEventEnvelope[ModerationPayload]{
				Version:    EventVersion,
				Producer:   EventProducer,
				MessageID:  uuid.NewString(),
				TraceID:    TraceIDFromContext(ctx),
				OccurredAt: now,
				Payload: ModerationPayload{
					EventID:     ev.ID,
					InitiatorID: ev.InitiatorID,
					Category:    ev.Category,
					EventDate:   ev.EventDate,
					State:       string(ev.State),
				},
			}
			if err := s.pub.PublishEvent(ctx, rk, env); err != nil {
				zlog.Error().
					Err(err).
					Str("rk", rk).
					Int64("event_id", ev.ID).
					Msg("publish domain event failed")
			}
		}
	}

	return ev, nil
}
