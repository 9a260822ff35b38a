package request

import (
	"context"

	"github.com/explorewithme/explore-with-me/services/main-service/internal/domain"
)

type Service struct {
	repo  Repo
	clock Clock
}

func New(repo Repo, clock Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

// Create files a participation request. Moderation-free or unlimited events
// confirm immediately; the confirmed counter moves under the same
// transaction with a limit guard, so a full event yields a conflict instead
// of overbooking.
func (s *Service) Create(ctx context.Context, requesterID, eventID int64) (*domain.ParticipationRequest, error) {
	var out *domain.ParticipationRequest

	err := s.repo.WithTx(ctx, func(tx Tx) error {
		ok, err := tx.UserExists(ctx, requesterID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound("user not found")
		}

		ev, err := tx.GetEvent(ctx, eventID)
		if err != nil {
			return err
		}
		if ev.InitiatorID == requesterID {
			return domain.ErrConflict("initiator cannot request own event")
		}
		if ev.State != domain.StatePublished {
			return domain.ErrInvalidState("event is not published")
		}
		if ev.ParticipantLimit != 0 && ev.ConfirmedRequests >= ev.ParticipantLimit {
			return domain.ErrConflict("participant limit reached")
		}

		status := domain.RequestPending
		if !ev.RequestModeration || ev.ParticipantLimit == 0 {
			status = domain.RequestConfirmed
		}

		r := &domain.ParticipationRequest{
			EventID:     eventID,
			RequesterID: requesterID,
			Status:      status,
			Created:     s.clock.Now().UTC(),
		}
		out, err = tx.Insert(ctx, r)
		if err != nil {
			return err
		}

		if status == domain.RequestConfirmed && ev.ParticipantLimit != 0 {
			fit, err := tx.AdjustConfirmed(ctx, eventID, 1)
			if err != nil {
				return err
			}
			if !fit {
				return domain.ErrConflict("participant limit reached")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Cancel sets the requester's own request to CANCELED, freeing a confirmed
// slot when one was held.
func (s *Service) Cancel(ctx context.Context, requesterID, requestID int64) (*domain.ParticipationRequest, error) {
	var out *domain.ParticipationRequest

	err := s.repo.WithTx(ctx, func(tx Tx) error {
		r, err := tx.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if r.RequesterID != requesterID {
			return domain.ErrForbidden("not your request")
		}
		if r.Status == domain.RequestCanceled {
			return domain.ErrInvalidState("request already canceled")
		}

		wasConfirmed := r.Status == domain.RequestConfirmed
		if err := tx.SetStatus(ctx, r.ID, domain.RequestCanceled); err != nil {
			return err
		}
		if wasConfirmed {
			ev, err := tx.GetEvent(ctx, r.EventID)
			if err != nil {
				return err
			}
			if ev.ParticipantLimit != 0 {
				if _, err := tx.AdjustConfirmed(ctx, r.EventID, -1); err != nil {
					return err
				}
			}
		}
		r.Status = domain.RequestCanceled
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Decide confirms or rejects a pending request; only the event initiator may
// decide, and confirmation respects the participant limit.
func (s *Service) Decide(ctx context.Context, initiatorID, eventID, requestID int64, status domain.RequestStatus) (*domain.ParticipationRequest, error) {
	if status != domain.RequestConfirmed && status != domain.RequestRejected {
		return nil, domain.ErrValidation("status must be CONFIRMED or REJECTED")
	}

	var out *domain.ParticipationRequest

	err := s.repo.WithTx(ctx, func(tx Tx) error {
		ev, err := tx.GetEvent(ctx, eventID)
		if err != nil {
			return err
		}
		if ev.InitiatorID != initiatorID {
			return domain.ErrForbidden("only the initiator can decide requests")
		}

		r, err := tx.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if r.EventID != eventID {
			return domain.ErrNotFound("request not found for event")
		}
		if r.Status != domain.RequestPending {
			return domain.ErrInvalidState("request is not pending")
		}

		if status == domain.RequestConfirmed && ev.ParticipantLimit != 0 {
			fit, err := tx.AdjustConfirmed(ctx, eventID, 1)
			if err != nil {
				return err
			}
			if !fit {
				return domain.ErrConflict("participant limit reached")
			}
		}
		if err := tx.SetStatus(ctx, r.ID, status); err != nil {
			return err
		}
		r.Status = status
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) ListMine(ctx context.Context, requesterID int64) ([]*domain.ParticipationRequest, error) {
	return s.repo.ListByRequester(ctx, requesterID)
}

// ListForEvent lists requests to the initiator's own event.
func (s *Service) ListForEvent(ctx context.Context, initiatorID, eventID int64) ([]*domain.ParticipationRequest, error) {
	ev, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev.InitiatorID != initiatorID {
		return nil, domain.ErrForbidden("only the initiator can list requests")
	}
	return s.repo.ListByEvent(ctx, eventID)
}
