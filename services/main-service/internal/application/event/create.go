package event

import (
	"context"
	"time"

	"github.com/explorewithme/explore-with-me/services/main-service/internal/domain"
)

type CreateCmd struct {
	InitiatorID int64

	Title             string
	Annotation        string
	Description       string
	Category          string
	Location          domain.Location
	EventDate         time.Time
	ParticipantLimit  int
	RequestModeration bool
}

func (s *Service) Create(ctx context.Context, cmd CreateCmd) (*domain.Event, error) {
	if _, err := s.users.GetByID(ctx, cmd.InitiatorID); err != nil {
		return nil, err
	}
	now := s.clock.Now()
	e, err := domain.NewEvent(cmd.InitiatorID, cmd.Title, cmd.Annotation, cmd.Description,
		cmd.Category, cmd.Location, cmd.EventDate, cmd.ParticipantLimit, cmd.RequestModeration, now)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, e)
}
