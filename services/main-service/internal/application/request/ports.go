package request

import (
	"context"
	"time"

	"github.com/explorewithme/explore-with-me/services/main-service/internal/domain"
)

type Clock interface {
	Now() time.Time
}

type Repo interface {
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	GetEvent(ctx context.Context, id int64) (*domain.Event, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]*domain.ParticipationRequest, error)
	ListByEvent(ctx context.Context, eventID int64) ([]*domain.ParticipationRequest, error)
}

type Tx interface {
	UserExists(ctx context.Context, id int64) (bool, error)
	GetEvent(ctx context.Context, id int64) (*domain.Event, error)

	Insert(ctx context.Context, r *domain.ParticipationRequest) (*domain.ParticipationRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.ParticipationRequest, error)
	SetStatus(ctx context.Context, id int64, status domain.RequestStatus) error

	// AdjustConfirmed moves the event's confirmed counter by delta. For a
	// positive delta the update is guarded by the participant limit and
	// reports false when the event is already full.
	AdjustConfirmed(ctx context.Context, eventID int64, delta int) (bool, error)
}
