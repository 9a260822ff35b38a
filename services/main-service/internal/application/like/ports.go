package like

import (
	"context"
	"time"

	"github.com/explorewithme/explore-with-me/services/main-service/internal/domain"
)

type Clock interface {
	Now() time.Time
}

// Ledger is the transactional boundary for like/unlike operations. Each
// Apply/Remove call runs inside exactly one transaction.
type Ledger interface {
	WithTx(ctx context.Context, fn func(tx LedgerTx) error) error

	ListEventLikers(ctx context.Context, eventID int64, from, size int) ([]*domain.User, error)
	ListUserLikes(ctx context.Context, userID int64, isLike *bool, from, size int) ([]*domain.Like, error)
}

// LedgerTx exposes the per-transaction operations the engine needs.
type LedgerTx interface {
	UserExists(ctx context.Context, id int64) (bool, error)
	GetEvent(ctx context.Context, id int64) (*domain.Event, error)

	InsertLike(ctx context.Context, l *domain.Like) (*domain.Like, error)
	GetLike(ctx context.Context, userID, eventID int64) (*domain.Like, error)
	DeleteLike(ctx context.Context, id int64) error

	// ApplyLikeDelta adjusts the event's cached rating and like count as a
	// single atomic increment at the storage layer.
	ApplyLikeDelta(ctx context.Context, eventID, ratingDelta, likesDelta int64) error

	// InitiatorAggregates sums rating and number_of_likes over the
	// initiator's published events that have at least one like.
	InitiatorAggregates(ctx context.Context, initiatorID int64) (ratingSum, likeSum int64, err error)

	SetUserRating(ctx context.Context, userID int64, rating float64) error
}

// UserReader serves the initiator ranking queries.
type UserReader interface {
	ListByRating(ctx context.Context, from, size int, asc bool) ([]*domain.User, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
