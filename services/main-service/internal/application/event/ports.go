package event

import (
	"context"
	"time"

	"github.com/explorewithme/explore-with-me/services/main-service/internal/domain"
)

type Clock interface {
	Now() time.Time
}

type AdminFilter struct {
	Users      []int64
	States     []domain.EventState
	Categories []string
	RangeStart *time.Time
	RangeEnd   *time.Time
	From       int
	Size       int
}

type PublicFilter struct {
	Text       string
	Categories []string
	RangeStart *time.Time
	RangeEnd   *time.Time
	From       int
	Size       int
}

type EventRepo interface {
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error

	ListByInitiator(ctx context.Context, initiatorID int64, from, size int) ([]*domain.Event, error)
	AdminSearch(ctx context.Context, f AdminFilter) ([]*domain.Event, error)
	ListPublished(ctx context.Context, f PublicFilter) ([]*domain.Event, error)
}

type UserRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// ViewRow is one aggregation row echoed back by the stats service.
type ViewRow struct {
	URI  string
	Hits int64
}

// StatsReader answers unique-visitor view counts for a set of event URIs.
type StatsReader interface {
	QueryViews(ctx context.Context, uris []string) ([]ViewRow, error)
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, routingKey string, env any) error
}
