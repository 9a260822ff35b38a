package event

import (
	"strconv"
	"time"
)

type Service struct {
	repo  EventRepo
	users UserRepo
	cache Cache
	stats StatsReader
	pub   EventPublisher
	clock Clock

	ttlDetails time.Duration
}

func New(
	repo EventRepo,
	users UserRepo,
	clock Clock,
	pub EventPublisher,
	cache Cache,
	stats StatsReader,
	ttlDetails time.Duration,
) *Service {
	if ttlDetails == 0 {
		ttlDetails = 5 * time.Minute
	}

	return &Service{
		repo:       repo,
		users:      users,
		cache:      cache,
		stats:      stats,
		pub:        pub,
		clock:      clock,
		ttlDetails: ttlDetails,
	}
}

// DetailsCacheKey names the cached details entry for an event. The like
// engine deletes this key too: likes change the event's cached counters.
func DetailsCacheKey(id int64) string {
	return "event:details:" + strconv.FormatInt(id, 10)
}
