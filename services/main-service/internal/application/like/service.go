package like

import (
	"context"
	"fmt"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/explorewithme/explore-with-me/services/main-service/internal/application/event"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/domain"
)

type Service struct {
	ledger Ledger
	users  UserReader
	cache  Cache
	clock  Clock

	ttlRanking time.Duration
}

func New(ledger Ledger, users UserReader, clock Clock, cache Cache, ttlRanking time.Duration) *Service {
	if ttlRanking == 0 {
		ttlRanking = 15 * time.Second
	}
	return &Service{
		ledger:     ledger,
		users:      users,
		cache:      cache,
		clock:      clock,
		ttlRanking: ttlRanking,
	}
}

// Apply records a like or dislike for (userID, eventID) and refreshes both
// the event's cached counters and the initiator's aggregate rating. A second
// entry for the same pair fails with a conflict; changing your mind is
// Remove followed by Apply.
func (s *Service) Apply(ctx context.Context, userID, eventID int64, isLike bool) (*domain.Like, error) {
	var out *domain.Like

	err := s.ledger.WithTx(ctx, func(tx LedgerTx) error {
		ok, err := tx.UserExists(ctx, userID)
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
		if ev.State != domain.StatePublished {
			return domain.ErrInvalidState("only published events can be liked")
		}

		l := &domain.Like{
			UserID:    userID,
			EventID:   eventID,
			IsLike:    isLike,
			ClickedOn: s.clock.Now().UTC(),
		}
		out, err = tx.InsertLike(ctx, l)
		if err != nil {
			return err
		}

		if err := tx.ApplyLikeDelta(ctx, eventID, out.Polarity(), 1); err != nil {
			return err
		}
		return s.recomputeInitiatorRating(ctx, tx, ev.InitiatorID)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateRanking(ctx)
	s.invalidateEventDetails(ctx, eventID)
	return out, nil
}

// Remove deletes the (userID, eventID) ledger entry and undoes its
// contribution to the cached counters.
func (s *Service) Remove(ctx context.Context, userID, eventID int64) error {
	err := s.ledger.WithTx(ctx, func(tx LedgerTx) error {
		ok, err := tx.UserExists(ctx, userID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound("user not found")
		}

		l, err := tx.GetLike(ctx, userID, eventID)
		if err != nil {
			return err
		}

		ev, err := tx.GetEvent(ctx, eventID)
		if err != nil {
			return err
		}

		if err := tx.DeleteLike(ctx, l.ID); err != nil {
			return err
		}
		if err := tx.ApplyLikeDelta(ctx, eventID, -l.Polarity(), -1); err != nil {
			return err
		}
		return s.recomputeInitiatorRating(ctx, tx, ev.InitiatorID)
	})
	if err != nil {
		return err
	}

	s.invalidateRanking(ctx)
	s.invalidateEventDetails(ctx, eventID)
	return nil
}

// recomputeInitiatorRating derives the initiator's rating from scratch on
// every like/unlike: 100 * sum(rating) / sum(number_of_likes) over the
// initiator's published events with at least one like, 0 when none qualify.
// The result is a net-approval percentage in [-100, 100].
func (s *Service) recomputeInitiatorRating(ctx context.Context, tx LedgerTx, initiatorID int64) error {
	ratingSum, likeSum, err := tx.InitiatorAggregates(ctx, initiatorID)
	if err != nil {
		return err
	}
	rating := 0.0
	if likeSum > 0 {
		rating = float64(ratingSum) / float64(likeSum) * 100
	}
	return tx.SetUserRating(ctx, initiatorID, rating)
}

// EventLikers lists users who liked or disliked the event.
func (s *Service) EventLikers(ctx context.Context, eventID int64, from, size int) ([]*domain.User, error) {
	return s.ledger.ListEventLikers(ctx, eventID, from, size)
}

// UserLikes lists a user's ledger entries, optionally restricted to likes or
// dislikes.
func (s *Service) UserLikes(ctx context.Context, userID int64, isLike *bool, from, size int) ([]*domain.Like, error) {
	return s.ledger.ListUserLikes(ctx, userID, isLike, from, size)
}

// InitiatorsByRating returns users ordered by aggregate rating. Ties break
// on ascending user id so pagination stays stable.
func (s *Service) InitiatorsByRating(ctx context.Context, from, size int, asc bool) ([]*domain.User, error) {
	key := rankingCacheKey(from, size, asc)

	if s.cache != nil {
		var cached []*domain.User
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("cache get failed")
		} else if found {
			return cached, nil
		}
	}

	users, err := s.users.ListByRating(ctx, from, size, asc)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, users, s.ttlRanking); err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}
	return users, nil
}

func rankingCacheKey(from, size int, asc bool) string {
	return fmt.Sprintf("initiators:rating:%d:%d:%t", from, size, asc)
}

// invalidateRanking is best-effort: the ranking cache also carries a short
// TTL, so a missed delete only delays freshness.
func (s *Service) invalidateRanking(ctx context.Context) {
	if s.cache == nil {
		return
	}
	for _, asc := range []bool{true, false} {
		key := rankingCacheKey(0, defaultRankingSize, asc)
		if err := s.cache.Delete(ctx, key); err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("cache invalidate failed")
		}
	}
}

// invalidateEventDetails drops the cached public details of the event: a
// like or unlike changes the counters that entry carries.
func (s *Service) invalidateEventDetails(ctx context.Context, eventID int64) {
	if s.cache == nil {
		return
	}
	key := event.DetailsCacheKey(eventID)
	if err := s.cache.Delete(ctx, key); err != nil {
		zlog.Warn().Err(err).Str("key", key).Msg("cache invalidate failed")
	}
}

const defaultRankingSize = 10
