package stats

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/explorewithme/explore-with-me/services/stats-service/internal/domain"
)

type fakeClock struct{ now time.Time }

func (c fakeClock) Now() time.Time { return c.now }

// memHitRepo keeps the hit log in memory and aggregates the same way the
// SQL repo does: group by (app, uri), count rows or distinct ips, sort by
// count descending.
type memHitRepo struct {
	hits   []domain.Hit
	nextID int64
}

func (r *memHitRepo) Insert(_ context.Context, h *domain.Hit) (*domain.Hit, error) {
	r.nextID++
	h.ID = r.nextID
	r.hits = append(r.hits, *h)
	return h, nil
}

func (r *memHitRepo) Aggregate(_ context.Context, start, end time.Time, uris []string, unique bool) ([]domain.ViewStats, error) {
	type key struct{ app, uri string }
	groups := map[key]map[string]int64{}

	allowed := map[string]bool{}
	for _, u := range uris {
		allowed[u] = true
	}

	for _, h := range r.hits {
		if h.Timestamp.Before(start) || h.Timestamp.After(end) {
			continue
		}
		if len(uris) > 0 && !allowed[h.URI] {
			continue
		}
		k := key{h.App, h.URI}
		if groups[k] == nil {
			groups[k] = map[string]int64{}
		}
		groups[k][h.IP]++
	}

	var out []domain.ViewStats
	for k, ips := range groups {
		var n int64
		if unique {
			n = int64(len(ips))
		} else {
			for _, c := range ips {
				n += c
			}
		}
		out = append(out, domain.ViewStats{App: k.app, URI: k.uri, Hits: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hits > out[j].Hits })
	return out, nil
}

func newService(now time.Time) (*Service, *memHitRepo) {
	repo := &memHitRepo{}
	return New(repo, fakeClock{now: now}), repo
}

func record(t *testing.T, svc *Service, uri, ip string, ts time.Time) {
	t.Helper()
	_, err := svc.RecordHit(context.Background(), "ewm-main-service", uri, ip, ts)
	require.NoError(t, err)
}

func TestRecordHit(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, repo := newService(now)

	h, err := svc.RecordHit(context.Background(), "ewm-main-service", "/events/5", "10.0.0.1", now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), h.ID)
	assert.Len(t, repo.hits, 1)

	t.Run("rejects foreign uri", func(t *testing.T) {
		_, err := svc.RecordHit(context.Background(), "ewm-main-service", "/users/5", "10.0.0.1", now)
		require.Error(t, err)
		var appErr *domain.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, domain.CodeValidation, appErr.Code)
	})
}

func TestQueryStatsValidation(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, _ := newService(now)
	ctx := context.Background()

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{"missing start", time.Time{}, now},
		{"missing end", now.Add(-time.Hour), time.Time{}},
		{"end before start", now, now.Add(-time.Hour)},
		{"start in future", now.Add(time.Hour), now.Add(2 * time.Hour)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.QueryStats(ctx, tc.start, tc.end, nil, false)
			require.Error(t, err)
			var appErr *domain.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, domain.CodeValidation, appErr.Code)
		})
	}
}

func TestQueryStatsCounting(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, _ := newService(now)
	ctx := context.Background()

	// three hits on one uri, two distinct ips
	record(t, svc, "/events/1", "10.0.0.1", now.Add(-3*time.Hour))
	record(t, svc, "/events/1", "10.0.0.1", now.Add(-2*time.Hour))
	record(t, svc, "/events/1", "10.0.0.2", now.Add(-time.Hour))
	// one hit on another uri
	record(t, svc, "/events/2", "10.0.0.3", now.Add(-time.Hour))

	start := now.Add(-24 * time.Hour)

	t.Run("total counts every hit", func(t *testing.T) {
		out, err := svc.QueryStats(ctx, start, now, nil, false)
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "/events/1", out[0].URI)
		assert.Equal(t, int64(3), out[0].Hits)
		assert.Equal(t, int64(1), out[1].Hits)
	})

	t.Run("unique collapses by ip", func(t *testing.T) {
		out, err := svc.QueryStats(ctx, start, now, nil, true)
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "/events/1", out[0].URI)
		assert.Equal(t, int64(2), out[0].Hits)
	})

	t.Run("uri filter", func(t *testing.T) {
		out, err := svc.QueryStats(ctx, start, now, []string{"/events/2"}, false)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "/events/2", out[0].URI)
	})

	t.Run("window excludes outside hits", func(t *testing.T) {
		out, err := svc.QueryStats(ctx, now.Add(-90*time.Minute), now, nil, false)
		require.NoError(t, err)
		require.Len(t, out, 2)
		for _, vs := range out {
			assert.Equal(t, int64(1), vs.Hits)
		}
	})

	t.Run("reads are idempotent", func(t *testing.T) {
		a, err := svc.QueryStats(ctx, start, now, nil, false)
		require.NoError(t, err)
		b, err := svc.QueryStats(ctx, start, now, nil, false)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}
