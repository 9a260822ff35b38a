package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/explorewithme/explore-with-me/services/stats-service/internal/application/stats"
	"github.com/explorewithme/explore-with-me/services/stats-service/internal/domain"
)

type fakeClock struct{ now time.Time }

func (c fakeClock) Now() time.Time { return c.now }

type stubRepo struct {
	inserted  []domain.Hit
	rows      []domain.ViewStats
	gotUnique bool
}

func (r *stubRepo) Insert(_ context.Context, h *domain.Hit) (*domain.Hit, error) {
	h.ID = int64(len(r.inserted) + 1)
	r.inserted = append(r.inserted, *h)
	return h, nil
}

func (r *stubRepo) Aggregate(_ context.Context, _ time.Time, _ time.Time, _ []string, unique bool) ([]domain.ViewStats, error) {
	r.gotUnique = unique
	return r.rows, nil
}

func newHandler(repo *stubRepo, now time.Time) *StatsHandler {
	return NewStatsHandler(stats.New(repo, fakeClock{now: now}))
}

func TestRecordHitEndpoint(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("created", func(t *testing.T) {
		repo := &stubRepo{}
		h := newHandler(repo, now)

		body := `{"app":"ewm-main-service","uri":"/events/5","ip":"10.0.0.1","timestamp":"2026-03-10 11:00:00"}`
		req := httptest.NewRequest(http.MethodPost, "/hit", strings.NewReader(body))
		w := httptest.NewRecorder()
		h.RecordHit(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		var resp struct {
			ID  int64  `json:"id"`
			URI string `json:"uri"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "/events/5", resp.URI)
		assert.Len(t, repo.inserted, 1)
	})

	cases := []struct {
		name string
		body string
	}{
		{"bad json", `{`},
		{"unknown field", `{"app":"a","uri":"/events","ip":"10.0.0.1","timestamp":"2026-03-10 11:00:00","x":1}`},
		{"bad timestamp", `{"app":"a","uri":"/events","ip":"10.0.0.1","timestamp":"10-03-2026"}`},
		{"bad ip", `{"app":"a","uri":"/events","ip":"nope","timestamp":"2026-03-10 11:00:00"}`},
		{"foreign uri", `{"app":"a","uri":"/users/1","ip":"10.0.0.1","timestamp":"2026-03-10 11:00:00"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHandler(&stubRepo{}, now)
			req := httptest.NewRequest(http.MethodPost, "/hit", strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			h.RecordHit(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestQueryStatsEndpoint(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("bare array body", func(t *testing.T) {
		repo := &stubRepo{rows: []domain.ViewStats{
			{App: "ewm-main-service", URI: "/events/1", Hits: 7},
			{App: "ewm-main-service", URI: "/events/2", Hits: 3},
		}}
		h := newHandler(repo, now)

		req := httptest.NewRequest(http.MethodGet,
			"/stats?start=2026-03-09+00:00:00&end=2026-03-10+00:00:00&uris=/events/1,/events/2", nil)
		w := httptest.NewRecorder()
		h.QueryStats(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var rows []struct {
			App  string `json:"app"`
			URI  string `json:"uri"`
			Hits int64  `json:"hits"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
		require.Len(t, rows, 2)
		assert.Equal(t, int64(7), rows[0].Hits)
	})

	t.Run("empty result is empty array", func(t *testing.T) {
		h := newHandler(&stubRepo{}, now)
		req := httptest.NewRequest(http.MethodGet,
			"/stats?start=2026-03-09+00:00:00&end=2026-03-10+00:00:00", nil)
		w := httptest.NewRecorder()
		h.QueryStats(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
	})

	t.Run("missing bounds", func(t *testing.T) {
		h := newHandler(&stubRepo{}, now)
		req := httptest.NewRequest(http.MethodGet, "/stats?start=2026-03-09+00:00:00", nil)
		w := httptest.NewRecorder()
		h.QueryStats(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unique accepts bool spellings", func(t *testing.T) {
		for _, raw := range []string{"true", "TRUE", "1"} {
			repo := &stubRepo{}
			h := newHandler(repo, now)
			req := httptest.NewRequest(http.MethodGet,
				"/stats?start=2026-03-09+00:00:00&end=2026-03-10+00:00:00&unique="+raw, nil)
			w := httptest.NewRecorder()
			h.QueryStats(w, req)

			require.Equal(t, http.StatusOK, w.Code, raw)
			assert.True(t, repo.gotUnique, raw)
		}
	})

	t.Run("garbage unique is rejected", func(t *testing.T) {
		repo := &stubRepo{}
		h := newHandler(repo, now)
		req := httptest.NewRequest(http.MethodGet,
			"/stats?start=2026-03-09+00:00:00&end=2026-03-10+00:00:00&unique=yes", nil)
		w := httptest.NewRecorder()
		h.QueryStats(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, repo.gotUnique)
	})

	t.Run("reversed range", func(t *testing.T) {
		h := newHandler(&stubRepo{}, now)
		req := httptest.NewRequest(http.MethodGet,
			"/stats?start=2026-03-10+00:00:00&end=2026-03-09+00:00:00", nil)
		w := httptest.NewRecorder()
		h.QueryStats(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
