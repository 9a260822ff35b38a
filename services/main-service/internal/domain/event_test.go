package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/explorewithme/explore-with-me/services/main-service/internal/domain"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	tt, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return tt.UTC()
}

func pendingEvent(t *testing.T, now time.Time) *domain.Event {
	t.Helper()
	e, err := domain.NewEvent(
		1, "Go meetup", "Monthly city Go meetup with talks", "Two talks and open networking afterwards",
		"meetup", domain.Location{Lat: 55.75, Lon: 37.62},
		now.Add(48*time.Hour), 10, true, now,
	)
	require.NoError(t, err)
	return e
}

func action(a domain.StateAction) *domain.StateAction { return &a }

func TestNewEvent_Validation(t *testing.T) {
	now := mustTime(t, "2025-06-01T10:00:00Z")

	t.Run("starts_pending", func(t *testing.T) {
		e := pendingEvent(t, now)
		assert.Equal(t, domain.StatePending, e.State)
		assert.Nil(t, e.PublishedOn)
	})

	t.Run("date_too_soon", func(t *testing.T) {
		_, err := domain.NewEvent(1, "t", "a long enough annotation", "a long enough description",
			"cat", domain.Location{}, now.Add(30*time.Minute), 0, false, now)
		assert.Error(t, err)
	})

	t.Run("date_in_past", func(t *testing.T) {
		_, err := domain.NewEvent(1, "t", "a long enough annotation", "a long enough description",
			"cat", domain.Location{}, now.Add(-time.Hour), 0, false, now)
		assert.Error(t, err)
	})
}

func TestAdminModeration(t *testing.T) {
	now := mustTime(t, "2025-06-01T10:00:00Z")

	t.Run("publish_sets_published_on", func(t *testing.T) {
		e := pendingEvent(t, now)
		err := e.ApplyAdminUpdate(domain.EventUpdate{}, action(domain.ActionPublishEvent), now)
		require.NoError(t, err)
		assert.Equal(t, domain.StatePublished, e.State)
		require.NotNil(t, e.PublishedOn)
		assert.Equal(t, now, *e.PublishedOn)
	})

	t.Run("reject_cancels", func(t *testing.T) {
		e := pendingEvent(t, now)
		err := e.ApplyAdminUpdate(domain.EventUpdate{}, action(domain.ActionRejectEvent), now)
		require.NoError(t, err)
		assert.Equal(t, domain.StateCanceled, e.State)
	})

	t.Run("fields_only_stays_pending", func(t *testing.T) {
		e := pendingEvent(t, now)
		title := "Go meetup, June edition"
		err := e.ApplyAdminUpdate(domain.EventUpdate{Title: &title}, nil, now)
		require.NoError(t, err)
		assert.Equal(t, domain.StatePending, e.State)
		assert.Equal(t, title, e.Title)
	})

	t.Run("published_is_immutable", func(t *testing.T) {
		e := pendingEvent(t, now)
		require.NoError(t, e.ApplyAdminUpdate(domain.EventUpdate{}, action(domain.ActionPublishEvent), now))

		err := e.ApplyAdminUpdate(domain.EventUpdate{}, action(domain.ActionRejectEvent), now)
		assert.ErrorContains(t, err, "cannot modify published event")
	})

	t.Run("canceled_not_moderatable", func(t *testing.T) {
		e := pendingEvent(t, now)
		require.NoError(t, e.ApplyAdminUpdate(domain.EventUpdate{}, action(domain.ActionRejectEvent), now))

		err := e.ApplyAdminUpdate(domain.EventUpdate{}, action(domain.ActionPublishEvent), now)
		assert.ErrorContains(t, err, "not in PENDING state")
	})

	t.Run("admin_date_lead_one_hour", func(t *testing.T) {
		e := pendingEvent(t, now)
		tooSoon := now.Add(30 * time.Minute)
		err := e.ApplyAdminUpdate(domain.EventUpdate{EventDate: &tooSoon}, nil, now)
		assert.Error(t, err)

		ok := now.Add(90 * time.Minute)
		err = e.ApplyAdminUpdate(domain.EventUpdate{EventDate: &ok}, nil, now)
		assert.NoError(t, err)
	})
}

func TestInitiatorUpdate(t *testing.T) {
	now := mustTime(t, "2025-06-01T10:00:00Z")

	t.Run("cancel_review_stays_pending", func(t *testing.T) {
		e := pendingEvent(t, now)
		err := e.ApplyInitiatorUpdate(domain.EventUpdate{}, action(domain.ActionCancelReview), now)
		require.NoError(t, err)
		assert.Equal(t, domain.StatePending, e.State)
	})

	t.Run("canceled_send_to_review_roundtrip", func(t *testing.T) {
		e := pendingEvent(t, now)
		require.NoError(t, e.ApplyAdminUpdate(domain.EventUpdate{}, action(domain.ActionRejectEvent), now))
		require.Equal(t, domain.StateCanceled, e.State)

		err := e.ApplyInitiatorUpdate(domain.EventUpdate{}, action(domain.ActionSendToReview), now)
		require.NoError(t, err)
		assert.Equal(t, domain.StatePending, e.State)
	})

	t.Run("unsupported_action_for_state", func(t *testing.T) {
		e := pendingEvent(t, now)
		err := e.ApplyInitiatorUpdate(domain.EventUpdate{}, action(domain.ActionSendToReview), now)
		assert.ErrorContains(t, err, "unsupported action")

		require.NoError(t, e.ApplyAdminUpdate(domain.EventUpdate{}, action(domain.ActionRejectEvent), now))
		err = e.ApplyInitiatorUpdate(domain.EventUpdate{}, action(domain.ActionCancelReview), now)
		assert.ErrorContains(t, err, "unsupported action")
	})

	t.Run("published_is_immutable", func(t *testing.T) {
		e := pendingEvent(t, now)
		require.NoError(t, e.ApplyAdminUpdate(domain.EventUpdate{}, action(domain.ActionPublishEvent), now))

		title := "new title"
		err := e.ApplyInitiatorUpdate(domain.EventUpdate{Title: &title}, nil, now)
		assert.ErrorContains(t, err, "cannot modify published event")
	})

	t.Run("canceled_field_edits_allowed", func(t *testing.T) {
		e := pendingEvent(t, now)
		require.NoError(t, e.ApplyAdminUpdate(domain.EventUpdate{}, action(domain.ActionRejectEvent), now))

		title := "reworked"
		err := e.ApplyInitiatorUpdate(domain.EventUpdate{Title: &title}, nil, now)
		require.NoError(t, err)
		assert.Equal(t, domain.StateCanceled, e.State)
		assert.Equal(t, "reworked", e.Title)
	})

	t.Run("initiator_date_lead_two_hours", func(t *testing.T) {
		e := pendingEvent(t, now)
		tooSoon := now.Add(90 * time.Minute)
		err := e.ApplyInitiatorUpdate(domain.EventUpdate{EventDate: &tooSoon}, nil, now)
		assert.Error(t, err)
	})
}

func TestParticipantLimitEdit(t *testing.T) {
	now := mustTime(t, "2025-06-01T10:00:00Z")

	tests := []struct {
		name      string
		confirmed int
		newLimit  int
		wantErr   bool
	}{
		{"raise_above_confirmed", 5, 20, false},
		{"equal_to_confirmed", 5, 5, true},
		{"below_confirmed", 5, 3, true},
		{"to_unlimited", 5, 0, false},
		{"negative", 0, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := pendingEvent(t, now)
			e.ConfirmedRequests = tt.confirmed
			err := e.ApplyInitiatorUpdate(domain.EventUpdate{ParticipantLimit: &tt.newLimit}, nil, now)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.newLimit, e.ParticipantLimit)
			}
		})
	}
}

func TestLikePolarity(t *testing.T) {
	assert.Equal(t, int64(1), domain.Like{IsLike: true}.Polarity())
	assert.Equal(t, int64(-1), domain.Like{IsLike: false}.Polarity())
}
