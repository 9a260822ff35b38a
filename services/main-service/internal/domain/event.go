package domain

import (
	"strings"
	"time"
)

// Minimum gap between "now" and the event date, per actor.
const (
	AdminEditLead     = 1 * time.Hour
	InitiatorEditLead = 2 * time.Hour
)

type Location struct {
	Lat float64
	Lon float64
}

type Event struct {
	ID          int64
	InitiatorID int64
	Title       string
	Annotation  string
	Description string
	Category    string
	Location    Location
	EventDate   time.Time

	// 0 = unlimited
	ParticipantLimit  int
	RequestModeration bool
	ConfirmedRequests int

	// Cached denormalizations over the like ledger.
	Rating        int64
	NumberOfLikes int64

	State       EventState
	PublishedOn *time.Time
	CreatedOn   time.Time
}

func NewEvent(initiatorID int64, title, annotation, description, category string, loc Location, eventDate time.Time, limit int, moderation bool, now time.Time) (*Event, error) {
	title = strings.TrimSpace(title)
	annotation = strings.TrimSpace(annotation)
	description = strings.TrimSpace(description)
	category = strings.TrimSpace(category)

	if initiatorID <= 0 {
		return nil, ErrValidation("initiator id is required")
	}
	if title == "" || len(title) > 120 {
		return nil, ErrValidation("title is required and must be <= 120 chars")
	}
	if annotation == "" || len(annotation) > 2000 {
		return nil, ErrValidation("annotation is required and must be <= 2000 chars")
	}
	if description == "" || len(description) > 7000 {
		return nil, ErrValidation("description is required and must be <= 7000 chars")
	}
	if category == "" || len(category) > 80 {
		return nil, ErrValidation("category is required and must be <= 80 chars")
	}
	if err := checkEventDate(eventDate, now, InitiatorEditLead); err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, ErrValidation("participant limit must be >= 0 (0 means unlimited)")
	}

	return &Event{
		InitiatorID:       initiatorID,
		Title:             title,
		Annotation:        annotation,
		Description:       description,
		Category:          category,
		Location:          loc,
		EventDate:         eventDate.UTC(),
		ParticipantLimit:  limit,
		RequestModeration: moderation,
		State:             StatePending,
		CreatedOn:         now.UTC(),
	}, nil
}

func checkEventDate(d, now time.Time, lead time.Duration) error {
	if d.IsZero() || !d.After(now) {
		return ErrValidation("event date must be in the future")
	}
	if d.Before(now.Add(lead)) {
		return ErrValidationMeta("event date too soon", map[string]string{
			"event_date": "must be at least " + lead.String() + " from now",
		})
	}
	return nil
}

// EventUpdate carries optional field edits; nil means "leave unchanged".
type EventUpdate struct {
	Title             *string
	Annotation        *string
	Description       *string
	Category          *string
	Location          *Location
	EventDate         *time.Time
	ParticipantLimit  *int
	RequestModeration *bool
}

// ApplyAdminUpdate applies an admin moderation request: optional field edits
// plus an optional PUBLISH_EVENT/REJECT_EVENT transition. Admins only touch
// events awaiting moderation.
func (e *Event) ApplyAdminUpdate(u EventUpdate, action *StateAction, now time.Time) error {
	if e.State == StatePublished {
		return ErrInvalidState("cannot modify published event")
	}
	if e.State != StatePending {
		return ErrInvalidState("event not in PENDING state")
	}
	if err := e.applyFields(u, now, AdminEditLead); err != nil {
		return err
	}
	if action == nil {
		return nil
	}
	switch *action {
	case ActionPublishEvent:
		t := now.UTC()
		e.State = StatePublished
		e.PublishedOn = &t
	case ActionRejectEvent:
		e.State = StateCanceled
	default:
		return ErrInvalidState("unsupported admin action " + string(*action))
	}
	return nil
}

// ApplyInitiatorUpdate applies an initiator edit: optional field edits plus an
// optional SEND_TO_REVIEW/CANCEL_REVIEW transition. Only pending and canceled
// events can be edited by their initiator.
//
// CANCEL_REVIEW on a pending event leaves it pending. That mirrors the
// moderation flow this service replaced; see DESIGN.md before changing it.
func (e *Event) ApplyInitiatorUpdate(u EventUpdate, action *StateAction, now time.Time) error {
	if e.State == StatePublished {
		return ErrInvalidState("cannot modify published event")
	}
	if err := e.applyFields(u, now, InitiatorEditLead); err != nil {
		return err
	}
	if action == nil {
		return nil
	}
	switch {
	case e.State == StatePending && *action == ActionCancelReview:
		// stays PENDING
	case e.State == StateCanceled && *action == ActionSendToReview:
		e.State = StatePending
	default:
		return ErrInvalidState("unsupported action " + string(*action) + " for state " + string(e.State))
	}
	return nil
}

func (e *Event) applyFields(u EventUpdate, now time.Time, lead time.Duration) error {
	if u.Title != nil {
		v := strings.TrimSpace(*u.Title)
		if v == "" || len(v) > 120 {
			return ErrValidation("title must be non-empty and <= 120 chars")
		}
		e.Title = v
	}
	if u.Annotation != nil {
		v := strings.TrimSpace(*u.Annotation)
		if v == "" || len(v) > 2000 {
			return ErrValidation("annotation must be non-empty and <= 2000 chars")
		}
		e.Annotation = v
	}
	if u.Description != nil {
		v := strings.TrimSpace(*u.Description)
		if v == "" || len(v) > 7000 {
			return ErrValidation("description must be non-empty and <= 7000 chars")
		}
		e.Description = v
	}
	if u.Category != nil {
		v := strings.TrimSpace(*u.Category)
		if v == "" || len(v) > 80 {
			return ErrValidation("category must be non-empty and <= 80 chars")
		}
		e.Category = v
	}
	if u.Location != nil {
		e.Location = *u.Location
	}
	if u.EventDate != nil {
		if err := checkEventDate(*u.EventDate, now, lead); err != nil {
			return err
		}
		e.EventDate = u.EventDate.UTC()
	}
	if u.ParticipantLimit != nil {
		v := *u.ParticipantLimit
		if v < 0 {
			return ErrValidation("participant limit must be >= 0 (0 means unlimited)")
		}
		if v != 0 && v <= e.ConfirmedRequests {
			return ErrValidationMeta("participant limit too low", map[string]string{
				"participant_limit": "must exceed already confirmed requests",
			})
		}
		e.ParticipantLimit = v
	}
	if u.RequestModeration != nil {
		e.RequestModeration = *u.RequestModeration
	}
	return nil
}
