package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/explorewithme/explore-with-me/services/main-service/internal/application/event"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/domain"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/transport/http/dto"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/transport/http/response"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/transport/http/validate"
)

// HitRecorder appends a page-view hit to the statistics service.
type HitRecorder interface {
	RecordHit(ctx context.Context, uri, ip string) error
}

type EventsHandler struct {
	svc  *event.Service
	hits HitRecorder
}

func NewEventsHandler(svc *event.Service, hits HitRecorder) *EventsHandler {
	return &EventsHandler{svc: svc, hits: hits}
}

func (h *EventsHandler) recordHit(r *http.Request, uri string) {
	if h.hits == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := h.hits.RecordHit(ctx, uri, clientIP(r)); err != nil {
		zlog.Warn().Err(err).Str("uri", uri).Msg("record hit failed")
	}
}

// Initiator

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	var req dto.NewEventReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or unknown fields",
		}))
		return
	}

	eventDate, ok := validate.Timestamp(req.EventDate)
	if !ok {
		response.Err(w, r, domain.ErrValidationMeta("invalid body field", map[string]string{
			"event_date": "must match " + validate.TimeLayout,
		}))
		return
	}

	moderation := true
	if req.RequestModeration != nil {
		moderation = *req.RequestModeration
	}

	cmd := event.CreateCmd{
		InitiatorID:       userID,
		Title:             req.Title,
		Annotation:        req.Annotation,
		Description:       req.Description,
		Category:          req.Category,
		Location:          domain.Location{Lat: req.Location.Lat, Lon: req.Location.Lon},
		EventDate:         eventDate,
		ParticipantLimit:  req.ParticipantLimit,
		RequestModeration: moderation,
	}
	ev, err := h.svc.Create(r.Context(), cmd)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToEventResp(ev, 0))
}

func (h *EventsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	from, size, err := queryPage(r)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	items, views, err := h.svc.ListByInitiator(r.Context(), userID, from, size)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventResps(items, views))
}

func (h *EventsHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	eventID, err := pathID(r, "event_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	ev, views, err := h.svc.GetForInitiator(r.Context(), eventID, userID)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventResp(ev, views))
}

func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	eventID, err := pathID(r, "event_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	fields, action, err := decodeUpdate(r)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	ev, err := h.svc.Update(r.Context(), event.UpdateCmd{
		InitiatorID: userID,
		EventID:     eventID,
		Fields:      fields,
		StateAction: action,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventResp(ev, 0))
}

// Admin

func (h *EventsHandler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "event_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	fields, action, err := decodeUpdate(r)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	ev, err := h.svc.Moderate(r.Context(), event.ModerateCmd{
		EventID:     eventID,
		Fields:      fields,
		StateAction: action,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventResp(ev, 0))
}

func (h *EventsHandler) AdminSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := event.AdminFilter{}

	for _, raw := range q["users"] {
		id, ok := validate.ID(raw)
		if !ok {
			response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{
				"users": "must be positive integers",
			}))
			return
		}
		f.Users = append(f.Users, id)
	}
	for _, raw := range q["states"] {
		st := domain.EventState(strings.ToUpper(strings.TrimSpace(raw)))
		if !st.Valid() {
			response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{
				"states": "must be one of: PENDING, PUBLISHED, CANCELED",
			}))
			return
		}
		f.States = append(f.States, st)
	}
	f.Categories = q["categories"]

	var err error
	if f.RangeStart, err = optTimestamp(q.Get("range_start"), "range_start"); err != nil {
		response.Err(w, r, err)
		return
	}
	if f.RangeEnd, err = optTimestamp(q.Get("range_end"), "range_end"); err != nil {
		response.Err(w, r, err)
		return
	}
	if f.From, f.Size, err = queryPage(r); err != nil {
		response.Err(w, r, err)
		return
	}

	items, views, err := h.svc.AdminSearch(r.Context(), f)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventResps(items, views))
}

// Public

func (h *EventsHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := event.PublicFilter{
		Text:       q.Get("text"),
		Categories: q["categories"],
	}

	var err error
	if f.RangeStart, err = optTimestamp(q.Get("range_start"), "range_start"); err != nil {
		response.Err(w, r, err)
		return
	}
	if f.RangeEnd, err = optTimestamp(q.Get("range_end"), "range_end"); err != nil {
		response.Err(w, r, err)
		return
	}
	if f.From, f.Size, err = queryPage(r); err != nil {
		response.Err(w, r, err)
		return
	}

	items, views, err := h.svc.ListPublic(r.Context(), f)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	h.recordHit(r, "/events")
	response.Data(w, http.StatusOK, dto.ToEventResps(items, views))
}

func (h *EventsHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "event_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	ev, views, err := h.svc.GetPublic(r.Context(), eventID)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	h.recordHit(r, event.ViewURI(eventID))
	response.Data(w, http.StatusOK, dto.ToEventResp(ev, views))
}

// helpers

func decodeUpdate(r *http.Request) (domain.EventUpdate, *domain.StateAction, error) {
	var req dto.UpdateEventReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		return domain.EventUpdate{}, nil, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or unknown fields",
		})
	}

	u := domain.EventUpdate{
		Title:             req.Title,
		Annotation:        req.Annotation,
		Description:       req.Description,
		Category:          req.Category,
		ParticipantLimit:  req.ParticipantLimit,
		RequestModeration: req.RequestModeration,
	}
	if req.Location != nil {
		u.Location = &domain.Location{Lat: req.Location.Lat, Lon: req.Location.Lon}
	}
	if req.EventDate != nil {
		t, ok := validate.Timestamp(*req.EventDate)
		if !ok {
			return domain.EventUpdate{}, nil, domain.ErrValidationMeta("invalid body field", map[string]string{
				"event_date": "must match " + validate.TimeLayout,
			})
		}
		u.EventDate = &t
	}

	var action *domain.StateAction
	if req.StateAction != nil {
		a := domain.StateAction(strings.ToUpper(strings.TrimSpace(*req.StateAction)))
		if !a.Valid() {
			return domain.EventUpdate{}, nil, domain.ErrValidationMeta("invalid body field", map[string]string{
				"state_action": "unknown state action",
			})
		}
		action = &a
	}
	return u, action, nil
}

func optTimestamp(raw, name string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, ok := validate.Timestamp(raw)
	if !ok {
		return nil, domain.ErrValidationMeta("invalid query param", map[string]string{
			name: "must match " + validate.TimeLayout,
		})
	}
	return &t, nil
}
