package handlers

import (
	"net/http"
	"strings"

	"github.com/explorewithme/explore-with-me/services/main-service/internal/application/request"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/domain"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/transport/http/dto"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/transport/http/response"
)

type RequestsHandler struct {
	svc *request.Service
}

func NewRequestsHandler(svc *request.Service) *RequestsHandler {
	return &RequestsHandler{svc: svc}
}

// Create handles POST /users/{user_id}/requests?event_id=
func (h *RequestsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	eventID, err := queryID(r, "event_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	pr, err := h.svc.Create(r.Context(), userID, eventID)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToRequestResp(pr))
}

// ListMine handles GET /users/{user_id}/requests
func (h *RequestsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	reqs, err := h.svc.ListMine(r.Context(), userID)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToRequestResps(reqs))
}

// Cancel handles PATCH /users/{user_id}/requests/{request_id}/cancel
func (h *RequestsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	requestID, err := pathID(r, "request_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	pr, err := h.svc.Cancel(r.Context(), userID, requestID)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToRequestResp(pr))
}

// ListForEvent handles GET /users/{user_id}/events/{event_id}/requests
func (h *RequestsHandler) ListForEvent(w http.ResponseWriter, r *http.Request) {
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

	reqs, err := h.svc.ListForEvent(r.Context(), userID, eventID)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToRequestResps(reqs))
}

// Decide handles PATCH /users/{user_id}/events/{event_id}/requests/{request_id}?status=
func (h *RequestsHandler) Decide(w http.ResponseWriter, r *http.Request) {
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
	requestID, err := pathID(r, "request_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	status := domain.RequestStatus(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status"))))
	if status != domain.RequestConfirmed && status != domain.RequestRejected {
		response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{
			"status": "must be CONFIRMED or REJECTED",
		}))
		return
	}

	pr, err := h.svc.Decide(r.Context(), userID, eventID, requestID, status)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToRequestResp(pr))
}
