package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/explorewithme/explore-with-me/services/main-service/internal/application/like"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/domain"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/transport/http/dto"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/transport/http/response"
)

type LikesHandler struct {
	svc *like.Service
}

func NewLikesHandler(svc *like.Service) *LikesHandler {
	return &LikesHandler{svc: svc}
}

// Apply handles POST /users/{user_id}/likes?event_id=&like=
// The like flag defaults to true; like=false records a dislike.
func (h *LikesHandler) Apply(w http.ResponseWriter, r *http.Request) {
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

	isLike := true
	if raw := strings.TrimSpace(r.URL.Query().Get("like")); raw != "" {
		v, perr := strconv.ParseBool(raw)
		if perr != nil {
			response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{
				"like": "must be a boolean",
			}))
			return
		}
		isLike = v
	}

	l, err := h.svc.Apply(r.Context(), userID, eventID, isLike)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToLikeResp(l))
}

// Remove handles DELETE /users/{user_id}/likes/{event_id}/remove
func (h *LikesHandler) Remove(w http.ResponseWriter, r *http.Request) {
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

	if err := h.svc.Remove(r.Context(), userID, eventID); err != nil {
		response.Err(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EventLikers handles GET /events/{event_id}/likes
func (h *LikesHandler) EventLikers(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "event_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	from, size, err := queryPage(r)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	users, err := h.svc.EventLikers(r.Context(), eventID, from, size)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToUserResps(users))
}

// UserLikes handles GET /users/{user_id}/likes?is_like=
func (h *LikesHandler) UserLikes(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	var isLike *bool
	if raw := strings.TrimSpace(r.URL.Query().Get("is_like")); raw != "" {
		v, perr := strconv.ParseBool(raw)
		if perr != nil {
			response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{
				"is_like": "must be a boolean",
			}))
			return
		}
		isLike = &v
	}
	from, size, err := queryPage(r)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	likes, err := h.svc.UserLikes(r.Context(), userID, isLike, from, size)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToLikeResps(likes))
}

// Ranking handles GET /initiators/rating?from&size&asc
func (h *LikesHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	asc := false
	if raw := strings.TrimSpace(r.URL.Query().Get("asc")); raw != "" {
		v, perr := strconv.ParseBool(raw)
		if perr != nil {
			response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{
				"asc": "must be a boolean",
			}))
			return
		}
		asc = v
	}
	from, size, err := queryPage(r)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	users, err := h.svc.InitiatorsByRating(r.Context(), from, size, asc)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToUserResps(users))
}
