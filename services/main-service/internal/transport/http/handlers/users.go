package handlers

import (
	"net/http"

	"github.com/explorewithme/explore-with-me/services/main-service/internal/application/user"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/domain"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/transport/http/dto"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/transport/http/response"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/transport/http/validate"
)

type UsersHandler struct {
	svc *user.Service
}

func NewUsersHandler(svc *user.Service) *UsersHandler {
	return &UsersHandler{svc: svc}
}

func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.NewUserReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or unknown fields",
		}))
		return
	}

	u, err := h.svc.Register(r.Context(), req.Name, req.Email)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToUserResp(u))
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	var ids []int64
	for _, raw := range r.URL.Query()["ids"] {
		id, ok := validate.ID(raw)
		if !ok {
			response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{
				"ids": "must be positive integers",
			}))
			return
		}
		ids = append(ids, id)
	}
	from, size, err := queryPage(r)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	users, err := h.svc.List(r.Context(), ids, from, size)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToUserResps(users))
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		response.Err(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
