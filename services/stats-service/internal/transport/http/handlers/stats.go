package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/explorewithme/explore-with-me/services/stats-service/internal/application/stats"
	"github.com/explorewithme/explore-with-me/services/stats-service/internal/domain"
	"github.com/explorewithme/explore-with-me/services/stats-service/internal/transport/http/dto"
	"github.com/explorewithme/explore-with-me/services/stats-service/internal/transport/http/response"
)

type StatsHandler struct {
	svc *stats.Service
}

func NewStatsHandler(svc *stats.Service) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// RecordHit handles POST /hit and answers 201 with the stored record.
func (h *StatsHandler) RecordHit(w http.ResponseWriter, r *http.Request) {
	var req dto.NewHitReq
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		response.Err(w, domain.ErrValidation("invalid JSON body"))
		return
	}

	ts, ok := dto.ParseTimestamp(req.Timestamp)
	if !ok {
		response.Err(w, domain.ErrValidationMeta("invalid timestamp", map[string]string{
			"timestamp": "expected format " + dto.TimeLayout,
		}))
		return
	}

	hit, err := h.svc.RecordHit(r.Context(), req.App, req.URI, req.IP, ts)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, dto.ToHitResp(hit))
}

// QueryStats handles GET /stats. The body is a bare JSON array sorted by
// hits descending.
func (h *StatsHandler) QueryStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, okStart := dto.ParseTimestamp(q.Get("start"))
	end, okEnd := dto.ParseTimestamp(q.Get("end"))
	if !okStart || !okEnd {
		response.Err(w, domain.ErrValidationMeta("invalid range", map[string]string{
			"start": "required, format " + dto.TimeLayout,
			"end":   "required, format " + dto.TimeLayout,
		}))
		return
	}

	var uris []string
	for _, raw := range q["uris"] {
		for _, u := range strings.Split(raw, ",") {
			if u = strings.TrimSpace(u); u != "" {
				uris = append(uris, u)
			}
		}
	}

	unique := false
	if raw := q.Get("unique"); raw != "" {
		v, perr := strconv.ParseBool(raw)
		if perr != nil {
			response.Err(w, domain.ErrValidationMeta("invalid query param", map[string]string{
				"unique": "must be a boolean",
			}))
			return
		}
		unique = v
	}

	out, err := h.svc.QueryStats(r.Context(), start, end, uris, unique)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.ToViewStatsResps(out))
}

func Health(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
