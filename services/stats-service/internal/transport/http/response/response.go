package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/explorewithme/explore-with-me/services/stats-service/internal/domain"
	"github.com/explorewithme/explore-with-me/services/stats-service/internal/logger"
)

type ErrorBody struct {
	Error ErrorPayload `json:"error"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Logger.Error().Err(err).Msg("encode response")
	}
}

func Err(w http.ResponseWriter, err error) {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		JSON(w, statusFromCode(appErr.Code), ErrorBody{Error: ErrorPayload{
			Code:    string(appErr.Code),
			Message: appErr.Message,
		}})
		return
	}
	logger.Logger.Error().Err(err).Msg("unhandled error")
	JSON(w, http.StatusInternalServerError, ErrorBody{Error: ErrorPayload{
		Code:    "internal_error",
		Message: "internal server error",
	}})
}

func statusFromCode(code domain.ErrCode) int {
	switch code {
	case domain.CodeValidation:
		return http.StatusBadRequest
	case domain.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
