package handlers

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/explorewithme/explore-with-me/services/main-service/internal/domain"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/transport/http/validate"
)

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, ok := validate.ID(raw)
	if !ok {
		return 0, domain.ErrValidationMeta("invalid path param", map[string]string{
			name: "must be a positive integer",
		})
	}
	return id, nil
}

func queryID(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	id, ok := validate.ID(raw)
	if !ok {
		return 0, domain.ErrValidationMeta("invalid query param", map[string]string{
			name: "must be a positive integer",
		})
	}
	return id, nil
}

// queryPage reads the from/size pagination pair. Absent params take the
// defaults; anything malformed is a client error, not a silent default.
func queryPage(r *http.Request) (from, size int, err error) {
	q := r.URL.Query()
	from, size = 0, 10

	if raw := q.Get("from"); raw != "" {
		from, err = strconv.Atoi(raw)
		if err != nil || from < 0 {
			return 0, 0, domain.ErrValidationMeta("invalid query param", map[string]string{
				"from": "must be a non-negative integer",
			})
		}
	}
	if raw := q.Get("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return 0, 0, domain.ErrValidationMeta("invalid query param", map[string]string{
				"size": "must be a positive integer",
			})
		}
	}
	if size > 100 {
		size = 100
	}
	return from, size, nil
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}
