package middleware

import (
	"net/http"
	"time"

	zlog "github.com/rs/zerolog/log"
)

type loggedResponse struct {
	http.ResponseWriter
	status int
}

func (lr *loggedResponse) WriteHeader(code int) {
	if lr.status == 0 {
		lr.status = code
	}
	lr.ResponseWriter.WriteHeader(code)
}

func (lr *loggedResponse) Write(b []byte) (int, error) {
	if lr.status == 0 {
		lr.status = http.StatusOK
	}
	return lr.ResponseWriter.Write(b)
}

// AccessLog writes one line per request. The raw query is logged because the
// stats endpoints carry their whole input there.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lr := &loggedResponse{ResponseWriter: w}
		started := time.Now()

		next.ServeHTTP(lr, r)

		zlog.Info().
			Str("method", r.Method).
			Str("uri", r.URL.Path).
			Str("query", r.URL.RawQuery).
			Int("status", lr.status).
			Dur("took", time.Since(started)).
			Str("ip", r.RemoteAddr).
			Msg("request handled")
	})
}
