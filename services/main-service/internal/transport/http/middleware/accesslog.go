package middleware

import (
	"net/http"
	"time"

	zlog "github.com/rs/zerolog/log"
)

// responseRecorder captures what the handler chain wrote so the access line
// carries the final status and payload size.
type responseRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (rec *responseRecorder) WriteHeader(code int) {
	if rec.status == 0 {
		rec.status = code
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *responseRecorder) Write(b []byte) (int, error) {
	if rec.status == 0 {
		rec.status = http.StatusOK
	}
	n, err := rec.ResponseWriter.Write(b)
	rec.size += n
	return n, err
}

// AccessLog emits one structured line per request. Mounted after RequestID,
// so the id is already present on the headers.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w}
		started := time.Now()

		next.ServeHTTP(rec, r)

		zlog.Info().
			Str("request_id", r.Header.Get(HeaderXRequestID)).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Int("size", rec.size).
			Dur("elapsed", time.Since(started)).
			Str("ip", r.RemoteAddr).
			Msg("request served")
	})
}
