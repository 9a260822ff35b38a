package response

import "net/http"

// RequestIDFromRequest extracts request id from HTTP headers. The request-id
// middleware sets the same header on the way in.
func RequestIDFromRequest(r *http.Request) string {
	if v := r.Header.Get("X-Request-Id"); v != "" {
		return v
	}
	return r.Header.Get("X-Request-ID")
}
