package validate

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const TimeLayout = "2006-01-02 15:04:05"

func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// ID parses a positive int64 path or query parameter.
func ID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Timestamp parses the service-wide "yyyy-MM-dd HH:mm:ss" wire format.
func Timestamp(s string) (time.Time, bool) {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}
