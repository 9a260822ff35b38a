package domain

import (
	"net"
	"strings"
	"time"
)

// Hits must target the events surface; anything else is a client error.
const RequiredURIPrefix = "/events"

// Hit is one immutable page-view record. The log is append-only: hits are
// never updated or deleted, and repeated hits from the same ip both count.
type Hit struct {
	ID        int64
	App       string
	URI       string
	IP        string
	Timestamp time.Time
}

func NewHit(app, uri, ip string, ts time.Time) (*Hit, error) {
	app = strings.TrimSpace(app)
	uri = strings.TrimSpace(uri)
	ip = strings.TrimSpace(ip)

	if app == "" {
		return nil, ErrValidation("app is required")
	}
	if !strings.HasPrefix(uri, RequiredURIPrefix) {
		return nil, ErrValidationMeta("invalid uri", map[string]string{
			"uri": "must start with " + RequiredURIPrefix,
		})
	}
	if net.ParseIP(ip) == nil {
		return nil, ErrValidationMeta("invalid ip", map[string]string{
			"ip": "must be a valid IPv4 or IPv6 address",
		})
	}
	if ts.IsZero() {
		return nil, ErrValidation("timestamp is required")
	}

	return &Hit{
		App:       app,
		URI:       uri,
		IP:        ip,
		Timestamp: ts.UTC(),
	}, nil
}

// ViewStats is one aggregation row: hits for a (app, uri) group within the
// queried window.
type ViewStats struct {
	App  string
	URI  string
	Hits int64
}
