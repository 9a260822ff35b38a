package dto

import (
	"time"

	"github.com/explorewithme/explore-with-me/services/stats-service/internal/domain"
)

// TimeLayout is the wire format for all timestamps handled by the service.
const TimeLayout = "2006-01-02 15:04:05"

type NewHitReq struct {
	App       string `json:"app"`
	URI       string `json:"uri"`
	IP        string `json:"ip"`
	Timestamp string `json:"timestamp"`
}

type HitResp struct {
	ID        int64  `json:"id"`
	App       string `json:"app"`
	URI       string `json:"uri"`
	IP        string `json:"ip"`
	Timestamp string `json:"timestamp"`
}

type ViewStatsResp struct {
	App  string `json:"app"`
	URI  string `json:"uri"`
	Hits int64  `json:"hits"`
}

func ToHitResp(h *domain.Hit) HitResp {
	return HitResp{
		ID:        h.ID,
		App:       h.App,
		URI:       h.URI,
		IP:        h.IP,
		Timestamp: h.Timestamp.Format(TimeLayout),
	}
}

func ToViewStatsResps(stats []domain.ViewStats) []ViewStatsResp {
	out := make([]ViewStatsResp, 0, len(stats))
	for _, vs := range stats {
		out = append(out, ViewStatsResp{App: vs.App, URI: vs.URI, Hits: vs.Hits})
	}
	return out
}

func ParseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
