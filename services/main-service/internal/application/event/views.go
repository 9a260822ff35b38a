package event

import (
	"context"
	"strconv"
	"strings"

	"github.com/explorewithme/explore-with-me/services/main-service/internal/domain"
)

const viewURIPrefix = "/events/"

// ViewURI is the canonical page-view URI for an event, as recorded in the
// statistics service.
func ViewURI(id int64) string {
	return viewURIPrefix + strconv.FormatInt(id, 10)
}

// viewCounts resolves unique-visitor view counts for the given events, keyed
// by event id. The stats service must only echo URIs it was asked about; a
// row that does not parse back to an event id is a contract violation and is
// surfaced as an upstream error.
func (s *Service) viewCounts(ctx context.Context, events []*domain.Event) (map[int64]int64, error) {
	out := make(map[int64]int64, len(events))
	if s.stats == nil || len(events) == 0 {
		return out, nil
	}

	uris := make([]string, 0, len(events))
	for _, e := range events {
		uris = append(uris, ViewURI(e.ID))
	}

	rows, err := s.stats.QueryViews(ctx, uris)
	if err != nil {
		return nil, domain.ErrUpstream("stats query failed: " + err.Error())
	}

	for _, r := range rows {
		rest, ok := strings.CutPrefix(r.URI, viewURIPrefix)
		if !ok {
			return nil, domain.ErrUpstream("stats service returned foreign uri " + r.URI)
		}
		id, perr := strconv.ParseInt(rest, 10, 64)
		if perr != nil {
			return nil, domain.ErrUpstream("stats service returned foreign uri " + r.URI)
		}
		out[id] = r.Hits
	}
	return out, nil
}
