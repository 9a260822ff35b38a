package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/explorewithme/explore-with-me/services/main-service/internal/application/event"
)

const (
	timeLayout = "2006-01-02 15:04:05"

	// Query window opens well before the service existed; the stats log is
	// append-only so this covers every recorded hit.
	epoch = "2000-01-01 00:00:00"
)

// Client talks to the statistics service over HTTP. It satisfies the
// event.StatsReader port and records page-view hits for public reads.
type Client struct {
	baseURL string
	app     string
	http    *http.Client
}

func New(baseURL, app string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 3 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		app:     app,
		http:    &http.Client{Timeout: timeout},
	}
}

type hitBody struct {
	App       string `json:"app"`
	URI       string `json:"uri"`
	IP        string `json:"ip"`
	Timestamp string `json:"timestamp"`
}

type statsRow struct {
	App  string `json:"app"`
	URI  string `json:"uri"`
	Hits int64  `json:"hits"`
}

// RecordHit appends one page-view hit. Callers treat failures as
// best-effort; a lost hit only skews the view counter.
func (c *Client) RecordHit(ctx context.Context, uri, ip string) error {
	body, err := json.Marshal(hitBody{
		App:       c.app,
		URI:       uri,
		IP:        ip,
		Timestamp: time.Now().UTC().Format(timeLayout),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/hit", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("stats service returned %d on /hit", resp.StatusCode)
	}
	return nil
}

// QueryViews asks for unique-visitor counts over the full hit log for the
// given URIs.
func (c *Client) QueryViews(ctx context.Context, uris []string) ([]event.ViewRow, error) {
	q := url.Values{}
	q.Set("start", epoch)
	q.Set("end", time.Now().UTC().Format(timeLayout))
	q.Set("unique", "true")
	for _, u := range uris {
		q.Add("uris", u)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stats?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats service returned %d on /stats", resp.StatusCode)
	}

	var rows []statsRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode stats response: %w", err)
	}

	out := make([]event.ViewRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, event.ViewRow{URI: r.URI, Hits: r.Hits})
	}
	return out, nil
}
