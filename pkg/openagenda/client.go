// Package openagenda reads public events from the OpenAgenda API.
package openagenda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/aina-app/aina-api/internal/models"
	"github.com/aina-app/aina-api/pkg/config"
)

// SourceName tags events fetched by this package.
const SourceName = "openagenda"

const maxBodyBytes = 4 << 20

// Query narrows an event search.
type Query struct {
	Location string
	From     time.Time
	To       time.Time
	Limit    int
}

// Client calls the OpenAgenda events endpoint.
type Client struct {
	baseURL string
	apiKey  string
	limit   int
	enabled bool
	http    *http.Client
}

// NewClient builds a client from configuration. A nil httpClient gets one
// with the configured timeout.
func NewClient(cfg config.OpenAgendaConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = 20
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		limit:   limit,
		enabled: cfg.Enabled,
		http:    httpClient,
	}
}

// Enabled reports whether the client is configured to call the API.
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.apiKey != "" && c.baseURL != ""
}

type eventsResponse struct {
	Events []apiEvent `json:"events"`
}

type apiEvent struct {
	UID         json.Number       `json:"uid"`
	Title       map[string]string `json:"title"`
	Description map[string]string `json:"description"`
	FirstTiming *apiTiming        `json:"firstTiming"`
	LastTiming  *apiTiming        `json:"lastTiming"`
	Location    *apiLocation      `json:"location"`
}

type apiTiming struct {
	Begin time.Time `json:"begin"`
	End   time.Time `json:"end"`
}

type apiLocation struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Department string `json:"department"`
}

// Search lists events matching q. Events without a first timing are skipped.
func (c *Client) Search(ctx context.Context, q Query) ([]models.LocalEvent, error) {
	if !c.Enabled() {
		return []models.LocalEvent{}, nil
	}

	limit := q.Limit
	if limit <= 0 || limit > c.limit {
		limit = c.limit
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("search", q.Location)
	params.Set("size", strconv.Itoa(limit))
	params.Set("detailed", "1")
	if !q.From.IsZero() {
		params.Set("timings[gte]", q.From.UTC().Format(time.RFC3339))
	}
	if !q.To.IsZero() {
		params.Set("timings[lte]", q.To.UTC().Format(time.RFC3339))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/events?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build openagenda request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openagenda request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, fmt.Errorf("openagenda: unexpected status %d", resp.StatusCode)
	}

	var payload eventsResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode openagenda response: %w", err)
	}

	events := make([]models.LocalEvent, 0, len(payload.Events))
	for _, raw := range payload.Events {
		if ev, ok := raw.toLocalEvent(); ok {
			events = append(events, ev)
		}
	}
	return events, nil
}

func (e apiEvent) toLocalEvent() (models.LocalEvent, bool) {
	if e.FirstTiming == nil || e.FirstTiming.Begin.IsZero() {
		return models.LocalEvent{}, false
	}
	title := localized(e.Title)
	if title == "" {
		return models.LocalEvent{}, false
	}

	ev := models.LocalEvent{
		ID:          e.UID.String(),
		Title:       title,
		Description: localized(e.Description),
		EventDate:   e.FirstTiming.Begin,
		Source:      SourceName,
	}
	if e.LastTiming != nil && !e.LastTiming.End.IsZero() {
		end := e.LastTiming.End
		ev.EndDate = &end
	}
	if loc := e.Location; loc != nil {
		ev.Location = loc.Name
		ev.City = loc.City
		ev.Department = loc.Department
		if ev.Department == "" {
			ev.Department = Department(loc.PostalCode)
		}
	}
	return ev, true
}

// localized prefers the French label, then any other language in a stable
// order.
func localized(labels map[string]string) string {
	if v := labels["fr"]; v != "" {
		return v
	}
	langs := make([]string, 0, len(labels))
	for lang := range labels {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		if v := labels[lang]; v != "" {
			return v
		}
	}
	return ""
}
