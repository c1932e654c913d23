package eventsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"backend-flightstats/internal/config"
	"backend-flightstats/internal/stats"
)

// Category identifies one upstream event stream.
type Category string

const (
	FlightSchedules   Category = "flight_schedules"
	PassengerCheckins Category = "passenger_checkins"
)

// Event is one decoded upstream event. The schema is open-ended; the
// aggregator only cares about the measurement field for the category.
type Event map[string]any

// Number returns the named field as a float64 when present and numeric.
func (e Event) Number(key string) (float64, bool) {
	switch v := e[key].(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// FetchError reports a failed upstream fetch: a non-2xx status, a transport
// failure, or an undecodable body.
type FetchError struct {
	Category Category
	Status   int
	Err      error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.Category, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.Category, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client fetches domain events from the upstream event stores.
type Client struct {
	endpoints map[Category]string
	http      *http.Client
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		endpoints: map[Category]string{
			FlightSchedules:   cfg.FlightSchedulesURL,
			PassengerCheckins: cfg.PassengerCheckinsURL,
		},
		http: &http.Client{Timeout: cfg.UpstreamTimeout},
	}
}

// Fetch returns the events of one category recorded in [start, end). The
// window bounds travel as start_timestamp/end_timestamp query parameters in
// "YYYY-MM-DD HH:MM:SS" UTC form.
func (c *Client) Fetch(ctx context.Context, category Category, start, end time.Time) ([]Event, error) {
	endpoint := c.endpoints[category]
	if endpoint == "" {
		return nil, &FetchError{Category: category, Err: errors.New("no endpoint configured")}
	}

	query := url.Values{}
	query.Set("start_timestamp", start.UTC().Format(stats.TimeLayout))
	query.Set("end_timestamp", end.UTC().Format(stats.TimeLayout))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, &FetchError{Category: category, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Category: category, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &FetchError{Category: category, Status: resp.StatusCode}
	}

	var events []Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, &FetchError{Category: category, Err: err}
	}
	return events, nil
}
