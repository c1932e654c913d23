package stats

import (
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the textual timestamp form shared with the upstream event
// stores, both in the persisted document and in fetch query parameters.
const TimeLayout = "2006-01-02 15:04:05"

// Timestamp marshals as "YYYY-MM-DD HH:MM:SS" in UTC.
type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(TimeLayout) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := time.Parse(TimeLayout, s)
	if err != nil {
		return fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	t.Time = parsed.UTC()
	return nil
}

// StatsRecord is the single cumulative statistics document. Counters only
// ever grow; extrema are nil until the first event carrying the relevant
// measurement has been folded in; LastUpdated is the checkpoint up to which
// upstream events have been incorporated.
type StatsRecord struct {
	NumFlightSchedules   uint64    `json:"num_flight_schedules"`
	NumPassengerCheckins uint64    `json:"num_passenger_checkins"`
	MaxLuggageWeight     *float64  `json:"max_luggage_weight"`
	MinLuggageWeight     *float64  `json:"min_luggage_weight"`
	MaxFlightDuration    *float64  `json:"max_flight_duration"`
	MinFlightDuration    *float64  `json:"min_flight_duration"`
	LastUpdated          Timestamp `json:"last_updated"`
}

// Defaults returns the record used before any cycle has persisted one:
// zero counters, unset extrema, and the checkpoint parked far enough in the
// past that the first window covers all recorded history.
func Defaults() StatsRecord {
	return StatsRecord{
		LastUpdated: Timestamp{Time: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
}
