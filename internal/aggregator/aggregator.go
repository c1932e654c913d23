package aggregator

import (
	"context"
	"log"
	"sync"
	"time"

	"backend-flightstats/internal/eventsource"
	"backend-flightstats/internal/stats"

	"github.com/google/uuid"
)

// Fetcher is the upstream event-source dependency of the aggregator.
type Fetcher interface {
	Fetch(ctx context.Context, category eventsource.Category, start, end time.Time) ([]eventsource.Event, error)
}

// Publisher receives every freshly persisted record.
type Publisher interface {
	Publish(record stats.StatsRecord)
}

// Aggregator folds newly recorded upstream events into the cumulative
// statistics record. One cycle runs at a time; an overlapping trigger
// blocks until the in-flight cycle finishes.
type Aggregator struct {
	store stats.Store
	src   Fetcher
	pub   Publisher
	now   func() time.Time

	mu sync.Mutex
}

func New(store stats.Store, src Fetcher, pub Publisher) *Aggregator {
	return &Aggregator{store: store, src: src, pub: pub, now: time.Now}
}

// Run executes one aggregation cycle: load state, fetch each category's
// events for the window [last_updated, now), fold them in, advance the
// checkpoint, persist. It never reports failure to its caller; a failed
// fetch contributes an empty batch for its category only, and a failed
// save discards the in-memory update so the persisted state is untouched.
func (a *Aggregator) Run(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	cycleID := uuid.NewString()
	log.Printf("cycle %s: started", cycleID)

	record, err := a.store.Load(ctx)
	if err != nil {
		// Missing or unreadable state means this is effectively the first
		// run; start from defaults.
		record = stats.Defaults()
	}

	start := record.LastUpdated.Time
	end := a.now().UTC().Truncate(time.Second)

	flights := a.fetch(ctx, cycleID, eventsource.FlightSchedules, start, end)
	checkins := a.fetch(ctx, cycleID, eventsource.PassengerCheckins, start, end)

	record.NumFlightSchedules += uint64(len(flights))
	record.NumPassengerCheckins += uint64(len(checkins))

	for _, event := range flights {
		if duration, ok := event.Number("flight_duration"); ok {
			record.MaxFlightDuration = keepMax(record.MaxFlightDuration, duration)
			record.MinFlightDuration = keepMin(record.MinFlightDuration, duration)
		}
	}
	for _, event := range checkins {
		if weight, ok := event.Number("luggage_weight"); ok {
			record.MaxLuggageWeight = keepMax(record.MaxLuggageWeight, weight)
			record.MinLuggageWeight = keepMin(record.MinLuggageWeight, weight)
		}
	}

	// The checkpoint moves to the window end even when a fetch failed, so
	// a failed window's events are not re-requested on the next cycle.
	record.LastUpdated = stats.Timestamp{Time: end}

	if err := a.store.Save(ctx, record); err != nil {
		log.Printf("cycle %s: save failed, keeping previous persisted state: %v", cycleID, err)
		return
	}

	if a.pub != nil {
		a.pub.Publish(record)
	}
	log.Printf("cycle %s: finished, totals: %d flight schedules, %d passenger check-ins",
		cycleID, record.NumFlightSchedules, record.NumPassengerCheckins)
}

func (a *Aggregator) fetch(ctx context.Context, cycleID string, category eventsource.Category, start, end time.Time) []eventsource.Event {
	events, err := a.src.Fetch(ctx, category, start, end)
	if err != nil {
		log.Printf("cycle %s: %v", cycleID, err)
		return nil
	}
	log.Printf("cycle %s: received %d %s events", cycleID, len(events), category)
	return events
}

func keepMax(current *float64, v float64) *float64 {
	if current == nil || v > *current {
		return &v
	}
	return current
}

func keepMin(current *float64, v float64) *float64 {
	if current == nil || v < *current {
		return &v
	}
	return current
}
