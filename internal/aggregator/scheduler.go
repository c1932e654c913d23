package aggregator

import (
	"context"
	"time"
)

const defaultInterval = 30 * time.Second

// Scheduler fires aggregation cycles at a fixed interval. Overlap safety
// comes from the aggregator's own mutex, not from timing assumptions.
type Scheduler struct {
	agg      *Aggregator
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewScheduler(agg *Aggregator, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Scheduler{
		agg:      agg,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the schedule loop. The first cycle fires after one full
// interval; the loop exits on Stop or context cancellation.
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.agg.Run(ctx)
			case <-s.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop halts the schedule and waits for the loop to exit. A cycle already
// in flight runs to completion first.
func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
}
