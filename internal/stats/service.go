package stats

import "context"

// Service exposes the last persisted statistics record to read callers.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Get returns the persisted record, or ErrNotFound when no aggregation
// cycle has ever saved one. It never fabricates defaults: "no data yet" is
// a visible outcome on the read path.
func (s *Service) Get(ctx context.Context) (StatsRecord, error) {
	return s.store.Load(ctx)
}
