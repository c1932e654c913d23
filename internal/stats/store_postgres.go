package stats

import (
	"context"
	"errors"
	"time"

	"backend-flightstats/internal/db"

	"github.com/jackc/pgx/v5"
)

// PostgresStore keeps the record as a single upserted row. The full-row
// upsert gives the same replace-whole-document semantics as the file store.
type PostgresStore struct {
	db db.Querier
}

func NewPostgresStore(q db.Querier) *PostgresStore {
	return &PostgresStore{db: q}
}

func (s *PostgresStore) Load(ctx context.Context) (StatsRecord, error) {
	var record StatsRecord
	var lastUpdated time.Time

	row := s.db.QueryRow(ctx, `
		SELECT num_flight_schedules, num_passenger_checkins,
		       max_luggage_weight, min_luggage_weight,
		       max_flight_duration, min_flight_duration, last_updated
		FROM flight_stats WHERE id = 1
	`)
	err := row.Scan(
		&record.NumFlightSchedules, &record.NumPassengerCheckins,
		&record.MaxLuggageWeight, &record.MinLuggageWeight,
		&record.MaxFlightDuration, &record.MinFlightDuration, &lastUpdated,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return StatsRecord{}, ErrNotFound
	}
	if err != nil {
		return StatsRecord{}, err
	}

	record.LastUpdated = Timestamp{Time: lastUpdated.UTC()}
	return record, nil
}

func (s *PostgresStore) Save(ctx context.Context, record StatsRecord) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO flight_stats (
			id, num_flight_schedules, num_passenger_checkins,
			max_luggage_weight, min_luggage_weight,
			max_flight_duration, min_flight_duration, last_updated
		) VALUES (1, $1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			num_flight_schedules = EXCLUDED.num_flight_schedules,
			num_passenger_checkins = EXCLUDED.num_passenger_checkins,
			max_luggage_weight = EXCLUDED.max_luggage_weight,
			min_luggage_weight = EXCLUDED.min_luggage_weight,
			max_flight_duration = EXCLUDED.max_flight_duration,
			min_flight_duration = EXCLUDED.min_flight_duration,
			last_updated = EXCLUDED.last_updated
	`,
		record.NumFlightSchedules, record.NumPassengerCheckins,
		record.MaxLuggageWeight, record.MinLuggageWeight,
		record.MaxFlightDuration, record.MinFlightDuration,
		record.LastUpdated.UTC(),
	)
	return err
}
