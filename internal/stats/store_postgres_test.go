package stats

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
)

func TestPostgresStoreLoadNoRow(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT num_flight_schedules, num_passenger_checkins,`).
		WillReturnRows(pgxmock.NewRows([]string{
			"num_flight_schedules", "num_passenger_checkins",
			"max_luggage_weight", "min_luggage_weight",
			"max_flight_duration", "min_flight_duration", "last_updated",
		}))

	store := NewPostgresStore(mock)
	if _, err := store.Load(context.Background()); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresStoreLoadRow(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	lastUpdated := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT num_flight_schedules, num_passenger_checkins,`).
		WillReturnRows(pgxmock.NewRows([]string{
			"num_flight_schedules", "num_passenger_checkins",
			"max_luggage_weight", "min_luggage_weight",
			"max_flight_duration", "min_flight_duration", "last_updated",
		}).AddRow(uint64(12), uint64(34), floatPtr(48.5), floatPtr(3.2), floatPtr(660.0), floatPtr(45.0), lastUpdated))

	store := NewPostgresStore(mock)
	record, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if record.NumFlightSchedules != 12 || record.NumPassengerCheckins != 34 {
		t.Fatalf("counter mismatch: %+v", record)
	}
	if record.MinLuggageWeight == nil || *record.MinLuggageWeight != 3.2 {
		t.Fatalf("min luggage mismatch: %+v", record)
	}
	if !record.LastUpdated.Equal(lastUpdated) {
		t.Fatalf("checkpoint mismatch: %v", record.LastUpdated)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresStoreLoadUnsetExtrema(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT num_flight_schedules, num_passenger_checkins,`).
		WillReturnRows(pgxmock.NewRows([]string{
			"num_flight_schedules", "num_passenger_checkins",
			"max_luggage_weight", "min_luggage_weight",
			"max_flight_duration", "min_flight_duration", "last_updated",
		}).AddRow(uint64(0), uint64(0), (*float64)(nil), (*float64)(nil), (*float64)(nil), (*float64)(nil), time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)))

	store := NewPostgresStore(mock)
	record, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if record.MinLuggageWeight != nil || record.MaxFlightDuration != nil {
		t.Fatalf("expected unset extrema, got %+v", record)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresStoreSave(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	record := sampleRecord()
	mock.ExpectExec(`INSERT INTO flight_stats`).
		WithArgs(
			record.NumFlightSchedules, record.NumPassengerCheckins,
			record.MaxLuggageWeight, record.MinLuggageWeight,
			record.MaxFlightDuration, record.MinFlightDuration,
			record.LastUpdated.UTC(),
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	store := NewPostgresStore(mock)
	if err := store.Save(context.Background(), record); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
