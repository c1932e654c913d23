package stats

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func TestGetStatsBeforeAnyCycle(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "stats.json"))

	app := fiber.New()
	RegisterRoutes(app.Group("/stats"), NewService(store))

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 on fresh store, got %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] != "statistics do not exist" {
		t.Fatalf("unexpected message: %q", body["message"])
	}
}

func TestGetStatsReturnsPersistedRecord(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "stats.json"))
	if err := store.Save(context.Background(), sampleRecord()); err != nil {
		t.Fatalf("save: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app.Group("/stats"), NewService(store))

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var record StatsRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record.NumFlightSchedules != 12 || record.NumPassengerCheckins != 34 {
		t.Fatalf("counter mismatch: %+v", record)
	}
	if record.MinFlightDuration == nil || *record.MinFlightDuration != 45 {
		t.Fatalf("extremum mismatch: %+v", record)
	}
	want := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	if !record.LastUpdated.Equal(want) {
		t.Fatalf("checkpoint mismatch: %v", record.LastUpdated)
	}
}
