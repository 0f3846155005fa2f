package history

import (
	"context"
	"path/filepath"
	"testing"

	"loadmaster/internal/app"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleData(zfw float64) app.LoadsheetData {
	return app.LoadsheetData{
		ZeroFuelWeight:   zfw,
		TakeoffWeight:    zfw + 6000,
		LandingWeight:    zfw + 1800,
		FuelWeight:       6000,
		TotalPassengers:  150,
		PassengersByZone: [app.PassengerZones]int{33, 33, 33, 51},
	}
}

func TestNewStoreEmptyPath(t *testing.T) {
	if _, err := NewStore(""); err == nil {
		t.Error("Expected error for empty database path")
	}
}

func TestSaveAndRecent(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "DLH39A", app.Preliminary, sampleData(57100)); err != nil {
		t.Fatalf("Failed to save preliminary: %v", err)
	}
	if err := store.Save(ctx, "DLH39A", app.Final, sampleData(57240)); err != nil {
		t.Fatalf("Failed to save final: %v", err)
	}

	records, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Failed to query recent: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	// newest first
	if records[0].Type != app.Final {
		t.Errorf("Expected Final first, got %s", records[0].Type)
	}
	if records[0].Data.ZeroFuelWeight != 57240 {
		t.Errorf("Expected ZFW 57240, got %f", records[0].Data.ZeroFuelWeight)
	}
	if records[1].Type != app.Preliminary {
		t.Errorf("Expected Preliminary second, got %s", records[1].Type)
	}
	if records[0].ReceivedAt.IsZero() {
		t.Error("Expected received timestamp to round-trip")
	}
}

func TestRecentLimit(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.Save(ctx, "DLH39A", app.Preliminary, sampleData(57000+float64(i))); err != nil {
			t.Fatalf("Failed to save record %d: %v", i, err)
		}
	}

	records, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Failed to query recent: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("Expected 3 records with limit, got %d", len(records))
	}
	if records[0].Data.ZeroFuelWeight != 57004 {
		t.Errorf("Expected newest record first, got ZFW %f", records[0].Data.ZeroFuelWeight)
	}
}

func TestForFlight(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "DLH39A", app.Preliminary, sampleData(57100)); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	if err := store.Save(ctx, "BAW117", app.Preliminary, sampleData(58900)); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	if err := store.Save(ctx, "DLH39A", app.Final, sampleData(57240)); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}

	records, err := store.ForFlight(ctx, "DLH39A")
	if err != nil {
		t.Fatalf("Failed to query flight: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records for DLH39A, got %d", len(records))
	}
	// oldest first
	if records[0].Type != app.Preliminary || records[1].Type != app.Final {
		t.Errorf("Expected Preliminary then Final, got %s then %s", records[0].Type, records[1].Type)
	}

	none, err := store.ForFlight(ctx, "AFR991")
	if err != nil {
		t.Fatalf("Failed to query unknown flight: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no records for unknown flight, got %d", len(none))
	}
}
