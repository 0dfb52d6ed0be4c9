package sqlite_test

import (
	"context"
	"testing"

	"github.com/BrandonDHaskell/farecard/internal/db"
	"github.com/BrandonDHaskell/farecard/internal/farecard/store"
	sqlitestore "github.com/BrandonDHaskell/farecard/internal/farecard/store/sqlite"
)

func osaka(id int) store.RailStationRow {
	return store.RailStationRow{
		ID: id, AreaCode: 2, LineCode: 1, StationCode: 2,
		CompanyName: "JR西日本", LineName: "東海道本線", StationName: "大阪",
		CompanyNameEN: "JR West", LineNameEN: "Tokaido Main Line", StationNameEN: "Osaka",
		Latitude: "34.702485", Longitude: "135.495951",
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// RailStation
// ═══════════════════════════════════════════════════════════════════════════

func TestCodeTableStore_RailStation_Hit(t *testing.T) {
	conn := openTestDB(t)
	s := sqlitestore.NewCodeTableStore(conn, newTestWriter(t, conn))
	ctx := context.Background()

	if err := s.PutRailStation(ctx, osaka(10)); err != nil {
		t.Fatalf("PutRailStation: %v", err)
	}

	row, ok, err := s.RailStation(ctx, 2, 1, 2)
	if err != nil {
		t.Fatalf("RailStation: %v", err)
	}
	if !ok {
		t.Fatal("expected a row")
	}
	if row != osaka(10) {
		t.Errorf("row mismatch:\n got %+v\nwant %+v", row, osaka(10))
	}
}

func TestCodeTableStore_RailStation_Miss(t *testing.T) {
	conn := openTestDB(t)
	s := sqlitestore.NewCodeTableStore(conn, newTestWriter(t, conn))
	ctx := context.Background()

	if err := s.PutRailStation(ctx, osaka(10)); err != nil {
		t.Fatalf("PutRailStation: %v", err)
	}

	_, ok, err := s.RailStation(ctx, 2, 1, 0x99)
	if err != nil {
		t.Fatalf("RailStation: %v", err)
	}
	if ok {
		t.Error("expected no row for unknown station")
	}
}

func TestCodeTableStore_RailStation_LowestIDWins(t *testing.T) {
	conn := openTestDB(t)
	s := sqlitestore.NewCodeTableStore(conn, newTestWriter(t, conn))
	ctx := context.Background()

	later := osaka(20)
	later.StationNameEN = "Osaka (duplicate)"
	for _, r := range []store.RailStationRow{later, osaka(5)} {
		if err := s.PutRailStation(ctx, r); err != nil {
			t.Fatalf("PutRailStation: %v", err)
		}
	}

	row, ok, err := s.RailStation(ctx, 2, 1, 2)
	if err != nil || !ok {
		t.Fatalf("RailStation: ok=%v err=%v", ok, err)
	}
	if row.ID != 5 {
		t.Errorf("expected id=5, got %d", row.ID)
	}
}

func TestCodeTableStore_PutRailStation_Replaces(t *testing.T) {
	conn := openTestDB(t)
	s := sqlitestore.NewCodeTableStore(conn, newTestWriter(t, conn))
	ctx := context.Background()

	if err := s.PutRailStation(ctx, osaka(1)); err != nil {
		t.Fatalf("PutRailStation: %v", err)
	}
	updated := osaka(1)
	updated.StationCode = 3
	if err := s.PutRailStation(ctx, updated); err != nil {
		t.Fatalf("PutRailStation update: %v", err)
	}

	if _, ok, _ := s.RailStation(ctx, 2, 1, 2); ok {
		t.Error("old key should no longer match")
	}
	if _, ok, _ := s.RailStation(ctx, 2, 1, 3); !ok {
		t.Error("new key should match")
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// BusStop
// ═══════════════════════════════════════════════════════════════════════════

func TestCodeTableStore_BusStop_MatchesHexText(t *testing.T) {
	conn := openTestDB(t)
	s := sqlitestore.NewCodeTableStore(conn, newTestWriter(t, conn))
	ctx := context.Background()

	want := store.BusStopRow{
		ID: 1, LineCode: "1", StationCode: "2a",
		CompanyName: "ことでんバス", StationName: "高松駅",
		CompanyNameEN: "Kotoden Bus", StationNameEN: "Takamatsu Station",
	}
	if err := s.PutBusStop(ctx, want); err != nil {
		t.Fatalf("PutBusStop: %v", err)
	}

	got, ok, err := s.BusStop(ctx, "1", "2a")
	if err != nil || !ok {
		t.Fatalf("BusStop: ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Errorf("row mismatch:\n got %+v\nwant %+v", got, want)
	}

	// Text comparison: "2A" and "42" are different keys.
	for _, station := range []string{"2A", "42"} {
		if _, ok, _ := s.BusStop(ctx, "1", station); ok {
			t.Errorf("station %q should not match", station)
		}
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Faults and seeding
// ═══════════════════════════════════════════════════════════════════════════

func TestCodeTableStore_ClosedDB_ReturnsError(t *testing.T) {
	conn := openTestDB(t)
	s := sqlitestore.NewCodeTableStore(conn, newTestWriter(t, conn))
	conn.Close()

	if _, _, err := s.RailStation(context.Background(), 0, 1, 1); err == nil {
		t.Error("expected error from closed database")
	}
	if _, _, err := s.BusStop(context.Background(), "1", "1"); err == nil {
		t.Error("expected error from closed database")
	}
	if err := s.Ping(context.Background()); err == nil {
		t.Error("expected ping error from closed database")
	}
}

func TestSeedDev_RowsResolvable(t *testing.T) {
	conn := openTestDB(t)
	s := sqlitestore.NewCodeTableStore(conn, newTestWriter(t, conn))
	ctx := context.Background()

	if err := db.SeedDev(ctx, conn); err != nil {
		t.Fatalf("SeedDev: %v", err)
	}
	// Seeding twice is harmless.
	if err := db.SeedDev(ctx, conn); err != nil {
		t.Fatalf("SeedDev again: %v", err)
	}

	row, ok, err := s.RailStation(ctx, 2, 1, 2)
	if err != nil || !ok {
		t.Fatalf("RailStation: ok=%v err=%v", ok, err)
	}
	if row.StationNameEN != "Osaka" {
		t.Errorf("expected Osaka, got %q", row.StationNameEN)
	}
	if _, ok, _ := s.BusStop(ctx, "1", "2a"); !ok {
		t.Error("expected seeded bus stop")
	}
}

func TestCodeTableStore_RailStation_NullCoordinates(t *testing.T) {
	conn := openTestDB(t)
	s := sqlitestore.NewCodeTableStore(conn, newTestWriter(t, conn))
	ctx := context.Background()

	// Reference databases built elsewhere may leave coordinates NULL.
	if _, err := conn.ExecContext(ctx, `
DROP TABLE station_codes;
CREATE TABLE station_codes (
  id INTEGER PRIMARY KEY,
  area_code INTEGER NOT NULL, line_code INTEGER NOT NULL, station_code INTEGER NOT NULL,
  company_name TEXT NOT NULL DEFAULT '', line_name TEXT NOT NULL DEFAULT '', station_name TEXT NOT NULL DEFAULT '',
  company_name_en TEXT NOT NULL DEFAULT '', line_name_en TEXT NOT NULL DEFAULT '', station_name_en TEXT NOT NULL DEFAULT '',
  latitude TEXT, longitude TEXT
);
INSERT INTO station_codes(id, area_code, line_code, station_code, station_name_en, latitude, longitude)
VALUES (1, 2, 1, 2, 'Osaka', NULL, NULL);
`); err != nil {
		t.Fatalf("recreate station_codes: %v", err)
	}

	row, ok, err := s.RailStation(ctx, 2, 1, 2)
	if err != nil {
		t.Fatalf("RailStation: %v", err)
	}
	if !ok {
		t.Fatal("expected a row")
	}
	if row.StationNameEN != "Osaka" || row.Latitude != "" || row.Longitude != "" {
		t.Errorf("unexpected row %+v", row)
	}
}
