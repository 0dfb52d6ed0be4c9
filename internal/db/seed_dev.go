package db

import (
	"context"
	"database/sql"
	"fmt"
)

// SeedDev loads a handful of sample code-table rows so a dev server can
// resolve something without the full reference database. Existing rows
// with the same id are left alone.
func SeedDev(ctx context.Context, db *sql.DB) error {
	rail := []struct {
		id, area, line, station        int
		company, lineName, stationName string
		companyEN, lineEN, stEN        string
		lat, lon                       string
	}{
		{1, 0, 0x01, 0x01, "JR東日本", "東海道本線", "東京", "JR East", "Tokaido Main Line", "Tokyo", "35.681236", "139.767125"},
		{2, 0, 0x01, 0x02, "JR東日本", "東海道本線", "有楽町", "JR East", "Tokaido Main Line", "Yurakucho", "35.675069", "139.763328"},
		{3, 0, 0x25, 0x0a, "JR東日本", "山手線", "渋谷", "JR East", "Yamanote Line", "Shibuya", "35.658034", "139.701636"},
		{4, 2, 0x01, 0x02, "JR西日本", "東海道本線", "大阪", "JR West", "Tokaido Main Line", "Osaka", "34.702485", "135.495951"},
	}
	for _, r := range rail {
		if _, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO station_codes(
  id, area_code, line_code, station_code,
  company_name, line_name, station_name,
  company_name_en, line_name_en, station_name_en,
  latitude, longitude
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
			r.id, r.area, r.line, r.station,
			r.company, r.lineName, r.stationName,
			r.companyEN, r.lineEN, r.stEN,
			r.lat, r.lon,
		); err != nil {
			return fmt.Errorf("seed station_codes %d: %w", r.id, err)
		}
	}

	if _, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO iruca_station_codes(
  id, line_code, station_code,
  company_name, station_name, company_name_en, station_name_en
) VALUES (1, '1', '2a', 'ことでんバス', '高松駅', 'Kotoden Bus', 'Takamatsu Station');`); err != nil {
		return fmt.Errorf("seed iruca_station_codes: %w", err)
	}

	return nil
}
