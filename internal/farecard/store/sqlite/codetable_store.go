package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	dbpkg "github.com/BrandonDHaskell/farecard/internal/db"
	"github.com/BrandonDHaskell/farecard/internal/farecard/store"
)

// CodeTableStore reads the station_codes and iruca_station_codes tables.
// Reads go straight to the pool; writes go through the single writer.
type CodeTableStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewCodeTableStore(db *sql.DB, writer *dbpkg.Worker) *CodeTableStore {
	return &CodeTableStore{db: db, writer: writer}
}

func (s *CodeTableStore) RailStation(ctx context.Context, areaCode, lineCode, stationCode int) (store.RailStationRow, bool, error) {
	var (
		r        store.RailStationRow
		lat, lon sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
SELECT id, area_code, line_code, station_code,
       company_name, line_name, station_name,
       company_name_en, line_name_en, station_name_en,
       latitude, longitude
FROM station_codes
WHERE area_code = ? AND line_code = ? AND station_code = ?
ORDER BY id
LIMIT 1;
`, areaCode, lineCode, stationCode).Scan(
		&r.ID, &r.AreaCode, &r.LineCode, &r.StationCode,
		&r.CompanyName, &r.LineName, &r.StationName,
		&r.CompanyNameEN, &r.LineNameEN, &r.StationNameEN,
		&lat, &lon,
	)
	if err == sql.ErrNoRows {
		return store.RailStationRow{}, false, nil
	}
	if err != nil {
		return store.RailStationRow{}, false, fmt.Errorf("RailStation query: %w", err)
	}
	// NULL coordinates read as blank, i.e. no location.
	r.Latitude, r.Longitude = lat.String, lon.String
	return r, true, nil
}

func (s *CodeTableStore) BusStop(ctx context.Context, lineCode, stationCode string) (store.BusStopRow, bool, error) {
	var b store.BusStopRow
	err := s.db.QueryRowContext(ctx, `
SELECT id, line_code, station_code,
       company_name, station_name, company_name_en, station_name_en
FROM iruca_station_codes
WHERE line_code = ? AND station_code = ?
ORDER BY id
LIMIT 1;
`, lineCode, stationCode).Scan(
		&b.ID, &b.LineCode, &b.StationCode,
		&b.CompanyName, &b.StationName, &b.CompanyNameEN, &b.StationNameEN,
	)
	if err == sql.ErrNoRows {
		return store.BusStopRow{}, false, nil
	}
	if err != nil {
		return store.BusStopRow{}, false, fmt.Errorf("BusStop query: %w", err)
	}
	return b, true, nil
}

func (s *CodeTableStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// PutRailStation inserts or replaces a rail row by id.
func (s *CodeTableStore) PutRailStation(ctx context.Context, r store.RailStationRow) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO station_codes(
  id, area_code, line_code, station_code,
  company_name, line_name, station_name,
  company_name_en, line_name_en, station_name_en,
  latitude, longitude
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  area_code = excluded.area_code,
  line_code = excluded.line_code,
  station_code = excluded.station_code,
  company_name = excluded.company_name,
  line_name = excluded.line_name,
  station_name = excluded.station_name,
  company_name_en = excluded.company_name_en,
  line_name_en = excluded.line_name_en,
  station_name_en = excluded.station_name_en,
  latitude = excluded.latitude,
  longitude = excluded.longitude;
`,
			r.ID, r.AreaCode, r.LineCode, r.StationCode,
			r.CompanyName, r.LineName, r.StationName,
			r.CompanyNameEN, r.LineNameEN, r.StationNameEN,
			r.Latitude, r.Longitude,
		); err != nil {
			return fmt.Errorf("PutRailStation %d: %w", r.ID, err)
		}
		return nil
	})
}

// PutBusStop inserts or replaces a bus row by id.
func (s *CodeTableStore) PutBusStop(ctx context.Context, b store.BusStopRow) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO iruca_station_codes(
  id, line_code, station_code,
  company_name, station_name, company_name_en, station_name_en
) VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  line_code = excluded.line_code,
  station_code = excluded.station_code,
  company_name = excluded.company_name,
  station_name = excluded.station_name,
  company_name_en = excluded.company_name_en,
  station_name_en = excluded.station_name_en;
`,
			b.ID, b.LineCode, b.StationCode,
			b.CompanyName, b.StationName, b.CompanyNameEN, b.StationNameEN,
		); err != nil {
			return fmt.Errorf("PutBusStop %d: %w", b.ID, err)
		}
		return nil
	})
}
