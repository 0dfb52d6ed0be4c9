package store

import "context"

// RailStationRow is one row of the rail station-code table.
type RailStationRow struct {
	ID          int
	AreaCode    int
	LineCode    int
	StationCode int

	CompanyName   string
	LineName      string
	StationName   string
	CompanyNameEN string
	LineNameEN    string
	StationNameEN string

	// Coordinates are stored as text and may be blank.
	Latitude  string
	Longitude string
}

// BusStopRow is one row of the IruCa bus stop-code table. Line and station
// codes are lowercase hex text, matching how the table was built.
type BusStopRow struct {
	ID          int
	LineCode    string
	StationCode string

	CompanyName   string
	StationName   string
	CompanyNameEN string
	StationNameEN string
}

// CodeTableProvider answers exact-match lookups against the two code tables.
// When several rows match, the one with the lowest ID is returned.
// A miss is (zero, false, nil); a non-nil error is a backend fault.
//
// Implementations must be safe for concurrent readers.
type CodeTableProvider interface {
	RailStation(ctx context.Context, areaCode, lineCode, stationCode int) (RailStationRow, bool, error)
	BusStop(ctx context.Context, lineCode, stationCode string) (BusStopRow, bool, error)
	Ping(ctx context.Context) error
}
