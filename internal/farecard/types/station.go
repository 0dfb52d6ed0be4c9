package types

// StationKind says which code table a StationRecord came from.
type StationKind string

const (
	StationRail StationKind = "rail"
	StationBus  StationKind = "bus"
)

// StationRecord is a resolved station or bus stop.
//
// Rail records carry a line name and, when the table has them, coordinates.
// Bus records never do; the bus table has no such columns.
type StationRecord struct {
	Kind        StationKind `json:"kind"`
	CompanyName string      `json:"company_name"`
	LineName    string      `json:"line_name,omitempty"`
	StationName string      `json:"station_name"`
	Latitude    *float64    `json:"latitude,omitempty"`
	Longitude   *float64    `json:"longitude,omitempty"`
}

// HasLocation reports whether both coordinates are present.
func (s StationRecord) HasLocation() bool {
	return s.Latitude != nil && s.Longitude != nil
}
