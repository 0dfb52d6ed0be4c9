package types

import (
	"errors"
	"time"
)

// ErrShortRecord is returned when a record is too short for the field being read.
var ErrShortRecord = errors.New("record too short")

// HistoryRecordLen is the size of one history block on a Suica-family card.
const HistoryRecordLen = 16

// RawRecord is one transaction log entry as read from the card.
// Nothing in this module writes to it.
type RawRecord []byte

// JST is the zone the cards record in. Fixed so that decoding never
// depends on the host's tz database.
var JST = time.FixedZone("JST", 9*60*60)

// Timestamp is a packed date, optionally with hour and minute.
// Fields hold the unpacked bit values as-is; no range checks are applied.
type Timestamp struct {
	Year    int  `json:"year"`
	Month   int  `json:"month"`
	Day     int  `json:"day"`
	Hour    int  `json:"hour"`
	Minute  int  `json:"minute"`
	HasTime bool `json:"has_time"`
}

// In builds a time.Time in loc. Overflowing fields are normalized by time.Date.
func (t Timestamp) In(loc *time.Location) time.Time {
	return time.Date(t.Year, time.Month(t.Month), t.Day, t.Hour, t.Minute, 0, 0, loc)
}

// Time is t.In(JST).
func (t Timestamp) Time() time.Time {
	return t.In(JST)
}
