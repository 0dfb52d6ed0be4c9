package service

import (
	"encoding/binary"

	"github.com/BrandonDHaskell/farecard/internal/farecard/types"
)

// Packed date (bytes 4-5, big-endian): 7-bit year offset from 2000,
// 4-bit month, 5-bit day. Packed time (bytes 6-7): 5-bit hour,
// 6-bit minute, 5 unused bits.
const (
	dateOffset = 4
	timeOffset = 6
	baseYear   = 2000
)

// DecodeTimestamp unpacks the date, and the time of day when hasTimeOfDay
// is set, from rec. A zero date field means no date was recorded and
// returns ok=false. Unpacked values are not range-checked.
func DecodeTimestamp(rec types.RawRecord, hasTimeOfDay bool) (ts types.Timestamp, ok bool, err error) {
	need := dateOffset + 2
	if hasTimeOfDay {
		need = timeOffset + 2
	}
	if len(rec) < need {
		return types.Timestamp{}, false, types.ErrShortRecord
	}

	date := binary.BigEndian.Uint16(rec[dateOffset:])
	if date == 0 {
		return types.Timestamp{}, false, nil
	}

	ts = types.Timestamp{
		Year:  baseYear + int(date>>9),
		Month: int((date >> 5) & 0xf),
		Day:   int(date & 0x1f),
	}

	if hasTimeOfDay {
		t := binary.BigEndian.Uint16(rec[timeOffset:])
		ts.Hour = int(t >> 11)
		ts.Minute = int((t >> 5) & 0x3f)
		ts.HasTime = true
	}

	return ts, true, nil
}

// EncodeDate packs year/month/day into the record date layout.
// Values outside the field widths are truncated.
func EncodeDate(year, month, day int) uint16 {
	return uint16((year-baseYear)&0x7f)<<9 | uint16(month&0xf)<<5 | uint16(day&0x1f)
}

// EncodeTime packs hour/minute into the record time layout.
func EncodeTime(hour, minute int) uint16 {
	return uint16(hour&0x1f)<<11 | uint16(minute&0x3f)<<5
}
