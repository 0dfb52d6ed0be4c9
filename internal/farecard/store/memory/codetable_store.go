package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/BrandonDHaskell/farecard/internal/farecard/store"
)

// CodeTableStore is an in-memory CodeTableProvider.
// It is intended for use in tests and dev environments.
type CodeTableStore struct {
	mu   sync.RWMutex
	rail []store.RailStationRow
	bus  []store.BusStopRow
}

func NewCodeTableStore(rail []store.RailStationRow, bus []store.BusStopRow) *CodeTableStore {
	s := &CodeTableStore{}
	for _, r := range rail {
		s.PutRailStation(r)
	}
	for _, b := range bus {
		s.PutBusStop(b)
	}
	return s
}

// PutRailStation inserts or replaces the row with r.ID.
func (s *CodeTableStore) PutRailStation(r store.RailStationRow) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.rail {
		if s.rail[i].ID == r.ID {
			s.rail[i] = r
			return
		}
	}
	s.rail = append(s.rail, r)
	sort.Slice(s.rail, func(i, j int) bool { return s.rail[i].ID < s.rail[j].ID })
}

// PutBusStop inserts or replaces the row with b.ID.
func (s *CodeTableStore) PutBusStop(b store.BusStopRow) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.bus {
		if s.bus[i].ID == b.ID {
			s.bus[i] = b
			return
		}
	}
	s.bus = append(s.bus, b)
	sort.Slice(s.bus, func(i, j int) bool { return s.bus[i].ID < s.bus[j].ID })
}

func (s *CodeTableStore) RailStation(_ context.Context, areaCode, lineCode, stationCode int) (store.RailStationRow, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.rail {
		if r.AreaCode == areaCode && r.LineCode == lineCode && r.StationCode == stationCode {
			return r, true, nil
		}
	}
	return store.RailStationRow{}, false, nil
}

func (s *CodeTableStore) BusStop(_ context.Context, lineCode, stationCode string) (store.BusStopRow, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bus {
		if b.LineCode == lineCode && b.StationCode == stationCode {
			return b, true, nil
		}
	}
	return store.BusStopRow{}, false, nil
}

func (s *CodeTableStore) Ping(_ context.Context) error { return nil }
