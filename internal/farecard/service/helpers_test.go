package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/BrandonDHaskell/farecard/internal/farecard/service"
	"github.com/BrandonDHaskell/farecard/internal/farecard/store"
	"github.com/BrandonDHaskell/farecard/internal/farecard/store/memory"
)

var errBackend = errors.New("disk I/O error")

func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingDiagnostics keeps every event for inspection.
type recordingDiagnostics struct {
	mu     sync.Mutex
	events []service.LookupEvent
}

func (d *recordingDiagnostics) ObserveLookup(ev service.LookupEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, ev)
}

func (d *recordingDiagnostics) Events() []service.LookupEvent {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]service.LookupEvent, len(d.events))
	copy(out, d.events)
	return out
}

// faultyProvider fails every call.
type faultyProvider struct{ err error }

func (p faultyProvider) RailStation(context.Context, int, int, int) (store.RailStationRow, bool, error) {
	return store.RailStationRow{}, false, p.err
}

func (p faultyProvider) BusStop(context.Context, string, string) (store.BusStopRow, bool, error) {
	return store.BusStopRow{}, false, p.err
}

func (p faultyProvider) Ping(context.Context) error { return p.err }

// panickyProvider panics on every lookup.
type panickyProvider struct{}

func (panickyProvider) RailStation(context.Context, int, int, int) (store.RailStationRow, bool, error) {
	panic("corrupt table")
}

func (panickyProvider) BusStop(context.Context, string, string) (store.BusStopRow, bool, error) {
	panic("corrupt table")
}

func (panickyProvider) Ping(context.Context) error { return nil }

// slowProvider blocks until ctx is done.
type slowProvider struct{}

func (slowProvider) RailStation(ctx context.Context, _, _, _ int) (store.RailStationRow, bool, error) {
	<-ctx.Done()
	return store.RailStationRow{}, false, ctx.Err()
}

func (slowProvider) BusStop(ctx context.Context, _, _ string) (store.BusStopRow, bool, error) {
	<-ctx.Done()
	return store.BusStopRow{}, false, ctx.Err()
}

func (slowProvider) Ping(ctx context.Context) error { return nil }

// recordingProvider remembers the keys it was queried with.
type recordingProvider struct {
	*memory.CodeTableStore
	mu       sync.Mutex
	railKeys [][3]int
	busKeys  [][2]string
}

func (p *recordingProvider) RailStation(ctx context.Context, a, l, s int) (store.RailStationRow, bool, error) {
	p.mu.Lock()
	p.railKeys = append(p.railKeys, [3]int{a, l, s})
	p.mu.Unlock()
	return p.CodeTableStore.RailStation(ctx, a, l, s)
}

func (p *recordingProvider) BusStop(ctx context.Context, l, s string) (store.BusStopRow, bool, error) {
	p.mu.Lock()
	p.busKeys = append(p.busKeys, [2]string{l, s})
	p.mu.Unlock()
	return p.CodeTableStore.BusStop(ctx, l, s)
}

func sampleTables() *memory.CodeTableStore {
	return memory.NewCodeTableStore(
		[]store.RailStationRow{
			{
				ID: 4, AreaCode: 2, LineCode: 1, StationCode: 2,
				CompanyName: "JR西日本", LineName: "東海道本線", StationName: "大阪",
				CompanyNameEN: "JR West", LineNameEN: "Tokaido Main Line", StationNameEN: "Osaka",
				Latitude: "34.702485", Longitude: "135.495951",
			},
			{
				ID: 9, AreaCode: 2, LineCode: 1, StationCode: 2,
				StationNameEN: "Osaka (later row)",
			},
			{
				ID: 1, AreaCode: 0, LineCode: 0x25, StationCode: 0x0a,
				CompanyName: "JR東日本", LineName: "山手線", StationName: "渋谷",
				CompanyNameEN: "JR East", LineNameEN: "Yamanote Line", StationNameEN: "Shibuya",
			},
		},
		[]store.BusStopRow{
			{
				ID: 1, LineCode: "1", StationCode: "2a",
				CompanyName: "ことでんバス", StationName: "高松駅",
				CompanyNameEN: "Kotoden Bus", StationNameEN: "Takamatsu Station",
			},
		},
	)
}
