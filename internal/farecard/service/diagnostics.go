package service

import (
	"context"
	"log/slog"
	"time"
)

// Table names a code table in lookup events.
type Table string

const (
	TableRail Table = "rail"
	TableBus  Table = "bus"
)

// Lookup outcomes as reported on the diagnostics channel.
const (
	OutcomeFound        = "found"
	OutcomeNotFound     = "not_found"
	OutcomeBackendFault = "backend_fault"
)

// LookupEvent describes one station resolution. Callers of the resolver
// only see found/not-found; the fault distinction lives here.
type LookupEvent struct {
	Table    Table
	Outcome  string
	Region   int
	Area     int
	Line     int
	Station  int
	Err      error
	Duration time.Duration
}

// Diagnostics receives lookup events. Implementations must not block.
type Diagnostics interface {
	ObserveLookup(ev LookupEvent)
}

// LogDiagnostics writes lookup events to a slog.Logger. Backend faults
// are logged at ERROR, rail misses at WARN, and everything else at DEBUG.
type LogDiagnostics struct {
	Logger *slog.Logger
}

func (d LogDiagnostics) ObserveLookup(ev LookupEvent) {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	level := slog.LevelDebug
	switch {
	case ev.Outcome == OutcomeBackendFault:
		level = slog.LevelError
	case ev.Outcome == OutcomeNotFound && ev.Table == TableRail:
		level = slog.LevelWarn
	}

	attrs := []slog.Attr{
		slog.String("table", string(ev.Table)),
		slog.String("outcome", ev.Outcome),
		slog.String("region", hexCode(ev.Region)),
		slog.String("area", hexCode(ev.Area)),
		slog.String("line", hexCode(ev.Line)),
		slog.String("station", hexCode(ev.Station)),
		slog.Duration("dur", ev.Duration),
	}
	if ev.Err != nil {
		attrs = append(attrs, slog.Any("err", ev.Err))
	}
	logger.LogAttrs(context.Background(), level, "station lookup", attrs...)
}

// MultiDiagnostics fans events out to every member.
type MultiDiagnostics []Diagnostics

func (m MultiDiagnostics) ObserveLookup(ev LookupEvent) {
	for _, d := range m {
		if d != nil {
			d.ObserveLookup(ev)
		}
	}
}
