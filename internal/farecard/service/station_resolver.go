package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/BrandonDHaskell/farecard/internal/farecard/store"
	"github.com/BrandonDHaskell/farecard/internal/farecard/types"
)

const defaultLookupTimeout = 2 * time.Second

var errNoProvider = errors.New("no code table provider")

type lookupOutcome int

const (
	outcomeFound lookupOutcome = iota
	outcomeNotFound
	outcomeBackendFault
)

func (o lookupOutcome) String() string {
	switch o {
	case outcomeFound:
		return OutcomeFound
	case outcomeNotFound:
		return OutcomeNotFound
	default:
		return OutcomeBackendFault
	}
}

// ResolverOptions configures a StationResolver.
type ResolverOptions struct {
	// Locale picks the name columns. Resolved once by the caller.
	Locale types.DisplayLocale

	// Diagnostics receives every lookup outcome. Defaults to LogDiagnostics.
	Diagnostics Diagnostics

	// Timeout bounds each provider call. Defaults to 2s.
	Timeout time.Duration
}

// StationResolver maps line/station codes to named stations. It never
// returns an error: misses and backend faults both come back as
// not found, and the difference is reported to Diagnostics.
type StationResolver struct {
	provider store.CodeTableProvider
	locale   types.DisplayLocale
	diag     Diagnostics
	timeout  time.Duration
}

func NewStationResolver(p store.CodeTableProvider, opts ResolverOptions) *StationResolver {
	if opts.Diagnostics == nil {
		opts.Diagnostics = LogDiagnostics{Logger: slog.Default()}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultLookupTimeout
	}
	return &StationResolver{
		provider: p,
		locale:   opts.Locale,
		diag:     opts.Diagnostics,
		timeout:  opts.Timeout,
	}
}

// ResolveRailStation looks up a rail station. The area code is the top
// two bits of the region code; all three keys are compared as bytes.
func (r *StationResolver) ResolveRailStation(ctx context.Context, regionCode, lineCode, stationCode int) (types.StationRecord, bool) {
	areaCode := regionCode >> 6
	ev := LookupEvent{Table: TableRail, Region: regionCode, Area: areaCode, Line: lineCode, Station: stationCode}

	var row store.RailStationRow
	outcome := r.lookup(ctx, &ev, func(ctx context.Context) (bool, error) {
		var (
			ok  bool
			err error
		)
		row, ok, err = r.provider.RailStation(ctx, areaCode&0xff, lineCode&0xff, stationCode&0xff)
		return ok, err
	})
	if outcome != outcomeFound {
		return types.StationRecord{}, false
	}

	st := types.StationRecord{
		Kind:      types.StationRail,
		Latitude:  parseCoord(row.Latitude),
		Longitude: parseCoord(row.Longitude),
	}
	if r.locale == types.LocalePrimary {
		st.CompanyName, st.LineName, st.StationName = row.CompanyName, row.LineName, row.StationName
	} else {
		st.CompanyName, st.LineName, st.StationName = row.CompanyNameEN, row.LineNameEN, row.StationNameEN
	}
	return st, true
}

// ResolveBusStop looks up an IruCa bus stop. The bus table has no area
// column, so the area derived from regionCode is reported but not queried.
// Line and station codes are matched as unpadded lowercase hex text.
func (r *StationResolver) ResolveBusStop(ctx context.Context, regionCode, lineCode, stationCode int) (types.StationRecord, bool) {
	areaCode := regionCode >> 6
	ev := LookupEvent{Table: TableBus, Region: regionCode, Area: areaCode, Line: lineCode, Station: stationCode}

	var row store.BusStopRow
	outcome := r.lookup(ctx, &ev, func(ctx context.Context) (bool, error) {
		var (
			ok  bool
			err error
		)
		row, ok, err = r.provider.BusStop(ctx, hexCode(lineCode), hexCode(stationCode))
		return ok, err
	})
	if outcome != outcomeFound {
		return types.StationRecord{}, false
	}

	st := types.StationRecord{Kind: types.StationBus}
	if r.locale == types.LocalePrimary {
		st.CompanyName, st.StationName = row.CompanyName, row.StationName
	} else {
		st.CompanyName, st.StationName = row.CompanyNameEN, row.StationNameEN
	}
	return st, true
}

// lookup runs q under the resolver timeout, turning errors and panics
// into outcomeBackendFault, and reports the result.
func (r *StationResolver) lookup(ctx context.Context, ev *LookupEvent, q func(context.Context) (bool, error)) (outcome lookupOutcome) {
	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			outcome = outcomeBackendFault
			ev.Err = fmt.Errorf("code table provider panic: %v", p)
		}
		ev.Outcome = outcome.String()
		ev.Duration = time.Since(start)
		r.diag.ObserveLookup(*ev)
	}()

	if r.provider == nil {
		ev.Err = errNoProvider
		return outcomeBackendFault
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	ok, err := q(ctx)
	switch {
	case err != nil:
		ev.Err = err
		return outcomeBackendFault
	case !ok:
		return outcomeNotFound
	default:
		return outcomeFound
	}
}

// parseCoord returns nil for blank or malformed coordinate text.
func parseCoord(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// hexCode renders v as lowercase hex of its 32-bit two's complement,
// so -1 becomes "ffffffff".
func hexCode(v int) string {
	return strconv.FormatUint(uint64(uint32(v)), 16)
}
