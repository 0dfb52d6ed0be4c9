package service

import (
	"context"
	"encoding/binary"

	"github.com/BrandonDHaskell/farecard/internal/farecard/types"
)

// Record kinds, as reported to a RecordObserver.
const (
	RecordProductSale = "product_sale"
	RecordBus         = "bus"
	RecordRail        = "rail"
)

// RecordObserver is told the kind of every decoded record.
type RecordObserver interface {
	ObserveRecord(kind string)
}

// HistoryDecoder decodes a full 16-byte history block by combining the
// timestamp decoder, the catalog and the station resolver.
type HistoryDecoder struct {
	catalog  *Catalog
	resolver *StationResolver
	observer RecordObserver
}

// NewHistoryDecoder wires a decoder. observer may be nil.
func NewHistoryDecoder(cat *Catalog, res *StationResolver, observer RecordObserver) *HistoryDecoder {
	return &HistoryDecoder{catalog: cat, resolver: res, observer: observer}
}

// Decode reads one history block. Only a short record is an error;
// unknown codes and unresolved stations leave their fields empty.
func (d *HistoryDecoder) Decode(ctx context.Context, rec types.RawRecord) (types.HistoryEntry, error) {
	if len(rec) < types.HistoryRecordLen {
		return types.HistoryEntry{}, types.ErrShortRecord
	}

	terminal := int(rec[0])
	process := int(rec[1])

	e := types.HistoryEntry{
		TerminalCode: terminal,
		Terminal:     d.catalog.TerminalName(terminal),
		ProcessCode:  process,
		Process:      d.catalog.ProcessName(process),
		ProductSale:  IsProductSale(terminal),
		Bus:          IsBus(terminal),
		RegionCode:   int(rec[15]),
		Balance:      int(binary.LittleEndian.Uint16(rec[10:12])),
	}
	e.TerminalID, _ = d.catalog.TerminalID(terminal)
	e.ProcessID, _ = d.catalog.ProcessID(process)

	ts, ok, err := DecodeTimestamp(rec, e.ProductSale)
	if err != nil {
		return types.HistoryEntry{}, err
	}
	if ok {
		e.Timestamp = &ts
	}

	kind := RecordRail
	switch {
	case e.ProductSale:
		kind = RecordProductSale

	case e.Bus:
		kind = RecordBus
		e.EntryLine = int(binary.BigEndian.Uint16(rec[6:8]))
		e.EntryStation = int(binary.BigEndian.Uint16(rec[8:10]))
		if st, ok := d.resolver.ResolveBusStop(ctx, e.RegionCode, e.EntryLine, e.EntryStation); ok {
			e.Entry = &st
		}

	default:
		e.EntryLine, e.EntryStation = int(rec[6]), int(rec[7])
		e.ExitLine, e.ExitStation = int(rec[8]), int(rec[9])
		if e.EntryLine != 0 || e.EntryStation != 0 {
			if st, ok := d.resolver.ResolveRailStation(ctx, e.RegionCode, e.EntryLine, e.EntryStation); ok {
				e.Entry = &st
			}
		}
		if e.ExitLine != 0 || e.ExitStation != 0 {
			if st, ok := d.resolver.ResolveRailStation(ctx, e.RegionCode, e.ExitLine, e.ExitStation); ok {
				e.Exit = &st
			}
		}
	}

	if d.observer != nil {
		d.observer.ObserveRecord(kind)
	}
	return e, nil
}
