package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/BrandonDHaskell/farecard/internal/farecard/service"
	"github.com/BrandonDHaskell/farecard/internal/farecard/types"
)

var ErrInvalidCode = errors.New("code must be an integer, decimal or 0x-prefixed hex")

type Dependencies struct {
	Logger   *slog.Logger
	Addr     string
	Decoder  *service.HistoryDecoder
	Catalog  *service.Catalog
	Resolver *service.StationResolver

	// Metrics is mounted at GET /metrics when non-nil.
	Metrics http.Handler
}

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	mux        *http.ServeMux
	decoder    *service.HistoryDecoder
	catalog    *service.Catalog
	resolver   *service.StationResolver
}

func NewServer(d Dependencies) *Server {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	mux := http.NewServeMux()

	s := &Server{
		logger:   d.Logger,
		mux:      mux,
		decoder:  d.Decoder,
		catalog:  d.Catalog,
		resolver: d.Resolver,
	}

	mux.HandleFunc("POST /v1/records/decode", s.handleDecode)
	mux.HandleFunc("GET /v1/terminals/{code}", s.handleTerminal)
	mux.HandleFunc("GET /v1/processes/{code}", s.handleProcess)
	mux.HandleFunc("GET /v1/stations/rail", s.handleRailStation)
	mux.HandleFunc("GET /v1/stations/bus", s.handleBusStop)
	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics)
	}

	handler := loggingMiddleware(d.Logger, mux)

	s.httpServer = &http.Server{
		Addr:              d.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	var (
		rec types.RawRecord
		err error
	)

	if isProtobuf(r) {
		rec, err = readProtoRecord(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_protobuf", "invalid protobuf body")
			return
		}
	} else {
		var req types.DecodeRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
			return
		}
		rec, err = service.ParseRecordHex(req.RecordHex)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_record_hex", service.ErrInvalidRecordHex.Error())
			return
		}
	}

	entry, err := s.decoder.Decode(r.Context(), rec)
	if err != nil {
		if errors.Is(err, types.ErrShortRecord) {
			writeError(w, http.StatusBadRequest, "short_record", "record must be at least 16 bytes")
			return
		}
		s.logger.Error("decode error", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}

	if wantsProtobuf(r) {
		writeProtoJSON(w, http.StatusOK, entry)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleTerminal(w http.ResponseWriter, r *http.Request) {
	code, err := parseCode(r.PathValue("code"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_code", err.Error())
		return
	}
	id, known := s.catalog.TerminalID(code)
	writeJSON(w, http.StatusOK, types.CodeLabelResponse{
		Code:  code & 0xff,
		ID:    id,
		Name:  s.catalog.TerminalName(code),
		Known: known,
	})
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	code, err := parseCode(r.PathValue("code"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_code", err.Error())
		return
	}
	id, known := s.catalog.ProcessID(code)
	writeJSON(w, http.StatusOK, types.CodeLabelResponse{
		Code:  code & 0xff,
		ID:    id,
		Name:  s.catalog.ProcessName(code),
		Known: known,
	})
}

func (s *Server) handleRailStation(w http.ResponseWriter, r *http.Request) {
	region, line, station, ok := stationQuery(w, r)
	if !ok {
		return
	}
	st, found := s.resolver.ResolveRailStation(r.Context(), region, line, station)
	writeStation(w, st, found)
}

func (s *Server) handleBusStop(w http.ResponseWriter, r *http.Request) {
	region, line, station, ok := stationQuery(w, r)
	if !ok {
		return
	}
	st, found := s.resolver.ResolveBusStop(r.Context(), region, line, station)
	writeStation(w, st, found)
}

func stationQuery(w http.ResponseWriter, r *http.Request) (region, line, station int, ok bool) {
	q := r.URL.Query()
	vals := make([]int, 3)
	for i, key := range []string{"region", "line", "station"} {
		v, err := parseCode(q.Get(key))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_"+key, err.Error())
			return 0, 0, 0, false
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], true
}

func writeStation(w http.ResponseWriter, st types.StationRecord, found bool) {
	if !found {
		writeError(w, http.StatusNotFound, "not_found", "no station for these codes")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// parseCode accepts decimal or 0x-prefixed hex.
func parseCode(s string) (int, error) {
	if s == "" {
		return 0, ErrInvalidCode
	}
	v, err := strconv.ParseInt(s, 0, 32)
	if err != nil {
		return 0, ErrInvalidCode
	}
	return int(v), nil
}
