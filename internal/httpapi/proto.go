package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/BrandonDHaskell/farecard/internal/farecard/types"
)

// maxRequestBody caps request bodies. A history block is 16 bytes; even a
// hex dump with separators fits comfortably.
const maxRequestBody = 4096

const protobufContentType = "application/x-protobuf"

// isProtobuf returns true if the request body is protobuf.
func isProtobuf(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return ct == protobufContentType ||
		ct == "application/protobuf" ||
		ct == "application/octet-stream"
}

// wantsProtobuf returns true if the client asked for a protobuf response,
// either explicitly or by sending protobuf without an Accept header.
func wantsProtobuf(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	if accept == "" {
		return isProtobuf(r)
	}
	return strings.Contains(accept, protobufContentType) || strings.Contains(accept, "application/protobuf")
}

// readProtoRecord reads a google.protobuf.BytesValue holding the raw record.
func readProtoRecord(r *http.Request) (types.RawRecord, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		return nil, err
	}
	var msg wrapperspb.BytesValue
	if err := proto.Unmarshal(body, &msg); err != nil {
		return nil, err
	}
	return types.RawRecord(msg.GetValue()), nil
}

// writeProtoJSON converts v through its JSON form into a
// google.protobuf.Struct and writes it as protobuf.
func writeProtoJSON(w http.ResponseWriter, status int, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "proto marshal error", http.StatusInternalServerError)
		return
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		http.Error(w, "proto marshal error", http.StatusInternalServerError)
		return
	}
	st, err := structpb.NewStruct(m)
	if err != nil {
		http.Error(w, "proto marshal error", http.StatusInternalServerError)
		return
	}
	writeProto(w, status, st)
}

// writeProto marshals msg and writes it with the given HTTP status.
func writeProto(w http.ResponseWriter, status int, msg proto.Message) {
	data, err := proto.Marshal(msg)
	if err != nil {
		http.Error(w, "proto marshal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", protobufContentType)
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
