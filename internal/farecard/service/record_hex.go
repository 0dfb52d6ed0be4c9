package service

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/BrandonDHaskell/farecard/internal/farecard/types"
)

var ErrInvalidRecordHex = errors.New("record_hex must be hex-encoded bytes")

// ParseRecordHex decodes a record dump. Spaces, colons and dashes between
// bytes are ignored, as are an optional 0x prefix and letter case.
func ParseRecordHex(s string) (types.RawRecord, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	s = strings.NewReplacer(" ", "", ":", "", "-", "").Replace(s)
	if s == "" {
		return nil, ErrInvalidRecordHex
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecordHex, err)
	}
	return types.RawRecord(b), nil
}
