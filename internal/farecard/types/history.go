package types

// HistoryEntry is one decoded history block.
type HistoryEntry struct {
	TerminalCode int    `json:"terminal_code"`
	TerminalID   string `json:"terminal_id,omitempty"`
	Terminal     string `json:"terminal"`
	ProcessCode  int    `json:"process_code"`
	ProcessID    string `json:"process_id,omitempty"`
	Process      string `json:"process"`

	// Timestamp is nil when the record has no date.
	Timestamp *Timestamp `json:"timestamp,omitempty"`

	ProductSale bool `json:"product_sale"`
	Bus         bool `json:"bus"`

	RegionCode int `json:"region_code"`
	// Raw codes as read, whether or not they resolved.
	EntryLine    int `json:"entry_line"`
	EntryStation int `json:"entry_station"`
	ExitLine     int `json:"exit_line"`
	ExitStation  int `json:"exit_station"`

	// Entry holds the bus stop for bus records.
	Entry *StationRecord `json:"entry,omitempty"`
	Exit  *StationRecord `json:"exit,omitempty"`

	// Balance is the remaining stored value after this transaction, in yen.
	Balance int `json:"balance"`
}
