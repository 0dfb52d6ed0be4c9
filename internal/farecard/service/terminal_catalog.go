package service

import "fmt"

// TextResolver turns a stable label identifier into display text.
type TextResolver interface {
	Text(id string) (string, bool)
}

// TextMap is a TextResolver backed by a plain map.
type TextMap map[string]string

func (m TextMap) Text(id string) (string, bool) {
	s, ok := m[id]
	return s, ok
}

// Console (terminal) type codes that change how a record is laid out.
const (
	TerminalVehicle = 0x05
	TerminalPOS     = 0xc7
	TerminalVending = 0xc8
)

var terminalIDs = map[byte]string{
	0x03: "felica_terminal_fare_adjustment",
	0x04: "felica_terminal_portable",
	0x05: "felica_terminal_vehicle",
	0x07: "felica_terminal_ticket",
	0x08: "felica_terminal_ticket",
	0x09: "felica_terminal_deposit_quick_charge",
	0x12: "felica_terminal_tvm_tokyo_monorail",
	0x13: "felica_terminal_tvm_etc",
	0x14: "felica_terminal_tvm_etc",
	0x15: "felica_terminal_tvm_etc",
	0x16: "felica_terminal_turnstile",
	0x17: "felica_terminal_ticket_validator",
	0x18: "felica_terminal_ticket_booth",
	0x19: "felica_terminal_ticket_office_green",
	0x1a: "felica_terminal_ticket_gate_terminal",
	0x1b: "felica_terminal_mobile_phone",
	0x1c: "felica_terminal_connection_adjustment",
	0x1d: "felica_terminal_transfer_adjustment",
	0x1f: "felica_terminal_simple_deposit",
	0x46: "felica_terminal_view_altte",
	0x48: "felica_terminal_view_altte",
	0xc7: "felica_terminal_pos",
	0xc8: "felica_terminal_vending",
}

var processIDs = map[byte]string{
	0x01: "felica_process_fare_exit_gate",
	0x02: "felica_process_charge",
	0x03: "felica_process_purchase_magnetic",
	0x04: "felica_process_fare_adjustment",
	0x05: "felica_process_admission_payment",
	0x06: "felica_process_booth_exit",
	0x07: "felica_process_issue_new",
	0x08: "felica_process_booth_deduction",
	0x0d: "felica_process_bus_pitapa",
	0x0f: "felica_process_bus_iruca",
	0x11: "felica_process_reissue",
	0x13: "felica_process_payment_shinkansen",
	0x14: "felica_process_entry_a_autocharge",
	0x15: "felica_process_exit_a_autocharge",
	0x1f: "felica_process_deposit_bus",
	0x23: "felica_process_purchase_special_ticket",
	0x46: "felica_process_merchandise_purchase",
	0x48: "felica_process_bonus_charge",
	0x49: "felica_process_register_deposit",
	0x4a: "felica_process_merchandise_cancel",
	0x4b: "felica_process_merchandise_admission",
	0x84: "felica_process_payment_thirdparty",
	0x85: "felica_process_admission_thirdparty",
	0xc6: "felica_process_merchandise_purchase_cash",
	0xcb: "felica_process_merchandise_admission_cash",
}

// EnglishText holds the built-in English labels for every catalog identifier.
var EnglishText = TextMap{
	"felica_terminal_fare_adjustment":       "Fare Adjustment Machine",
	"felica_terminal_portable":              "Portable Terminal",
	"felica_terminal_vehicle":               "Vehicle Terminal (Bus)",
	"felica_terminal_ticket":                "Ticket Machine",
	"felica_terminal_deposit_quick_charge":  "Deposit Quick Charge Machine",
	"felica_terminal_tvm_tokyo_monorail":    "Tokyo Monorail TVM",
	"felica_terminal_tvm_etc":               "TVM",
	"felica_terminal_turnstile":             "Turnstile",
	"felica_terminal_ticket_validator":      "Ticket Validator",
	"felica_terminal_ticket_booth":          "Ticket Booth",
	"felica_terminal_ticket_office_green":   "Green Window Ticket Office",
	"felica_terminal_ticket_gate_terminal":  "Ticket Gate Terminal",
	"felica_terminal_mobile_phone":          "Mobile Phone",
	"felica_terminal_connection_adjustment": "Connection Adjustment Machine",
	"felica_terminal_transfer_adjustment":   "Transfer Adjustment Machine",
	"felica_terminal_simple_deposit":        "Simple Deposit Machine",
	"felica_terminal_view_altte":            "VIEW ALTTE",
	"felica_terminal_pos":                   "Point of Sale Terminal",
	"felica_terminal_vending":               "Vending Machine",

	"felica_process_fare_exit_gate":             "Fare Payment (Exit Gate)",
	"felica_process_charge":                     "Charge",
	"felica_process_purchase_magnetic":          "Magnetic Ticket Purchase",
	"felica_process_fare_adjustment":            "Fare Adjustment",
	"felica_process_admission_payment":          "Admission Payment",
	"felica_process_booth_exit":                 "Exit at Ticket Booth",
	"felica_process_issue_new":                  "New Card Issue",
	"felica_process_booth_deduction":            "Deduction at Ticket Booth",
	"felica_process_bus_pitapa":                 "Bus (PiTaPa)",
	"felica_process_bus_iruca":                  "Bus (IruCa)",
	"felica_process_reissue":                    "Reissue",
	"felica_process_payment_shinkansen":         "Shinkansen Payment",
	"felica_process_entry_a_autocharge":         "Entry with Auto-Charge",
	"felica_process_exit_a_autocharge":          "Exit with Auto-Charge",
	"felica_process_deposit_bus":                "Bus Deposit",
	"felica_process_purchase_special_ticket":    "Special Bus Ticket Purchase",
	"felica_process_merchandise_purchase":       "Merchandise Purchase",
	"felica_process_bonus_charge":               "Bonus Charge",
	"felica_process_register_deposit":           "Register Deposit",
	"felica_process_merchandise_cancel":         "Merchandise Cancellation",
	"felica_process_merchandise_admission":      "Admission with Merchandise",
	"felica_process_payment_thirdparty":         "Third-Party Payment",
	"felica_process_admission_thirdparty":       "Third-Party Admission",
	"felica_process_merchandise_purchase_cash":  "Merchandise Purchase (Cash)",
	"felica_process_merchandise_admission_cash": "Admission with Merchandise (Cash)",
}

// Catalog classifies terminal and process codes. Lookups never fail:
// unknown codes get a label built from the code itself.
type Catalog struct {
	text TextResolver
}

// NewCatalog returns a Catalog rendering labels through text.
// A nil text uses EnglishText.
func NewCatalog(text TextResolver) *Catalog {
	if text == nil {
		text = EnglishText
	}
	return &Catalog{text: text}
}

// TerminalID returns the stable identifier for a console type code.
func (c *Catalog) TerminalID(code int) (string, bool) {
	id, ok := terminalIDs[byte(code&0xff)]
	return id, ok
}

// ProcessID returns the stable identifier for a process type code.
func (c *Catalog) ProcessID(code int) (string, bool) {
	id, ok := processIDs[byte(code&0xff)]
	return id, ok
}

// TerminalName returns the display label for a console type code.
func (c *Catalog) TerminalName(code int) string {
	if id, ok := c.TerminalID(code); ok {
		return c.render(id)
	}
	return fmt.Sprintf("Console 0x%x", code&0xff)
}

// ProcessName returns the display label for a process type code.
func (c *Catalog) ProcessName(code int) string {
	if id, ok := c.ProcessID(code); ok {
		return c.render(id)
	}
	return fmt.Sprintf("Process0x%x", code&0xff)
}

// render falls back to EnglishText when c.text has no entry, so labels
// such as "VIEW ALTTE" read the same in every locale.
func (c *Catalog) render(id string) string {
	if s, ok := c.text.Text(id); ok && s != "" {
		return s
	}
	if s, ok := EnglishText.Text(id); ok && s != "" {
		return s
	}
	return id
}

// IsProductSale reports whether records from this terminal carry a time of day.
func IsProductSale(terminal int) bool {
	t := terminal & 0xff
	return t == TerminalPOS || t == TerminalVending
}

// IsBus reports whether records from this terminal carry bus stop codes.
func IsBus(terminal int) bool {
	return terminal&0xff == TerminalVehicle
}
