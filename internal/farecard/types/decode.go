package types

type DecodeRequest struct {
	RecordHex string `json:"record_hex"`
}

type CodeLabelResponse struct {
	Code  int    `json:"code"`
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Known bool   `json:"known"`
}
