package battle

import "encoding/json"

// Event is one entry in the optional battle trace.
type Event struct {
	Round   int            `json:"round"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// MarshalPretty renders any result structure as indented JSON.
func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
