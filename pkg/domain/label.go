package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Label identifies the token occupying a slot.
// Solver payloads carry labels as JSON numbers or strings; both decode to the
// same textual form, so 1 and "1" name the same label.
type Label string

// String returns the label text.
func (l Label) String() string {
	return string(l)
}

// UnmarshalJSON accepts a JSON string or number.
func (l *Label) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty label")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid label %s: %w", data, err)
		}
		*l = Label(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid label %s: expected string or number", data)
	}
	*l = Label(n.String())
	return nil
}
