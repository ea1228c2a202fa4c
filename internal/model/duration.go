package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/valeshop/access-intake/internal/validation"
)

// DurationHours is the requested access duration.
//
// The relay accepts it as either a JSON string or a JSON number and forwards
// it exactly as received, so the raw token is kept instead of a parsed value.
// The zero value means the field was absent.
type DurationHours struct {
	raw json.RawMessage
}

// NewDurationHours wraps form input, which is always text.
func NewDurationHours(s string) DurationHours {
	raw, _ := json.Marshal(s) // marshaling a string cannot fail
	return DurationHours{raw: raw}
}

// UnmarshalJSON accepts a string, a number or null.
func (d *DurationHours) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)

	switch {
	case bytes.Equal(trimmed, []byte("null")):
		d.raw = nil
		return nil

	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}

	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return fmt.Errorf("duration_hours must be a string or a number: %w", err)
		}
	}

	d.raw = append(json.RawMessage(nil), trimmed...)
	return nil
}

// MarshalJSON writes back the original token.
func (d DurationHours) MarshalJSON() ([]byte, error) {
	if d.raw == nil {
		return []byte("null"), nil
	}
	return d.raw, nil
}

// IsNumber reports whether the value arrived as a JSON number.
func (d DurationHours) IsNumber() bool {
	return len(d.raw) > 0 && d.raw[0] != '"'
}

// String returns the value as text: the unquoted string, the number literal,
// or "" when absent.
func (d DurationHours) String() string {
	if d.raw == nil {
		return ""
	}
	if d.IsNumber() {
		return string(d.raw)
	}
	var s string
	_ = json.Unmarshal(d.raw, &s) // raw was validated by UnmarshalJSON or NewDurationHours
	return s
}

// Present reports whether the value counts as filled in: absent, null, the
// empty string and the number zero do not.
func (d DurationHours) Present() bool {
	if d.raw == nil {
		return false
	}
	if d.IsNumber() {
		n, err := strconv.ParseFloat(string(d.raw), 64)
		return err != nil || n != 0
	}
	return d.String() != ""
}

// Hours parses the value with the same numeric grammar the form validates with.
func (d DurationHours) Hours() (float64, error) {
	h, ok := validation.ParseNumber(d.String())
	if !ok {
		return 0, fmt.Errorf("duration_hours %q is not a number", d.String())
	}
	return h, nil
}
