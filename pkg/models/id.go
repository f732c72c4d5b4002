package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is an opaque server-assigned identifier. The backend emits ids as JSON
// numbers for some resources and strings for others, so both decode into ID
// and the original form is preserved when re-encoded.
type ID struct {
	raw     string
	numeric bool
}

// NewID builds an ID from its textual form. Purely decimal values are
// encoded back as JSON numbers.
func NewID(s string) ID {
	if s == "" {
		return ID{}
	}
	_, err := strconv.ParseInt(s, 10, 64)
	return ID{raw: s, numeric: err == nil}
}

// IntID builds a numeric ID.
func IntID(n int64) ID {
	return ID{raw: strconv.FormatInt(n, 10), numeric: true}
}

// String returns the textual form used in request paths.
func (id ID) String() string { return id.raw }

// IsZero reports whether the id is unset.
func (id ID) IsZero() bool { return id.raw == "" }

// MarshalJSON encodes numeric ids as numbers and everything else as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.raw == "" {
		return []byte("null"), nil
	}
	if id.numeric {
		return []byte(id.raw), nil
	}
	return json.Marshal(id.raw)
}

// UnmarshalJSON accepts a JSON string, number or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*id = ID{}
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID{raw: s}
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID{raw: n.String(), numeric: true}
		return nil
	}
}

// MarshalYAML renders the id as plain text.
func (id ID) MarshalYAML() (interface{}, error) {
	return id.raw, nil
}

// Equal compares ids by their textual form, so 2 and "2" name the same
// resource.
func (id ID) Equal(other ID) bool { return id.raw == other.raw }
