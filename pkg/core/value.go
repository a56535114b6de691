package core

import "encoding/json"

// =============================================================================
// Value
// =============================================================================

// Value is an optional string. The zero Value is absent.
//
// Raw cells are collapsed into a Value as soon as they are read, so empty
// strings and NA markers never travel past the table loader.
type Value struct {
	s  string
	ok bool
}

// Absent is the absent Value.
var Absent = Value{}

// Some returns a present Value holding s.
func Some(s string) Value {
	return Value{s: s, ok: true}
}

// Get returns the held string and whether the value is present.
func (v Value) Get() (string, bool) {
	return v.s, v.ok
}

// IsPresent reports whether the value holds a string.
func (v Value) IsPresent() bool {
	return v.ok
}

// String returns the held string, or "" when absent.
func (v Value) String() string {
	return v.s
}

// MarshalJSON encodes an absent value as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return json.Marshal(v.s)
}

// UnmarshalJSON decodes null as absent.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Absent
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = Some(s)
	return nil
}
