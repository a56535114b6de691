package core

import "fmt"

// =============================================================================
// FieldType
// =============================================================================

// FieldType identifies one of the three semantic contact fields.
type FieldType string

// Field types recognized by the engine.
const (
	FieldName  FieldType = "name"
	FieldEmail FieldType = "email"
	FieldPhone FieldType = "phone"
)

// FieldTypes lists every field type in output column order.
var FieldTypes = []FieldType{FieldName, FieldEmail, FieldPhone}

// String returns the field type name.
func (f FieldType) String() string {
	return string(f)
}

// ParseFieldType converts a string to a FieldType.
func ParseFieldType(s string) (FieldType, error) {
	switch FieldType(s) {
	case FieldName, FieldEmail, FieldPhone:
		return FieldType(s), nil
	default:
		return "", fmt.Errorf("unknown field type %q (expected name, email or phone)", s)
	}
}

// =============================================================================
// Contact
// =============================================================================

// Contact is one canonical contact record.
//
// Email, when present, is lower-case and contains "@". Phone, when present,
// is a digit string with an optional leading "+".
type Contact struct {
	Name  Value `json:"name"`
	Email Value `json:"email"`
	Phone Value `json:"phone"`
}

// Field returns the value of the given field.
func (c Contact) Field(f FieldType) Value {
	switch f {
	case FieldName:
		return c.Name
	case FieldEmail:
		return c.Email
	case FieldPhone:
		return c.Phone
	default:
		return Absent
	}
}

// Completeness counts the present fields.
func (c Contact) Completeness() int {
	n := 0
	for _, f := range FieldTypes {
		if c.Field(f).IsPresent() {
			n++
		}
	}
	return n
}

// Valid reports whether at least one field is present.
func (c Contact) Valid() bool {
	return c.Completeness() > 0
}
