package field

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Type enumerates the supported annotation field kinds. The set is closed:
// anything else is rejected at composite time.
type Type string

const (
	TypeText      Type = "text"
	TypeSignature Type = "signature"
	TypeImage     Type = "image"
	TypeDate      Type = "date"
	TypeRadio     Type = "radio"
)

// Valid reports whether t is one of the known field types.
func (t Type) Valid() bool {
	switch t {
	case TypeText, TypeSignature, TypeImage, TypeDate, TypeRadio:
		return true
	}
	return false
}

// Value is the type-dependent payload of a field. On the wire it is either a
// JSON string (text, date, and base64 data URIs for signature/image) or a
// JSON boolean (radio). Booleans are normalized: true becomes "true", false
// becomes the empty string, so emptiness always means "not filled in".
type Value string

func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Value(s)
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			*v = "true"
		} else {
			*v = ""
		}
		return nil
	}
	return fmt.Errorf("field value must be a string or a boolean, got %s", data)
}

// IsEmpty reports whether the field has no content to draw.
func (v Value) IsEmpty() bool { return v == "" }

// IsTrue interprets the value as a checkbox/radio state.
func (v Value) IsTrue() bool {
	if v == "" {
		return false
	}
	if b, err := strconv.ParseBool(string(v)); err == nil {
		return b
	}
	// any other non-empty value counts as checked
	return true
}

// Field is one user-placed annotation. Coordinates are in document points
// with a top-left-anchored box; the editor converts from pixel space before
// submitting (see internal/geometry).
type Field struct {
	ID     string  `json:"id" bson:"id"`
	Type   Type    `json:"type" bson:"type"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Page   int     `json:"page" bson:"page"`
	Value  Value   `json:"value,omitempty" bson:"value,omitempty"`
}

// Validate checks the invariants that hold for every field regardless of
// type. Page resolution against a concrete document happens later and is
// deliberately not checked here.
func (f *Field) Validate() error {
	if !f.Type.Valid() {
		return fmt.Errorf("unknown field type %q", f.Type)
	}
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("field %s: width and height must be positive", f.ID)
	}
	if f.Page < 1 {
		return fmt.Errorf("field %s: page must be >= 1", f.ID)
	}
	return nil
}
