package metadata

import (
	"encoding/json"
	"unique"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents an invalid kind.
	KindInvalid Kind = iota
	// KindNull represents a null value.
	KindNull
	// KindInt represents an integer value.
	KindInt
	// KindFloat represents a float value.
	KindFloat
	// KindString represents a string value.
	KindString
	// KindBool represents a boolean value.
	KindBool
	// KindArray represents an array value.
	KindArray
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindArray:
		return "array"
	default:
		return "invalid"
	}
}

// Value is a small typed value used for metadata documents.
//
// The representation is designed to make filter evaluation fast and
// predictable: no reflection, no interface boxing per field.
type Value struct {
	Kind Kind                  `json:"k"`
	I64  int64                 `json:"i,omitempty"`
	F64  float64               `json:"f,omitempty"`
	s    unique.Handle[string] `json:"-"` // Private interned string
	B    bool                  `json:"b,omitempty"`
	A    []Value               `json:"a,omitempty"`
}

// Null returns a null Value.
func Null() Value { return Value{Kind: KindNull} }

// Int returns an int64 Value.
func Int(v int64) Value { return Value{Kind: KindInt, I64: v} }

// Float returns a float64 Value.
func Float(v float64) Value { return Value{Kind: KindFloat, F64: v} }

// String returns a string Value.
func String(v string) Value { return Value{Kind: KindString, s: unique.Make(v)} }

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{Kind: KindBool, B: v} }

// Array returns an array Value.
func Array(v []Value) Value { return Value{Kind: KindArray, A: v} }

// Strings returns an array Value built from a slice of strings.
//
// Array-valued metadata fields are string arrays; this is the common
// constructor for tag-style fields.
func Strings(v []string) Value {
	items := make([]Value, len(v))
	for i, s := range v {
		items[i] = String(s)
	}
	return Array(items)
}

// IsNull reports whether the value is null (or invalid).
func (v Value) IsNull() bool {
	return v.Kind == KindNull || v.Kind == KindInvalid
}

// StringValue returns the string value if Kind is KindString, otherwise empty string.
func (v Value) StringValue() string {
	if v.Kind == KindString {
		return v.s.Value()
	}
	return ""
}

// AsInt64 returns the int64 value if Kind is KindInt.
func (v Value) AsInt64() (int64, bool) {
	if v.Kind != KindInt {
		return 0, false
	}
	return v.I64, true
}

// AsFloat64 returns the float64 value if Kind is KindFloat.
func (v Value) AsFloat64() (float64, bool) {
	if v.Kind != KindFloat {
		return 0, false
	}
	return v.F64, true
}

// AsString returns the string value if Kind is KindString.
func (v Value) AsString() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.s.Value(), true
}

// AsBool returns the boolean value if Kind is KindBool.
func (v Value) AsBool() (bool, bool) {
	if v.Kind != KindBool {
		return false, false
	}
	return v.B, true
}

// AsArray returns the array value if Kind is KindArray.
func (v Value) AsArray() ([]Value, bool) {
	if v.Kind != KindArray {
		return nil, false
	}
	return v.A, true
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	type Alias Value
	aux := &struct {
		S string `json:"s,omitempty"`
		*Alias
	}{
		Alias: (*Alias)(&v),
	}
	if v.Kind == KindString {
		aux.S = v.s.Value()
	}
	return json.Marshal(aux)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	type Alias Value
	aux := &struct {
		S string `json:"s,omitempty"`
		*Alias
	}{
		Alias: (*Alias)(v),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if v.Kind == KindString {
		v.s = unique.Make(aux.S)
	}
	return nil
}

// Document is a typed metadata document keyed by field name.
type Document map[string]Value

// Clone creates a deep copy of the metadata document.
//
// This is the safe default to prevent external mutation after a document
// has been handed to a store. Arrays are deep copied.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}

	clone := make(Document, len(d))
	for k, v := range d {
		clone[k] = v.clone()
	}
	return clone
}

// clone creates a deep copy of a Value, including nested arrays.
func (v Value) clone() Value {
	if v.Kind != KindArray || len(v.A) == 0 {
		// Simple values are copied by value semantics
		return v
	}

	arrayCopy := make([]Value, len(v.A))
	for i := range v.A {
		arrayCopy[i] = v.A[i].clone()
	}

	return Value{
		Kind: v.Kind,
		I64:  v.I64,
		F64:  v.F64,
		s:    v.s,
		B:    v.B,
		A:    arrayCopy,
	}
}

// CloneIfNeeded clones a document only if it's non-nil and non-empty.
//
// This helper avoids allocation for empty metadata, which is common.
// Returns nil if the input is nil or empty.
func CloneIfNeeded(d Document) Document {
	if len(d) == 0 {
		return nil
	}
	return d.Clone()
}
