package pdbx

import "strconv"

// Value is a single cell in a category row.
//
// A cell is either the null-unknown marker (written as "?"), the
// inapplicable marker (the empty string, written as "."), or literal
// text. Quoting style is never stored; the writer derives it from the
// content alone. The zero Value is the inapplicable marker.
type Value struct {
	text string
	null bool
}

// Null is the null-unknown marker.
var Null = Value{null: true}

// String returns a literal text value. String("") is the inapplicable
// marker and is written as ".".
func String(s string) Value { return Value{text: s} }

// Int returns a value holding the decimal representation of i.
func Int(i int) Value { return Value{text: strconv.Itoa(i)} }

// Float returns a value holding the shortest decimal representation
// of f.
func Float(f float64) Value {
	return Value{text: strconv.FormatFloat(f, 'g', -1, 64)}
}

// IsNull reports whether v is the null-unknown marker.
func (v Value) IsNull() bool { return v.null }

// IsEmpty reports whether v is the inapplicable marker.
func (v Value) IsEmpty() bool { return !v.null && v.text == "" }

// Text returns the literal text of v. It is empty for both null
// markers.
func (v Value) Text() string { return v.text }
