// Package variant provides a small tagged union of scalar kinds and a
// dispatcher that branches on the tag.
//
// Values are built with an explicit constructor per kind, so routing never
// inspects dynamic types:
//
//	variant.Transform(variant.Int(7))        // Int(49)
//	variant.Transform(variant.Text("hi"))    // Text("HI")
//	variant.Transform(variant.Float(2.5))    // Int(3)
//	variant.Transform(variant.Other(struct{}{})) // Text("Unsupported")
package variant

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind tags the payload carried by a Value.
type Kind int

const (
	// KindOther is any payload without a dedicated kind.
	KindOther Kind = iota
	// KindInt is a signed integer.
	KindInt
	// KindText is a string.
	KindText
	// KindFloat is a 64-bit float.
	KindFloat
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindText:
		return "text"
	case KindFloat:
		return "float"
	case KindOther:
		return "other"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Unsupported is the text produced by Transform for KindOther values.
const Unsupported = "Unsupported"

// Value is a tagged union. The zero value is KindOther with a nil payload.
type Value struct {
	kind  Kind
	i     int64
	s     string
	f     float64
	other any
}

// Int returns a KindInt value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Text returns a KindText value.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Float returns a KindFloat value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Other returns a KindOther value wrapping v.
func Other(v any) Value { return Value{kind: KindOther, other: v} }

// Kind returns the tag.
func (v Value) Kind() Kind { return v.kind }

// AsInt returns the integer payload and whether v is KindInt.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsText returns the string payload and whether v is KindText.
func (v Value) AsText() (string, bool) { return v.s, v.kind == KindText }

// AsFloat returns the float payload and whether v is KindFloat.
func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }

// Raw returns the payload as an untyped value.
func (v Value) Raw() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindText:
		return v.s
	case KindFloat:
		return v.f
	default:
		return v.other
	}
}

// String formats the payload.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindText:
		return v.s
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v.other)
	}
}

// Transform routes v by kind:
//
//   - int: the square, as int
//   - text: upper-cased, as text
//   - float: rounded half up, as int
//   - other: the text "Unsupported"
func Transform(v Value) Value {
	switch v.kind {
	case KindInt:
		return Int(v.i * v.i)
	case KindText:
		return Text(strings.ToUpper(v.s))
	case KindFloat:
		return Int(RoundHalfUp(v.f))
	default:
		return Text(Unsupported)
	}
}

// RoundHalfUp rounds f to the nearest integer, ties toward positive
// infinity (2.5 → 3, -2.5 → -2). NaN maps to 0; values outside the int64
// range clamp to its bounds.
func RoundHalfUp(f float64) int64 {
	if math.IsNaN(f) {
		return 0
	}
	r := math.Floor(f + 0.5)
	if r >= math.MaxInt64 {
		return math.MaxInt64
	}
	if r <= math.MinInt64 {
		return math.MinInt64
	}
	return int64(r)
}
