// Package property implements the heterogeneous name/value map attached to
// trajectory points and trajectories: a closed tagged-union value type plus
// an ordered string-keyed map over it.
package property

import (
	"fmt"
	"time"
)

// Type identifies which variant a Value currently holds.
type Type uint8

const (
	// TypeNull is the zero value: an explicit absence of data.
	TypeNull Type = iota
	TypeInt64
	TypeFloat64
	TypeString
	TypeTimestamp
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeInt64:
		return "int64"
	case TypeFloat64:
		return "float64"
	case TypeString:
		return "string"
	case TypeTimestamp:
		return "timestamp"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Value is a tagged union over {null, int64, float64, string, timestamp}.
// Its tag never changes once constructed; mutation replaces the Value
// wholesale rather than in place.
type Value struct {
	typ Type
	i   int64
	f   float64
	s   string
	ts  time.Time
}

// Null returns the null property value.
func Null() Value { return Value{typ: TypeNull} }

// FromInt64 constructs an integer property value.
func FromInt64(v int64) Value { return Value{typ: TypeInt64, i: v} }

// FromFloat64 constructs a floating-point property value.
func FromFloat64(v float64) Value { return Value{typ: TypeFloat64, f: v} }

// FromString constructs a string property value.
func FromString(v string) Value { return Value{typ: TypeString, s: v} }

// FromTimestamp constructs a timestamp property value. Timestamps carry
// microsecond resolution; sub-microsecond precision is truncated.
func FromTimestamp(v time.Time) Value {
	return Value{typ: TypeTimestamp, ts: v.Truncate(time.Microsecond)}
}

// Type reports which variant v holds.
func (v Value) Type() Type { return v.typ }

// IsNull reports whether v holds the null variant.
func (v Value) IsNull() bool { return v.typ == TypeNull }

// Int64 returns v's integer value and true, or (0, false) if v is not an
// integer.
func (v Value) Int64() (int64, bool) {
	if v.typ != TypeInt64 {
		return 0, false
	}
	return v.i, true
}

// Float64 returns v's floating-point value and true, or (0, false) if v is
// not a float.
func (v Value) Float64() (float64, bool) {
	if v.typ != TypeFloat64 {
		return 0, false
	}
	return v.f, true
}

// String returns v's string value and true, or ("", false) if v is not a
// string. Note this shadows fmt.Stringer's no-bool convention; use Render
// for textual display of any variant.
func (v Value) String() (string, bool) {
	if v.typ != TypeString {
		return "", false
	}
	return v.s, true
}

// Timestamp returns v's timestamp value and true, or the zero time and
// false if v is not a timestamp.
func (v Value) Timestamp() (time.Time, bool) {
	if v.typ != TypeTimestamp {
		return time.Time{}, false
	}
	return v.ts, true
}

// Render produces the fixed textual form used by the codec's debug dumps
// and the CLI tools: "null" for null, default formatting for numbers,
// the raw string for strings, and ISO 8601 extended for timestamps.
func (v Value) Render() string {
	switch v.typ {
	case TypeNull:
		return "null"
	case TypeInt64:
		return fmt.Sprintf("%d", v.i)
	case TypeFloat64:
		return fmt.Sprintf("%v", v.f)
	case TypeString:
		return v.s
	case TypeTimestamp:
		return v.ts.UTC().Format("2006-01-02T15:04:05.000000Z")
	default:
		return ""
	}
}

// Equal implements the value-equality rule from the data model: every pair
// of values compares structurally equal except that null never equals
// null (mirroring SQL NULL semantics).
func (v Value) Equal(other Value) bool {
	if v.typ == TypeNull || other.typ == TypeNull {
		return false
	}
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case TypeInt64:
		return v.i == other.i
	case TypeFloat64:
		return v.f == other.f
	case TypeString:
		return v.s == other.s
	case TypeTimestamp:
		return v.ts.Equal(other.ts)
	default:
		return false
	}
}
