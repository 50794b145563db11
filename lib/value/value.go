// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package value

import "fmt"

// FieldID names a field's semantic slot within a record. IDs are
// unique per record; the same ID in two different records may carry
// entirely different meanings (negotiation detects such collisions
// before data exchange).
type FieldID uint16

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	// KindInvalid is the zero Kind. A zero Value has this kind;
	// encoders and the checksum engine reject it.
	KindInvalid Kind = iota
	// KindInt is a signed 64-bit integer.
	KindInt
	// KindFloat is a 64-bit IEEE 754 floating point number.
	KindFloat
	// KindBool is a boolean.
	KindBool
	// KindString is a UTF-8 string.
	KindString
	// KindStringArray is a homogeneous array of strings.
	KindStringArray
	// KindIntArray is a homogeneous array of signed 64-bit integers.
	KindIntArray
	// KindFloatArray is a homogeneous array of 64-bit floats.
	KindFloatArray
	// KindBoolArray is a homogeneous array of booleans.
	KindBoolArray
	// KindRecord is a nested record, exclusively owned by the field
	// holding it.
	KindRecord
	// KindRecordArray is an ordered sequence of nested records.
	KindRecordArray
)

// String returns the kind name used in type hints and error messages.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindStringArray:
		return "string_array"
	case KindIntArray:
		return "int_array"
	case KindFloatArray:
		return "float_array"
	case KindBoolArray:
		return "bool_array"
	case KindRecord:
		return "record"
	case KindRecordArray:
		return "record_array"
	default:
		return fmt.Sprintf("invalid(%d)", uint8(k))
	}
}

// TypeHint is the short textual form of a Kind. It feeds the checksum
// engine's normalized serialization and must stay stable across
// releases: changing a hint changes every checksum computed over
// fields of that kind.
func (k Kind) TypeHint() string {
	switch k {
	case KindInt:
		return "i"
	case KindFloat:
		return "f"
	case KindBool:
		return "b"
	case KindString:
		return "s"
	case KindStringArray:
		return "sa"
	case KindIntArray:
		return "ia"
	case KindFloatArray:
		return "fa"
	case KindBoolArray:
		return "ba"
	case KindRecord:
		return "r"
	case KindRecordArray:
		return "ra"
	default:
		return "?"
	}
}

// Value is a closed tagged union over the protocol's value types.
// The zero Value is invalid; construct values with the typed
// constructors (Int, Float, Bool, String, the array constructors,
// Nested, and NestedArray).
type Value struct {
	kind Kind

	intVal   int64
	floatVal float64
	boolVal  bool
	strVal   string

	strArr   []string
	intArr   []int64
	floatArr []float64
	boolArr  []bool

	record  *Record
	records []*Record
}

// Int returns an integer value.
func Int(v int64) Value { return Value{kind: KindInt, intVal: v} }

// Float returns a floating-point value.
func Float(v float64) Value { return Value{kind: KindFloat, floatVal: v} }

// Bool returns a boolean value.
func Bool(v bool) Value { return Value{kind: KindBool, boolVal: v} }

// String returns a string value.
func String(v string) Value { return Value{kind: KindString, strVal: v} }

// StringArray returns a homogeneous string array value. The slice is
// owned by the Value after the call.
func StringArray(v []string) Value { return Value{kind: KindStringArray, strArr: v} }

// IntArray returns a homogeneous int64 array value.
func IntArray(v []int64) Value { return Value{kind: KindIntArray, intArr: v} }

// FloatArray returns a homogeneous float64 array value.
func FloatArray(v []float64) Value { return Value{kind: KindFloatArray, floatArr: v} }

// BoolArray returns a homogeneous bool array value.
func BoolArray(v []bool) Value { return Value{kind: KindBoolArray, boolArr: v} }

// Nested returns a nested-record value. The record is exclusively
// owned by the returned Value.
func Nested(r *Record) Value { return Value{kind: KindRecord, record: r} }

// NestedArray returns a nested-record-array value.
func NestedArray(rs []*Record) Value { return Value{kind: KindRecordArray, records: rs} }

// Kind reports which variant this value holds.
func (v Value) Kind() Kind { return v.kind }

// IntValue returns the integer payload. Valid only for KindInt.
func (v Value) IntValue() int64 { return v.intVal }

// FloatValue returns the float payload. Valid only for KindFloat.
func (v Value) FloatValue() float64 { return v.floatVal }

// BoolValue returns the boolean payload. Valid only for KindBool.
func (v Value) BoolValue() bool { return v.boolVal }

// StringValue returns the string payload. Valid only for KindString.
func (v Value) StringValue() string { return v.strVal }

// StringArrayValue returns the string array payload. Valid only for
// KindStringArray. Callers must not mutate the returned slice.
func (v Value) StringArrayValue() []string { return v.strArr }

// IntArrayValue returns the int64 array payload.
func (v Value) IntArrayValue() []int64 { return v.intArr }

// FloatArrayValue returns the float64 array payload.
func (v Value) FloatArrayValue() []float64 { return v.floatArr }

// BoolArrayValue returns the bool array payload.
func (v Value) BoolArrayValue() []bool { return v.boolArr }

// RecordValue returns the nested record. Valid only for KindRecord.
func (v Value) RecordValue() *Record { return v.record }

// RecordArrayValue returns the nested record sequence. Valid only for
// KindRecordArray.
func (v Value) RecordArrayValue() []*Record { return v.records }

// Depth returns the nesting depth contributed by this value: 0 for
// scalars and scalar arrays, 1 plus the deepest reachable field for
// nested records and arrays. An empty nested record still counts as
// depth 1 (it is one level of structure).
func (v Value) Depth() int {
	switch v.kind {
	case KindRecord:
		return 1 + recordFieldDepth(v.record)
	case KindRecordArray:
		max := 0
		for _, r := range v.records {
			if d := recordFieldDepth(r); d > max {
				max = d
			}
		}
		return 1 + max
	default:
		return 0
	}
}

func recordFieldDepth(r *Record) int {
	if r == nil {
		return 0
	}
	max := 0
	for _, f := range r.fields {
		if d := f.Value.Depth(); d > max {
			max = d
		}
	}
	return max
}

// Equal reports structural equality of two values. Nested records
// compare field-by-field in insertion order; use
// Record.CanonicalEqual for order-independent comparison. Floats
// compare bit-for-bit by their Go == semantics (so NaN != NaN, and
// -0 == 0, matching the comparison used throughout the codec).
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.intVal == other.intVal
	case KindFloat:
		return v.floatVal == other.floatVal
	case KindBool:
		return v.boolVal == other.boolVal
	case KindString:
		return v.strVal == other.strVal
	case KindStringArray:
		if len(v.strArr) != len(other.strArr) {
			return false
		}
		for i := range v.strArr {
			if v.strArr[i] != other.strArr[i] {
				return false
			}
		}
		return true
	case KindIntArray:
		if len(v.intArr) != len(other.intArr) {
			return false
		}
		for i := range v.intArr {
			if v.intArr[i] != other.intArr[i] {
				return false
			}
		}
		return true
	case KindFloatArray:
		if len(v.floatArr) != len(other.floatArr) {
			return false
		}
		for i := range v.floatArr {
			if v.floatArr[i] != other.floatArr[i] {
				return false
			}
		}
		return true
	case KindBoolArray:
		if len(v.boolArr) != len(other.boolArr) {
			return false
		}
		for i := range v.boolArr {
			if v.boolArr[i] != other.boolArr[i] {
				return false
			}
		}
		return true
	case KindRecord:
		return v.record.Equal(other.record)
	case KindRecordArray:
		if len(v.records) != len(other.records) {
			return false
		}
		for i := range v.records {
			if !v.records[i].Equal(other.records[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Field is a (FieldID, Value) pair. A field is exclusively owned by
// its containing record.
type Field struct {
	ID    FieldID
	Value Value
}
