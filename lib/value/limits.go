// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package value

import "fmt"

// Default structural limits. These bound untrusted input; callers
// with cooperative peers can raise them via Limits.
const (
	DefaultMaxDepth      = 32
	DefaultMaxFields     = 4096
	DefaultMaxStringLen  = 16 * 1024
	DefaultMaxArrayItems = 1024
)

// Limits bounds the structural size of a record. The zero value means
// "no limit" for every bound; use DefaultLimits for the standard
// protocol bounds.
type Limits struct {
	// MaxDepth bounds nesting depth. A flat record has depth 0; each
	// nested record or nested array level adds 1.
	MaxDepth int
	// MaxFields bounds the total field count across all nesting
	// levels.
	MaxFields int
	// MaxStringLen bounds the byte length of any single string value
	// or string array element.
	MaxStringLen int
	// MaxArrayItems bounds the element count of any single array.
	MaxArrayItems int
}

// DefaultLimits returns the standard protocol bounds.
func DefaultLimits() Limits {
	return Limits{
		MaxDepth:      DefaultMaxDepth,
		MaxFields:     DefaultMaxFields,
		MaxStringLen:  DefaultMaxStringLen,
		MaxArrayItems: DefaultMaxArrayItems,
	}
}

// DepthLimitError reports a record nested deeper than the configured
// maximum.
type DepthLimitError struct {
	Depth int
	Max   int
}

func (e *DepthLimitError) Error() string {
	return fmt.Sprintf("nesting depth %d exceeds limit %d", e.Depth, e.Max)
}

// FieldCountLimitError reports a record whose total field count,
// summed across all nesting levels, exceeds the configured maximum.
type FieldCountLimitError struct {
	Count int
	Max   int
}

func (e *FieldCountLimitError) Error() string {
	return fmt.Sprintf("field count %d exceeds limit %d", e.Count, e.Max)
}

// StringLimitError reports a string value longer than the configured
// maximum byte length.
type StringLimitError struct {
	ID     FieldID
	Length int
	Max    int
}

func (e *StringLimitError) Error() string {
	return fmt.Sprintf("string in field %d is %d bytes, exceeds limit %d", e.ID, e.Length, e.Max)
}

// ArrayLimitError reports an array with more elements than the
// configured maximum.
type ArrayLimitError struct {
	ID    FieldID
	Items int
	Max   int
}

func (e *ArrayLimitError) Error() string {
	return fmt.Sprintf("array in field %d has %d items, exceeds limit %d", e.ID, e.Items, e.Max)
}

// Validate walks the record recursively and returns the first limit
// violation found, or nil. A zero bound disables that check.
func (l Limits) Validate(r *Record) error {
	count := 0
	return l.validateRecord(r, 0, &count)
}

func (l Limits) validateRecord(r *Record, depth int, count *int) error {
	if l.MaxDepth > 0 && depth > l.MaxDepth {
		return &DepthLimitError{Depth: depth, Max: l.MaxDepth}
	}
	for _, f := range r.Fields() {
		*count++
		if l.MaxFields > 0 && *count > l.MaxFields {
			return &FieldCountLimitError{Count: *count, Max: l.MaxFields}
		}
		if err := l.validateValue(f.ID, f.Value, depth, count); err != nil {
			return err
		}
	}
	return nil
}

func (l Limits) validateValue(id FieldID, v Value, depth int, count *int) error {
	switch v.Kind() {
	case KindString:
		if l.MaxStringLen > 0 && len(v.StringValue()) > l.MaxStringLen {
			return &StringLimitError{ID: id, Length: len(v.StringValue()), Max: l.MaxStringLen}
		}
	case KindStringArray:
		arr := v.StringArrayValue()
		if l.MaxArrayItems > 0 && len(arr) > l.MaxArrayItems {
			return &ArrayLimitError{ID: id, Items: len(arr), Max: l.MaxArrayItems}
		}
		for _, s := range arr {
			if l.MaxStringLen > 0 && len(s) > l.MaxStringLen {
				return &StringLimitError{ID: id, Length: len(s), Max: l.MaxStringLen}
			}
		}
	case KindIntArray:
		if l.MaxArrayItems > 0 && len(v.IntArrayValue()) > l.MaxArrayItems {
			return &ArrayLimitError{ID: id, Items: len(v.IntArrayValue()), Max: l.MaxArrayItems}
		}
	case KindFloatArray:
		if l.MaxArrayItems > 0 && len(v.FloatArrayValue()) > l.MaxArrayItems {
			return &ArrayLimitError{ID: id, Items: len(v.FloatArrayValue()), Max: l.MaxArrayItems}
		}
	case KindBoolArray:
		if l.MaxArrayItems > 0 && len(v.BoolArrayValue()) > l.MaxArrayItems {
			return &ArrayLimitError{ID: id, Items: len(v.BoolArrayValue()), Max: l.MaxArrayItems}
		}
	case KindRecord:
		return l.validateRecord(v.RecordValue(), depth+1, count)
	case KindRecordArray:
		recs := v.RecordArrayValue()
		if l.MaxArrayItems > 0 && len(recs) > l.MaxArrayItems {
			return &ArrayLimitError{ID: id, Items: len(recs), Max: l.MaxArrayItems}
		}
		for _, rec := range recs {
			if err := l.validateRecord(rec, depth+1, count); err != nil {
				return err
			}
		}
	}
	return nil
}
