// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"fmt"
	"sort"
)

// DuplicateFieldError reports an attempt to add a field whose ID is
// already present in the record. Duplicate IDs are a structural
// error; the model never silently overwrites.
type DuplicateFieldError struct {
	ID FieldID
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate field id %d", e.ID)
}

// Record is an ordered collection of fields with unique FieldIDs.
// It remembers insertion order; canonical order (ascending FieldID,
// recursive) is available as a projection via CanonicalFields and
// Canonical. The zero Record is empty and ready to use.
//
// A Record is not safe for concurrent mutation. Share records across
// goroutines only after mutation stops.
type Record struct {
	fields []Field
	index  map[FieldID]int
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{}
}

// Len returns the number of fields in the record.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.fields)
}

// AddField appends a field in insertion order. It returns a
// *DuplicateFieldError if the ID is already present.
func (r *Record) AddField(id FieldID, v Value) error {
	if r.index == nil {
		r.index = make(map[FieldID]int)
	}
	if _, ok := r.index[id]; ok {
		return &DuplicateFieldError{ID: id}
	}
	r.index[id] = len(r.fields)
	r.fields = append(r.fields, Field{ID: id, Value: v})
	return nil
}

// MustAddField is AddField for statically known IDs; it panics on a
// duplicate. Intended for tests and literal record construction.
func (r *Record) MustAddField(id FieldID, v Value) {
	if err := r.AddField(id, v); err != nil {
		panic(err)
	}
}

// Get returns the value stored under id and whether it is present.
func (r *Record) Get(id FieldID) (Value, bool) {
	if r == nil || r.index == nil {
		return Value{}, false
	}
	i, ok := r.index[id]
	if !ok {
		return Value{}, false
	}
	return r.fields[i].Value, true
}

// Fields returns the fields in insertion order. The returned slice is
// the record's backing storage; callers must not modify it.
func (r *Record) Fields() []Field {
	if r == nil {
		return nil
	}
	return r.fields
}

// CanonicalFields returns a copy of the fields sorted ascending by
// FieldID. The record itself is not modified. Nested records inside
// the returned fields are shared, not copied; use Canonical for a
// fully recursive projection.
func (r *Record) CanonicalFields() []Field {
	if r == nil {
		return nil
	}
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Canonical returns a deep copy of the record with every level sorted
// ascending by FieldID. The receiver is left untouched; calling
// Canonical twice yields structurally equal results.
func (r *Record) Canonical() *Record {
	if r == nil {
		return nil
	}
	out := &Record{
		fields: r.CanonicalFields(),
		index:  make(map[FieldID]int, len(r.fields)),
	}
	for i := range out.fields {
		out.fields[i].Value = canonicalValue(out.fields[i].Value)
		out.index[out.fields[i].ID] = i
	}
	return out
}

func canonicalValue(v Value) Value {
	switch v.kind {
	case KindRecord:
		return Nested(v.record.Canonical())
	case KindRecordArray:
		rs := make([]*Record, len(v.records))
		for i, rec := range v.records {
			rs[i] = rec.Canonical()
		}
		return NestedArray(rs)
	default:
		return v
	}
}

// SortInPlace reorders the record (and every nested record) into
// canonical order, destroying insertion order. This is the only
// mutating path to canonical order; Canonical and CanonicalFields
// never touch the receiver.
func (r *Record) SortInPlace() {
	if r == nil {
		return
	}
	sort.Slice(r.fields, func(i, j int) bool { return r.fields[i].ID < r.fields[j].ID })
	for i := range r.fields {
		r.index[r.fields[i].ID] = i
		switch r.fields[i].Value.kind {
		case KindRecord:
			r.fields[i].Value.record.SortInPlace()
		case KindRecordArray:
			for _, rec := range r.fields[i].Value.records {
				rec.SortInPlace()
			}
		}
	}
}

// Equal reports field-by-field equality in insertion order. Two
// records holding the same fields added in different orders are not
// Equal; see CanonicalEqual.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r.Len() == 0 && other.Len() == 0
	}
	if len(r.fields) != len(other.fields) {
		return false
	}
	for i := range r.fields {
		if r.fields[i].ID != other.fields[i].ID {
			return false
		}
		if !r.fields[i].Value.Equal(other.fields[i].Value) {
			return false
		}
	}
	return true
}

// CanonicalEqual reports whether two records hold the same fields
// regardless of insertion order, comparing nested records canonically
// as well.
func (r *Record) CanonicalEqual(other *Record) bool {
	if r.Len() != other.Len() {
		return false
	}
	a := r.CanonicalFields()
	b := other.CanonicalFields()
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
		if !canonicalValueEqual(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}

func canonicalValueEqual(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindRecord:
		return a.record.CanonicalEqual(b.record)
	case KindRecordArray:
		if len(a.records) != len(b.records) {
			return false
		}
		for i := range a.records {
			if !a.records[i].CanonicalEqual(b.records[i]) {
				return false
			}
		}
		return true
	default:
		return a.Equal(b)
	}
}
