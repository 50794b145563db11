// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package value

import "sort"

// RecordBuilder accumulates fields and produces a canonically ordered
// record in a single Build call. Unlike Record.AddField, duplicate
// detection is deferred to Build, which sorts once and scans for
// adjacent duplicates; this is the cheaper path when assembling large
// records from unsorted input.
type RecordBuilder struct {
	fields []Field
}

// NewRecordBuilder returns an empty builder.
func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{}
}

// Add appends a field. Duplicates are not checked until Build.
func (b *RecordBuilder) Add(id FieldID, v Value) *RecordBuilder {
	b.fields = append(b.fields, Field{ID: id, Value: v})
	return b
}

// Len returns the number of fields added so far.
func (b *RecordBuilder) Len() int { return len(b.fields) }

// Build sorts the accumulated fields into canonical order and returns
// the record. It returns a *DuplicateFieldError naming the first
// duplicated ID if any ID was added twice. The builder is spent after
// a successful Build; reusing it is not supported.
func (b *RecordBuilder) Build() (*Record, error) {
	sort.SliceStable(b.fields, func(i, j int) bool { return b.fields[i].ID < b.fields[j].ID })
	for i := 1; i < len(b.fields); i++ {
		if b.fields[i].ID == b.fields[i-1].ID {
			return nil, &DuplicateFieldError{ID: b.fields[i].ID}
		}
	}
	r := &Record{
		fields: b.fields,
		index:  make(map[FieldID]int, len(b.fields)),
	}
	for i := range r.fields {
		r.index[r.fields[i].ID] = i
	}
	b.fields = nil
	return r, nil
}
