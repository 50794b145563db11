// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

// Package value defines the Recwire data model: records of
// (FieldID, Value) pairs with two observable orderings.
//
// A record preserves insertion order (the sequence the caller added
// fields in) and exposes canonical order (fields sorted ascending by
// FieldID, applied recursively to nested records). Every encoder, the
// checksum engine, and canonical equality operate on canonical order;
// insertion order is the basis for plain structural equality only.
//
// Canonicalization is a pure projection: Canonical and
// CanonicalFields never mutate the record they are called on.
// SortInPlace is the explicit opt-in for in-place reordering.
//
// A duplicate FieldID is a structural error. AddField rejects it at
// insertion time and RecordBuilder rejects it at Build time; there is
// no silent overwrite anywhere in the model.
package value
