// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

// Package delta implements field-level record deltas: computing the
// difference between two records as a short operation list, encoding
// it as a packet, and applying it to a base record.
//
// A delta describes the final state, not the edit history. Diff
// compares base and target field by field and emits Set operations
// carrying the target value and Remove operations for fields the
// target dropped; a field whose nested record changed in any way is
// re-sent whole. Operations are sorted ascending by field ID, so the
// same logical change always encodes to the same packet.
//
// Applying a delta requires the receiver's base to match the base the
// delta was computed against. Each packet carries a keyed BLAKE3
// fingerprint of the canonical base; Apply verifies it and fails with
// a BaseMismatchError rather than producing a silently wrong record.
// Apply returns a new record and leaves the base untouched. An empty
// delta therefore applies to a canonical equal of the base.
package delta
