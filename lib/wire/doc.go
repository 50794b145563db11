// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire implements the Recwire binary record codec.
//
// A record payload is:
//
//	VERSION(1) FLAGS(1) ENTRY_COUNT(VarInt) ENTRIES...
//
// Each top-level entry is FID (2 bytes little-endian), a type tag
// byte, then a type-specific payload. Integers use signed LEB128
// VarInts, floats are 8-byte IEEE 754 little-endian, booleans are a
// strict 0x00/0x01 byte, and strings and arrays carry VarInt length
// or count prefixes. Nested records and arrays re-enter the value
// grammar recursively: a nested record is its tag, a field count, and
// (VarInt FID, tagged value) pairs; a nested array is its tag, an
// element count, and nested record encodings.
//
// The encoder emits canonical order only (fields sorted ascending by
// FID at every level) without mutating its input. The decoder
// enforces canonical order, threads an explicit depth counter bounded
// by Config.MaxDepth, and tracks cumulative decoded size against
// Config.MaxRecordSize, so adversarial payloads fail with typed
// errors instead of exhausting the stack or memory.
//
// Flag bits the decoder does not recognize are ignored, which lets
// older decoders skip payloads using newer optional features.
package wire
