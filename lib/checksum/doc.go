// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

// Package checksum implements SC32, the 32-bit semantic checksum over
// a single record field.
//
// A checksum binds together the field ID, the field's type hint, and
// a normalized rendering of its value, so two agents exchanging the
// same logical field always agree on the checksum even when their
// in-memory representations differ. Normalization collapses the
// representational freedom the value model allows: booleans render as
// 1/0, negative zero renders as zero, floats drop insignificant
// trailing digits, and nested records serialize in canonical field
// order. Array element order is semantic and is preserved.
//
// The hash is CRC-32/ISO-HDLC (the zlib polynomial), computed over
// the canonical text form "fid:hint:value".
package checksum
