// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding used for Recwire
// control-plane data: negotiation messages, capability snapshots, and
// session records.
//
// Encoding is Core Deterministic (RFC 8949 §4.2), so the same logical
// message always produces identical bytes and can be compared or
// fingerprinted byte-wise. Decoding accepts standard CBOR and ignores
// unknown fields, letting newer peers add message fields without
// breaking older ones.
//
// The record payloads themselves never travel as CBOR; they use the
// binary codec in lib/wire. This package covers only the
// control-plane envelope around them.
package codec
