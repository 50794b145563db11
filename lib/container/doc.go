// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

// Package container implements the Recwire container envelope: a
// fixed 12-byte header identifying the payload mode, followed by an
// optional mode-specific metadata block and the payload itself.
//
// Header layout:
//
//	MAGIC("RCWP", 4) VERSION(1) MODE(1) FLAGS(2, BE) METADATA_LEN(4, BE)
//
// The mode byte alone routes the payload to a decoder: text, binary
// record, stream, or delta. Stream containers carry a 6-byte metadata
// block (chunk size, checksum type, flags); delta containers carry a
// 10-byte block (base snapshot, algorithm, compression). Unknown
// header flag bits are ignored so older readers can skip payloads
// using newer optional features.
package container
