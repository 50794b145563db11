// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

// Package stream implements the Recwire streaming frame layer, used
// to move record payloads too large for a single container through a
// sequence of checksummed chunks.
//
// Frame layout:
//
//	FRAME_ID(1) FLAGS(1) CHUNK_SIZE(VarInt) CHECKSUM(4, LE) PAYLOAD
//
// A stream is BEGIN (0xA0), one or more CHUNK (0xA1) frames, then END
// (0xA2); ERROR (0xA3) aborts with a diagnostic message. Both ends
// run an Idle, Streaming, Closed state machine; a frame arriving in
// the wrong state is a protocol violation, not something to buffer or
// reorder. Ordered delivery is the transport's responsibility.
//
// Each chunk carries a checksum over its transmitted payload. A
// mismatch is unrecoverable at this layer: the receiver reports it
// and the stream is dead, since recovery (retransmission, resync)
// belongs to the transport below. Chunk payloads may be compressed
// (flags bit 1) with LZ4 or zstd; the checksum covers the bytes as
// transmitted so corruption is detected before decompression.
//
// A BackpressureController tracks bytes in flight against a window.
// It is advisory only: it tells the sender when to pause, it does not
// retransmit or acknowledge by itself.
package stream
