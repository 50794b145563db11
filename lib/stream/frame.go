// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"encoding/binary"
	"fmt"

	"github.com/recwire/recwire/lib/wire"
)

// FrameType identifies a streaming frame.
type FrameType byte

const (
	// FrameBegin opens a stream.
	FrameBegin FrameType = 0xA0
	// FrameChunk carries a payload chunk.
	FrameChunk FrameType = 0xA1
	// FrameEnd closes a stream normally.
	FrameEnd FrameType = 0xA2
	// FrameError aborts a stream; its payload is a UTF-8 message.
	FrameError FrameType = 0xA3
)

// String returns the frame type name.
func (t FrameType) String() string {
	switch t {
	case FrameBegin:
		return "begin"
	case FrameChunk:
		return "chunk"
	case FrameEnd:
		return "end"
	case FrameError:
		return "error"
	default:
		return fmt.Sprintf("unknown(0x%02X)", byte(t))
	}
}

// Frame flag bits. Bits 2 through 7 are reserved and ignored on
// receive.
const (
	// FlagHasMore marks a chunk with more chunks following.
	FlagHasMore = 0x01
	// FlagCompressed marks a chunk whose payload is compressed
	// (compression tag, uncompressed size, compressed bytes).
	FlagCompressed = 0x02
)

// Frame is a decoded streaming frame.
type Frame struct {
	Type     FrameType
	Flags    byte
	Checksum uint32
	Payload  []byte
}

// HasMore reports the has-more flag.
func (f Frame) HasMore() bool { return f.Flags&FlagHasMore != 0 }

// Compressed reports the compressed flag.
func (f Frame) Compressed() bool { return f.Flags&FlagCompressed != 0 }

// XOR32 computes the per-chunk checksum: the payload split into
// little-endian 32-bit words (the final word zero-padded), folded
// together with XOR. Cheap, order-sensitive within a word, and good
// enough to catch the bit corruption this layer is responsible for.
func XOR32(data []byte) uint32 {
	var sum uint32
	for len(data) >= 4 {
		sum ^= binary.LittleEndian.Uint32(data)
		data = data[4:]
	}
	var word uint32
	for i, b := range data {
		word |= uint32(b) << (8 * i)
	}
	return sum ^ word
}

// EncodeFrame serializes a frame. Chunk checksums must already be
// set; use NewChunkFrame for the common path.
func EncodeFrame(f Frame) []byte {
	buf := []byte{byte(f.Type), f.Flags}
	buf = wire.AppendVarint(buf, int64(len(f.Payload)))
	buf = binary.LittleEndian.AppendUint32(buf, f.Checksum)
	return append(buf, f.Payload...)
}

// NewChunkFrame builds a chunk frame over a transmitted payload,
// computing its XOR32 checksum.
func NewChunkFrame(payload []byte, flags byte) Frame {
	return Frame{
		Type:     FrameChunk,
		Flags:    flags,
		Checksum: XOR32(payload),
		Payload:  payload,
	}
}

// DecodeFrame decodes one frame from the front of b, returning the
// frame and the number of bytes consumed. The payload slice aliases
// b. Chunk checksums are verified by the receiver, not here, so the
// caller can honor the negotiated checksum type.
func DecodeFrame(b []byte) (Frame, int, error) {
	if len(b) < 2 {
		return Frame{}, 0, &TruncatedFrameError{Expected: 2, Found: len(b)}
	}
	t := FrameType(b[0])
	switch t {
	case FrameBegin, FrameChunk, FrameEnd, FrameError:
	default:
		return Frame{}, 0, &FrameTypeError{Found: b[0]}
	}
	flags := b[1]
	size, n, err := wire.Varint(b[2:])
	if err != nil {
		return Frame{}, 0, err
	}
	if size < 0 {
		return Frame{}, 0, &FrameSizeError{Size: size}
	}
	pos := 2 + n
	if len(b)-pos < 4 {
		return Frame{}, 0, &TruncatedFrameError{Expected: pos + 4, Found: len(b)}
	}
	sum := binary.LittleEndian.Uint32(b[pos:])
	pos += 4
	if int64(len(b)-pos) < size {
		return Frame{}, 0, &TruncatedFrameError{Expected: pos + int(size), Found: len(b)}
	}
	payload := b[pos : pos+int(size)]
	return Frame{Type: t, Flags: flags, Checksum: sum, Payload: payload}, pos + int(size), nil
}
