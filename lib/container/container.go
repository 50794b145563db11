// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package container

import (
	"encoding/binary"
	"fmt"
)

// Magic is the 4-byte container signature.
var Magic = [4]byte{'R', 'C', 'W', 'P'}

// HeaderSize is the fixed encoded header length.
const HeaderSize = 12

// Version is the current container format version.
const Version = 0x01

// Mode selects the payload decoder.
type Mode byte

const (
	// ModeText marks a text-format payload.
	ModeText Mode = 0x01
	// ModeBinary marks a binary record payload.
	ModeBinary Mode = 0x02
	// ModeStream marks a streaming frame sequence.
	ModeStream Mode = 0x03
	// ModeDelta marks a delta packet.
	ModeDelta Mode = 0x04
	// ModeReserved is held for a future payload class. Containers
	// using it are rejected.
	ModeReserved Mode = 0x05
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeText:
		return "text"
	case ModeBinary:
		return "binary"
	case ModeStream:
		return "stream"
	case ModeDelta:
		return "delta"
	case ModeReserved:
		return "reserved"
	default:
		return fmt.Sprintf("unknown(0x%02X)", byte(m))
	}
}

func (m Mode) valid() bool {
	return m >= ModeText && m <= ModeDelta
}

// Checksum types carried in stream metadata.
const (
	ChecksumNone  = 0x00
	ChecksumXOR32 = 0x01
	ChecksumCRC32 = 0x02
)

// Header is the decoded container header.
type Header struct {
	Version     byte
	Mode        Mode
	Flags       uint16
	MetadataLen uint32
}

// StreamMetadata is the metadata block for stream containers.
type StreamMetadata struct {
	// ChunkSize is the sender's nominal chunk payload size in bytes.
	ChunkSize uint32
	// ChecksumType is one of the Checksum constants.
	ChecksumType byte
	// Flags is a stream-level flags bitfield.
	Flags byte
}

// streamMetadataSize is the encoded StreamMetadata length.
const streamMetadataSize = 6

// DeltaMetadata is the metadata block for delta containers.
type DeltaMetadata struct {
	// BaseSnapshot identifies the base record version the delta was
	// computed against.
	BaseSnapshot uint64
	// Algorithm identifies the diff algorithm.
	Algorithm byte
	// Compression identifies payload compression, if any.
	Compression byte
}

// deltaMetadataSize is the encoded DeltaMetadata length.
const deltaMetadataSize = 10

// MagicError reports bytes that do not begin with the container
// signature.
type MagicError struct {
	Found [4]byte
}

func (e *MagicError) Error() string {
	return fmt.Sprintf("bad container magic %q", e.Found[:])
}

// VersionError reports an unsupported container version.
type VersionError struct {
	Found byte
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("unsupported container version 0x%02X", e.Found)
}

// ModeError reports an unknown or reserved mode byte.
type ModeError struct {
	Found byte
}

func (e *ModeError) Error() string {
	return fmt.Sprintf("invalid container mode 0x%02X", e.Found)
}

// TruncatedError reports a container shorter than its header and
// metadata claim.
type TruncatedError struct {
	Expected int
	Found    int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("truncated container: need %d bytes, have %d", e.Expected, e.Found)
}

// MetadataError reports a metadata block of the wrong shape for the
// container's mode.
type MetadataError struct {
	Mode     Mode
	Expected int
	Found    int
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("%s metadata: expected %d bytes, found %d", e.Mode, e.Expected, e.Found)
}

func (h Header) encode() [HeaderSize]byte {
	var buf [HeaderSize]byte
	copy(buf[0:4], Magic[:])
	buf[4] = h.Version
	buf[5] = byte(h.Mode)
	binary.BigEndian.PutUint16(buf[6:8], h.Flags)
	binary.BigEndian.PutUint32(buf[8:12], h.MetadataLen)
	return buf
}

// ParseHeader decodes the 12-byte header at the front of b.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, &TruncatedError{Expected: HeaderSize, Found: len(b)}
	}
	var magic [4]byte
	copy(magic[:], b[0:4])
	if magic != Magic {
		return Header{}, &MagicError{Found: magic}
	}
	h := Header{
		Version:     b[4],
		Mode:        Mode(b[5]),
		Flags:       binary.BigEndian.Uint16(b[6:8]),
		MetadataLen: binary.BigEndian.Uint32(b[8:12]),
	}
	if h.Version != Version {
		return Header{}, &VersionError{Found: h.Version}
	}
	if !h.Mode.valid() {
		return Header{}, &ModeError{Found: b[5]}
	}
	return h, nil
}
