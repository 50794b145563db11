// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package container

import (
	"encoding/binary"

	"github.com/zeebo/blake3"

	"github.com/recwire/recwire/lib/value"
	"github.com/recwire/recwire/lib/wire"
)

// Builder assembles a container: mode, optional metadata, payload.
type Builder struct {
	header   Header
	metadata []byte
}

// NewBuilder returns a builder for the given mode with no metadata.
func NewBuilder(mode Mode) *Builder {
	return &Builder{header: Header{Version: Version, Mode: mode}}
}

// WithFlags sets the header flags bitfield.
func (b *Builder) WithFlags(flags uint16) *Builder {
	b.header.Flags = flags
	return b
}

// WithStreamMetadata attaches stream metadata and switches the mode
// to stream.
func (b *Builder) WithStreamMetadata(m StreamMetadata) *Builder {
	buf := make([]byte, streamMetadataSize)
	binary.BigEndian.PutUint32(buf[0:4], m.ChunkSize)
	buf[4] = m.ChecksumType
	buf[5] = m.Flags
	b.header.Mode = ModeStream
	b.metadata = buf
	return b
}

// WithDeltaMetadata attaches delta metadata and switches the mode to
// delta.
func (b *Builder) WithDeltaMetadata(m DeltaMetadata) *Builder {
	buf := make([]byte, deltaMetadataSize)
	binary.BigEndian.PutUint64(buf[0:8], m.BaseSnapshot)
	buf[8] = m.Algorithm
	buf[9] = m.Compression
	b.header.Mode = ModeDelta
	b.metadata = buf
	return b
}

// Wrap prefixes the payload with the header and metadata.
func (b *Builder) Wrap(payload []byte) ([]byte, error) {
	if !b.header.Mode.valid() {
		return nil, &ModeError{Found: byte(b.header.Mode)}
	}
	if err := b.checkMetadata(); err != nil {
		return nil, err
	}
	b.header.MetadataLen = uint32(len(b.metadata))
	head := b.header.encode()
	out := make([]byte, 0, HeaderSize+len(b.metadata)+len(payload))
	out = append(out, head[:]...)
	out = append(out, b.metadata...)
	return append(out, payload...), nil
}

// WrapRecord binary-encodes the record and wraps it in a ModeBinary
// container.
func (b *Builder) WrapRecord(r *value.Record) ([]byte, error) {
	if b.header.Mode != ModeBinary {
		return nil, &ModeError{Found: byte(b.header.Mode)}
	}
	payload, err := wire.Encode(r)
	if err != nil {
		return nil, err
	}
	return b.Wrap(payload)
}

func (b *Builder) checkMetadata() error {
	switch b.header.Mode {
	case ModeStream:
		if len(b.metadata) != streamMetadataSize {
			return &MetadataError{Mode: ModeStream, Expected: streamMetadataSize, Found: len(b.metadata)}
		}
	case ModeDelta:
		if len(b.metadata) != deltaMetadataSize {
			return &MetadataError{Mode: ModeDelta, Expected: deltaMetadataSize, Found: len(b.metadata)}
		}
	}
	return nil
}

// Frame is a decoded view over a container: header, metadata block,
// and payload. The metadata and payload slices alias the input.
type Frame struct {
	header   Header
	metadata []byte
	payload  []byte
}

// Parse splits b into header, metadata, and payload, validating the
// metadata shape for the container's mode.
func Parse(b []byte) (*Frame, error) {
	h, err := ParseHeader(b)
	if err != nil {
		return nil, err
	}
	mlen := int(h.MetadataLen)
	if len(b)-HeaderSize < mlen {
		return nil, &TruncatedError{Expected: HeaderSize + mlen, Found: len(b)}
	}
	f := &Frame{
		header:   h,
		metadata: b[HeaderSize : HeaderSize+mlen],
		payload:  b[HeaderSize+mlen:],
	}
	switch h.Mode {
	case ModeStream:
		if mlen != streamMetadataSize {
			return nil, &MetadataError{Mode: ModeStream, Expected: streamMetadataSize, Found: mlen}
		}
	case ModeDelta:
		if mlen != deltaMetadataSize {
			return nil, &MetadataError{Mode: ModeDelta, Expected: deltaMetadataSize, Found: mlen}
		}
	}
	return f, nil
}

// Header returns the decoded header.
func (f *Frame) Header() Header { return f.header }

// Payload returns the payload bytes following the metadata block.
func (f *Frame) Payload() []byte { return f.payload }

// StreamMetadata decodes the stream metadata block. It returns false
// when the container is not in stream mode.
func (f *Frame) StreamMetadata() (StreamMetadata, bool) {
	if f.header.Mode != ModeStream {
		return StreamMetadata{}, false
	}
	return StreamMetadata{
		ChunkSize:    binary.BigEndian.Uint32(f.metadata[0:4]),
		ChecksumType: f.metadata[4],
		Flags:        f.metadata[5],
	}, true
}

// DeltaMetadata decodes the delta metadata block. It returns false
// when the container is not in delta mode.
func (f *Frame) DeltaMetadata() (DeltaMetadata, bool) {
	if f.header.Mode != ModeDelta {
		return DeltaMetadata{}, false
	}
	return DeltaMetadata{
		BaseSnapshot: binary.BigEndian.Uint64(f.metadata[0:8]),
		Algorithm:    f.metadata[8],
		Compression:  f.metadata[9],
	}, true
}

// Record decodes the payload as a binary record. Only valid for
// ModeBinary containers.
func (f *Frame) Record() (*value.Record, error) {
	if f.header.Mode != ModeBinary {
		return nil, &ModeError{Found: byte(f.header.Mode)}
	}
	return wire.Decode(f.payload)
}

// payloadDomainKey is the BLAKE3 key for container payload digests.
// ASCII domain name zero-padded to 32 bytes; fixed for the life of
// the format.
var payloadDomainKey = [32]byte{
	'r', 'e', 'c', 'w', 'i', 'r', 'e', '.', 'c', 'o', 'n', 't', 'a', 'i', 'n', 'e', 'r', '.',
	'p', 'a', 'y', 'l', 'o', 'a', 'd', 0, 0, 0, 0, 0, 0, 0,
}

// PayloadDigest computes the keyed BLAKE3 digest of a container
// payload, used to detect corruption when containers are stored or
// relayed outside the stream layer's per-chunk checksums.
func PayloadDigest(payload []byte) [32]byte {
	hasher, err := blake3.NewKeyed(payloadDomainKey[:])
	if err != nil {
		panic("container: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(payload)
	var out [32]byte
	copy(out[:], hasher.Sum(nil))
	return out
}
