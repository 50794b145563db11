// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"errors"
	"fmt"
	"hash/crc32"
	"log/slog"

	"github.com/recwire/recwire/lib/wire"
)

// State is the position of a stream endpoint in its lifecycle.
type State uint8

const (
	// StateIdle precedes the BEGIN frame.
	StateIdle State = iota
	// StateStreaming lies between BEGIN and END.
	StateStreaming
	// StateClosed follows END or an ERROR frame. A closed endpoint
	// accepts nothing further.
	StateClosed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStreaming:
		return "streaming"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// Checksum type selectors, matching the container stream metadata
// values.
const (
	// ChecksumNone disables chunk checksums.
	ChecksumNone = 0x00
	// ChecksumXOR32 selects the XOR32 word fold.
	ChecksumXOR32 = 0x01
	// ChecksumCRC32 selects CRC-32/ISO-HDLC.
	ChecksumCRC32 = 0x02
)

// DefaultChunkSize is the nominal chunk payload size when Config
// leaves ChunkSize zero.
const DefaultChunkSize = 4096

// Config shapes both ends of a stream. Peers must agree on the
// checksum type; chunk size and compression are sender-local choices
// declared in the container's stream metadata.
type Config struct {
	// ChunkSize is the maximum chunk payload size in bytes. Zero
	// means DefaultChunkSize.
	ChunkSize int
	// ChecksumType is one of the Checksum constants.
	ChecksumType byte
	// Compression is applied to chunk payloads when it actually
	// shrinks them. CompressionNone disables it.
	Compression CompressionTag
}

func (c Config) chunkSize() int {
	if c.ChunkSize > 0 {
		return c.ChunkSize
	}
	return DefaultChunkSize
}

func (c Config) checksum(data []byte) uint32 {
	switch c.ChecksumType {
	case ChecksumCRC32:
		return crc32.ChecksumIEEE(data)
	case ChecksumNone:
		return 0
	default:
		return XOR32(data)
	}
}

// Sender produces the frame sequence for one stream. Not safe for
// concurrent use.
type Sender struct {
	cfg   Config
	state State
	sent  int
	log   *slog.Logger
}

// NewSender returns an idle sender. A nil logger uses slog.Default.
func NewSender(cfg Config, log *slog.Logger) *Sender {
	if log == nil {
		log = slog.Default()
	}
	return &Sender{cfg: cfg, log: log}
}

// State returns the sender's lifecycle position.
func (s *Sender) State() State { return s.state }

// Begin emits the BEGIN frame and moves to the streaming state.
func (s *Sender) Begin() ([]byte, error) {
	if s.state != StateIdle {
		return nil, &SequenceError{State: s.state, Frame: FrameBegin}
	}
	s.state = StateStreaming
	s.log.Debug("stream opened",
		"chunk_size", s.cfg.chunkSize(),
		"compression", s.cfg.Compression.String())
	return EncodeFrame(Frame{Type: FrameBegin}), nil
}

// Chunk emits one CHUNK frame carrying data, compressing when the
// configuration asks for it and it pays off. hasMore marks whether
// further chunks follow.
func (s *Sender) Chunk(data []byte, hasMore bool) ([]byte, error) {
	if s.state != StateStreaming {
		return nil, &SequenceError{State: s.state, Frame: FrameChunk}
	}
	if len(data) > s.cfg.chunkSize() {
		return nil, &ChunkSizeError{Size: len(data), Max: s.cfg.chunkSize()}
	}

	var flags byte
	if hasMore {
		flags |= FlagHasMore
	}
	payload := data
	if s.cfg.Compression != CompressionNone {
		compressed, err := compressChunk(data, s.cfg.Compression)
		switch {
		case err == nil:
			wrapped := []byte{byte(s.cfg.Compression)}
			wrapped = wire.AppendVarint(wrapped, int64(len(data)))
			payload = append(wrapped, compressed...)
			flags |= FlagCompressed
		case errors.Is(err, errIncompressible):
			// Fall through with the raw payload.
		default:
			return nil, err
		}
	}

	s.sent += len(payload)
	return EncodeFrame(Frame{
		Type:     FrameChunk,
		Flags:    flags,
		Checksum: s.cfg.checksum(payload),
		Payload:  payload,
	}), nil
}

// End emits the END frame and closes the stream.
func (s *Sender) End() ([]byte, error) {
	if s.state != StateStreaming {
		return nil, &SequenceError{State: s.state, Frame: FrameEnd}
	}
	s.state = StateClosed
	s.log.Debug("stream closed", "bytes_sent", s.sent)
	return EncodeFrame(Frame{Type: FrameEnd}), nil
}

// Abort emits an ERROR frame carrying message and closes the stream.
// Valid in any state except closed.
func (s *Sender) Abort(message string) ([]byte, error) {
	if s.state == StateClosed {
		return nil, &SequenceError{State: s.state, Frame: FrameError}
	}
	s.state = StateClosed
	s.log.Warn("stream aborted", "reason", message)
	return EncodeFrame(Frame{Type: FrameError, Payload: []byte(message)}), nil
}

// Send streams an entire payload through yield as BEGIN, chunks of at
// most the configured size, then END. A single-pass convenience over
// Begin, Chunk, and End.
func (s *Sender) Send(payload []byte, yield func(frame []byte) error) error {
	frame, err := s.Begin()
	if err != nil {
		return err
	}
	if err := yield(frame); err != nil {
		return err
	}
	size := s.cfg.chunkSize()
	for off := 0; ; off += size {
		end := off + size
		if end > len(payload) {
			end = len(payload)
		}
		frame, err := s.Chunk(payload[off:end], end < len(payload))
		if err != nil {
			return err
		}
		if err := yield(frame); err != nil {
			return err
		}
		if end == len(payload) {
			break
		}
	}
	frame, err = s.End()
	if err != nil {
		return err
	}
	return yield(frame)
}
