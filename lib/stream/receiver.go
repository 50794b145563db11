// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"log/slog"

	"github.com/recwire/recwire/lib/wire"
)

// EventKind classifies what a fed frame meant.
type EventKind uint8

const (
	// EventBegin reports the stream opened.
	EventBegin EventKind = iota
	// EventChunk reports a verified chunk; Event.Data holds the
	// decompressed payload.
	EventChunk
	// EventEnd reports normal completion; the assembled payload is
	// available via Receiver.Payload.
	EventEnd
	// EventAbort reports an ERROR frame; Event.Message holds the
	// peer's diagnostic.
	EventAbort
)

// Event is the outcome of feeding one frame to a Receiver.
type Event struct {
	Kind    EventKind
	Data    []byte
	Message string
}

// Receiver consumes the frame sequence of one stream, verifying
// checksums and reassembling the payload. Not safe for concurrent
// use.
type Receiver struct {
	cfg    Config
	state  State
	buf    []byte
	chunks int
	log    *slog.Logger
}

// NewReceiver returns an idle receiver. A nil logger uses
// slog.Default.
func NewReceiver(cfg Config, log *slog.Logger) *Receiver {
	if log == nil {
		log = slog.Default()
	}
	return &Receiver{cfg: cfg, log: log}
}

// State returns the receiver's lifecycle position.
func (r *Receiver) State() State { return r.state }

// Payload returns the assembled payload and true once the stream has
// ended normally.
func (r *Receiver) Payload() ([]byte, bool) {
	if r.state != StateClosed || r.buf == nil {
		return nil, false
	}
	return r.buf, true
}

// Feed consumes one encoded frame. Frames must arrive in order; a
// frame the current state does not permit fails with a
// SequenceError. A checksum mismatch fails with a
// ChecksumMismatchError and kills the stream: this layer assumes
// ordered delivery and has no recovery protocol.
func (r *Receiver) Feed(frame []byte) (Event, error) {
	f, n, err := DecodeFrame(frame)
	if err != nil {
		return Event{}, err
	}
	if n != len(frame) {
		return Event{}, &TruncatedFrameError{Expected: n, Found: len(frame)}
	}
	switch f.Type {
	case FrameBegin:
		if r.state != StateIdle {
			return Event{}, &SequenceError{State: r.state, Frame: FrameBegin}
		}
		r.state = StateStreaming
		r.buf = []byte{}
		return Event{Kind: EventBegin}, nil

	case FrameChunk:
		if r.state != StateStreaming {
			return Event{}, &SequenceError{State: r.state, Frame: FrameChunk}
		}
		data, err := r.chunk(f)
		if err != nil {
			r.state = StateClosed
			r.buf = nil
			return Event{}, err
		}
		r.chunks++
		r.buf = append(r.buf, data...)
		return Event{Kind: EventChunk, Data: data}, nil

	case FrameEnd:
		if r.state != StateStreaming {
			return Event{}, &SequenceError{State: r.state, Frame: FrameEnd}
		}
		r.state = StateClosed
		r.log.Debug("stream complete", "chunks", r.chunks, "bytes", len(r.buf))
		return Event{Kind: EventEnd}, nil

	case FrameError:
		if r.state == StateClosed {
			return Event{}, &SequenceError{State: r.state, Frame: FrameError}
		}
		r.state = StateClosed
		r.buf = nil
		msg := string(f.Payload)
		r.log.Warn("stream aborted by peer", "reason", msg)
		return Event{Kind: EventAbort, Message: msg}, &AbortError{Message: msg}

	default:
		return Event{}, &FrameTypeError{Found: byte(f.Type)}
	}
}

// chunk verifies and, if needed, decompresses one chunk payload.
func (r *Receiver) chunk(f Frame) ([]byte, error) {
	if r.cfg.ChecksumType != ChecksumNone {
		computed := r.cfg.checksum(f.Payload)
		if computed != f.Checksum {
			return nil, &ChecksumMismatchError{Expected: f.Checksum, Found: computed}
		}
	}
	if !f.Compressed() {
		if len(f.Payload) > r.cfg.chunkSize() {
			return nil, &ChunkSizeError{Size: len(f.Payload), Max: r.cfg.chunkSize()}
		}
		// Copy out of the caller's frame buffer.
		return append([]byte(nil), f.Payload...), nil
	}

	if len(f.Payload) < 1 {
		return nil, &TruncatedFrameError{Expected: 1, Found: 0}
	}
	tag := CompressionTag(f.Payload[0])
	size, n, err := wire.Varint(f.Payload[1:])
	if err != nil {
		return nil, err
	}
	if size < 0 || int(size) > r.cfg.chunkSize() {
		return nil, &ChunkSizeError{Size: int(size), Max: r.cfg.chunkSize()}
	}
	return decompressChunk(f.Payload[1+n:], tag, int(size))
}
