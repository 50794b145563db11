// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package stream

import "fmt"

// FrameTypeError reports an unknown frame identifier byte.
type FrameTypeError struct {
	Found byte
}

func (e *FrameTypeError) Error() string {
	return fmt.Sprintf("invalid frame type 0x%02X", e.Found)
}

// TruncatedFrameError reports a frame cut short.
type TruncatedFrameError struct {
	Expected int
	Found    int
}

func (e *TruncatedFrameError) Error() string {
	return fmt.Sprintf("truncated frame: need %d bytes, have %d", e.Expected, e.Found)
}

// FrameSizeError reports a negative chunk size prefix.
type FrameSizeError struct {
	Size int64
}

func (e *FrameSizeError) Error() string {
	return fmt.Sprintf("invalid chunk size %d", e.Size)
}

// ChecksumMismatchError reports a chunk whose payload does not match
// its declared checksum. Unrecoverable at this layer.
type ChecksumMismatchError struct {
	Expected uint32
	Found    uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("chunk checksum mismatch: declared %08X, computed %08X", e.Expected, e.Found)
}

// SequenceError reports a frame arriving in a state that does not
// permit it.
type SequenceError struct {
	State State
	Frame FrameType
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("%s frame not permitted in %s state", e.Frame, e.State)
}

// ChunkSizeError reports a chunk larger than the configured maximum.
type ChunkSizeError struct {
	Size int
	Max  int
}

func (e *ChunkSizeError) Error() string {
	return fmt.Sprintf("chunk size %d exceeds limit %d", e.Size, e.Max)
}

// AbortError reports a stream terminated by a peer's ERROR frame.
type AbortError struct {
	Message string
}

func (e *AbortError) Error() string {
	return "stream aborted by peer: " + e.Message
}
