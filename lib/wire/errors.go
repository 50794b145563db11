// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import "fmt"

// TruncatedError reports input that ended before a complete element
// could be read.
type TruncatedError struct {
	Expected int
	Found    int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("truncated input: need %d bytes, have %d", e.Expected, e.Found)
}

// VersionError reports a payload whose version byte this decoder does
// not support.
type VersionError struct {
	Found     byte
	Supported []byte
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("unsupported version 0x%02X (supported: %v)", e.Found, e.Supported)
}

// TagError reports an unknown or reserved type tag.
type TagError struct {
	Tag byte
}

func (e *TagError) Error() string {
	return fmt.Sprintf("invalid type tag 0x%02X", e.Tag)
}

// VarintError reports a malformed VarInt.
type VarintError struct {
	Reason string
}

func (e *VarintError) Error() string {
	return "invalid varint: " + e.Reason
}

// ValueError reports a value payload that could not be decoded or
// encoded for a specific field.
type ValueError struct {
	ID     uint16
	Tag    byte
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid value in field %d (tag 0x%02X): %s", e.ID, e.Tag, e.Reason)
}

// UTF8Error reports a string payload that is not valid UTF-8.
type UTF8Error struct {
	ID uint16
}

func (e *UTF8Error) Error() string {
	return fmt.Sprintf("invalid UTF-8 in field %d", e.ID)
}

// TrailingDataError reports bytes left over after a complete payload.
type TrailingDataError struct {
	Remaining int
}

func (e *TrailingDataError) Error() string {
	return fmt.Sprintf("%d trailing bytes after payload", e.Remaining)
}

// CanonicalOrderError reports fields that are not sorted strictly
// ascending by FID.
type CanonicalOrderError struct {
	Previous uint16
	Current  uint16
}

func (e *CanonicalOrderError) Error() string {
	return fmt.Sprintf("canonical order violation: field %d follows field %d", e.Current, e.Previous)
}

// NestingDepthError reports a payload nested deeper than the decoder
// allows.
type NestingDepthError struct {
	Depth int
	Max   int
}

func (e *NestingDepthError) Error() string {
	return fmt.Sprintf("nesting depth %d exceeds limit %d", e.Depth, e.Max)
}

// RecordSizeError reports a payload whose cumulative decoded size
// exceeds the configured maximum.
type RecordSizeError struct {
	Size int
	Max  int
}

func (e *RecordSizeError) Error() string {
	return fmt.Sprintf("record size %d exceeds limit %d", e.Size, e.Max)
}
