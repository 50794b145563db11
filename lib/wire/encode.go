// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"math"

	"github.com/recwire/recwire/lib/value"
)

// Config bounds the codec. The zero MaxRecordSize means unlimited;
// a zero MaxDepth falls back to DefaultMaxDepth.
type Config struct {
	// MaxDepth bounds nesting depth. A flat record is depth 0.
	MaxDepth int
	// MaxRecordSize bounds the cumulative encoded or decoded payload
	// size in bytes. Zero disables the check.
	MaxRecordSize int
}

// DefaultMaxDepth is the nesting depth bound used when Config leaves
// MaxDepth zero.
const DefaultMaxDepth = 32

func (c Config) maxDepth() int {
	if c.MaxDepth > 0 {
		return c.MaxDepth
	}
	return DefaultMaxDepth
}

// Encode encodes a record into a canonical binary payload using the
// default configuration.
func Encode(r *value.Record) ([]byte, error) {
	return Config{}.Encode(r)
}

// Encode encodes a record into a canonical binary payload: version,
// flags, entry count, then entries sorted ascending by FID at every
// level. The record is not modified; canonical order is applied as a
// projection while encoding.
func (c Config) Encode(r *value.Record) ([]byte, error) {
	buf := []byte{Version, 0x00}
	buf = AppendVarint(buf, int64(r.Len()))
	for _, f := range r.CanonicalFields() {
		tag := tagForKind(f.Value.Kind())
		if tag == 0 {
			return nil, &ValueError{ID: uint16(f.ID), Tag: 0, Reason: "cannot encode invalid value"}
		}
		buf = binary.LittleEndian.AppendUint16(buf, uint16(f.ID))
		buf = append(buf, tag)
		var err error
		buf, err = c.appendPayload(buf, f.ID, f.Value, 0)
		if err != nil {
			return nil, err
		}
		if c.MaxRecordSize > 0 && len(buf) > c.MaxRecordSize {
			return nil, &RecordSizeError{Size: len(buf), Max: c.MaxRecordSize}
		}
	}
	return buf, nil
}

// appendPayload appends the type-specific payload for v (the tag has
// already been written by the caller).
func (c Config) appendPayload(buf []byte, id value.FieldID, v value.Value, depth int) ([]byte, error) {
	switch v.Kind() {
	case value.KindInt:
		return AppendVarint(buf, v.IntValue()), nil
	case value.KindFloat:
		return binary.LittleEndian.AppendUint64(buf, math.Float64bits(v.FloatValue())), nil
	case value.KindBool:
		if v.BoolValue() {
			return append(buf, 0x01), nil
		}
		return append(buf, 0x00), nil
	case value.KindString:
		s := v.StringValue()
		buf = AppendVarint(buf, int64(len(s)))
		return append(buf, s...), nil
	case value.KindStringArray:
		arr := v.StringArrayValue()
		buf = AppendVarint(buf, int64(len(arr)))
		for _, s := range arr {
			buf = AppendVarint(buf, int64(len(s)))
			buf = append(buf, s...)
		}
		return buf, nil
	case value.KindIntArray:
		arr := v.IntArrayValue()
		buf = AppendVarint(buf, int64(len(arr)))
		for _, n := range arr {
			buf = AppendVarint(buf, n)
		}
		return buf, nil
	case value.KindFloatArray:
		arr := v.FloatArrayValue()
		buf = AppendVarint(buf, int64(len(arr)))
		for _, f := range arr {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
		}
		return buf, nil
	case value.KindBoolArray:
		arr := v.BoolArrayValue()
		buf = AppendVarint(buf, int64(len(arr)))
		for _, b := range arr {
			if b {
				buf = append(buf, 0x01)
			} else {
				buf = append(buf, 0x00)
			}
		}
		return buf, nil
	case value.KindRecord:
		return c.appendNestedRecord(buf, v.RecordValue(), depth+1)
	case value.KindRecordArray:
		recs := v.RecordArrayValue()
		if depth+1 > c.maxDepth() {
			return nil, &NestingDepthError{Depth: depth + 1, Max: c.maxDepth()}
		}
		buf = AppendVarint(buf, int64(len(recs)))
		for _, rec := range recs {
			buf = append(buf, TagRecord)
			var err error
			buf, err = c.appendNestedFields(buf, rec, depth+1)
			if err != nil {
				return nil, err
			}
		}
		return buf, nil
	default:
		return nil, &ValueError{ID: uint16(id), Tag: 0, Reason: "cannot encode invalid value"}
	}
}

// appendNestedRecord appends a nested record payload: field count,
// then (VarInt FID, tag, payload) per field in canonical order. The
// caller has already written the TagRecord byte for values; for array
// elements the tag precedes each record.
func (c Config) appendNestedRecord(buf []byte, r *value.Record, depth int) ([]byte, error) {
	if depth > c.maxDepth() {
		return nil, &NestingDepthError{Depth: depth, Max: c.maxDepth()}
	}
	return c.appendNestedFields(buf, r, depth)
}

func (c Config) appendNestedFields(buf []byte, r *value.Record, depth int) ([]byte, error) {
	if depth > c.maxDepth() {
		return nil, &NestingDepthError{Depth: depth, Max: c.maxDepth()}
	}
	buf = AppendVarint(buf, int64(r.Len()))
	for _, f := range r.CanonicalFields() {
		tag := tagForKind(f.Value.Kind())
		if tag == 0 {
			return nil, &ValueError{ID: uint16(f.ID), Tag: 0, Reason: "cannot encode invalid value"}
		}
		buf = AppendVarint(buf, int64(f.ID))
		buf = append(buf, tag)
		var err error
		buf, err = c.appendPayload(buf, f.ID, f.Value, depth)
		if err != nil {
			return nil, err
		}
		if c.MaxRecordSize > 0 && len(buf) > c.MaxRecordSize {
			return nil, &RecordSizeError{Size: len(buf), Max: c.MaxRecordSize}
		}
	}
	return buf, nil
}

// EncodedValue encodes a single tagged value (tag byte plus payload)
// outside a record context. The delta layer uses this form for op
// payloads.
func (c Config) EncodedValue(id value.FieldID, v value.Value) ([]byte, error) {
	tag := tagForKind(v.Kind())
	if tag == 0 {
		return nil, &ValueError{ID: uint16(id), Tag: 0, Reason: "cannot encode invalid value"}
	}
	buf := []byte{tag}
	return c.appendPayload(buf, id, v, 0)
}
