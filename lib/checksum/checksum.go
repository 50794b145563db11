// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package checksum

import (
	"fmt"
	"hash/crc32"
	"strconv"
	"strings"

	"github.com/recwire/recwire/lib/value"
)

// Compute returns the SC32 checksum of a field: CRC-32/ISO-HDLC over
// the canonical serialization "fid:hint:value". The record backing a
// nested value is not modified; canonical ordering is applied as a
// projection during serialization.
func Compute(id value.FieldID, v value.Value) uint32 {
	var b strings.Builder
	serializeField(&b, id, v)
	return crc32.ChecksumIEEE([]byte(b.String()))
}

// Validate reports whether sum is the SC32 checksum of the field.
func Validate(id value.FieldID, v value.Value, sum uint32) bool {
	return Compute(id, v) == sum
}

// Format renders a checksum as 8 uppercase hex characters, the form
// used in text payloads ("F12:i=14532#36AAE667").
func Format(sum uint32) string {
	return fmt.Sprintf("%08X", sum)
}

// Parse reads an 8-hex-digit checksum, with or without a "0x"
// prefix. It reports false for any other shape.
func Parse(s string) (uint32, bool) {
	s = strings.TrimPrefix(s, "0x")
	if len(s) != 8 {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

func serializeField(b *strings.Builder, id value.FieldID, v value.Value) {
	b.WriteString(strconv.FormatUint(uint64(id), 10))
	b.WriteByte(':')
	b.WriteString(v.Kind().TypeHint())
	b.WriteByte(':')
	serializeValue(b, v)
}

// serializeValue writes the normalized text form of a value. The
// rules here define checksum identity and must not change:
// booleans are 1/0, -0 collapses to 0, floats use the shortest
// round-trip decimal with trailing zeros trimmed, scalar arrays join
// elements with commas in element order, nested records render as
// {fid:hint:val;...} in canonical order, and nested arrays wrap
// record forms in [...] preserving element order.
func serializeValue(b *strings.Builder, v value.Value) {
	switch v.Kind() {
	case value.KindInt:
		b.WriteString(strconv.FormatInt(v.IntValue(), 10))
	case value.KindFloat:
		b.WriteString(normalizeFloat(v.FloatValue()))
	case value.KindBool:
		if v.BoolValue() {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	case value.KindString:
		b.WriteString(v.StringValue())
	case value.KindStringArray:
		for i, s := range v.StringArrayValue() {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(s)
		}
	case value.KindIntArray:
		for i, n := range v.IntArrayValue() {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatInt(n, 10))
		}
	case value.KindFloatArray:
		for i, f := range v.FloatArrayValue() {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(normalizeFloat(f))
		}
	case value.KindBoolArray:
		for i, bv := range v.BoolArrayValue() {
			if i > 0 {
				b.WriteByte(',')
			}
			if bv {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
	case value.KindRecord:
		serializeRecord(b, v.RecordValue())
	case value.KindRecordArray:
		b.WriteByte('[')
		for i, rec := range v.RecordArrayValue() {
			if i > 0 {
				b.WriteByte(',')
			}
			serializeRecord(b, rec)
		}
		b.WriteByte(']')
	}
}

func serializeRecord(b *strings.Builder, r *value.Record) {
	b.WriteByte('{')
	for i, f := range r.CanonicalFields() {
		if i > 0 {
			b.WriteByte(';')
		}
		serializeField(b, f.ID, f.Value)
	}
	b.WriteByte('}')
}

// normalizeFloat renders a float in its checksum-canonical form:
// negative zero collapses to zero, then the shortest decimal that
// round-trips, with any trailing fractional zeros and a bare decimal
// point trimmed.
func normalizeFloat(f float64) string {
	if f == 0 {
		f = 0
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, "eE") || !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
