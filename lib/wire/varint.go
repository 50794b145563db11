// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package wire

// Signed LEB128 VarInt. Each byte carries 7 data bits; the high bit
// marks continuation. The final byte's bit 6 is the sign, extended
// through the remaining high bits on decode.

// maxVarintLen is the longest valid encoding of an int64: 64 bits at
// 7 bits per byte.
const maxVarintLen = 10

// AppendVarint appends the LEB128 encoding of v to dst and returns
// the extended slice.
func AppendVarint(dst []byte, v int64) []byte {
	for {
		b := byte(v & 0x7F)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(dst, b)
		}
		dst = append(dst, b|0x80)
	}
}

// Varint decodes a LEB128 VarInt from the front of b, returning the
// value and the number of bytes consumed.
func Varint(b []byte) (int64, int, error) {
	if len(b) == 0 {
		return 0, 0, &VarintError{Reason: "empty input"}
	}
	var v int64
	var shift uint
	for i := 0; i < len(b); i++ {
		if i == maxVarintLen {
			return 0, 0, &VarintError{Reason: "encoding exceeds 10 bytes"}
		}
		c := b[i]
		if shift < 64 {
			v |= int64(c&0x7F) << shift
		}
		shift += 7
		if c&0x80 == 0 {
			// Sign-extend from the final byte's bit 6.
			if shift < 64 && c&0x40 != 0 {
				v |= -1 << shift
			}
			return v, i + 1, nil
		}
	}
	return 0, 0, &VarintError{Reason: "truncated encoding"}
}

// nonNegVarint decodes a VarInt that must be non-negative (lengths
// and counts). It also bounds the value to fit in int on 32-bit
// platforms.
func nonNegVarint(b []byte) (int, int, error) {
	v, n, err := Varint(b)
	if err != nil {
		return 0, 0, err
	}
	if v < 0 {
		return 0, 0, &VarintError{Reason: "negative length or count"}
	}
	if int64(int(v)) != v {
		return 0, 0, &VarintError{Reason: "length or count overflows int"}
	}
	return int(v), n, nil
}
