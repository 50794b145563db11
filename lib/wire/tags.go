// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import "github.com/recwire/recwire/lib/value"

// Type tags identify value encodings on the wire. Tags 0x0B through
// 0x0F are reserved; the decoder rejects them with a TagError.
const (
	TagInt         = 0x01
	TagFloat       = 0x02
	TagBool        = 0x03
	TagString      = 0x04
	TagStringArray = 0x05
	TagRecord      = 0x06
	TagRecordArray = 0x07
	TagIntArray    = 0x08
	TagFloatArray  = 0x09
	TagBoolArray   = 0x0A
)

// Version is the current record payload version byte.
const Version = 0x05

// tagForKind maps a value kind to its wire tag. Returns 0 for
// KindInvalid.
func tagForKind(k value.Kind) byte {
	switch k {
	case value.KindInt:
		return TagInt
	case value.KindFloat:
		return TagFloat
	case value.KindBool:
		return TagBool
	case value.KindString:
		return TagString
	case value.KindStringArray:
		return TagStringArray
	case value.KindRecord:
		return TagRecord
	case value.KindRecordArray:
		return TagRecordArray
	case value.KindIntArray:
		return TagIntArray
	case value.KindFloatArray:
		return TagFloatArray
	case value.KindBoolArray:
		return TagBoolArray
	default:
		return 0
	}
}
