// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package delta

import (
	"fmt"

	"github.com/recwire/recwire/lib/value"
	"github.com/recwire/recwire/lib/wire"
)

// PacketTag opens every delta packet.
const PacketTag = 0xB0

// Packet layout:
//
//	TAG(0xB0) ALGORITHM(1) BASE_FINGERPRINT(32)
//	OP_COUNT(VarInt)
//	per op: FID(VarInt) OP(1) PAYLOAD_LEN(VarInt) PAYLOAD
//
// A Set payload is a tagged wire value; a Remove payload is empty.

// PacketTagError reports a packet that does not start with 0xB0.
type PacketTagError struct {
	Found byte
}

func (e *PacketTagError) Error() string {
	return fmt.Sprintf("invalid delta packet tag 0x%02X", e.Found)
}

// Encode serializes the delta as a packet.
func Encode(d *Delta) ([]byte, error) {
	buf := []byte{PacketTag, d.Algorithm}
	buf = append(buf, d.Base[:]...)
	buf = wire.AppendVarint(buf, int64(len(d.Ops)))
	cfg := wire.Config{}
	for _, op := range d.Ops {
		buf = wire.AppendVarint(buf, int64(op.FID))
		buf = append(buf, byte(op.Kind))
		switch op.Kind {
		case OpSet:
			payload, err := cfg.EncodedValue(op.FID, op.Value)
			if err != nil {
				return nil, err
			}
			buf = wire.AppendVarint(buf, int64(len(payload)))
			buf = append(buf, payload...)
		case OpRemove:
			buf = wire.AppendVarint(buf, 0)
		default:
			return nil, fmt.Errorf("delta: cannot encode op kind 0x%02X for field %d", byte(op.Kind), op.FID)
		}
	}
	return buf, nil
}

// Decode parses a delta packet. Trailing bytes are an error. Op
// payloads are decoded eagerly so a malformed packet never reaches
// Apply.
func Decode(b []byte) (*Delta, error) {
	if len(b) < 2+32 {
		return nil, &wire.TruncatedError{Expected: 2 + 32, Found: len(b)}
	}
	if b[0] != PacketTag {
		return nil, &PacketTagError{Found: b[0]}
	}
	d := &Delta{Algorithm: b[1]}
	if d.Algorithm != AlgorithmFinalState {
		return nil, &AlgorithmError{Algorithm: d.Algorithm}
	}
	copy(d.Base[:], b[2:34])
	pos := 34

	count, n, err := varCount(b[pos:])
	if err != nil {
		return nil, err
	}
	pos += n
	cfg := wire.Config{}
	for i := 0; i < count; i++ {
		fid, n, err := varCount(b[pos:])
		if err != nil {
			return nil, err
		}
		if fid > 0xFFFF {
			return nil, &wire.VarintError{Reason: "field id out of uint16 range"}
		}
		pos += n
		if pos >= len(b) {
			return nil, &wire.TruncatedError{Expected: pos + 1, Found: len(b)}
		}
		kind := OpKind(b[pos])
		pos++
		plen, n, err := varCount(b[pos:])
		if err != nil {
			return nil, err
		}
		pos += n
		if len(b)-pos < plen {
			return nil, &wire.TruncatedError{Expected: pos + plen, Found: len(b)}
		}
		payload := b[pos : pos+plen]
		pos += plen

		op := Op{FID: value.FieldID(fid), Kind: kind}
		switch kind {
		case OpSet:
			v, err := cfg.DecodeValue(op.FID, payload)
			if err != nil {
				return nil, err
			}
			op.Value = v
		case OpRemove:
			if plen != 0 {
				return nil, fmt.Errorf("delta: remove op for field %d carries a payload", fid)
			}
		default:
			return nil, fmt.Errorf("delta: unknown op kind 0x%02X for field %d", byte(kind), fid)
		}
		d.Ops = append(d.Ops, op)
	}
	if pos != len(b) {
		return nil, &wire.TrailingDataError{Remaining: len(b) - pos}
	}
	return d, nil
}

func varCount(b []byte) (int, int, error) {
	v, n, err := wire.Varint(b)
	if err != nil {
		return 0, 0, err
	}
	if v < 0 {
		return 0, 0, &wire.VarintError{Reason: "negative length or count"}
	}
	if int64(int(v)) != v {
		return 0, 0, &wire.VarintError{Reason: "length or count overflows int"}
	}
	return int(v), n, nil
}
