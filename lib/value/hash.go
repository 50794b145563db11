// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/zeebo/blake3"
)

// Hash is a 32-byte BLAKE3 digest over a record's canonical form.
type Hash [32]byte

// String returns the lowercase hex encoding of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// canonicalDomainKey is the BLAKE3 key for canonical record hashes.
// The byte values are the ASCII encoding of the domain name,
// zero-padded to 32 bytes; changing the key invalidates every stored
// canonical hash.
var canonicalDomainKey = [32]byte{
	'r', 'e', 'c', 'w', 'i', 'r', 'e', '.', 'v', 'a', 'l', 'u', 'e', '.',
	'c', 'a', 'n', 'o', 'n', 'i', 'c', 'a', 'l', 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// CanonicalHash computes a keyed BLAKE3 digest over the record's
// canonical form. Two records with the same fields hash identically
// regardless of insertion order; array element order remains
// significant. The receiver is not modified.
func CanonicalHash(r *Record) Hash {
	hasher, err := blake3.NewKeyed(canonicalDomainKey[:])
	if err != nil {
		panic("value: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hashRecord(hasher, r)
	var out Hash
	copy(out[:], hasher.Sum(nil))
	return out
}

// hashRecord feeds the record to the hasher in canonical order using
// an unambiguous length-prefixed byte layout. The layout is internal
// to this package and independent of the wire codec, so hashes stay
// stable across wire format revisions.
func hashRecord(hasher *blake3.Hasher, r *Record) {
	var scratch [8]byte
	fields := r.CanonicalFields()
	binary.LittleEndian.PutUint32(scratch[:4], uint32(len(fields)))
	hasher.Write(scratch[:4])
	for _, f := range fields {
		binary.LittleEndian.PutUint16(scratch[:2], uint16(f.ID))
		scratch[2] = byte(f.Value.kind)
		hasher.Write(scratch[:3])
		hashValue(hasher, f.Value)
	}
}

func hashValue(hasher *blake3.Hasher, v Value) {
	var scratch [8]byte
	writeLen := func(n int) {
		binary.LittleEndian.PutUint32(scratch[:4], uint32(n))
		hasher.Write(scratch[:4])
	}
	switch v.kind {
	case KindInt:
		binary.LittleEndian.PutUint64(scratch[:], uint64(v.intVal))
		hasher.Write(scratch[:])
	case KindFloat:
		f := v.floatVal
		if f == 0 {
			f = 0 // collapse -0 so it hashes like 0
		}
		binary.LittleEndian.PutUint64(scratch[:], math.Float64bits(f))
		hasher.Write(scratch[:])
	case KindBool:
		if v.boolVal {
			hasher.Write([]byte{1})
		} else {
			hasher.Write([]byte{0})
		}
	case KindString:
		writeLen(len(v.strVal))
		hasher.Write([]byte(v.strVal))
	case KindStringArray:
		writeLen(len(v.strArr))
		for _, s := range v.strArr {
			writeLen(len(s))
			hasher.Write([]byte(s))
		}
	case KindIntArray:
		writeLen(len(v.intArr))
		for _, n := range v.intArr {
			binary.LittleEndian.PutUint64(scratch[:], uint64(n))
			hasher.Write(scratch[:])
		}
	case KindFloatArray:
		writeLen(len(v.floatArr))
		for _, f := range v.floatArr {
			if f == 0 {
				f = 0
			}
			binary.LittleEndian.PutUint64(scratch[:], math.Float64bits(f))
			hasher.Write(scratch[:])
		}
	case KindBoolArray:
		writeLen(len(v.boolArr))
		for _, b := range v.boolArr {
			if b {
				hasher.Write([]byte{1})
			} else {
				hasher.Write([]byte{0})
			}
		}
	case KindRecord:
		hashRecord(hasher, v.record)
	case KindRecordArray:
		writeLen(len(v.records))
		for _, rec := range v.records {
			hashRecord(hasher, rec)
		}
	}
}
