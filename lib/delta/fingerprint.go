// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package delta

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"

	"github.com/recwire/recwire/lib/value"
	"github.com/recwire/recwire/lib/wire"
)

// Fingerprint identifies a base record version: a keyed BLAKE3
// digest over the record's canonical wire encoding.
type Fingerprint [32]byte

// String returns the lowercase hex encoding.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// SnapshotID folds a fingerprint into the 64-bit base snapshot field
// carried in container delta metadata.
func (f Fingerprint) SnapshotID() uint64 {
	return binary.BigEndian.Uint64(f[:8])
}

// baseDomainKey is the BLAKE3 key for delta base fingerprints. ASCII
// domain name zero-padded to 32 bytes; changing it orphans every
// outstanding delta.
var baseDomainKey = [32]byte{
	'r', 'e', 'c', 'w', 'i', 'r', 'e', '.', 'd', 'e', 'l', 't', 'a', '.',
	'b', 'a', 's', 'e', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// RecordFingerprint computes the fingerprint of a record. Insertion
// order does not matter: the digest covers the canonical wire
// encoding. The record is not modified.
func RecordFingerprint(r *value.Record) Fingerprint {
	// The canonical encoding of a well-formed record cannot fail;
	// an invalid value inside it is a programming error.
	payload, err := wire.Encode(r)
	if err != nil {
		panic("delta: fingerprint encoding failed: " + err.Error())
	}
	hasher, err := blake3.NewKeyed(baseDomainKey[:])
	if err != nil {
		panic("delta: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(payload)
	var out Fingerprint
	copy(out[:], hasher.Sum(nil))
	return out
}
