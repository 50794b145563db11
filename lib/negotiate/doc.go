// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

// Package negotiate implements the Recwire schema and capability
// handshake that precedes data exchange.
//
// The handshake is two messages. The initiator sends a Hello carrying
// its capabilities (protocol version, feature flags, supported type
// tags) and its FID dictionary names; the responder answers with an
// Ack carrying its own. Both sides then derive the same effective
// feature set: optional features (supports_*) are enabled only when
// both sides support them, while strictness flags (requires_*) are
// enforced when either side demands them.
//
// Before agreeing, both sides compare dictionary names. The same FID
// bound to two different names is a schema conflict that would
// corrupt meaning silently, so it halts negotiation with a
// FidConflictError instead of being resolved by precedence.
//
// The outcome is an immutable Session. Whether nested records,
// streaming, or deltas may be used on a connection is read from the
// session for its entire life; capabilities never change mid-session.
// Messages and session snapshots travel as deterministic CBOR
// (lib/codec), so identical capability sets always encode to
// identical bytes.
package negotiate
