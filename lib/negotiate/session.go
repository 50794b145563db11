// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package negotiate

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/recwire/recwire/lib/codec"
	"github.com/recwire/recwire/lib/value"
)

// Hello is the initiator's opening message.
type Hello struct {
	SessionID    uint64            `cbor:"session_id"`
	Capabilities Capabilities      `cbor:"capabilities"`
	Names        map[uint16]string `cbor:"names"`
}

// Ack is the responder's answer, completing the handshake.
type Ack struct {
	SessionID    uint64            `cbor:"session_id"`
	Capabilities Capabilities      `cbor:"capabilities"`
	Names        map[uint16]string `cbor:"names"`
}

// FidConflictError reports a FID bound to different names by the two
// peers. Negotiation halts: precedence rules would silently change
// the meaning of every record using the field.
type FidConflictError struct {
	FID   value.FieldID
	Name1 string
	Name2 string
}

func (e *FidConflictError) Error() string {
	return fmt.Sprintf("fid %d conflict: %q vs %q", e.FID, e.Name1, e.Name2)
}

// Session is the immutable outcome of a completed handshake. All
// feature gating for the connection's lifetime reads from here.
type Session struct {
	id        uint64
	local     Capabilities
	remote    Capabilities
	effective Capabilities
	names     map[value.FieldID]string
}

// ID returns the session identifier chosen by the initiator.
func (s *Session) ID() uint64 { return s.id }

// Local returns this side's advertised capabilities.
func (s *Session) Local() Capabilities { return s.local }

// Remote returns the peer's advertised capabilities.
func (s *Session) Remote() Capabilities { return s.remote }

// Effective returns the agreed capability set.
func (s *Session) Effective() Capabilities { return s.effective }

// NestedEnabled reports whether nested records may be sent.
func (s *Session) NestedEnabled() bool { return s.effective.Features.SupportsNested }

// StreamingEnabled reports whether the streaming layer may be used.
func (s *Session) StreamingEnabled() bool { return s.effective.Features.SupportsStreaming }

// DeltaEnabled reports whether delta packets may be sent.
func (s *Session) DeltaEnabled() bool { return s.effective.Features.SupportsDelta }

// ChecksumsRequired reports whether fields must carry SC32 checksums.
func (s *Session) ChecksumsRequired() bool { return s.effective.Features.RequiresChecksums }

// Name returns the agreed name for a FID, if either side defined one.
func (s *Session) Name(fid value.FieldID) (string, bool) {
	n, ok := s.names[fid]
	return n, ok
}

// snapshot is the serialized form of a session.
type snapshot struct {
	ID        uint64            `cbor:"id"`
	Local     Capabilities      `cbor:"local"`
	Remote    Capabilities      `cbor:"remote"`
	Effective Capabilities      `cbor:"effective"`
	Names     map[uint16]string `cbor:"names"`
}

// Snapshot serializes the session as deterministic CBOR, suitable for
// persisting or fingerprinting the agreement.
func (s *Session) Snapshot() ([]byte, error) {
	return codec.Marshal(snapshot{
		ID:        s.id,
		Local:     s.local,
		Remote:    s.remote,
		Effective: s.effective,
		Names:     namesOut(s.names),
	})
}

// RestoreSession rebuilds a session from a snapshot.
func RestoreSession(data []byte) (*Session, error) {
	var snap snapshot
	if err := codec.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("restoring session: %w", err)
	}
	return &Session{
		id:        snap.ID,
		local:     snap.Local,
		remote:    snap.Remote,
		effective: snap.Effective,
		names:     namesIn(snap.Names),
	}, nil
}

func namesOut(in map[value.FieldID]string) map[uint16]string {
	out := make(map[uint16]string, len(in))
	for fid, n := range in {
		out[uint16(fid)] = n
	}
	return out
}

func namesIn(in map[uint16]string) map[value.FieldID]string {
	out := make(map[value.FieldID]string, len(in))
	for fid, n := range in {
		out[value.FieldID(fid)] = n
	}
	return out
}

// Negotiator drives one side of the handshake. Not safe for
// concurrent use.
type Negotiator struct {
	caps  Capabilities
	names map[value.FieldID]string
	log   *slog.Logger

	sessionID uint64
	started   bool
}

// NewNegotiator returns a negotiator advertising caps and the given
// FID names (usually Dictionary.Names; nil is an empty dictionary).
// A nil logger uses slog.Default.
func NewNegotiator(caps Capabilities, names map[value.FieldID]string, log *slog.Logger) *Negotiator {
	if log == nil {
		log = slog.Default()
	}
	if names == nil {
		names = map[value.FieldID]string{}
	}
	return &Negotiator{caps: caps, names: names, log: log}
}

// Propose produces the Hello message opening a handshake.
func (n *Negotiator) Propose() ([]byte, error) {
	var raw [8]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return nil, fmt.Errorf("generating session id: %w", err)
	}
	n.sessionID = binary.BigEndian.Uint64(raw[:])
	n.started = true
	return codec.Marshal(Hello{
		SessionID:    n.sessionID,
		Capabilities: n.caps,
		Names:        namesOut(n.names),
	})
}

// HandleHello processes a peer's Hello on the responding side,
// returning the Ack to send back and the completed session.
func (n *Negotiator) HandleHello(data []byte) ([]byte, *Session, error) {
	var hello Hello
	if err := codec.Unmarshal(data, &hello); err != nil {
		return nil, nil, fmt.Errorf("parsing hello: %w", err)
	}
	session, err := n.complete(hello.SessionID, hello.Capabilities, namesIn(hello.Names))
	if err != nil {
		return nil, nil, err
	}
	ack, err := codec.Marshal(Ack{
		SessionID:    hello.SessionID,
		Capabilities: n.caps,
		Names:        namesOut(n.names),
	})
	if err != nil {
		return nil, nil, err
	}
	return ack, session, nil
}

// HandleAck processes the peer's Ack on the initiating side,
// completing the handshake begun by Propose.
func (n *Negotiator) HandleAck(data []byte) (*Session, error) {
	if !n.started {
		return nil, fmt.Errorf("ack received before propose")
	}
	var ack Ack
	if err := codec.Unmarshal(data, &ack); err != nil {
		return nil, fmt.Errorf("parsing ack: %w", err)
	}
	if ack.SessionID != n.sessionID {
		return nil, fmt.Errorf("ack session id %d does not match proposed %d", ack.SessionID, n.sessionID)
	}
	return n.complete(ack.SessionID, ack.Capabilities, namesIn(ack.Names))
}

// complete merges the two sides into an immutable session, halting on
// any FID name conflict.
func (n *Negotiator) complete(id uint64, remote Capabilities, remoteNames map[value.FieldID]string) (*Session, error) {
	merged := make(map[value.FieldID]string, len(n.names)+len(remoteNames))
	for fid, name := range n.names {
		merged[fid] = name
	}
	for fid, name := range remoteNames {
		if local, ok := merged[fid]; ok && local != name {
			return nil, &FidConflictError{FID: fid, Name1: local, Name2: name}
		}
		merged[fid] = name
	}

	effective := Capabilities{
		Version:  minVersion(n.caps.Version, remote.Version),
		Features: n.caps.Features.Intersect(remote.Features),
		Tags:     intersectTags(n.caps.Tags, remote.Tags),
	}
	n.log.Info("negotiation complete",
		"session_id", id,
		"version", effective.Version,
		"nested", effective.Features.SupportsNested,
		"streaming", effective.Features.SupportsStreaming,
		"delta", effective.Features.SupportsDelta)
	return &Session{
		id:        id,
		local:     n.caps,
		remote:    remote,
		effective: effective,
		names:     merged,
	}, nil
}

func minVersion(a, b byte) byte {
	if a < b {
		return a
	}
	return b
}
