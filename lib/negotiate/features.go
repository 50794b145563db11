// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package negotiate

import (
	"github.com/recwire/recwire/lib/wire"
)

// FeatureFlags declares what a peer can do and what it insists on.
// Supports flags are optional capabilities; requires flags are
// strictness demands.
type FeatureFlags struct {
	// SupportsNested enables nested records and nested arrays.
	SupportsNested bool `cbor:"supports_nested"`
	// SupportsStreaming enables the streaming frame layer.
	SupportsStreaming bool `cbor:"supports_streaming"`
	// SupportsDelta enables delta packets.
	SupportsDelta bool `cbor:"supports_delta"`
	// SupportsLLB enables the low-level binary fast path.
	SupportsLLB bool `cbor:"supports_llb"`
	// RequiresChecksums demands SC32 checksums on fields.
	RequiresChecksums bool `cbor:"requires_checksums"`
	// RequiresCanonical demands canonical field order on the wire.
	RequiresCanonical bool `cbor:"requires_canonical"`
}

// FullFeatures returns every capability enabled and every strictness
// demand on.
func FullFeatures() FeatureFlags {
	return FeatureFlags{
		SupportsNested:    true,
		SupportsStreaming: true,
		SupportsDelta:     true,
		SupportsLLB:       true,
		RequiresChecksums: true,
		RequiresCanonical: true,
	}
}

// Intersect derives the effective feature set of a session: a
// capability survives only when both sides support it, a strictness
// demand survives when either side makes it.
func (f FeatureFlags) Intersect(other FeatureFlags) FeatureFlags {
	return FeatureFlags{
		SupportsNested:    f.SupportsNested && other.SupportsNested,
		SupportsStreaming: f.SupportsStreaming && other.SupportsStreaming,
		SupportsDelta:     f.SupportsDelta && other.SupportsDelta,
		SupportsLLB:       f.SupportsLLB && other.SupportsLLB,
		RequiresChecksums: f.RequiresChecksums || other.RequiresChecksums,
		RequiresCanonical: f.RequiresCanonical || other.RequiresCanonical,
	}
}

// Capabilities is one peer's advertised protocol surface.
type Capabilities struct {
	// Version is the binary payload version the peer speaks.
	Version byte `cbor:"version"`
	// Features are the peer's feature flags.
	Features FeatureFlags `cbor:"features"`
	// Tags lists the wire type tags the peer can decode.
	Tags []byte `cbor:"tags"`
}

// FullCapabilities returns the complete current protocol surface.
func FullCapabilities() Capabilities {
	return Capabilities{
		Version:  wire.Version,
		Features: FullFeatures(),
		Tags: []byte{
			wire.TagInt, wire.TagFloat, wire.TagBool, wire.TagString,
			wire.TagStringArray, wire.TagRecord, wire.TagRecordArray,
			wire.TagIntArray, wire.TagFloatArray, wire.TagBoolArray,
		},
	}
}

// SupportsTag reports whether the peer can decode the given type tag.
func (c Capabilities) SupportsTag(tag byte) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// intersectTags returns the tags both sides can decode, in the order
// a lists them.
func intersectTags(a, b []byte) []byte {
	out := make([]byte, 0, len(a))
	for _, t := range a {
		for _, u := range b {
			if t == u {
				out = append(out, t)
				break
			}
		}
	}
	return out
}
