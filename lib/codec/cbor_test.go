// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"testing"
)

func TestMarshalDeterministic(t *testing.T) {
	// Map iteration order must not leak into the encoding.
	first, err := Marshal(map[string]int{"b": 2, "a": 1, "c": 3})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for i := 0; i < 16; i++ {
		again, err := Marshal(map[string]int{"c": 3, "a": 1, "b": 2})
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatal("encoding is not deterministic")
		}
	}
}

func TestRoundTripStruct(t *testing.T) {
	type session struct {
		ID       uint64 `cbor:"id"`
		Features uint8  `cbor:"features"`
		Names    map[string]uint16
	}
	in := session{ID: 42, Features: 7, Names: map[string]uint16{"device": 12}}
	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out session
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.ID != in.ID || out.Features != in.Features || out.Names["device"] != 12 {
		t.Errorf("round trip mismatch: %+v", out)
	}
}

func TestUnmarshalAnyUsesStringKeys(t *testing.T) {
	data, err := Marshal(map[string]any{"k": "v"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out any
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := out.(map[string]any); !ok {
		t.Errorf("decoded type = %T, want map[string]any", out)
	}
}

func TestUnmarshalIgnoresUnknownFields(t *testing.T) {
	data, err := Marshal(map[string]any{"id": 1, "later_addition": true})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out struct {
		ID int `cbor:"id"`
	}
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.ID != 1 {
		t.Errorf("ID = %d", out.ID)
	}
}
