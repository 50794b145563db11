// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"bytes"
	"errors"
	"testing"

	"github.com/recwire/recwire/lib/value"
)

func TestEncodeCanonicalAndDeterministic(t *testing.T) {
	a := value.NewRecord()
	a.MustAddField(20, value.String("x"))
	a.MustAddField(10, value.Int(7))

	b := value.NewRecord()
	b.MustAddField(10, value.Int(7))
	b.MustAddField(20, value.String("x"))

	ea, err := Encode(a)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	eb, err := Encode(b)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(ea, eb) {
		t.Error("insertion order must not affect encoded bytes")
	}
	// Encoding is a projection: insertion order survives.
	if a.Fields()[0].ID != 20 {
		t.Error("Encode mutated its input")
	}
}

func TestKnownEncoding(t *testing.T) {
	r := value.NewRecord()
	r.MustAddField(12, value.Int(42))
	got, err := Encode(r)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []byte{
		Version, 0x00, // header
		0x01,       // entry count
		0x0C, 0x00, // FID 12 little-endian
		TagInt,
		0x2A, // varint 42
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Encode = %x, want %x", got, want)
	}
}

func TestRoundTripAllKinds(t *testing.T) {
	inner := value.NewRecord()
	inner.MustAddField(1, value.Bool(true))
	inner.MustAddField(2, value.Float(2.5))

	elem1 := value.NewRecord()
	elem1.MustAddField(4, value.String("a"))
	elem2 := value.NewRecord()
	elem2.MustAddField(4, value.String("b"))

	r := value.NewRecord()
	r.MustAddField(1, value.Int(-14532))
	r.MustAddField(2, value.Float(3.75))
	r.MustAddField(3, value.Bool(false))
	r.MustAddField(4, value.String("héllo"))
	r.MustAddField(5, value.StringArray([]string{"x", "", "z"}))
	r.MustAddField(6, value.Nested(inner))
	r.MustAddField(7, value.NestedArray([]*value.Record{elem1, elem2}))
	r.MustAddField(8, value.IntArray([]int64{-1, 0, 1 << 30}))
	r.MustAddField(9, value.FloatArray([]float64{0.5, -0.5}))
	r.MustAddField(10, value.BoolArray([]bool{true, false, true}))

	enc, err := Encode(r)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	dec, err := Decode(enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !r.CanonicalEqual(dec) {
		t.Error("decoded record differs from input")
	}
}

func TestDecodeRejectsUnsupportedVersion(t *testing.T) {
	var ve *VersionError
	_, err := Decode([]byte{0x99, 0x00, 0x00})
	if !errors.As(err, &ve) || ve.Found != 0x99 {
		t.Fatalf("expected VersionError{0x99}, got %v", err)
	}
}

func TestDecodeIgnoresUnknownFlags(t *testing.T) {
	r := value.NewRecord()
	r.MustAddField(1, value.Int(1))
	enc, err := Encode(r)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	enc[1] = 0xFF // every flag bit set
	if _, err := Decode(enc); err != nil {
		t.Errorf("unknown flags must be ignored, got %v", err)
	}
}

func TestDecodeRejectsOutOfOrderFields(t *testing.T) {
	payload := []byte{
		Version, 0x00,
		0x02,
		0x02, 0x00, TagInt, 0x01, // FID 2
		0x01, 0x00, TagInt, 0x01, // FID 1: out of order
	}
	var ce *CanonicalOrderError
	if _, err := Decode(payload); !errors.As(err, &ce) {
		t.Fatalf("expected CanonicalOrderError, got %v", err)
	}
}

func TestDecodeRejectsDuplicateFields(t *testing.T) {
	payload := []byte{
		Version, 0x00,
		0x02,
		0x05, 0x00, TagInt, 0x01,
		0x05, 0x00, TagInt, 0x02,
	}
	var ce *CanonicalOrderError
	if _, err := Decode(payload); !errors.As(err, &ce) {
		t.Fatalf("expected CanonicalOrderError, got %v", err)
	}
}

func TestDecodeRejectsReservedTags(t *testing.T) {
	for tag := byte(0x0B); tag <= 0x0F; tag++ {
		payload := []byte{Version, 0x00, 0x01, 0x01, 0x00, tag}
		var te *TagError
		if _, err := Decode(payload); !errors.As(err, &te) || te.Tag != tag {
			t.Errorf("tag 0x%02X: expected TagError, got %v", tag, err)
		}
	}
}

func TestDecodeRejectsBadBoolByte(t *testing.T) {
	payload := []byte{Version, 0x00, 0x01, 0x01, 0x00, TagBool, 0x02}
	var ve *ValueError
	if _, err := Decode(payload); !errors.As(err, &ve) {
		t.Fatalf("expected ValueError, got %v", err)
	}
}

func TestDecodeRejectsInvalidUTF8(t *testing.T) {
	payload := []byte{Version, 0x00, 0x01, 0x07, 0x00, TagString, 0x02, 0xFF, 0xFE}
	var ue *UTF8Error
	if _, err := Decode(payload); !errors.As(err, &ue) || ue.ID != 7 {
		t.Fatalf("expected UTF8Error{7}, got %v", err)
	}
}

func TestDecodeRejectsTruncatedInput(t *testing.T) {
	r := value.NewRecord()
	r.MustAddField(1, value.String("hello world"))
	enc, err := Encode(r)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	for i := 1; i < len(enc); i++ {
		if _, err := Decode(enc[:i]); err == nil {
			t.Errorf("truncation at %d bytes decoded successfully", i)
		}
	}
}

func TestDecodeRejectsTrailingData(t *testing.T) {
	r := value.NewRecord()
	r.MustAddField(1, value.Int(1))
	enc, err := Encode(r)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var te *TrailingDataError
	if _, err := Decode(append(enc, 0x00)); !errors.As(err, &te) || te.Remaining != 1 {
		t.Fatalf("expected TrailingDataError{1}, got %v", err)
	}
}

func TestDepthLimit(t *testing.T) {
	// Build a record nested 5 levels deep.
	leaf := value.NewRecord()
	leaf.MustAddField(1, value.Int(1))
	cur := leaf
	for i := 0; i < 4; i++ {
		parent := value.NewRecord()
		parent.MustAddField(1, value.Nested(cur))
		cur = parent
	}

	cfg := Config{MaxDepth: 3}
	var de *NestingDepthError
	if _, err := cfg.Encode(cur); !errors.As(err, &de) {
		t.Fatalf("encode: expected NestingDepthError, got %v", err)
	}

	// A permissive encoder's output still fails a strict decoder.
	enc, err := Encode(cur)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := cfg.Decode(enc); !errors.As(err, &de) {
		t.Fatalf("decode: expected NestingDepthError, got %v", err)
	}
	if _, err := Decode(enc); err != nil {
		t.Errorf("default depth limit should accept depth 4: %v", err)
	}
}

func TestRecordSizeLimit(t *testing.T) {
	r := value.NewRecord()
	r.MustAddField(1, value.String(string(make([]byte, 256))))
	cfg := Config{MaxRecordSize: 64}
	var se *RecordSizeError
	if _, err := cfg.Encode(r); !errors.As(err, &se) {
		t.Fatalf("encode: expected RecordSizeError, got %v", err)
	}
	enc, err := Encode(r)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := cfg.Decode(enc); !errors.As(err, &se) {
		t.Fatalf("decode: expected RecordSizeError, got %v", err)
	}
}

func TestDecodeHostileCountPrefix(t *testing.T) {
	// A huge element count with no payload must fail cleanly, not
	// allocate gigabytes.
	payload := []byte{Version, 0x00, 0x01, 0x01, 0x00, TagIntArray,
		0xFF, 0xFF, 0xFF, 0xFF, 0x07} // count ~ 2^34
	if _, err := Decode(payload); err == nil {
		t.Fatal("hostile count prefix decoded successfully")
	}
}

func TestEncodedValueRoundTrip(t *testing.T) {
	cfg := Config{}
	inner := value.NewRecord()
	inner.MustAddField(3, value.IntArray([]int64{1, 2}))

	for _, v := range []value.Value{
		value.Int(-5),
		value.String("delta"),
		value.Nested(inner),
	} {
		enc, err := cfg.EncodedValue(9, v)
		if err != nil {
			t.Fatalf("EncodedValue: %v", err)
		}
		dec, err := cfg.DecodeValue(9, enc)
		if err != nil {
			t.Fatalf("DecodeValue: %v", err)
		}
		if v.Kind() != dec.Kind() {
			t.Errorf("kind mismatch: %v != %v", v.Kind(), dec.Kind())
		}
	}
}
