// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package checksum

import (
	"hash/crc32"
	"testing"

	"github.com/recwire/recwire/lib/value"
)

func TestComputeMatchesCanonicalText(t *testing.T) {
	// The serialized form for a simple int field is fully specified,
	// so the checksum can be verified against a direct CRC32.
	want := crc32.ChecksumIEEE([]byte("12:i:14532"))
	got := Compute(12, value.Int(14532))
	if got != want {
		t.Errorf("Compute = %08X, want %08X", got, want)
	}
}

func TestComputeSensitivity(t *testing.T) {
	base := Compute(12, value.Int(14532))
	if Compute(13, value.Int(14532)) == base {
		t.Error("different FID must change the checksum")
	}
	if Compute(12, value.Int(14533)) == base {
		t.Error("different value must change the checksum")
	}
	if Compute(12, value.String("14532")) == base {
		t.Error("different type hint must change the checksum")
	}
}

func TestValidate(t *testing.T) {
	v := value.String("hello")
	sum := Compute(7, v)
	if !Validate(7, v, sum) {
		t.Error("Validate rejected the correct checksum")
	}
	if Validate(7, v, sum+1) {
		t.Error("Validate accepted a wrong checksum")
	}
}

func TestBoolNormalization(t *testing.T) {
	want := crc32.ChecksumIEEE([]byte("3:b:1"))
	if got := Compute(3, value.Bool(true)); got != want {
		t.Errorf("Bool(true) = %08X, want %08X", got, want)
	}
	want = crc32.ChecksumIEEE([]byte("3:b:0"))
	if got := Compute(3, value.Bool(false)); got != want {
		t.Errorf("Bool(false) = %08X, want %08X", got, want)
	}
}

func TestFloatNormalization(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"negative zero collapses", negZero(), "0"},
		{"integral float", 5.0, "5"},
		{"plain fraction", 2.5, "2.5"},
		{"no trailing zeros", 1.25, "1.25"},
		{"negative", -3.5, "-3.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeFloat(tt.in); got != tt.want {
				t.Errorf("normalizeFloat(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	// -0 and 0 must produce identical checksums.
	if Compute(1, value.Float(negZero())) != Compute(1, value.Float(0)) {
		t.Error("-0 and 0 must checksum identically")
	}
}

func negZero() float64 {
	z := 0.0
	return -z
}

func TestArraysPreserveElementOrder(t *testing.T) {
	a := Compute(4, value.StringArray([]string{"x", "y"}))
	b := Compute(4, value.StringArray([]string{"y", "x"}))
	if a == b {
		t.Error("array element order must be semantic")
	}

	want := crc32.ChecksumIEEE([]byte("4:ia:1,2,3"))
	if got := Compute(4, value.IntArray([]int64{1, 2, 3})); got != want {
		t.Errorf("int array = %08X, want %08X", got, want)
	}
}

func TestNestedRecordCanonicalOrder(t *testing.T) {
	// Nested fields serialize in canonical (sorted) order, so two
	// records with different insertion orders checksum identically.
	a := value.NewRecord()
	a.MustAddField(9, value.Int(2))
	a.MustAddField(1, value.Int(1))

	b := value.NewRecord()
	b.MustAddField(1, value.Int(1))
	b.MustAddField(9, value.Int(2))

	if Compute(5, value.Nested(a)) != Compute(5, value.Nested(b)) {
		t.Error("nested insertion order must not affect the checksum")
	}

	want := crc32.ChecksumIEEE([]byte("5:r:{1:i:1;9:i:2}"))
	if got := Compute(5, value.Nested(a)); got != want {
		t.Errorf("nested record = %08X, want %08X", got, want)
	}
	// Serialization is a projection: insertion order survives.
	if a.Fields()[0].ID != 9 {
		t.Error("Compute mutated the nested record")
	}
}

func TestNestedArraySerialization(t *testing.T) {
	r1 := value.NewRecord()
	r1.MustAddField(1, value.Int(1))
	r2 := value.NewRecord()
	r2.MustAddField(2, value.Bool(true))

	want := crc32.ChecksumIEEE([]byte("6:ra:[{1:i:1},{2:b:1}]"))
	if got := Compute(6, value.NestedArray([]*value.Record{r1, r2})); got != want {
		t.Errorf("nested array = %08X, want %08X", got, want)
	}
}

func TestFormatParse(t *testing.T) {
	if got := Format(0x36AAE667); got != "36AAE667" {
		t.Errorf("Format = %q", got)
	}
	if got := Format(0x0000001A); got != "0000001A" {
		t.Errorf("Format should zero-pad, got %q", got)
	}

	tests := []struct {
		in   string
		want uint32
		ok   bool
	}{
		{"36AAE667", 0x36AAE667, true},
		{"0x36AAE667", 0x36AAE667, true},
		{"0000001a", 0x1A, true},
		{"invalid", 0, false},
		{"36AAE6", 0, false},
		{"36AAE66712", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Parse(%q) = %08X, %v; want %08X, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
