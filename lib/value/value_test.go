// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"errors"
	"testing"
)

func TestAddFieldDuplicate(t *testing.T) {
	r := NewRecord()
	if err := r.AddField(5, Int(1)); err != nil {
		t.Fatalf("AddField: %v", err)
	}
	err := r.AddField(5, Int(2))
	var dup *DuplicateFieldError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateFieldError, got %v", err)
	}
	if dup.ID != 5 {
		t.Errorf("duplicate ID = %d, want 5", dup.ID)
	}
	// The original field survives unchanged.
	v, ok := r.Get(5)
	if !ok || v.IntValue() != 1 {
		t.Errorf("field 5 = %v (present=%v), want Int(1)", v, ok)
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	r := NewRecord()
	r.MustAddField(30, String("c"))
	r.MustAddField(10, String("a"))
	r.MustAddField(20, String("b"))

	got := r.Fields()
	wantIDs := []FieldID{30, 10, 20}
	for i, f := range got {
		if f.ID != wantIDs[i] {
			t.Errorf("field[%d].ID = %d, want %d", i, f.ID, wantIDs[i])
		}
	}
}

func TestCanonicalFieldsSortedWithoutMutation(t *testing.T) {
	r := NewRecord()
	r.MustAddField(30, Int(3))
	r.MustAddField(10, Int(1))
	r.MustAddField(20, Int(2))

	canon := r.CanonicalFields()
	wantIDs := []FieldID{10, 20, 30}
	for i, f := range canon {
		if f.ID != wantIDs[i] {
			t.Errorf("canonical[%d].ID = %d, want %d", i, f.ID, wantIDs[i])
		}
	}
	// Insertion order is untouched.
	if r.Fields()[0].ID != 30 {
		t.Errorf("insertion order mutated: first field is %d", r.Fields()[0].ID)
	}
}

func TestCanonicalIsRecursiveAndIdempotent(t *testing.T) {
	inner := NewRecord()
	inner.MustAddField(9, Bool(true))
	inner.MustAddField(2, Bool(false))

	r := NewRecord()
	r.MustAddField(7, Nested(inner))
	r.MustAddField(3, Int(1))

	c1 := r.Canonical()
	c2 := c1.Canonical()
	if !c1.Equal(c2) {
		t.Fatal("Canonical is not idempotent")
	}
	if c1.Fields()[0].ID != 3 || c1.Fields()[1].ID != 7 {
		t.Errorf("top-level canonical order wrong: %d, %d", c1.Fields()[0].ID, c1.Fields()[1].ID)
	}
	nested := c1.Fields()[1].Value.RecordValue()
	if nested.Fields()[0].ID != 2 || nested.Fields()[1].ID != 9 {
		t.Errorf("nested canonical order wrong: %d, %d", nested.Fields()[0].ID, nested.Fields()[1].ID)
	}
	// The source record's nested order is untouched.
	if inner.Fields()[0].ID != 9 {
		t.Errorf("Canonical mutated nested source record")
	}
}

func TestSortInPlace(t *testing.T) {
	inner := NewRecord()
	inner.MustAddField(5, Int(5))
	inner.MustAddField(1, Int(1))

	r := NewRecord()
	r.MustAddField(8, Nested(inner))
	r.MustAddField(4, Int(4))
	r.SortInPlace()

	if r.Fields()[0].ID != 4 || r.Fields()[1].ID != 8 {
		t.Errorf("top-level not sorted: %d, %d", r.Fields()[0].ID, r.Fields()[1].ID)
	}
	if inner.Fields()[0].ID != 1 {
		t.Errorf("nested record not sorted in place")
	}
	// Lookups still work after reindexing.
	if v, ok := r.Get(4); !ok || v.IntValue() != 4 {
		t.Errorf("Get(4) after SortInPlace = %v, %v", v, ok)
	}
}

func TestCanonicalEqualIgnoresInsertionOrder(t *testing.T) {
	a := NewRecord()
	a.MustAddField(1, Int(1))
	a.MustAddField(2, String("x"))

	b := NewRecord()
	b.MustAddField(2, String("x"))
	b.MustAddField(1, Int(1))

	if a.Equal(b) {
		t.Error("Equal should be order-sensitive")
	}
	if !a.CanonicalEqual(b) {
		t.Error("CanonicalEqual should ignore insertion order")
	}
}

func TestCanonicalEqualArrayOrderSignificant(t *testing.T) {
	a := NewRecord()
	a.MustAddField(1, StringArray([]string{"x", "y"}))
	b := NewRecord()
	b.MustAddField(1, StringArray([]string{"y", "x"}))
	if a.CanonicalEqual(b) {
		t.Error("array element order must stay significant")
	}
}

func TestDepth(t *testing.T) {
	flat := NewRecord()
	flat.MustAddField(1, Int(1))
	if d := Nested(flat).Depth(); d != 1 {
		t.Errorf("flat nested depth = %d, want 1", d)
	}

	inner := NewRecord()
	inner.MustAddField(1, Nested(NewRecord()))
	outer := NewRecord()
	outer.MustAddField(1, Nested(inner))
	if d := Nested(outer).Depth(); d != 3 {
		t.Errorf("depth = %d, want 3", d)
	}
	if d := Int(1).Depth(); d != 0 {
		t.Errorf("scalar depth = %d, want 0", d)
	}
}

func TestBuilderDetectsDuplicates(t *testing.T) {
	b := NewRecordBuilder().Add(3, Int(1)).Add(1, Int(2)).Add(3, Int(3))
	_, err := b.Build()
	var dup *DuplicateFieldError
	if !errors.As(err, &dup) || dup.ID != 3 {
		t.Fatalf("expected DuplicateFieldError{3}, got %v", err)
	}
}

func TestBuilderProducesCanonicalOrder(t *testing.T) {
	r, err := NewRecordBuilder().Add(30, Int(3)).Add(10, Int(1)).Add(20, Int(2)).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	wantIDs := []FieldID{10, 20, 30}
	for i, f := range r.Fields() {
		if f.ID != wantIDs[i] {
			t.Errorf("field[%d].ID = %d, want %d", i, f.ID, wantIDs[i])
		}
	}
	if v, ok := r.Get(20); !ok || v.IntValue() != 2 {
		t.Errorf("Get(20) = %v, %v", v, ok)
	}
}

func TestLimitsValidate(t *testing.T) {
	t.Run("depth", func(t *testing.T) {
		r := NewRecord()
		cur := r
		for i := 0; i < 4; i++ {
			next := NewRecord()
			cur.MustAddField(1, Nested(next))
			cur = next
		}
		cur.MustAddField(1, Int(1))
		err := Limits{MaxDepth: 3}.Validate(r)
		var de *DepthLimitError
		if !errors.As(err, &de) {
			t.Fatalf("expected DepthLimitError, got %v", err)
		}
		if de.Max != 3 {
			t.Errorf("Max = %d, want 3", de.Max)
		}
	})

	t.Run("fields counted across nesting", func(t *testing.T) {
		inner := NewRecord()
		inner.MustAddField(1, Int(1))
		inner.MustAddField(2, Int(2))
		r := NewRecord()
		r.MustAddField(1, Int(1))
		r.MustAddField(2, Nested(inner))
		err := Limits{MaxFields: 3}.Validate(r)
		var fe *FieldCountLimitError
		if !errors.As(err, &fe) {
			t.Fatalf("expected FieldCountLimitError, got %v", err)
		}
	})

	t.Run("string length", func(t *testing.T) {
		r := NewRecord()
		r.MustAddField(7, String("abcdef"))
		err := Limits{MaxStringLen: 4}.Validate(r)
		var se *StringLimitError
		if !errors.As(err, &se) {
			t.Fatalf("expected StringLimitError, got %v", err)
		}
		if se.ID != 7 || se.Length != 6 {
			t.Errorf("got %+v", se)
		}
	})

	t.Run("array items", func(t *testing.T) {
		r := NewRecord()
		r.MustAddField(9, IntArray([]int64{1, 2, 3}))
		err := Limits{MaxArrayItems: 2}.Validate(r)
		var ae *ArrayLimitError
		if !errors.As(err, &ae) {
			t.Fatalf("expected ArrayLimitError, got %v", err)
		}
	})

	t.Run("defaults accept a reasonable record", func(t *testing.T) {
		r := NewRecord()
		r.MustAddField(1, String("hello"))
		r.MustAddField(2, FloatArray([]float64{1.5, 2.5}))
		if err := DefaultLimits().Validate(r); err != nil {
			t.Errorf("Validate: %v", err)
		}
	})
}

func TestCanonicalHash(t *testing.T) {
	a := NewRecord()
	a.MustAddField(2, String("x"))
	a.MustAddField(1, Int(42))

	b := NewRecord()
	b.MustAddField(1, Int(42))
	b.MustAddField(2, String("x"))

	if CanonicalHash(a) != CanonicalHash(b) {
		t.Error("insertion order must not affect the canonical hash")
	}

	c := NewRecord()
	c.MustAddField(1, Int(42))
	c.MustAddField(2, String("y"))
	if CanonicalHash(a) == CanonicalHash(c) {
		t.Error("different values must hash differently")
	}

	negZero := NewRecord()
	negZero.MustAddField(1, Float(negZeroFloat()))
	posZero := NewRecord()
	posZero.MustAddField(1, Float(0))
	if CanonicalHash(negZero) != CanonicalHash(posZero) {
		t.Error("-0 must hash like 0")
	}
}

func negZeroFloat() float64 {
	z := 0.0
	return -z
}
