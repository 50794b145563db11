// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package delta

import (
	"fmt"

	"github.com/recwire/recwire/lib/value"
)

// OpKind identifies a delta operation. The byte values are wire
// constants.
type OpKind byte

const (
	// OpSet writes a field value, creating or replacing it.
	OpSet OpKind = 0x01
	// OpRemove deletes a field.
	OpRemove OpKind = 0x02
)

// String returns the op kind name.
func (k OpKind) String() string {
	switch k {
	case OpSet:
		return "set"
	case OpRemove:
		return "remove"
	default:
		return fmt.Sprintf("unknown(0x%02X)", byte(k))
	}
}

// Op is one field-level operation. Value is meaningful only for
// OpSet.
type Op struct {
	FID   value.FieldID
	Kind  OpKind
	Value value.Value
}

// Algorithm identifies how a delta was computed. The only algorithm
// currently defined is the final-state diff.
const (
	// AlgorithmFinalState is a field-by-field final-state diff.
	AlgorithmFinalState = 0x01
)

// Delta is a computed difference: the algorithm, the fingerprint of
// the base it was computed against, and the operation list sorted
// ascending by FID.
type Delta struct {
	Algorithm byte
	Base      Fingerprint
	Ops       []Op
}

// Empty reports whether the delta carries no operations.
func (d *Delta) Empty() bool { return len(d.Ops) == 0 }

// Diff computes the final-state delta turning base into target.
// Neither record is modified. Fields present in both records but not
// canonically equal are re-sent whole with a Set; fields only in
// target are Set; fields only in base are Removed. The resulting op
// list is sorted ascending by FID.
func Diff(base, target *value.Record) *Delta {
	d := &Delta{Algorithm: AlgorithmFinalState, Base: RecordFingerprint(base)}

	// Walk both canonical field lists in lockstep.
	bf := base.CanonicalFields()
	tf := target.CanonicalFields()
	i, j := 0, 0
	for i < len(bf) && j < len(tf) {
		switch {
		case bf[i].ID < tf[j].ID:
			d.Ops = append(d.Ops, Op{FID: bf[i].ID, Kind: OpRemove})
			i++
		case bf[i].ID > tf[j].ID:
			d.Ops = append(d.Ops, Op{FID: tf[j].ID, Kind: OpSet, Value: tf[j].Value})
			j++
		default:
			if !canonicalEqual(bf[i].Value, tf[j].Value) {
				d.Ops = append(d.Ops, Op{FID: tf[j].ID, Kind: OpSet, Value: tf[j].Value})
			}
			i++
			j++
		}
	}
	for ; i < len(bf); i++ {
		d.Ops = append(d.Ops, Op{FID: bf[i].ID, Kind: OpRemove})
	}
	for ; j < len(tf); j++ {
		d.Ops = append(d.Ops, Op{FID: tf[j].ID, Kind: OpSet, Value: tf[j].Value})
	}
	return d
}

func canonicalEqual(a, b value.Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case value.KindRecord:
		return a.RecordValue().CanonicalEqual(b.RecordValue())
	case value.KindRecordArray:
		ar, br := a.RecordArrayValue(), b.RecordArrayValue()
		if len(ar) != len(br) {
			return false
		}
		for i := range ar {
			if !ar[i].CanonicalEqual(br[i]) {
				return false
			}
		}
		return true
	default:
		return a.Equal(b)
	}
}

// BaseMismatchError reports a delta applied to a record other than
// its base.
type BaseMismatchError struct {
	Expected Fingerprint
	Found    Fingerprint
}

func (e *BaseMismatchError) Error() string {
	return fmt.Sprintf("delta base mismatch: delta was computed against %s, record is %s",
		e.Expected, e.Found)
}

// AlgorithmError reports a delta using an algorithm this
// implementation does not know.
type AlgorithmError struct {
	Algorithm byte
}

func (e *AlgorithmError) Error() string {
	return fmt.Sprintf("unknown delta algorithm 0x%02X", e.Algorithm)
}

// Apply produces the record that results from applying the delta to
// base. The base record is not modified. It fails with a
// BaseMismatchError when base does not fingerprint to the delta's
// recorded base, and with an AlgorithmError for an algorithm other
// than the final-state diff.
func Apply(base *value.Record, d *Delta) (*value.Record, error) {
	if d.Algorithm != AlgorithmFinalState {
		return nil, &AlgorithmError{Algorithm: d.Algorithm}
	}
	if fp := RecordFingerprint(base); fp != d.Base {
		return nil, &BaseMismatchError{Expected: d.Base, Found: fp}
	}

	removed := make(map[value.FieldID]bool)
	set := make(map[value.FieldID]value.Value)
	for _, op := range d.Ops {
		switch op.Kind {
		case OpSet:
			set[op.FID] = op.Value
			delete(removed, op.FID)
		case OpRemove:
			removed[op.FID] = true
			delete(set, op.FID)
		default:
			return nil, fmt.Errorf("delta: unknown op kind 0x%02X for field %d", byte(op.Kind), op.FID)
		}
	}

	b := value.NewRecordBuilder()
	for _, f := range base.CanonicalFields() {
		if removed[f.ID] {
			continue
		}
		if v, ok := set[f.ID]; ok {
			b.Add(f.ID, v)
			delete(set, f.ID)
			continue
		}
		b.Add(f.ID, f.Value)
	}
	for id, v := range set {
		b.Add(id, v)
	}
	out, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("delta apply: %w", err)
	}
	return out, nil
}
