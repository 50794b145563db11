// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	"github.com/recwire/recwire/lib/value"
)

// decoder threads position, depth, and cumulative size through a
// single payload decode.
type decoder struct {
	cfg  Config
	buf  []byte
	pos  int
	size int
}

// Decode decodes a canonical binary payload using the default
// configuration.
func Decode(b []byte) (*value.Record, error) {
	return Config{}.Decode(b)
}

// Decode decodes a canonical binary payload into a record. Trailing
// bytes after the final entry are an error. Fields must appear sorted
// strictly ascending by FID at every level; a duplicate or
// out-of-order FID fails with a CanonicalOrderError.
func (c Config) Decode(b []byte) (*value.Record, error) {
	d := &decoder{cfg: c, buf: b}
	if err := d.need(2); err != nil {
		return nil, err
	}
	version := d.buf[d.pos]
	if version != Version {
		return nil, &VersionError{Found: version, Supported: []byte{Version}}
	}
	// The flags byte is read and ignored: unknown bits belong to
	// optional features this decoder can safely skip.
	d.pos += 2

	count, err := d.count()
	if err != nil {
		return nil, err
	}
	r := value.NewRecord()
	prev := -1
	for i := 0; i < count; i++ {
		if err := d.need(3); err != nil {
			return nil, err
		}
		fid := binary.LittleEndian.Uint16(d.buf[d.pos:])
		d.pos += 2
		if int(fid) <= prev {
			return nil, &CanonicalOrderError{Previous: uint16(prev), Current: fid}
		}
		prev = int(fid)
		v, err := d.value(fid, 0)
		if err != nil {
			return nil, err
		}
		if err := r.AddField(value.FieldID(fid), v); err != nil {
			return nil, err
		}
	}
	if d.pos != len(d.buf) {
		return nil, &TrailingDataError{Remaining: len(d.buf) - d.pos}
	}
	return r, nil
}

// DecodeValue decodes a single tagged value produced by
// Config.EncodedValue, returning an error on trailing bytes.
func (c Config) DecodeValue(id value.FieldID, b []byte) (value.Value, error) {
	d := &decoder{cfg: c, buf: b}
	v, err := d.value(uint16(id), 0)
	if err != nil {
		return value.Value{}, err
	}
	if d.pos != len(d.buf) {
		return value.Value{}, &TrailingDataError{Remaining: len(d.buf) - d.pos}
	}
	return v, nil
}

func (d *decoder) need(n int) error {
	if len(d.buf)-d.pos < n {
		return &TruncatedError{Expected: d.pos + n, Found: len(d.buf)}
	}
	return nil
}

func (d *decoder) varint() (int64, error) {
	v, n, err := Varint(d.buf[d.pos:])
	if err != nil {
		return 0, err
	}
	d.pos += n
	return v, nil
}

func (d *decoder) count() (int, error) {
	v, n, err := nonNegVarint(d.buf[d.pos:])
	if err != nil {
		return 0, err
	}
	d.pos += n
	return v, nil
}

// grow charges n bytes against the cumulative size budget.
func (d *decoder) grow(n int) error {
	d.size += n
	if d.cfg.MaxRecordSize > 0 && d.size > d.cfg.MaxRecordSize {
		return &RecordSizeError{Size: d.size, Max: d.cfg.MaxRecordSize}
	}
	return nil
}

// value decodes one tagged value (tag byte plus payload).
func (d *decoder) value(fid uint16, depth int) (value.Value, error) {
	if err := d.need(1); err != nil {
		return value.Value{}, err
	}
	tag := d.buf[d.pos]
	d.pos++
	if err := d.grow(1); err != nil {
		return value.Value{}, err
	}
	switch tag {
	case TagInt:
		n, err := d.varint()
		if err != nil {
			return value.Value{}, err
		}
		return value.Int(n), d.grow(8)
	case TagFloat:
		if err := d.need(8); err != nil {
			return value.Value{}, err
		}
		bits := binary.LittleEndian.Uint64(d.buf[d.pos:])
		d.pos += 8
		return value.Float(math.Float64frombits(bits)), d.grow(8)
	case TagBool:
		if err := d.need(1); err != nil {
			return value.Value{}, err
		}
		b := d.buf[d.pos]
		d.pos++
		if b > 0x01 {
			return value.Value{}, &ValueError{ID: fid, Tag: tag, Reason: "boolean byte must be 0x00 or 0x01"}
		}
		return value.Bool(b == 0x01), d.grow(1)
	case TagString:
		s, err := d.str(fid, tag)
		if err != nil {
			return value.Value{}, err
		}
		return value.String(s), nil
	case TagStringArray:
		count, err := d.count()
		if err != nil {
			return value.Value{}, err
		}
		arr := make([]string, 0, minCap(count))
		for i := 0; i < count; i++ {
			s, err := d.str(fid, tag)
			if err != nil {
				return value.Value{}, err
			}
			arr = append(arr, s)
		}
		return value.StringArray(arr), nil
	case TagIntArray:
		count, err := d.count()
		if err != nil {
			return value.Value{}, err
		}
		if err := d.grow(count * 8); err != nil {
			return value.Value{}, err
		}
		arr := make([]int64, 0, minCap(count))
		for i := 0; i < count; i++ {
			n, err := d.varint()
			if err != nil {
				return value.Value{}, err
			}
			arr = append(arr, n)
		}
		return value.IntArray(arr), nil
	case TagFloatArray:
		count, err := d.count()
		if err != nil {
			return value.Value{}, err
		}
		if err := d.grow(count * 8); err != nil {
			return value.Value{}, err
		}
		arr := make([]float64, 0, minCap(count))
		for i := 0; i < count; i++ {
			if err := d.need(8); err != nil {
				return value.Value{}, err
			}
			bits := binary.LittleEndian.Uint64(d.buf[d.pos:])
			d.pos += 8
			arr = append(arr, math.Float64frombits(bits))
		}
		return value.FloatArray(arr), nil
	case TagBoolArray:
		count, err := d.count()
		if err != nil {
			return value.Value{}, err
		}
		if err := d.grow(count); err != nil {
			return value.Value{}, err
		}
		arr := make([]bool, 0, minCap(count))
		for i := 0; i < count; i++ {
			if err := d.need(1); err != nil {
				return value.Value{}, err
			}
			b := d.buf[d.pos]
			d.pos++
			if b > 0x01 {
				return value.Value{}, &ValueError{ID: fid, Tag: tag, Reason: "boolean byte must be 0x00 or 0x01"}
			}
			arr = append(arr, b == 0x01)
		}
		return value.BoolArray(arr), nil
	case TagRecord:
		rec, err := d.nestedRecord(depth + 1)
		if err != nil {
			return value.Value{}, err
		}
		return value.Nested(rec), nil
	case TagRecordArray:
		if depth+1 > d.cfg.maxDepth() {
			return value.Value{}, &NestingDepthError{Depth: depth + 1, Max: d.cfg.maxDepth()}
		}
		count, err := d.count()
		if err != nil {
			return value.Value{}, err
		}
		recs := make([]*value.Record, 0, minCap(count))
		for i := 0; i < count; i++ {
			if err := d.need(1); err != nil {
				return value.Value{}, err
			}
			if d.buf[d.pos] != TagRecord {
				return value.Value{}, &ValueError{ID: fid, Tag: d.buf[d.pos], Reason: "array element is not a nested record"}
			}
			d.pos++
			rec, err := d.nestedRecord(depth + 1)
			if err != nil {
				return value.Value{}, err
			}
			recs = append(recs, rec)
		}
		return value.NestedArray(recs), nil
	default:
		return value.Value{}, &TagError{Tag: tag}
	}
}

// nestedRecord decodes a nested record body (the TagRecord byte has
// already been consumed): field count, then (VarInt FID, tagged
// value) pairs in strictly ascending FID order.
func (d *decoder) nestedRecord(depth int) (*value.Record, error) {
	if depth > d.cfg.maxDepth() {
		return nil, &NestingDepthError{Depth: depth, Max: d.cfg.maxDepth()}
	}
	count, err := d.count()
	if err != nil {
		return nil, err
	}
	r := value.NewRecord()
	prev := -1
	for i := 0; i < count; i++ {
		rawFID, err := d.varint()
		if err != nil {
			return nil, err
		}
		if rawFID < 0 || rawFID > math.MaxUint16 {
			return nil, &VarintError{Reason: "field id out of uint16 range"}
		}
		fid := uint16(rawFID)
		if int(fid) <= prev {
			return nil, &CanonicalOrderError{Previous: uint16(prev), Current: fid}
		}
		prev = int(fid)
		if err := d.grow(3); err != nil {
			return nil, err
		}
		v, err := d.value(fid, depth)
		if err != nil {
			return nil, err
		}
		if err := r.AddField(value.FieldID(fid), v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// str decodes a length-prefixed UTF-8 string and charges it to the
// size budget.
func (d *decoder) str(fid uint16, tag byte) (string, error) {
	n, err := d.count()
	if err != nil {
		return "", err
	}
	if err := d.need(n); err != nil {
		return "", err
	}
	if err := d.grow(n); err != nil {
		return "", err
	}
	raw := d.buf[d.pos : d.pos+n]
	d.pos += n
	if !utf8.Valid(raw) {
		return "", &UTF8Error{ID: fid}
	}
	return string(raw), nil
}

// minCap bounds pre-allocation so a hostile count prefix cannot force
// a huge allocation before the payload bytes are actually present.
func minCap(count int) int {
	const limit = 1024
	if count > limit {
		return limit
	}
	return count
}
