// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

// Package dict loads FID dictionaries: the mapping from numeric field
// IDs to human-readable names and declared kinds. Dictionaries are
// authored as JSONC files (JSON with // line comments, /* block
// comments */, and trailing commas) keyed by decimal FID:
//
//	{
//	  // device telemetry
//	  "12": {"name": "device_id", "type": "int"},
//	  "13": {"name": "temperature", "type": "float"},
//	}
//
// Negotiation compares the two peers' dictionaries to detect FID
// collisions before any data is exchanged.
package dict

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/tidwall/jsonc"

	"github.com/recwire/recwire/lib/value"
)

// Definition describes one dictionary entry.
type Definition struct {
	// Name is the field's human-readable identifier.
	Name string `json:"name"`
	// Kind is the field's declared value kind.
	Kind value.Kind `json:"-"`
}

// Dictionary maps FIDs to definitions.
type Dictionary struct {
	defs map[value.FieldID]Definition
}

// New returns an empty dictionary.
func New() *Dictionary {
	return &Dictionary{defs: make(map[value.FieldID]Definition)}
}

// kind names accepted in dictionary files.
var kindNames = map[string]value.Kind{
	"int":          value.KindInt,
	"float":        value.KindFloat,
	"bool":         value.KindBool,
	"string":       value.KindString,
	"string_array": value.KindStringArray,
	"int_array":    value.KindIntArray,
	"float_array":  value.KindFloatArray,
	"bool_array":   value.KindBoolArray,
	"record":       value.KindRecord,
	"record_array": value.KindRecordArray,
}

type rawDefinition struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Parse strips JSONC comments and trailing commas from data, then
// unmarshals the result into a dictionary.
func Parse(data []byte) (*Dictionary, error) {
	stripped := jsonc.ToJSON(data)

	var raw map[string]rawDefinition
	if err := json.Unmarshal(stripped, &raw); err != nil {
		return nil, fmt.Errorf("parsing dictionary: %w", err)
	}

	d := New()
	for key, def := range raw {
		fid, err := strconv.ParseUint(key, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("dictionary key %q is not a valid FID: %w", key, err)
		}
		if def.Name == "" {
			return nil, fmt.Errorf("dictionary entry %s has no name", key)
		}
		kind, ok := kindNames[def.Type]
		if !ok {
			return nil, fmt.Errorf("dictionary entry %s: unknown type %q", key, def.Type)
		}
		d.defs[value.FieldID(fid)] = Definition{Name: def.Name, Kind: kind}
	}
	return d, nil
}

// ReadFile reads a JSONC dictionary file from disk.
func ReadFile(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dictionary: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Add inserts or replaces a definition.
func (d *Dictionary) Add(fid value.FieldID, def Definition) {
	d.defs[fid] = def
}

// Lookup returns the definition for fid and whether it exists.
func (d *Dictionary) Lookup(fid value.FieldID) (Definition, bool) {
	def, ok := d.defs[fid]
	return def, ok
}

// Len returns the number of entries.
func (d *Dictionary) Len() int { return len(d.defs) }

// FIDs returns all defined FIDs sorted ascending.
func (d *Dictionary) FIDs() []value.FieldID {
	out := make([]value.FieldID, 0, len(d.defs))
	for fid := range d.defs {
		out = append(out, fid)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Names returns the FID to name mapping, the shape exchanged during
// negotiation.
func (d *Dictionary) Names() map[value.FieldID]string {
	out := make(map[value.FieldID]string, len(d.defs))
	for fid, def := range d.defs {
		out[fid] = def.Name
	}
	return out
}
