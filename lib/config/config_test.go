// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recwire.yaml")
	content := `
limits:
  max_depth: 8
stream:
  chunk_size: 1024
  compression: lz4
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Limits.MaxDepth != 8 {
		t.Errorf("max_depth = %d", cfg.Limits.MaxDepth)
	}
	if cfg.Stream.ChunkSize != 1024 || cfg.Stream.Compression != "lz4" {
		t.Errorf("stream = %+v", cfg.Stream)
	}
	// Untouched values keep their defaults.
	if cfg.Limits.MaxFields != 4096 {
		t.Errorf("max_fields = %d", cfg.Limits.MaxFields)
	}
	if cfg.Stream.Checksum != "xor32" {
		t.Errorf("checksum = %q", cfg.Stream.Checksum)
	}
}

func TestLoadFileRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recwire.yaml")
	content := `
stream:
  chunk_size: -5
  checksum: md5
  compression: brotli
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("invalid config loaded successfully")
	}
	// All violations are reported together.
	msg := err.Error()
	for _, want := range []string{"chunk_size", "checksum", "compression"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error does not mention %s: %v", want, err)
		}
	}
}

func TestLoadRequiresEnvVar(t *testing.T) {
	t.Setenv("RECWIRE_CONFIG", "")
	if _, err := Load(); err == nil {
		t.Error("Load without RECWIRE_CONFIG must fail")
	}

	path := filepath.Join(t.TempDir(), "recwire.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RECWIRE_CONFIG", path)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Limits.MaxDepth != 32 {
		t.Errorf("defaults not applied: %+v", cfg.Limits)
	}
}
