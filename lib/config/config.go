// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the protocol configuration for a Recwire endpoint.
type Config struct {
	// Limits bounds record structure.
	Limits LimitsConfig `yaml:"limits"`

	// Wire configures the binary codec.
	Wire WireConfig `yaml:"wire"`

	// Stream configures the streaming frame layer.
	Stream StreamConfig `yaml:"stream"`
}

// LimitsConfig bounds record structure. Zero values disable a bound
// except MaxDepth, which falls back to the protocol default.
type LimitsConfig struct {
	// MaxDepth bounds nesting depth.
	MaxDepth int `yaml:"max_depth"`
	// MaxFields bounds total field count across nesting levels.
	MaxFields int `yaml:"max_fields"`
	// MaxStringLen bounds string byte length.
	MaxStringLen int `yaml:"max_string_len"`
	// MaxArrayItems bounds array element count.
	MaxArrayItems int `yaml:"max_array_items"`
}

// WireConfig configures the binary codec.
type WireConfig struct {
	// MaxRecordSize bounds the cumulative decoded payload size in
	// bytes. Zero disables the check.
	MaxRecordSize int `yaml:"max_record_size"`
}

// StreamConfig configures the streaming frame layer.
type StreamConfig struct {
	// ChunkSize is the maximum chunk payload size in bytes.
	ChunkSize int `yaml:"chunk_size"`
	// Checksum selects the per-chunk checksum: none, xor32, crc32.
	Checksum string `yaml:"checksum"`
	// Compression selects chunk compression: none, lz4, zstd.
	Compression string `yaml:"compression"`
	// WindowSize is the advisory backpressure window in bytes.
	WindowSize int `yaml:"window_size"`
}

// Default returns the standard protocol configuration.
func Default() *Config {
	return &Config{
		Limits: LimitsConfig{
			MaxDepth:      32,
			MaxFields:     4096,
			MaxStringLen:  16 * 1024,
			MaxArrayItems: 1024,
		},
		Wire: WireConfig{
			MaxRecordSize: 1 << 20,
		},
		Stream: StreamConfig{
			ChunkSize:   4096,
			Checksum:    "xor32",
			Compression: "none",
			WindowSize:  64 * 1024,
		},
	}
}

// Load loads configuration from the RECWIRE_CONFIG environment
// variable. There are no fallbacks or automatic discovery: if
// RECWIRE_CONFIG is not set, this fails, ensuring deterministic and
// auditable configuration.
func Load() (*Config, error) {
	path := os.Getenv("RECWIRE_CONFIG")
	if path == "" {
		return nil, fmt.Errorf("RECWIRE_CONFIG environment variable not set; " +
			"set it to the path of your recwire.yaml config file")
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path, merging it
// over the defaults. The config file is the single source of truth;
// environment variables do not override values in it.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Limits.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("limits.max_depth must not be negative"))
	}
	if c.Limits.MaxFields < 0 {
		errs = append(errs, fmt.Errorf("limits.max_fields must not be negative"))
	}
	if c.Limits.MaxStringLen < 0 {
		errs = append(errs, fmt.Errorf("limits.max_string_len must not be negative"))
	}
	if c.Limits.MaxArrayItems < 0 {
		errs = append(errs, fmt.Errorf("limits.max_array_items must not be negative"))
	}
	if c.Wire.MaxRecordSize < 0 {
		errs = append(errs, fmt.Errorf("wire.max_record_size must not be negative"))
	}
	if c.Stream.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("stream.chunk_size must be positive"))
	}
	if c.Stream.WindowSize <= 0 {
		errs = append(errs, fmt.Errorf("stream.window_size must be positive"))
	}

	checksums := []string{"none", "xor32", "crc32"}
	if !contains(checksums, c.Stream.Checksum) {
		errs = append(errs, fmt.Errorf("stream.checksum must be one of: %v", checksums))
	}
	compressions := []string{"none", "lz4", "zstd"}
	if !contains(compressions, c.Stream.Compression) {
		errs = append(errs, fmt.Errorf("stream.compression must be one of: %v", compressions))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
