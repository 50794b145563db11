// Copyright 2026 The Recwire Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for Recwire
// endpoints.
//
// Configuration is loaded from a single YAML file named by the
// RECWIRE_CONFIG environment variable or an explicit path. There are
// no fallbacks or automatic discovery; this keeps an endpoint's
// limits and stream settings deterministic and auditable. Values
// missing from the file keep their protocol defaults.
package config
