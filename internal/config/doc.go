// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config loads, merges and validates the journal configuration.
//
// Sources, later ones overriding non-zero fields of earlier ones:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file (path from CONFIG or -c/-config)
//
// [GetClientConfig] is the entry point used by the binary; it returns the
// runtime [ClientConfig] view with defaults applied.
package config
