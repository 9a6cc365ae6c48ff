// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helpers used across the journal:
// record id generation, JSON response writing, the HTTP client used by the
// remote adapter and bearer token parsing.
package utils
