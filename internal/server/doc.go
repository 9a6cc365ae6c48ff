// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the local HTTP bridge.
//
// It owns the listener lifecycle: startup, serving until the run context is
// cancelled, and graceful shutdown bounded by a timeout.
package server
