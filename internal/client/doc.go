// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the journal runtime.
//
// It wires the durable store, the optional remote source, the journal
// services, the local HTTP bridge and the background resync job into a
// single process lifecycle.
package client
