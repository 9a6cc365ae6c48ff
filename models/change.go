// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ChangeOp is the kind of cache mutation announced on the change bus.
type ChangeOp string

const (
	ChangeUpsert ChangeOp = "upsert"
	ChangeDelete ChangeOp = "delete"
	// ChangeReload is published after the cache was (re)populated from
	// durable storage or the remote source.
	ChangeReload ChangeOp = "reload"
)

// Change describes one logical cache mutation.
type Change struct {
	Collection Collection `json:"collection"`
	Op         ChangeOp   `json:"op"`
	IDs        []string   `json:"ids,omitempty"`
}
