// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// NoteHistory is an immutable snapshot of a note's title and content taken
// just before the note was changed. Entries are never updated; they are only
// removed in bulk together with their note or by an explicit history clear.
type NoteHistory struct {
	ID      string `json:"id"`
	NoteID  string `json:"noteId"`
	Title   string `json:"title"`
	Content string `json:"content"`

	// SavedAt is the moment the snapshot was taken.
	SavedAt   time.Time  `json:"savedAt"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// RecordID implements [Record].
func (h NoteHistory) RecordID() string { return h.ID }

// RecordTime implements [Record].
func (h NoteHistory) RecordTime() time.Time { return h.UpdatedAt }

// IsDeleted implements [Record].
func (h NoteHistory) IsDeleted() bool { return h.DeletedAt != nil }

// NoteSnapshot is the versioned part of a note.
type NoteSnapshot struct {
	Title   string
	Content string
}

// HistoryOrder selects the ordering of history listings.
type HistoryOrder int

const (
	// OldestFirst lists entries in creation order.
	OldestFirst HistoryOrder = iota
	// NewestFirst lists entries in reverse creation order.
	NewestFirst
)
