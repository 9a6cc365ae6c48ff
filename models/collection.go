// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Collection names one of the durable record sets kept by the journal.
// The value doubles as the SQLite table name and the remote API path segment.
type Collection string

const (
	// NotesCollection holds [Note] records.
	NotesCollection Collection = "notes"

	// NoteHistoriesCollection holds append-only [NoteHistory] records.
	NoteHistoriesCollection Collection = "note_histories"

	// ReflectionsCollection holds [Reflection] records.
	ReflectionsCollection Collection = "reflections"
)

// Collections lists every collection in load order.
var Collections = []Collection{NotesCollection, NoteHistoriesCollection, ReflectionsCollection}

// String implements fmt.Stringer.
func (c Collection) String() string {
	return string(c)
}

// Valid reports whether c is one of the known collections.
func (c Collection) Valid() bool {
	switch c {
	case NotesCollection, NoteHistoriesCollection, ReflectionsCollection:
		return true
	}
	return false
}

// Record is implemented by every value that can be cached and persisted.
type Record interface {
	// RecordID returns the unique identifier of the record within its collection.
	RecordID() string

	// RecordTime returns the last modification time used for conflict
	// resolution during remote reconciliation.
	RecordTime() time.Time

	// IsDeleted reports whether the record is a tombstone.
	IsDeleted() bool
}
