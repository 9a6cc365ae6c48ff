// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cache holds the synchronous in-memory mirror of the journal
// collections. Only the cache mutates its collections; every other component
// goes through Upsert, Remove and friends.
package cache

import "github.com/MKhiriev/go-journal-keeper/models"

// Cache groups one collection per journal entity. Construct it with New and
// inject it into the services that need it.
type Cache struct {
	Notes         *Collection[models.Note]
	NoteHistories *Collection[models.NoteHistory]
	Reflections   *Collection[models.Reflection]
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{
		Notes:         NewCollection[models.Note](),
		NoteHistories: NewCollection[models.NoteHistory](),
		Reflections:   NewCollection[models.Reflection](),
	}
}

// Loaded reports whether every collection has been hydrated.
func (c *Cache) Loaded() bool {
	return c.Notes.Loaded() && c.NoteHistories.Loaded() && c.Reflections.Loaded()
}
