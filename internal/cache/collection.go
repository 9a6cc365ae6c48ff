// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cache

import (
	"slices"
	"sync"

	"github.com/MKhiriev/go-journal-keeper/models"
)

// Collection is an in-memory, insertion-ordered set of records indexed by id.
// Reads and writes never perform I/O. Returned slices are copies owned by the
// caller.
type Collection[T models.Record] struct {
	mu     sync.RWMutex
	index  map[string]T
	order  []string
	loaded bool
}

// NewCollection returns an empty, not yet loaded collection.
func NewCollection[T models.Record]() *Collection[T] {
	return &Collection[T]{index: make(map[string]T)}
}

// Get returns the record with id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.index[id]
	return rec, ok
}

// Len returns the number of records.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.order)
}

// List returns the records matching filter in insertion order. A nil filter
// matches everything.
func (c *Collection[T]) List(filter func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.listLocked(filter)
}

// Upsert stores rec and returns the new full list. An existing record keeps
// its position; a new one is appended.
func (c *Collection[T]) Upsert(rec T) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.putLocked(rec)
	return c.listLocked(nil)
}

// UpsertMany stores every record of recs in order and returns the new full
// list.
func (c *Collection[T]) UpsertMany(recs []T) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, rec := range recs {
		c.putLocked(rec)
	}
	return c.listLocked(nil)
}

// Remove deletes the record with id, if present, and returns the new full
// list.
func (c *Collection[T]) Remove(id string) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.index[id]; ok {
		delete(c.index, id)
		c.order = slices.DeleteFunc(c.order, func(v string) bool { return v == id })
	}
	return c.listLocked(nil)
}

// RemoveWhere deletes every record matching pred. It returns the remaining
// records and the removed ones, both in insertion order.
func (c *Collection[T]) RemoveWhere(pred func(T) bool) (remaining, removed []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.order[:0]
	for _, id := range c.order {
		rec := c.index[id]
		if pred(rec) {
			removed = append(removed, rec)
			delete(c.index, id)
			continue
		}
		kept = append(kept, id)
	}
	clear(c.order[len(kept):])
	c.order = kept

	return c.listLocked(nil), removed
}

// Replace discards the current content, stores recs in order and marks the
// collection loaded. Later duplicates of an id overwrite earlier ones in place.
func (c *Collection[T]) Replace(recs []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.index = make(map[string]T, len(recs))
	c.order = make([]string, 0, len(recs))
	for _, rec := range recs {
		c.putLocked(rec)
	}
	c.loaded = true
}

// Hydrate merges durable recs underneath the current content and marks the
// collection loaded. Records already held in memory win over recs with the
// same id; recs come first in the resulting order, followed by records that
// exist only in memory.
func (c *Collection[T]) Hydrate(recs []T) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, currentOrder := c.index, c.order
	c.index = make(map[string]T, len(recs)+len(currentOrder))
	c.order = make([]string, 0, len(recs)+len(currentOrder))

	for _, rec := range recs {
		if mem, ok := current[rec.RecordID()]; ok {
			rec = mem
		}
		c.putLocked(rec)
	}
	for _, id := range currentOrder {
		if _, ok := c.index[id]; !ok {
			c.putLocked(current[id])
		}
	}
	c.loaded = true

	return c.listLocked(nil)
}

// Loaded reports whether Replace or Hydrate has been called at least once.
func (c *Collection[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.loaded
}

func (c *Collection[T]) putLocked(rec T) {
	id := rec.RecordID()
	if _, ok := c.index[id]; !ok {
		c.order = append(c.order, id)
	}
	c.index[id] = rec
}

func (c *Collection[T]) listLocked(filter func(T) bool) []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		rec := c.index[id]
		if filter == nil || filter(rec) {
			out = append(out, rec)
		}
	}
	return out
}
