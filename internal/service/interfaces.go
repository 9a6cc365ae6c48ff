// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the journal's use cases on top of the in-memory
// cache and the persistent store.
//
// Every mutation follows the same sequence: the cache is updated
// synchronously, a durable write is queued on the store, a history entry is
// appended when a note's title or content changed, and finally one
// [models.Change] is published on the change bus. Mutations return errors
// only for invalid input; persistence failures are reported through the
// store's error handler.
package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-journal-keeper/models"
)

// StorageService owns the one-shot bootstrap of the cache from durable storage.
type StorageService interface {
	// InitializeStorage loads durable state into the cache. Concurrent callers
	// share one load; after the first success it returns immediately. A failed
	// load is reported to every caller that shared it and may be retried.
	InitializeStorage(ctx context.Context) error

	// Initialized reports whether InitializeStorage has succeeded.
	Initialized() bool

	// Flush blocks until every queued durable write has completed.
	Flush(ctx context.Context) error
}

// NoteService is the mutation and read boundary for notes.
type NoteService interface {
	// GetNotes returns every cached note in insertion order.
	GetNotes(ctx context.Context) []models.Note

	// GetNote returns the cached note with id.
	GetNote(ctx context.Context, id string) (models.Note, bool)

	// SaveNote validates input, assigns a fresh id and timestamps, and stores
	// the note. The returned note is already visible to GetNotes.
	SaveNote(ctx context.Context, input models.NoteInput) (models.Note, error)

	// UpdateNote applies a partial update to the note with id and returns the
	// new list of notes. When the title or content changes, the prior title
	// and content are appended to the note's history. Switching encryption
	// off clears the encryption metadata. Returns [ErrNoteNotFound] for an
	// unknown id.
	UpdateNote(ctx context.Context, id string, update models.NoteUpdate) ([]models.Note, error)

	// DeleteNote removes the note and all of its history entries and returns
	// the remaining notes. Deleting an unknown id is a no-op.
	DeleteNote(ctx context.Context, id string) []models.Note
}

// NoteHistoryService tracks immutable versions of notes.
type NoteHistoryService interface {
	// AppendVersion records snapshot as a new history entry of noteID.
	AppendVersion(ctx context.Context, noteID string, snapshot models.NoteSnapshot) (models.NoteHistory, error)

	// GetHistories returns the history entries of noteID, or of every note
	// when noteID is empty, in the requested creation order.
	GetHistories(ctx context.Context, noteID string, order models.HistoryOrder) []models.NoteHistory

	// DeleteHistoriesByNoteID removes every history entry of noteID and
	// returns the remaining entries of all notes.
	DeleteHistoriesByNoteID(ctx context.Context, noteID string) []models.NoteHistory
}

// ReflectionSource produces candidate reflections derived from other data.
type ReflectionSource interface {
	Reflections(ctx context.Context) ([]models.Reflection, error)
}

// ReflectionService derives, deduplicates and stores reflections.
type ReflectionService interface {
	// GetReflections returns the cached reflections as stored, without
	// deduplication or derivation.
	GetReflections(ctx context.Context) []models.Reflection

	// GetReflectionsAsync makes sure storage is initialized, gathers stored
	// and derived candidates, and returns them deduplicated by dedup key,
	// newest day first. Repeated calls without intervening mutations return
	// equal lists.
	GetReflectionsAsync(ctx context.Context) ([]models.Reflection, error)

	// SaveReflection stores input. A reflection with the same dedup key is
	// updated in place instead of creating a duplicate.
	SaveReflection(ctx context.Context, input models.ReflectionInput) (models.Reflection, error)
}

// SyncService coordinates the auth sync state machine with storage
// initialization and remote reconciliation.
type SyncService interface {
	// HandleAuthChange switches the journal to user (nil = guest) and runs a
	// sync round for it. A call while a round for the same user is running
	// joins that round.
	HandleAuthChange(ctx context.Context, user *models.User) error

	// Resync runs a sync round for the current user.
	Resync(ctx context.Context) error
}

// SyncJob is a background worker that periodically calls Resync.
type SyncJob interface {
	// Start launches the background goroutine. It resyncs every interval,
	// defaulting to 5 minutes if interval is zero or negative. Any previously
	// running job is stopped first.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()

	// Run starts the job and blocks until ctx is done.
	Run(ctx context.Context)
}

// AppInfoService reports build metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
