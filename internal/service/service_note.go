// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-journal-keeper/internal/cache"
	"github.com/MKhiriev/go-journal-keeper/internal/logger"
	"github.com/MKhiriev/go-journal-keeper/internal/notify"
	"github.com/MKhiriev/go-journal-keeper/internal/store"
	"github.com/MKhiriev/go-journal-keeper/internal/utils"
	"github.com/MKhiriev/go-journal-keeper/internal/validators"
	"github.com/MKhiriev/go-journal-keeper/models"
)

type noteService struct {
	notes     *cache.Collection[models.Note]
	histories *noteHistoryService
	store     *store.PersistentStore
	changes   *notify.Bus[models.Change]
	validator validators.Validator
	ids       utils.IDGenerator
	now       func() time.Time

	// mu serialises read-modify-write of a note with its history append.
	mu sync.Mutex

	logger *logger.Logger
}

func newNoteService(c *cache.Cache, st *store.PersistentStore, histories *noteHistoryService, changes *notify.Bus[models.Change],
	validator validators.Validator, ids utils.IDGenerator, logger *logger.Logger) *noteService {
	return &noteService{
		notes:     c.Notes,
		histories: histories,
		store:     st,
		changes:   changes,
		validator: validator,
		ids:       ids,
		now:       utcNow,
		logger:    logger,
	}
}

// GetNotes implements [NoteService].
func (n *noteService) GetNotes(_ context.Context) []models.Note {
	return n.notes.List(nil)
}

// GetNote implements [NoteService].
func (n *noteService) GetNote(_ context.Context, id string) (models.Note, bool) {
	return n.notes.Get(id)
}

// SaveNote implements [NoteService].
func (n *noteService) SaveNote(ctx context.Context, input models.NoteInput) (models.Note, error) {
	if err := n.validator.Validate(ctx, input); err != nil {
		return models.Note{}, err
	}

	now := n.now()
	note := models.Note{
		ID:             n.ids.Generate(),
		Title:          input.Title,
		Content:        input.Content,
		Category:       input.Category,
		CreatedAt:      now,
		UpdatedAt:      now,
		IsEncrypted:    input.IsEncrypted,
		EncryptionSalt: input.EncryptionSalt,
		EncryptionIV:   input.EncryptionIV,
		PasswordHash:   input.PasswordHash,
	}
	if !note.IsEncrypted {
		clearEncryption(&note)
	}

	n.notes.Upsert(note)
	n.store.WriteOne(models.NotesCollection, note)
	n.changes.Publish(models.Change{Collection: models.NotesCollection, Op: models.ChangeUpsert, IDs: []string{note.ID}})

	logger.FromContext(ctx).Debug().
		Str("func", "noteService.SaveNote").
		Str("id", note.ID).
		Bool("encrypted", note.IsEncrypted).
		Msg("note saved")

	return note, nil
}

// UpdateNote implements [NoteService].
func (n *noteService) UpdateNote(ctx context.Context, id string, update models.NoteUpdate) ([]models.Note, error) {
	if id == "" {
		return nil, validators.ErrEmptyNoteID
	}
	if err := n.validator.Validate(ctx, update); err != nil {
		return nil, err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	current, ok := n.notes.Get(id)
	if !ok {
		return nil, ErrNoteNotFound
	}

	encrypted := current.IsEncrypted
	if update.IsEncrypted != nil {
		encrypted = *update.IsEncrypted
	}
	if !encrypted && carriesEncryption(update) {
		return nil, validators.ErrUnexpectedEncryption
	}

	next := applyNoteUpdate(current, update)
	if err := n.validator.Validate(ctx, next); err != nil {
		return nil, err
	}
	next.UpdatedAt = n.now()

	versioned := next.Title != current.Title || next.Content != current.Content

	notes := n.notes.Upsert(next)
	n.store.WriteOne(models.NotesCollection, next)
	if versioned {
		n.histories.append(ctx, id, models.NoteSnapshot{Title: current.Title, Content: current.Content})
	}
	n.changes.Publish(models.Change{Collection: models.NotesCollection, Op: models.ChangeUpsert, IDs: []string{id}})

	logger.FromContext(ctx).Debug().
		Str("func", "noteService.UpdateNote").
		Str("id", id).
		Bool("versioned", versioned).
		Msg("note updated")

	return notes, nil
}

// DeleteNote implements [NoteService].
func (n *noteService) DeleteNote(ctx context.Context, id string) []models.Note {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.notes.Get(id); !ok {
		return n.notes.List(nil)
	}

	notes := n.notes.Remove(id)
	n.store.DeleteOne(models.NotesCollection, id)
	_, removed := n.histories.deleteByNoteID(ctx, id)
	n.changes.Publish(models.Change{Collection: models.NotesCollection, Op: models.ChangeDelete, IDs: []string{id}})

	logger.FromContext(ctx).Debug().
		Str("func", "noteService.DeleteNote").
		Str("id", id).
		Int("histories_removed", len(removed)).
		Msg("note deleted")

	return notes
}

// applyNoteUpdate returns note with every non-nil field of update applied.
// An empty category clears it. Turning encryption off drops the metadata.
func applyNoteUpdate(note models.Note, update models.NoteUpdate) models.Note {
	if update.Title != nil {
		note.Title = *update.Title
	}
	if update.Content != nil {
		note.Content = *update.Content
	}
	if update.Category != nil {
		note.Category = update.Category
		if *update.Category == "" {
			note.Category = nil
		}
	}
	if update.IsEncrypted != nil {
		note.IsEncrypted = *update.IsEncrypted
	}
	if update.EncryptionSalt != nil {
		note.EncryptionSalt = update.EncryptionSalt
	}
	if update.EncryptionIV != nil {
		note.EncryptionIV = update.EncryptionIV
	}
	if update.PasswordHash != nil {
		note.PasswordHash = update.PasswordHash
	}

	if !note.IsEncrypted {
		clearEncryption(&note)
	}
	return note
}

// carriesEncryption reports whether update sets any non-empty encryption
// metadata.
func carriesEncryption(update models.NoteUpdate) bool {
	for _, v := range []*string{update.EncryptionSalt, update.EncryptionIV, update.PasswordHash} {
		if v != nil && *v != "" {
			return true
		}
	}
	return false
}

func clearEncryption(note *models.Note) {
	note.EncryptionSalt = nil
	note.EncryptionIV = nil
	note.PasswordHash = nil
}
