// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"slices"
	"time"

	"github.com/MKhiriev/go-journal-keeper/internal/cache"
	"github.com/MKhiriev/go-journal-keeper/internal/logger"
	"github.com/MKhiriev/go-journal-keeper/internal/notify"
	"github.com/MKhiriev/go-journal-keeper/internal/store"
	"github.com/MKhiriev/go-journal-keeper/internal/utils"
	"github.com/MKhiriev/go-journal-keeper/internal/validators"
	"github.com/MKhiriev/go-journal-keeper/models"
)

type noteHistoryService struct {
	histories *cache.Collection[models.NoteHistory]
	store     *store.PersistentStore
	changes   *notify.Bus[models.Change]
	ids       utils.IDGenerator
	now       func() time.Time

	logger *logger.Logger
}

func newNoteHistoryService(c *cache.Cache, st *store.PersistentStore, changes *notify.Bus[models.Change], ids utils.IDGenerator, logger *logger.Logger) *noteHistoryService {
	return &noteHistoryService{
		histories: c.NoteHistories,
		store:     st,
		changes:   changes,
		ids:       ids,
		now:       utcNow,
		logger:    logger,
	}
}

// AppendVersion implements [NoteHistoryService].
func (h *noteHistoryService) AppendVersion(ctx context.Context, noteID string, snapshot models.NoteSnapshot) (models.NoteHistory, error) {
	if noteID == "" {
		return models.NoteHistory{}, validators.ErrEmptyNoteID
	}

	entry := h.append(ctx, noteID, snapshot)
	h.changes.Publish(models.Change{
		Collection: models.NoteHistoriesCollection,
		Op:         models.ChangeUpsert,
		IDs:        []string{entry.ID},
	})

	return entry, nil
}

// append stores a new entry without publishing a change. Callers that append
// as part of a larger mutation publish for that mutation instead.
func (h *noteHistoryService) append(ctx context.Context, noteID string, snapshot models.NoteSnapshot) models.NoteHistory {
	now := h.now()
	entry := models.NoteHistory{
		ID:        h.ids.Generate(),
		NoteID:    noteID,
		Title:     snapshot.Title,
		Content:   snapshot.Content,
		SavedAt:   now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	h.histories.Upsert(entry)
	h.store.WriteOne(models.NoteHistoriesCollection, entry)

	logger.FromContext(ctx).Debug().
		Str("func", "noteHistoryService.append").
		Str("note_id", noteID).
		Str("id", entry.ID).
		Msg("note version appended")

	return entry
}

// GetHistories implements [NoteHistoryService].
func (h *noteHistoryService) GetHistories(_ context.Context, noteID string, order models.HistoryOrder) []models.NoteHistory {
	var filter func(models.NoteHistory) bool
	if noteID != "" {
		filter = func(e models.NoteHistory) bool { return e.NoteID == noteID }
	}

	entries := h.histories.List(filter)
	if order == models.NewestFirst {
		slices.Reverse(entries)
	}
	return entries
}

// DeleteHistoriesByNoteID implements [NoteHistoryService].
func (h *noteHistoryService) DeleteHistoriesByNoteID(ctx context.Context, noteID string) []models.NoteHistory {
	remaining, removed := h.deleteByNoteID(ctx, noteID)
	if len(removed) > 0 {
		h.changes.Publish(models.Change{
			Collection: models.NoteHistoriesCollection,
			Op:         models.ChangeDelete,
			IDs:        removed,
		})
	}
	return remaining
}

// deleteByNoteID removes the entries of noteID from the cache and queues their
// durable removal. Each removed id is deleted under its own record key so the
// delete is ordered after a still pending write of that entry; the
// collection-wide sweep catches entries the cache never held.
func (h *noteHistoryService) deleteByNoteID(ctx context.Context, noteID string) (remaining []models.NoteHistory, removedIDs []string) {
	if noteID == "" {
		return h.histories.List(nil), nil
	}

	remaining, removed := h.histories.RemoveWhere(func(e models.NoteHistory) bool { return e.NoteID == noteID })
	removedIDs = make([]string, 0, len(removed))
	for _, e := range removed {
		h.store.DeleteOne(models.NoteHistoriesCollection, e.ID)
		removedIDs = append(removedIDs, e.ID)
	}
	store.DeleteMany(h.store, models.NoteHistoriesCollection, func(e models.NoteHistory) bool {
		return e.NoteID == noteID
	})

	logger.FromContext(ctx).Debug().
		Str("func", "noteHistoryService.deleteByNoteID").
		Str("note_id", noteID).
		Int("removed", len(removedIDs)).
		Msg("note histories deleted")

	return remaining, removedIDs
}

func utcNow() time.Time {
	return time.Now().UTC()
}
