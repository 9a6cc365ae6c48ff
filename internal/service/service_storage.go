// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-journal-keeper/internal/cache"
	"github.com/MKhiriev/go-journal-keeper/internal/logger"
	"github.com/MKhiriev/go-journal-keeper/internal/notify"
	"github.com/MKhiriev/go-journal-keeper/internal/store"
	"github.com/MKhiriev/go-journal-keeper/models"
)

type storageService struct {
	cache   *cache.Cache
	store   *store.PersistentStore
	changes *notify.Bus[models.Change]

	hydrate sync.Once

	logger *logger.Logger
}

// NewStorageService wires the cache to the persistent store.
func NewStorageService(c *cache.Cache, st *store.PersistentStore, changes *notify.Bus[models.Change], logger *logger.Logger) StorageService {
	return &storageService{cache: c, store: st, changes: changes, logger: logger}
}

// InitializeStorage implements [StorageService]. The store memoizes the
// snapshot; the cache is hydrated from it exactly once.
func (s *storageService) InitializeStorage(ctx context.Context) error {
	snap, err := s.store.Initialize(ctx)
	if err != nil {
		return err
	}

	s.hydrate.Do(func() {
		notes := s.cache.Notes.Hydrate(live(snap.Notes))
		histories := s.cache.NoteHistories.Hydrate(live(snap.NoteHistories))
		reflections := s.cache.Reflections.Hydrate(live(snap.Reflections))

		s.logger.Info().
			Str("func", "storageService.InitializeStorage").
			Int("notes", len(notes)).
			Int("note_histories", len(histories)).
			Int("reflections", len(reflections)).
			Msg("cache hydrated")

		for _, c := range models.Collections {
			s.changes.Publish(models.Change{Collection: c, Op: models.ChangeReload})
		}
	})

	return nil
}

// Initialized implements [StorageService].
func (s *storageService) Initialized() bool {
	return s.store.Initialized() && s.cache.Loaded()
}

// Flush implements [StorageService].
func (s *storageService) Flush(ctx context.Context) error {
	return s.store.Flush(ctx)
}

// live drops tombstones.
func live[T models.Record](recs []T) []T {
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		if !rec.IsDeleted() {
			out = append(out, rec)
		}
	}
	return out
}
