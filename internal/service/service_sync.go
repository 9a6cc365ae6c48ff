// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-journal-keeper/internal/adapter"
	"github.com/MKhiriev/go-journal-keeper/internal/authsync"
	"github.com/MKhiriev/go-journal-keeper/internal/cache"
	"github.com/MKhiriev/go-journal-keeper/internal/logger"
	"github.com/MKhiriev/go-journal-keeper/internal/notify"
	"github.com/MKhiriev/go-journal-keeper/internal/store"
	"github.com/MKhiriev/go-journal-keeper/models"
)

// syncTokenBuffer is subtracted from the newest remote timestamp before it is
// stored, so records written in the same second are pulled again.
const syncTokenBuffer = time.Second

type syncService struct {
	machine   *authsync.Machine
	storage   StorageService
	cache     *cache.Cache
	store     *store.PersistentStore
	histories *noteHistoryService
	changes   *notify.Bus[models.Change]

	// remote is nil in local mode.
	remote adapter.RemoteSource

	mu   sync.Mutex
	user *models.User

	logger *logger.Logger
}

func newSyncService(machine *authsync.Machine, storage StorageService, c *cache.Cache, st *store.PersistentStore,
	histories *noteHistoryService, changes *notify.Bus[models.Change], remote adapter.RemoteSource, logger *logger.Logger) *syncService {
	return &syncService{
		machine:   machine,
		storage:   storage,
		cache:     c,
		store:     st,
		histories: histories,
		changes:   changes,
		remote:    remote,
		logger:    logger,
	}
}

// HandleAuthChange implements [SyncService].
func (s *syncService) HandleAuthChange(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	if user != nil {
		u := *user
		user = &u
	}
	s.user = user
	s.mu.Unlock()

	if s.remote != nil {
		token := ""
		if user != nil {
			token = user.Token
		}
		s.remote.SetToken(token)
	}

	return s.run(ctx, user)
}

// Resync implements [SyncService].
func (s *syncService) Resync(ctx context.Context) error {
	s.mu.Lock()
	user := s.user
	s.mu.Unlock()

	return s.run(ctx, user)
}

// run drives one sync round for user through the state machine. If a round is
// already in flight for the same user the call joins it; a round for another
// user is awaited and then followed by a round for user.
func (s *syncService) run(ctx context.Context, user *models.User) error {
	key := models.UserKey(user)
	for !s.machine.Start(user, s.cloudMode(user)) {
		waitErr := s.machine.WaitForReady(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if models.UserKey(s.machine.Status().User) == key {
			return waitErr
		}
	}

	err := s.reconcile(ctx, user)
	if cErr := s.machine.Complete(err); cErr != nil {
		s.logger.Err(cErr).Str("func", "syncService.run").Msg("failed to complete auth sync")
	}
	if err != nil {
		return fmt.Errorf("%w: %w", authsync.ErrAuthSyncFailed, err)
	}
	return nil
}

func (s *syncService) cloudMode(user *models.User) bool {
	return s.remote != nil && user != nil
}

// reconcile makes the cache trustworthy for user: durable state is loaded
// and, in cloud mode, every collection is pulled from the remote source.
func (s *syncService) reconcile(ctx context.Context, user *models.User) error {
	if err := s.storage.InitializeStorage(ctx); err != nil {
		return err
	}
	if !s.cloudMode(user) {
		return nil
	}

	userKey := models.UserKey(user)

	_, notesErr := pull(ctx, s, userKey, models.NotesCollection, s.cache.Notes, s.remote.FetchNotes,
		func(removed []string) {
			for _, id := range removed {
				s.histories.deleteByNoteID(ctx, id)
			}
		})
	_, historiesErr := pull(ctx, s, userKey, models.NoteHistoriesCollection, s.cache.NoteHistories, s.remote.FetchNoteHistories, nil)
	_, reflectionsErr := pull(ctx, s, userKey, models.ReflectionsCollection, s.cache.Reflections, s.remote.FetchReflections, nil)

	return errors.Join(notesErr, historiesErr, reflectionsErr)
}

// pull fetches the changes of one collection since the stored sync token and
// merges them into the cache: tombstones remove the record, other records
// replace the cached one unless the cached one is newer. Every change is
// written back to the store and announced with one reload [models.Change].
func pull[T models.Record](
	ctx context.Context,
	s *syncService,
	userKey string,
	c models.Collection,
	coll *cache.Collection[T],
	fetch func(ctx context.Context, since time.Time) ([]T, error),
	onRemoved func(ids []string),
) ([]string, error) {
	log := logger.FromContext(ctx)

	since, _, err := s.store.GetSyncToken(ctx, userKey, c)
	if err != nil {
		return nil, fmt.Errorf("get %s sync token: %w", c, err)
	}

	incoming, err := fetch(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", c, err)
	}

	var (
		changed []string
		removed []string
		newest  time.Time
	)
	for _, rec := range incoming {
		id := rec.RecordID()
		if t := rec.RecordTime(); t.After(newest) {
			newest = t
		}

		if rec.IsDeleted() {
			if _, ok := coll.Get(id); ok {
				coll.Remove(id)
				removed = append(removed, id)
			}
			s.store.DeleteOne(c, id)
			continue
		}

		if existing, ok := coll.Get(id); ok && !newer(rec, existing) {
			continue
		}
		coll.Upsert(rec)
		s.store.WriteOne(c, rec)
		changed = append(changed, id)
	}

	if onRemoved != nil && len(removed) > 0 {
		onRemoved(removed)
	}

	if !newest.IsZero() {
		if err = s.store.SetSyncToken(ctx, userKey, c, newest.Add(-syncTokenBuffer)); err != nil {
			return nil, fmt.Errorf("set %s sync token: %w", c, err)
		}
	}

	touched := append(changed, removed...)
	s.changes.Publish(models.Change{Collection: c, Op: models.ChangeReload, IDs: touched})

	log.Info().
		Str("func", "syncService.pull").
		Str("collection", c.String()).
		Str("user_key", userKey).
		Time("since", since).
		Int("incoming", len(incoming)).
		Int("changed", len(changed)).
		Int("removed", len(removed)).
		Msg("remote changes merged")

	return touched, nil
}

// newer reports whether incoming should replace existing. Missing timestamps
// on either side let the incoming record through.
func newer[T models.Record](incoming, existing T) bool {
	in, cur := incoming.RecordTime(), existing.RecordTime()
	return in.IsZero() || cur.IsZero() || in.After(cur)
}
