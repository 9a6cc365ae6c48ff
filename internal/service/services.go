// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-journal-keeper/internal/adapter"
	"github.com/MKhiriev/go-journal-keeper/internal/authsync"
	"github.com/MKhiriev/go-journal-keeper/internal/cache"
	"github.com/MKhiriev/go-journal-keeper/internal/config"
	"github.com/MKhiriev/go-journal-keeper/internal/logger"
	"github.com/MKhiriev/go-journal-keeper/internal/notify"
	"github.com/MKhiriev/go-journal-keeper/internal/store"
	"github.com/MKhiriev/go-journal-keeper/internal/utils"
	"github.com/MKhiriev/go-journal-keeper/internal/validators"
	"github.com/MKhiriev/go-journal-keeper/models"
)

// JournalServices is the boundary used by UI hooks: synchronous getters,
// mutation entry points, the async storage bootstrap and the auth sync
// primitives.
type JournalServices struct {
	Storage            StorageService
	NoteService        NoteService
	NoteHistoryService NoteHistoryService
	ReflectionService  ReflectionService
	SyncService        SyncService
	SyncJob            SyncJob
	AppInfoService     AppInfoService

	cache   *cache.Cache
	machine *authsync.Machine
	changes *notify.Bus[models.Change]
}

// NewJournalServices builds every service over st. remote may be nil, in
// which case the journal runs in local (guest) mode and no SyncJob is built.
func NewJournalServices(cfg *config.ClientConfig, st *store.PersistentStore, remote adapter.RemoteSource, logger *logger.Logger) (*JournalServices, error) {
	policy, err := PolicyByName(cfg.App.ReflectionDedupPolicy)
	if err != nil {
		return nil, err
	}
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	c := cache.New()
	changes := notify.NewBus[models.Change]("changes", logger)
	machine := authsync.NewMachine(logger)
	validator := validators.NewJournalValidator()
	ids := utils.NewUUIDGenerator()

	var sources []ReflectionSource
	if cfg.App.ReflectionNoteCategory != "" {
		sources = append(sources, NewNoteReflectionSource(c.Notes, cfg.App.ReflectionNoteCategory))
	}

	storage := NewStorageService(c, st, changes, logger)
	histories := newNoteHistoryService(c, st, changes, ids, logger)
	notes := newNoteService(c, st, histories, changes, validator, ids, logger)
	reflections := newReflectionService(c, storage, st, changes, NewDeduplicator(policy), validator, ids, logger, sources...)
	syncSvc := newSyncService(machine, storage, c, st, histories, changes, remote, logger)

	services := &JournalServices{
		Storage:            storage,
		NoteService:        notes,
		NoteHistoryService: histories,
		ReflectionService:  reflections,
		SyncService:        syncSvc,
		AppInfoService:     appInfo,
		cache:              c,
		machine:            machine,
		changes:            changes,
	}
	if remote != nil {
		services.SyncJob = NewSyncJob(syncSvc, cfg.Workers.SyncInterval, logger)
	}

	return services, nil
}

// InitializeStorage loads durable state into the cache once.
func (s *JournalServices) InitializeStorage(ctx context.Context) error {
	return s.Storage.InitializeStorage(ctx)
}

// RegisterListener adds fn to the change bus and returns its unregister
// function.
func (s *JournalServices) RegisterListener(fn notify.Listener[models.Change]) (unregister func()) {
	return s.changes.Register(fn)
}

// SubscribeToAuthSync calls fn on every auth sync transition. Pass
// [authsync.WithCurrentStatus] to receive the current status first.
func (s *JournalServices) SubscribeToAuthSync(fn func(models.AuthSyncStatus), opts ...authsync.SubscribeOption) (unsubscribe func()) {
	return s.machine.Subscribe(fn, opts...)
}

// GetAuthSyncStatus returns the current auth sync status.
func (s *JournalServices) GetAuthSyncStatus() models.AuthSyncStatus {
	return s.machine.Status()
}

// WaitForAuthSync blocks until the auth sync is ready or failed.
func (s *JournalServices) WaitForAuthSync(ctx context.Context) error {
	return s.machine.WaitForReady(ctx)
}
