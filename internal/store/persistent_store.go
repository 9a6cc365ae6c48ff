// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/go-journal-keeper/internal/logger"
	"github.com/MKhiriev/go-journal-keeper/internal/workers"
	"github.com/MKhiriev/go-journal-keeper/models"
)

// Snapshot is the durable state of every collection as loaded by
// [PersistentStore.Initialize].
type Snapshot struct {
	Notes         []models.Note
	NoteHistories []models.NoteHistory
	Reflections   []models.Reflection
}

// ErrorHandler receives every durable write that failed.
type ErrorHandler func(failure *WriteFailure)

// Option configures a [PersistentStore].
type Option func(*PersistentStore)

// WithErrorHandler installs h as the write failure channel. Failures are
// always logged; h is called in addition, from the writing goroutine.
func WithErrorHandler(h ErrorHandler) Option {
	return func(s *PersistentStore) {
		s.onError = h
	}
}

// WithWriteTimeout bounds every queued durable write.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *PersistentStore) {
		s.writeTimeout = d
	}
}

// PersistentStore is the only component performing durable I/O. Reads are
// synchronous. Writes are fire-and-forget: they are queued per record and
// executed in enqueue order for the same collection and id.
type PersistentStore struct {
	repo  RecordRepository
	queue *workers.KeyedQueue

	group    singleflight.Group
	mu       sync.RWMutex
	snapshot *Snapshot

	onError      ErrorHandler
	writeTimeout time.Duration

	// ctx outlives individual callers: queued writes must not be cancelled
	// when the request that issued them returns.
	ctx    context.Context
	cancel context.CancelFunc
	closer func() error

	logger *logger.Logger
}

// NewPersistentStore builds a store on top of repo.
func NewPersistentStore(repo RecordRepository, log *logger.Logger, opts ...Option) *PersistentStore {
	ctx, cancel := context.WithCancel(log.WithContext(context.Background()))

	s := &PersistentStore{
		repo:         repo,
		queue:        workers.NewKeyedQueue(log),
		writeTimeout: 30 * time.Second,
		ctx:          ctx,
		cancel:       cancel,
		logger:       log,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Initialize loads every collection. The first successful load is memoized
// and returned to later callers without I/O; concurrent callers share one
// load. A failed load is not memoized.
func (s *PersistentStore) Initialize(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	snap := s.snapshot
	s.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}

	v, err, shared := s.group.Do("initialize", func() (any, error) {
		s.mu.RLock()
		done := s.snapshot
		s.mu.RUnlock()
		if done != nil {
			return done, nil
		}

		loaded, err := s.load(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.snapshot = loaded
		s.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		s.logger.Err(err).
			Str("func", "PersistentStore.Initialize").
			Bool("shared", shared).
			Msg("failed to load durable state")
		return nil, fmt.Errorf("%w: %w", ErrPersistenceLoad, err)
	}

	return v.(*Snapshot), nil
}

// Initialized reports whether a load has completed successfully.
func (s *PersistentStore) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot != nil
}

func (s *PersistentStore) load(ctx context.Context) (*Snapshot, error) {
	notes, err := ReadAll[models.Note](ctx, s, models.NotesCollection)
	if err != nil {
		return nil, err
	}
	histories, err := ReadAll[models.NoteHistory](ctx, s, models.NoteHistoriesCollection)
	if err != nil {
		return nil, err
	}
	reflections, err := ReadAll[models.Reflection](ctx, s, models.ReflectionsCollection)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("func", "PersistentStore.load").
		Int("notes", len(notes)).
		Int("note_histories", len(histories)).
		Int("reflections", len(reflections)).
		Msg("durable state loaded")

	return &Snapshot{
		Notes:         notes,
		NoteHistories: histories,
		Reflections:   reflections,
	}, nil
}

// ReadAll decodes every durable record of c into T.
func ReadAll[T models.Record](ctx context.Context, s *PersistentStore, c models.Collection) ([]T, error) {
	rows, err := s.repo.ReadAll(ctx, c)
	if err != nil {
		return nil, err
	}

	return decodeAll[T](rows)
}

func decodeAll[T models.Record](rows []StoredRecord) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		var rec T
		if err := json.Unmarshal(row.Payload, &rec); err != nil {
			return nil, fmt.Errorf("%w (id=%s): %w", ErrDecodingRecord, row.ID, err)
		}
		out = append(out, rec)
	}

	return out, nil
}

// WriteOne queues an upsert of rec into c.
func (s *PersistentStore) WriteOne(c models.Collection, rec models.Record) {
	id := rec.RecordID()

	payload, err := json.Marshal(rec)
	if err != nil {
		s.fail(&WriteFailure{Collection: c, ID: id, Op: OpWriteOne, Err: fmt.Errorf("%w: %w", ErrEncodingRecord, err)})
		return
	}

	stamp := rec.RecordTime()
	stored := StoredRecord{ID: id, Payload: payload, CreatedAt: stamp, UpdatedAt: stamp}

	s.enqueue(recordKey(c, id), c, id, OpWriteOne, func(ctx context.Context) error {
		return s.repo.WriteOne(ctx, c, stored)
	})
}

// DeleteOne queues the removal of id from c.
func (s *PersistentStore) DeleteOne(c models.Collection, id string) {
	s.enqueue(recordKey(c, id), c, id, OpDeleteOne, func(ctx context.Context) error {
		return s.repo.DeleteOne(ctx, c, id)
	})
}

// DeleteMany queues the removal of every durable record of c matching pred.
// pred is evaluated against the durable rows when the job runs. Writes still
// queued under a record key at that moment are not seen; callers that know
// the ids of such records pair DeleteMany with DeleteOne.
func DeleteMany[T models.Record](s *PersistentStore, c models.Collection, pred func(T) bool) {
	s.enqueue(collectionKey(c), c, "", OpDeleteMany, func(ctx context.Context) error {
		records, err := ReadAll[T](ctx, s, c)
		if err != nil {
			return err
		}

		ids := make([]string, 0, len(records))
		for _, rec := range records {
			if pred(rec) {
				ids = append(ids, rec.RecordID())
			}
		}

		return s.repo.DeleteMany(ctx, c, ids)
	})
}

// GetSyncToken returns the stored remote sync position of userKey for c.
func (s *PersistentStore) GetSyncToken(ctx context.Context, userKey string, c models.Collection) (time.Time, bool, error) {
	return s.repo.GetSyncToken(ctx, userKey, c)
}

// SetSyncToken stores the remote sync position of userKey for c.
func (s *PersistentStore) SetSyncToken(ctx context.Context, userKey string, c models.Collection, token time.Time) error {
	return s.repo.SetSyncToken(ctx, userKey, c, token)
}

// ClearSyncTokens forgets every remote sync position of userKey.
func (s *PersistentStore) ClearSyncTokens(ctx context.Context, userKey string) error {
	return s.repo.ClearSyncTokens(ctx, userKey)
}

// Flush blocks until every queued write has completed or ctx is done.
func (s *PersistentStore) Flush(ctx context.Context) error {
	return s.queue.Flush(ctx)
}

// SetCloser registers the function releasing the underlying connection on
// Close.
func (s *PersistentStore) SetCloser(closer func() error) {
	s.closer = closer
}

// Close drains the write queue and releases the database.
func (s *PersistentStore) Close(ctx context.Context) error {
	flushErr := s.queue.Close(ctx)
	s.cancel()

	var closeErr error
	if s.closer != nil {
		closeErr = s.closer()
	}

	return errors.Join(flushErr, closeErr)
}

func (s *PersistentStore) enqueue(key string, c models.Collection, id string, op WriteOp, write func(ctx context.Context) error) {
	err := s.queue.Enqueue(key, func() {
		ctx, cancel := context.WithTimeout(s.ctx, s.writeTimeout)
		defer cancel()

		if err := write(ctx); err != nil {
			s.fail(&WriteFailure{Collection: c, ID: id, Op: op, Err: err})
		}
	})
	if errors.Is(err, workers.ErrQueueClosed) {
		s.fail(&WriteFailure{Collection: c, ID: id, Op: op, Err: ErrStoreClosed})
	}
}

func (s *PersistentStore) fail(failure *WriteFailure) {
	s.logger.Err(failure.Err).
		Str("func", "PersistentStore.write").
		Str("collection", failure.Collection.String()).
		Str("id", failure.ID).
		Str("op", string(failure.Op)).
		Msg("durable write failed, cache keeps the change")

	if s.onError != nil {
		s.onError(failure)
	}
}

func recordKey(c models.Collection, id string) string {
	return c.String() + "/" + id
}

func collectionKey(c models.Collection) string {
	return c.String() + "/*"
}
