// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-journal-keeper/internal/logger"
)

// ErrQueueClosed is returned by Enqueue after Close has been called.
var ErrQueueClosed = errors.New("queue is closed")

// Job is a unit of work executed by a [KeyedQueue].
type Job func()

// KeyedQueue executes jobs asynchronously. Jobs sharing a key run one at a
// time in enqueue order; jobs with different keys run concurrently. A
// goroutine exists per key only while that key has pending jobs.
type KeyedQueue struct {
	mu      sync.Mutex
	pending map[string][]Job
	closed  bool

	// inFlight counts jobs enqueued and not yet finished. idle is closed
	// and replaced whenever it drops to zero.
	inFlight int
	idle     chan struct{}

	logger *logger.Logger
}

// NewKeyedQueue returns an empty, open queue.
func NewKeyedQueue(log *logger.Logger) *KeyedQueue {
	return &KeyedQueue{
		pending: make(map[string][]Job),
		idle:    make(chan struct{}),
		logger:  log,
	}
}

// Enqueue schedules job under key and returns immediately.
func (q *KeyedQueue) Enqueue(key string, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	q.inFlight++
	jobs, active := q.pending[key]
	q.pending[key] = append(jobs, job)
	if !active {
		go q.drain(key)
	}

	return nil
}

// Pending returns the number of jobs not yet finished for key.
func (q *KeyedQueue) Pending(key string) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.pending[key])
}

// Flush blocks until every job enqueued so far has finished or ctx is done.
func (q *KeyedQueue) Flush(ctx context.Context) error {
	q.mu.Lock()
	if q.inFlight == 0 {
		q.mu.Unlock()
		return nil
	}
	idle := q.idle
	q.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("flush queue: %w", ctx.Err())
	}
}

// Close rejects further jobs and waits for the pending ones.
func (q *KeyedQueue) Close(ctx context.Context) error {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	return q.Flush(ctx)
}

func (q *KeyedQueue) drain(key string) {
	for {
		q.mu.Lock()
		jobs := q.pending[key]
		if len(jobs) == 0 {
			delete(q.pending, key)
			q.mu.Unlock()
			return
		}
		job := jobs[0]
		jobs[0] = nil
		q.pending[key] = jobs[1:]
		q.mu.Unlock()

		q.run(key, job)
	}
}

func (q *KeyedQueue) done() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.inFlight--
	if q.inFlight == 0 {
		close(q.idle)
		q.idle = make(chan struct{})
	}
}

func (q *KeyedQueue) run(key string, job Job) {
	defer q.done()
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error().
				Str("func", "KeyedQueue.run").
				Str("key", key).
				Interface("panic", r).
				Msg("queued job panicked")
		}
	}()

	job()
}
