// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-journal-keeper/internal/logger"
)

type syncJob struct {
	syncService SyncService
	interval    time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewSyncJob creates a syncJob that calls syncService.Resync on a ticker. The
// job is idle until Start or Run is called; Run uses interval.
func NewSyncJob(syncService SyncService, interval time.Duration, logger *logger.Logger) SyncJob {
	return &syncJob{syncService: syncService, interval: interval, logger: logger}
}

// Start implements SyncJob. It stops any previously running job, then
// launches a background goroutine that calls Resync every interval. If
// interval is zero or negative it defaults to 5 minutes. The goroutine exits
// when ctx is cancelled or Stop is called. A failed round is logged and the
// next tick tries again.
func (j *syncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := j.syncService.Resync(jobCtx); err != nil && jobCtx.Err() == nil {
					j.logger.Err(err).Str("func", "syncJob.Start").Msg("periodic resync failed")
				}
			}
		}
	}()
}

// Stop implements SyncJob. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is not
// running (no-op in that case).
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// Run implements SyncJob and [workers.Worker].
func (j *syncJob) Run(ctx context.Context) {
	j.Start(ctx, j.interval)
	<-ctx.Done()
	j.Stop()
}
