// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
)

// Workers runs a fixed set of workers side by side.
type Workers struct {
	workers []Worker
}

// New groups the given workers; nil entries are skipped.
func New(ws ...Worker) *Workers {
	list := make([]Worker, 0, len(ws))
	for _, w := range ws {
		if w != nil {
			list = append(list, w)
		}
	}
	return &Workers{workers: list}
}

// Run starts every worker in its own goroutine and blocks until all of them
// have returned, which happens once ctx is cancelled.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Add(1)
		go func(worker Worker) {
			defer wg.Done()
			worker.Run(ctx)
		}(worker)
	}
	wg.Wait()
}
