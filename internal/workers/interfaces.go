// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the background machinery of the journal: long-lived
// workers bound to the application context, and the keyed queue that
// serialises durable writes per record.
package workers

import "context"

// Worker is a background job bound to a context. Run blocks until ctx is
// cancelled and the worker has released its resources.
//
// Example implementation:
//
//	type tick struct{}
//
//	func (tick) Run(ctx context.Context) {
//	    <-ctx.Done()
//	}
type Worker interface {
	Run(ctx context.Context)
}
