// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package authsync tracks the authentication/remote-sync process and lets
// callers wait until cached data may be trusted.
//
// Transitions:
//
//	idle    -> syncing   Start
//	syncing -> ready     Complete(nil)
//	syncing -> error     Complete(err)
//	error   -> syncing   Start (retry)
//	ready   -> syncing   Start (re-auth or re-sync)
package authsync

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-journal-keeper/internal/logger"
	"github.com/MKhiriev/go-journal-keeper/internal/notify"
	"github.com/MKhiriev/go-journal-keeper/models"
)

// round is one syncing period. done is closed, and err fixed, by the
// terminal transition ending it.
type round struct {
	done chan struct{}
	err  error
}

func newRound() *round {
	return &round{done: make(chan struct{})}
}

// Machine is the process-wide auth sync state machine. The zero value is not
// usable; construct it with NewMachine.
//
// Notifications are queued under mu in transition order and delivered by a
// single goroutine at a time, so every subscriber sees the transitions in
// the order they happened.
type Machine struct {
	mu     sync.Mutex
	status models.AuthSyncStatus
	round  *round

	outbox      []func()
	dispatching bool

	subscribers *notify.Bus[models.AuthSyncStatus]
	logger      *logger.Logger
}

// SubscribeOption configures [Machine.Subscribe].
type SubscribeOption func(*subscribeOptions)

type subscribeOptions struct {
	withCurrent bool
}

// WithCurrentStatus makes Subscribe deliver the current status to the new
// subscriber before any later transition.
func WithCurrentStatus() SubscribeOption {
	return func(o *subscribeOptions) {
		o.withCurrent = true
	}
}

// NewMachine returns a machine in the idle state.
func NewMachine(log *logger.Logger) *Machine {
	return &Machine{
		status:      models.AuthSyncStatus{State: models.AuthSyncIdle},
		round:       newRound(),
		subscribers: notify.NewBus[models.AuthSyncStatus]("auth_sync", log),
		logger:      log,
	}
}

// Status returns a snapshot of the current status.
func (m *Machine) Status() models.AuthSyncStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.snapshotLocked()
}

// Start moves the machine to syncing for user. It reports false, and changes
// nothing, when a sync is already in flight: the caller joins it.
func (m *Machine) Start(user *models.User, cloudMode bool) bool {
	m.mu.Lock()
	if m.status.State == models.AuthSyncSyncing {
		m.mu.Unlock()
		return false
	}

	from := m.status.State
	if from != models.AuthSyncIdle {
		// the previous round already released its waiters
		m.round = newRound()
	}
	m.status = models.AuthSyncStatus{
		State:           models.AuthSyncSyncing,
		User:            cloneUser(user),
		IsAuthenticated: user != nil,
		IsCloudMode:     cloudMode,
	}
	status := m.snapshotLocked()
	deliver := m.queueLocked(m.broadcast(status))
	m.mu.Unlock()

	m.logger.Info().
		Str("func", "Machine.Start").
		Str("from", string(from)).
		Str("state", string(status.State)).
		Str("user_key", models.UserKey(user)).
		Bool("cloud_mode", cloudMode).
		Msg("auth sync started")

	if deliver {
		m.dispatch()
	}
	return true
}

// Complete ends the in-flight sync: a nil err moves the machine to ready,
// anything else to error with err captured. Every waiter of the sync is
// released with the same result.
func (m *Machine) Complete(err error) error {
	m.mu.Lock()
	if m.status.State != models.AuthSyncSyncing {
		state := m.status.State
		m.mu.Unlock()
		return fmt.Errorf("%w: complete from %s", ErrInvalidTransition, state)
	}

	if err != nil {
		m.status.State = models.AuthSyncError
		m.status.Err = fmt.Errorf("%w: %w", ErrAuthSyncFailed, err)
	} else {
		m.status.State = models.AuthSyncReady
		m.status.Err = nil
	}
	r := m.round
	r.err = m.status.Err
	close(r.done)
	status := m.snapshotLocked()
	deliver := m.queueLocked(m.broadcast(status))
	m.mu.Unlock()

	if status.Err != nil {
		m.logger.Err(status.Err).
			Str("func", "Machine.Complete").
			Str("state", string(status.State)).
			Msg("auth sync failed")
	} else {
		m.logger.Info().
			Str("func", "Machine.Complete").
			Str("state", string(status.State)).
			Msg("auth sync completed")
	}

	if deliver {
		m.dispatch()
	}
	return nil
}

// Subscribe registers fn for every future transition and returns the
// function removing it. fn is not called with the current status unless
// [WithCurrentStatus] is given. A panicking subscriber is logged and does not
// affect the others.
func (m *Machine) Subscribe(fn func(models.AuthSyncStatus), opts ...SubscribeOption) (unsubscribe func()) {
	var o subscribeOptions
	for _, opt := range opts {
		opt(&o)
	}

	m.mu.Lock()
	unsubscribe = m.subscribers.Register(func(status models.AuthSyncStatus) error {
		fn(status)
		return nil
	})
	if !o.withCurrent {
		m.mu.Unlock()
		return unsubscribe
	}

	current := m.snapshotLocked()
	deliver := m.queueLocked(func() { m.replay(fn, current) })
	m.mu.Unlock()

	if deliver {
		m.dispatch()
	}
	return unsubscribe
}

// WaitForReady returns nil once the machine is ready and the captured error
// if it is, or becomes, errored. In idle or syncing it blocks until the next
// terminal transition or until ctx is done.
func (m *Machine) WaitForReady(ctx context.Context) error {
	m.mu.Lock()
	switch m.status.State {
	case models.AuthSyncReady:
		m.mu.Unlock()
		return nil
	case models.AuthSyncError:
		err := m.status.Err
		m.mu.Unlock()
		return err
	}
	r := m.round
	m.mu.Unlock()

	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Machine) broadcast(status models.AuthSyncStatus) func() {
	return func() { m.subscribers.Publish(status) }
}

// queueLocked appends a delivery and reports whether the caller must run
// dispatch. A transition made from inside a subscriber only queues: the
// running dispatch delivers it after the current one.
func (m *Machine) queueLocked(delivery func()) bool {
	m.outbox = append(m.outbox, delivery)
	if m.dispatching {
		return false
	}
	m.dispatching = true
	return true
}

func (m *Machine) dispatch() {
	for {
		m.mu.Lock()
		if len(m.outbox) == 0 {
			m.outbox = nil
			m.dispatching = false
			m.mu.Unlock()
			return
		}
		delivery := m.outbox[0]
		m.outbox[0] = nil
		m.outbox = m.outbox[1:]
		m.mu.Unlock()

		delivery()
	}
}

func (m *Machine) replay(fn func(models.AuthSyncStatus), status models.AuthSyncStatus) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error().
				Str("func", "Machine.Subscribe").
				Interface("panic", r).
				Msg("subscriber failed on current status")
		}
	}()

	fn(status)
}

func (m *Machine) snapshotLocked() models.AuthSyncStatus {
	status := m.status
	status.User = cloneUser(m.status.User)
	return status
}

func cloneUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}
