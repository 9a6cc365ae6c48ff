// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package notify implements the change notification bus: an ordered list of
// listeners called synchronously on every publish, each isolated from the
// failures of the others.
package notify

import (
	"fmt"
	"sync"

	"github.com/MKhiriev/go-journal-keeper/internal/logger"
)

// Listener receives every published event. A returned error or a panic is
// reported as a [ListenerFailure] and never reaches the publisher.
type Listener[T any] func(event T) error

// ListenerFailure describes a listener that failed while handling an event.
type ListenerFailure struct {
	Topic    string
	Listener uint64
	Err      error
}

func (f *ListenerFailure) Error() string {
	return fmt.Sprintf("listener %d on %s failed: %v", f.Listener, f.Topic, f.Err)
}

func (f *ListenerFailure) Unwrap() error {
	return f.Err
}

type registration[T any] struct {
	id uint64
	fn Listener[T]
}

// Bus dispatches events of type T to registered listeners in registration
// order.
type Bus[T any] struct {
	topic string

	mu        sync.RWMutex
	nextID    uint64
	listeners []registration[T]

	onFailure func(*ListenerFailure)
	logger    *logger.Logger
}

// NewBus returns a bus; topic names it in logs.
func NewBus[T any](topic string, log *logger.Logger) *Bus[T] {
	return &Bus[T]{
		topic:  topic,
		logger: log,
	}
}

// OnFailure installs a hook called for every listener failure after it has
// been logged.
func (b *Bus[T]) OnFailure(hook func(*ListenerFailure)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.onFailure = hook
}

// Register adds fn and returns the function removing it. Calling the
// returned function more than once has no further effect.
func (b *Bus[T]) Register(fn Listener[T]) (unregister func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, registration[T]{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

// Len returns the number of registered listeners.
func (b *Bus[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.listeners)
}

// Publish calls every listener registered at the moment of the call, in
// registration order, and returns once all of them have run.
func (b *Bus[T]) Publish(event T) {
	b.mu.RLock()
	listeners := make([]registration[T], len(b.listeners))
	copy(listeners, b.listeners)
	hook := b.onFailure
	b.mu.RUnlock()

	for _, l := range listeners {
		if err := b.call(l.fn, event); err != nil {
			failure := &ListenerFailure{Topic: b.topic, Listener: l.id, Err: err}
			b.logger.Err(err).
				Str("func", "Bus.Publish").
				Str("topic", b.topic).
				Uint64("listener", l.id).
				Msg("listener failed")
			if hook != nil {
				hook(failure)
			}
		}
	}
}

func (b *Bus[T]) call(fn Listener[T], event T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	return fn(event)
}

func (b *Bus[T]) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, l := range b.listeners {
		if l.id == id {
			b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
			return
		}
	}
}
