// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-journal-keeper/models"
)

// Persistence failure classes. Callers should use [errors.Is] to match
// against these values.
var (
	// ErrPersistenceLoad is wrapped by [PersistentStore.Initialize] when the
	// durable state could not be read. The in-memory cache is left untouched
	// and the caller may retry.
	ErrPersistenceLoad = errors.New("persistence load failure")

	// ErrPersistenceWrite is matched by every [*WriteFailure].
	ErrPersistenceWrite = errors.New("persistence write failure")

	// ErrUnknownCollection is returned when a collection name does not map to
	// a table.
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrStoreClosed is reported for writes issued after Close.
	ErrStoreClosed = errors.New("store is closed")
)

// Low-level database operation errors.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrExecutingStatement   = errors.New("failed to execute statement")
	ErrScanningRows         = errors.New("failed to scan record rows")
	ErrEncodingRecord       = errors.New("failed to encode record")
	ErrDecodingRecord       = errors.New("failed to decode record")
)

// WriteOp names the durable operation that failed.
type WriteOp string

const (
	OpWriteOne   WriteOp = "write_one"
	OpDeleteOne  WriteOp = "delete_one"
	OpDeleteMany WriteOp = "delete_many"
)

// WriteFailure describes a durable write that did not complete. The cache
// already reflects the change; the failure is reported, never rolled back.
type WriteFailure struct {
	Collection models.Collection
	// ID is empty for [OpDeleteMany].
	ID  string
	Op  WriteOp
	Err error
}

func (f *WriteFailure) Error() string {
	if f.ID == "" {
		return fmt.Sprintf("%s %s: %v", f.Op, f.Collection, f.Err)
	}
	return fmt.Sprintf("%s %s/%s: %v", f.Op, f.Collection, f.ID, f.Err)
}

func (f *WriteFailure) Unwrap() []error {
	return []error{ErrPersistenceWrite, f.Err}
}
