// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-journal-keeper/models"
)

// StoredRecord is the durable form of a journal record: the JSON-encoded
// payload plus the columns the store indexes on.
type StoredRecord struct {
	ID        string
	Payload   []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecordRepository performs synchronous SQL I/O for the journal collections.
// Every method is safe for concurrent use.
type RecordRepository interface {
	// ReadAll returns every record of c in insertion order.
	ReadAll(ctx context.Context, c models.Collection) ([]StoredRecord, error)

	// WriteOne inserts rec or replaces the payload of the record with the
	// same id. The original insertion position and created_at are kept.
	WriteOne(ctx context.Context, c models.Collection, rec StoredRecord) error

	// DeleteOne removes the record with id. Missing ids are not an error.
	DeleteOne(ctx context.Context, c models.Collection, id string) error

	// DeleteMany removes every record whose id is in ids.
	DeleteMany(ctx context.Context, c models.Collection, ids []string) error

	// GetSyncToken returns the last remote sync position of userKey for c.
	// ok is false when no sync has completed yet.
	GetSyncToken(ctx context.Context, userKey string, c models.Collection) (token time.Time, ok bool, err error)

	// SetSyncToken stores the remote sync position of userKey for c.
	SetSyncToken(ctx context.Context, userKey string, c models.Collection, token time.Time) error

	// ClearSyncTokens forgets every sync position of userKey.
	ClearSyncTokens(ctx context.Context, userKey string) error
}
