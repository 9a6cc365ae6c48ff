// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport used to pull journal records from
// the remote journal backend.
//
// The primary abstraction is [RemoteSource], which decouples the sync service
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPRemoteSource]) speaking the backend's JSON envelope
// ({"success": bool, "data": [...], "error": "..."}).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrUnauthorized] for 401).
package adapter

import (
	"context"
	"time"

	"github.com/MKhiriev/go-journal-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_source_mock.go -package=mock

// RemoteSource is the read side of the remote journal backend.
//
// Every Fetch method returns the records of one collection changed after
// since. A zero since requests the full live set. A non-zero since also
// returns tombstones (records with DeletedAt set) removed after that moment.
type RemoteSource interface {
	// SetToken stores the bearer token attached to every subsequent request.
	SetToken(token string)

	// Token returns the bearer token currently stored, or an empty string.
	Token() string

	FetchNotes(ctx context.Context, since time.Time) ([]models.Note, error)
	FetchNoteHistories(ctx context.Context, since time.Time) ([]models.NoteHistory, error)
	FetchReflections(ctx context.Context, since time.Time) ([]models.Reflection, error)
}
