// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-journal-keeper/internal/logger"
	"github.com/MKhiriev/go-journal-keeper/models"
)

// recordRepository is the SQLite-backed implementation of [RecordRepository].
// Every collection lives in its own table with the same layout.
type recordRepository struct {
	*DB
	logger *logger.Logger
}

// NewRecordRepository constructs a [RecordRepository] on top of db.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	return &recordRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *recordRepository) ReadAll(ctx context.Context, c models.Collection) ([]StoredRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildReadAllQuery(c)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.ReadAll").
			Str("collection", c.String()).
			Msg("failed to execute query for reading records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]StoredRecord, 0, 64)
	for rows.Next() {
		var (
			rec     StoredRecord
			payload string
		)
		if err = rows.Scan(&rec.ID, &payload, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			log.Err(err).
				Str("func", "recordRepository.ReadAll").
				Str("collection", c.String()).
				Msg("failed to scan record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		rec.Payload = []byte(payload)
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).
			Str("func", "recordRepository.ReadAll").
			Str("collection", c.String()).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

func (r *recordRepository) WriteOne(ctx context.Context, c models.Collection, rec StoredRecord) error {
	log := logger.FromContext(ctx)

	query, args, err := buildWriteOneQuery(c, rec)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "recordRepository.WriteOne").
			Str("collection", c.String()).
			Str("id", rec.ID).
			Msg("failed to upsert record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *recordRepository) DeleteOne(ctx context.Context, c models.Collection, id string) error {
	return r.delete(ctx, "recordRepository.DeleteOne", c, id)
}

func (r *recordRepository) DeleteMany(ctx context.Context, c models.Collection, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.delete(ctx, "recordRepository.DeleteMany", c, ids...)
}

func (r *recordRepository) delete(ctx context.Context, fn string, c models.Collection, ids ...string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteQuery(c, ids...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", fn).
			Str("collection", c.String()).
			Strs("ids", ids).
			Msg("failed to delete records")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, affErr := res.RowsAffected(); affErr == nil {
		log.Debug().
			Str("func", fn).
			Str("collection", c.String()).
			Int64("affected", affected).
			Msg("records deleted")
	}

	return nil
}

func (r *recordRepository) GetSyncToken(ctx context.Context, userKey string, c models.Collection) (time.Time, bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetSyncTokenQuery(userKey, c)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var token time.Time
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.GetSyncToken").
			Str("user_key", userKey).
			Str("collection", c.String()).
			Msg("failed to read sync token")
		return time.Time{}, false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return token, true, nil
}

func (r *recordRepository) SetSyncToken(ctx context.Context, userKey string, c models.Collection, token time.Time) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSetSyncTokenQuery(userKey, c, token)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "recordRepository.SetSyncToken").
			Str("user_key", userKey).
			Str("collection", c.String()).
			Msg("failed to store sync token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *recordRepository) ClearSyncTokens(ctx context.Context, userKey string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildClearSyncTokensQuery(userKey)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "recordRepository.ClearSyncTokens").
			Str("user_key", userKey).
			Msg("failed to clear sync tokens")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
