// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-journal-keeper/models"
)

const syncTokensTable = "sync_tokens"

var (
	recordColumns = []string{"id", "payload", "created_at", "updated_at"}

	// sqlite understands "?" placeholders, which is the squirrel default.
	builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)
)

func tableFor(c models.Collection) (string, error) {
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCollection, c)
	}
	return c.String(), nil
}

func buildReadAllQuery(c models.Collection) (string, []any, error) {
	table, err := tableFor(c)
	if err != nil {
		return "", nil, err
	}

	return builder.
		Select(recordColumns...).
		From(table).
		OrderBy("rowid").
		ToSql()
}

func buildWriteOneQuery(c models.Collection, rec StoredRecord) (string, []any, error) {
	table, err := tableFor(c)
	if err != nil {
		return "", nil, err
	}

	return builder.
		Insert(table).
		Columns(recordColumns...).
		Values(rec.ID, string(rec.Payload), rec.CreatedAt.UTC(), rec.UpdatedAt.UTC()).
		Suffix("ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at").
		ToSql()
}

func buildDeleteQuery(c models.Collection, ids ...string) (string, []any, error) {
	table, err := tableFor(c)
	if err != nil {
		return "", nil, err
	}

	// squirrel renders a slice as id IN (?,?,...) and a scalar as id = ?.
	var where sq.Eq
	if len(ids) == 1 {
		where = sq.Eq{"id": ids[0]}
	} else {
		where = sq.Eq{"id": ids}
	}

	return builder.
		Delete(table).
		Where(where).
		ToSql()
}

func buildGetSyncTokenQuery(userKey string, c models.Collection) (string, []any, error) {
	return builder.
		Select("token").
		From(syncTokensTable).
		Where(sq.Eq{"user_key": userKey}).
		Where(sq.Eq{"collection": c.String()}).
		ToSql()
}

func buildSetSyncTokenQuery(userKey string, c models.Collection, token time.Time) (string, []any, error) {
	return builder.
		Insert(syncTokensTable).
		Columns("user_key", "collection", "token").
		Values(userKey, c.String(), token.UTC()).
		Suffix("ON CONFLICT(user_key, collection) DO UPDATE SET token = excluded.token").
		ToSql()
}

func buildClearSyncTokensQuery(userKey string) (string, []any, error) {
	return builder.
		Delete(syncTokensTable).
		Where(sq.Eq{"user_key": userKey}).
		ToSql()
}
