// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllVariables(t *testing.T) {
	t.Setenv("APP_VERSION", "2.0.0")
	t.Setenv("APP_REFLECTION_DEDUP_POLICY", "first_seen")
	t.Setenv("APP_REFLECTION_NOTE_CATEGORY", "journal")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FILE", "/tmp/journal.log")
	t.Setenv("STORAGE_DB_DATABASE_URI", "env.db")
	t.Setenv("SERVER_ADDRESS", "localhost:8080")
	t.Setenv("ADAPTER_ADDRESS", "http://remote:8787")
	t.Setenv("ADAPTER_REQUEST_TIMEOUT", "20s")
	t.Setenv("ADAPTER_TOKEN", "env-token")
	t.Setenv("WORKERS_SYNC_INTERVAL", "90s")
	t.Setenv("CONFIG", "env.json")

	var cfg StructuredConfig
	require.NoError(t, parseEnv(&cfg))

	assert.Equal(t, "2.0.0", cfg.App.Version)
	assert.Equal(t, DedupPolicyFirstSeen, cfg.App.ReflectionDedupPolicy)
	assert.Equal(t, "journal", cfg.App.ReflectionNoteCategory)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "/tmp/journal.log", cfg.Log.File)
	assert.Equal(t, "env.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, "http://remote:8787", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 20*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "env-token", cfg.Adapter.Token)
	assert.Equal(t, 90*time.Second, cfg.Workers.SyncInterval)
	assert.Equal(t, "env.json", cfg.JSONFilePath)
}

func TestParseEnv_NothingSet(t *testing.T) {
	var cfg StructuredConfig
	require.NoError(t, parseEnv(&cfg))

	assert.Empty(t, cfg.Server.HTTPAddress)
	assert.Empty(t, cfg.Adapter.HTTPAddress)
}

func TestParseEnv_WrapsParseError(t *testing.T) {
	t.Setenv("WORKERS_SYNC_INTERVAL", "whenever")

	var cfg StructuredConfig
	err := parseEnv(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}
