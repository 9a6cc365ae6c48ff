// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the raw, merged configuration of go-journal-keeper.
// It is populated from environment variables, command-line flags and an
// optional JSON file, in that order.
//
// Struct tags:
//   - envPrefix — prefix applied to nested env lookups (caarlos0/env).
//   - env       — environment variable name of a scalar field.
type StructuredConfig struct {
	// App holds domain behaviour switches.
	App App `envPrefix:"APP_"`

	// Log controls the zerolog output.
	Log Log `envPrefix:"LOG_"`

	// Storage holds the device-local durable store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the local HTTP bridge settings.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the remote source settings. An empty address means the
	// journal runs in local (guest) mode.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path of a JSON config file merged on top of
	// env and flags. Env: CONFIG, flags: -c / -config.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level behaviour.
type App struct {
	// Version is the semantic version reported by the bridge.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// ReflectionDedupPolicy selects which reflection survives deduplication:
	// "most_recent" (default) or "first_seen".
	// Env: APP_REFLECTION_DEDUP_POLICY
	ReflectionDedupPolicy string `env:"REFLECTION_DEDUP_POLICY"`

	// ReflectionNoteCategory is the note category from which reflections are
	// derived. Empty disables note-derived reflections.
	// Env: APP_REFLECTION_NOTE_CATEGORY
	ReflectionNoteCategory string `env:"REFLECTION_NOTE_CATEGORY"`
}

// Log holds logging settings.
type Log struct {
	// Level is a zerolog level name. Env: LOG_LEVEL
	Level string `env:"LEVEL"`

	// File, when set, redirects logs to that file. Env: LOG_FILE
	File string `env:"FILE"`
}

// Storage groups the durable storage settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds the SQLite connection settings.
type DB struct {
	// DSN is the SQLite data source name, e.g. "journal.db" or
	// "file:journal.db?_busy_timeout=5000".
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds the local bridge listen settings.
type Server struct {
	// HTTPAddress is the "host:port" the bridge listens on. Empty disables it.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
}

// Adapter holds the remote source settings.
type Adapter struct {
	// HTTPAddress is the base URL of the remote source.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every remote request. Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Token is a static bearer token used until the auth process supplies one.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN"`
}

// Workers holds background job settings.
type Workers struct {
	// SyncInterval is the period of the background resync job.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// GetStructuredConfig loads, merges and validates the configuration from
// env, the given command-line arguments and the optional JSON file.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
