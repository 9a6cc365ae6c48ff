// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// Dedup policy names accepted by [App.ReflectionDedupPolicy].
const (
	DedupPolicyMostRecent = "most_recent"
	DedupPolicyFirstSeen  = "first_seen"
)

// Defaults applied by [GetClientConfig] to unset fields.
const (
	DefaultDSN            = "journal.db"
	DefaultSyncInterval   = 5 * time.Minute
	DefaultRequestTimeout = 30 * time.Second
)

// ClientApp holds the domain switches of the running journal.
type ClientApp struct {
	Version                string
	ReflectionDedupPolicy  string
	ReflectionNoteCategory string
}

// ClientAdapter holds the remote source settings.
type ClientAdapter struct {
	// HTTPAddress is empty in local (guest) mode.
	HTTPAddress    string
	RequestTimeout time.Duration
	Token          string
}

// ClientDB holds the local SQLite settings.
type ClientDB struct {
	DSN string
}

// ClientStorage groups storage settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientServer holds the local bridge settings.
type ClientServer struct {
	// HTTPAddress is empty when the bridge is disabled.
	HTTPAddress string
}

// ClientWorkers holds background job settings.
type ClientWorkers struct {
	SyncInterval time.Duration
}

// ClientLog holds logging settings.
type ClientLog struct {
	Level string
	File  string
}

// ClientConfig is the runtime view of the configuration with defaults applied.
type ClientConfig struct {
	App     ClientApp
	Log     ClientLog
	Adapter ClientAdapter
	Storage ClientStorage
	Server  ClientServer
	Workers ClientWorkers
}

// GetClientConfig loads the structured configuration from env, args and the
// optional JSON file, projects it into a [ClientConfig], applies defaults
// and validates the result.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

// NewClientConfig projects cfg into a [ClientConfig] with defaults applied.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App: ClientApp{
			Version:                cfg.App.Version,
			ReflectionDedupPolicy:  cfg.App.ReflectionDedupPolicy,
			ReflectionNoteCategory: cfg.App.ReflectionNoteCategory,
		},
		Log: ClientLog{
			Level: cfg.Log.Level,
			File:  cfg.Log.File,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			Token:          cfg.Adapter.Token,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Server: ClientServer{
			HTTPAddress: cfg.Server.HTTPAddress,
		},
		Workers: ClientWorkers{
			SyncInterval: cfg.Workers.SyncInterval,
		},
	}

	if clientCfg.App.ReflectionDedupPolicy == "" {
		clientCfg.App.ReflectionDedupPolicy = DedupPolicyMostRecent
	}
	if clientCfg.Storage.DB.DSN == "" {
		clientCfg.Storage.DB.DSN = DefaultDSN
	}
	if clientCfg.Workers.SyncInterval == 0 {
		clientCfg.Workers.SyncInterval = DefaultSyncInterval
	}
	if clientCfg.Adapter.HTTPAddress != "" && clientCfg.Adapter.RequestTimeout == 0 {
		clientCfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}

	return clientCfg
}

// IsCloudMode reports whether a remote source is configured.
func (c *ClientConfig) IsCloudMode() bool {
	return c.Adapter.HTTPAddress != ""
}
