// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks the raw merged config. Only values that can never become
// valid through defaults are rejected here.
func (cfg *StructuredConfig) validate() error {
	if cfg.Adapter.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request timeout", ErrInvalidAdapterConfigs)
	}
	if cfg.Workers.SyncInterval < 0 {
		return fmt.Errorf("%w: negative sync interval", ErrInvalidWorkerConfigs)
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	switch cfg.App.ReflectionDedupPolicy {
	case DedupPolicyMostRecent, DedupPolicyFirstSeen:
	default:
		return fmt.Errorf("%w: unknown reflection dedup policy %q", ErrInvalidAppConfigs, cfg.App.ReflectionDedupPolicy)
	}

	if cfg.Adapter.RequestTimeout < 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
