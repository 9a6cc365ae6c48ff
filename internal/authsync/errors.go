// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package authsync

import "errors"

var (
	// ErrAuthSyncFailed is wrapped by every error captured in the error state.
	ErrAuthSyncFailed = errors.New("auth sync failed")

	// ErrInvalidTransition is returned when Complete is called while no sync
	// is in flight.
	ErrInvalidTransition = errors.New("invalid auth sync transition")
)
