// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AuthSyncState is the state of the authentication/remote-sync process.
type AuthSyncState string

const (
	AuthSyncIdle    AuthSyncState = "idle"
	AuthSyncSyncing AuthSyncState = "syncing"
	AuthSyncReady   AuthSyncState = "ready"
	AuthSyncError   AuthSyncState = "error"
)

// AuthSyncStatus is a snapshot of the auth sync state machine.
// Err is non-nil exactly when State is [AuthSyncError].
type AuthSyncStatus struct {
	State           AuthSyncState `json:"state"`
	User            *User         `json:"user,omitempty"`
	IsAuthenticated bool          `json:"isAuthenticated"`
	IsCloudMode     bool          `json:"isCloudMode"`
	Err             error         `json:"-"`
}

// ErrorMessage returns the captured error text, or an empty string.
func (s AuthSyncStatus) ErrorMessage() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}
