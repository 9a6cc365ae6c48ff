// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AuthSyncResponse is the serialisable view of an [AuthSyncStatus].
type AuthSyncResponse struct {
	State           AuthSyncState `json:"state"`
	User            *User         `json:"user,omitempty"`
	IsAuthenticated bool          `json:"isAuthenticated"`
	IsCloudMode     bool          `json:"isCloudMode"`

	// Error is the captured failure text, set only in the error state.
	Error string `json:"error,omitempty"`
}

// NewAuthSyncResponse converts status for the wire.
func NewAuthSyncResponse(status AuthSyncStatus) AuthSyncResponse {
	return AuthSyncResponse{
		State:           status.State,
		User:            status.User,
		IsAuthenticated: status.IsAuthenticated,
		IsCloudMode:     status.IsCloudMode,
		Error:           status.ErrorMessage(),
	}
}
