// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// User identifies the account the journal is synchronised for.
// A nil *User means guest (local-only) mode.
type User struct {
	// ID is the identifier assigned by the external authentication provider.
	ID string `json:"id"`

	// Email is informational and may be empty.
	Email string `json:"email,omitempty"`

	// Token is the bearer token forwarded to the remote source.
	// It is never serialised.
	Token string `json:"-"`
}

// UserKey returns the key used to scope per-user state such as sync tokens.
// Guests share the "guest" key.
func UserKey(u *User) string {
	if u == nil || u.ID == "" {
		return "guest"
	}
	return u.ID
}
