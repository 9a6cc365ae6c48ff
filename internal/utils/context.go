// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"

	"github.com/MKhiriev/go-journal-keeper/models"
)

// contextKey is a private type for context keys, so they cannot collide with
// string keys of other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// UserCtxKey stores the *models.User resolved from a request's bearer token.
var UserCtxKey = contextKey("user")

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserCtxKey, user)
}

// GetUserFromContext returns the user stored by WithUser. ok is false when
// no user, or a value of another type, is stored.
func GetUserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(*models.User)
	return user, ok && user != nil
}
