// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrInvalidJSON is reported for request bodies that cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidHistoryOrder is reported for an order query value other than
	// "oldest" or "newest".
	ErrInvalidHistoryOrder = errors.New("order must be `oldest` or `newest`")

	// ErrRouteNotFound is reported for unrouted paths and unsupported methods.
	ErrRouteNotFound = errors.New("route not found")
)
