// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the local JSON bridge between UI hooks and the
// journal services.
//
// Every response body is a [models.APIResponse] envelope. Tracing, access
// logging and response compression are handled by middleware before requests
// reach the handlers.
package http
