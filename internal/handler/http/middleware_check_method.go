// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
)

// CheckHTTPMethod returns the router's MethodNotAllowed handler.
//
// chi answers 405 when a path is routed but the method is not. The bridge
// answers 404 instead, so unsupported methods do not reveal which paths
// exist. chi only calls this handler once no route matched both path and
// method, so the request is never dispatched again.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod())
func CheckHTTPMethod() http.HandlerFunc {
	return routeNotFound
}
