// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-journal-keeper/internal/authsync"
	"github.com/MKhiriev/go-journal-keeper/internal/logger"
	"github.com/MKhiriev/go-journal-keeper/internal/service"
	"github.com/MKhiriev/go-journal-keeper/internal/utils"
	"github.com/MKhiriev/go-journal-keeper/internal/validators"
	"github.com/MKhiriev/go-journal-keeper/models"
)

// errorStatuses is checked in order; the first match wins.
var errorStatuses = []struct {
	target error
	status int
}{
	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrInvalidHistoryOrder, http.StatusBadRequest},
	{ErrRouteNotFound, http.StatusNotFound},

	{validators.ErrEmptyNote, http.StatusBadRequest},
	{validators.ErrEmptyNoteID, http.StatusBadRequest},
	{validators.ErrNoFieldsToUpdate, http.StatusBadRequest},
	{validators.ErrIncompleteEncryption, http.StatusBadRequest},
	{validators.ErrUnexpectedEncryption, http.StatusBadRequest},
	{validators.ErrEmptyReflectionDate, http.StatusBadRequest},

	{service.ErrNoteNotFound, http.StatusNotFound},

	{utils.ErrInvalidAuthorizationHeader, http.StatusUnauthorized},
	{utils.ErrInvalidToken, http.StatusUnauthorized},
	{utils.ErrTokenExpired, http.StatusUnauthorized},

	{authsync.ErrAuthSyncFailed, http.StatusServiceUnavailable},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and answers with a failed envelope. Internal errors are
// not echoed to the caller.
func writeError(w http.ResponseWriter, r *http.Request, err error, funcName string) {
	status := statusFromError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = http.StatusText(status)
	}

	logger.FromRequest(r).Err(err).
		Str("func", funcName).
		Int("status", status).
		Msg("request failed")

	writeJSON(w, r, models.Fail(message), status)
}

// writeData answers with a successful envelope around data.
func writeData(w http.ResponseWriter, r *http.Request, data any, status int) {
	writeJSON(w, r, models.OK(data), status)
}

func writeJSON(w http.ResponseWriter, r *http.Request, body models.APIResponse, status int) {
	if _, err := utils.WriteJSON(w, body, status); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "writeJSON").Msg("failed to write response")
	}
}

func routeNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, models.Fail(ErrRouteNotFound.Error()), http.StatusNotFound)
}
