// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-journal-keeper/internal/authsync"
	"github.com/MKhiriev/go-journal-keeper/internal/utils"
	"github.com/MKhiriev/go-journal-keeper/models"
)

func (h *Handler) getAuthSyncStatus(w http.ResponseWriter, r *http.Request) {
	writeData(w, r, models.NewAuthSyncResponse(h.services.GetAuthSyncStatus()), http.StatusOK)
}

// changeAuth switches the journal to the identity resolved by withIdentity
// (guest when absent) and answers once the sync round has finished. The
// round is not tied to the request: it completes even if the caller leaves.
func (h *Handler) changeAuth(w http.ResponseWriter, r *http.Request) {
	user, _ := utils.GetUserFromContext(r.Context())

	if err := h.services.SyncService.HandleAuthChange(context.WithoutCancel(r.Context()), user); err != nil {
		writeError(w, r, err, "Handler.changeAuth")
		return
	}

	writeData(w, r, models.NewAuthSyncResponse(h.services.GetAuthSyncStatus()), http.StatusOK)
}

func (h *Handler) resync(w http.ResponseWriter, r *http.Request) {
	if err := h.services.SyncService.Resync(context.WithoutCancel(r.Context())); err != nil {
		writeError(w, r, err, "Handler.resync")
		return
	}

	writeData(w, r, models.NewAuthSyncResponse(h.services.GetAuthSyncStatus()), http.StatusOK)
}

// waitForAuthSync blocks until the auth sync is ready or failed, or the
// request is cancelled.
func (h *Handler) waitForAuthSync(w http.ResponseWriter, r *http.Request) {
	if err := h.services.WaitForAuthSync(r.Context()); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", authsync.ErrAuthSyncFailed, err), "Handler.waitForAuthSync")
		return
	}

	writeData(w, r, models.NewAuthSyncResponse(h.services.GetAuthSyncStatus()), http.StatusOK)
}
