// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-journal-keeper/models"
)

func (h *Handler) getNoteHistories(w http.ResponseWriter, r *http.Request) {
	h.listHistories(w, r, chi.URLParam(r, "id"), "Handler.getNoteHistories")
}

func (h *Handler) getAllHistories(w http.ResponseWriter, r *http.Request) {
	h.listHistories(w, r, "", "Handler.getAllHistories")
}

func (h *Handler) listHistories(w http.ResponseWriter, r *http.Request, noteID, funcName string) {
	order, err := historyOrder(r.URL.Query().Get("order"))
	if err != nil {
		writeError(w, r, err, funcName)
		return
	}

	writeData(w, r, h.services.NoteHistoryService.GetHistories(r.Context(), noteID, order), http.StatusOK)
}

func (h *Handler) deleteNoteHistories(w http.ResponseWriter, r *http.Request) {
	remaining := h.services.NoteHistoryService.DeleteHistoriesByNoteID(r.Context(), chi.URLParam(r, "id"))
	writeData(w, r, remaining, http.StatusOK)
}

// historyOrder parses the order query value; empty means oldest first.
func historyOrder(value string) (models.HistoryOrder, error) {
	switch value {
	case "", "oldest":
		return models.OldestFirst, nil
	case "newest":
		return models.NewestFirst, nil
	default:
		return 0, ErrInvalidHistoryOrder
	}
}
