// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-journal-keeper/internal/service"
	"github.com/MKhiriev/go-journal-keeper/internal/utils"
	"github.com/MKhiriev/go-journal-keeper/models"
)

func (h *Handler) getNotes(w http.ResponseWriter, r *http.Request) {
	writeData(w, r, h.services.NoteService.GetNotes(r.Context()), http.StatusOK)
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	note, ok := h.services.NoteService.GetNote(r.Context(), id)
	if !ok {
		writeError(w, r, fmt.Errorf("%w: %s", service.ErrNoteNotFound, id), "Handler.getNote")
		return
	}

	writeData(w, r, note, http.StatusOK)
}

func (h *Handler) saveNote(w http.ResponseWriter, r *http.Request) {
	var input models.NoteInput
	if err := utils.ReadJSON(r, &input); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "Handler.saveNote")
		return
	}

	note, err := h.services.NoteService.SaveNote(r.Context(), input)
	if err != nil {
		writeError(w, r, err, "Handler.saveNote")
		return
	}

	writeData(w, r, note, http.StatusCreated)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	var update models.NoteUpdate
	if err := utils.ReadJSON(r, &update); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "Handler.updateNote")
		return
	}

	notes, err := h.services.NoteService.UpdateNote(r.Context(), chi.URLParam(r, "id"), update)
	if err != nil {
		writeError(w, r, err, "Handler.updateNote")
		return
	}

	writeData(w, r, notes, http.StatusOK)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	writeData(w, r, h.services.NoteService.DeleteNote(r.Context(), chi.URLParam(r, "id")), http.StatusOK)
}
