// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-journal-keeper/internal/utils"
	"github.com/MKhiriev/go-journal-keeper/models"
)

// getReflections answers with the deduplicated reflections, initializing
// storage first when needed.
func (h *Handler) getReflections(w http.ResponseWriter, r *http.Request) {
	reflections, err := h.services.ReflectionService.GetReflectionsAsync(r.Context())
	if err != nil {
		writeError(w, r, err, "Handler.getReflections")
		return
	}

	writeData(w, r, reflections, http.StatusOK)
}

func (h *Handler) getCachedReflections(w http.ResponseWriter, r *http.Request) {
	writeData(w, r, h.services.ReflectionService.GetReflections(r.Context()), http.StatusOK)
}

func (h *Handler) saveReflection(w http.ResponseWriter, r *http.Request) {
	var input models.ReflectionInput
	if err := utils.ReadJSON(r, &input); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "Handler.saveReflection")
		return
	}

	reflection, err := h.services.ReflectionService.SaveReflection(r.Context(), input)
	if err != nil {
		writeError(w, r, err, "Handler.saveReflection")
		return
	}

	writeData(w, r, reflection, http.StatusOK)
}
