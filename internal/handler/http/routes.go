// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, middleware.Recoverer, withGZip)

	router.Route("/api/notes", func(r chi.Router) {
		r.Get("/", h.getNotes)
		r.Post("/", h.saveNote)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getNote)
			r.Patch("/", h.updateNote)
			r.Delete("/", h.deleteNote)

			r.Get("/histories", h.getNoteHistories)
			r.Delete("/histories", h.deleteNoteHistories)
		})
	})

	router.Get("/api/note-histories", h.getAllHistories)

	router.Route("/api/reflections", func(r chi.Router) {
		r.Get("/", h.getReflections)
		r.Put("/", h.saveReflection)
		r.Get("/cached", h.getCachedReflections)
	})

	router.Route("/api/auth-sync", func(r chi.Router) {
		r.Get("/", h.getAuthSyncStatus)
		r.With(h.withIdentity).Post("/", h.changeAuth)
		r.Post("/resync", h.resync)
		r.Get("/ready", h.waitForAuthSync)
	})

	router.Get("/api/version", h.getVersion)

	router.NotFound(routeNotFound)
	router.MethodNotAllowed(CheckHTTPMethod())

	return router
}
