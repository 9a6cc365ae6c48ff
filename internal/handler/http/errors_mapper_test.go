// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-journal-keeper/internal/adapter"
	"github.com/MKhiriev/go-journal-keeper/internal/authsync"
	"github.com/MKhiriev/go-journal-keeper/internal/service"
	"github.com/MKhiriev/go-journal-keeper/internal/utils"
	"github.com/MKhiriev/go-journal-keeper/internal/validators"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid json", err: ErrInvalidJSON, want: http.StatusBadRequest},
		{name: "bad order", err: ErrInvalidHistoryOrder, want: http.StatusBadRequest},
		{name: "no route", err: ErrRouteNotFound, want: http.StatusNotFound},
		{name: "empty note", err: validators.ErrEmptyNote, want: http.StatusBadRequest},
		{name: "wrapped validation", err: fmt.Errorf("save: %w", validators.ErrIncompleteEncryption), want: http.StatusBadRequest},
		{name: "note not found", err: fmt.Errorf("%w: abc", service.ErrNoteNotFound), want: http.StatusNotFound},
		{name: "expired token", err: utils.ErrTokenExpired, want: http.StatusUnauthorized},
		{name: "auth sync failed over bad gateway", err: fmt.Errorf("%w: %w", authsync.ErrAuthSyncFailed, adapter.ErrBadGateway), want: http.StatusServiceUnavailable},
		{name: "bare bad gateway is internal", err: adapter.ErrBadGateway, want: http.StatusInternalServerError},
		{name: "unknown", err: errors.New("disk on fire"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestWriteError_HidesInternalMessage(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("sqlite: disk I/O error"), "test")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":false,"error":"Internal Server Error"}`, rr.Body.String())
}

func TestWriteError_EchoesClientMessage(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, httptest.NewRequest(http.MethodGet, "/", nil), ErrInvalidHistoryOrder, "test")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"success":false,"error":"order must be `+"`oldest`"+` or `+"`newest`"+`"}`, rr.Body.String())
}

func TestWriteData(t *testing.T) {
	rr := httptest.NewRecorder()
	writeData(rr, httptest.NewRequest(http.MethodGet, "/", nil), map[string]int{"n": 1}, http.StatusCreated)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"success":true,"data":{"n":1}}`, rr.Body.String())
}
