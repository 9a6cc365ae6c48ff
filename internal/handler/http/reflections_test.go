// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-journal-keeper/models"
)

func TestReflections_SaveAndList(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := do(t, router, http.MethodPut, "/api/reflections",
		`{"date":"2026-05-10T09:00:00Z","winOfDay":"shipped","hurdle":"meetings","priorities":["rest"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	saved := decode[models.Reflection](t, rec).Data
	assert.NotEmpty(t, saved.ID)

	// same day updates the same record
	rec = do(t, router, http.MethodPut, "/api/reflections", `{"date":"2026-05-10T21:00:00Z","winOfDay":"shipped twice"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, saved.ID, decode[models.Reflection](t, rec).Data.ID)

	rec = do(t, router, http.MethodPut, "/api/reflections", `{"date":"2026-05-11T08:00:00Z","winOfDay":"next"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/reflections", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]models.Reflection](t, rec).Data
	require.Len(t, list, 2)
	assert.Equal(t, "2026-05-11", list[0].Day())
	assert.Equal(t, "shipped twice", list[1].WinOfDay)

	rec = do(t, router, http.MethodGet, "/api/reflections/cached", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Reflection](t, rec).Data, 2)
}

func TestReflections_SaveRequiresDate(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := do(t, router, http.MethodPut, "/api/reflections", `{"winOfDay":"no date"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decode[any](t, rec).Success)
}
