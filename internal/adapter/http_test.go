// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-journal-keeper/internal/config"
	"github.com/MKhiriev/go-journal-keeper/internal/logger"
	"github.com/MKhiriev/go-journal-keeper/models"
)

// newTestSource creates an httpRemoteSource pointed at the test server.
func newTestSource(t *testing.T, serverURL, token string) *httpRemoteSource {
	t.Helper()
	cfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 2 * time.Second, Token: token}

	src, err := NewHTTPRemoteSource(cfg, logger.Nop())
	require.NoError(t, err)
	return src.(*httpRemoteSource)
}

func jsonHandler(t *testing.T, status int, body string, check func(r *http.Request)) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// ── constructor ─────────────────────────────────────────────────────────────

func TestNewHTTPRemoteSource_InvalidAddress(t *testing.T) {
	_, err := NewHTTPRemoteSource(config.ClientAdapter{HTTPAddress: "   "}, logger.Nop())
	require.Error(t, err)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "localhost:8787", want: "http://localhost:8787"},
		{raw: "https://journal.example.com/", want: "https://journal.example.com"},
		{raw: "", wantErr: true},
		{raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToken_SetAndTrim(t *testing.T) {
	src := newTestSource(t, "http://localhost", " initial ")
	assert.Equal(t, "initial", src.Token())

	src.SetToken("next")
	assert.Equal(t, "next", src.Token())
}

// ── FetchNotes ──────────────────────────────────────────────────────────────

func TestFetchNotes_FullPull(t *testing.T) {
	body := `{"success":true,"data":[{"id":"n1","title":"A","content":"1","category":null,
		"createdAt":"2026-01-01T10:00:00Z","updatedAt":"2026-01-02T10:00:00Z","deletedAt":null,
		"isEncrypted":false,"encryptionSalt":null,"encryptionIv":null,"passwordHash":null}]}`

	srv := httptest.NewServer(jsonHandler(t, http.StatusOK, body, func(r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/notes", r.URL.Path)
		assert.Empty(t, r.URL.Query().Get("since"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
	}))
	defer srv.Close()

	notes, err := newTestSource(t, srv.URL, "tok").FetchNotes(context.Background(), time.Time{})

	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "n1", notes[0].ID)
	assert.Equal(t, "1", notes[0].Content)
	assert.Nil(t, notes[0].Category)
	assert.False(t, notes[0].IsDeleted())
	assert.True(t, notes[0].UpdatedAt.Equal(time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)))
}

func TestFetchNotes_IncrementalIncludesTombstones(t *testing.T) {
	since := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)
	body := `{"success":true,"data":[{"id":"n1","title":"A","content":"1",
		"updatedAt":"2026-03-01T09:00:00Z","deletedAt":"2026-03-01T09:00:00Z"}]}`

	srv := httptest.NewServer(jsonHandler(t, http.StatusOK, body, func(r *http.Request) {
		assert.Equal(t, "2026-03-01T08:30:00Z", r.URL.Query().Get("since"))
	}))
	defer srv.Close()

	notes, err := newTestSource(t, srv.URL, "tok").FetchNotes(context.Background(), since)

	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.True(t, notes[0].IsDeleted())
}

func TestFetchNotes_NoTokenNoHeader(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, http.StatusOK, `{"success":true,"data":[]}`, func(r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
	}))
	defer srv.Close()

	notes, err := newTestSource(t, srv.URL, "").FetchNotes(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestFetchNotes_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"success":false,"error":"Unauthorized: No token provided"}`, wantErr: ErrUnauthorized},
		{name: "internal", status: http.StatusInternalServerError, body: `{"success":false,"error":"Failed to fetch notes"}`, wantErr: ErrInternalServerError},
		{name: "bad gateway", status: http.StatusBadGateway, body: ``, wantErr: ErrBadGateway},
		{name: "unsuccessful envelope", status: http.StatusOK, body: `{"success":false,"error":"nope"}`, wantErr: ErrUnsuccessfulResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(jsonHandler(t, tt.status, tt.body, nil))
			defer srv.Close()

			_, err := newTestSource(t, srv.URL, "tok").FetchNotes(context.Background(), time.Time{})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFetchNotes_EnvelopeErrorMessageSurfaced(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, http.StatusUnauthorized, `{"success":false,"error":"Invalid or expired token"}`, nil))
	defer srv.Close()

	_, err := newTestSource(t, srv.URL, "tok").FetchNotes(context.Background(), time.Time{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid or expired token")
}

func TestFetchNotes_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, http.StatusOK, `not json`, nil))
	defer srv.Close()

	_, err := newTestSource(t, srv.URL, "tok").FetchNotes(context.Background(), time.Time{})
	assert.Error(t, err)
}

func TestFetchNotes_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, http.StatusOK, `{"success":true,"data":[]}`, nil))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestSource(t, srv.URL, "tok").FetchNotes(ctx, time.Time{})
	assert.Error(t, err)
}

// ── FetchNoteHistories ──────────────────────────────────────────────────────

func TestFetchNoteHistories(t *testing.T) {
	body := `{"success":true,"data":[{"id":"h1","noteId":"n1","title":"A","content":"old",
		"savedAt":"2026-01-01T10:00:00Z","updatedAt":"2026-01-01T10:00:00Z","deletedAt":null}]}`

	srv := httptest.NewServer(jsonHandler(t, http.StatusOK, body, func(r *http.Request) {
		assert.Equal(t, "/api/note-histories", r.URL.Path)
	}))
	defer srv.Close()

	histories, err := newTestSource(t, srv.URL, "tok").FetchNoteHistories(context.Background(), time.Time{})

	require.NoError(t, err)
	require.Len(t, histories, 1)
	assert.Equal(t, models.NoteHistory{
		ID:        "h1",
		NoteID:    "n1",
		Title:     "A",
		Content:   "old",
		SavedAt:   time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
	}, histories[0])
}

// ── FetchReflections ────────────────────────────────────────────────────────

func TestFetchReflections_TranslatesWireFormat(t *testing.T) {
	body := `{"success":true,"data":[
		{"id":"r1","date":"2026-02-14","winOfDay":"w","hurdle":"h","priorities":["p1"],
		 "smallChange":"s","images":["img-1"],"updatedAt":"2026-02-14T21:00:00Z","deletedAt":null},
		{"id":"r2","date":"2026-02-15T00:00:00Z","winOfDay":"w2","hurdle":"","priorities":null,
		 "smallChange":"","imageIds":["img-2"],"createdAt":"2026-02-15T20:00:00Z","updatedAt":"2026-02-15T21:00:00Z"}
	]}`

	srv := httptest.NewServer(jsonHandler(t, http.StatusOK, body, func(r *http.Request) {
		assert.Equal(t, "/api/reflections", r.URL.Path)
	}))
	defer srv.Close()

	refl, err := newTestSource(t, srv.URL, "tok").FetchReflections(context.Background(), time.Time{})

	require.NoError(t, err)
	require.Len(t, refl, 2)

	assert.Equal(t, "2026-02-14", refl[0].Day())
	assert.Equal(t, []string{"img-1"}, refl[0].ImageIDs)
	assert.Equal(t, refl[0].UpdatedAt, refl[0].CreatedAt)

	assert.Equal(t, "2026-02-15", refl[1].Day())
	assert.Equal(t, []string{"img-2"}, refl[1].ImageIDs)
	assert.True(t, refl[1].CreatedAt.Before(refl[1].UpdatedAt))
}

func TestFetchReflections_InvalidDate(t *testing.T) {
	body := `{"success":true,"data":[{"id":"r1","date":"yesterday"}]}`
	srv := httptest.NewServer(jsonHandler(t, http.StatusOK, body, nil))
	defer srv.Close()

	_, err := newTestSource(t, srv.URL, "tok").FetchReflections(context.Background(), time.Time{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "r1")
}
