// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-journal-keeper/internal/adapter"
	"github.com/MKhiriev/go-journal-keeper/internal/config"
	"github.com/MKhiriev/go-journal-keeper/internal/logger"
	"github.com/MKhiriev/go-journal-keeper/internal/service"
	"github.com/MKhiriev/go-journal-keeper/internal/store"
)

// newTestServices builds the journal services over a temporary sqlite file.
func newTestServices(t *testing.T, remote adapter.RemoteSource) *service.JournalServices {
	t.Helper()

	db, err := store.NewConnectSQLite(context.Background(), config.ClientDB{DSN: filepath.Join(t.TempDir(), "journal.db")}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate())

	st := store.NewPersistentStore(store.NewRecordRepository(db, logger.Nop()), logger.Nop())
	st.SetCloser(db.Close)
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	cfg := &config.ClientConfig{
		App:     config.ClientApp{Version: "1.2.3", ReflectionDedupPolicy: config.DedupPolicyMostRecent},
		Workers: config.ClientWorkers{SyncInterval: time.Minute},
	}

	services, err := service.NewJournalServices(cfg, st, remote, logger.Nop())
	require.NoError(t, err)
	return services
}

// newTestRouter returns the full bridge router over fresh services.
func newTestRouter(t *testing.T, remote adapter.RemoteSource) (http.Handler, *service.JournalServices) {
	t.Helper()

	services := newTestServices(t, remote)
	return NewHandler(services, logger.Nop()).Init(), services
}

// envelope mirrors models.APIResponse with a typed payload.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

// do serves one request and returns the recorder. headers are name/value
// pairs.
func do(t *testing.T, router http.Handler, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	return serve(router, req)
}

func newRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var env envelope[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return env
}

// signToken builds an HS256 token with claims; the bridge does not verify
// signatures, so the key is arbitrary.
func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("remote-secret"))
	require.NoError(t, err)
	return token
}
