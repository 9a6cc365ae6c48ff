// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-journal-keeper/internal/config"
	"github.com/MKhiriev/go-journal-keeper/internal/logger"
	"github.com/MKhiriev/go-journal-keeper/internal/utils"
	"github.com/MKhiriev/go-journal-keeper/models"
)

const (
	notesPath         = "/api/notes"
	noteHistoriesPath = "/api/note-histories"
	reflectionsPath   = "/api/reflections"
)

type httpRemoteSource struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPRemoteSource constructs an HTTP/REST implementation of
// [RemoteSource]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying HTTP client with the
// resolved base URL and request timeout. adapterCfg.Token, when set, is used
// as the initial bearer token.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPRemoteSource(adapterCfg config.ClientAdapter, logger *logger.Logger) (RemoteSource, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	h := &httpRemoteSource{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}
	h.SetToken(adapterCfg.Token)

	return h, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [RemoteSource]. The token is whitespace-trimmed.
func (h *httpRemoteSource) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.token = strings.TrimSpace(token)
}

// Token implements [RemoteSource].
func (h *httpRemoteSource) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.token
}

// FetchNotes implements [RemoteSource] via GET /api/notes.
func (h *httpRemoteSource) FetchNotes(ctx context.Context, since time.Time) ([]models.Note, error) {
	return fetch[models.Note](ctx, h, notesPath, since)
}

// FetchNoteHistories implements [RemoteSource] via GET /api/note-histories.
func (h *httpRemoteSource) FetchNoteHistories(ctx context.Context, since time.Time) ([]models.NoteHistory, error) {
	return fetch[models.NoteHistory](ctx, h, noteHistoriesPath, since)
}

// FetchReflections implements [RemoteSource] via GET /api/reflections. The
// backend sends the reflection day as a plain date and image references as
// "images"; both are translated into [models.Reflection].
func (h *httpRemoteSource) FetchReflections(ctx context.Context, since time.Time) ([]models.Reflection, error) {
	wire, err := fetch[remoteReflection](ctx, h, reflectionsPath, since)
	if err != nil {
		return nil, err
	}

	out := make([]models.Reflection, 0, len(wire))
	for _, r := range wire {
		refl, err := r.toModel()
		if err != nil {
			return nil, fmt.Errorf("decode reflection %s: %w", r.ID, err)
		}
		out = append(out, refl)
	}

	return out, nil
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    []T    `json:"data"`
	Error   string `json:"error,omitempty"`
}

func fetch[T any](ctx context.Context, h *httpRemoteSource, path string, since time.Time) ([]T, error) {
	req := h.authedRequest(ctx)
	if !since.IsZero() {
		req.SetQueryParam("since", since.UTC().Format(time.RFC3339Nano))
	}

	resp, err := req.Get(path)
	if err != nil {
		return nil, fmt.Errorf("fetch %s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var env envelope[T]
	if err = json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", path, err)
	}
	if !env.Success {
		return nil, fmt.Errorf("%w: %s", ErrUnsuccessfulResponse, env.Error)
	}

	h.logger.Debug().
		Str("func", "httpRemoteSource.fetch").
		Str("path", path).
		Time("since", since).
		Int("count", len(env.Data)).
		Msg("remote records fetched")

	return env.Data, nil
}

func (h *httpRemoteSource) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
