// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/go-journal-keeper/internal/config"
	"github.com/MKhiriev/go-journal-keeper/internal/logger"
)

type httpServer struct {
	server *http.Server

	// ready is closed once the listener is bound.
	ready    chan struct{}
	listener net.Listener

	logger *logger.Logger
}

func newHTTPServer(router http.Handler, cfg config.ClientServer, logger *logger.Logger) *httpServer {
	return &httpServer{
		server: &http.Server{
			Addr:              cfg.HTTPAddress,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		ready:  make(chan struct{}),
		logger: logger,
	}
}

// RunServer binds the listener and serves until Shutdown is called.
func (h *httpServer) RunServer() error {
	ln, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return err
	}
	h.listener = ln
	close(h.ready)

	h.logger.Info().Str("address", ln.Addr().String()).Msg("HTTP bridge listening")

	if err = h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Addr returns the bound address, or nil before the listener is up.
func (h *httpServer) Addr() net.Addr {
	select {
	case <-h.ready:
		return h.listener.Addr()
	default:
		return nil
	}
}

func (h *httpServer) Shutdown(ctx context.Context) error {
	h.logger.Info().Msg("HTTP bridge shutdown")
	return h.server.Shutdown(ctx)
}
