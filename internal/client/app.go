// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-journal-keeper/internal/adapter"
	"github.com/MKhiriev/go-journal-keeper/internal/config"
	"github.com/MKhiriev/go-journal-keeper/internal/handler"
	"github.com/MKhiriev/go-journal-keeper/internal/logger"
	"github.com/MKhiriev/go-journal-keeper/internal/server"
	"github.com/MKhiriev/go-journal-keeper/internal/service"
	"github.com/MKhiriev/go-journal-keeper/internal/store"
	"github.com/MKhiriev/go-journal-keeper/internal/utils"
	"github.com/MKhiriev/go-journal-keeper/internal/workers"
	"github.com/MKhiriev/go-journal-keeper/models"
)

// FlushTimeout bounds the final drain of queued durable writes.
const FlushTimeout = 10 * time.Second

var _ Client = (*App)(nil)

type App struct {
	cfg      *config.ClientConfig
	services *service.JournalServices
	store    *store.PersistentStore
	server   server.Server
	workers  *workers.Workers

	logger *logger.Logger
}

// NewApp opens the local database and builds every component described by
// cfg. The bridge is only created when cfg.Server.HTTPAddress is set, and the
// remote source only in cloud mode.
func NewApp(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	db, err := store.NewConnectSQLite(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}
	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate local storage: %w", err)
	}

	st := store.NewPersistentStore(store.NewRecordRepository(db, log), log)
	st.SetCloser(db.Close)

	app, err := newApp(cfg, st, log)
	if err != nil {
		_ = st.Close(ctx)
		return nil, err
	}
	return app, nil
}

func newApp(cfg *config.ClientConfig, st *store.PersistentStore, log *logger.Logger) (*App, error) {
	var remote adapter.RemoteSource
	if cfg.IsCloudMode() {
		r, err := adapter.NewHTTPRemoteSource(cfg.Adapter, log)
		if err != nil {
			return nil, fmt.Errorf("create remote source: %w", err)
		}
		remote = r
	}

	services, err := service.NewJournalServices(cfg, st, remote, log)
	if err != nil {
		return nil, fmt.Errorf("create journal services: %w", err)
	}

	app := &App{
		cfg:      cfg,
		services: services,
		store:    st,
		workers:  workers.New(services.SyncJob),
		logger:   log,
	}

	if cfg.Server.HTTPAddress != "" {
		handlers, err := handler.NewHandlers(services, cfg.Server, log)
		if err != nil {
			return nil, fmt.Errorf("create handlers: %w", err)
		}
		if app.server, err = server.NewServer(handlers, cfg.Server, log); err != nil {
			return nil, fmt.Errorf("create server: %w", err)
		}
	}

	return app, nil
}

// Run blocks until SIGINT, SIGTERM or SIGQUIT.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return a.run(ctx)
}

func (a *App) run(ctx context.Context) error {
	if err := a.services.InitializeStorage(ctx); err != nil {
		_ = a.store.Close(context.WithoutCancel(ctx))
		return fmt.Errorf("initialize storage: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	signedIn := make(chan struct{})
	go func() {
		a.signIn(ctx, a.initialUser())
		close(signedIn)
	}()

	workersDone := make(chan struct{})
	go func() {
		a.workers.Run(ctx)
		close(workersDone)
	}()

	var runErr error
	if a.server != nil {
		runErr = a.server.RunServer(ctx)
	} else {
		a.logger.Info().Msg("bridge disabled, running headless")
		<-ctx.Done()
	}

	// a failed bridge stops the workers as well
	cancel()
	<-workersDone
	<-signedIn

	return errors.Join(runErr, a.close(ctx))
}

// initialUser resolves the account from the configured token. An unusable
// token falls back to guest.
func (a *App) initialUser() *models.User {
	if a.cfg.Adapter.Token == "" {
		return nil
	}

	user, err := utils.ParseUserFromToken(a.cfg.Adapter.Token, time.Now())
	if err != nil {
		a.logger.Warn().Err(err).Str("func", "App.initialUser").Msg("configured token rejected, starting as guest")
		return nil
	}
	return user
}

func (a *App) signIn(ctx context.Context, user *models.User) {
	if err := a.services.SyncService.HandleAuthChange(ctx, user); err != nil {
		a.logger.Err(err).Str("func", "App.signIn").Msg("initial auth sync failed")
	}
}

func (a *App) close(ctx context.Context) error {
	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), FlushTimeout)
	defer cancel()

	if err := a.store.Close(closeCtx); err != nil {
		a.logger.Err(err).Str("func", "App.close").Msg("failed to flush durable writes")
		return err
	}
	a.logger.Info().Msg("journal stopped")
	return nil
}
