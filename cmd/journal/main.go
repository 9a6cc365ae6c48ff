// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-journal-keeper/internal/client"
	"github.com/MKhiriev/go-journal-keeper/internal/config"
	"github.com/MKhiriev/go-journal-keeper/internal/logger"
	"github.com/MKhiriev/go-journal-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const role = "go-journal-keeper"

func main() {
	buildInfo := printBuildInfo()

	log := logger.NewLogger(role, "")
	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	if cfg.Log.File != "" {
		log = logger.NewFileLogger(role, cfg.Log.Level, cfg.Log.File)
	} else {
		log = logger.NewLogger(role, cfg.Log.Level)
	}
	log.Debug().
		Str("bridge", cfg.Server.HTTPAddress).
		Str("remote", cfg.Adapter.HTTPAddress).
		Str("dsn", cfg.Storage.DB.DSN).
		Bool("cloud_mode", cfg.IsCloudMode()).
		Msg("received configs")

	app, err := client.NewApp(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init journal app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("journal run error")
	}
}

func printBuildInfo() models.AppBuildInfo {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(info)
	return info
}
