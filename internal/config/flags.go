// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress is a host:port pair implementing flag.Value.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses args (without the program name).
//
// Flags:
//
//	-a               local bridge address in form [host]:[port]
//	-d               SQLite DSN
//	-r               remote source base URL
//	-request-timeout remote request timeout (e.g. "30s")
//	-token           static remote bearer token
//	-sync-interval   background resync period (e.g. "5m")
//	-dedup-policy    reflection dedup policy: most_recent | first_seen
//	-reflection-category note category reflections are derived from
//	-log-level       zerolog level
//	-log-file        log file path
//	-c / -config     JSON config file path
func ParseFlags(args []string) (*StructuredConfig, error) {
	var (
		bridgeAddress      NetAddress
		databaseDSN        string
		remoteAddress      string
		requestTimeout     time.Duration
		token              string
		syncInterval       time.Duration
		dedupPolicy        string
		reflectionCategory string
		logLevel           string
		logFile            string
		jsonConfigPath     string
	)

	fs := flag.NewFlagSet("journal", flag.ContinueOnError)
	fs.Var(&bridgeAddress, "a", "Local bridge address host:port")
	fs.StringVar(&databaseDSN, "d", "", "SQLite DSN")
	fs.StringVar(&remoteAddress, "r", "", "Remote source base URL")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Remote request timeout (e.g. 30s)")
	fs.StringVar(&token, "token", "", "Remote bearer token")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Background resync interval (e.g. 5m)")
	fs.StringVar(&dedupPolicy, "dedup-policy", "", "Reflection dedup policy (most_recent|first_seen)")
	fs.StringVar(&reflectionCategory, "reflection-category", "", "Note category reflections are derived from")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			ReflectionDedupPolicy:  dedupPolicy,
			ReflectionNoteCategory: reflectionCategory,
		},
		Log: Log{
			Level: logLevel,
			File:  logFile,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Server: Server{
			HTTPAddress: bridgeAddress.String(),
		},
		Adapter: Adapter{
			HTTPAddress:    remoteAddress,
			RequestTimeout: requestTimeout,
			Token:          token,
		},
		Workers: Workers{
			SyncInterval: syncInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns host:port, or an empty string when nothing was set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses host:port. The host must be "localhost" or a valid IP address.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(strings.TrimSpace(s))
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}
	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
