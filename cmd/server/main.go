// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"crypto/tls"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	bbbank "github.com/bbbank/accounts-api"
	"github.com/bbbank/accounts-api/pkg/accounts"
	"github.com/bbbank/accounts-api/pkg/config"
	cfgadmin "github.com/bbbank/accounts-api/pkg/config/admin"
	"github.com/bbbank/accounts-api/pkg/database"
	"github.com/bbbank/accounts-api/pkg/util"
	"github.com/bbbank/accounts-api/x/route"
	"github.com/bbbank/accounts-api/x/trace"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/gorilla/mux"
	"github.com/moov-io/base/admin"
)

var (
	flagConfigFile = flag.String("config", "", "Filepath for config file to load")
)

func main() {
	flag.Parse()

	cfg := readConfig(util.Or(os.Getenv("CONFIG_FILE"), *flagConfigFile))
	level.Info(cfg.Logger).Log("startup", fmt.Sprintf("Starting bbbank accounts server version %s", bbbank.Version))

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	// migrate database
	db, err := database.New(ctx, cfg.Logger, cfg.Database)
	if err != nil {
		panic(fmt.Sprintf("error creating database: %v", err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			level.Error(cfg.Logger).Log("exit", err)
		}
	}()

	_, tracerCloser, err := trace.NewTracer(cfg.Logger, cfg.Tracing)
	if err != nil {
		panic(fmt.Sprintf("error creating tracer: %v", err))
	}
	defer tracerCloser.Close()

	// Listen for application termination.
	errs := make(chan error)
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errs <- fmt.Errorf("%s", <-c)
	}()

	// Spin up admin HTTP server
	adminServer := admin.NewServer(cfg.Admin.BindAddress)
	adminServer.AddVersionHandler(bbbank.Version) // Setup 'GET /version'
	go func() {
		level.Info(cfg.Logger).Log("admin", fmt.Sprintf("listening on %s", adminServer.BindAddr()))
		if err := adminServer.Listen(); err != nil {
			err = fmt.Errorf("problem starting admin http: %v", err)
			level.Error(cfg.Logger).Log("admin", err)
			errs <- err
		}
	}()
	defer adminServer.Shutdown()

	// Setup repositories
	accountRepo := accounts.NewRepo(db)

	cfgadmin.RegisterRoutes(adminServer, cfg)
	adminServer.AddLivenessCheck("database", livenessCheck(accountRepo))

	if err := seedAccounts(ctx, cfg, accountRepo); err != nil {
		panic(fmt.Sprintf("error seeding accounts: %v", err))
	}

	// Create HTTP handler
	handler := mux.NewRouter()
	route.PingRoute(cfg.Logger, handler)

	accountsRouter := accounts.NewRouter(cfg.Logger, accountRepo, cfg.Accounts.FetchTimeout)
	accountsRouter.RegisterRoutes(handler)

	// Create main HTTP server
	serve := &http.Server{
		Addr:    cfg.Http.BindAddress,
		Handler: handler,
		TLSConfig: &tls.Config{
			InsecureSkipVerify:       false,
			PreferServerCipherSuites: true,
			MinVersion:               tls.VersionTLS12,
		},
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	shutdownServer := func() {
		if err := serve.Shutdown(context.TODO()); err != nil {
			level.Error(cfg.Logger).Log("shutdown", err)
		}
	}
	defer shutdownServer()

	// Start main HTTP server
	go func() {
		if certFile, keyFile := os.Getenv("HTTPS_CERT_FILE"), os.Getenv("HTTPS_KEY_FILE"); certFile != "" && keyFile != "" {
			level.Info(cfg.Logger).Log("startup", fmt.Sprintf("binding to %s for secure HTTP server", cfg.Http.BindAddress))
			if err := serve.ListenAndServeTLS(certFile, keyFile); err != nil {
				level.Error(cfg.Logger).Log("exit", err)
			}
		} else {
			level.Info(cfg.Logger).Log("startup", fmt.Sprintf("binding to %s for HTTP server", cfg.Http.BindAddress))
			if err := serve.ListenAndServe(); err != nil {
				level.Error(cfg.Logger).Log("exit", err)
			}
		}
	}()

	if err := <-errs; err != nil {
		level.Error(cfg.Logger).Log("exit", err)
	}
}

func readConfig(path string) *config.Config {
	cfg, err := config.FromFile(path)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

type pinger interface {
	Ping() error
}

func livenessCheck(p pinger) func() error {
	return func() error {
		return util.Timeout(p.Ping, 5*time.Second)
	}
}

func seedAccounts(ctx context.Context, cfg *config.Config, repo *accounts.SQLRepo) error {
	if cfg.Accounts.Seed == "" {
		return nil
	}
	logger := log.With(cfg.Logger, "package", "accounts")
	_, err := accounts.Seed(ctx, logger, repo, cfg.Accounts.Seed)
	return err
}
