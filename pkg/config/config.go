// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/bbbank/accounts-api/pkg/util"

	"github.com/moov-io/base/http/bind"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/spf13/viper"
)

type Config struct {
	Logger  log.Logger `yaml:"-" json:"-"`
	Logging Logging

	Http  HTTP
	Admin Admin

	Database Database
	Tracing  Tracing

	Accounts Accounts
}

type Logging struct {
	Format string

	// Level is the lowest level logged: debug, info, warn, error or none.
	// Empty logs everything.
	Level string
}

func (cfg Logging) Validate() error {
	_, err := levelOption(cfg.Level)
	return err
}

func levelOption(lvl string) (level.Option, error) {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "":
		return level.AllowAll(), nil
	case "debug":
		return level.AllowDebug(), nil
	case "info":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	case "none":
		return level.AllowNone(), nil
	}
	return nil, fmt.Errorf("unknown level %q", lvl)
}

type HTTP struct {
	BindAddress string
}

type Admin struct {
	BindAddress           string
	DisableConfigEndpoint bool
}

func Empty() *Config {
	return &Config{
		Logger: log.NewNopLogger(),
		Admin: Admin{
			BindAddress: bind.Admin("bbbank"),
		},
		Http: HTTP{
			BindAddress: bind.HTTP("bbbank"),
		},
		Database: Database{
			// Set the default path inside this path if no other database is defined.
			SQLite: &SQLite{
				Path: "bbbank.db",
			},
		},
		Tracing: Tracing{
			ServiceName: "bbbank",
			SampleRate:  1.0,
		},
	}
}

// FromFile reads the YAML config at path. An empty path returns the defaults
// with environment overrides applied.
func FromFile(path string) (*Config, error) {
	if path != "" {
		bs, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %v", path, err)
		}
		return Read(bs)
	}
	cfg := Empty()
	OverrideWithEnvVars(cfg)
	cfg = setupLogger(cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func Read(data []byte) (*Config, error) {
	vip := viper.New()
	vip.SetConfigType("yaml")
	if err := vip.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("problem reading config: %v", err)
	}

	cfg := Empty()
	if err := vip.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("problem unmarshaling config: %v", err)
	}
	OverrideWithEnvVars(cfg)

	cfg = setupLogger(cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func override(env string, field *string) {
	if v := os.Getenv(env); v != "" {
		*field = v
	}
}

// OverrideWithEnvVars applies the environment variables deployments have
// historically used on top of file based config.
func OverrideWithEnvVars(cfg *Config) {
	override("LOG_FORMAT", &cfg.Logging.Format)
	override("LOG_LEVEL", &cfg.Logging.Level)
	override("HTTP_BIND_ADDRESS", &cfg.Http.BindAddress)
	override("HTTP_ADMIN_BIND_ADDRESS", &cfg.Admin.BindAddress)

	if v := os.Getenv("TRACING_ENABLED"); v != "" {
		cfg.Tracing.Enabled = util.Yes(v)
	}

	if cfg.Database.SQLite != nil {
		override("SQLITE_DB_PATH", &cfg.Database.SQLite.Path)
	}
}

func setupLogger(cfg *Config) *Config {
	cfg.Logger = newLogger(os.Stderr, cfg.Logging)
	return cfg
}

func newLogger(w io.Writer, cfg Logging) log.Logger {
	var logger log.Logger
	if strings.EqualFold(cfg.Format, "json") {
		logger = log.NewJSONLogger(w)
	} else {
		logger = log.NewLogfmtLogger(w)
	}

	// an unknown level is reported by Validate, log everything until then
	if opt, err := levelOption(cfg.Level); err == nil {
		logger = level.NewFilter(logger, opt)
	}

	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	logger = log.With(logger, "caller", log.DefaultCaller)

	return logger
}

// Validate checks a Config fields and performs various confirmations
// their values conform to expectations.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.New("missing Config")
	}

	if err := cfg.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %v", err)
	}
	if err := cfg.Database.Validate(); err != nil {
		return fmt.Errorf("database: %v", err)
	}
	if err := cfg.Tracing.Validate(); err != nil {
		return fmt.Errorf("tracing: %v", err)
	}
	if err := cfg.Accounts.Validate(); err != nil {
		return fmt.Errorf("accounts: %v", err)
	}

	return nil
}
