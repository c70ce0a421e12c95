// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bbbank/accounts-api/pkg/config"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	kitprom "github.com/go-kit/kit/metrics/prometheus"
	"github.com/lopezator/migrator"
)

// New establishes a database connection according to the configured provider
// and runs migrations against it.
func New(ctx context.Context, logger log.Logger, cfg config.Database) (*sql.DB, error) {
	_type := cfg.Type()
	level.Info(logger).Log("database", fmt.Sprintf("looking for %s database provider", _type))
	switch _type {
	case "sqlite":
		return sqliteConnection(logger, cfg.SQLite.Path).Connect(ctx)
	case "mysql":
		return mysqlConnection(logger, cfg.MySQL.Username, cfg.MySQL.GetPassword(), cfg.MySQL.Address, cfg.MySQL.Database).Connect(ctx)
	}
	return nil, fmt.Errorf("unknown database type %q", _type)
}

func execsql(name, raw string) *migrator.MigrationNoTx {
	return &migrator.MigrationNoTx{
		Name: name,
		Func: func(db *sql.DB) error {
			_, err := db.Exec(raw)
			return err
		},
	}
}

func migrate(db *sql.DB, migrations []interface{}) error {
	m, err := migrator.New(migrator.Migrations(migrations...))
	if err != nil {
		return err
	}
	return m.Migrate(db)
}

// recordStats updates gauge with the pool's connection states every second until ctx is done.
func recordStats(ctx context.Context, db *sql.DB, gauge *kitprom.Gauge) {
	t := time.NewTicker(1 * time.Second)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			stats := db.Stats()
			gauge.With("state", "idle").Set(float64(stats.Idle))
			gauge.With("state", "inuse").Set(float64(stats.InUse))
			gauge.With("state", "open").Set(float64(stats.OpenConnections))
		}
	}
}

// UniqueViolation returns true when the provided error matches a database error
// for duplicate entries (violating a unique table constraint).
func UniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return MySQLUniqueViolation(err) || SqliteUniqueViolation(err)
}
