// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"encoding/json"
	"errors"
	"os"
	"strings"

	"github.com/bbbank/accounts-api/pkg/util"
	"github.com/bbbank/accounts-api/x/mask"
)

type Database struct {
	SQLite *SQLite `yaml:"sqlite" json:"sqlite"`
	MySQL  *MySQL  `yaml:"mysql" json:"mysql"`
}

// Type returns which driver to connect with. MySQL wins when it's configured
// since SQLite is always populated with a default path.
func (cfg Database) Type() string {
	if cfg.MySQL != nil {
		return "mysql"
	}
	if cfg.SQLite != nil {
		return "sqlite"
	}
	return ""
}

func (cfg Database) Validate() error {
	switch cfg.Type() {
	case "mysql":
		return cfg.MySQL.Validate()
	case "sqlite":
		return cfg.SQLite.Validate()
	}
	return errors.New("no database configured")
}

type SQLite struct {
	Path string `yaml:"path" json:"path"`
}

func (cfg *SQLite) Validate() error {
	if cfg.Path == "" {
		return errors.New("missing sqlite path")
	}
	if strings.Contains(cfg.Path, "..") {
		return errors.New("sqlite path cannot contain '..'")
	}
	return nil
}

type MySQL struct {
	Address  string `yaml:"address" json:"address"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	Database string `yaml:"database" json:"database"`
}

func (cfg *MySQL) Validate() error {
	if cfg.Address == "" {
		return errors.New("missing mysql address")
	}
	if cfg.Database == "" {
		return errors.New("missing mysql database")
	}
	return nil
}

func (cfg *MySQL) GetPassword() string {
	pass := os.Getenv("MYSQL_PASSWORD")
	if cfg == nil {
		return pass
	}
	return util.Or(pass, cfg.Password)
}

func (cfg *MySQL) MarshalJSON() ([]byte, error) {
	type Aux struct {
		Address  string `json:"address"`
		Username string `json:"username"`
		Password string `json:"password"`
		Database string `json:"database"`
	}
	return json.Marshal(Aux{
		Address:  cfg.Address,
		Username: cfg.Username,
		Password: mask.Password(cfg.GetPassword()),
		Database: cfg.Database,
	})
}
