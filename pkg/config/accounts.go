// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"time"
)

type Accounts struct {
	// FetchTimeout bounds each store read. Zero leaves the request context as-is.
	FetchTimeout time.Duration

	// Seed is an optional YAML file of accounts inserted at startup.
	Seed string
}

func (cfg Accounts) Validate() error {
	if cfg.FetchTimeout < 0 {
		return errors.New("negative fetch timeout")
	}
	return nil
}
