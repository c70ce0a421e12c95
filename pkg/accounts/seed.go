// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package accounts

import (
	"context"
	"fmt"
	"io/ioutil"

	"github.com/bbbank/accounts-api/pkg/database"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"gopkg.in/yaml.v2"
)

type seedFile struct {
	Accounts []*Account `yaml:"accounts"`
}

// Seed inserts the accounts listed in the YAML file at path. Accounts whose ID
// already exists are skipped so seeding can run on every startup. It returns
// how many accounts were inserted.
func Seed(ctx context.Context, logger log.Logger, repo *SQLRepo, path string) (int, error) {
	bs, err := ioutil.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("seed: read %s: %v", path, err)
	}

	var file seedFile
	if err := yaml.UnmarshalStrict(bs, &file); err != nil {
		return 0, fmt.Errorf("seed: unmarshal %s: %v", path, err)
	}
	for i := range file.Accounts {
		if err := file.Accounts[i].validate(); err != nil {
			return 0, fmt.Errorf("seed: %v", err)
		}
	}

	inserted := 0
	for i := range file.Accounts {
		acct := file.Accounts[i]
		if err := repo.insertAccount(ctx, acct); err != nil {
			if database.UniqueViolation(err) {
				level.Debug(logger).Log("seed", fmt.Sprintf("skipping existing account %s", acct.ID))
				continue
			}
			return inserted, fmt.Errorf("seed: account %s: %v", acct.ID, err)
		}
		inserted++
	}
	level.Info(logger).Log("seed", fmt.Sprintf("inserted %d of %d accounts from %s", inserted, len(file.Accounts), path))
	return inserted, nil
}
