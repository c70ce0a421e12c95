// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package accounts

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	repo := setupSQLiteDB(t)
	ctx := context.Background()
	path := filepath.Join("testdata", "seed.yaml")

	n, err := Seed(ctx, log.NewNopLogger(), repo, path)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	accounts, err := repo.GetAllAccounts(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2"}, accountIDs(accounts))

	for i := range accounts {
		switch accounts[i].ID {
		case "1":
			require.Equal(t, "USD 1.00", accounts[i].Balance.String())
			require.Equal(t, StatusActive, accounts[i].Status)
		case "2":
			require.Equal(t, "USD 2.50", accounts[i].Balance.String())
			require.Equal(t, StatusInactive, accounts[i].Status)
		}
	}

	// seeding again skips existing accounts
	n, err = Seed(ctx, log.NewNopLogger(), repo, path)
	require.NoError(t, err)
	require.Equal(t, 0, n)

	accounts, err = repo.GetAllAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
}

func TestSeed__invalid(t *testing.T) {
	repo := setupSQLiteDB(t)
	ctx := context.Background()

	_, err := Seed(ctx, log.NewNopLogger(), repo, filepath.Join("testdata", "invalid-seed.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "frozen")

	_, err = Seed(ctx, log.NewNopLogger(), repo, filepath.Join("testdata", "overflow-seed.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "overflows")

	_, err = Seed(ctx, log.NewNopLogger(), repo, filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)

	accounts, err := repo.GetAllAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 0)
}
