// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package accounts

import (
	"encoding/json"
	"testing"

	"github.com/bbbank/accounts-api/pkg/model"

	"github.com/stretchr/testify/require"
)

func TestAccount__validate(t *testing.T) {
	var acct *Account
	require.Error(t, acct.validate())

	acct = &Account{}
	require.Error(t, acct.validate())

	acct.ID = "1"
	require.Error(t, acct.validate())

	acct.Status = "Active"
	require.NoError(t, acct.validate())

	acct.Status = StatusInactive
	require.NoError(t, acct.validate())

	acct.Status = "closed"
	require.Error(t, acct.validate())
}

func TestAccount__JSON(t *testing.T) {
	balance, _ := model.NewAmountFromInt("USD", 25000)
	acct := &Account{
		ID:      "2",
		Balance: *balance,
		Status:  StatusActive,
	}

	bs, err := json.Marshal(acct)
	require.NoError(t, err)

	var wrapper map[string]interface{}
	require.NoError(t, json.Unmarshal(bs, &wrapper))
	require.Equal(t, "2", wrapper["id"])
	require.Equal(t, "USD 250.00", wrapper["balance"])
	require.Equal(t, "active", wrapper["status"])
}
