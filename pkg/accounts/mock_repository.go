// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package accounts

import (
	"context"

	"go.uber.org/atomic"
)

type MockRepository struct {
	Accounts []*Account
	Err      error

	calls atomic.Int32
}

func (r *MockRepository) GetAllAccounts(ctx context.Context) ([]*Account, error) {
	r.calls.Inc()
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Accounts, nil
}

// Calls returns how many times GetAllAccounts has been invoked.
func (r *MockRepository) Calls() int {
	return int(r.calls.Load())
}
