// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package accounts

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bbbank/accounts-api/pkg/model"

	"github.com/moov-io/base"
)

type Account struct {
	// ID is a unique string representing this Account. The store enforces uniqueness.
	ID string `json:"id" yaml:"id"`

	AccountNumber string `json:"accountNumber" yaml:"accountNumber"`
	AccountTitle  string `json:"accountTitle" yaml:"accountTitle"`

	// Balance is the current balance, possibly negative when overdrawn.
	Balance model.Amount `json:"balance" yaml:"balance"`

	Status Status `json:"status" yaml:"status"`

	// UserID is the owner of this Account.
	UserID string `json:"userId" yaml:"userId"`

	Created     base.Time `json:"created" yaml:"-"`
	LastUpdated base.Time `json:"lastUpdated" yaml:"-"`
}

func (a *Account) validate() error {
	if a == nil {
		return errors.New("nil Account")
	}
	if a.ID == "" {
		return errors.New("missing Account.ID")
	}
	if err := a.Status.validate(); err != nil {
		return fmt.Errorf("account %s: %v", a.ID, err)
	}
	return nil
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) validate() error {
	switch Status(strings.ToLower(string(s))) {
	case StatusActive, StatusInactive:
		return nil
	}
	return fmt.Errorf("unknown status %q", s)
}
