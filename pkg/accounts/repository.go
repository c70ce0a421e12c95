// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package accounts

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/bbbank/accounts-api/pkg/model"

	"github.com/moov-io/base"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

type Repository interface {
	// GetAllAccounts returns every Account in the store. Errors are returned unmodified.
	GetAllAccounts(ctx context.Context) ([]*Account, error)
}

func NewRepo(db *sql.DB) *SQLRepo {
	return &SQLRepo{db: db}
}

type SQLRepo struct {
	db *sql.DB
}

func (r *SQLRepo) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Ping checks the underlying database is reachable.
func (r *SQLRepo) Ping() error {
	return r.db.Ping()
}

func (r *SQLRepo) GetAllAccounts(ctx context.Context) ([]*Account, error) {
	query := `select account_id, account_number, account_title, balance_currency, balance_value, status, user_id, created_at, last_updated_at from accounts;`

	span, ctx := opentracing.StartSpanFromContext(ctx, "accounts-repository-get-all")
	defer span.Finish()
	ext.DBType.Set(span, "sql")
	ext.DBStatement.Set(span, query)

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]*Account, 0)
	for rows.Next() {
		acct, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acct)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	span.SetTag("accounts.count", len(accounts))
	return accounts, nil
}

func scanAccount(rows *sql.Rows) (*Account, error) {
	var (
		acct           Account
		number, title  sql.NullString
		currency       sql.NullString
		cents          sql.NullInt64
		status, userID sql.NullString
		created        sql.NullTime
		updated        sql.NullTime
	)
	if err := rows.Scan(&acct.ID, &number, &title, &currency, &cents, &status, &userID, &created, &updated); err != nil {
		return nil, err
	}

	symbol := currency.String
	if symbol == "" {
		symbol = "USD"
	}
	balance, err := model.NewAmountFromInt(symbol, cents.Int64)
	if err != nil {
		return nil, err
	}

	acct.AccountNumber = number.String
	acct.AccountTitle = title.String
	acct.Balance = *balance
	acct.Status = Status(strings.ToLower(status.String))
	acct.UserID = userID.String
	if created.Valid {
		acct.Created = base.NewTime(created.Time)
	}
	if updated.Valid {
		acct.LastUpdated = base.NewTime(updated.Time)
	}
	return &acct, nil
}

func (r *SQLRepo) insertAccount(ctx context.Context, acct *Account) error {
	query := `insert into accounts (account_id, account_number, account_title, balance_currency, balance_value, status, user_id, created_at, last_updated_at) values (?, ?, ?, ?, ?, ?, ?, ?, ?);`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	_, err = stmt.ExecContext(ctx,
		acct.ID, acct.AccountNumber, acct.AccountTitle,
		acct.Balance.Currency(), acct.Balance.Int(),
		strings.ToLower(string(acct.Status)), acct.UserID,
		now, now,
	)
	return err
}
