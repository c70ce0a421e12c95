// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
)

// Amount represents a signed quantity of minor units (cents) in a currency.
// Account balances can be overdrawn so negative values are allowed.
type Amount struct {
	cents  int64
	symbol string // ISO 4217, i.e. USD, GBP
}

// NewAmountFromInt returns an Amount of cents after validating the ISO 4217 currency symbol.
func NewAmountFromInt(symbol string, cents int64) (*Amount, error) {
	unit, err := currency.ParseISO(symbol)
	if err != nil {
		return nil, err
	}
	return &Amount{cents: cents, symbol: unit.String()}, nil
}

// ParseAmount reads a currency symbol followed by a decimal quantity.
// Examples:
//   USD 12.53
//   GBP -4.02
func ParseAmount(in string) (*Amount, error) {
	var amt Amount
	if err := amt.FromString(in); err != nil {
		return nil, err
	}
	return &amt, nil
}

// Int returns the amount in cents.
// Example: "USD 1.11" returns 111
func (a *Amount) Int() int64 {
	if a == nil {
		return 0
	}
	return a.cents
}

// Currency returns the ISO 4217 symbol, defaulting to USD.
func (a *Amount) Currency() string {
	if a == nil || a.symbol == "" {
		return "USD"
	}
	return a.symbol
}

func (a Amount) Equal(other Amount) bool {
	return a.Currency() == other.Currency() && a.cents == other.cents
}

// String returns an amount formatted with the currency.
// Examples:
//   USD 12.53
//   EUR -0.07
func (a *Amount) String() string {
	if a == nil {
		return "USD 0.00"
	}
	return fmt.Sprintf("%s %s", a.Currency(), formattedNumber(a.cents))
}

func formattedNumber(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// FromString parses str as a currency symbol and a decimal quantity with at most
// two fractional digits. A quantity without a period is read as whole units.
func (a *Amount) FromString(str string) error {
	parts := strings.Fields(str)
	if len(parts) != 2 {
		return fmt.Errorf("invalid Amount format: %q", str)
	}

	unit, err := currency.ParseISO(parts[0])
	if err != nil {
		return err
	}

	number := parts[1]
	negative := strings.HasPrefix(number, "-")
	number = strings.TrimPrefix(number, "-")

	whole, frac := number, "00"
	if idx := strings.Index(number, "."); idx >= 0 {
		whole, frac = number[:idx], number[idx+1:]
		if len(frac) == 0 || len(frac) > 2 {
			return fmt.Errorf("invalid Amount fraction: %q", parts[1])
		}
		if len(frac) == 1 {
			frac += "0"
		}
	}
	if whole == "" {
		whole = "0"
	}

	if !digits(whole) || !digits(frac) {
		return fmt.Errorf("unable to read %s", parts[1])
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return fmt.Errorf("unable to read %s", parts[1])
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return fmt.Errorf("unable to read %s", parts[1])
	}
	if w > (math.MaxInt64-f)/100 {
		return fmt.Errorf("amount %s overflows", parts[1])
	}

	cents := w*100 + f
	if negative {
		cents = -cents
	}
	a.cents = cents
	a.symbol = unit.String()
	return nil
}

// digits reports whether s is only ASCII decimal digits. strconv.ParseInt
// alone would accept a sign.
func digits(s string) bool {
	if s == "" {
		return false
	}
	for i := range s {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return a.FromString(s)
}

// UnmarshalYAML reads the same "USD 12.53" form used in JSON.
func (a *Amount) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return a.FromString(s)
}
