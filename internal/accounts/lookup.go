// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package accounts answers "does an account exist at this address, who owns
// it and how many lamports does it hold". A missing account is a normal
// result, reported through the found flag rather than an error.
package accounts

import (
	"context"
	"fmt"

	"github.com/aplane-algo/pdaverify/internal/pda"
)

// LamportsPerSOL is the number of base units in one SOL.
const LamportsPerSOL = 1_000_000_000

// Account is the subset of on-chain account state the checks need.
type Account struct {
	Address    pda.Address
	Owner      pda.Address
	Lamports   uint64
	Executable bool
	DataLen    int
}

// SOL formats the balance in whole units.
func (a Account) SOL() string {
	return fmt.Sprintf("%d.%09d", a.Lamports/LamportsPerSOL, a.Lamports%LamportsPerSOL)
}

// Lookup fetches account state. found is false, with a nil error, when no
// account exists at the address.
type Lookup interface {
	GetAccount(ctx context.Context, addr pda.Address) (acct Account, found bool, err error)
}
