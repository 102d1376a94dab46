// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package preflight checks a derived account before a transaction that uses
// it is submitted: the client's derivation must match what the program will
// compute, and the account either must not exist yet (needs initialization)
// or must be owned by the program.
package preflight

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aplane-algo/pdaverify/internal/accounts"
	"github.com/aplane-algo/pdaverify/internal/logging"
	"github.com/aplane-algo/pdaverify/internal/pda"
	"github.com/aplane-algo/pdaverify/internal/pda/diagnose"
)

// Status is the outcome of a preflight check.
type Status int

const (
	// StatusReady means the account exists and is owned by the program.
	StatusReady Status = iota
	// StatusNeedsInit means no account exists yet at the derived address.
	StatusNeedsInit
	// StatusWrongOwner means an account exists but another program owns it.
	StatusWrongOwner
	// StatusMismatch means the claimed address or bump does not verify.
	StatusMismatch
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusNeedsInit:
		return "needs-init"
	case StatusWrongOwner:
		return "wrong-owner"
	case StatusMismatch:
		return "mismatch"
	default:
		return "unknown"
	}
}

// Request describes the account a transaction is about to reference.
type Request struct {
	Seeds   []pda.Seed
	Program pda.Address
	// Claim, when set, is the address/bump the client intends to send.
	Claim *diagnose.Claim
	// AltPrograms feed NamespaceMismatch diagnosis.
	AltPrograms map[string]pda.Address
}

// Report is the outcome of Run.
type Report struct {
	Status  Status
	Derived pda.Result
	Account accounts.Account
	Exists  bool
	// Diagnosis is set for StatusMismatch.
	Diagnosis *diagnose.Report
}

// Checker runs preflight checks. Lookup may be nil, in which case only the
// derivation is checked and the status is StatusNeedsInit.
type Checker struct {
	Deriver *pda.Deriver
	Lookup  accounts.Lookup
	Log     *zap.Logger
}

// NewChecker returns a Checker with the default deriver.
func NewChecker(lookup accounts.Lookup, log *zap.Logger) *Checker {
	return &Checker{Deriver: pda.NewDeriver(), Lookup: lookup, Log: logging.OrNop(log)}
}

// Run derives the address, verifies any claim, and inspects the account.
// Invalid input, derivation exhaustion and lookup failures are errors; a
// mismatch is a Report with StatusMismatch.
func (c *Checker) Run(ctx context.Context, req Request) (Report, error) {
	log := logging.OrNop(c.Log)

	derived, err := c.Deriver.Derive(req.Seeds, req.Program)
	if err != nil {
		return Report{}, err
	}
	rep := Report{Derived: derived}
	log.Debug("derived",
		zap.String("seeds", pda.FormatSeeds(req.Seeds)),
		zap.Stringer("program", req.Program),
		zap.Stringer("address", derived.Address),
		zap.Uint8("bump", derived.Bump))

	if req.Claim != nil {
		ok := c.Deriver.Verify(req.Claim.Address, req.Claim.Bump, req.Seeds, req.Program)
		if !req.Claim.HasBump {
			ok = req.Claim.Address == derived.Address
		}
		if !ok {
			diag, err := diagnose.Explain(c.Deriver, *req.Claim, req.Seeds, req.Program, diagnose.Options{Programs: req.AltPrograms})
			if err != nil {
				return Report{}, err
			}
			log.Warn("derived address does not match claim",
				zap.String("seeds", pda.FormatSeeds(req.Seeds)),
				zap.Stringer("program", req.Program),
				zap.Stringer("claimed", req.Claim.Address),
				zap.Stringer("canonical", derived.Address),
				zap.Stringer("verdict", diag.Verdict))
			rep.Status = StatusMismatch
			rep.Diagnosis = &diag
			return rep, nil
		}
	}

	if c.Lookup == nil {
		rep.Status = StatusNeedsInit
		return rep, nil
	}

	acct, found, err := c.Lookup.GetAccount(ctx, derived.Address)
	if err != nil {
		return Report{}, fmt.Errorf("lookup %s: %w", derived.Address, err)
	}
	rep.Exists = found
	rep.Account = acct

	switch {
	case !found:
		rep.Status = StatusNeedsInit
		log.Info("account needs initialization", zap.String("address", derived.Address.Short()))
	case acct.Owner != req.Program:
		rep.Status = StatusWrongOwner
		log.Warn("account owned by another program",
			zap.String("address", derived.Address.Short()),
			zap.String("owner", acct.Owner.Short()),
			zap.String("program", req.Program.Short()))
	default:
		rep.Status = StatusReady
	}
	return rep, nil
}
