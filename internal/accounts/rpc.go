// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"github.com/aplane-algo/pdaverify/internal/pda"
)

// accountInfoGetter is the part of *rpc.Client used here.
type accountInfoGetter interface {
	GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error)
}

// RPC looks accounts up over JSON-RPC.
type RPC struct {
	client     accountInfoGetter
	commitment rpc.CommitmentType
	log        *zap.Logger
}

// NewRPC returns a Lookup backed by the JSON-RPC endpoint. An empty
// commitment defaults to confirmed.
func NewRPC(endpoint, commitment string, log *zap.Logger) (*RPC, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("rpc endpoint not configured")
	}
	c, err := ParseCommitment(commitment)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RPC{client: rpc.New(endpoint), commitment: c, log: log}, nil
}

// ParseCommitment validates a commitment level name.
func ParseCommitment(s string) (rpc.CommitmentType, error) {
	switch s {
	case "":
		return rpc.CommitmentConfirmed, nil
	case string(rpc.CommitmentProcessed), string(rpc.CommitmentConfirmed), string(rpc.CommitmentFinalized):
		return rpc.CommitmentType(s), nil
	default:
		return "", fmt.Errorf("invalid commitment %q (must be processed, confirmed or finalized)", s)
	}
}

// GetAccount implements Lookup.
func (r *RPC) GetAccount(ctx context.Context, addr pda.Address) (Account, bool, error) {
	out, err := r.client.GetAccountInfoWithOpts(ctx, solana.PublicKey(addr), &rpc.GetAccountInfoOpts{
		Commitment: r.commitment,
		Encoding:   solana.EncodingBase64,
	})
	if errors.Is(err, rpc.ErrNotFound) {
		r.log.Debug("account not found", zap.Stringer("address", addr))
		return Account{}, false, nil
	}
	if err != nil {
		return Account{}, false, fmt.Errorf("getAccountInfo %s: %w", addr, err)
	}
	if out == nil || out.Value == nil {
		return Account{}, false, nil
	}

	acct := Account{
		Address:    addr,
		Owner:      pda.Address(out.Value.Owner),
		Lamports:   out.Value.Lamports,
		Executable: out.Value.Executable,
	}
	if out.Value.Data != nil {
		acct.DataLen = len(out.Value.Data.GetBinary())
	}
	r.log.Debug("account found",
		zap.Stringer("address", addr),
		zap.Stringer("owner", acct.Owner),
		zap.Uint64("lamports", acct.Lamports))
	return acct, true, nil
}
