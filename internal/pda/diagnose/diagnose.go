// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package diagnose explains why a claimed derived address does not verify.
//
// It tests a bounded set of hypotheses against configured data: the claimed
// bump, the alternate programs the operator knows about, and spelling variants
// of label seeds. It never searches over wallets or bump values beyond the
// 256 the derivation itself scans.
package diagnose

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aplane-algo/pdaverify/internal/pda"
)

// Verdict classifies a claimed (address, bump) pair.
type Verdict int

const (
	Match Verdict = iota
	NonCanonicalBump
	BumpMismatch
	NamespaceMismatch
	SeedMismatch
	Unexplained
)

func (v Verdict) String() string {
	switch v {
	case Match:
		return "match"
	case NonCanonicalBump:
		return "non-canonical bump"
	case BumpMismatch:
		return "bump mismatch"
	case NamespaceMismatch:
		return "namespace mismatch"
	case SeedMismatch:
		return "seed mismatch"
	default:
		return "unexplained"
	}
}

// Claim is what a client or an on-chain error says the address should be.
type Claim struct {
	Address pda.Address
	Bump    uint8
	// HasBump is false when only the address is known, as in most
	// "seeds constraint violated" logs.
	HasBump bool
}

// Options carries the alternate data hypotheses are drawn from.
type Options struct {
	// Programs maps a display name to an alternate program id.
	Programs map[string]pda.Address
	// SkipVariants disables label spelling variants.
	SkipVariants bool
}

// Report is the outcome of Explain.
type Report struct {
	Verdict   Verdict
	Canonical pda.Result
	Claim     Claim
	// Program is the name of the alternate program for NamespaceMismatch.
	Program string
	// Seeds holds the variant seed list for SeedMismatch.
	Seeds []pda.Seed
	// Detail is a one-line human explanation.
	Detail string
}

// Explain derives the canonical address for seeds under program and compares
// it with claim. Only invalid input or exhaustion are returned as errors;
// every mismatch is a Report.
func Explain(d *pda.Deriver, claim Claim, seeds []pda.Seed, program pda.Address, opts Options) (Report, error) {
	canonical, err := d.Derive(seeds, program)
	if err != nil {
		return Report{}, err
	}
	rep := Report{Canonical: canonical, Claim: claim}

	if canonical.Address == claim.Address {
		if !claim.HasBump || canonical.Bump == claim.Bump {
			rep.Verdict = Match
			rep.Detail = "address and bump are canonical"
			return rep, nil
		}
		rep.Verdict = BumpMismatch
		rep.Detail = fmt.Sprintf("address matches but bump %d was claimed; canonical bump is %d", claim.Bump, canonical.Bump)
		return rep, nil
	}

	if claim.HasBump {
		addr, err := d.CreateAddress(seeds, claim.Bump, program)
		if err == nil && addr == claim.Address {
			rep.Verdict = NonCanonicalBump
			rep.Detail = fmt.Sprintf("bump %d yields the claimed address but is not canonical (%d); the program will reject it", claim.Bump, canonical.Bump)
			return rep, nil
		}
		if err != nil && !errors.Is(err, pda.ErrOnCurve) {
			return Report{}, err
		}
	}

	for name, alt := range opts.Programs {
		if alt == program {
			continue
		}
		res, err := d.Derive(seeds, alt)
		if err != nil {
			continue
		}
		if res.Address == claim.Address {
			rep.Verdict = NamespaceMismatch
			rep.Program = name
			rep.Detail = fmt.Sprintf("seeds derive the claimed address under program %s (%s), not %s", name, alt, program)
			return rep, nil
		}
	}

	if !opts.SkipVariants {
		for _, variant := range LabelVariants(seeds) {
			res, err := d.Derive(variant, program)
			if err != nil {
				continue
			}
			if res.Address == claim.Address {
				rep.Verdict = SeedMismatch
				rep.Seeds = variant
				rep.Detail = fmt.Sprintf("claimed address was derived from seeds [%s]", pda.FormatSeeds(variant))
				return rep, nil
			}
		}
	}

	rep.Verdict = Unexplained
	rep.Detail = fmt.Sprintf("claimed %s, canonical %s; check seed order, encodings and program id", claim.Address, canonical)
	return rep, nil
}

// LabelVariants returns seed lists in which exactly one label seed is
// respelled: '-' and '_' swapped, or the case folded. The input is not
// modified and duplicates of the original are skipped.
func LabelVariants(seeds []pda.Seed) [][]pda.Seed {
	var out [][]pda.Seed
	for i, s := range seeds {
		if s.Kind() != pda.KindLabel {
			continue
		}
		text := s.Text()
		seen := map[string]bool{text: true}
		for _, alt := range spellings(text) {
			if seen[alt] {
				continue
			}
			seen[alt] = true
			variant := make([]pda.Seed, len(seeds))
			copy(variant, seeds)
			variant[i] = pda.Label(alt)
			out = append(out, variant)
		}
	}
	return out
}

func spellings(text string) []string {
	return []string{
		strings.ReplaceAll(text, "-", "_"),
		strings.ReplaceAll(text, "_", "-"),
		strings.ToLower(text),
		strings.ToUpper(text),
		strings.ReplaceAll(text, " ", "_"),
	}
}
