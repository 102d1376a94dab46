// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package accounts

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/aplane-algo/pdaverify/internal/pda"
)

type cachedAccount struct {
	acct  Account
	found bool
}

// Cached memoizes another Lookup for a bounded time. Both found and missing
// accounts are cached; errors are not.
type Cached struct {
	next  Lookup
	cache *expirable.LRU[pda.Address, cachedAccount]
}

// NewCached wraps next with an LRU of the given size whose entries expire
// after ttl. A non-positive size disables caching and returns next unchanged.
func NewCached(next Lookup, size int, ttl time.Duration) Lookup {
	if size <= 0 {
		return next
	}
	return &Cached{
		next:  next,
		cache: expirable.NewLRU[pda.Address, cachedAccount](size, nil, ttl),
	}
}

// GetAccount implements Lookup.
func (c *Cached) GetAccount(ctx context.Context, addr pda.Address) (Account, bool, error) {
	if hit, ok := c.cache.Get(addr); ok {
		return hit.acct, hit.found, nil
	}
	acct, found, err := c.next.GetAccount(ctx, addr)
	if err != nil {
		return Account{}, false, err
	}
	c.cache.Add(addr, cachedAccount{acct: acct, found: found})
	return acct, found, nil
}

// Forget drops a cached entry, e.g. after the account was initialized.
func (c *Cached) Forget(addr pda.Address) {
	c.cache.Remove(addr)
}
