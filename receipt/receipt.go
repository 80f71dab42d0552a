// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package receipt - confirmation of an accepted ledger write
//
// every accepted write is acknowledged with its ledger position,
// the transaction id of the signed request and the byte cost of
// the stored record, recent receipts are retained in an expiring
// cache so a client can re-fetch one shortly after submission
package receipt

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/F-K-C/projeto-hefesto/digest"
	"github.com/F-K-C/projeto-hefesto/fault"
)

// Receipt - result of a successful ledger write
type Receipt struct {
	BlockNumber uint64        `json:"blockNumber"`
	TxId        digest.Digest `json:"txId"`
	Cost        uint64        `json:"cost"`
}

// retention of recent receipts
const (
	cacheExpiry  = 10 * time.Minute
	cacheCleanup = time.Minute
)

var recent *gocache.Cache

// Initialise - create the recent receipt cache
func Initialise() error {
	if nil != recent {
		return fault.AlreadyInitialised
	}
	recent = gocache.New(cacheExpiry, cacheCleanup)
	return nil
}

// Finalise - drop the recent receipt cache
func Finalise() error {
	if nil == recent {
		return fault.NotInitialised
	}
	recent = nil
	return nil
}

// Store - retain a receipt for later retrieval by transaction id
func Store(r *Receipt) {
	if nil == recent {
		return
	}
	recent.Set(r.TxId.String(), r, gocache.DefaultExpiration)
}

// Fetch - retrieve a recently stored receipt
func Fetch(txId digest.Digest) (*Receipt, error) {
	if nil == recent {
		return nil, fault.NotInitialised
	}
	if r, ok := recent.Get(txId.String()); ok {
		return r.(*Receipt), nil
	}
	return nil, fault.ReceiptNotFound
}
