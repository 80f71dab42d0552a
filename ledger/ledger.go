// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the single serialisation point for all writes
//
// every accepted request is appended to the journal under a strictly
// increasing block number and the submitting account's nonce is
// advanced, all inside one database batch together with the semantic
// writes supplied by the caller, so a crash can never leave a half
// applied request behind
package ledger

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/F-K-C/projeto-hefesto/account"
	"github.com/F-K-C/projeto-hefesto/fault"
	"github.com/F-K-C/projeto-hefesto/mode"
	"github.com/F-K-C/projeto-hefesto/receipt"
	"github.com/F-K-C/projeto-hefesto/records"
	"github.com/F-K-C/projeto-hefesto/storage"
)

// key into the counters pool for the journal height
var blockCountKey = []byte("blocks")

// Builder - adds the semantic writes of one request to a batch
//
// called while the ledger write lock is held
type Builder func(trx *storage.Transaction, blockNumber uint64, createdAt uint64) error

type ledgerData struct {
	sync.Mutex // serialises all writes

	log *logger.L

	initialised bool
}

var globalData ledgerData

// Initialise - start the ledger layer
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("ledger")
	globalData.log.Info("starting…")

	if err := receipt.Initialise(); nil != err {
		return err
	}

	globalData.initialised = true
	return nil
}

// Finalise - stop the ledger layer
func Finalise() error {
	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.initialised = false

	return receipt.Finalise()
}

// Nonce - the value the given account must use on its next request
func Nonce(acc *account.Account) uint64 {
	n, _ := storage.Pool.Nonces.GetN(acc.Bytes())
	return n
}

// BlockCount - current height of the journal
func BlockCount() uint64 {
	n, _ := storage.Pool.Counters.GetN(blockCountKey)
	return n
}

// Entry - the signed request stored at a journal position
func Entry(blockNumber uint64) (records.Packed, error) {
	value := storage.Pool.Journal.Get(storage.Uint64ToKey(blockNumber))
	if nil == value {
		return nil, fault.InvalidItemIndex
	}
	return records.Packed(value), nil
}

// Submit - validate the envelope of a signed request and append it
//
// the build callback queues the semantic writes for this request, the
// journal entry, nonce advance, height update and semantic writes all
// commit in one batch
func Submit(signer *account.Account, nonce uint64, packed records.Packed, build Builder) (*receipt.Receipt, error) {
	if !globalData.initialised {
		return nil, fault.NotInitialised
	}

	if signer.IsTesting() != mode.IsTesting() {
		return nil, fault.WrongNetworkAccount
	}

	globalData.Lock()
	defer globalData.Unlock()

	nonceKey := signer.Bytes()
	expected, _ := storage.Pool.Nonces.GetN(nonceKey)
	if nonce != expected {
		globalData.log.Warnf("nonce mismatch for %s: have: %d  expected: %d", signer, nonce, expected)
		return nil, fault.InvalidNonce
	}

	blockNumber := BlockCount() + 1
	createdAt := uint64(time.Now().Unix())

	trx := storage.NewTransaction()
	trx.PutN(storage.Pool.Nonces, nonceKey, nonce+1)
	trx.PutN(storage.Pool.Counters, blockCountKey, blockNumber)
	trx.Put(storage.Pool.Journal, storage.Uint64ToKey(blockNumber), packed)

	if err := build(trx, blockNumber, createdAt); nil != err {
		return nil, err
	}

	if err := trx.Commit(); nil != err {
		globalData.log.Criticalf("commit failed: %s", err)
		return nil, err
	}

	r := &receipt.Receipt{
		BlockNumber: blockNumber,
		TxId:        packed.TxId(),
		Cost:        uint64(len(packed)),
	}
	receipt.Store(r)

	globalData.log.Infof("block: %d  tx: %s", r.BlockNumber, r.TxId)
	return r, nil
}
