// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package inventory - the write-once register of physical assets
//
// items are keyed by the SHA-256 digest of their documentation, a
// second pool maps the registration order back to digests so the
// register can be walked by index
package inventory

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/F-K-C/projeto-hefesto/digest"
	"github.com/F-K-C/projeto-hefesto/fault"
	"github.com/F-K-C/projeto-hefesto/records"
	"github.com/F-K-C/projeto-hefesto/storage"
)

// key into the counters pool for the number of registered items
var itemCountKey = []byte("items")

type inventoryData struct {
	sync.RWMutex

	log *logger.L

	initialised bool
}

var globalData inventoryData

// Initialise - open the inventory register
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("inventory")
	globalData.log.Info("starting…")

	globalData.initialised = true
	return nil
}

// Finalise - shut down the inventory register
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.initialised = false
	return nil
}

// Register - queue the writes for one new item
//
// called from a ledger build callback so the write lock is already
// held; refuses a digest that is already registered
func Register(trx *storage.Transaction, item *records.ItemData, packedItem records.Packed, createdAt uint64) (uint64, error) {
	digestKey := item.Digest.Bytes()
	if storage.Pool.Items.Has(digestKey) {
		return 0, fault.DuplicateAsset
	}

	index := Count()

	trx.Put(storage.Pool.Items, digestKey, records.PackStoredItem(createdAt, packedItem))
	trx.Put(storage.Pool.ItemIndex, storage.Uint64ToKey(index), digestKey)
	trx.PutN(storage.Pool.Counters, itemCountKey, index+1)

	globalData.log.Infof("register: index: %d  digest: %s  serial: %q", index, item.Digest, item.Serial)
	return index, nil
}

// Exists - check if a digest is already registered
func Exists(d digest.Digest) bool {
	return storage.Pool.Items.Has(d.Bytes())
}

// Get - fetch a registered item by its digest
func Get(d digest.Digest) (*records.StoredItem, error) {
	value := storage.Pool.Items.Get(d.Bytes())
	if nil == value {
		return nil, fault.AssetNotFound
	}
	return records.UnpackStoredItem(records.Packed(value))
}

// Count - total number of registered items
func Count() uint64 {
	n, _ := storage.Pool.Counters.GetN(itemCountKey)
	return n
}

// DigestAt - the digest registered at a zero based index
func DigestAt(index uint64) (digest.Digest, error) {
	value := storage.Pool.ItemIndex.Get(storage.Uint64ToKey(index))
	if nil == value {
		return digest.Digest{}, fault.InvalidItemIndex
	}
	var d digest.Digest
	if err := digest.DigestFromBytes(&d, value); nil != err {
		return digest.Digest{}, err
	}
	return d, nil
}
