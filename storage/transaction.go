// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/F-K-C/projeto-hefesto/fault"
)

// Transaction - a batch of writes over any pools committed atomically
//
// there is no isolation between concurrent transactions: the ledger
// layer holds its own write lock around build and commit
type Transaction struct {
	batch *leveldb.Batch
}

// NewTransaction - start an empty batch
func NewTransaction() *Transaction {
	return &Transaction{
		batch: new(leveldb.Batch),
	}
}

// Put - queue a key/value write into a pool
func (t *Transaction) Put(p *PoolHandle, key []byte, value []byte) {
	t.batch.Put(p.prefixKey(key), value)
}

// PutN - queue a big endian counter write into a pool
func (t *Transaction) PutN(p *PoolHandle, key []byte, value uint64) {
	t.batch.Put(p.prefixKey(key), Uint64ToValue(value))
}

// Commit - write the whole batch, fsynced
func (t *Transaction) Commit() error {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return fault.NotInitialised
	}
	return poolData.db.Write(t.batch, nil)
}
