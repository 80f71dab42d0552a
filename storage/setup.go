// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - the ledger data store
//
// a single goleveldb database partitioned into pools by a one byte
// key prefix; all writes for one ledger transaction go through a
// Transaction batch so they land atomically
package storage

import (
	"encoding/binary"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/F-K-C/projeto-hefesto/fault"
	"github.com/bitmark-inc/logger"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Items      *PoolHandle `prefix:"I"` // digest → stored item
	ItemIndex  *PoolHandle `prefix:"X"` // big endian index → digest
	Operations *PoolHandle `prefix:"O"` // big endian id → stored operation
	Nonces     *PoolHandle `prefix:"A"` // account bytes → next nonce
	Counters   *PoolHandle `prefix:"N"` // name → big endian count
	Journal    *PoolHandle `prefix:"J"` // big endian block number → packed signed request
	TestData   *PoolHandle `prefix:"Z"` // used by unit tests
}

// Pool - the set of exported pools
var Pool pools

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
)

// holds the database handle
var poolData struct {
	sync.RWMutex
	db  *leveldb.DB
	log *logger.L
}

// Initialise - open up the database connection
//
// this must be called before any pool is accessed
func Initialise(database string) error {
	poolData.Lock()
	defer poolData.Unlock()

	if nil != poolData.db {
		return fault.AlreadyInitialised
	}

	poolData.log = logger.New("storage")
	poolData.log.Info("starting…")

	db, err := leveldb.OpenFile(database, nil)
	if nil != err {
		return err
	}

	// ensure no database downgrade
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		version := make([]byte, 4)
		binary.BigEndian.PutUint32(version, currentDBVersion)
		err = db.Put(versionKey, version, &ldb_opt.WriteOptions{Sync: true})
		if nil != err {
			db.Close()
			return err
		}
	} else if nil != err {
		db.Close()
		return err
	} else {
		version := binary.BigEndian.Uint32(versionValue)
		if currentDBVersion != version {
			db.Close()
			poolData.log.Criticalf("incompatible database version: %d  expected: %d", version, currentDBVersion)
			return fault.DataInconsistent
		}
	}

	poolData.db = db

	// this will be a struct type
	poolType := reflect.TypeOf(Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&Pool).Elem()

	// scan each field to locate its prefix tag
	for i := 0; i < poolType.NumField(); i += 1 {
		fieldInfo := poolType.Field(i)
		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			db.Close()
			poolData.db = nil
			logger.Panicf("storage: pool: %s has invalid prefix: %q", fieldInfo.Name, prefixTag)
		}

		p := &PoolHandle{
			prefix: prefixTag[0],
		}
		newPool := reflect.ValueOf(p)
		poolValue.Field(i).Set(newPool)
	}

	return nil
}

// Finalise - close the database connection
func Finalise() {
	poolData.Lock()
	defer poolData.Unlock()

	if nil == poolData.db {
		return
	}
	poolData.db.Close()
	poolData.db = nil
	poolData.log.Info("finished")
	poolData.log.Flush()
}

// IsInitialised - check the database is open, for startup ordering checks
func IsInitialised() bool {
	poolData.RLock()
	defer poolData.RUnlock()
	return nil != poolData.db
}
