// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package operation - custody transfer operations
//
// an operation is created pending and leaves that state exactly once:
// to approved when both parties have signed, to emergency when an
// authority overrides, or to cancelled; ids are sequential starting
// from one
package operation

import (
	"bytes"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/F-K-C/projeto-hefesto/account"
	"github.com/F-K-C/projeto-hefesto/fault"
	"github.com/F-K-C/projeto-hefesto/records"
	"github.com/F-K-C/projeto-hefesto/storage"
)

// key into the counters pool for the number of operations
var operationCountKey = []byte("operations")

type operationData struct {
	sync.RWMutex

	log *logger.L

	initialised bool
}

var globalData operationData

// Initialise - open the operation ledger
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("operation")
	globalData.log.Info("starting…")

	globalData.initialised = true
	return nil
}

// Finalise - shut down the operation ledger
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

// Create - queue the writes for a new pending operation
//
// called from a ledger build callback with the write lock held; the
// digest does not have to be registered, an unregistered digest is a
// warning for clients and not a refusal
func Create(trx *storage.Transaction, op *records.OperationCreate, packedCreate records.Packed, createdAt uint64) (uint64, error) {
	id := Count() + 1

	value := records.PackStoredOperation(createdAt, false, false, records.Pending, packedCreate)
	trx.Put(storage.Pool.Operations, storage.Uint64ToKey(id), value)
	trx.PutN(storage.Pool.Counters, operationCountKey, id)

	globalData.log.Infof("create: id: %d  digest: %s", id, op.Digest)
	return id, nil
}

// Approve - record one party's approval of a pending operation
//
// the signer must be the party it claims to be; when the second
// approval arrives the state moves to approved in the same batch
func Approve(trx *storage.Transaction, id uint64, asOrigin bool, signer *account.Account) (records.State, error) {
	stored, err := Get(id)
	if nil != err {
		return records.None, err
	}
	if records.Pending != stored.State {
		return records.None, fault.OperationNotPending
	}

	party := stored.Destination
	if asOrigin {
		party = stored.Origin
	}
	if !bytes.Equal(signer.Bytes(), party.Bytes()) {
		return records.None, fault.WrongPartyForApproval
	}

	originApproved := stored.OriginApproved
	destinationApproved := stored.DestinationApproved
	if asOrigin {
		originApproved = true
	} else {
		destinationApproved = true
	}

	state := records.Pending
	if originApproved && destinationApproved {
		state = records.Approved
	}

	value := records.PackStoredOperation(stored.CreatedAt, originApproved, destinationApproved, state, stored.Create)
	trx.Put(storage.Pool.Operations, storage.Uint64ToKey(id), value)

	globalData.log.Infof("approve: id: %d  as origin: %t  state: %s", id, asOrigin, state)
	return state, nil
}

// EmergencyAuthorize - force a pending operation to the emergency state
//
// authority checks happen at the service layer, here only the state
// machine is enforced
func EmergencyAuthorize(trx *storage.Transaction, id uint64) error {
	return finalise(trx, id, records.Emergency)
}

// Cancel - abandon a pending operation
func Cancel(trx *storage.Transaction, id uint64) error {
	return finalise(trx, id, records.Cancelled)
}

func finalise(trx *storage.Transaction, id uint64, state records.State) error {
	stored, err := Get(id)
	if nil != err {
		return err
	}
	if records.Pending != stored.State {
		return fault.OperationNotPending
	}

	value := records.PackStoredOperation(stored.CreatedAt, stored.OriginApproved, stored.DestinationApproved, state, stored.Create)
	trx.Put(storage.Pool.Operations, storage.Uint64ToKey(id), value)

	globalData.log.Infof("finalise: id: %d  state: %s", id, state)
	return nil
}

// Get - fetch an operation by its id
func Get(id uint64) (*records.StoredOperation, error) {
	if 0 == id {
		return nil, fault.OperationNotFound
	}
	value := storage.Pool.Operations.Get(storage.Uint64ToKey(id))
	if nil == value {
		return nil, fault.OperationNotFound
	}
	stored, err := records.UnpackStoredOperation(records.Packed(value))
	if nil != err {
		return nil, err
	}
	stored.Id = id
	return stored, nil
}

// Count - total number of operations ever created
func Count() uint64 {
	n, _ := storage.Pool.Counters.GetN(operationCountKey)
	return n
}
