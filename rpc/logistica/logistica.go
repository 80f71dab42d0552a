// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package logistica - RPC service for custody transfer operations
package logistica

import (
	"bytes"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/F-K-C/projeto-hefesto/account"
	"github.com/F-K-C/projeto-hefesto/fault"
	"github.com/F-K-C/projeto-hefesto/inventory"
	"github.com/F-K-C/projeto-hefesto/ledger"
	"github.com/F-K-C/projeto-hefesto/mode"
	"github.com/F-K-C/projeto-hefesto/operation"
	"github.com/F-K-C/projeto-hefesto/receipt"
	"github.com/F-K-C/projeto-hefesto/records"
	"github.com/F-K-C/projeto-hefesto/rpc/ratelimit"
	"github.com/F-K-C/projeto-hefesto/storage"
)

// Logistica - type for the RPC
type Logistica struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool

	// accounts holding the override privilege, from configuration
	Authorities []*account.Account
}

const (
	rateLimitLogistica = 200
	rateBurstLogistica = 100
)

// New - create the service
func New(log *logger.L, isNormalMode func(mode.Mode) bool, authorities []*account.Account) *Logistica {
	return &Logistica{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitLogistica, rateBurstLogistica),
		IsNormalMode: isNormalMode,
		Authorities:  authorities,
	}
}

func (l *Logistica) isAuthority(acc *account.Account) bool {
	accBytes := acc.Bytes()
	for _, a := range l.Authorities {
		if bytes.Equal(accBytes, a.Bytes()) {
			return true
		}
	}
	return false
}

// ---

// CreateArguments - signed transfer creation request
type CreateArguments struct {
	Operation records.OperationCreate `json:"operation"`
}

// CreateReply - results from create RPC request
type CreateReply struct {
	Id uint64 `json:"id,string"`

	// false when the digest is not on the register, the transfer is
	// still accepted and the caller decides whether to warn
	Registered bool `json:"registered"`

	Receipt receipt.Receipt `json:"receipt"`
}

// Create - open a new pending operation, signed by the origin
func (l *Logistica) Create(arguments *CreateArguments, reply *CreateReply) error {

	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	if !l.IsNormalMode(mode.Normal) {
		return fault.NotAvailable
	}

	op := arguments.Operation
	if nil == op.Origin {
		return fault.InvalidOriginOrRegistrant
	}

	l.Log.Infof("Logistica.Create: digest: %s", op.Digest)

	packed, err := op.Pack(op.Origin)
	if nil != err {
		return err
	}

	r, err := ledger.Submit(op.Origin, op.Nonce, packed,
		func(trx *storage.Transaction, blockNumber uint64, createdAt uint64) error {
			id, err := operation.Create(trx, &op, packed, createdAt)
			if nil != err {
				return err
			}
			reply.Id = id
			return nil
		})
	if nil != err {
		return err
	}

	reply.Registered = inventory.Exists(op.Digest)
	reply.Receipt = *r
	return nil
}

// ---

// ApproveArguments - signed approval by one party
type ApproveArguments struct {
	Approval records.OperationApprove `json:"approval"`
}

// ApproveReply - results from approve RPC request
type ApproveReply struct {
	State   records.State   `json:"state"`
	Receipt receipt.Receipt `json:"receipt"`
}

// Approve - record one party's approval
func (l *Logistica) Approve(arguments *ApproveArguments, reply *ApproveReply) error {

	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	if !l.IsNormalMode(mode.Normal) {
		return fault.NotAvailable
	}

	approval := arguments.Approval
	if nil == approval.Signer {
		return fault.InvalidOriginOrRegistrant
	}

	l.Log.Infof("Logistica.Approve: id: %d  as origin: %t", approval.Id, approval.AsOrigin)

	packed, err := approval.Pack(approval.Signer)
	if nil != err {
		return err
	}

	r, err := ledger.Submit(approval.Signer, approval.Nonce, packed,
		func(trx *storage.Transaction, blockNumber uint64, createdAt uint64) error {
			state, err := operation.Approve(trx, approval.Id, approval.AsOrigin, approval.Signer)
			if nil != err {
				return err
			}
			reply.State = state
			return nil
		})
	if nil != err {
		return err
	}

	reply.Receipt = *r
	return nil
}

// ---

// EmergencyArguments - signed override by an authority
type EmergencyArguments struct {
	Authorization records.OperationEmergency `json:"authorization"`
}

// EmergencyReply - results from the override RPC request
type EmergencyReply struct {
	State   records.State   `json:"state"`
	Receipt receipt.Receipt `json:"receipt"`
}

// EmergencyAuthorize - force a pending operation through on one signature
func (l *Logistica) EmergencyAuthorize(arguments *EmergencyArguments, reply *EmergencyReply) error {

	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	if !l.IsNormalMode(mode.Normal) {
		return fault.NotAvailable
	}

	authorization := arguments.Authorization
	if nil == authorization.Signer {
		return fault.InvalidOriginOrRegistrant
	}
	if !l.isAuthority(authorization.Signer) {
		return fault.NotAuthorized
	}

	l.Log.Warnf("Logistica.EmergencyAuthorize: id: %d  authority: %s", authorization.Id, authorization.Signer)

	packed, err := authorization.Pack(authorization.Signer)
	if nil != err {
		return err
	}

	r, err := ledger.Submit(authorization.Signer, authorization.Nonce, packed,
		func(trx *storage.Transaction, blockNumber uint64, createdAt uint64) error {
			return operation.EmergencyAuthorize(trx, authorization.Id)
		})
	if nil != err {
		return err
	}

	reply.State = records.Emergency
	reply.Receipt = *r
	return nil
}

// ---

// CancelArguments - signed cancellation by an authority
type CancelArguments struct {
	Cancellation records.OperationCancel `json:"cancellation"`
}

// CancelReply - results from cancel RPC request
type CancelReply struct {
	State   records.State   `json:"state"`
	Receipt receipt.Receipt `json:"receipt"`
}

// Cancel - abandon a pending operation
func (l *Logistica) Cancel(arguments *CancelArguments, reply *CancelReply) error {

	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	if !l.IsNormalMode(mode.Normal) {
		return fault.NotAvailable
	}

	cancellation := arguments.Cancellation
	if nil == cancellation.Signer {
		return fault.InvalidOriginOrRegistrant
	}
	if !l.isAuthority(cancellation.Signer) {
		return fault.NotAuthorized
	}

	l.Log.Infof("Logistica.Cancel: id: %d", cancellation.Id)

	packed, err := cancellation.Pack(cancellation.Signer)
	if nil != err {
		return err
	}

	r, err := ledger.Submit(cancellation.Signer, cancellation.Nonce, packed,
		func(trx *storage.Transaction, blockNumber uint64, createdAt uint64) error {
			return operation.Cancel(trx, cancellation.Id)
		})
	if nil != err {
		return err
	}

	reply.State = records.Cancelled
	reply.Receipt = *r
	return nil
}

// ---

// GetArguments - operation request by id
type GetArguments struct {
	Id uint64 `json:"id,string"`
}

// GetReply - results from get RPC request
type GetReply struct {
	Operation records.StoredOperation `json:"operation"`
}

// Get - fetch one operation
func (l *Logistica) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	stored, err := operation.Get(arguments.Id)
	if nil != err {
		return err
	}
	reply.Operation = *stored
	return nil
}

// ---

// CountArguments - empty arguments
type CountArguments struct{}

// CountReply - total operations ever created
type CountReply struct {
	Count uint64 `json:"count,string"`
}

// Count - number of operations
func (l *Logistica) Count(_ *CountArguments, reply *CountReply) error {

	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	reply.Count = operation.Count()
	return nil
}
