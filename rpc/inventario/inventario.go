// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package inventario - RPC service for the asset register
package inventario

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/F-K-C/projeto-hefesto/digest"
	"github.com/F-K-C/projeto-hefesto/fault"
	"github.com/F-K-C/projeto-hefesto/inventory"
	"github.com/F-K-C/projeto-hefesto/ledger"
	"github.com/F-K-C/projeto-hefesto/mode"
	"github.com/F-K-C/projeto-hefesto/receipt"
	"github.com/F-K-C/projeto-hefesto/records"
	"github.com/F-K-C/projeto-hefesto/rpc/ratelimit"
	"github.com/F-K-C/projeto-hefesto/storage"
)

// Inventario - type for the RPC
type Inventario struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool
}

const (
	rateLimitInventario = 200
	rateBurstInventario = 100
)

// New - create the service
func New(log *logger.L, isNormalMode func(mode.Mode) bool) *Inventario {
	return &Inventario{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitInventario, rateBurstInventario),
		IsNormalMode: isNormalMode,
	}
}

// ---

// RegisterArguments - signed item registration request
type RegisterArguments struct {
	Item records.ItemData `json:"item"`
}

// RegisterReply - results from register RPC request
type RegisterReply struct {
	Index   uint64          `json:"index,string"`
	Receipt receipt.Receipt `json:"receipt"`
}

// Register - store one new item on the ledger
func (inv *Inventario) Register(arguments *RegisterArguments, reply *RegisterReply) error {

	if err := ratelimit.Limit(inv.Limiter); nil != err {
		return err
	}

	if !inv.IsNormalMode(mode.Normal) {
		return fault.NotAvailable
	}

	item := arguments.Item
	if nil == item.Registrant {
		return fault.InvalidOriginOrRegistrant
	}

	inv.Log.Infof("Inventario.Register: digest: %s  serial: %q", item.Digest, item.Serial)

	// validates all fields and verifies the signature
	packed, err := item.Pack(item.Registrant)
	if nil != err {
		return err
	}

	r, err := ledger.Submit(item.Registrant, item.Nonce, packed,
		func(trx *storage.Transaction, blockNumber uint64, createdAt uint64) error {
			index, err := inventory.Register(trx, &item, packed, createdAt)
			if nil != err {
				return err
			}
			reply.Index = index
			return nil
		})
	if nil != err {
		return err
	}

	reply.Receipt = *r
	return nil
}

// ---

// GetArguments - item request by digest
type GetArguments struct {
	Digest digest.Digest `json:"digest"`
}

// GetReply - results from get RPC request
type GetReply struct {
	Item records.StoredItem `json:"item"`
}

// Get - fetch one registered item
func (inv *Inventario) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(inv.Limiter); nil != err {
		return err
	}

	stored, err := inventory.Get(arguments.Digest)
	if nil != err {
		return err
	}
	reply.Item = *stored
	return nil
}

// ---

// RegisteredArguments - existence check by digest
type RegisteredArguments struct {
	Digest digest.Digest `json:"digest"`
}

// RegisteredReply - result of the existence check
type RegisteredReply struct {
	Registered bool `json:"registered"`
}

// Registered - check whether a digest is on the register
func (inv *Inventario) Registered(arguments *RegisteredArguments, reply *RegisteredReply) error {

	if err := ratelimit.Limit(inv.Limiter); nil != err {
		return err
	}

	reply.Registered = inventory.Exists(arguments.Digest)
	return nil
}

// ---

// DigestAtArguments - index into the registration order
type DigestAtArguments struct {
	Index uint64 `json:"index,string"`
}

// DigestAtReply - the digest at the requested index
type DigestAtReply struct {
	Digest digest.Digest `json:"digest"`
}

// DigestAt - walk the register in registration order
func (inv *Inventario) DigestAt(arguments *DigestAtArguments, reply *DigestAtReply) error {

	if err := ratelimit.Limit(inv.Limiter); nil != err {
		return err
	}

	d, err := inventory.DigestAt(arguments.Index)
	if nil != err {
		return err
	}
	reply.Digest = d
	return nil
}

// ---

// CountArguments - empty arguments
type CountArguments struct{}

// CountReply - total registered items
type CountReply struct {
	Count uint64 `json:"count,string"`
}

// Count - number of registered items
func (inv *Inventario) Count(_ *CountArguments, reply *CountReply) error {

	if err := ratelimit.Limit(inv.Limiter); nil != err {
		return err
	}

	reply.Count = inventory.Count()
	return nil
}
