// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package node - RPC service for daemon state
package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/F-K-C/projeto-hefesto/account"
	"github.com/F-K-C/projeto-hefesto/counter"
	"github.com/F-K-C/projeto-hefesto/digest"
	"github.com/F-K-C/projeto-hefesto/fault"
	"github.com/F-K-C/projeto-hefesto/inventory"
	"github.com/F-K-C/projeto-hefesto/ledger"
	"github.com/F-K-C/projeto-hefesto/mode"
	"github.com/F-K-C/projeto-hefesto/operation"
	"github.com/F-K-C/projeto-hefesto/receipt"
	"github.com/F-K-C/projeto-hefesto/rpc/ratelimit"
)

// Node - type for the RPC
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string

	counter *counter.Counter
}

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// New - create the service
func New(log *logger.L, start time.Time, version string, connectionCount *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		counter: connectionCount,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Chain      string `json:"chain"`
	Mode       string `json:"mode"`
	Blocks     uint64 `json:"blocks,string"`
	Items      uint64 `json:"items,string"`
	Operations uint64 `json:"operations,string"`
	RPCs       uint64 `json:"rpcs"`
	Version    string `json:"version"`
	Uptime     string `json:"uptime"`
}

// Info - return enough information for clients to determine daemon state
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	reply.Chain = mode.ChainName()
	reply.Mode = mode.String()
	reply.Blocks = ledger.BlockCount()
	reply.Items = inventory.Count()
	reply.Operations = operation.Count()
	reply.RPCs = node.counter.Uint64()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	return nil
}

// ---

// NonceArguments - account whose next nonce is wanted
type NonceArguments struct {
	Account *account.Account `json:"account"`
}

// NonceReply - the value to use on the account's next submission
type NonceReply struct {
	Nonce uint64 `json:"nonce,string"`
}

// Nonce - read an account's next nonce, to be fetched immediately
// before each submission
func (node *Node) Nonce(arguments *NonceArguments, reply *NonceReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	if nil == arguments.Account {
		return fault.MissingParameters
	}

	reply.Nonce = ledger.Nonce(arguments.Account)
	return nil
}

// ---

// ReceiptArguments - transaction id of a recent submission
type ReceiptArguments struct {
	TxId digest.Digest `json:"txId"`
}

// ReceiptReply - the cached receipt
type ReceiptReply struct {
	Receipt receipt.Receipt `json:"receipt"`
}

// Receipt - recover the receipt of a recent submission, lets a client
// that timed out confirm the outcome instead of retrying blindly
func (node *Node) Receipt(arguments *ReceiptArguments, reply *ReceiptReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	r, err := receipt.Fetch(arguments.TxId)
	if nil != err {
		return err
	}
	reply.Receipt = *r
	return nil
}
