// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateway

import (
	"github.com/F-K-C/projeto-hefesto/account"
	"github.com/F-K-C/projeto-hefesto/digest"
	"github.com/F-K-C/projeto-hefesto/receipt"
	"github.com/F-K-C/projeto-hefesto/records"
	"github.com/F-K-C/projeto-hefesto/rpc/inventario"
	"github.com/F-K-C/projeto-hefesto/rpc/logistica"
	"github.com/F-K-C/projeto-hefesto/rpc/node"
)

// Registered - check whether a digest is on the register
func (c *Client) Registered(digestText string) (bool, error) {
	d, err := digest.DigestFromString(digestText)
	if nil != err {
		return false, err
	}

	var reply inventario.RegisteredReply
	if err := c.call("Inventario.Registered", &inventario.RegisteredArguments{Digest: d}, &reply); nil != err {
		return false, err
	}
	return reply.Registered, nil
}

// Item - fetch a registered item by digest
func (c *Client) Item(digestText string) (*records.StoredItem, error) {
	d, err := digest.DigestFromString(digestText)
	if nil != err {
		return nil, err
	}

	var reply inventario.GetReply
	if err := c.call("Inventario.Get", &inventario.GetArguments{Digest: d}, &reply); nil != err {
		return nil, err
	}
	return &reply.Item, nil
}

// DigestAt - the digest at a zero based registration index
func (c *Client) DigestAt(index uint64) (digest.Digest, error) {
	var reply inventario.DigestAtReply
	if err := c.call("Inventario.DigestAt", &inventario.DigestAtArguments{Index: index}, &reply); nil != err {
		return digest.Digest{}, err
	}
	return reply.Digest, nil
}

// Count - total registered items
func (c *Client) Count() (uint64, error) {
	var reply inventario.CountReply
	if err := c.call("Inventario.Count", &inventario.CountArguments{}, &reply); nil != err {
		return 0, err
	}
	return reply.Count, nil
}

// Operation - fetch a transfer operation by id
func (c *Client) Operation(id uint64) (*records.StoredOperation, error) {
	var reply logistica.GetReply
	if err := c.call("Logistica.Get", &logistica.GetArguments{Id: id}, &reply); nil != err {
		return nil, err
	}
	reply.Operation.Id = id
	return &reply.Operation, nil
}

// OperationCount - total operations ever created
func (c *Client) OperationCount() (uint64, error) {
	var reply logistica.CountReply
	if err := c.call("Logistica.Count", &logistica.CountArguments{}, &reply); nil != err {
		return 0, err
	}
	return reply.Count, nil
}

// Nonce - the account's next expected nonce
func (c *Client) Nonce(acc *account.Account) (uint64, error) {
	var reply node.NonceReply
	if err := c.call("Node.Nonce", &node.NonceArguments{Account: acc}, &reply); nil != err {
		return 0, err
	}
	return reply.Nonce, nil
}

// Info - daemon state summary
func (c *Client) Info() (*node.InfoReply, error) {
	var reply node.InfoReply
	if err := c.call("Node.Info", &node.InfoArguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// ReceiptByTx - recover the receipt of a recent submission
func (c *Client) ReceiptByTx(txId string) (*receipt.Receipt, error) {
	d, err := digest.DigestFromString(txId)
	if nil != err {
		return nil, err
	}

	var reply node.ReceiptReply
	if err := c.call("Node.Receipt", &node.ReceiptArguments{TxId: d}, &reply); nil != err {
		return nil, err
	}
	return &reply.Receipt, nil
}
