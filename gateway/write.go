// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateway

import (
	"github.com/F-K-C/projeto-hefesto/account"
	"github.com/F-K-C/projeto-hefesto/digest"
	"github.com/F-K-C/projeto-hefesto/fault"
	"github.com/F-K-C/projeto-hefesto/records"
	"github.com/F-K-C/projeto-hefesto/rpc/inventario"
	"github.com/F-K-C/projeto-hefesto/rpc/logistica"
)

// RegisterItemData - data for an item registration
//
// the digest travels as canonical 0x-hex text and is unpacked to its
// raw bytes here at the boundary
type RegisterItemData struct {
	Registrant *account.PrivateKey
	Digest     string
	Serial     string
	Category   string
	Model      string
	Condition  string
}

// RegisterItem - sign and submit one item registration
func (c *Client) RegisterItem(data *RegisterItemData) (*inventario.RegisterReply, error) {

	d, err := digest.DigestFromString(data.Digest)
	if nil != err {
		return nil, err
	}
	condition, err := records.ConditionFromString(data.Condition)
	if nil != err {
		return nil, err
	}

	acc := data.Registrant.Account()
	lock := c.nonceLock(acc.String())
	lock.Lock()
	defer lock.Unlock()

	nonce, err := c.Nonce(acc)
	if nil != err {
		return nil, err
	}

	item := records.ItemData{
		Nonce:      nonce,
		Digest:     d,
		Serial:     data.Serial,
		Category:   data.Category,
		Model:      data.Model,
		Condition:  condition,
		Registrant: acc,
	}
	if err := c.signRecord(&item, data.Registrant, func(s account.Signature) { item.Signature = s }); nil != err {
		return nil, err
	}

	c.printJson("Register Request", item)

	var reply inventario.RegisterReply
	if err := c.submit("Inventario.Register", &inventario.RegisterArguments{Item: item}, &reply); nil != err {
		return nil, err
	}

	c.printJson("Register Reply", reply)
	return &reply, nil
}

// CreateOperationData - data for opening a custody transfer
type CreateOperationData struct {
	Origin      *account.PrivateKey
	Destination *account.Account
	Digest      string
}

// CreateOperation - sign and submit a new transfer operation
//
// Registered is false in the reply when the digest is not on the
// register, callers surface that as a warning and not a failure
func (c *Client) CreateOperation(data *CreateOperationData) (*logistica.CreateReply, error) {

	d, err := digest.DigestFromString(data.Digest)
	if nil != err {
		return nil, err
	}

	acc := data.Origin.Account()
	lock := c.nonceLock(acc.String())
	lock.Lock()
	defer lock.Unlock()

	nonce, err := c.Nonce(acc)
	if nil != err {
		return nil, err
	}

	op := records.OperationCreate{
		Nonce:       nonce,
		Origin:      acc,
		Destination: data.Destination,
		Digest:      d,
	}
	if err := c.signRecord(&op, data.Origin, func(s account.Signature) { op.Signature = s }); nil != err {
		return nil, err
	}

	c.printJson("Create Request", op)

	var reply logistica.CreateReply
	if err := c.submit("Logistica.Create", &logistica.CreateArguments{Operation: op}, &reply); nil != err {
		return nil, err
	}

	c.printJson("Create Reply", reply)
	return &reply, nil
}

// ApproveData - one party's approval of a pending operation
type ApproveData struct {
	Signer   *account.PrivateKey
	Id       uint64
	AsOrigin bool
}

// Approve - sign and submit an approval
func (c *Client) Approve(data *ApproveData) (*logistica.ApproveReply, error) {

	acc := data.Signer.Account()
	lock := c.nonceLock(acc.String())
	lock.Lock()
	defer lock.Unlock()

	nonce, err := c.Nonce(acc)
	if nil != err {
		return nil, err
	}

	approval := records.OperationApprove{
		Nonce:    nonce,
		Id:       data.Id,
		AsOrigin: data.AsOrigin,
		Signer:   acc,
	}
	if err := c.signRecord(&approval, data.Signer, func(s account.Signature) { approval.Signature = s }); nil != err {
		return nil, err
	}

	c.printJson("Approve Request", approval)

	var reply logistica.ApproveReply
	if err := c.submit("Logistica.Approve", &logistica.ApproveArguments{Approval: approval}, &reply); nil != err {
		return nil, err
	}

	c.printJson("Approve Reply", reply)
	return &reply, nil
}

// AuthorityData - an authority action on a pending operation
type AuthorityData struct {
	Authority *account.PrivateKey
	Id        uint64
}

// EmergencyAuthorize - sign and submit an emergency override
func (c *Client) EmergencyAuthorize(data *AuthorityData) (*logistica.EmergencyReply, error) {

	acc := data.Authority.Account()
	lock := c.nonceLock(acc.String())
	lock.Lock()
	defer lock.Unlock()

	nonce, err := c.Nonce(acc)
	if nil != err {
		return nil, err
	}

	authorization := records.OperationEmergency{
		Nonce:  nonce,
		Id:     data.Id,
		Signer: acc,
	}
	if err := c.signRecord(&authorization, data.Authority, func(s account.Signature) { authorization.Signature = s }); nil != err {
		return nil, err
	}

	c.printJson("Emergency Request", authorization)

	var reply logistica.EmergencyReply
	if err := c.submit("Logistica.EmergencyAuthorize", &logistica.EmergencyArguments{Authorization: authorization}, &reply); nil != err {
		return nil, err
	}

	c.printJson("Emergency Reply", reply)
	return &reply, nil
}

// CancelOperation - sign and submit a cancellation
func (c *Client) CancelOperation(data *AuthorityData) (*logistica.CancelReply, error) {

	acc := data.Authority.Account()
	lock := c.nonceLock(acc.String())
	lock.Lock()
	defer lock.Unlock()

	nonce, err := c.Nonce(acc)
	if nil != err {
		return nil, err
	}

	cancellation := records.OperationCancel{
		Nonce:  nonce,
		Id:     data.Id,
		Signer: acc,
	}
	if err := c.signRecord(&cancellation, data.Authority, func(s account.Signature) { cancellation.Signature = s }); nil != err {
		return nil, err
	}

	c.printJson("Cancel Request", cancellation)

	var reply logistica.CancelReply
	if err := c.submit("Logistica.Cancel", &logistica.CancelArguments{Cancellation: cancellation}, &reply); nil != err {
		return nil, err
	}

	c.printJson("Cancel Reply", reply)
	return &reply, nil
}

// pack once for the unsigned message, sign it and store the signature
func (c *Client) signRecord(r records.Record, key *account.PrivateKey, set func(account.Signature)) error {
	unsigned, err := r.Pack(key.Account())
	if fault.InvalidSignature != err {
		// the record itself is malformed
		if nil == err {
			return fault.DataInconsistent
		}
		return err
	}
	set(key.Sign(unsigned))
	return nil
}
