// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package logistica_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/F-K-C/projeto-hefesto/account"
	"github.com/F-K-C/projeto-hefesto/chain"
	"github.com/F-K-C/projeto-hefesto/digest"
	"github.com/F-K-C/projeto-hefesto/fault"
	"github.com/F-K-C/projeto-hefesto/fixtures"
	"github.com/F-K-C/projeto-hefesto/inventory"
	"github.com/F-K-C/projeto-hefesto/ledger"
	"github.com/F-K-C/projeto-hefesto/mode"
	"github.com/F-K-C/projeto-hefesto/operation"
	"github.com/F-K-C/projeto-hefesto/records"
	"github.com/F-K-C/projeto-hefesto/rpc/inventario"
	"github.com/F-K-C/projeto-hefesto/rpc/logistica"
)

var authority *account.PrivateKey

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	if err := fixtures.SetupTestStorage(); nil != err {
		fixtures.TeardownTestLogger()
		os.Exit(1)
	}
	_ = mode.Initialise(chain.Testing)
	_ = ledger.Initialise()
	_ = inventory.Initialise()
	_ = operation.Initialise()
	mode.Set(mode.Normal)

	authority, _ = account.NewKeypair(true)

	rc := m.Run()

	_ = operation.Finalise()
	_ = inventory.Finalise()
	_ = ledger.Finalise()
	_ = mode.Finalise()
	fixtures.TeardownTestStorage()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func testService(t *testing.T) *logistica.Logistica {
	t.Helper()
	return logistica.New(
		logger.New(fixtures.LogCategory),
		mode.Is,
		[]*account.Account{authority.Account()},
	)
}

func makeKey(t *testing.T) *account.PrivateKey {
	t.Helper()
	key, err := account.NewKeypair(true)
	assert.NoError(t, err, "keypair")
	return key
}

// sign any record at the key's current nonce by packing twice
func sign(t *testing.T, r records.Record, key *account.PrivateKey, set func(account.Signature)) {
	t.Helper()
	unsigned, err := r.Pack(key.Account())
	assert.Equal(t, fault.InvalidSignature, err, "unsigned pack")
	set(key.Sign(unsigned))
}

func createOperation(t *testing.T, service *logistica.Logistica, origin *account.PrivateKey, destination *account.PrivateKey, content string) *logistica.CreateReply {
	t.Helper()

	op := records.OperationCreate{
		Nonce:       ledger.Nonce(origin.Account()),
		Origin:      origin.Account(),
		Destination: destination.Account(),
		Digest:      digest.NewDigest([]byte(content)),
	}
	sign(t, &op, origin, func(s account.Signature) { op.Signature = s })

	var reply logistica.CreateReply
	err := service.Create(&logistica.CreateArguments{Operation: op}, &reply)
	assert.NoError(t, err, "create")
	assert.NotZero(t, reply.Id, "operation id")
	return &reply
}

func approve(t *testing.T, service *logistica.Logistica, id uint64, asOrigin bool, key *account.PrivateKey) (*logistica.ApproveReply, error) {
	t.Helper()

	approval := records.OperationApprove{
		Nonce:    ledger.Nonce(key.Account()),
		Id:       id,
		AsOrigin: asOrigin,
		Signer:   key.Account(),
	}
	sign(t, &approval, key, func(s account.Signature) { approval.Signature = s })

	var reply logistica.ApproveReply
	err := service.Approve(&logistica.ApproveArguments{Approval: approval}, &reply)
	return &reply, err
}

func emergencyAuthorize(t *testing.T, service *logistica.Logistica, id uint64, key *account.PrivateKey) (*logistica.EmergencyReply, error) {
	t.Helper()

	authorization := records.OperationEmergency{
		Nonce:  ledger.Nonce(key.Account()),
		Id:     id,
		Signer: key.Account(),
	}
	sign(t, &authorization, key, func(s account.Signature) { authorization.Signature = s })

	var reply logistica.EmergencyReply
	err := service.EmergencyAuthorize(&logistica.EmergencyArguments{Authorization: authorization}, &reply)
	return &reply, err
}

func cancel(t *testing.T, service *logistica.Logistica, id uint64, key *account.PrivateKey) (*logistica.CancelReply, error) {
	t.Helper()

	cancellation := records.OperationCancel{
		Nonce:  ledger.Nonce(key.Account()),
		Id:     id,
		Signer: key.Account(),
	}
	sign(t, &cancellation, key, func(s account.Signature) { cancellation.Signature = s })

	var reply logistica.CancelReply
	err := service.Cancel(&logistica.CancelArguments{Cancellation: cancellation}, &reply)
	return &reply, err
}

// full scenario: register an item, open a transfer, override it, then
// verify the terminal state refuses a late approval
func TestEmergencyScenario(t *testing.T) {
	service := testService(t)
	origin := makeKey(t)
	destination := makeKey(t)

	// register the item being transferred
	invService := inventario.New(logger.New(fixtures.LogCategory), mode.Is)
	item := records.ItemData{
		Nonce:      ledger.Nonce(origin.Account()),
		Digest:     digest.NewDigest([]byte("laudo: fuzil 199")),
		Serial:     "FZ-199",
		Category:   "Fuzil",
		Model:      "IA2",
		Condition:  records.InUse,
		Registrant: origin.Account(),
	}
	sign(t, &item, origin, func(s account.Signature) { item.Signature = s })
	var regReply inventario.RegisterReply
	err := invService.Register(&inventario.RegisterArguments{Item: item}, &regReply)
	assert.NoError(t, err, "register")

	created := createOperation(t, service, origin, destination, "laudo: fuzil 199")
	assert.True(t, created.Registered, "digest should be on the register")

	// only a configured authority may override
	_, err = emergencyAuthorize(t, service, created.Id, origin)
	assert.Equal(t, fault.NotAuthorized, err, "party override")

	reply, err := emergencyAuthorize(t, service, created.Id, authority)
	assert.NoError(t, err, "authority override")
	assert.Equal(t, records.Emergency, reply.State, "state")

	var got logistica.GetReply
	err = service.Get(&logistica.GetArguments{Id: created.Id}, &got)
	assert.NoError(t, err, "get")
	assert.Equal(t, records.Emergency, got.Operation.State, "stored state")

	// terminal: a late approval must fail
	_, err = approve(t, service, created.Id, true, origin)
	assert.Equal(t, fault.OperationNotPending, err, "approve after override")
}

func TestDualApproval(t *testing.T) {
	service := testService(t)
	origin := makeKey(t)
	destination := makeKey(t)

	created := createOperation(t, service, origin, destination, "laudo: viatura 500")
	assert.False(t, created.Registered, "unregistered digest flagged as registered")

	// wrong party first
	outsider := makeKey(t)
	_, err := approve(t, service, created.Id, true, outsider)
	assert.Equal(t, fault.WrongPartyForApproval, err, "outsider approval")

	reply, err := approve(t, service, created.Id, true, origin)
	assert.NoError(t, err, "origin approval")
	assert.Equal(t, records.Pending, reply.State, "state after one approval")

	reply, err = approve(t, service, created.Id, false, destination)
	assert.NoError(t, err, "destination approval")
	assert.Equal(t, records.Approved, reply.State, "state after both approvals")
}

func TestCancel(t *testing.T) {
	service := testService(t)
	origin := makeKey(t)
	destination := makeKey(t)

	created := createOperation(t, service, origin, destination, "laudo: radio 600")

	// parties cannot cancel, only authorities
	_, err := cancel(t, service, created.Id, origin)
	assert.Equal(t, fault.NotAuthorized, err, "party cancel")

	reply, err := cancel(t, service, created.Id, authority)
	assert.NoError(t, err, "authority cancel")
	assert.Equal(t, records.Cancelled, reply.State, "state")

	_, err = cancel(t, service, created.Id, authority)
	assert.Equal(t, fault.OperationNotPending, err, "double cancel")
}

func TestGetMissing(t *testing.T) {
	service := testService(t)

	var got logistica.GetReply
	err := service.Get(&logistica.GetArguments{Id: 0}, &got)
	assert.Equal(t, fault.OperationNotFound, err, "get zero")

	var count logistica.CountReply
	err = service.Count(&logistica.CountArguments{}, &count)
	assert.NoError(t, err, "count")

	err = service.Get(&logistica.GetArguments{Id: count.Count + 50}, &got)
	assert.Equal(t, fault.OperationNotFound, err, "get missing")
}
