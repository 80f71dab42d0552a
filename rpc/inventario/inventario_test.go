// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package inventario_test

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
)

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

	rc := m.Run()

	_ = operation.Finalise()
	_ = inventory.Finalise()
	_ = ledger.Finalise()
	_ = mode.Finalise()
	fixtures.TeardownTestStorage()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func testService(t *testing.T) *inventario.Inventario {
	t.Helper()
	return inventario.New(logger.New(fixtures.LogCategory), mode.Is)
}

func makeKey(t *testing.T) *account.PrivateKey {
	t.Helper()
	key, err := account.NewKeypair(true)
	assert.NoError(t, err, "keypair")
	return key
}

// build a registration request signed by key at its current nonce
func signedItem(t *testing.T, key *account.PrivateKey, content string, serial string) records.ItemData {
	t.Helper()

	item := records.ItemData{
		Nonce:      ledger.Nonce(key.Account()),
		Digest:     digest.NewDigest([]byte(content)),
		Serial:     serial,
		Category:   "Pistola",
		Model:      "M973",
		Condition:  records.New,
		Registrant: key.Account(),
	}
	unsigned, err := item.Pack(key.Account())
	assert.Equal(t, fault.InvalidSignature, err, "unsigned pack")
	item.Signature = key.Sign(unsigned)
	return item
}

func TestRegister(t *testing.T) {
	service := testService(t)
	key := makeKey(t)

	item := signedItem(t, key, "laudo: pistola 31", "PST-031")

	var reply inventario.RegisterReply
	err := service.Register(&inventario.RegisterArguments{Item: item}, &reply)
	assert.NoError(t, err, "register")
	assert.NotZero(t, reply.Receipt.BlockNumber, "block number")
	assert.NotZero(t, reply.Receipt.Cost, "cost")

	var registered inventario.RegisteredReply
	err = service.Registered(&inventario.RegisteredArguments{Digest: item.Digest}, &registered)
	assert.NoError(t, err, "registered")
	assert.True(t, registered.Registered, "digest missing after register")

	var got inventario.GetReply
	err = service.Get(&inventario.GetArguments{Digest: item.Digest}, &got)
	assert.NoError(t, err, "get")
	assert.Equal(t, item.Serial, got.Item.Item.Serial, "serial")
	assert.Equal(t, item.Digest, got.Item.Item.Digest, "digest")
	assert.NotZero(t, got.Item.CreatedAt, "createdAt")

	var at inventario.DigestAtReply
	err = service.DigestAt(&inventario.DigestAtArguments{Index: reply.Index}, &at)
	assert.NoError(t, err, "digest at")
	assert.Equal(t, item.Digest, at.Digest, "digest at index")

	var count inventario.CountReply
	err = service.Count(&inventario.CountArguments{}, &count)
	assert.NoError(t, err, "count")
	assert.True(t, count.Count > reply.Index, "count vs index")
}

func TestRegisterDuplicate(t *testing.T) {
	service := testService(t)
	key := makeKey(t)

	first := signedItem(t, key, "laudo: pistola 32", "PST-032")
	var reply inventario.RegisterReply
	err := service.Register(&inventario.RegisterArguments{Item: first}, &reply)
	assert.NoError(t, err, "first register")

	second := signedItem(t, key, "laudo: pistola 32", "PST-032-B")
	err = service.Register(&inventario.RegisterArguments{Item: second}, &reply)
	assert.Equal(t, fault.DuplicateAsset, err, "duplicate register")
}

func TestRegisterTampered(t *testing.T) {
	service := testService(t)
	key := makeKey(t)

	item := signedItem(t, key, "laudo: pistola 33", "PST-033")
	item.Serial = "PST-033-X" // no longer what was signed

	var reply inventario.RegisterReply
	err := service.Register(&inventario.RegisterArguments{Item: item}, &reply)
	assert.Equal(t, fault.InvalidSignature, err, "tampered register")
}

func TestRegisterBadNonce(t *testing.T) {
	service := testService(t)
	key := makeKey(t)

	item := signedItem(t, key, "laudo: pistola 34", "PST-034")
	item.Nonce += 3
	// re-sign so only the nonce is wrong
	unsigned, err := item.Pack(key.Account())
	assert.Equal(t, fault.InvalidSignature, err, "unsigned pack")
	item.Signature = key.Sign(unsigned)

	var reply inventario.RegisterReply
	err = service.Register(&inventario.RegisterArguments{Item: item}, &reply)
	assert.Equal(t, fault.InvalidNonce, err, "bad nonce register")
}

func TestGetMissing(t *testing.T) {
	service := testService(t)

	var got inventario.GetReply
	err := service.Get(&inventario.GetArguments{Digest: digest.NewDigest([]byte("no such item"))}, &got)
	assert.Equal(t, fault.AssetNotFound, err, "get missing")

	var registered inventario.RegisteredReply
	err = service.Registered(&inventario.RegisteredArguments{Digest: digest.NewDigest([]byte("no such item"))}, &registered)
	assert.NoError(t, err, "registered")
	assert.False(t, registered.Registered, "missing digest reported present")
}
