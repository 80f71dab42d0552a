// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package inventory_test

import (
	"os"
	"testing"

	"github.com/F-K-C/projeto-hefesto/account"
	"github.com/F-K-C/projeto-hefesto/digest"
	"github.com/F-K-C/projeto-hefesto/fault"
	"github.com/F-K-C/projeto-hefesto/fixtures"
	"github.com/F-K-C/projeto-hefesto/inventory"
	"github.com/F-K-C/projeto-hefesto/records"
	"github.com/F-K-C/projeto-hefesto/storage"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	if err := fixtures.SetupTestStorage(); nil != err {
		fixtures.TeardownTestLogger()
		os.Exit(1)
	}
	_ = inventory.Initialise()

	rc := m.Run()

	_ = inventory.Finalise()
	fixtures.TeardownTestStorage()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

// build a signed item record for content and commit its registration
func registerItem(t *testing.T, content string, serial string) (*records.ItemData, records.Packed, uint64) {
	t.Helper()

	key, err := account.NewKeypair(true)
	if nil != err {
		t.Fatalf("keypair error: %v", err)
	}

	item := records.ItemData{
		Nonce:      0,
		Digest:     digest.NewDigest([]byte(content)),
		Serial:     serial,
		Category:   "Viatura",
		Model:      "Marruá AM2",
		Condition:  records.New,
		Registrant: key.Account(),
	}
	unsigned, err := item.Pack(key.Account())
	if fault.InvalidSignature != err {
		t.Fatalf("unsigned pack: expected InvalidSignature got: %v", err)
	}
	item.Signature = key.Sign(unsigned)
	packed, err := item.Pack(key.Account())
	if nil != err {
		t.Fatalf("pack error: %v", err)
	}

	trx := storage.NewTransaction()
	index, err := inventory.Register(trx, &item, packed, 1700000000)
	if nil != err {
		t.Fatalf("register error: %v", err)
	}
	if err := trx.Commit(); nil != err {
		t.Fatalf("commit error: %v", err)
	}
	return &item, packed, index
}

func TestRegisterAndQuery(t *testing.T) {

	before := inventory.Count()

	item, _, index := registerItem(t, "laudo: viatura 001", "VTR-001")
	if before != index {
		t.Fatalf("index: %d  expected: %d", index, before)
	}
	if before+1 != inventory.Count() {
		t.Errorf("count: %d  expected: %d", inventory.Count(), before+1)
	}

	if !inventory.Exists(item.Digest) {
		t.Error("registered digest not found")
	}

	stored, err := inventory.Get(item.Digest)
	if nil != err {
		t.Fatalf("get error: %v", err)
	}
	if item.Serial != stored.Item.Serial {
		t.Errorf("serial: %q  expected: %q", stored.Item.Serial, item.Serial)
	}
	if item.Digest != stored.Item.Digest {
		t.Errorf("digest: %s  expected: %s", stored.Item.Digest, item.Digest)
	}
	if uint64(1700000000) != stored.CreatedAt {
		t.Errorf("createdAt: %d  expected: %d", stored.CreatedAt, 1700000000)
	}
	if item.Registrant.String() != stored.Item.Registrant.String() {
		t.Errorf("registrant: %s  expected: %s", stored.Item.Registrant, item.Registrant)
	}

	d, err := inventory.DigestAt(index)
	if nil != err {
		t.Fatalf("digest at %d error: %v", index, err)
	}
	if item.Digest != d {
		t.Errorf("digest at %d: %s  expected: %s", index, d, item.Digest)
	}
}

func TestUnregisteredDigest(t *testing.T) {

	missing := digest.NewDigest([]byte("never registered"))

	if inventory.Exists(missing) {
		t.Error("unregistered digest reported present")
	}

	_, err := inventory.Get(missing)
	if fault.AssetNotFound != err {
		t.Errorf("get error: %v  expected: %v", err, fault.AssetNotFound)
	}
	if !fault.IsErrNotFound(err) {
		t.Errorf("error class: %T  expected not found", err)
	}

	_, err = inventory.DigestAt(inventory.Count())
	if fault.InvalidItemIndex != err {
		t.Errorf("digest at error: %v  expected: %v", err, fault.InvalidItemIndex)
	}
}

func TestDuplicateRegistration(t *testing.T) {

	item, packed, _ := registerItem(t, "laudo: viatura 002", "VTR-002")

	before := inventory.Count()

	trx := storage.NewTransaction()
	_, err := inventory.Register(trx, item, packed, 1700000001)
	if fault.DuplicateAsset != err {
		t.Fatalf("duplicate register error: %v  expected: %v", err, fault.DuplicateAsset)
	}
	if !fault.IsErrExists(err) {
		t.Errorf("error class: %T  expected exists", err)
	}

	// nothing was committed
	if before != inventory.Count() {
		t.Errorf("count changed: %d  expected: %d", inventory.Count(), before)
	}
}
