// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package operation_test

import (
	"os"
	"testing"

	"github.com/F-K-C/projeto-hefesto/account"
	"github.com/F-K-C/projeto-hefesto/digest"
	"github.com/F-K-C/projeto-hefesto/fault"
	"github.com/F-K-C/projeto-hefesto/fixtures"
	"github.com/F-K-C/projeto-hefesto/operation"
	"github.com/F-K-C/projeto-hefesto/records"
	"github.com/F-K-C/projeto-hefesto/storage"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	if err := fixtures.SetupTestStorage(); nil != err {
		fixtures.TeardownTestLogger()
		os.Exit(1)
	}
	_ = operation.Initialise()

	rc := m.Run()

	_ = operation.Finalise()
	fixtures.TeardownTestStorage()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func makeKey(t *testing.T) *account.PrivateKey {
	t.Helper()
	key, err := account.NewKeypair(true)
	if nil != err {
		t.Fatalf("keypair error: %v", err)
	}
	return key
}

// create a pending operation and return the parties and its id
func createOperation(t *testing.T, content string) (*account.PrivateKey, *account.PrivateKey, uint64) {
	t.Helper()

	origin := makeKey(t)
	destination := makeKey(t)

	op := records.OperationCreate{
		Nonce:       0,
		Origin:      origin.Account(),
		Destination: destination.Account(),
		Digest:      digest.NewDigest([]byte(content)),
	}
	unsigned, err := op.Pack(origin.Account())
	if fault.InvalidSignature != err {
		t.Fatalf("unsigned pack: expected InvalidSignature got: %v", err)
	}
	op.Signature = origin.Sign(unsigned)
	packed, err := op.Pack(origin.Account())
	if nil != err {
		t.Fatalf("pack error: %v", err)
	}

	trx := storage.NewTransaction()
	id, err := operation.Create(trx, &op, packed, 1700000000)
	if nil != err {
		t.Fatalf("create error: %v", err)
	}
	if err := trx.Commit(); nil != err {
		t.Fatalf("commit error: %v", err)
	}
	return origin, destination, id
}

func approve(t *testing.T, id uint64, asOrigin bool, signer *account.Account) (records.State, error) {
	t.Helper()

	trx := storage.NewTransaction()
	state, err := operation.Approve(trx, id, asOrigin, signer)
	if nil != err {
		return state, err
	}
	if err := trx.Commit(); nil != err {
		t.Fatalf("commit error: %v", err)
	}
	return state, nil
}

func TestLifecycle(t *testing.T) {

	origin, destination, id := createOperation(t, "transfer: fuzil 199")

	stored, err := operation.Get(id)
	if nil != err {
		t.Fatalf("get error: %v", err)
	}
	if records.Pending != stored.State {
		t.Fatalf("state: %s  expected: %s", stored.State, records.Pending)
	}
	if stored.OriginApproved || stored.DestinationApproved {
		t.Fatal("new operation already has approvals")
	}
	if id != stored.Id {
		t.Errorf("id: %d  expected: %d", stored.Id, id)
	}

	// an outsider cannot approve for either party
	outsider := makeKey(t)
	_, err = approve(t, id, true, outsider.Account())
	if fault.WrongPartyForApproval != err {
		t.Fatalf("outsider approve error: %v  expected: %v", err, fault.WrongPartyForApproval)
	}

	// nor can a real party approve for the other side
	_, err = approve(t, id, false, origin.Account())
	if fault.WrongPartyForApproval != err {
		t.Fatalf("cross approve error: %v  expected: %v", err, fault.WrongPartyForApproval)
	}

	// first approval keeps the operation pending
	state, err := approve(t, id, true, origin.Account())
	if nil != err {
		t.Fatalf("origin approve error: %v", err)
	}
	if records.Pending != state {
		t.Fatalf("state after one approval: %s  expected: %s", state, records.Pending)
	}

	stored, _ = operation.Get(id)
	if !stored.OriginApproved || stored.DestinationApproved {
		t.Fatalf("approvals: origin: %t destination: %t  expected: true false",
			stored.OriginApproved, stored.DestinationApproved)
	}

	// second approval completes the transfer
	state, err = approve(t, id, false, destination.Account())
	if nil != err {
		t.Fatalf("destination approve error: %v", err)
	}
	if records.Approved != state {
		t.Fatalf("state after both approvals: %s  expected: %s", state, records.Approved)
	}

	stored, _ = operation.Get(id)
	if records.Approved != stored.State {
		t.Errorf("stored state: %s  expected: %s", stored.State, records.Approved)
	}
	if !stored.State.IsTerminal() {
		t.Error("approved state not terminal")
	}

	// all terminal states refuse further transitions
	_, err = approve(t, id, true, origin.Account())
	if fault.OperationNotPending != err {
		t.Errorf("approve after approved error: %v  expected: %v", err, fault.OperationNotPending)
	}
	trx := storage.NewTransaction()
	if err := operation.Cancel(trx, id); fault.OperationNotPending != err {
		t.Errorf("cancel after approved error: %v  expected: %v", err, fault.OperationNotPending)
	}
	trx = storage.NewTransaction()
	if err := operation.EmergencyAuthorize(trx, id); fault.OperationNotPending != err {
		t.Errorf("emergency after approved error: %v  expected: %v", err, fault.OperationNotPending)
	}
}

func TestEmergencyAuthorize(t *testing.T) {

	origin, _, id := createOperation(t, "transfer: viatura 007")

	trx := storage.NewTransaction()
	if err := operation.EmergencyAuthorize(trx, id); nil != err {
		t.Fatalf("emergency error: %v", err)
	}
	if err := trx.Commit(); nil != err {
		t.Fatalf("commit error: %v", err)
	}

	stored, err := operation.Get(id)
	if nil != err {
		t.Fatalf("get error: %v", err)
	}
	if records.Emergency != stored.State {
		t.Fatalf("state: %s  expected: %s", stored.State, records.Emergency)
	}

	_, err = approve(t, id, true, origin.Account())
	if fault.OperationNotPending != err {
		t.Errorf("approve after emergency error: %v  expected: %v", err, fault.OperationNotPending)
	}
}

func TestCancel(t *testing.T) {

	_, _, id := createOperation(t, "transfer: municao lote 3")

	trx := storage.NewTransaction()
	if err := operation.Cancel(trx, id); nil != err {
		t.Fatalf("cancel error: %v", err)
	}
	if err := trx.Commit(); nil != err {
		t.Fatalf("commit error: %v", err)
	}

	stored, err := operation.Get(id)
	if nil != err {
		t.Fatalf("get error: %v", err)
	}
	if records.Cancelled != stored.State {
		t.Fatalf("state: %s  expected: %s", stored.State, records.Cancelled)
	}
}

func TestGetMissing(t *testing.T) {

	_, err := operation.Get(0)
	if fault.OperationNotFound != err {
		t.Errorf("get zero error: %v  expected: %v", err, fault.OperationNotFound)
	}

	_, err = operation.Get(operation.Count() + 100)
	if fault.OperationNotFound != err {
		t.Errorf("get missing error: %v  expected: %v", err, fault.OperationNotFound)
	}
	if !fault.IsErrNotFound(err) {
		t.Errorf("error class: %T  expected not found", err)
	}
}

func TestSequentialIds(t *testing.T) {

	before := operation.Count()

	_, _, first := createOperation(t, "transfer: radio 21")
	_, _, second := createOperation(t, "transfer: radio 22")

	if before+1 != first || before+2 != second {
		t.Errorf("ids: %d %d  expected: %d %d", first, second, before+1, before+2)
	}
	if before+2 != operation.Count() {
		t.Errorf("count: %d  expected: %d", operation.Count(), before+2)
	}
}
