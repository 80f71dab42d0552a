// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package query_test

import (
	"testing"

	"github.com/F-K-C/projeto-hefesto/digest"
	"github.com/F-K-C/projeto-hefesto/fault"
	"github.com/F-K-C/projeto-hefesto/query"
	"github.com/F-K-C/projeto-hefesto/records"
)

// canned connection, items keyed by canonical digest text
type stubConn struct {
	digests    []digest.Digest
	items      map[string]*records.StoredItem
	badIndexes map[uint64]struct{}
	operations map[uint64]*records.StoredOperation
}

func (s *stubConn) Registered(digestText string) (bool, error) {
	_, ok := s.items[digestText]
	return ok, nil
}

func (s *stubConn) Item(digestText string) (*records.StoredItem, error) {
	item, ok := s.items[digestText]
	if !ok {
		return nil, fault.AssetNotFound
	}
	return item, nil
}

func (s *stubConn) DigestAt(index uint64) (digest.Digest, error) {
	if _, bad := s.badIndexes[index]; bad {
		return digest.Digest{}, fault.InvalidItemIndex
	}
	if index >= uint64(len(s.digests)) {
		return digest.Digest{}, fault.InvalidItemIndex
	}
	return s.digests[index], nil
}

func (s *stubConn) Count() (uint64, error) {
	return uint64(len(s.digests)), nil
}

func (s *stubConn) Operation(id uint64) (*records.StoredOperation, error) {
	op, ok := s.operations[id]
	if !ok {
		return nil, fault.OperationNotFound
	}
	return op, nil
}

func (s *stubConn) OperationCount() (uint64, error) {
	return uint64(len(s.operations)), nil
}

func stubItem(content string, serial string, category string, model string) (digest.Digest, *records.StoredItem) {
	d := digest.NewDigest([]byte(content))
	return d, &records.StoredItem{
		Item: records.ItemData{
			Digest:   d,
			Serial:   serial,
			Category: category,
			Model:    model,
		},
		CreatedAt: 1700000000,
	}
}

func newStub() *stubConn {
	s := &stubConn{
		items:      make(map[string]*records.StoredItem),
		badIndexes: make(map[uint64]struct{}),
		operations: make(map[uint64]*records.StoredOperation),
	}
	for i, content := range []string{"laudo um", "laudo dois", "laudo tres"} {
		d, item := stubItem(content, "SER-"+string(rune('A'+i)), "Fuzil", "IA2")
		s.digests = append(s.digests, d)
		s.items[d.String()] = item
	}
	return s
}

func TestInventoryWalk(t *testing.T) {
	conn := newStub()
	cursor := query.Inventory(conn)

	seen := 0
	for entry, ok := cursor.Next(); ok; entry, ok = cursor.Next() {
		if nil != entry.Err {
			t.Fatalf("entry %d error: %v", entry.Index, entry.Err)
		}
		if conn.digests[entry.Index] != entry.Digest {
			t.Errorf("entry %d digest: %s  expected: %s", entry.Index, entry.Digest, conn.digests[entry.Index])
		}
		seen++
	}
	if len(conn.digests) != seen {
		t.Errorf("walked: %d rows  expected: %d", seen, len(conn.digests))
	}

	// a reset walk yields the rows again
	cursor.Reset()
	if entry, ok := cursor.Next(); !ok || 0 != entry.Index {
		t.Error("reset did not restart from index zero")
	}
}

func TestInventoryWalkPartialFailure(t *testing.T) {
	conn := newStub()
	conn.badIndexes[1] = struct{}{}

	cursor := query.Inventory(conn)

	var failed []uint64
	good := 0
	for entry, ok := cursor.Next(); ok; entry, ok = cursor.Next() {
		if nil != entry.Err {
			failed = append(failed, entry.Index)
			continue
		}
		good++
	}

	// the bad row is reported, the rest still enumerate
	if 1 != len(failed) || 1 != failed[0] {
		t.Errorf("failed rows: %v  expected: [1]", failed)
	}
	if len(conn.digests)-1 != good {
		t.Errorf("good rows: %d  expected: %d", good, len(conn.digests)-1)
	}
}

func TestPendingOperations(t *testing.T) {
	conn := newStub()
	conn.operations[1] = &records.StoredOperation{Id: 1, State: records.Pending}
	conn.operations[2] = &records.StoredOperation{Id: 2, State: records.Approved}
	conn.operations[3] = &records.StoredOperation{Id: 3, State: records.Pending}
	conn.operations[4] = &records.StoredOperation{Id: 4, State: records.Emergency}
	conn.operations[5] = &records.StoredOperation{Id: 5, State: records.Cancelled}

	cursor := query.PendingOperations(conn)

	var ids []uint64
	for entry, ok := cursor.Next(); ok; entry, ok = cursor.Next() {
		if nil != entry.Err {
			t.Fatalf("entry %d error: %v", entry.Id, entry.Err)
		}
		ids = append(ids, entry.Id)
	}

	if 2 != len(ids) || 1 != ids[0] || 3 != ids[1] {
		t.Errorf("pending ids: %v  expected: [1 3]", ids)
	}
}

func TestExists(t *testing.T) {
	conn := newStub()

	ok, err := query.Exists(conn, conn.digests[0].String())
	if nil != err || !ok {
		t.Errorf("exists: %t %v  expected: true nil", ok, err)
	}

	ok, err = query.Exists(conn, digest.NewDigest([]byte("missing")).String())
	if nil != err || ok {
		t.Errorf("exists: %t %v  expected: false nil", ok, err)
	}
}

func TestIsSurrogate(t *testing.T) {
	_, genuine := stubItem("laudo real", "SER-X", "Fuzil", "IA2")
	if query.IsSurrogate(&genuine.Item) {
		t.Error("genuine item reported as surrogate")
	}

	_, byCategory := stubItem("op row", "OP-1", "Operacao", "whatever")
	if !query.IsSurrogate(&byCategory.Item) {
		t.Error("category marker not detected")
	}

	_, byModel := stubItem("op row 2", "OP-2", "Fuzil", "origem:abc123")
	if !query.IsSurrogate(&byModel.Item) {
		t.Error("model marker not detected")
	}
}
