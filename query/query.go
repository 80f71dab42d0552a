// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package query - read-side façade over a daemon connection
//
// holds no session state of its own, every call goes straight to the
// connection; enumeration is tolerant of individual bad rows so one
// undecodable record cannot hide the rest of the ledger
package query

import (
	"strings"

	"github.com/F-K-C/projeto-hefesto/digest"
	"github.com/F-K-C/projeto-hefesto/records"
)

// Conn - the read surface the façade needs, *gateway.Client implements it
type Conn interface {
	Registered(digestText string) (bool, error)
	Item(digestText string) (*records.StoredItem, error)
	DigestAt(index uint64) (digest.Digest, error)
	Count() (uint64, error)
	Operation(id uint64) (*records.StoredOperation, error)
	OperationCount() (uint64, error)
}

// Exists - check a digest against the register
func Exists(conn Conn, digestText string) (bool, error) {
	return conn.Registered(digestText)
}

// Item - fetch one registered item
func Item(conn Conn, digestText string) (*records.StoredItem, error) {
	return conn.Item(digestText)
}

// InventoryEntry - one row of an inventory walk
//
// a row that could not be fetched carries Err and the zero values
type InventoryEntry struct {
	Index  uint64
	Digest digest.Digest
	Item   *records.StoredItem
	Err    error
}

// InventoryCursor - walks the register in registration order
type InventoryCursor struct {
	conn    Conn
	next    uint64
	count   uint64
	counted bool
}

// Inventory - start a walk from index zero
func Inventory(conn Conn) *InventoryCursor {
	return &InventoryCursor{conn: conn}
}

// Reset - restart the walk from index zero
func (c *InventoryCursor) Reset() {
	c.next = 0
	c.counted = false
}

// Next - the next row, false when the walk is done
//
// a fetch failure for one row is reported in the entry and the walk
// continues with the following row
func (c *InventoryCursor) Next() (*InventoryEntry, bool) {
	if !c.counted {
		count, err := c.conn.Count()
		if nil != err {
			return &InventoryEntry{Err: err}, false
		}
		c.count = count
		c.counted = true
	}

	if c.next >= c.count {
		return nil, false
	}

	index := c.next
	c.next++

	d, err := c.conn.DigestAt(index)
	if nil != err {
		return &InventoryEntry{Index: index, Err: err}, true
	}

	item, err := c.conn.Item(d.String())
	if nil != err {
		return &InventoryEntry{Index: index, Digest: d, Err: err}, true
	}

	return &InventoryEntry{Index: index, Digest: d, Item: item}, true
}

// OperationEntry - one row of a pending operation walk
type OperationEntry struct {
	Id        uint64
	Operation *records.StoredOperation
	Err       error
}

// OperationCursor - walks operations by ascending id
type OperationCursor struct {
	conn    Conn
	next    uint64
	count   uint64
	counted bool
}

// PendingOperations - start a walk over the pending operations
func PendingOperations(conn Conn) *OperationCursor {
	return &OperationCursor{conn: conn, next: 1}
}

// Reset - restart the walk from the first operation
func (c *OperationCursor) Reset() {
	c.next = 1
	c.counted = false
}

// Next - the next pending operation, false when the walk is done
//
// terminal operations are skipped silently, a row that cannot be
// fetched is reported and the walk continues
func (c *OperationCursor) Next() (*OperationEntry, bool) {
	if !c.counted {
		count, err := c.conn.OperationCount()
		if nil != err {
			return &OperationEntry{Err: err}, false
		}
		c.count = count
		c.counted = true
	}

	for c.next <= c.count {
		id := c.next
		c.next++

		op, err := c.conn.Operation(id)
		if nil != err {
			return &OperationEntry{Id: id, Err: err}, true
		}
		if records.Pending != op.State {
			continue
		}
		return &OperationEntry{Id: id, Operation: op}, true
	}
	return nil, false
}

// markers left by older tooling that mirrored transfer operations
// into the register as extra rows
const (
	surrogateCategory    = "Operacao"
	surrogateModelPrefix = "origem:"
)

// IsSurrogate - detect an operation-surrogate register row
//
// callers listing true stock filter these out, the façade itself
// always returns raw records
func IsSurrogate(item *records.ItemData) bool {
	if surrogateCategory == item.Category {
		return true
	}
	return strings.HasPrefix(item.Model, surrogateModelPrefix)
}
