// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package records

import (
	"github.com/F-K-C/projeto-hefesto/account"
	"github.com/F-K-C/projeto-hefesto/digest"
	"github.com/F-K-C/projeto-hefesto/fault"
	"github.com/F-K-C/projeto-hefesto/util"
)

// stored forms keep the original signed request intact so the
// registrant's signature stays verifiable on disk; mutable ledger
// state (timestamps, approval flags) lives in a prefix ahead of it

// approval flag bits
const (
	originApprovedFlag      = 0x01
	destinationApprovedFlag = 0x02
)

// StoredItem - an inventory record as read back from the ledger
type StoredItem struct {
	Item      ItemData `json:"item"`
	CreatedAt uint64   `json:"createdAt"`
}

// PackStoredItem - prefix a packed signed item with its ledger write time
func PackStoredItem(createdAt uint64, packedItem Packed) Packed {
	buffer := Packed(util.ToVarint64(createdAt))
	return append(buffer, packedItem...)
}

// UnpackStoredItem - decode a stored inventory value
func UnpackStoredItem(buffer Packed) (*StoredItem, error) {
	createdAt, n := util.FromVarint64(buffer)
	if 0 == n {
		return nil, fault.NotRecordPack
	}

	r, _, err := Packed(buffer[n:]).Unpack()
	if nil != err {
		return nil, err
	}
	item, ok := r.(*ItemData)
	if !ok {
		return nil, fault.NotRecordPack
	}
	return &StoredItem{
		Item:      *item,
		CreatedAt: createdAt,
	}, nil
}

// StoredOperation - a transfer operation as read back from the ledger
type StoredOperation struct {
	Id                  uint64           `json:"id,string"`
	Origin              *account.Account `json:"origin"`
	Destination         *account.Account `json:"destination"`
	Digest              digest.Digest    `json:"digest"`
	OriginApproved      bool             `json:"originApproved"`
	DestinationApproved bool             `json:"destinationApproved"`
	State               State            `json:"state"`
	CreatedAt           uint64           `json:"createdAt"`

	// the packed signed create request, preserved for re-packing on
	// state transitions and for audit
	Create Packed `json:"-"`
}

// PackStoredOperation - encode ledger state ahead of the signed create record
func PackStoredOperation(createdAt uint64, originApproved bool, destinationApproved bool, state State, packedCreate Packed) Packed {
	flags := uint64(0)
	if originApproved {
		flags |= originApprovedFlag
	}
	if destinationApproved {
		flags |= destinationApprovedFlag
	}

	buffer := Packed(util.ToVarint64(createdAt))
	buffer = append(buffer, util.ToVarint64(flags)...)
	buffer = append(buffer, util.ToVarint64(uint64(state))...)
	return append(buffer, packedCreate...)
}

// UnpackStoredOperation - decode a stored operation value
//
// the id is not part of the value, it is the storage key; the caller
// fills it in
func UnpackStoredOperation(buffer Packed) (*StoredOperation, error) {
	createdAt, n := util.FromVarint64(buffer)
	if 0 == n {
		return nil, fault.NotOperationPack
	}

	flags, count := util.FromVarint64(buffer[n:])
	if 0 == count {
		return nil, fault.NotOperationPack
	}
	n += count

	s, count := util.FromVarint64(buffer[n:])
	if 0 == count || State(s) >= stateLimit || None == State(s) {
		return nil, fault.NotOperationPack
	}
	n += count

	packedCreate := Packed(buffer[n:])
	r, _, err := packedCreate.Unpack()
	if nil != err {
		return nil, err
	}
	create, ok := r.(*OperationCreate)
	if !ok {
		return nil, fault.NotOperationPack
	}

	return &StoredOperation{
		Origin:              create.Origin,
		Destination:         create.Destination,
		Digest:              create.Digest,
		OriginApproved:      0 != flags&originApprovedFlag,
		DestinationApproved: 0 != flags&destinationApprovedFlag,
		State:               State(s),
		CreatedAt:           createdAt,
		Create:              packedCreate,
	}, nil
}
