// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package records - signed ledger records and their wire format
//
// every mutating request to the ledger is a record: a varint64 tag,
// the fields in struct order, the signing account, and the signature
// over all preceding bytes last; the packed signed form is what gets
// journalled, so the custodian's signature survives on disk
package records

import (
	"github.com/F-K-C/projeto-hefesto/account"
	"github.com/F-K-C/projeto-hefesto/digest"
)

// TagType - type code for records
type TagType uint64

// enumerate the possible record types
// this is encoded a Varint64 at start of "Packed"
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	// valid record types
	ItemDataTag           = TagType(iota) // register an inventory item
	OperationCreateTag    = TagType(iota) // open a transfer operation
	OperationApproveTag   = TagType(iota) // origin/destination approval
	OperationEmergencyTag = TagType(iota) // emergency authorization
	OperationCancelTag    = TagType(iota) // administrative cancellation

	// this item must be last
	InvalidTag = TagType(iota)
)

// Packed - packed records are just a byte slice
type Packed []byte

// Record - generic record interface
type Record interface {
	Pack(address *account.Account) (Packed, error)
}

// byte sizes for various fields
const (
	minSerialLength    = 1
	maxSerialLength    = 64
	maxTextLength      = 256
	maxSignatureLength = 1024
)

// ItemData - request to register an inventory item
//
// the digest of the supporting document is the primary key; the rest
// is descriptive metadata
type ItemData struct {
	Nonce      uint64            `json:"nonce,string"` // unsigned 0..N
	Digest     digest.Digest     `json:"digest"`       // 0x-hex
	Serial     string            `json:"serial"`       // utf-8
	Category   string            `json:"category"`     // utf-8
	Model      string            `json:"model"`        // utf-8
	Condition  Condition         `json:"condition"`    // utf-8 → Enum
	Registrant *account.Account  `json:"registrant"`   // base58
	Signature  account.Signature `json:"signature"`    // hex
}

// OperationCreate - request to open a transfer operation
//
// the origin custodian is the signer
type OperationCreate struct {
	Nonce       uint64            `json:"nonce,string"` // unsigned 0..N
	Origin      *account.Account  `json:"origin"`       // base58
	Destination *account.Account  `json:"destination"`  // base58
	Digest      digest.Digest     `json:"digest"`       // 0x-hex
	Signature   account.Signature `json:"signature"`    // hex
}

// OperationApprove - one party's approval of a pending operation
type OperationApprove struct {
	Nonce     uint64            `json:"nonce,string"` // unsigned 0..N
	Id        uint64            `json:"id,string"`    // operation id
	AsOrigin  bool              `json:"asOrigin"`     // which flag to set
	Signer    *account.Account  `json:"signer"`       // base58
	Signature account.Signature `json:"signature"`    // hex
}

// OperationEmergency - authorization override bypassing dual approval
type OperationEmergency struct {
	Nonce     uint64            `json:"nonce,string"` // unsigned 0..N
	Id        uint64            `json:"id,string"`    // operation id
	Signer    *account.Account  `json:"signer"`       // base58
	Signature account.Signature `json:"signature"`    // hex
}

// OperationCancel - administrative cancellation of a pending operation
type OperationCancel struct {
	Nonce     uint64            `json:"nonce,string"` // unsigned 0..N
	Id        uint64            `json:"id,string"`    // operation id
	Signer    *account.Account  `json:"signer"`       // base58
	Signature account.Signature `json:"signature"`    // hex
}

// TxId - the transaction identifier of a packed signed record
func (record Packed) TxId() digest.Digest {
	return digest.NewDigest(record)
}

// RecordName - name of a record from its type
func RecordName(record interface{}) (string, bool) {
	switch record.(type) {
	case *ItemData, ItemData:
		return "ItemData", true
	case *OperationCreate, OperationCreate:
		return "OperationCreate", true
	case *OperationApprove, OperationApprove:
		return "OperationApprove", true
	case *OperationEmergency, OperationEmergency:
		return "OperationEmergency", true
	case *OperationCancel, OperationCancel:
		return "OperationCancel", true
	default:
		return "*unknown*", false
	}
}
