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

// Unpack - turn a byte slice back into a record
//
// must cast result to the correct type
//
// e.g.
//   item, ok := result.(*records.ItemData)
// or:
//   switch r := result.(type) {
//   case *records.ItemData:
func (record Packed) Unpack() (r Record, n int, e error) {

	defer func() {
		if p := recover(); nil != p {
			e = fault.NotRecordPack
		}
	}()

	recordType, n := util.FromVarint64(record)
	if 0 == n {
		return nil, 0, fault.NotRecordPack
	}

	switch TagType(recordType) {

	case ItemDataTag:
		item := &ItemData{}

		item.Nonce, n = unpackUint64(record, n)
		item.Digest, n = unpackDigest(record, n)
		item.Serial, n = unpackString(record, n, maxSerialLength)
		item.Category, n = unpackString(record, n, maxTextLength)
		item.Model, n = unpackString(record, n, maxTextLength)

		c, n2 := unpackUint64(record, n)
		condition, err := ConditionFromUint64(c)
		if nil != err {
			return nil, 0, err
		}
		item.Condition = condition
		n = n2

		item.Registrant, n, e = unpackAccount(record, n)
		if nil != e {
			return nil, 0, e
		}
		item.Signature, n = unpackBytes(record, n, maxSignatureLength)
		return item, n, nil

	case OperationCreateTag:
		operation := &OperationCreate{}

		operation.Nonce, n = unpackUint64(record, n)
		operation.Origin, n, e = unpackAccount(record, n)
		if nil != e {
			return nil, 0, e
		}
		operation.Destination, n, e = unpackAccount(record, n)
		if nil != e {
			return nil, 0, e
		}
		operation.Digest, n = unpackDigest(record, n)
		operation.Signature, n = unpackBytes(record, n, maxSignatureLength)
		return operation, n, nil

	case OperationApproveTag:
		approve := &OperationApprove{}

		approve.Nonce, n = unpackUint64(record, n)
		approve.Id, n = unpackUint64(record, n)

		asOrigin, n2 := unpackUint64(record, n)
		approve.AsOrigin = 0 != asOrigin
		n = n2

		approve.Signer, n, e = unpackAccount(record, n)
		if nil != e {
			return nil, 0, e
		}
		approve.Signature, n = unpackBytes(record, n, maxSignatureLength)
		return approve, n, nil

	case OperationEmergencyTag:
		emergency := &OperationEmergency{}
		emergency.Nonce, emergency.Id, emergency.Signer, emergency.Signature, n, e = unpackAction(record, n)
		if nil != e {
			return nil, 0, e
		}
		return emergency, n, nil

	case OperationCancelTag:
		cancel := &OperationCancel{}
		cancel.Nonce, cancel.Id, cancel.Signer, cancel.Signature, n, e = unpackAction(record, n)
		if nil != e {
			return nil, 0, e
		}
		return cancel, n, nil

	default:
		return nil, 0, fault.NotRecordPack
	}
}

// helpers panic on truncated input; the recover in Unpack converts
// that to NotRecordPack

func unpackUint64(record Packed, n int) (uint64, int) {
	value, count := util.FromVarint64(record[n:])
	if 0 == count {
		panic("truncated varint")
	}
	return value, n + count
}

func unpackDigest(record Packed, n int) (digest.Digest, int) {
	var d digest.Digest
	if err := digest.DigestFromBytes(&d, record[n:n+digest.Size]); nil != err {
		panic("truncated digest")
	}
	return d, n + digest.Size
}

func unpackString(record Packed, n int, maximum int) (string, int) {
	length, count := util.ClippedVarint64(record[n:], 0, maximum)
	if 0 == count {
		panic("truncated string")
	}
	n += count
	return string(record[n : n+length]), n + length
}

func unpackBytes(record Packed, n int, maximum int) ([]byte, int) {
	length, count := util.ClippedVarint64(record[n:], 0, maximum)
	if 0 == count {
		panic("truncated bytes")
	}
	n += count
	buffer := make([]byte, length)
	copy(buffer, record[n:n+length])
	return buffer, n + length
}

func unpackAccount(record Packed, n int) (*account.Account, int, error) {
	length, count := util.ClippedVarint64(record[n:], 1, 512)
	if 0 == count {
		panic("truncated account")
	}
	n += count
	acc, err := account.AccountFromBytes(record[n : n+length])
	if nil != err {
		return nil, 0, err
	}
	return acc, n + length, nil
}

func unpackAction(record Packed, n int) (uint64, uint64, *account.Account, account.Signature, int, error) {
	nonce, n := unpackUint64(record, n)
	id, n := unpackUint64(record, n)
	signer, n, err := unpackAccount(record, n)
	if nil != err {
		return 0, 0, nil, nil, 0, err
	}
	signature, n := unpackBytes(record, n, maxSignatureLength)
	return nonce, id, signer, account.Signature(signature), n, nil
}
