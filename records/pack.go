// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package records

import (
	"unicode/utf8"

	"github.com/F-K-C/projeto-hefesto/account"
	"github.com/F-K-C/projeto-hefesto/fault"
	"github.com/F-K-C/projeto-hefesto/util"
)

// Pack - pack ItemData
//
// Pack Varint64(tag) followed by fields in order as struct above with
// signature last
//
// NOTE: returns the "unsigned" message on signature failure - for
//       the caller to sign
func (item *ItemData) Pack(address *account.Account) (Packed, error) {
	if len(item.Signature) > maxSignatureLength {
		return nil, fault.SignatureTooLong
	}
	if nil == item.Registrant || nil == address {
		return nil, fault.InvalidOriginOrRegistrant
	}

	if utf8.RuneCountInString(item.Serial) < minSerialLength {
		return nil, fault.SerialTooShort
	}
	if utf8.RuneCountInString(item.Serial) > maxSerialLength {
		return nil, fault.SerialTooLong
	}
	if utf8.RuneCountInString(item.Category) > maxTextLength {
		return nil, fault.TextTooLong
	}
	if utf8.RuneCountInString(item.Model) > maxTextLength {
		return nil, fault.TextTooLong
	}
	if _, err := ConditionFromUint64(item.Condition.Uint64()); nil != err {
		return nil, err
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(ItemDataTag))
	message = appendUint64(message, item.Nonce)
	message = append(message, item.Digest.Bytes()...)
	message = appendString(message, item.Serial)
	message = appendString(message, item.Category)
	message = appendString(message, item.Model)
	message = appendUint64(message, item.Condition.Uint64())
	message = appendAccount(message, item.Registrant)

	// signature
	err := address.CheckSignature(message, item.Signature)
	if nil != err {
		return message, err
	}
	// Signature Last
	return appendBytes(message, item.Signature), nil
}

// Pack - pack OperationCreate
//
// the origin is the signing party
func (operation *OperationCreate) Pack(address *account.Account) (Packed, error) {
	if len(operation.Signature) > maxSignatureLength {
		return nil, fault.SignatureTooLong
	}
	if nil == operation.Origin || nil == operation.Destination || nil == address {
		return nil, fault.InvalidOriginOrRegistrant
	}

	message := util.ToVarint64(uint64(OperationCreateTag))
	message = appendUint64(message, operation.Nonce)
	message = appendAccount(message, operation.Origin)
	message = appendAccount(message, operation.Destination)
	message = append(message, operation.Digest.Bytes()...)

	err := address.CheckSignature(message, operation.Signature)
	if nil != err {
		return message, err
	}
	return appendBytes(message, operation.Signature), nil
}

// Pack - pack OperationApprove
func (approve *OperationApprove) Pack(address *account.Account) (Packed, error) {
	if len(approve.Signature) > maxSignatureLength {
		return nil, fault.SignatureTooLong
	}
	if nil == approve.Signer || nil == address {
		return nil, fault.InvalidOriginOrRegistrant
	}

	asOrigin := uint64(0)
	if approve.AsOrigin {
		asOrigin = 1
	}

	message := util.ToVarint64(uint64(OperationApproveTag))
	message = appendUint64(message, approve.Nonce)
	message = appendUint64(message, approve.Id)
	message = appendUint64(message, asOrigin)
	message = appendAccount(message, approve.Signer)

	err := address.CheckSignature(message, approve.Signature)
	if nil != err {
		return message, err
	}
	return appendBytes(message, approve.Signature), nil
}

// Pack - pack OperationEmergency
func (emergency *OperationEmergency) Pack(address *account.Account) (Packed, error) {
	return packAction(OperationEmergencyTag, emergency.Nonce, emergency.Id,
		emergency.Signer, emergency.Signature, address)
}

// Pack - pack OperationCancel
func (cancel *OperationCancel) Pack(address *account.Account) (Packed, error) {
	return packAction(OperationCancelTag, cancel.Nonce, cancel.Id,
		cancel.Signer, cancel.Signature, address)
}

// emergency and cancel records share their layout
func packAction(tag TagType, nonce uint64, id uint64, signer *account.Account, signature account.Signature, address *account.Account) (Packed, error) {
	if len(signature) > maxSignatureLength {
		return nil, fault.SignatureTooLong
	}
	if nil == signer || nil == address {
		return nil, fault.InvalidOriginOrRegistrant
	}

	message := util.ToVarint64(uint64(tag))
	message = appendUint64(message, nonce)
	message = appendUint64(message, id)
	message = appendAccount(message, signer)

	err := address.CheckSignature(message, signature)
	if nil != err {
		return message, err
	}
	return appendBytes(message, signature), nil
}

func appendString(buffer Packed, s string) Packed {
	l := util.ToVarint64(uint64(len(s)))
	buffer = append(buffer, l...)
	return append(buffer, s...)
}

func appendAccount(buffer Packed, address *account.Account) Packed {
	data := address.Bytes()
	l := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, l...)
	buffer = append(buffer, data...)
	return buffer
}

func appendBytes(buffer Packed, data []byte) Packed {
	l := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, l...)
	buffer = append(buffer, data...)
	return buffer
}

func appendUint64(buffer Packed, value uint64) Packed {
	valueBytes := util.ToVarint64(value)
	buffer = append(buffer, valueBytes...)
	return buffer
}
