// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// net/rpc transmits a server-side error as its bare message text, so a
// client only ever sees a flat string.  This table recovers the typed
// value for the errors that cross the RPC boundary.
var messageTable = map[string]error{
	AssetNotFound.Error():             AssetNotFound,
	DuplicateAsset.Error():            DuplicateAsset,
	InvalidCondition.Error():          InvalidCondition,
	InvalidCount.Error():              InvalidCount,
	InvalidDigestFormat.Error():       InvalidDigestFormat,
	InvalidItemIndex.Error():          InvalidItemIndex,
	InvalidNonce.Error():              InvalidNonce,
	InvalidOriginOrRegistrant.Error(): InvalidOriginOrRegistrant,
	InvalidSignature.Error():          InvalidSignature,
	MissingParameters.Error():         MissingParameters,
	NotAuthorized.Error():             NotAuthorized,
	NotAvailable.Error():              NotAvailable,
	NotRecordPack.Error():             NotRecordPack,
	OperationNotFound.Error():         OperationNotFound,
	OperationNotPending.Error():       OperationNotPending,
	RateLimiting.Error():              RateLimiting,
	ReceiptNotFound.Error():           ReceiptNotFound,
	SerialTooLong.Error():             SerialTooLong,
	SerialTooShort.Error():            SerialTooShort,
	SignatureTooLong.Error():          SignatureTooLong,
	TextTooLong.Error():               TextTooLong,
	WrongNetworkAccount.Error():       WrongNetworkAccount,
	WrongPartyForApproval.Error():     WrongPartyForApproval,
}

// FromMessage - convert a transmitted error message back to its typed
// value
//
// an unrecognised message is returned unchanged
func FromMessage(e error) error {
	if nil == e {
		return nil
	}
	if typed, ok := messageTable[e.Error()]; ok {
		return typed
	}
	return e
}
