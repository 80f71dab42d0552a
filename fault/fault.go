// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised             = ProcessError("already initialised")
	AssetNotFound                  = NotFoundError("asset not found")
	CannotDecodeAccount            = InvalidError("cannot decode account")
	CannotDecodePrivateKey         = InvalidError("cannot decode private key")
	CertificateFileAlreadyExists   = ExistsError("certificate file already exists")
	CertificateFingerprintMismatch = InvalidError("certificate fingerprint mismatch")
	ChecksumMismatch               = InvalidError("checksum mismatch")
	DataInconsistent               = ProcessError("data inconsistent")
	DuplicateAsset                 = ExistsError("asset already registered")
	IdentityNameAlreadyExists      = ExistsError("identity name already exists")
	IdentityNameNotFound           = NotFoundError("identity name not found")
	IncompatibleOptions            = InvalidError("incompatible options")
	InvalidChainName               = InvalidError("invalid chain name")
	InvalidCondition               = InvalidError("invalid condition")
	InvalidCount                   = InvalidError("invalid count")
	InvalidDigestFormat            = InvalidError("invalid digest format")
	InvalidIpAddress               = InvalidError("invalid ip address")
	InvalidItemIndex               = NotFoundError("invalid item index")
	InvalidKeyLength               = InvalidError("invalid key length")
	InvalidKeyType                 = InvalidError("invalid key type")
	InvalidNonce                   = InvalidError("invalid nonce")
	InvalidOriginOrRegistrant      = InvalidError("invalid origin or registrant")
	InvalidSignature               = InvalidError("invalid signature")
	InvalidStructPointer           = InvalidError("invalid struct pointer")
	KeyFileAlreadyExists           = ExistsError("key file already exists")
	MissingParameters              = InvalidError("missing parameters")
	NotAuthorized                  = InvalidError("not authorized for this call")
	NotAvailable                   = ProcessError("not available during start up")
	NotInitialised                 = ProcessError("not initialised")
	NotOperationPack               = InvalidError("not operation pack")
	NotPrivateKey                  = InvalidError("not private key")
	NotPublicKey                   = InvalidError("not public key")
	NotRecordPack                  = InvalidError("not record pack")
	OperationNotFound              = NotFoundError("operation not found")
	OperationNotPending            = InvalidError("operation is not pending")
	RateLimiting                   = ProcessError("rate limiting")
	ReceiptNotFound                = NotFoundError("receipt not found")
	SerialTooLong                  = InvalidError("serial number too long")
	SerialTooShort                 = InvalidError("serial number too short")
	SignatureTooLong               = InvalidError("signature too long")
	SubmissionFailed               = ProcessError("submission failed")
	TextTooLong                    = InvalidError("text field too long")
	WrongNetworkAccount            = InvalidError("account is for a different network")
	WrongPartyForApproval          = InvalidError("wrong party for approval")
)

// Error - the error interface base method
func (e GenericError) Error() string { return string(e) }

// Error - the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// IsErrExists - determine the class of an error
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInvalid - check for invalid class
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrNotFound - check for not found class
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrProcess - check for process class
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }
