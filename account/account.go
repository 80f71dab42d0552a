// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - custodian identities
//
// a custodian is identified by an ed25519 public key; the printable
// form is Base58 of: key variant byte, public key, 4 byte SHA3 checksum
package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/F-K-C/projeto-hefesto/fault"
	"github.com/F-K-C/projeto-hefesto/util"
)

// enumeration of supported key algorithms
const (
	ED25519 = iota + 1
	// end of list (one greater than last item)
	algorithmLimit = iota + 1
)

// miscellaneous constants
const (
	checksumLength = 4

	// bits in key code starting from LSB
	publicKeyCode = 0x01
	testKeyCode   = 0x02

	algorithmShift = 4 // shift 4 bits to get algorithm
)

// Account - base type for accounts
type Account struct {
	AccountInterface
}

// AccountInterface - interface type for account methods
type AccountInterface interface {
	KeyType() int
	PublicKeyBytes() []byte
	CheckSignature(message []byte, signature Signature) error
	Bytes() []byte
	String() string
	MarshalText() ([]byte, error)
	IsTesting() bool
}

// ED25519Account - for ed25519 signatures
type ED25519Account struct {
	Test      bool
	PublicKey []byte
}

// AccountFromBase58 - convert a Base58 encoded string to an account
func AccountFromBase58(accountBase58Encoded string) (*Account, error) {
	accountDecoded, err := base58.Decode(accountBase58Encoded)
	if nil != err || 0 == len(accountDecoded) {
		return nil, fault.CannotDecodeAccount
	}

	// check the key variant
	keyVariant, keyVariantLength := util.FromVarint64(accountDecoded)
	if 0 == keyVariantLength || keyVariant&publicKeyCode != publicKeyCode {
		return nil, fault.NotPublicKey
	}

	keyAlgorithm := keyVariant >> algorithmShift
	if keyAlgorithm < ED25519 || keyAlgorithm >= algorithmLimit {
		return nil, fault.InvalidKeyType
	}

	isTest := 0 != keyVariant&testKeyCode

	keyLength := len(accountDecoded) - keyVariantLength - checksumLength
	if keyLength <= 0 {
		return nil, fault.InvalidKeyLength
	}

	checksumStart := len(accountDecoded) - checksumLength
	checksum := sha3.Sum256(accountDecoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], accountDecoded[checksumStart:]) {
		return nil, fault.ChecksumMismatch
	}

	if ed25519.PublicKeySize != keyLength {
		return nil, fault.InvalidKeyLength
	}
	return &Account{
		AccountInterface: &ED25519Account{
			Test:      isTest,
			PublicKey: accountDecoded[keyVariantLength:checksumStart],
		},
	}, nil
}

// AccountFromBytes - convert a packed byte buffer to an account
//
// the buffer is the key variant followed by the raw public key, i.e.
// the result of Bytes(), without any checksum
func AccountFromBytes(accountBytes []byte) (*Account, error) {
	keyVariant, keyVariantLength := util.FromVarint64(accountBytes)
	if 0 == keyVariantLength || keyVariant&publicKeyCode != publicKeyCode {
		return nil, fault.NotPublicKey
	}

	keyAlgorithm := keyVariant >> algorithmShift
	if keyAlgorithm < ED25519 || keyAlgorithm >= algorithmLimit {
		return nil, fault.InvalidKeyType
	}

	isTest := 0 != keyVariant&testKeyCode

	publicKey := accountBytes[keyVariantLength:]
	if ed25519.PublicKeySize != len(publicKey) {
		return nil, fault.InvalidKeyLength
	}
	return &Account{
		AccountInterface: &ED25519Account{
			Test:      isTest,
			PublicKey: publicKey,
		},
	}, nil
}

// UnmarshalText - convert base58 text to an account for JSON decoding
func (account *Account) UnmarshalText(s []byte) error {
	a, err := AccountFromBase58(string(s))
	if nil != err {
		return err
	}
	account.AccountInterface = a.AccountInterface
	return nil
}

// UnmarshalJSON - quoted base58 to account
func (account *Account) UnmarshalJSON(s []byte) error {
	last := len(s) - 1
	if len(s) < 2 || '"' != s[0] || '"' != s[last] {
		return fault.CannotDecodeAccount
	}
	return account.UnmarshalText(s[1:last])
}

// MarshalJSON - account to quoted base58
func (account Account) MarshalJSON() ([]byte, error) {
	text, err := account.MarshalText()
	if nil != err {
		return nil, err
	}
	buffer := make([]byte, 0, len(text)+2)
	buffer = append(buffer, '"')
	buffer = append(buffer, text...)
	buffer = append(buffer, '"')
	return buffer, nil
}

// ED25519

// KeyType - key type code
func (account *ED25519Account) KeyType() int {
	return ED25519
}

// PublicKeyBytes - fetch the public key as byte slice
func (account *ED25519Account) PublicKeyBytes() []byte {
	return account.PublicKey
}

// CheckSignature - verify the signature over a message
func (account *ED25519Account) CheckSignature(message []byte, signature Signature) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.InvalidSignature
	}
	if !ed25519.Verify(account.PublicKey, message, []byte(signature)) {
		return fault.InvalidSignature
	}
	return nil
}

// Bytes - key variant and public key, the packed record form
func (account *ED25519Account) Bytes() []byte {
	keyVariant := byte(ED25519<<algorithmShift) | publicKeyCode
	if account.Test {
		keyVariant |= testKeyCode
	}
	return append([]byte{keyVariant}, account.PublicKey...)
}

// String - base58 encoded public key with checksum
func (account *ED25519Account) String() string {
	buffer := account.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// MarshalText - base58 text for JSON encoding
func (account ED25519Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// IsTesting - true for a test network key
func (account ED25519Account) IsTesting() bool {
	return account.Test
}
