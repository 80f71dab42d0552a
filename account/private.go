// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"crypto/rand"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/F-K-C/projeto-hefesto/fault"
	"github.com/F-K-C/projeto-hefesto/util"
)

// PrivateKey - base type for private keys
type PrivateKey struct {
	PrivateKeyInterface
}

// PrivateKeyInterface - interface type for private key methods
type PrivateKeyInterface interface {
	KeyType() int
	Account() *Account
	Sign(message []byte) Signature
	PrivateKeyBytes() []byte
	Bytes() []byte
	String() string
	IsTesting() bool
}

// ED25519PrivateKey - an ed25519 signing key
type ED25519PrivateKey struct {
	Test       bool
	PrivateKey []byte
}

// NewKeypair - generate a fresh custodian keypair
func NewKeypair(test bool) (*PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, err
	}
	return &PrivateKey{
		PrivateKeyInterface: &ED25519PrivateKey{
			Test:       test,
			PrivateKey: priv,
		},
	}, nil
}

// PrivateKeyFromBase58 - decode a Base58 encoded private key
//
// same layout as the account form: key variant, key bytes, checksum
func PrivateKeyFromBase58(privateKeyBase58Encoded string) (*PrivateKey, error) {
	privateKeyDecoded, err := base58.Decode(privateKeyBase58Encoded)
	if nil != err || 0 == len(privateKeyDecoded) {
		return nil, fault.CannotDecodePrivateKey
	}

	keyVariant, keyVariantLength := util.FromVarint64(privateKeyDecoded)
	if 0 == keyVariantLength || keyVariant&publicKeyCode == publicKeyCode {
		return nil, fault.NotPrivateKey
	}

	keyAlgorithm := keyVariant >> algorithmShift
	if keyAlgorithm < ED25519 || keyAlgorithm >= algorithmLimit {
		return nil, fault.InvalidKeyType
	}

	isTest := 0 != keyVariant&testKeyCode

	checksumStart := len(privateKeyDecoded) - checksumLength
	if checksumStart <= keyVariantLength {
		return nil, fault.InvalidKeyLength
	}
	checksum := sha3.Sum256(privateKeyDecoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], privateKeyDecoded[checksumStart:]) {
		return nil, fault.ChecksumMismatch
	}

	privateKey := privateKeyDecoded[keyVariantLength:checksumStart]
	if ed25519.PrivateKeySize != len(privateKey) {
		return nil, fault.InvalidKeyLength
	}
	return &PrivateKey{
		PrivateKeyInterface: &ED25519PrivateKey{
			Test:       isTest,
			PrivateKey: privateKey,
		},
	}, nil
}

// UnmarshalText - convert base58 text to a private key
func (privateKey *PrivateKey) UnmarshalText(s []byte) error {
	k, err := PrivateKeyFromBase58(string(s))
	if nil != err {
		return err
	}
	privateKey.PrivateKeyInterface = k.PrivateKeyInterface
	return nil
}

// ED25519

// KeyType - key type code
func (privateKey *ED25519PrivateKey) KeyType() int {
	return ED25519
}

// Account - the public account matching this key
func (privateKey *ED25519PrivateKey) Account() *Account {
	return &Account{
		AccountInterface: &ED25519Account{
			Test:      privateKey.Test,
			PublicKey: []byte(ed25519.PrivateKey(privateKey.PrivateKey).Public().(ed25519.PublicKey)),
		},
	}
}

// Sign - sign a message
func (privateKey *ED25519PrivateKey) Sign(message []byte) Signature {
	return Signature(ed25519.Sign(privateKey.PrivateKey, message))
}

// PrivateKeyBytes - fetch the raw key as byte slice
func (privateKey *ED25519PrivateKey) PrivateKeyBytes() []byte {
	return privateKey.PrivateKey
}

// Bytes - key variant and private key
func (privateKey *ED25519PrivateKey) Bytes() []byte {
	keyVariant := byte(ED25519 << algorithmShift)
	if privateKey.Test {
		keyVariant |= testKeyCode
	}
	return append([]byte{keyVariant}, privateKey.PrivateKey...)
}

// String - base58 encoded private key with checksum
func (privateKey *ED25519PrivateKey) String() string {
	buffer := privateKey.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// IsTesting - true for a test network key
func (privateKey *ED25519PrivateKey) IsTesting() bool {
	return privateKey.Test
}
