// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"strconv"

	"github.com/urfave/cli"

	"github.com/F-K-C/projeto-hefesto/account"
	"github.com/F-K-C/projeto-hefesto/command/hefesto-cli/configuration"
	"github.com/F-K-C/projeto-hefesto/digest"
	"github.com/F-K-C/projeto-hefesto/fault"
)

var (
	ErrRequiredConnect       = fault.InvalidError("connect is required")
	ErrRequiredDescription   = fault.InvalidError("description is required")
	ErrRequiredDigest        = fault.InvalidError("digest is required")
	ErrRequiredIdentity      = fault.InvalidError("identity is required")
	ErrRequiredOperationId   = fault.InvalidError("operation id is required")
	ErrRequiredReceiver      = fault.InvalidError("receiver is required")
	ErrRequiredSerial        = fault.InvalidError("serial is required")
	ErrRequiredTransactionId = fault.InvalidError("transaction id is required")
)

// identity is required, but not checked against the config file
func checkName(name string) (string, error) {
	if "" == name {
		return "", ErrRequiredIdentity
	}

	return name, nil
}

// connect is required
func checkConnect(connect string) (string, error) {
	if "" == connect {
		return "", ErrRequiredConnect
	}

	return connect, nil
}

// description is required
func checkDescription(description string) (string, error) {
	if "" == description {
		return "", ErrRequiredDescription
	}

	return description, nil
}

// digest is required and must be canonical 0x-hex
func checkDigest(digestText string) (string, error) {
	if "" == digestText {
		return "", ErrRequiredDigest
	}
	if _, err := digest.DigestFromString(digestText); nil != err {
		return "", err
	}

	return digestText, nil
}

// transaction id is required and has the same format as a digest
func checkTxId(txId string) (string, error) {
	if "" == txId {
		return "", ErrRequiredTransactionId
	}
	if _, err := digest.DigestFromString(txId); nil != err {
		return "", err
	}

	return txId, nil
}

// operation id is required, decimal, one based
func checkOperationId(id string) (uint64, error) {
	if "" == id {
		return 0, ErrRequiredOperationId
	}

	n, err := strconv.ParseUint(id, 10, 64)
	if nil != err {
		return 0, err
	}
	if 0 == n {
		return 0, fault.OperationNotFound
	}
	return n, nil
}

// serial is required
func checkSerial(serial string) (string, error) {
	if "" == serial {
		return "", ErrRequiredSerial
	}

	return serial, nil
}

// resolve a receiver as an identity name from the configuration,
// falling back to a literal Base58 account
func checkRecipient(c *cli.Context, flag string, config *configuration.Configuration) (string, *account.Account, error) {
	name := c.String(flag)
	if "" == name {
		return "", nil, ErrRequiredReceiver
	}

	acc, err := config.Account(name)
	if nil != err {
		acc, err = account.AccountFromBase58(name)
		if nil != err {
			return "", nil, err
		}
	}

	return name, acc, nil
}

// resolve the signing identity: the global --identity flag or the
// configured default
func checkSigner(name string, config *configuration.Configuration) (string, *account.PrivateKey, error) {
	if "" == name {
		name = config.DefaultIdentity
	}
	if "" == name {
		return "", nil, ErrRequiredIdentity
	}

	key, err := config.PrivateKey(name)
	if nil != err {
		return "", nil, err
	}

	return name, key, nil
}

// check if file exists and whether it is a directory
func checkFileExists(name string) (bool, error) {
	s, err := os.Stat(name)
	if nil != err {
		return false, err
	}
	return s.IsDir(), nil
}
