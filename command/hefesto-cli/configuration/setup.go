// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/F-K-C/projeto-hefesto/account"
	"github.com/F-K-C/projeto-hefesto/fault"
)

// Configuration - configuration file data format
type Configuration struct {
	DefaultIdentity string              `json:"default_identity"`
	TestNet         bool                `json:"testnet"`
	Connect         string              `json:"connect"`
	Identities      map[string]Identity `json:"identities"`
}

// Identity - a named account, with its private key if this client can
// sign for it
//
// the PoC stores keys in the clear, so a configuration file holding
// signing identities must be protected by file permissions
type Identity struct {
	Description string `json:"description"`
	Account     string `json:"account"`
	PrivateKey  string `json:"private_key,omitempty"`
}

// Load - read the configuration
func Load(filename string) (*Configuration, error) {

	options := &Configuration{}

	err := readConfiguration(filename, options)
	if nil != err {
		return nil, err
	}
	return options, nil
}

// generic JSON decoder
func readConfiguration(filename string, options interface{}) error {

	filename, err := filepath.Abs(filepath.Clean(filename))
	if nil != err {
		return err
	}

	f, err := os.Open(filename)
	if nil != err {
		return err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	err = dec.Decode(options)
	if nil != err {
		return err
	}

	return nil
}

// Save - write the configuration to its file
func Save(filename string, configuration *Configuration) error {

	filename, err := filepath.Abs(filepath.Clean(filename))
	if nil != err {
		return err
	}

	b, err := json.MarshalIndent(configuration, "", "  ")
	if nil != err {
		return err
	}
	b = append(b, '\n')

	// private keys inside, so keep the file owner-only
	return os.WriteFile(filename, b, 0600)
}

// Identity - find identity for a given name
func (config *Configuration) Identity(name string) (*Identity, error) {
	id, ok := config.Identities[name]
	if !ok {
		return nil, fault.IdentityNameNotFound
	}

	return &id, nil
}

// Account - find identity for a given name and convert to an account
func (config *Configuration) Account(name string) (*account.Account, error) {
	id, err := config.Identity(name)
	if nil != err {
		return nil, err
	}

	return account.AccountFromBase58(id.Account)
}

// PrivateKey - find the signing key for a given name
func (config *Configuration) PrivateKey(name string) (*account.PrivateKey, error) {
	id, err := config.Identity(name)
	if nil != err {
		return nil, err
	}
	if "" == id.PrivateKey {
		return nil, fault.NotPrivateKey
	}

	return account.PrivateKeyFromBase58(id.PrivateKey)
}

// AddIdentity - store a signing identity
func (config *Configuration) AddIdentity(name string, description string, privateKey *account.PrivateKey) error {

	if _, ok := config.Identities[name]; ok {
		return fault.IdentityNameAlreadyExists
	}
	if privateKey.IsTesting() != config.TestNet {
		return fault.WrongNetworkAccount
	}

	config.Identities[name] = Identity{
		Description: description,
		Account:     privateKey.Account().String(),
		PrivateKey:  privateKey.String(),
	}
	return nil
}

// AddReceiveOnlyIdentity - store an identity without a signing key
func (config *Configuration) AddReceiveOnlyIdentity(name string, description string, accountBase58 string) error {

	if _, ok := config.Identities[name]; ok {
		return fault.IdentityNameAlreadyExists
	}

	acc, err := account.AccountFromBase58(accountBase58)
	if nil != err {
		return err
	}
	if acc.IsTesting() != config.TestNet {
		return fault.WrongNetworkAccount
	}

	config.Identities[name] = Identity{
		Description: description,
		Account:     acc.String(),
	}
	return nil
}
