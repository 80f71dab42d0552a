// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path"

	"github.com/urfave/cli"

	"github.com/F-K-C/projeto-hefesto/account"
	"github.com/F-K-C/projeto-hefesto/command/hefesto-cli/configuration"
)

func runSetup(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)
	testnet := m.testnet

	name, err := checkName(c.GlobalString("identity"))
	if nil != err {
		return err
	}

	connect, err := checkConnect(c.String("connect"))
	if nil != err {
		return err
	}

	description, err := checkDescription(c.String("description"))
	if nil != err {
		return err
	}

	key, err := privateKeyFromFlag(c.String("privateKey"), testnet)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "config: %s\n", m.file)
		fmt.Fprintf(m.e, "testnet: %t\n", testnet)
		fmt.Fprintf(m.e, "connect: %s\n", connect)
		fmt.Fprintf(m.e, "identity: %s\n", name)
		fmt.Fprintf(m.e, "description: %s\n", description)
	}

	// create the folder hierarchy for configuration if not existing
	configDir := path.Dir(m.file)
	d, err := checkFileExists(configDir)
	if nil != err {
		if err := os.MkdirAll(configDir, 0o700); nil != err {
			return err
		}
	} else if !d {
		return fmt.Errorf("path: %q is not a directory", configDir)
	}

	config := &configuration.Configuration{
		DefaultIdentity: name,
		TestNet:         testnet,
		Connect:         connect,
		Identities:      make(map[string]configuration.Identity),
	}

	err = config.AddIdentity(name, description, key)
	if nil != err {
		return err
	}

	m.config = config
	m.save = true

	return nil
}

// decode an existing private key or generate a fresh one
func privateKeyFromFlag(key string, testnet bool) (*account.PrivateKey, error) {
	if "" == key {
		return account.NewKeypair(testnet)
	}
	return account.PrivateKeyFromBase58(key)
}
