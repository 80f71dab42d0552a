// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/F-K-C/projeto-hefesto/account"
	"github.com/F-K-C/projeto-hefesto/fault"
)

func runAdd(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name, err := checkName(c.GlobalString("identity"))
	if nil != err {
		return err
	}

	description, err := checkDescription(c.String("description"))
	if nil != err {
		return err
	}

	key := c.String("privateKey")
	acc := c.String("account")
	generate := c.Bool("new")

	if m.verbose {
		fmt.Fprintf(m.e, "identity: %s\n", name)
		fmt.Fprintf(m.e, "description: %s\n", description)
		fmt.Fprintf(m.e, "account: %s\n", acc)
		fmt.Fprintf(m.e, "new: %t\n", generate)
	}

	switch {
	case "" != key && "" == acc && !generate:
		privateKey, err := account.PrivateKeyFromBase58(key)
		if nil != err {
			return err
		}
		err = m.config.AddIdentity(name, description, privateKey)
		if nil != err {
			return err
		}

	case "" == key && "" == acc && generate:
		privateKey, err := account.NewKeypair(m.testnet)
		if nil != err {
			return err
		}
		err = m.config.AddIdentity(name, description, privateKey)
		if nil != err {
			return err
		}

	case "" == key && "" != acc && !generate:
		err = m.config.AddReceiveOnlyIdentity(name, description, acc)
		if nil != err {
			return err
		}

	default:
		return fault.IncompatibleOptions
	}

	// require configuration update
	m.save = true
	return nil
}
