// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/F-K-C/projeto-hefesto/account"
)

func runGenerate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := account.NewKeypair(m.testnet)
	if nil != err {
		return err
	}

	printJson(m.w, struct {
		Account    string `json:"account"`
		PrivateKey string `json:"private_key"`
	}{
		Account:    key.Account().String(),
		PrivateKey: key.String(),
	})
	return nil
}
