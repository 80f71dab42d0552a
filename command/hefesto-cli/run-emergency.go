// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/F-K-C/projeto-hefesto/gateway"
)

func runEmergency(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := checkOperationId(c.String("id"))
	if nil != err {
		return err
	}

	from, authority, err := checkSigner(c.GlobalString("identity"), m.config)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "id: %d\n", id)
		fmt.Fprintf(m.e, "authority: %s\n", from)
	}

	client, err := gateway.NewClient(m.testnet, m.config.Connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.EmergencyAuthorize(&gateway.AuthorityData{
		Authority: authority,
		Id:        id,
	})
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}
