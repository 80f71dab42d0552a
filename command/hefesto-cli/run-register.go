// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/F-K-C/projeto-hefesto/gateway"
)

func runRegister(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	digestText, err := checkDigest(c.String("digest"))
	if nil != err {
		return err
	}

	serial, err := checkSerial(c.String("serial"))
	if nil != err {
		return err
	}

	from, registrant, err := checkSigner(c.GlobalString("identity"), m.config)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "digest: %s\n", digestText)
		fmt.Fprintf(m.e, "serial: %s\n", serial)
		fmt.Fprintf(m.e, "registrant: %s\n", from)
	}

	client, err := gateway.NewClient(m.testnet, m.config.Connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.RegisterItem(&gateway.RegisterItemData{
		Registrant: registrant,
		Digest:     digestText,
		Serial:     serial,
		Category:   c.String("category"),
		Model:      c.String("model"),
		Condition:  c.String("condition"),
	})
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}
