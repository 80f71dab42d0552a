// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/F-K-C/projeto-hefesto/gateway"
)

func runTransfer(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	digestText, err := checkDigest(c.String("digest"))
	if nil != err {
		return err
	}

	to, recipient, err := checkRecipient(c, "receiver", m.config)
	if nil != err {
		return err
	}

	from, origin, err := checkSigner(c.GlobalString("identity"), m.config)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "digest: %s\n", digestText)
		fmt.Fprintf(m.e, "receiver: %s\n", to)
		fmt.Fprintf(m.e, "sender: %s\n", from)
	}

	client, err := gateway.NewClient(m.testnet, m.config.Connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.CreateOperation(&gateway.CreateOperationData{
		Origin:      origin,
		Destination: recipient,
		Digest:      digestText,
	})
	if nil != err {
		return err
	}

	// the transfer is accepted either way, an unregistered digest is
	// only flagged
	if !response.Registered {
		fmt.Fprintf(m.e, "warning: digest is not on the register: %s\n", digestText)
	}

	printJson(m.w, response)
	return nil
}
