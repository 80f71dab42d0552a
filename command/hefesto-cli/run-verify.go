// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/F-K-C/projeto-hefesto/gateway"
	"github.com/F-K-C/projeto-hefesto/query"
	"github.com/F-K-C/projeto-hefesto/records"
)

func runVerify(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	digestText, err := checkDigest(c.String("digest"))
	if nil != err {
		return err
	}

	client, err := gateway.NewClient(m.testnet, m.config.Connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	registered, err := query.Exists(client, digestText)
	if nil != err {
		return err
	}

	result := struct {
		Digest     string              `json:"digest"`
		Registered bool                `json:"registered"`
		Item       *records.StoredItem `json:"item,omitempty"`
	}{
		Digest:     digestText,
		Registered: registered,
	}

	if registered {
		item, err := query.Item(client, digestText)
		if nil != err {
			return err
		}
		result.Item = item
	}

	printJson(m.w, result)
	return nil
}
