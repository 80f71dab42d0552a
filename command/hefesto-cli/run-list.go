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

type listRow struct {
	Index  uint64              `json:"index"`
	Digest string              `json:"digest"`
	Item   *records.StoredItem `json:"item,omitempty"`
	Error  string              `json:"error,omitempty"`
}

func runList(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)
	all := c.Bool("all")

	client, err := gateway.NewClient(m.testnet, m.config.Connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	rows := []listRow{}

	cursor := query.Inventory(client)
	for {
		entry, ok := cursor.Next()
		if !ok {
			if nil != entry && nil != entry.Err {
				return entry.Err
			}
			break
		}

		if nil != entry.Err {
			rows = append(rows, listRow{
				Index:  entry.Index,
				Digest: entry.Digest.String(),
				Error:  entry.Err.Error(),
			})
			continue
		}

		if !all && query.IsSurrogate(&entry.Item.Item) {
			continue
		}

		rows = append(rows, listRow{
			Index:  entry.Index,
			Digest: entry.Digest.String(),
			Item:   entry.Item,
		})
	}

	printJson(m.w, rows)
	return nil
}
