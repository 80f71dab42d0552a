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

type pendingRow struct {
	Id        uint64                   `json:"id"`
	Operation *records.StoredOperation `json:"operation,omitempty"`
	Error     string                   `json:"error,omitempty"`
}

func runPending(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := gateway.NewClient(m.testnet, m.config.Connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	rows := []pendingRow{}

	cursor := query.PendingOperations(client)
	for {
		entry, ok := cursor.Next()
		if !ok {
			if nil != entry && nil != entry.Err {
				return entry.Err
			}
			break
		}

		if nil != entry.Err {
			rows = append(rows, pendingRow{Id: entry.Id, Error: entry.Err.Error()})
			continue
		}
		rows = append(rows, pendingRow{Id: entry.Id, Operation: entry.Operation})
	}

	printJson(m.w, rows)
	return nil
}
