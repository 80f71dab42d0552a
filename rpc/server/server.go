// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package server - assemble the RPC services
package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/F-K-C/projeto-hefesto/account"
	"github.com/F-K-C/projeto-hefesto/counter"
	"github.com/F-K-C/projeto-hefesto/mode"
	"github.com/F-K-C/projeto-hefesto/rpc/inventario"
	"github.com/F-K-C/projeto-hefesto/rpc/logistica"
	"github.com/F-K-C/projeto-hefesto/rpc/node"
)

// Create - register all services on a fresh RPC server
func Create(log *logger.L, version string, rpcCount *counter.Counter, authorities []*account.Account) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(inventario.New(log, mode.Is))
	_ = server.Register(logistica.New(log, mode.Is, authorities))
	_ = server.Register(node.New(log, start, version, rpcCount))

	return server
}
