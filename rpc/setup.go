// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - offer the ledger services over TLS connections
package rpc

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/F-K-C/projeto-hefesto/account"
	"github.com/F-K-C/projeto-hefesto/counter"
	"github.com/F-K-C/projeto-hefesto/fault"
	"github.com/F-K-C/projeto-hefesto/rpc/certificate"
	"github.com/F-K-C/projeto-hefesto/rpc/listeners"
	"github.com/F-K-C/projeto-hefesto/rpc/server"
)

const (
	tlsName = "client_rpc"
)

// globals
type rpcData struct {
	sync.RWMutex

	log *logger.L

	// set once during initialise
	initialised bool
}

var globalData rpcData

// count of active RPC connections
var connectionCountRPC counter.Counter

// Initialise - start the RPC listener
func Initialise(rpcConfiguration *listeners.RPCConfiguration, version string, authorities []*account.Account) error {

	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	tlsConfig, certificateFingerprint, err := certificate.Get(log, tlsName, rpcConfiguration.Certificate, rpcConfiguration.PrivateKey)
	if nil != err {
		return err
	}

	rpcListener, err := listeners.NewRPC(
		rpcConfiguration,
		log,
		&connectionCountRPC,
		server.Create(log, version, &connectionCountRPC, authorities),
		tlsConfig,
		certificateFingerprint,
	)
	if nil != err {
		return err
	}
	err = rpcListener.Serve()
	if nil != err {
		return err
	}

	globalData.initialised = true

	return nil
}

// Finalise - stop the RPC listener
func Finalise() error {

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// ConnectionCount - number of currently served connections
func ConnectionCount() uint64 {
	return connectionCountRPC.Uint64()
}
