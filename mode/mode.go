// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mode - the global operating state of the daemon
//
// write operations are only accepted once the daemon has reached
// normal mode, the RPC listener starts earlier so read queries
// remain possible during start up
package mode

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/F-K-C/projeto-hefesto/chain"
	"github.com/F-K-C/projeto-hefesto/fault"
)

// Mode - type to hold the operating mode
type Mode int

// all possible modes
const (
	Stopped Mode = iota
	Normal  Mode = iota
	maximum Mode = iota
)

type modeData struct {
	sync.RWMutex

	log       *logger.L
	mode      Mode
	testing   bool
	chainName string

	initialised bool
}

var globalData modeData

// Initialise - set up the mode system
func Initialise(chainName string) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("mode")
	globalData.log.Info("starting…")

	// ensure start up in stopped mode
	globalData.mode = Stopped
	globalData.chainName = chainName

	switch chainName {
	case chain.Hefesto:
		globalData.testing = false
	case chain.Testing, chain.Local:
		globalData.testing = true
	default:
		globalData.log.Criticalf("invalid chain name: %s", chainName)
		return fault.InvalidChainName
	}

	globalData.initialised = true
	return nil
}

// Finalise - stop all mode related activity
func Finalise() error {
	if !globalData.initialised {
		return fault.NotInitialised
	}

	Set(Stopped)

	globalData.Lock()
	globalData.initialised = false
	globalData.Unlock()

	return nil
}

// Set - change the current mode
func Set(mode Mode) {
	if mode < Stopped || mode >= maximum {
		return
	}

	globalData.Lock()
	globalData.mode = mode
	globalData.Unlock()

	globalData.log.Infof("set: %s", mode)
}

// Is - detect the current mode
func Is(mode Mode) bool {
	globalData.RLock()
	defer globalData.RUnlock()
	return mode == globalData.mode
}

// IsNot - detect the current mode
func IsNot(mode Mode) bool {
	globalData.RLock()
	defer globalData.RUnlock()
	return mode != globalData.mode
}

// IsTesting - detect if running on a test network
func IsTesting() bool {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.testing
}

// ChainName - name of the current chain
func ChainName() string {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.chainName
}

// String - current mode represented as a string
func String() string {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.mode.String()
}

// String - mode values represented as a string
func (m Mode) String() string {
	switch m {
	case Stopped:
		return "Stopped"
	case Normal:
		return "Normal"
	default:
		return "*Unknown*"
	}
}
