// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chain - names of the supported ledger networks
package chain

// names of the networks
const (
	Hefesto = "hefesto" // production inventory ledger
	Testing = "testing" // shared test network
	Local   = "local"   // local development
)

// Valid - check than a chain name is one of the supported networks
func Valid(name string) bool {
	switch name {
	case Hefesto, Testing, Local:
		return true
	default:
		return false
	}
}
