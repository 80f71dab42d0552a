// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"path/filepath"
	"testing"

	"github.com/F-K-C/projeto-hefesto/account"
	"github.com/F-K-C/projeto-hefesto/command/hefesto-cli/configuration"
	"github.com/F-K-C/projeto-hefesto/fault"
)

func TestRoundTrip(t *testing.T) {

	key, err := account.NewKeypair(true)
	if nil != err {
		t.Fatalf("keypair error: %s", err)
	}

	config := &configuration.Configuration{
		DefaultIdentity: "almoxarife",
		TestNet:         true,
		Connect:         "127.0.0.1:2230",
		Identities:      make(map[string]configuration.Identity),
	}

	err = config.AddIdentity("almoxarife", "warehouse custodian", key)
	if nil != err {
		t.Fatalf("add identity error: %s", err)
	}

	file := filepath.Join(t.TempDir(), "testing-hefesto-cli.json")
	err = configuration.Save(file, config)
	if nil != err {
		t.Fatalf("save error: %s", err)
	}

	loaded, err := configuration.Load(file)
	if nil != err {
		t.Fatalf("load error: %s", err)
	}

	if loaded.DefaultIdentity != config.DefaultIdentity {
		t.Errorf("default identity: %q  expected: %q", loaded.DefaultIdentity, config.DefaultIdentity)
	}
	if loaded.Connect != config.Connect {
		t.Errorf("connect: %q  expected: %q", loaded.Connect, config.Connect)
	}

	acc, err := loaded.Account("almoxarife")
	if nil != err {
		t.Fatalf("account error: %s", err)
	}
	if acc.String() != key.Account().String() {
		t.Errorf("account: %s  expected: %s", acc, key.Account())
	}

	recovered, err := loaded.PrivateKey("almoxarife")
	if nil != err {
		t.Fatalf("private key error: %s", err)
	}
	if recovered.String() != key.String() {
		t.Errorf("private key: %s  expected: %s", recovered, key)
	}
}

func TestDuplicateIdentity(t *testing.T) {

	key, err := account.NewKeypair(true)
	if nil != err {
		t.Fatalf("keypair error: %s", err)
	}

	config := &configuration.Configuration{
		TestNet:    true,
		Identities: make(map[string]configuration.Identity),
	}

	err = config.AddIdentity("gestor", "asset manager", key)
	if nil != err {
		t.Fatalf("add identity error: %s", err)
	}

	err = config.AddIdentity("gestor", "asset manager again", key)
	if fault.IdentityNameAlreadyExists != err {
		t.Fatalf("duplicate add error: %v  expected: %v", err, fault.IdentityNameAlreadyExists)
	}
}

func TestWrongNetwork(t *testing.T) {

	key, err := account.NewKeypair(false)
	if nil != err {
		t.Fatalf("keypair error: %s", err)
	}

	config := &configuration.Configuration{
		TestNet:    true,
		Identities: make(map[string]configuration.Identity),
	}

	err = config.AddIdentity("gestor", "live network key", key)
	if fault.WrongNetworkAccount != err {
		t.Fatalf("wrong network error: %v  expected: %v", err, fault.WrongNetworkAccount)
	}
}

func TestReceiveOnlyIdentity(t *testing.T) {

	key, err := account.NewKeypair(true)
	if nil != err {
		t.Fatalf("keypair error: %s", err)
	}

	config := &configuration.Configuration{
		TestNet:    true,
		Identities: make(map[string]configuration.Identity),
	}

	err = config.AddReceiveOnlyIdentity("recebedor", "receiving party", key.Account().String())
	if nil != err {
		t.Fatalf("add receive-only error: %s", err)
	}

	acc, err := config.Account("recebedor")
	if nil != err {
		t.Fatalf("account error: %s", err)
	}
	if acc.String() != key.Account().String() {
		t.Errorf("account: %s  expected: %s", acc, key.Account())
	}

	_, err = config.PrivateKey("recebedor")
	if fault.NotPrivateKey != err {
		t.Fatalf("private key error: %v  expected: %v", err, fault.NotPrivateKey)
	}
}
