// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/F-K-C/projeto-hefesto/ledger"
	"github.com/F-K-C/projeto-hefesto/records"
)

const (
	rpcCertificateFilename = "rpc.crt"
	rpcPrivateKeyFilename  = "rpc.key"
)

// setup command handler
//
// commands that run to create key and certificate files, these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("rpc", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "start", "run":
		return false // continue processing

	case "config-test", "cfg":
		return false // defer processing until configuration is read

	case "journal", "j":
		return false // defer processing until database is loaded

	case "version", "v":
		fmt.Printf("%s\n", version)

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                 (h)    - display this message\n\n")
		fmt.Printf("  version              (v)    - display version string\n\n")

		fmt.Printf("  gen-rpc-cert [DIR]   (rpc)  - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                and the certificate in: %q\n", "DIR/"+rpcCertificateFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...] - as above, certificate valid for the given hosts\n")
		fmt.Printf("\n")

		fmt.Printf("  start                (run)  - just run the program, same as no arguments\n")
		fmt.Printf("                                for convenience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test          (cfg)  - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  journal S [E]        (j)    - dump signed journal entries as JSON to stdout\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		json.Indent(&out, b, "", "  ")
		out.WriteTo(os.Stdout)
		os.Stdout.WriteString("\n")

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
//
// the database is open so these commands can read it
func processDataCommand(log *logger.L, arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "journal", "j":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing start block number argument")
		}
		first, err := strconv.ParseUint(arguments[0], 10, 64)
		if nil != err {
			exitwithstatus.Message("invalid block number: %q error: %s", arguments[0], err)
		}
		last := first
		if len(arguments) >= 2 {
			last, err = strconv.ParseUint(arguments[1], 10, 64)
			if nil != err {
				exitwithstatus.Message("invalid block number: %q error: %s", arguments[1], err)
			}
		}
		if last < first {
			exitwithstatus.Message("invalid range: %d…%d", first, last)
		}

		for blockNumber := first; blockNumber <= last; blockNumber += 1 {
			if err := dumpJournalEntry(blockNumber); nil != err {
				exitwithstatus.Message("block: %d  error: %s", blockNumber, err)
			}
		}

	default:
		exitwithstatus.Message("error: no such command: %q", command)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// print one journal entry as indented JSON
func dumpJournalEntry(blockNumber uint64) error {
	packed, err := ledger.Entry(blockNumber)
	if nil != err {
		return err
	}

	record, _, err := packed.Unpack()
	if nil != err {
		return err
	}

	name, _ := records.RecordName(record)
	entry := struct {
		BlockNumber uint64         `json:"blockNumber,string"`
		TxId        interface{}    `json:"txId"`
		Record      string         `json:"record"`
		Data        records.Record `json:"data"`
	}{
		BlockNumber: blockNumber,
		TxId:        packed.TxId(),
		Record:      name,
		Data:        record,
	}

	b, err := json.MarshalIndent(entry, "", "  ")
	if nil != err {
		return err
	}
	fmt.Printf("%s\n", b)
	return nil
}

// path of a well-known file optionally placed in a directory argument
func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 && "" != arguments[0] {
		dir = arguments[0]
	}
	return filepath.Join(dir, name)
}
