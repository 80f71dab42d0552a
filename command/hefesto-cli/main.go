// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/urfave/cli"

	"github.com/F-K-C/projeto-hefesto/command/hefesto-cli/configuration"
)

type metadata struct {
	file    string
	config  *configuration.Configuration
	save    bool
	testnet bool
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "hefesto-cli"
	app.Usage = "command line client for hefestod"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "network, n",
			Value: "",
			Usage: " connect to hefesto `NETWORK` [hefesto|testing|local]",
		},
		cli.StringFlag{
			Name:  "identity, i",
			Value: "",
			Usage: " identity `NAME` [default identity]",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate key pair, will not store in config file",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runGenerate,
		},
		{
			Name:      "setup",
			Usage:     "initialise hefesto-cli configuration",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "connect, c",
					Value: "",
					Usage: "*hefestod host/IP and port, `HOST:PORT`",
				},
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "privateKey, k",
					Value: "",
					Usage: " use an existing private key `KEY`",
				},
			},
			Action: runSetup,
		},
		{
			Name:      "add",
			Usage:     "add a new identity to config file",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "privateKey, k",
					Value: "",
					Usage: "+use an existing private key `KEY`",
				},
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: "+receive-only identity `ACCOUNT`",
				},
				cli.BoolFlag{
					Name:  "new, n",
					Usage: "+generate a new key pair",
				},
			},
			Action: runAdd,
		},
		{
			Name:      "register",
			Usage:     "register one physical item",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "digest, D",
					Value: "",
					Usage: "*item document digest `0xHEX`",
				},
				cli.StringFlag{
					Name:  "serial, s",
					Value: "",
					Usage: "*item serial number `STRING`",
				},
				cli.StringFlag{
					Name:  "category, c",
					Value: "",
					Usage: "*item category `STRING`",
				},
				cli.StringFlag{
					Name:  "model, m",
					Value: "",
					Usage: "*item model `STRING`",
				},
				cli.StringFlag{
					Name:  "condition, o",
					Value: "new",
					Usage: " item condition `STRING` [new|in-use|maintenance|decommissioned]",
				},
			},
			Action: runRegister,
		},
		{
			Name:      "verify",
			Usage:     "check a digest against the register",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "digest, D",
					Value: "",
					Usage: "*item document digest `0xHEX`",
				},
			},
			Action: runVerify,
		},
		{
			Name:      "list",
			Usage:     "list registered items",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "all, a",
					Usage: " include operation surrogate records",
				},
			},
			Action: runList,
		},
		{
			Name:      "transfer",
			Usage:     "open a custody transfer operation",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "digest, D",
					Value: "",
					Usage: "*item document digest `0xHEX`",
				},
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*identity name or account to receive the item `ACCOUNT`",
				},
			},
			Action: runTransfer,
		},
		{
			Name:      "pending",
			Usage:     "list operations awaiting approval",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runPending,
		},
		{
			Name:      "approve",
			Usage:     "approve a pending operation as one of its parties",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, I",
					Value: "",
					Usage: "*operation id `NUMBER`",
				},
				cli.BoolFlag{
					Name:  "origin, o",
					Usage: " approve as the origin custodian [default: destination]",
				},
			},
			Action: runApprove,
		},
		{
			Name:      "emergency",
			Usage:     "force a pending operation through by authority override",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, I",
					Value: "",
					Usage: "*operation id `NUMBER`",
				},
			},
			Action: runEmergency,
		},
		{
			Name:      "cancel",
			Usage:     "cancel a pending operation by authority override",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, I",
					Value: "",
					Usage: "*operation id `NUMBER`",
				},
			},
			Action: runCancel,
		},
		{
			Name:      "status",
			Usage:     "recover the receipt of a recent submission",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "txid, t",
					Value: "",
					Usage: "*transaction id `0xHEX`",
				},
			},
			Action: runStatus,
		},
		{
			Name:      "info",
			Usage:     "display hefestod status",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runInfo,
		},
		{
			Name:  "version",
			Usage: "display hefesto-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file if certain commands
		command := c.Args().Get(0)
		if "version" == command {
			return nil
		}

		// only want one of these
		network := c.GlobalString("network")
		switch network {
		case "hefesto", "live":
			network = "hefesto"
		case "testing", "test":
			network = "testing"
		case "local", "regression":
			network = "local"
		default:
			return fmt.Errorf("network: %q can only be hefesto/testing/local", network)
		}

		p := os.Getenv("XDG_CONFIG_HOME")
		if "" == p {
			return fmt.Errorf("XDG_CONFIG_HOME environment is not set")
		}
		dir, err := checkFileExists(p)
		if nil != err {
			return err
		}
		if !dir {
			return fmt.Errorf("not a directory: %q", p)
		}
		file := path.Join(p, app.Name, network+"-"+app.Name+".json")

		if verbose {
			fmt.Fprintf(e, "file: %q\n", file)
		}

		if "setup" == command || "generate" == command {
			// do not run setup if there is an existing configuration
			if "setup" == command {
				if _, err := checkFileExists(file); nil == err {
					return fmt.Errorf("not overwriting existing configuration: %q", file)
				}
			}

			c.App.Metadata["config"] = &metadata{
				file:    file,
				save:    false,
				testnet: network != "hefesto",
				verbose: verbose,
				e:       e,
				w:       w,
			}

		} else {

			if verbose {
				fmt.Fprintf(e, "reading config file: %s\n", file)
			}

			configuration, err := configuration.Load(file)
			if nil != err {
				return err
			}

			c.App.Metadata["config"] = &metadata{
				file:    file,
				config:  configuration,
				testnet: configuration.TestNet,
				save:    false,
				verbose: verbose,
				e:       e,
				w:       w,
			}
		}

		return nil
	}

	// update the configuration if required
	app.After = func(c *cli.Context) error {
		e := c.App.ErrWriter
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		if m.save {
			if c.GlobalBool("verbose") {
				fmt.Fprintf(e, "updating config file: %s\n", m.file)
			}
			err := configuration.Save(m.file, m.config)
			if nil != err {
				return err
			}
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
