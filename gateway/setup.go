// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package gateway - typed client for the daemon RPC services
//
// write methods carry the whole submission cycle: serialise per actor,
// fetch the nonce, pack, sign, submit and block for the receipt; there
// is never an automatic retry
package gateway

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"sync"

	"golang.org/x/crypto/sha3"

	"github.com/F-K-C/projeto-hefesto/fault"
)

// Client - to hold RPC connection streams
type Client struct {
	conn    net.Conn
	client  *rpc.Client
	testnet bool
	verbose bool
	handle  io.Writer // if verbose is set output items here

	// per-actor serialisation of the fetch-nonce/sign/submit cycle
	nonceLocks struct {
		sync.Mutex
		m map[string]*sync.Mutex
	}
}

// NewClient - create a RPC connection to a hefestod
//
// the server certificate is self signed, identity comes from the
// signed envelopes so verification is skipped
func NewClient(testnet bool, connect string, verbose bool, handle io.Writer) (*Client, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
	}
	return dial(testnet, connect, verbose, handle, tlsConfig)
}

// NewClientFingerprint - connect and pin the server certificate
//
// the expected value is the SHA3-256 of the DER certificate as printed
// by the daemon at start up
func NewClientFingerprint(testnet bool, connect string, verbose bool, handle io.Writer, fingerprint [32]byte) (*Client, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
		VerifyPeerCertificate: func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
			for _, raw := range rawCerts {
				actual := sha3.Sum256(raw)
				if bytes.Equal(fingerprint[:], actual[:]) {
					return nil
				}
			}
			return fault.CertificateFingerprintMismatch
		},
	}
	return dial(testnet, connect, verbose, handle, tlsConfig)
}

func dial(testnet bool, connect string, verbose bool, handle io.Writer, tlsConfig *tls.Config) (*Client, error) {
	conn, err := tls.Dial("tcp", connect, tlsConfig)
	if err != nil {
		return nil, err
	}

	r := &Client{
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		testnet: testnet,
		verbose: verbose,
		handle:  handle,
	}
	r.nonceLocks.m = make(map[string]*sync.Mutex)
	return r, nil
}

// Close - shutdown the daemon connection
func (c *Client) Close() {
	c.client.Close()
	c.conn.Close()
}

// read calls pass server errors back typed, transport errors raw
func (c *Client) call(method string, arguments interface{}, reply interface{}) error {
	err := c.client.Call(method, arguments, reply)
	if nil == err {
		return nil
	}
	if _, ok := err.(rpc.ServerError); ok {
		return fault.FromMessage(err)
	}
	return err
}

// write calls translate transport failures so a caller knows the
// outcome is unknown and must be checked, never retried blindly
func (c *Client) submit(method string, arguments interface{}, reply interface{}) error {
	err := c.client.Call(method, arguments, reply)
	if nil == err {
		return nil
	}
	if _, ok := err.(rpc.ServerError); ok {
		return fault.FromMessage(err)
	}
	return fault.SubmissionFailed
}

func (c *Client) nonceLock(name string) *sync.Mutex {
	c.nonceLocks.Lock()
	defer c.nonceLocks.Unlock()

	lock, ok := c.nonceLocks.m[name]
	if !ok {
		lock = new(sync.Mutex)
		c.nonceLocks.m[name] = lock
	}
	return lock
}
