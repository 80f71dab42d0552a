// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package digest - content fingerprints for registered documents
//
// a digest is the SHA-256 of the supporting document and is the sole
// basis for de-duplication; the canonical text form is "0x" followed
// by 64 lowercase hexadecimal characters
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/F-K-C/projeto-hefesto/fault"
)

// limits
const (
	digestPrefix     = "0x"
	digestPrefixSize = len(digestPrefix)
	Size             = sha256.Size
	hexSize          = 2 * Size
	canonicalSize    = digestPrefixSize + hexSize
)

// Digest - the type for a document digest
// stored as its raw 32 bytes
// represented as prefixed lowercase hex text for JSON and display
type Digest [Size]byte

// NewDigest - create a digest from a byte slice
//
// SHA-256 hash; pure and deterministic
func NewDigest(record []byte) Digest {
	return Digest(sha256.Sum256(record))
}

// DigestFromString - normalise an externally supplied digest string
//
// accepts the text with or without the "0x" marker, surrounding white
// space is trimmed and upper case hex is accepted; anything that does
// not reduce to exactly 64 hex characters is rejected
func DigestFromString(s string) (Digest, error) {
	var d Digest

	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, digestPrefix)

	if hexSize != len(s) {
		return d, fault.InvalidDigestFormat
	}
	byteCount, err := hex.Decode(d[:], []byte(s))
	if nil != err || Size != byteCount {
		return d, fault.InvalidDigestFormat
	}
	return d, nil
}

// DigestFromBytes - convert and validate a raw byte slice to a digest
func DigestFromBytes(digest *Digest, buffer []byte) error {
	if Size != len(buffer) {
		return fault.InvalidDigestFormat
	}
	copy(digest[:], buffer)
	return nil
}

// Bytes - convert a digest to a byte slice
func (digest Digest) Bytes() []byte {
	return digest[:]
}

// String - canonical prefixed hex for use by the fmt package (for %s)
func (digest Digest) String() string {
	return digestPrefix + hex.EncodeToString(digest[:])
}

// GoString - canonical prefixed hex for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<digest:" + digest.String() + ">"
}

// MarshalText - convert digest to canonical prefixed hex text
func (digest Digest) MarshalText() ([]byte, error) {
	size := digestPrefixSize + hex.EncodedLen(Size)
	buffer := make([]byte, size)
	copy(buffer, digestPrefix)
	hex.Encode(buffer[digestPrefixSize:], digest[:])
	return buffer, nil
}

// UnmarshalText - convert canonical or bare hex text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	d, err := DigestFromString(string(s))
	if nil != err {
		return err
	}
	*digest = d
	return nil
}

// MarshalJSON - convert digest to JSON quoted canonical hex
func (digest Digest) MarshalJSON() ([]byte, error) {
	text, err := digest.MarshalText()
	if nil != err {
		return nil, err
	}
	buffer := make([]byte, 0, len(text)+2)
	buffer = append(buffer, '"')
	buffer = append(buffer, text...)
	buffer = append(buffer, '"')
	return buffer, nil
}

// UnmarshalJSON - convert JSON quoted hex to a digest
func (digest *Digest) UnmarshalJSON(s []byte) error {
	// length = '"' + characters + '"'
	last := len(s) - 1
	if len(s) < 2 || '"' != s[0] || '"' != s[last] {
		return fault.InvalidDigestFormat
	}
	return digest.UnmarshalText(s[1:last])
}
