// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package digest_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/F-K-C/projeto-hefesto/digest"
	"github.com/F-K-C/projeto-hefesto/fault"
)

// test that hashing is deterministic and distinguishes inputs
func TestNewDigest(t *testing.T) {

	d1 := digest.NewDigest([]byte("lote 0001 - laudo"))
	d2 := digest.NewDigest([]byte("lote 0001 - laudo"))
	d3 := digest.NewDigest([]byte("lote 0002 - laudo"))

	if d1 != d2 {
		t.Errorf("same input produced different digests: %s  %s", d1, d2)
	}
	if d1 == d3 {
		t.Errorf("different inputs produced the same digest: %s", d1)
	}

	// known SHA-256 of the empty string
	empty := digest.NewDigest([]byte{})
	expected := "0xe3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if expected != empty.String() {
		t.Errorf("digest: %s  expected: %s", empty, expected)
	}
}

// test invalid digest strings
func TestInvalidDigestStrings(t *testing.T) {

	invalid := []string{
		"",
		"4b",                     // one byte
		"4bf",                    // odd number of chars
		"4473fb34cc05ed95999350", // truncated
		"0x" + strings.Repeat("a", 63),  // one short
		"0x" + strings.Repeat("a", 65),  // one char over
		strings.Repeat("a", 63),         // one short, no marker
		strings.Repeat("a", 65),         // one over, no marker
		"zz" + strings.Repeat("0", 64),  // bad marker
		"0x" + strings.Repeat("g", 64),  // invalid hex char g
		"0x" + strings.Repeat("a", 62) + "x1", // invalid hex char x
	}

	for i, s := range invalid {
		_, err := digest.DigestFromString(s)
		if fault.InvalidDigestFormat != err {
			t.Errorf("%d: testing: %q", i, s)
			t.Errorf("%d: expected InvalidDigestFormat but got: %v", i, err)
		}
	}
}

// test normalisation accepts all equivalent spellings
func TestNormalise(t *testing.T) {

	hexPart := "aa00bb11cc22dd33ee44ff5566778899aabbccddeeff00112233445566778899"
	canonical := "0x" + hexPart

	valid := []string{
		canonical,
		hexPart,
		"0X" + strings.ToUpper(hexPart),
		"  " + canonical + "\n",
		"\t" + hexPart + " ",
	}

	for i, s := range valid {
		d, err := digest.DigestFromString(s)
		if nil != err {
			t.Fatalf("%d: unexpected error: %v for: %q", i, err, s)
		}
		if canonical != d.String() {
			t.Errorf("%d: canonical: %s  expected: %s", i, d, canonical)
		}

		// idempotent: normalising the canonical form changes nothing
		again, err := digest.DigestFromString(d.String())
		if nil != err {
			t.Fatalf("%d: re-normalise error: %v", i, err)
		}
		if d != again {
			t.Errorf("%d: normalise not idempotent: %s  %s", i, d, again)
		}
	}
}

// test JSON and text round trip
func TestMarshalling(t *testing.T) {

	d := digest.NewDigest([]byte("fuzil IA2 sn 7.62-0099"))

	text, err := d.MarshalText()
	if nil != err {
		t.Fatalf("marshal text error: %v", err)
	}
	var fromText digest.Digest
	err = fromText.UnmarshalText(text)
	if nil != err {
		t.Fatalf("unmarshal text error: %v", err)
	}
	if d != fromText {
		t.Errorf("text round trip: %s  expected: %s", fromText, d)
	}

	buffer, err := json.Marshal(d)
	if nil != err {
		t.Fatalf("marshal JSON error: %v", err)
	}
	expected := `"` + d.String() + `"`
	if expected != string(buffer) {
		t.Errorf("JSON: %s  expected: %s", buffer, expected)
	}

	var fromJSON digest.Digest
	err = json.Unmarshal(buffer, &fromJSON)
	if nil != err {
		t.Fatalf("unmarshal JSON error: %v", err)
	}
	if d != fromJSON {
		t.Errorf("JSON round trip: %s  expected: %s", fromJSON, d)
	}
}

// raw bytes conversion must reject wrong lengths
func TestDigestFromBytes(t *testing.T) {

	var d digest.Digest
	err := digest.DigestFromBytes(&d, make([]byte, 31))
	if fault.InvalidDigestFormat != err {
		t.Errorf("31 bytes: expected InvalidDigestFormat got: %v", err)
	}

	source := digest.NewDigest([]byte("x"))
	err = digest.DigestFromBytes(&d, source.Bytes())
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != source {
		t.Errorf("bytes round trip: %s  expected: %s", d, source)
	}
}
