// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"bytes"
	"testing"

	"github.com/F-K-C/projeto-hefesto/util"
)

// test various values convert to the right bytes and back again
func TestVarint64(t *testing.T) {

	tests := []struct {
		value   uint64
		encoded []byte
	}{
		{0x00, []byte{0x00}},
		{0x01, []byte{0x01}},
		{0x7f, []byte{0x7f}},
		{0x80, []byte{0x80, 0x01}},
		{0x2587, []byte{0x87, 0x4b}},
		{0xffffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
	}

	for i, item := range tests {
		encoded := util.ToVarint64(item.value)
		if !bytes.Equal(encoded, item.encoded) {
			t.Errorf("%d: encode: %d  got: %x  expected: %x", i, item.value, encoded, item.encoded)
		}
		decoded, count := util.FromVarint64(item.encoded)
		if decoded != item.value || count != len(item.encoded) {
			t.Errorf("%d: decode: %x  got: %d (%d bytes)  expected: %d (%d bytes)",
				i, item.encoded, decoded, count, item.value, len(item.encoded))
		}
	}
}

// truncated buffers must decode as zero with a zero count
func TestVarint64Truncated(t *testing.T) {

	truncated := [][]byte{
		{},
		{0x80},
		{0xff, 0x80},
	}
	for i, buffer := range truncated {
		value, count := util.FromVarint64(buffer)
		if 0 != value || 0 != count {
			t.Errorf("%d: truncated: %x  got: %d, %d  expected: 0, 0", i, buffer, value, count)
		}
	}
}

// range clipping for length fields
func TestClippedVarint64(t *testing.T) {

	buffer := util.ToVarint64(300)

	v, n := util.ClippedVarint64(buffer, 1, 1024)
	if 300 != v || len(buffer) != n {
		t.Errorf("clipped: got: %d, %d  expected: 300, %d", v, n, len(buffer))
	}

	v, n = util.ClippedVarint64(buffer, 1, 299)
	if 0 != v || 0 != n {
		t.Errorf("out of range must return 0, 0 got: %d, %d", v, n)
	}
}
