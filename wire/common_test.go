// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"
	"testing"

	"github.com/pkg/errors"
)

// TestVarIntWire tests wire encode and decode for variable length integers.
func TestVarIntWire(t *testing.T) {
	tests := []struct {
		in  uint64 // Value to encode
		buf []byte // Wire encoding
	}{
		// Single byte
		{0, []byte{0x00}},
		// Max single byte
		{0xfc, []byte{0xfc}},
		// Min 2-byte
		{0xfd, []byte{0xfd, 0x0fd, 0x00}},
		// Max 2-byte
		{0xffff, []byte{0xfd, 0xff, 0xff}},
		// Min 4-byte
		{0x10000, []byte{0xfe, 0x00, 0x00, 0x01, 0x00}},
		// Max 4-byte
		{0xffffffff, []byte{0xfe, 0xff, 0xff, 0xff, 0xff}},
		// Min 8-byte
		{
			0x100000000,
			[]byte{0xff, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00},
		},
		// Max 8-byte
		{
			0xffffffffffffffff,
			[]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		},
	}

	for i, test := range tests {
		// Encode to wire format.
		var buf bytes.Buffer
		err := WriteVarInt(&buf, test.in)
		if err != nil {
			t.Errorf("WriteVarInt #%d error %v", i, err)
			continue
		}
		if !bytes.Equal(buf.Bytes(), test.buf) {
			t.Errorf("WriteVarInt #%d\n got: %x want: %x", i,
				buf.Bytes(), test.buf)
			continue
		}
		if VarIntSerializeSize(test.in) != len(test.buf) {
			t.Errorf("VarIntSerializeSize #%d got %d want %d", i,
				VarIntSerializeSize(test.in), len(test.buf))
		}

		// Decode from wire format.
		val, err := ReadVarInt(bytes.NewReader(test.buf))
		if err != nil {
			t.Errorf("ReadVarInt #%d error %v", i, err)
			continue
		}
		if val != test.in {
			t.Errorf("ReadVarInt #%d\n got: %d want: %d", i,
				val, test.in)
			continue
		}
	}
}

// TestVarIntNonCanonical ensures variable length integers that are not encoded
// canonically return the expected error.
func TestVarIntNonCanonical(t *testing.T) {
	tests := []struct {
		name string // Test name for easier identification
		in   []byte // Value to decode
	}{
		{"0 encoded with 3 bytes", []byte{0xfd, 0x00, 0x00}},
		{"max single-byte value encoded with 3 bytes", []byte{0xfd, 0xfc, 0x00}},
		{"0 encoded with 5 bytes", []byte{0xfe, 0x00, 0x00, 0x00, 0x00}},
		{"max three-byte value encoded with 5 bytes", []byte{0xfe, 0xff, 0xff, 0x00, 0x00}},
		{"0 encoded with 9 bytes", []byte{0xff, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
		{"max five-byte value encoded with 9 bytes", []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, 0x00}},
	}

	for i, test := range tests {
		_, err := ReadVarInt(bytes.NewReader(test.in))
		var msgErr *MessageError
		if !errors.As(err, &msgErr) {
			t.Errorf("ReadVarInt #%d (%s) unexpected error %v", i,
				test.name, err)
		}
	}
}

// TestVarBytesOverflow ensures variable length byte arrays that are too large
// to fit into the allowed size are handled properly.
func TestVarBytesOverflow(t *testing.T) {
	// Declares a variable length byte array of 4 bytes with only 3
	// present, and one of 0x100 bytes when only 0x10 are allowed.
	_, err := ReadVarBytes(bytes.NewReader([]byte{0x04, 0x01, 0x02, 0x03}), 0x10, "test")
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadVarBytes short read: unexpected error %v", err)
	}

	_, err = ReadVarBytes(bytes.NewReader([]byte{0xfd, 0x00, 0x01}), 0x10, "test")
	var msgErr *MessageError
	if !errors.As(err, &msgErr) {
		t.Errorf("ReadVarBytes oversized: unexpected error %v", err)
	}
}
