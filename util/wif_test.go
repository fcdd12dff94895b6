// Copyright (c) 2013, 2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"

	"github.com/tposnet/tposd/btcec"
	"github.com/tposnet/tposd/chaincfg"
	"github.com/tposnet/tposd/util"
)

func TestEncodeDecodeWIF(t *testing.T) {
	one := make([]byte, btcec.PrivKeyBytesLen)
	one[btcec.PrivKeyBytesLen-1] = 1
	priv, err := btcec.PrivKeyFromBytes(one)
	if err != nil {
		t.Fatalf("PrivKeyFromBytes: %v", err)
	}

	tests := []struct {
		wif      *util.WIF
		params   *chaincfg.Params
		expected string
	}{
		{util.NewWIF(priv, &chaincfg.MainnetParams, true), &chaincfg.MainnetParams,
			"XBHddvWWiMu3nZhhpTXBQWJMmdz5JNKJD85b9fgKAckCT2coW3Y4"},
		{util.NewWIF(priv, &chaincfg.MainnetParams, false), &chaincfg.MainnetParams,
			"7qYrzJZWqnyCWMYswFcqaRJypGdVceudXPSxmZKsngN7fyo7aAV"},
		{util.NewWIF(priv, &chaincfg.TestnetParams, true), &chaincfg.TestnetParams,
			"cMahea7zqjxrtgAbB7LSGbcQUr1uX1ojuat9jZodMN87JcbXMTcA"},
	}

	for _, test := range tests {
		// Test that encoding the WIF structure matches the expected string.
		s := test.wif.String()
		if s != test.expected {
			t.Errorf("TestEncodeDecodePrivateKey failed: want '%s', got '%s'",
				test.expected, s)
			continue
		}

		// Test that decoding the expected string results in the original WIF
		// structure.
		w, err := util.DecodeWIF(test.expected)
		if err != nil {
			t.Error(err)
			continue
		}
		if got := w.String(); got != test.expected {
			t.Errorf("NewWIF failed: want '%v', got '%v'", test.wif, got)
		}
		if !w.IsForNet(test.params) {
			t.Errorf("decoded WIF %s is not for %s", s, test.params.Name)
		}
		if w.CompressPubKey != test.wif.CompressPubKey {
			t.Errorf("decoded WIF %s has compression %v", s, w.CompressPubKey)
		}
		if !bytes.Equal(w.SerializePubKey(), test.wif.SerializePubKey()) {
			t.Errorf("decoded WIF %s has a different public key", s)
		}
	}
}

func TestDecodeWIFErrors(t *testing.T) {
	if _, err := util.DecodeWIF("XBHddvWWiMu3nZhhpTXBQWJMmdz5JNKJD85b9fgKAckCT2coW3Y5"); err == nil {
		t.Errorf("DecodeWIF accepted a bad checksum")
	}

	// A valid base58check string whose payload is an address, not a key.
	_, err := util.DecodeWIF("XmN7PQYWKn5MJFna5fRYgP6mxT2F7xpekE")
	if !errors.Is(err, util.ErrMalformedPrivateKey) {
		t.Errorf("expected ErrMalformedPrivateKey, got %v", err)
	}
}
