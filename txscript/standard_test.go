// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/tposnet/tposd/chaincfg"
	"github.com/tposnet/tposd/util"
)

// TestSolver ensures standard templates are recognized and their payment
// data captured.
func TestSolver(t *testing.T) {
	t.Parallel()

	p2pkCompressed := append(append([]byte{OP_DATA_33}, generatorCompressed...), OP_CHECKSIG)
	p2pkUncompressed := append(append([]byte{OP_DATA_65}, generatorUncompressed...), OP_CHECKSIG)
	multisig := append([]byte{OP_1, OP_DATA_33}, generatorCompressed...)
	multisig = append(append(multisig, OP_DATA_65), generatorUncompressed...)
	multisig = append(multisig, OP_2, OP_CHECKMULTISIG)

	tests := []struct {
		name      string
		script    []byte
		class     ScriptClass
		solutions [][]byte
	}{
		{
			name:      "p2pkh",
			script:    hexToBytes("76a914751e76e8199196d454941c45d1b3a323f1433bd688ac"),
			class:     PubKeyHashTy,
			solutions: [][]byte{generatorHash160},
		},
		{
			name:      "p2sh",
			script:    hexToBytes("a914751e76e8199196d454941c45d1b3a323f1433bd687"),
			class:     ScriptHashTy,
			solutions: [][]byte{generatorHash160},
		},
		{
			name:      "p2pk compressed",
			script:    p2pkCompressed,
			class:     PubKeyTy,
			solutions: [][]byte{generatorCompressed},
		},
		{
			name:      "p2pk uncompressed",
			script:    p2pkUncompressed,
			class:     PubKeyTy,
			solutions: [][]byte{generatorUncompressed},
		},
		{
			name:      "1-of-2 multisig",
			script:    multisig,
			class:     MultiSigTy,
			solutions: [][]byte{{1}, generatorCompressed, generatorUncompressed, {2}},
		},
		{
			name:   "multisig requiring more keys than present",
			script: append(append([]byte{OP_2, OP_DATA_33}, generatorCompressed...), OP_1, OP_CHECKMULTISIG),
			class:  NonStandardTy,
		},
		{
			name:   "bare OP_RETURN",
			script: []byte{OP_RETURN},
			class:  NullDataTy,
		},
		{
			name:   "OP_RETURN with pushes",
			script: hexToBytes("6a0150020102"),
			class:  NullDataTy,
		},
		{
			name:   "OP_RETURN followed by an opcode",
			script: []byte{OP_RETURN, OP_DUP},
			class:  NonStandardTy,
		},
		{
			name:   "p2pk with an invalid key prefix",
			script: append(append([]byte{OP_DATA_33, 0x05}, generatorCompressed[1:]...), OP_CHECKSIG),
			class:  NonStandardTy,
		},
		{
			name:   "p2pk missing OP_CHECKSIG",
			script: append([]byte{OP_DATA_33}, generatorCompressed...),
			class:  NonStandardTy,
		},
		{
			name:   "empty",
			script: nil,
			class:  NonStandardTy,
		},
	}

	for _, test := range tests {
		class, solutions := Solver(test.script)
		if class != test.class {
			t.Errorf("%s: class %s, want %s", test.name, class, test.class)
			continue
		}
		if !reflect.DeepEqual(solutions, test.solutions) {
			t.Errorf("%s: unexpected solutions\n got: %s want: %s", test.name,
				spew.Sdump(solutions), spew.Sdump(test.solutions))
		}
		if GetScriptClass(test.script) != test.class {
			t.Errorf("%s: GetScriptClass disagrees with Solver", test.name)
		}
	}
}

func TestExtractDestination(t *testing.T) {
	t.Parallel()

	var keyID util.KeyID
	copy(keyID[:], generatorHash160)
	var scriptID util.ScriptID
	copy(scriptID[:], generatorHash160)

	tests := []struct {
		name   string
		script []byte
		dest   util.Destination
		ok     bool
	}{
		{
			name:   "p2pkh",
			script: hexToBytes("76a914751e76e8199196d454941c45d1b3a323f1433bd688ac"),
			dest:   util.KeyHashDestination(keyID),
			ok:     true,
		},
		{
			name:   "p2pk resolves to the key hash",
			script: append(append([]byte{OP_DATA_33}, generatorCompressed...), OP_CHECKSIG),
			dest:   util.KeyHashDestination(keyID),
			ok:     true,
		},
		{
			name:   "p2sh",
			script: hexToBytes("a914751e76e8199196d454941c45d1b3a323f1433bd687"),
			dest:   util.ScriptHashDestination(scriptID),
			ok:     true,
		},
		{
			name:   "null data",
			script: []byte{OP_RETURN},
			dest:   util.NoDestination,
		},
		{
			name:   "nonstandard",
			script: []byte{OP_TRUE},
			dest:   util.NoDestination,
		},
	}

	for _, test := range tests {
		dest, ok := ExtractDestination(test.script)
		if ok != test.ok || dest != test.dest {
			t.Errorf("%s: got (%v, %v), want (%v, %v)", test.name, dest, ok, test.dest, test.ok)
		}
	}
}

func TestPayToAddrScript(t *testing.T) {
	t.Parallel()

	pkh, err := util.NewAddressPubKeyHash(generatorHash160, &chaincfg.MainnetParams)
	if err != nil {
		t.Fatalf("NewAddressPubKeyHash: %v", err)
	}
	sh, err := util.NewAddressScriptHashFromHash(generatorHash160, &chaincfg.MainnetParams)
	if err != nil {
		t.Fatalf("NewAddressScriptHashFromHash: %v", err)
	}

	tests := []struct {
		name     string
		addr     util.Address
		expected string
		err      bool
	}{
		{"p2pkh", pkh, "76a914751e76e8199196d454941c45d1b3a323f1433bd688ac", false},
		{"p2sh", sh, "a914751e76e8199196d454941c45d1b3a323f1433bd687", false},
		{"nil", nil, "", true},
		{"typed nil", (*util.AddressPubKeyHash)(nil), "", true},
	}

	for _, test := range tests {
		script, err := PayToAddrScript(test.addr)
		if (err != nil) != test.err {
			t.Errorf("%s: unexpected error state %v", test.name, err)
			continue
		}
		if !bytes.Equal(script, hexToBytes(test.expected)) {
			t.Errorf("%s: got %x, want %s", test.name, script, test.expected)
		}
		if err != nil {
			continue
		}

		// The script pays back to the address' destination.
		dest, ok := ExtractDestination(script)
		if !ok || dest != test.addr.Destination() {
			t.Errorf("%s: script pays to %v, want %v", test.name, dest, test.addr.Destination())
		}
		fromDest, err := PayToDestinationScript(dest)
		if err != nil || !bytes.Equal(fromDest, script) {
			t.Errorf("%s: PayToDestinationScript gave %x (%v)", test.name, fromDest, err)
		}
	}

	if _, err := PayToDestinationScript(util.NoDestination); err == nil {
		t.Errorf("PayToDestinationScript accepted an empty destination")
	}
}

func TestPayToPubKeyScript(t *testing.T) {
	t.Parallel()

	script, err := PayToPubKeyScript(generatorCompressed)
	if err != nil {
		t.Fatalf("PayToPubKeyScript: %v", err)
	}
	if class := GetScriptClass(script); class != PubKeyTy {
		t.Errorf("PayToPubKeyScript produced a %s script", class)
	}
	if _, err := PayToPubKeyScript(generatorHash160); err == nil {
		t.Errorf("PayToPubKeyScript accepted a 20-byte key")
	}
}
