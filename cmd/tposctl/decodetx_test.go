package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestDecodeTx(t *testing.T) {
	contract := newTestContract(t)

	tests := []struct {
		name        string
		transaction string
		verbose     bool
		wantErr     bool
		wantLines   []string
	}{
		{
			name:        "contract",
			transaction: contract.txHex,
			wantLines: []string{
				"Delegation address:  " + contract.tposAddress.EncodeAddress(),
				"Merchant address:    " + contract.merchantAddress.EncodeAddress(),
				"Merchant collateral: " + contract.outPoint.String(),
				"Owner share:         85%",
				"Merchant commission: 15%",
				"Valid:               true",
			},
		},
		{
			name:        "verbose",
			transaction: contract.txHex,
			verbose:     true,
			wantLines:   []string{"Tx(hash=", "(wire.OutPoint)"},
		},
		{name: "not a contract", transaction: coinbaseTxHex, wantErr: true},
		{name: "not hex", transaction: "contract", wantErr: true},
		{name: "truncated", transaction: contract.txHex[:40], wantErr: true},
	}

	for _, test := range tests {
		conf := &decodeTxConfig{
			Transaction:  test.transaction,
			Verbose:      test.verbose,
			NetworkFlags: testNetwork(),
		}
		var out bytes.Buffer
		err := decodeTx(conf, &out)
		if test.wantErr {
			if err == nil {
				t.Errorf("%s: decodeTx succeeded with output %q", test.name, out.String())
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: decodeTx: %v", test.name, err)
			continue
		}
		for _, line := range test.wantLines {
			if !strings.Contains(out.String(), line) {
				t.Errorf("%s: output is missing %q:\n%s", test.name, line, out.String())
			}
		}
	}
}
