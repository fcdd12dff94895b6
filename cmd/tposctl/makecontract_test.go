package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tposnet/tposd/domain/tpos"
)

func TestParseOutPoint(t *testing.T) {
	const txID = "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"

	outPoint, err := parseOutPoint(txID + ":7")
	if err != nil {
		t.Fatalf("parseOutPoint: %v", err)
	}
	if outPoint.Hash.String() != txID || outPoint.Index != 7 {
		t.Errorf("got outpoint %s, want %s:7", outPoint, txID)
	}

	for _, s := range []string{txID, txID + ":", txID + ":-1", txID + ":4294967296", "xyz:1", txID + "00:1"} {
		if _, err := parseOutPoint(s); err == nil {
			t.Errorf("parseOutPoint(%q) succeeded", s)
		}
	}
}

func TestDecodeTransactionHex(t *testing.T) {
	tx, err := decodeTransactionHex(" " + coinbaseTxHex + "\n")
	if err != nil {
		t.Fatalf("decodeTransactionHex: %v", err)
	}
	if !tx.IsCoinBase() {
		t.Errorf("decoded transaction is not a coinbase")
	}

	if _, err := decodeTransactionHex("zz"); err == nil {
		t.Errorf("decoded a transaction that is not hex")
	}
	if _, err := decodeTransactionHex(coinbaseTxHex[:20]); err == nil {
		t.Errorf("decoded a truncated transaction")
	}
}

func TestMakeContract(t *testing.T) {
	contract := newTestContract(t)
	validConfig := func() *makeContractConfig {
		return &makeContractConfig{
			Owner:        contract.tposAddress.EncodeAddress(),
			Merchant:     contract.merchantAddress.EncodeAddress(),
			OutPoint:     contract.outPoint.String(),
			Commission:   contract.commission,
			Value:        500,
			NetworkFlags: testNetwork(),
		}
	}

	tests := []struct {
		name    string
		modify  func(*makeContractConfig)
		wantErr bool
	}{
		{name: "valid"},
		{name: "owner is not a script hash", modify: func(conf *makeContractConfig) {
			conf.Owner = conf.Merchant
		}, wantErr: true},
		{name: "malformed merchant", modify: func(conf *makeContractConfig) {
			conf.Merchant = "not an address"
		}, wantErr: true},
		{name: "malformed outpoint", modify: func(conf *makeContractConfig) {
			conf.OutPoint = "xyz"
		}, wantErr: true},
		{name: "commission out of range", modify: func(conf *makeContractConfig) {
			conf.Commission = 100
		}, wantErr: true},
	}

	for _, test := range tests {
		conf := validConfig()
		if test.modify != nil {
			test.modify(conf)
		}
		var out bytes.Buffer
		err := makeContract(conf, &out)
		if test.wantErr {
			if err == nil {
				t.Errorf("%s: makeContract succeeded", test.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: makeContract: %v", test.name, err)
			continue
		}

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		if !strings.HasPrefix(lines[0], "Output #0: 500.00000000") {
			t.Errorf("%s: unexpected first output line %q", test.name, lines[0])
		}
		tx, err := decodeTransactionHex(lines[len(lines)-1])
		if err != nil {
			t.Fatalf("%s: unfunded transaction: %v", test.name, err)
		}
		decoded, ok := tpos.DecodeContract(tx, testParams)
		if !ok {
			t.Fatalf("%s: the unfunded transaction carries no contract", test.name)
		}
		if decoded.MerchantCommission() != contract.commission ||
			decoded.MerchantOutPoint != contract.outPoint {
			t.Errorf("%s: unexpected contract %s", test.name, decoded)
		}
	}
}
