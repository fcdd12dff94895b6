package chaincfg_test

import (
	"testing"

	. "github.com/tposnet/tposd/chaincfg"
)

// Define some of the required parameters for a user-registered
// network. This is necessary to test the registration of and
// lookup of networks by name.
var mockNetParams = Params{
	Name:             "mocknet",
	Net:              1<<32 - 1,
	PubKeyHashAddrID: 0x9f,
	ScriptHashAddrID: 0xf9,
	PrivateKeyID:     0x90,
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name   string
		params *Params
		err    error
	}{
		{
			name:   "duplicate mainnet",
			params: &MainnetParams,
			err:    ErrDuplicateNet,
		},
		{
			name:   "duplicate testnet",
			params: &TestnetParams,
			err:    ErrDuplicateNet,
		},
		{
			name:   "duplicate regtest",
			params: &RegressionNetParams,
			err:    ErrDuplicateNet,
		},
		{
			name:   "new mocknet",
			params: &mockNetParams,
			err:    nil,
		},
		{
			name:   "duplicate mocknet",
			params: &mockNetParams,
			err:    ErrDuplicateNet,
		},
	}

	for _, test := range tests {
		err := Register(test.params)
		if err != test.err {
			t.Errorf("%s: Register returned error %v, want %v",
				test.name, err, test.err)
		}
	}

	params, err := ParamsByName("mocknet")
	if err != nil {
		t.Fatalf("ParamsByName: %s", err)
	}
	if params != &mockNetParams {
		t.Fatalf("ParamsByName returned the wrong parameters")
	}

	_, err = ParamsByName("nonet")
	if err == nil {
		t.Fatalf("ParamsByName: expected an error for an unknown network")
	}
}

func TestDefaultNetworksAreDistinct(t *testing.T) {
	if MainnetParams.PubKeyHashAddrID == TestnetParams.PubKeyHashAddrID {
		t.Errorf("mainnet and testnet share a pubkey hash address ID")
	}
	if MainnetParams.ScriptHashAddrID == TestnetParams.ScriptHashAddrID {
		t.Errorf("mainnet and testnet share a script hash address ID")
	}
	for _, params := range []*Params{&MainnetParams, &TestnetParams, &RegressionNetParams} {
		if params.HeaderHashFunc == nil {
			t.Errorf("%s: missing header hash function", params.Name)
		}
		if params.PubKeyHashAddrID == params.ScriptHashAddrID {
			t.Errorf("%s: address IDs collide", params.Name)
		}
	}
}
