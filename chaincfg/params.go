// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"github.com/pkg/errors"

	"github.com/tposnet/tposd/util/chainhash"
)

// Net represents which network a message belongs to.
type Net uint32

// Constants used to indicate the message network. They can also be used to
// seek to the next message when a stream's state is unknown.
const (
	// Mainnet represents the main network.
	Mainnet Net = 0xbd6b0cbf

	// Testnet represents the test network.
	Testnet Net = 0xffcae2ce

	// Regtest represents the regression test network.
	Regtest Net = 0xdcb7c1fc
)

// Params defines a network by its parameters. These parameters may be
// used by applications to differentiate networks as well as addresses
// and keys for one network from those intended for use on another network.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Net defines the magic bytes used to identify the network.
	Net Net

	// HeaderHashFunc is the primitive block identities are computed with.
	HeaderHashFunc chainhash.HashFunc

	// Address encoding magics
	PubKeyHashAddrID byte // First byte of a P2PKH address
	ScriptHashAddrID byte // First byte of a P2SH address
	PrivateKeyID     byte // First byte of a WIF private key
}

// MainnetParams defines the network parameters for the main network.
var MainnetParams = Params{
	Name:           "mainnet",
	Net:            Mainnet,
	HeaderHashFunc: chainhash.DoubleHashH,

	PubKeyHashAddrID: 0x4c, // starts with X
	ScriptHashAddrID: 0x10, // starts with 7
	PrivateKeyID:     0xcc,
}

// TestnetParams defines the network parameters for the test network.
var TestnetParams = Params{
	Name:           "testnet",
	Net:            Testnet,
	HeaderHashFunc: chainhash.DoubleHashH,

	PubKeyHashAddrID: 0x8c, // starts with y
	ScriptHashAddrID: 0x13, // starts with 8 or 9
	PrivateKeyID:     0xef,
}

// RegressionNetParams defines the network parameters for the regression test
// network. It hashes headers with blake2b so that tests exercise a
// non-default primitive.
var RegressionNetParams = Params{
	Name:           "regtest",
	Net:            Regtest,
	HeaderHashFunc: chainhash.Blake2bHashH,

	PubKeyHashAddrID: 0x8c, // starts with y
	ScriptHashAddrID: 0x13, // starts with 8 or 9
	PrivateKeyID:     0xef,
}

var (
	// ErrDuplicateNet describes an error where the parameters for a
	// network could not be set due to the network already being a standard
	// network or previously-registered into this package.
	ErrDuplicateNet = errors.New("duplicate network")

	// ErrUnknownNet describes an error where the requested network name is
	// not registered.
	ErrUnknownNet = errors.New("unknown network")
)

var (
	registeredNets = make(map[Net]*Params)
)

// Register registers the network parameters for a network. This may
// error with ErrDuplicateNet if the network is already registered (either
// due to a previous Register call, or the network being one of the default
// networks).
//
// Network parameters should be registered into this package by a main package
// as early as possible. Then, library packages may lookup networks or network
// parameters based on inputs and work regardless of the network being standard
// or not.
func Register(params *Params) error {
	if _, ok := registeredNets[params.Net]; ok {
		return ErrDuplicateNet
	}
	registeredNets[params.Net] = params
	return nil
}

// ParamsByName returns the registered parameters with the given name.
func ParamsByName(name string) (*Params, error) {
	for _, params := range registeredNets {
		if params.Name == name {
			return params, nil
		}
	}
	return nil, errors.Wrapf(ErrUnknownNet, "no network named %q", name)
}

// mustRegister performs the same function as Register except it panics if there
// is an error. This should only be called from package init functions.
func mustRegister(params *Params) {
	if err := Register(params); err != nil {
		panic("failed to register network: " + err.Error())
	}
}

func init() {
	// Register all default networks when the package is initialized.
	mustRegister(&MainnetParams)
	mustRegister(&TestnetParams)
	mustRegister(&RegressionNetParams)
}
