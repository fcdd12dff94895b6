// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"github.com/pkg/errors"

	"github.com/tposnet/tposd/util"
)

// ScriptClass is an enumeration for the list of standard types of script.
type ScriptClass byte

// Classes of script payment known about in the blockchain.
const (
	NonStandardTy ScriptClass = iota // None of the recognized forms.
	PubKeyTy                         // Pay pubkey.
	PubKeyHashTy                     // Pay pubkey hash.
	ScriptHashTy                     // Pay to script hash.
	MultiSigTy                       // Multi signature.
	NullDataTy                       // Empty data-only (provably prunable).
)

// scriptClassToName houses the human-readable strings which describe each
// script class.
var scriptClassToName = []string{
	NonStandardTy: "nonstandard",
	PubKeyTy:      "pubkey",
	PubKeyHashTy:  "pubkeyhash",
	ScriptHashTy:  "scripthash",
	MultiSigTy:    "multisig",
	NullDataTy:    "nulldata",
}

// String implements the Stringer interface by returning the name of
// the enum script class. If the enum is invalid then "Invalid" will be
// returned.
func (t ScriptClass) String() string {
	if int(t) >= len(scriptClassToName) {
		return "Invalid"
	}
	return scriptClassToName[t]
}

// Solver classifies a public key script and returns the data that pays to
// it: the public key for PubKeyTy, the key hash for PubKeyHashTy, the script
// hash for ScriptHashTy, and for MultiSigTy the required count, the keys
// and the key count, with the counts as single bytes. NullDataTy and
// NonStandardTy capture nothing.
func Solver(script []byte) (ScriptClass, [][]byte) {
	if IsPayToScriptHash(script) {
		return ScriptHashTy, [][]byte{script[2:22]}
	}

	if len(script) >= 1 && script[0] == OP_RETURN && IsPushOnly(script[1:]) {
		return NullDataTy, nil
	}

	if pubKey := extractPubKey(script); pubKey != nil {
		return PubKeyTy, [][]byte{pubKey}
	}

	if isPubKeyHashScript(script) {
		return PubKeyHashTy, [][]byte{script[3:23]}
	}

	if solutions, ok := extractMultisig(script); ok {
		return MultiSigTy, solutions
	}

	return NonStandardTy, nil
}

// GetScriptClass returns the class of the script passed.
//
// NonStandardTy will be returned when the script does not parse.
func GetScriptClass(script []byte) ScriptClass {
	class, _ := Solver(script)
	return class
}

// isValidPubKeySize returns whether data has the size and prefix of a
// serialized public key.
func isValidPubKeySize(data []byte) bool {
	switch len(data) {
	case 33:
		return data[0] == 0x02 || data[0] == 0x03
	case 65:
		return data[0] == 0x04 || data[0] == 0x06 || data[0] == 0x07
	}
	return false
}

// extractMultisig matches
//  OP_m <pubkey>... OP_n OP_CHECKMULTISIG
// with n keys and 1 <= m <= n <= 16.
func extractMultisig(script []byte) ([][]byte, bool) {
	pops, err := parseScript(script)
	if err != nil || len(pops) < 4 {
		return nil, false
	}
	if pops[len(pops)-1].opcode != OP_CHECKMULTISIG {
		return nil, false
	}

	first, last := pops[0].opcode, pops[len(pops)-2].opcode
	if first < OP_1 || first > OP_16 || last < OP_1 || last > OP_16 {
		return nil, false
	}
	required, keys := asSmallInt(first), asSmallInt(last)

	pubKeys := pops[1 : len(pops)-2]
	if len(pubKeys) != keys || keys < required {
		return nil, false
	}

	solutions := make([][]byte, 0, keys+2)
	solutions = append(solutions, []byte{byte(required)})
	for _, pop := range pubKeys {
		if !pop.isPush() || !isValidPubKeySize(pop.data) {
			return nil, false
		}
		solutions = append(solutions, pop.data)
	}
	solutions = append(solutions, []byte{byte(keys)})
	return solutions, true
}

// ExtractDestination resolves a public key script to the key hash or script
// hash it pays to. Pay-to-pubkey scripts resolve to the hash of their key.
// Every other class has no destination.
func ExtractDestination(script []byte) (util.Destination, bool) {
	class, solutions := Solver(script)
	switch class {
	case PubKeyTy:
		return util.KeyHashDestination(util.NewKeyID(solutions[0])), true
	case PubKeyHashTy:
		var id util.KeyID
		copy(id[:], solutions[0])
		return util.KeyHashDestination(id), true
	case ScriptHashTy:
		var id util.ScriptID
		copy(id[:], solutions[0])
		return util.ScriptHashDestination(id), true
	}
	return util.NoDestination, false
}

// payToPubKeyHashScript creates a new script to pay a transaction
// output to a 20-byte pubkey hash. It is expected that the input is a valid
// hash.
func payToPubKeyHashScript(pubKeyHash []byte) ([]byte, error) {
	return NewScriptBuilder().AddOp(OP_DUP).AddOp(OP_HASH160).
		AddData(pubKeyHash).AddOp(OP_EQUALVERIFY).AddOp(OP_CHECKSIG).
		Script()
}

// payToScriptHashScript creates a new script to pay a transaction output to a
// script hash. It is expected that the input is a valid hash.
func payToScriptHashScript(scriptHash []byte) ([]byte, error) {
	return NewScriptBuilder().AddOp(OP_HASH160).AddData(scriptHash).
		AddOp(OP_EQUAL).Script()
}

// PayToPubKeyScript creates a new script to pay a transaction output to a
// serialized public key.
func PayToPubKeyScript(serializedPubKey []byte) ([]byte, error) {
	if !isValidPubKeySize(serializedPubKey) {
		return nil, errors.Errorf("unable to generate payment script for "+
			"a %d-byte public key", len(serializedPubKey))
	}
	return NewScriptBuilder().AddData(serializedPubKey).
		AddOp(OP_CHECKSIG).Script()
}

// PayToAddrScript creates a new script to pay a transaction output to a the
// specified address.
func PayToAddrScript(addr util.Address) ([]byte, error) {
	const nilAddrErrStr = "unable to generate payment script for nil address"

	switch addr := addr.(type) {
	case *util.AddressPubKeyHash:
		if addr == nil {
			return nil, errors.New(nilAddrErrStr)
		}
		return payToPubKeyHashScript(addr.ScriptAddress())

	case *util.AddressScriptHash:
		if addr == nil {
			return nil, errors.New(nilAddrErrStr)
		}
		return payToScriptHashScript(addr.ScriptAddress())
	}

	return nil, errors.Errorf("unable to generate payment script for unsupported "+
		"address type %T", addr)
}

// PayToDestinationScript creates a new script paying to dest. DestinationNone
// has no script.
func PayToDestinationScript(dest util.Destination) ([]byte, error) {
	switch dest.Kind {
	case util.DestinationKeyHash:
		return payToPubKeyHashScript(dest.Hash[:])
	case util.DestinationScriptHash:
		return payToScriptHashScript(dest.Hash[:])
	}
	return nil, errors.Errorf("unable to generate payment script for %s destination", dest.Kind)
}
