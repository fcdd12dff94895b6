// Package blocksign produces and checks the block producer's signature.
//
// Proof-of-work blocks are signed with the key of the first pay-to-pubkey
// output of their coinbase, and are valid only while unsigned. Proof-of-stake
// blocks are signed with the key paid by output 1 of their coinstake.
package blocksign

import (
	"bytes"

	"github.com/tposnet/tposd/btcec"
	"github.com/tposnet/tposd/chaincfg"
	"github.com/tposnet/tposd/infrastructure/logger"
	"github.com/tposnet/tposd/keystore"
	"github.com/tposnet/tposd/txscript"
	"github.com/tposnet/tposd/util"
	"github.com/tposnet/tposd/util/chainhash"
	"github.com/tposnet/tposd/wire"
)

// stakeOutputIndex is the coinstake output whose owner signs a
// proof-of-stake block.
const stakeOutputIndex = 1

// SignatureHash returns the hash a block signature commits to: the block's
// identity under the network's header hash function.
func SignatureHash(block *wire.MsgBlock, params *chaincfg.Params) chainhash.Hash {
	return block.Header.BlockHashWith(params.HeaderHashFunc)
}

// SignBlock signs block with a key from keys and stores the signature in
// block.Signature, overwriting any previous one. It returns false, leaving
// the block untouched, when no qualifying output exists or its key is not in
// the store.
func SignBlock(block *wire.MsgBlock, keys keystore.KeyStore, params *chaincfg.Params) bool {
	onEnd := logger.LogAndMeasureExecutionTime(log, "SignBlock")
	defer onEnd()

	hash := SignatureHash(block, params)

	if block.IsProofOfWork() {
		return signProofOfWork(block, keys, hash)
	}
	return signProofOfStake(block, keys, hash)
}

// signProofOfWork signs with the key of the first pay-to-pubkey coinbase
// output. Later outputs are never considered once one qualifies.
func signProofOfWork(block *wire.MsgBlock, keys keystore.KeyStore, hash chainhash.Hash) bool {
	if len(block.Transactions) == 0 {
		log.Warnf("Sign failed for block %s: no coinbase", hash)
		return false
	}

	for i, txOut := range block.Transactions[0].TxOut {
		class, solutions := txscript.Solver(txOut.PkScript)
		if class != txscript.PubKeyTy {
			continue
		}

		key, ok := lookupKey(keys, util.NewKeyID(solutions[0]), hash)
		if !ok {
			return false
		}
		block.Signature = key.PrivKey.Sign(hash[:])
		log.Debugf("Signed proof-of-work block %s with coinbase output %d", hash, i)
		return true
	}

	log.Warnf("Sign failed for block %s: no pay-to-pubkey coinbase output", hash)
	return false
}

// signProofOfStake signs with the key paid by the stake output. Key hash
// outputs get a compact signature, since the verifier can only learn the
// public key by recovering it. Public key outputs get a DER signature.
func signProofOfStake(block *wire.MsgBlock, keys keystore.KeyStore, hash chainhash.Hash) bool {
	txOut := block.Transactions[1].TxOut[stakeOutputIndex]
	class, solutions := txscript.Solver(txOut.PkScript)

	switch class {
	case txscript.PubKeyHashTy:
		var id util.KeyID
		copy(id[:], solutions[0])
		key, ok := lookupKey(keys, id, hash)
		if !ok {
			return false
		}
		block.Signature = key.PrivKey.SignCompact(hash[:], key.Compressed)
		log.Debugf("Signed proof-of-stake block %s for key hash %x", hash, id)
		return true

	case txscript.PubKeyTy:
		key, ok := lookupKey(keys, util.NewKeyID(solutions[0]), hash)
		if !ok {
			return false
		}
		block.Signature = key.PrivKey.Sign(hash[:])
		log.Debugf("Signed proof-of-stake block %s for public key %x", hash, solutions[0])
		return true
	}

	log.Warnf("Sign failed for block %s: stake output is %s", hash, class)
	return false
}

func lookupKey(keys keystore.KeyStore, id util.KeyID, hash chainhash.Hash) (*keystore.Key, bool) {
	key, err := keys.GetKey(id)
	if err != nil {
		log.Warnf("Sign failed for block %s: %s", hash, err)
		return nil, false
	}
	return key, true
}

// CheckBlockSignature reports whether block carries a valid signature.
//
// A proof-of-work block is valid only with an empty signature. A
// proof-of-stake block must be signed by the key its stake output pays.
// For a key hash output the captured bytes are first tried as a public key.
// Otherwise the signature must be compact, and the key recovered from it
// must hash to the captured key hash.
func CheckBlockSignature(block *wire.MsgBlock, params *chaincfg.Params) bool {
	if block.IsProofOfWork() {
		return len(block.Signature) == 0
	}

	hash := SignatureHash(block, params)
	txOut := block.Transactions[1].TxOut[stakeOutputIndex]
	class, solutions := txscript.Solver(txOut.PkScript)

	switch class {
	case txscript.PubKeyTy:
		return verifyWithPubKey(solutions[0], block.Signature, hash)

	case txscript.PubKeyHashTy:
		if btcec.IsValidPubKey(solutions[0]) {
			return verifyWithPubKey(solutions[0], block.Signature, hash)
		}
		return verifyRecovered(solutions[0], block.Signature, hash)
	}

	log.Debugf("Block %s has a %s stake output and cannot be verified", hash, class)
	return false
}

func verifyWithPubKey(serializedPubKey, signature []byte, hash chainhash.Hash) bool {
	pubKey, err := btcec.ParsePubKey(serializedPubKey)
	if err != nil {
		log.Debugf("Block %s: malformed stake public key: %s", hash, err)
		return false
	}
	if len(signature) == 0 {
		return false
	}
	return pubKey.Verify(hash[:], signature)
}

func verifyRecovered(keyHash, signature []byte, hash chainhash.Hash) bool {
	if len(signature) == 0 {
		return false
	}
	pubKey, compressed, err := btcec.RecoverCompact(signature, hash[:])
	if err != nil {
		log.Debugf("Block %s: %s", hash, err)
		return false
	}
	return bytes.Equal(util.Hash160(pubKey.Serialize(compressed)), keyHash)
}
