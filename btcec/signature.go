// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcec

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/pkg/errors"
)

// CompactSignatureLen is the length of a signature produced by SignCompact.
const CompactSignatureLen = 65

// Sign produces a DER-encoded ECDSA signature of hash. The signature is
// deterministic (RFC6979) and uses a low S value.
func (p *PrivateKey) Sign(hash []byte) []byte {
	return ecdsa.Sign(p.key, hash).Serialize()
}

// SignCompact produces a 65-byte recoverable signature of hash. The
// compressed flag is recorded in the signature so the recovered key is
// serialized the same way the signer's was.
func (p *PrivateKey) SignCompact(hash []byte, compressed bool) []byte {
	return ecdsa.SignCompact(p.key, hash, compressed)
}

// Verify checks the DER-encoded signature sig of hash against p. Malformed
// signatures fail verification.
func (p *PublicKey) Verify(hash []byte, sig []byte) bool {
	signature, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}
	return signature.Verify(hash, p.key)
}

// RecoverCompact recovers the public key that produced the compact signature
// sig over hash, and whether that key was serialized compressed.
func RecoverCompact(sig []byte, hash []byte) (*PublicKey, bool, error) {
	if len(sig) != CompactSignatureLen {
		return nil, false, errors.Errorf("malformed compact signature: want %d bytes, got %d",
			CompactSignatureLen, len(sig))
	}
	key, compressed, err := ecdsa.RecoverCompact(sig, hash)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to recover public key")
	}
	return &PublicKey{key: key}, compressed, nil
}
