// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcec

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"
)

// Sizes of the serialized forms of keys.
const (
	PrivKeyBytesLen            = 32
	PubKeyBytesLenCompressed   = 33
	PubKeyBytesLenUncompressed = 65
)

// PrivateKey wraps a secp256k1 private key.
type PrivateKey struct {
	key *secp256k1.PrivateKey
}

// PublicKey wraps a secp256k1 public key.
type PublicKey struct {
	key *secp256k1.PublicKey
}

// NewPrivateKey generates a new random private key.
func NewPrivateKey() (*PrivateKey, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate private key")
	}
	return &PrivateKey{key: key}, nil
}

// PrivKeyFromBytes returns a private key for the 32-byte big-endian scalar
// in b. Scalars that are zero or not below the group order are rejected.
func PrivKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != PrivKeyBytesLen {
		return nil, errors.Errorf("malformed private key: want %d bytes, got %d",
			PrivKeyBytesLen, len(b))
	}
	var scalar secp256k1.ModNScalar
	overflow := scalar.SetByteSlice(b)
	if overflow || scalar.IsZero() {
		return nil, errors.New("malformed private key: scalar out of range")
	}
	return &PrivateKey{key: secp256k1.NewPrivateKey(&scalar)}, nil
}

// Serialize returns the private key as a 32-byte big-endian scalar.
func (p *PrivateKey) Serialize() []byte {
	return p.key.Serialize()
}

// PubKey returns the public key matching p.
func (p *PrivateKey) PubKey() *PublicKey {
	return &PublicKey{key: p.key.PubKey()}
}

// ParsePubKey parses a compressed or uncompressed secp256k1 public key. Keys
// that are not on the curve are rejected.
func ParsePubKey(pubKeyStr []byte) (*PublicKey, error) {
	key, err := secp256k1.ParsePubKey(pubKeyStr)
	if err != nil {
		return nil, errors.Wrap(err, "malformed public key")
	}
	return &PublicKey{key: key}, nil
}

// IsValidPubKey reports whether b is a well-formed public key.
func IsValidPubKey(b []byte) bool {
	_, err := ParsePubKey(b)
	return err == nil
}

// SerializeCompressed returns the 33-byte compressed encoding of the key.
func (p *PublicKey) SerializeCompressed() []byte {
	return p.key.SerializeCompressed()
}

// SerializeUncompressed returns the 65-byte uncompressed encoding of the key.
func (p *PublicKey) SerializeUncompressed() []byte {
	return p.key.SerializeUncompressed()
}

// Serialize returns the compressed or uncompressed encoding of the key.
func (p *PublicKey) Serialize(compressed bool) []byte {
	if compressed {
		return p.SerializeCompressed()
	}
	return p.SerializeUncompressed()
}

// IsEqual returns true if p and other represent the same point.
func (p *PublicKey) IsEqual(other *PublicKey) bool {
	return p.key.IsEqual(other.key)
}
