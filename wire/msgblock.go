// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/tposnet/tposd/util/chainhash"
)

// defaultTransactionAlloc is the default size used for the backing array
// for transactions. The transaction array will dynamically grow as needed, but
// this figure is intended to provide enough space for the number of
// transactions in the vast majority of blocks without needing to grow the
// backing array multiple times.
const defaultTransactionAlloc = 2048

// MaxSignatureSize bounds the serialized block signature. A DER signature
// is at most 72 bytes and a compact one is 65.
const MaxSignatureSize = 80

// maxTxPerBlock is the maximum number of transactions that could
// possibly fit into a block.
const maxTxPerBlock = (MaxBlockPayload / minTxPayload) + 1

// minTxPayload is the minimum payload size for a transaction.
// Version 4 bytes + Varint number of transaction inputs 1 byte + Varint
// number of transaction outputs 1 byte + LockTime 4 bytes.
const minTxPayload = 10

// MsgBlock represents a block: a header, its transactions and the
// signature of the block producer. Proof-of-work blocks carry an empty
// signature.
//
// MasternodePayout, SuperblockPayouts and Checked are in-memory only. They
// are neither serialized nor part of the block's identity.
type MsgBlock struct {
	Header       BlockHeader
	Transactions []*MsgTx
	Signature    []byte

	MasternodePayout  *TxOut
	SuperblockPayouts []*TxOut
	Checked           bool
}

// NewMsgBlock returns a new block using the provided block header. See
// MsgBlock for details.
func NewMsgBlock(blockHeader *BlockHeader) *MsgBlock {
	return &MsgBlock{
		Header:       *blockHeader,
		Transactions: make([]*MsgTx, 0, defaultTransactionAlloc),
	}
}

// AddTransaction adds a transaction to the message.
func (msg *MsgBlock) AddTransaction(tx *MsgTx) {
	msg.Transactions = append(msg.Transactions, tx)
}

// ClearTransactions removes all transactions from the message.
func (msg *MsgBlock) ClearTransactions() {
	msg.Transactions = make([]*MsgTx, 0, defaultTransactionAlloc)
}

// SetNull resets the block to its empty state.
func (msg *MsgBlock) SetNull() {
	*msg = MsgBlock{}
}

// BlockHeader returns a standalone copy of the block's header fields.
func (msg *MsgBlock) BlockHeader() BlockHeader {
	return msg.Header
}

// IsProofOfStake returns whether the block's second transaction is a
// coinstake.
func (msg *MsgBlock) IsProofOfStake() bool {
	return len(msg.Transactions) > 1 && msg.Transactions[1].IsCoinStake()
}

// IsProofOfWork returns whether the block is not a proof-of-stake block.
func (msg *MsgBlock) IsProofOfWork() bool {
	return !msg.IsProofOfStake()
}

// BlockHash computes the block identifier hash for this block using the
// default header primitive.
func (msg *MsgBlock) BlockHash() chainhash.Hash {
	return msg.Header.BlockHash()
}

// TxHashes returns a slice of hashes of all of transactions in this block.
func (msg *MsgBlock) TxHashes() []chainhash.Hash {
	hashList := make([]chainhash.Hash, 0, len(msg.Transactions))
	for _, tx := range msg.Transactions {
		hashList = append(hashList, tx.TxHash())
	}
	return hashList
}

// Deserialize decodes a block from r into the receiver.
func (msg *MsgBlock) Deserialize(r io.Reader) error {
	err := readBlockHeader(r, &msg.Header)
	if err != nil {
		return err
	}

	txCount, err := ReadVarInt(r)
	if err != nil {
		return err
	}

	// Prevent more transactions than could possibly fit into a block.
	// It would be possible to cause memory exhaustion and panics without
	// a sane upper bound on this count.
	if txCount > maxTxPerBlock {
		str := fmt.Sprintf("too many transactions to fit into a block "+
			"[count %d, max %d]", txCount, maxTxPerBlock)
		return messageError("MsgBlock.Deserialize", str)
	}

	msg.Transactions = make([]*MsgTx, 0, txCount)
	for i := uint64(0); i < txCount; i++ {
		tx := MsgTx{}
		err := tx.Deserialize(r)
		if err != nil {
			return err
		}
		msg.Transactions = append(msg.Transactions, &tx)
	}

	msg.Signature, err = ReadVarBytes(r, MaxSignatureSize, "block signature")
	return err
}

// Serialize encodes the block to w.
func (msg *MsgBlock) Serialize(w io.Writer) error {
	err := writeBlockHeader(w, &msg.Header)
	if err != nil {
		return err
	}

	err = WriteVarInt(w, uint64(len(msg.Transactions)))
	if err != nil {
		return err
	}

	for _, tx := range msg.Transactions {
		err = tx.Serialize(w)
		if err != nil {
			return err
		}
	}

	return WriteVarBytes(w, msg.Signature)
}

// SerializeSize returns the number of bytes it would take to serialize the
// block.
func (msg *MsgBlock) SerializeSize() int {
	// Block header bytes + Serialized varint size for the number of
	// transactions + signature.
	n := BlockHeaderPayload + VarIntSerializeSize(uint64(len(msg.Transactions))) +
		VarIntSerializeSize(uint64(len(msg.Signature))) + len(msg.Signature)

	for _, tx := range msg.Transactions {
		n += tx.SerializeSize()
	}

	return n
}

// Bytes returns the serialized block.
func (msg *MsgBlock) Bytes() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, msg.SerializeSize()))
	err := msg.Serialize(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// String returns a multi-line dump of the block header followed by its
// transactions. The header hash uses the default primitive; networks with
// another header hash should dump through StringWith.
func (msg *MsgBlock) String() string {
	return msg.StringWith(chainhash.DoubleHashH)
}

// StringWith is String with the header hashed by hashFunc.
func (msg *MsgBlock) StringWith(hashFunc chainhash.HashFunc) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Block(hash=%s, ver=0x%08x, hashPrevBlock=%s, hashMerkleRoot=%s, "+
		"nTime=%d, nBits=%08x, nNonce=%d, vtx=%d)\n",
		msg.Header.BlockHashWith(hashFunc), uint32(msg.Header.Version), msg.Header.PrevBlock,
		msg.Header.MerkleRoot, msg.Header.Timestamp.Unix(), msg.Header.Bits,
		msg.Header.Nonce, len(msg.Transactions))
	for _, tx := range msg.Transactions {
		sb.WriteString("  ")
		sb.WriteString(tx.String())
	}
	return sb.String()
}
