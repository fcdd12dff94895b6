// Package tpos implements trustless proof-of-stake delegation contracts: an
// owner keeps custody of staked coins while a merchant forges blocks with
// them for a commission.
//
// A contract lives only inside the transaction that creates it. Such a
// transaction carries a pay-to-script-hash delegation output and an
// OP_RETURN metadata output of the form
//
//	OP_RETURN <owner percentage> <merchant address> <collateral txid> <collateral index>
package tpos

import (
	"encoding/hex"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/tposnet/tposd/chaincfg"
	"github.com/tposnet/tposd/txscript"
	"github.com/tposnet/tposd/util"
	"github.com/tposnet/tposd/util/chainhash"
	"github.com/tposnet/tposd/wire"
)

const (
	// metadataTokenCount is the number of whitespace separated tokens in
	// the disassembly of a metadata script.
	metadataTokenCount = 5

	// maxPercentage bounds every commission and stake percentage from
	// above. Valid values lie strictly between 0 and maxPercentage.
	maxPercentage = 100
)

// Contract is a delegation agreement decoded from, or about to be encoded
// into, a transaction.
type Contract struct {
	// Tx is the transaction carrying the contract.
	Tx *wire.MsgTx

	// MerchantOutPoint is the merchant's collateral output.
	MerchantOutPoint wire.OutPoint

	// MerchantAddress is where the merchant is paid.
	MerchantAddress util.Address

	// TPoSAddress is the pay-to-script-hash delegation address holding
	// the owner's stake.
	TPoSAddress util.Address

	// StakePercentage is the share of the stake reward retained by the
	// owner. It is the value stored in the metadata output, so the
	// merchant's commission is its complement to 100.
	StakePercentage int
}

// NewContract returns a contract with the given fields. It does not
// validate them.
func NewContract(tx *wire.MsgTx, merchantOutPoint wire.OutPoint, merchantAddress,
	tposAddress util.Address, stakePercentage int) *Contract {

	return &Contract{
		Tx:               tx,
		MerchantOutPoint: merchantOutPoint,
		MerchantAddress:  merchantAddress,
		TPoSAddress:      tposAddress,
		StakePercentage:  stakePercentage,
	}
}

// IsValid returns whether the contract has a non-empty transaction, both
// addresses, and a stake percentage strictly between 0 and 100. A nil
// contract is not valid.
func (c *Contract) IsValid() bool {
	return c != nil &&
		c.Tx != nil && !c.Tx.IsNull() &&
		c.TPoSAddress != nil && c.MerchantAddress != nil &&
		c.StakePercentage > 0 && c.StakePercentage < maxPercentage
}

// MerchantCommission returns the share of the stake reward paid to the
// merchant.
func (c *Contract) MerchantCommission() int {
	return maxPercentage - c.StakePercentage
}

// String returns a one-line description of the contract.
func (c *Contract) String() string {
	var merchant, tposAddress, txID string
	if c.MerchantAddress != nil {
		merchant = c.MerchantAddress.EncodeAddress()
	}
	if c.TPoSAddress != nil {
		tposAddress = c.TPoSAddress.EncodeAddress()
	}
	if c.Tx != nil {
		txID = c.Tx.TxHash().String()
	}
	return "Contract(tx=" + txID +
		", tposAddress=" + tposAddress +
		", merchantAddress=" + merchant +
		", merchantOutPoint=" + c.MerchantOutPoint.String() +
		", stakePercentage=" + strconv.Itoa(c.StakePercentage) + ")"
}

// IsContract returns whether tx carries a valid contract.
func IsContract(tx *wire.MsgTx, params *chaincfg.Params) bool {
	contract, ok := DecodeContract(tx, params)
	return ok && contract.IsValid()
}

// DecodeContract extracts the contract carried by tx. It returns false for
// any transaction that does not carry a well-formed contract. Decoding never
// fails otherwise, since any transaction on the chain may be offered to it.
//
// When several outputs are unspendable, the last one is the metadata
// output. When several outputs pay to a script hash, the last one is the
// delegation output.
func DecodeContract(tx *wire.MsgTx, params *chaincfg.Params) (*Contract, bool) {
	if tx == nil || len(tx.TxOut) < 2 {
		return nil, false
	}

	metadataIndex, delegationIndex := -1, -1
	for i := 0; i < len(tx.TxOut); i++ {
		pkScript := tx.TxOut[i].PkScript
		if txscript.IsUnspendable(pkScript) {
			metadataIndex = i
		} else if txscript.IsPayToScriptHash(pkScript) {
			delegationIndex = i
		}
	}
	if metadataIndex < 0 || delegationIndex < 0 {
		return nil, false
	}

	txID := tx.TxHash()
	metadataScript := tx.TxOut[metadataIndex].PkScript
	if class := txscript.GetScriptClass(metadataScript); class != txscript.NullDataTy {
		log.Tracef("Transaction %s is not a contract: metadata output %d is %s",
			txID, metadataIndex, class)
		return nil, false
	}

	metadata, err := parseMetadata(metadataScript, params)
	if err != nil {
		log.Debugf("Failed to parse contract metadata of transaction %s: %s", txID, err)
		return nil, false
	}

	_, solutions := txscript.Solver(tx.TxOut[delegationIndex].PkScript)
	tposAddress, err := util.NewAddressScriptHashFromHash(solutions[0], params)
	if err != nil {
		log.Debugf("Failed to parse delegation output of transaction %s: %s", txID, err)
		return nil, false
	}

	return NewContract(tx, metadata.merchantOutPoint, metadata.merchantAddress,
		tposAddress, metadata.stakePercentage), true
}

type contractMetadata struct {
	stakePercentage  int
	merchantAddress  util.Address
	merchantOutPoint wire.OutPoint
}

// parseMetadata parses the disassembly of a null data metadata script.
func parseMetadata(pkScript []byte, params *chaincfg.Params) (*contractMetadata, error) {
	tokens := strings.Fields(txscript.DisasmString(pkScript))
	if len(tokens) != metadataTokenCount {
		return nil, errors.Errorf("metadata has %d tokens, want %d", len(tokens), metadataTokenCount)
	}
	if tokens[0] != txscript.OpcodeName(txscript.OP_RETURN) {
		return nil, errors.Errorf("metadata starts with %s", tokens[0])
	}

	stakePercentage, err := strconv.Atoi(tokens[1])
	if err != nil {
		return nil, errors.Wrap(err, "malformed stake percentage")
	}
	if stakePercentage <= 0 || stakePercentage >= maxPercentage {
		return nil, errors.Errorf("stake percentage %d out of range", stakePercentage)
	}

	// The address is pushed as its text, so the token is the hex of the
	// address characters.
	rawAddress, err := hex.DecodeString(tokens[2])
	if err != nil {
		return nil, errors.Wrap(err, "malformed merchant address")
	}
	merchantAddress, err := util.DecodeAddress(string(rawAddress), params)
	if err != nil {
		return nil, err
	}

	if len(tokens[3]) != chainhash.MaxHashStringSize {
		return nil, errors.Errorf("collateral txid has %d characters, want %d",
			len(tokens[3]), chainhash.MaxHashStringSize)
	}
	txID, err := chainhash.NewHashFromStr(tokens[3])
	if err != nil {
		return nil, errors.Wrap(err, "malformed collateral txid")
	}

	index, err := strconv.ParseUint(tokens[4], 10, 32)
	if err != nil {
		return nil, errors.Wrap(err, "malformed collateral index")
	}
	if strconv.FormatUint(index, 10) != tokens[4] {
		return nil, errors.Errorf("collateral index %s is not canonical", tokens[4])
	}

	return &contractMetadata{
		stakePercentage:  stakePercentage,
		merchantAddress:  merchantAddress,
		merchantOutPoint: *wire.NewOutPoint(txID, uint32(index)),
	}, nil
}

// MetadataScript builds the OP_RETURN metadata script of a contract paying
// merchantCommission percent of the stake reward to merchantAddress. The
// script stores the owner's share, 100 - merchantCommission.
func MetadataScript(merchantAddress util.Address, merchantOutPoint wire.OutPoint,
	merchantCommission int) ([]byte, error) {

	if merchantCommission <= 0 || merchantCommission >= maxPercentage {
		return nil, errors.Errorf("merchant commission %d is not between 1 and %d",
			merchantCommission, maxPercentage-1)
	}
	// Larger indexes would be pushed as five bytes and disassemble as hex.
	if merchantOutPoint.Index > math.MaxInt32 {
		return nil, errors.Errorf("collateral index %d is too large", merchantOutPoint.Index)
	}

	// The txid is pushed in display order so that its disassembly reads
	// the same as the hash string.
	txID := merchantOutPoint.Hash
	for i := 0; i < chainhash.HashSize/2; i++ {
		txID[i], txID[chainhash.HashSize-1-i] = txID[chainhash.HashSize-1-i], txID[i]
	}

	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_RETURN).
		AddInt64(int64(maxPercentage - merchantCommission)).
		AddData([]byte(merchantAddress.EncodeAddress())).
		AddData(txID[:]).
		AddInt64(int64(merchantOutPoint.Index)).
		Script()
}

// ContractOutputs returns the outputs of a contract transaction: the
// delegation output paying value to tposScript, followed by the zero-value
// metadata output. Funding the outputs is left to the wallet.
func ContractOutputs(tposScript []byte, value util.Amount, merchantAddress util.Address,
	merchantOutPoint wire.OutPoint, merchantCommission int) ([]*wire.TxOut, error) {

	if !txscript.IsPayToScriptHash(tposScript) {
		return nil, errors.Errorf("delegation script %x is not pay-to-script-hash", tposScript)
	}
	metadataScript, err := MetadataScript(merchantAddress, merchantOutPoint, merchantCommission)
	if err != nil {
		return nil, err
	}

	return []*wire.TxOut{
		wire.NewTxOut(int64(value), tposScript),
		wire.NewTxOut(0, metadataScript),
	}, nil
}
