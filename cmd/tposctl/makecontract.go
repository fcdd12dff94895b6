package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/tposnet/tposd/domain/tpos"
	"github.com/tposnet/tposd/txscript"
	"github.com/tposnet/tposd/util"
	"github.com/tposnet/tposd/util/chainhash"
	"github.com/tposnet/tposd/wire"
)

func makeContract(conf *makeContractConfig, out io.Writer) error {
	params := conf.NetParams()

	ownerAddress, err := util.DecodeAddress(conf.Owner, params)
	if err != nil {
		return err
	}
	if _, ok := ownerAddress.(*util.AddressScriptHash); !ok {
		return errors.Errorf("The owner address %s is not a pay-to-script-hash address", conf.Owner)
	}
	merchantAddress, err := util.DecodeAddress(conf.Merchant, params)
	if err != nil {
		return err
	}
	outPoint, err := parseOutPoint(conf.OutPoint)
	if err != nil {
		return err
	}
	value, err := util.NewAmount(conf.Value)
	if err != nil {
		return err
	}

	tposScript, err := txscript.PayToAddrScript(ownerAddress)
	if err != nil {
		return err
	}
	outputs, err := tpos.ContractOutputs(tposScript, value, merchantAddress, *outPoint, conf.Commission)
	if err != nil {
		return err
	}

	tx := wire.NewMsgTx(wire.TxVersion)
	for i, output := range outputs {
		tx.AddTxOut(output)
		fmt.Fprintf(out, "Output #%d: %s\n    %s\n", i, util.Amount(output.Value),
			txscript.DisasmString(output.PkScript))
	}

	var serialized bytes.Buffer
	err = tx.Serialize(&serialized)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nUnfunded transaction:\n%s\n", hex.EncodeToString(serialized.Bytes()))
	return nil
}

func parseOutPoint(s string) (*wire.OutPoint, error) {
	separator := strings.LastIndexByte(s, ':')
	if separator < 0 {
		return nil, errors.Errorf("Outpoint %s is not of the form txid:index", s)
	}
	txID, err := chainhash.NewHashFromStr(s[:separator])
	if err != nil {
		return nil, errors.Wrapf(err, "Malformed txid in outpoint %s", s)
	}
	index, err := strconv.ParseUint(s[separator+1:], 10, 32)
	if err != nil {
		return nil, errors.Wrapf(err, "Malformed index in outpoint %s", s)
	}
	return wire.NewOutPoint(txID, uint32(index)), nil
}
