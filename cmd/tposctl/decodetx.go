package main

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"github.com/tposnet/tposd/domain/tpos"
)

func decodeTx(conf *decodeTxConfig, out io.Writer) error {
	tx, err := decodeTransactionHex(conf.Transaction)
	if err != nil {
		return err
	}

	contract, ok := tpos.DecodeContract(tx, conf.NetParams())
	if !ok {
		return errors.Errorf("Transaction %s carries no contract", tx.TxHash())
	}

	printContract(out, contract)
	if conf.Verbose {
		fmt.Fprintln(out)
		fmt.Fprint(out, tx)
		spew.Fdump(out, contract.MerchantOutPoint, contract.MerchantAddress, contract.TPoSAddress)
	}
	return nil
}

func printContract(out io.Writer, contract *tpos.Contract) {
	fmt.Fprintf(out, "Transaction:         %s\n", contract.Tx.TxHash())
	fmt.Fprintf(out, "Delegation address:  %s\n", contract.TPoSAddress.EncodeAddress())
	fmt.Fprintf(out, "Merchant address:    %s\n", contract.MerchantAddress.EncodeAddress())
	fmt.Fprintf(out, "Merchant collateral: %s\n", contract.MerchantOutPoint)
	fmt.Fprintf(out, "Owner share:         %d%%\n", contract.StakePercentage)
	fmt.Fprintf(out, "Merchant commission: %d%%\n", contract.MerchantCommission())
	fmt.Fprintf(out, "Valid:               %t\n", contract.IsValid())
}
