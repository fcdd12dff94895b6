package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/tposnet/tposd/domain/tpos"
)

func export(conf *exportConfig, in io.Reader, out io.Writer) error {
	if conf.Payload != "" && conf.Transaction != "" {
		return errors.New("Both --payload and --transaction cannot be passed at the same time")
	}

	if conf.Transaction != "" {
		tx, err := decodeTransactionHex(conf.Transaction)
		if err != nil {
			return err
		}
		if !tpos.IsContract(tx, conf.NetParams()) {
			return errors.Errorf("Transaction %s carries no contract", tx.TxHash())
		}
		block, err := tpos.ExportContractTx(tx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, block)
		return nil
	}

	payload := conf.Payload
	if payload == "" {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		payload = strings.TrimSpace(line)
	}
	if payload == "" || strings.IndexFunc(payload, unicode.IsSpace) >= 0 {
		return errors.New("The payload must be a single word")
	}

	fmt.Fprintln(out, tpos.PrepareExportBlock(payload))
	return nil
}

func importContract(conf *importConfig, in io.Reader, out io.Writer) error {
	input, err := io.ReadAll(in)
	if err != nil {
		return errors.Wrap(err, "Could not read the export block from stdin")
	}

	if conf.Raw {
		payload := tpos.ParseExportBlock(string(input))
		if payload == "" {
			return errors.WithStack(tpos.ErrMalformedExportBlock)
		}
		fmt.Fprintln(out, payload)
		return nil
	}

	contract, err := tpos.ImportContractTx(string(input), conf.NetParams())
	if err != nil {
		return err
	}
	printContract(out, contract)
	return nil
}
