package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/tposnet/tposd/wire"
)

func printErrorAndExit(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func decodeTransactionHex(transactionHex string) (*wire.MsgTx, error) {
	serialized, err := hex.DecodeString(strings.TrimSpace(transactionHex))
	if err != nil {
		return nil, errors.Wrap(err, "transaction is not hex")
	}
	tx := new(wire.MsgTx)
	err = tx.Deserialize(bytes.NewReader(serialized))
	if err != nil {
		return nil, errors.Wrap(err, "failed to deserialize transaction")
	}
	return tx, nil
}

func decodeBlockHex(blockHex string) (*wire.MsgBlock, error) {
	serialized, err := hex.DecodeString(strings.TrimSpace(blockHex))
	if err != nil {
		return nil, errors.Wrap(err, "block is not hex")
	}
	block := new(wire.MsgBlock)
	err = block.Deserialize(bytes.NewReader(serialized))
	if err != nil {
		return nil, errors.Wrap(err, "failed to deserialize block")
	}
	return block, nil
}
