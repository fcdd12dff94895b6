package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/tposnet/tposd/domain/blocksign"
	"github.com/tposnet/tposd/infrastructure/db/ldbkeystore"
)

func signBlock(conf *signBlockConfig, out io.Writer) error {
	params := conf.NetParams()

	block, err := decodeBlockHex(conf.Block)
	if err != nil {
		return err
	}

	store, err := ldbkeystore.Open(conf.KeyStore)
	if err != nil {
		return err
	}
	defer store.Close()

	if !blocksign.SignBlock(block, store, params) {
		return errors.Errorf("Failed to sign block %s", blocksign.SignatureHash(block, params))
	}

	serialized, err := block.Bytes()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, hex.EncodeToString(serialized))
	return nil
}

func checkBlock(conf *checkBlockConfig, out io.Writer) error {
	params := conf.NetParams()

	block, err := decodeBlockHex(conf.Block)
	if err != nil {
		return err
	}

	if conf.Verbose {
		fmt.Fprint(out, block.StringWith(params.HeaderHashFunc))
	}

	hash := blocksign.SignatureHash(block, params)
	kind := "proof-of-work"
	if block.IsProofOfStake() {
		kind = "proof-of-stake"
	}
	if !blocksign.CheckBlockSignature(block, params) {
		return errors.Errorf("The signature of %s block %s is invalid", kind, hash)
	}
	fmt.Fprintf(out, "The signature of %s block %s is valid\n", kind, hash)
	return nil
}
