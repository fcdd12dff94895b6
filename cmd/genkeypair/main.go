package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/tposnet/tposd/btcec"
	"github.com/tposnet/tposd/util"
)

func main() {
	cfg, err := parseConfig()
	if err != nil {
		os.Exit(1)
	}

	privateKey, err := btcec.NewPrivateKey()
	if err != nil {
		printErrorAndExit(errors.Wrap(err, "Failed to generate private key"))
	}

	compressed := !cfg.Uncompressed
	wif := util.NewWIF(privateKey, cfg.NetParams(), compressed)
	addr, err := util.NewAddressPubKeyHash(util.Hash160(wif.SerializePubKey()), cfg.NetParams())
	if err != nil {
		printErrorAndExit(errors.Wrap(err, "Failed to generate address"))
	}

	fmt.Printf("Private key: %s\n", wif)
	fmt.Printf("Public key: %x\n", wif.SerializePubKey())
	fmt.Printf("Address: %s\n", addr.EncodeAddress())
}

func printErrorAndExit(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}
