package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/tposnet/tposd/infrastructure/config"
	"github.com/tposnet/tposd/version"
)

const appName = "tposctl"

const (
	exportSubCmd       = "export"
	importSubCmd       = "import"
	decodeTxSubCmd     = "decodetx"
	makeContractSubCmd = "makecontract"
	importKeySubCmd    = "importkey"
	signBlockSubCmd    = "signblock"
	checkBlockSubCmd   = "checkblock"
)

type configFlags struct {
	ShowVersion bool `short:"V" long:"version" description:"Display version information and exit"`
	config.NetworkFlags
	config.LogFlags
}

type exportConfig struct {
	Payload     string `long:"payload" short:"p" description:"The payload to wrap (read from stdin when omitted)"`
	Transaction string `long:"transaction" short:"t" description:"A contract transaction to export (encoded in hex)"`
	config.NetworkFlags
}

type importConfig struct {
	Raw bool `long:"raw" description:"Print the payload without decoding it as a contract transaction"`
	config.NetworkFlags
}

type decodeTxConfig struct {
	Transaction string `long:"transaction" short:"t" description:"The transaction to decode (encoded in hex)" required:"true"`
	Verbose     bool   `long:"verbose" short:"v" description:"Dump the decoded contract structure"`
	config.NetworkFlags
}

type makeContractConfig struct {
	Owner      string  `long:"owner" short:"o" description:"The pay-to-script-hash delegation address of the owner" required:"true"`
	Merchant   string  `long:"merchant" short:"m" description:"The payment address of the merchant" required:"true"`
	OutPoint   string  `long:"outpoint" description:"The merchant collateral output as txid:index" required:"true"`
	Commission int     `long:"commission" short:"c" description:"The merchant's share of the stake reward in percent" required:"true"`
	Value      float64 `long:"value" short:"v" description:"The amount to delegate in coins (e.g. 1000.5)" required:"true"`
	config.NetworkFlags
}

type importKeyConfig struct {
	WIF      string `long:"wif" short:"w" description:"The private key to import in wallet import format (read from stdin when omitted)"`
	KeyStore string `long:"keystore" short:"k" description:"Path to the key store database" required:"true"`
	config.NetworkFlags
}

type signBlockConfig struct {
	Block    string `long:"block" short:"b" description:"The block to sign (encoded in hex)" required:"true"`
	KeyStore string `long:"keystore" short:"k" description:"Path to the key store database" required:"true"`
	config.NetworkFlags
}

type checkBlockConfig struct {
	Block   string `long:"block" short:"b" description:"The block to check (encoded in hex)" required:"true"`
	Verbose bool   `long:"verbose" short:"v" description:"Dump the block before checking it"`
	config.NetworkFlags
}

func parseCommandLine() (subCommand string, conf interface{}, logFlags *config.LogFlags) {
	cfg := &configFlags{}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)

	exportConf := &exportConfig{}
	parser.AddCommand(exportSubCmd, "Wraps a payload in an owner info export block",
		"Wraps a payload, or the hex of a contract transaction, in an owner info export block", exportConf)

	importConf := &importConfig{}
	parser.AddCommand(importSubCmd, "Reads an owner info export block from stdin",
		"Reads an owner info export block from stdin and decodes the contract it carries", importConf)

	decodeTxConf := &decodeTxConfig{}
	parser.AddCommand(decodeTxSubCmd, "Decodes the contract carried by a transaction",
		"Decodes the contract carried by a transaction", decodeTxConf)

	makeContractConf := &makeContractConfig{}
	parser.AddCommand(makeContractSubCmd, "Prints the outputs of a contract transaction",
		"Prints the delegation and metadata outputs a wallet funds to create a contract", makeContractConf)

	importKeyConf := &importKeyConfig{}
	parser.AddCommand(importKeySubCmd, "Imports a private key into a key store",
		"Imports a private key in wallet import format into a key store database", importKeyConf)

	signBlockConf := &signBlockConfig{}
	parser.AddCommand(signBlockSubCmd, "Signs a block",
		"Signs a block with a key from a key store and prints the signed block", signBlockConf)

	checkBlockConf := &checkBlockConfig{}
	parser.AddCommand(checkBlockSubCmd, "Checks the signature of a block",
		"Checks the signature of a block", checkBlockConf)

	parser.SubcommandsOptional = true
	_, err := parser.Parse()

	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if cfg.ShowVersion {
		fmt.Println(appName, "version", version.Version())
		os.Exit(0)
	}
	if parser.Command.Active == nil {
		parser.WriteHelp(os.Stderr)
		printErrorAndExit(errors.New("a sub-command is required"))
	}

	var networkFlags *config.NetworkFlags
	switch parser.Command.Active.Name {
	case exportSubCmd:
		networkFlags, conf = &exportConf.NetworkFlags, exportConf
	case importSubCmd:
		networkFlags, conf = &importConf.NetworkFlags, importConf
	case decodeTxSubCmd:
		networkFlags, conf = &decodeTxConf.NetworkFlags, decodeTxConf
	case makeContractSubCmd:
		networkFlags, conf = &makeContractConf.NetworkFlags, makeContractConf
	case importKeySubCmd:
		networkFlags, conf = &importKeyConf.NetworkFlags, importKeyConf
	case signBlockSubCmd:
		networkFlags, conf = &signBlockConf.NetworkFlags, signBlockConf
	case checkBlockSubCmd:
		networkFlags, conf = &checkBlockConf.NetworkFlags, checkBlockConf
	}

	combineNetworkFlags(networkFlags, &cfg.NetworkFlags)
	err = networkFlags.ResolveNetwork(parser)
	if err != nil {
		printErrorAndExit(err)
	}

	return parser.Command.Active.Name, conf, &cfg.LogFlags
}

func combineNetworkFlags(dst, src *config.NetworkFlags) {
	dst.Testnet = dst.Testnet || src.Testnet
	dst.Regtest = dst.Regtest || src.Regtest
}
