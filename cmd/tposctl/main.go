package main

import (
	"os"

	"github.com/pkg/errors"

	"github.com/tposnet/tposd/infrastructure/logger"
)

func main() {
	subCmd, conf, logFlags := parseCommandLine()

	err := logFlags.InitLogs()
	if err != nil {
		printErrorAndExit(err)
	}

	switch subCmd {
	case exportSubCmd:
		err = export(conf.(*exportConfig), os.Stdin, os.Stdout)
	case importSubCmd:
		err = importContract(conf.(*importConfig), os.Stdin, os.Stdout)
	case decodeTxSubCmd:
		err = decodeTx(conf.(*decodeTxConfig), os.Stdout)
	case makeContractSubCmd:
		err = makeContract(conf.(*makeContractConfig), os.Stdout)
	case importKeySubCmd:
		err = importKey(conf.(*importKeyConfig), os.Stdin, os.Stdout)
	case signBlockSubCmd:
		err = signBlock(conf.(*signBlockConfig), os.Stdout)
	case checkBlockSubCmd:
		err = checkBlock(conf.(*checkBlockConfig), os.Stdout)
	default:
		err = errors.Errorf("Unknown sub-command '%s'\n", subCmd)
	}

	logger.BackendLog.Close()
	if err != nil {
		printErrorAndExit(err)
	}
}
