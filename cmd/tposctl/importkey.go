package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/tposnet/tposd/infrastructure/db/ldbkeystore"
	"github.com/tposnet/tposd/keystore"
	"github.com/tposnet/tposd/util"
)

func importKey(conf *importKeyConfig, in io.Reader, out io.Writer) error {
	params := conf.NetParams()

	encodedWIF := conf.WIF
	if encodedWIF == "" {
		var err error
		encodedWIF, err = readWIF(in)
		if err != nil {
			return err
		}
	}

	wif, err := util.DecodeWIF(encodedWIF)
	if err != nil {
		return err
	}
	if !wif.IsForNet(params) {
		return errors.Errorf("The private key is not for %s", params.Name)
	}

	store, err := ldbkeystore.Open(conf.KeyStore)
	if err != nil {
		return err
	}
	defer store.Close()

	keyID, err := store.AddKey(keystore.NewKey(wif.PrivKey, wif.CompressPubKey))
	if err != nil {
		return err
	}
	address, err := util.NewAddressPubKeyHash(keyID[:], params)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Imported key %x\n", keyID)
	fmt.Fprintf(out, "Address: %s\n", address.EncodeAddress())
	return nil
}

// readWIF reads a private key from in. A terminal on stdin is prompted
// without echo, anything else is read up to the first newline.
func readWIF(in io.Reader) (string, error) {
	if in == os.Stdin && term.IsTerminal(int(syscall.Stdin)) {
		return readWIFFromTerminal()
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", errors.Wrap(err, "Could not read the private key")
	}
	wif := strings.TrimSpace(line)
	if wif == "" {
		return "", errors.New("No private key was given")
	}
	return wif, nil
}

func readWIFFromTerminal() (string, error) {
	initialTermState, err := term.GetState(int(syscall.Stdin))
	if err != nil {
		return "", errors.WithStack(err)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)
	go func() {
		<-interrupt
		_ = term.Restore(int(syscall.Stdin), initialTermState)
		os.Exit(1)
	}()

	fmt.Fprint(os.Stderr, "Private key (WIF): ")
	wif, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", errors.Wrap(err, "Could not read the private key")
	}
	if len(wif) == 0 {
		return "", errors.New("No private key was given")
	}
	return strings.TrimSpace(string(wif)), nil
}
