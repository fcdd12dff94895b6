package main

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/tposnet/tposd/btcec"
	"github.com/tposnet/tposd/chaincfg"
	"github.com/tposnet/tposd/domain/tpos"
	"github.com/tposnet/tposd/infrastructure/config"
	"github.com/tposnet/tposd/txscript"
	"github.com/tposnet/tposd/util"
	"github.com/tposnet/tposd/util/chainhash"
	"github.com/tposnet/tposd/wire"
)

var testParams = &chaincfg.RegressionNetParams

func testNetwork() config.NetworkFlags {
	return config.NetworkFlags{Regtest: true, ActiveNetParams: testParams}
}

// testContract holds a serialized contract transaction and the values it
// was built from.
type testContract struct {
	txHex           string
	tposAddress     util.Address
	merchantAddress util.Address
	outPoint        wire.OutPoint
	commission      int
}

func newTestContract(t *testing.T) *testContract {
	privKey, err := btcec.NewPrivateKey()
	if err != nil {
		t.Fatalf("NewPrivateKey: %v", err)
	}
	merchantAddress, err := util.NewAddressPubKeyHash(
		util.Hash160(privKey.PubKey().SerializeCompressed()), testParams)
	if err != nil {
		t.Fatalf("NewAddressPubKeyHash: %v", err)
	}
	tposAddress, err := util.NewAddressScriptHash(
		[]byte{txscript.OP_1, txscript.OP_DROP, txscript.OP_1}, testParams)
	if err != nil {
		t.Fatalf("NewAddressScriptHash: %v", err)
	}
	tposScript, err := txscript.PayToAddrScript(tposAddress)
	if err != nil {
		t.Fatalf("PayToAddrScript: %v", err)
	}

	collateral := chainhash.DoubleHashH([]byte("collateral"))
	outPoint := *wire.NewOutPoint(&collateral, 1)
	const commission = 15
	outputs, err := tpos.ContractOutputs(tposScript, 500*util.SatoshiPerCoin,
		merchantAddress, outPoint, commission)
	if err != nil {
		t.Fatalf("ContractOutputs: %v", err)
	}

	funding := chainhash.DoubleHashH([]byte("funding"))
	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&funding, 0), nil))
	for _, output := range outputs {
		tx.AddTxOut(output)
	}

	return &testContract{
		txHex:           txHex(t, tx),
		tposAddress:     tposAddress,
		merchantAddress: merchantAddress,
		outPoint:        outPoint,
		commission:      commission,
	}
}

func txHex(t *testing.T, tx *wire.MsgTx) string {
	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	return hex.EncodeToString(buf.Bytes())
}

// coinbaseTxHex is a transaction with one input spending a null outpoint and
// no outputs.
const coinbaseTxHex = "01000000" + "01" +
	"0000000000000000000000000000000000000000000000000000000000000000" + "ffffffff" +
	"00" + "ffffffff" + "00" + "00000000"
