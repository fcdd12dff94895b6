package tpos

import (
	"testing"

	"github.com/tposnet/tposd/chaincfg"
	"github.com/tposnet/tposd/txscript"
	"github.com/tposnet/tposd/util"
	"github.com/tposnet/tposd/util/chainhash"
	"github.com/tposnet/tposd/wire"
)

// coinstakeTx returns a coinstake whose outputs after the empty marker and
// the stake output pay payouts.
func coinstakeTx(t *testing.T, payouts ...*wire.TxOut) *wire.MsgTx {
	prevHash := chainhash.DoubleHashH([]byte("stake"))
	staker, _ := mustMerchantAddress(t, &chaincfg.MainnetParams)

	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&prevHash, 1), nil))
	tx.AddTxOut(wire.NewTxOut(0, nil))
	tx.AddTxOut(wire.NewTxOut(9000, mustPayToAddr(t, staker)))
	for _, payout := range payouts {
		tx.AddTxOut(payout)
	}
	return tx
}

func TestGetPayments(t *testing.T) {
	t.Parallel()

	params := &chaincfg.MainnetParams
	merchantAddress, _ := mustMerchantAddress(t, params)
	ownerTPoS := mustTPoSAddress(t, redeemScript, params)
	merchantTPoS := mustTPoSAddress(t, []byte{txscript.OP_2}, params)
	unknownTPoS := mustTPoSAddress(t, []byte{txscript.OP_3}, params)

	contracts := NewContractMaps()
	contracts.AddOwnerContract(NewContract(
		mustContractTx(t, ownerTPoS, merchantAddress, collateralOutPoint(0), 10),
		collateralOutPoint(0), merchantAddress, ownerTPoS, 90))
	contracts.AddMerchantContract(NewContract(
		mustContractTx(t, merchantTPoS, merchantAddress, collateralOutPoint(1), 10),
		collateralOutPoint(1), merchantAddress, merchantTPoS, 90))

	toOwner := wire.NewTxOut(700, mustPayToAddr(t, ownerTPoS))
	toMerchantContract := wire.NewTxOut(800, mustPayToAddr(t, merchantTPoS))
	toUnknown := wire.NewTxOut(600, mustPayToAddr(t, unknownTPoS))
	toMerchant := wire.NewTxOut(50, mustPayToAddr(t, merchantAddress))
	nonStandard := wire.NewTxOut(40, []byte{txscript.OP_1})

	const netCredit = util.Amount(125)

	tests := []struct {
		name    string
		tx      *wire.MsgTx
		wantOK  bool
		stake   util.Amount
		address util.Address
	}{
		{"owner contract at index 2", coinstakeTx(t, toOwner, toMerchant),
			true, 700, ownerTPoS},
		{"merchant contract at index 3", coinstakeTx(t, toUnknown, toMerchantContract),
			true, 800, merchantTPoS},
		{"index 2 wins over index 3", coinstakeTx(t, toMerchantContract, toOwner),
			true, 800, merchantTPoS},
		{"non-standard output skipped", coinstakeTx(t, nonStandard, toOwner),
			true, 700, ownerTPoS},
		{"no known contract", coinstakeTx(t, toUnknown, toMerchant), false, 0, nil},
		{"match beyond index 3", coinstakeTx(t, toUnknown, toMerchant, toOwner), false, 0, nil},
		{"no payouts", coinstakeTx(t), false, 0, nil},
		{"not a coinstake", contractTx(wire.NewTxOut(1, nil), wire.NewTxOut(1, nil), toOwner),
			false, 0, nil},
	}

	for _, test := range tests {
		payments, ok := GetPayments(contracts, test.tx, netCredit)
		if ok != test.wantOK {
			t.Errorf("%s: got ok %t, want %t", test.name, ok, test.wantOK)
			continue
		}
		if !ok {
			if payments != nil {
				t.Errorf("%s: got payments on failure", test.name)
			}
			continue
		}
		if payments.StakeAmount != test.stake {
			t.Errorf("%s: got stake %d, want %d", test.name, payments.StakeAmount, test.stake)
		}
		if payments.CommissionAmount != netCredit {
			t.Errorf("%s: got commission %d, want %d", test.name, payments.CommissionAmount, netCredit)
		}
		if payments.TPoSAddress.EncodeAddress() != test.address.EncodeAddress() {
			t.Errorf("%s: got address %s, want %s", test.name, payments.TPoSAddress, test.address)
		}
	}

	if _, ok := GetPayments(NewContractMaps(), coinstakeTx(t, toOwner), netCredit); ok {
		t.Errorf("found payments without known contracts")
	}
}
