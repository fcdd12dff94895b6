package tpos

import (
	"testing"

	"github.com/tposnet/tposd/chaincfg"
	"github.com/tposnet/tposd/keystore"
	"github.com/tposnet/tposd/wire"
)

func TestIsMerchantContract(t *testing.T) {
	t.Parallel()

	params := &chaincfg.MainnetParams
	merchantAddress, merchantKey := mustMerchantAddress(t, params)
	tposAddress := mustTPoSAddress(t, redeemScript, params)
	tx := mustContractTx(t, tposAddress, merchantAddress, collateralOutPoint(0), 20)

	keys := keystore.NewBasicKeyStore()
	if IsMerchantContract(keys, tx, params) {
		t.Errorf("merchant contract recognized without the merchant key")
	}
	keys.AddKey(keystore.NewKey(merchantKey, true))
	if !IsMerchantContract(keys, tx, params) {
		t.Errorf("merchant contract not recognized")
	}

	// A script hash merchant address has no key to hold.
	scriptMerchant := mustTPoSAddress(t, []byte{0x52}, params)
	if IsMerchantContract(keys, mustContractTx(t, tposAddress, scriptMerchant, collateralOutPoint(0), 20), params) {
		t.Errorf("script hash merchant address recognized as merchant")
	}

	notContract := contractTx(wire.NewTxOut(1, mustPayToAddr(t, merchantAddress)),
		wire.NewTxOut(1, mustPayToAddr(t, merchantAddress)))
	if IsMerchantContract(keys, notContract, params) {
		t.Errorf("transaction without contract recognized as merchant contract")
	}
}

func TestIsOwnerContract(t *testing.T) {
	t.Parallel()

	params := &chaincfg.MainnetParams
	merchantAddress, merchantKey := mustMerchantAddress(t, params)
	tposAddress := mustTPoSAddress(t, redeemScript, params)
	tx := mustContractTx(t, tposAddress, merchantAddress, collateralOutPoint(0), 20)

	store := keystore.NewBasicKeyStore()
	store.AddKey(keystore.NewKey(merchantKey, true))
	if IsOwnerContract(store, tx, params) {
		t.Errorf("owner contract recognized without the redeem script")
	}

	if _, err := store.AddScript([]byte{0x51}); err != nil {
		t.Fatalf("AddScript: %v", err)
	}
	if IsOwnerContract(store, tx, params) {
		t.Errorf("owner contract recognized with an unrelated script")
	}

	if _, err := store.AddScript(redeemScript); err != nil {
		t.Fatalf("AddScript: %v", err)
	}
	if !IsOwnerContract(store, tx, params) {
		t.Errorf("owner contract not recognized")
	}

	invalid := contractTx(tx.TxOut[0])
	if IsOwnerContract(store, invalid, params) {
		t.Errorf("transaction without metadata recognized as owner contract")
	}
}
