package tpos

import (
	"github.com/tposnet/tposd/chaincfg"
	"github.com/tposnet/tposd/keystore"
	"github.com/tposnet/tposd/util"
	"github.com/tposnet/tposd/wire"
)

// IsMerchantContract returns whether tx carries a valid contract whose
// merchant address is a key hash with its private key in keys.
func IsMerchantContract(keys keystore.KeyStore, tx *wire.MsgTx, params *chaincfg.Params) bool {
	contract, ok := DecodeContract(tx, params)
	if !ok || !contract.IsValid() {
		return false
	}

	keyID, ok := contract.MerchantAddress.Destination().KeyID()
	return ok && keys.HaveKey(keyID)
}

// IsOwnerContract returns whether tx carries a valid contract whose
// delegation address is a script hash with its redeem script in scripts.
func IsOwnerContract(scripts keystore.ScriptStore, tx *wire.MsgTx, params *chaincfg.Params) bool {
	contract, ok := DecodeContract(tx, params)
	if !ok || !contract.IsValid() {
		return false
	}

	dest := contract.TPoSAddress.Destination()
	switch dest.Kind {
	case util.DestinationScriptHash:
		scriptID, _ := dest.ScriptID()
		return scripts.HaveScript(scriptID)
	case util.DestinationKeyHash, util.DestinationNone:
		return false
	default:
		return false
	}
}
