package tpos

import (
	"github.com/tposnet/tposd/txscript"
	"github.com/tposnet/tposd/util"
	"github.com/tposnet/tposd/wire"
)

// Coinstake outputs below this index belong to the staking protocol itself.
// The owner's share is paid by one of the next two outputs.
const (
	firstPaymentIndex = 2
	lastPaymentIndex  = 3
)

// Payments is the split of a delegated stake reward.
type Payments struct {
	// StakeAmount is the value paid to the delegation address.
	StakeAmount util.Amount

	// CommissionAmount is the wallet's net credit from the coinstake.
	CommissionAmount util.Amount

	// TPoSAddress is the delegation address of the matching contract.
	TPoSAddress util.Address
}

// GetPayments splits the reward of coinstake tx for a wallet whose net
// credit from tx is netCredit. Outputs 2 and 3 are checked in that order
// against the delegation addresses of every contract in contracts, and the
// first match is used. It returns false when tx is not a coinstake or
// neither output pays a known delegation address.
func GetPayments(contracts Registry, tx *wire.MsgTx, netCredit util.Amount) (*Payments, bool) {
	if !tx.IsCoinStake() {
		return nil, false
	}

	known := append(contracts.OwnerContracts(), contracts.MerchantContracts()...)

	for i := firstPaymentIndex; i <= lastPaymentIndex && i < len(tx.TxOut); i++ {
		dest, ok := txscript.ExtractDestination(tx.TxOut[i].PkScript)
		if !ok {
			continue
		}
		contract := findByDestination(known, dest)
		if contract == nil {
			continue
		}

		log.Tracef("Coinstake %s pays contract %s with output %d", tx.TxHash(), contract.TPoSAddress, i)
		return &Payments{
			StakeAmount:      util.Amount(tx.TxOut[i].Value),
			CommissionAmount: netCredit,
			TPoSAddress:      contract.TPoSAddress,
		}, true
	}

	return nil, false
}

func findByDestination(contracts []*Contract, dest util.Destination) *Contract {
	for _, contract := range contracts {
		if contract.TPoSAddress != nil && contract.TPoSAddress.Destination() == dest {
			return contract
		}
	}
	return nil
}
