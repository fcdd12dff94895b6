package tpos

import (
	"sync"
)

// Registry exposes the contracts a wallet knows about, by the role the
// wallet plays in them.
type Registry interface {
	OwnerContracts() []*Contract
	MerchantContracts() []*Contract
}

// ContractMaps is a Registry keeping owner and merchant contracts keyed by
// their delegation address. Adding a contract for an address already
// present replaces it.
type ContractMaps struct {
	mtx      sync.RWMutex
	owner    map[string]*Contract
	merchant map[string]*Contract
}

// NewContractMaps returns an empty ContractMaps.
func NewContractMaps() *ContractMaps {
	return &ContractMaps{
		owner:    make(map[string]*Contract),
		merchant: make(map[string]*Contract),
	}
}

// AddOwnerContract records a contract in which the wallet is the owner.
func (m *ContractMaps) AddOwnerContract(contract *Contract) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.owner[contract.TPoSAddress.EncodeAddress()] = contract
}

// AddMerchantContract records a contract in which the wallet is the
// merchant.
func (m *ContractMaps) AddMerchantContract(contract *Contract) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.merchant[contract.TPoSAddress.EncodeAddress()] = contract
}

// OwnerContracts returns the owner contracts in no particular order.
func (m *ContractMaps) OwnerContracts() []*Contract {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return contractValues(m.owner)
}

// MerchantContracts returns the merchant contracts in no particular order.
func (m *ContractMaps) MerchantContracts() []*Contract {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return contractValues(m.merchant)
}

func contractValues(contracts map[string]*Contract) []*Contract {
	values := make([]*Contract, 0, len(contracts))
	for _, contract := range contracts {
		values = append(values, contract)
	}
	return values
}
