// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"github.com/vechain/ledger/state"
	"github.com/vechain/ledger/thor"
)

// Account for marshal account
type Account struct {
	Address  thor.Address `json:"address"`
	Free     thor.Balance `json:"free"`
	Reserved thor.Balance `json:"reserved"`
	Exists   bool         `json:"exists"`
}

// Issuance for marshal ledger totals
type Issuance struct {
	TotalIssuance      thor.Balance `json:"totalIssuance"`
	ExistentialDeposit thor.Balance `json:"existentialDeposit"`
}

// ConvertAccount converts a state account record.
func ConvertAccount(addr thor.Address, acc state.Account, exists bool) *Account {
	return &Account{
		Address:  addr,
		Free:     acc.Free,
		Reserved: acc.Reserved,
		Exists:   exists,
	}
}
