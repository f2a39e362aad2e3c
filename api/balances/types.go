// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package balances

import (
	"github.com/vechain/ledger/api/accounts"
	"github.com/vechain/ledger/thor"
)

// Transfer represents transfer and transfer-keep-alive body.
// From is the signer, already authorized by the caller of the api.
type Transfer struct {
	From   thor.Address `json:"from"`
	To     thor.Address `json:"to"`
	Amount thor.Balance `json:"amount"`
}

// ForceTransfer represents force-transfer body.
type ForceTransfer struct {
	Source thor.Address `json:"source"`
	Dest   thor.Address `json:"dest"`
	Amount thor.Balance `json:"amount"`
}

// SetBalance represents set-balance body.
type SetBalance struct {
	Who      thor.Address `json:"who"`
	Free     thor.Balance `json:"free"`
	Reserved thor.Balance `json:"reserved"`
}

// Receipt lists the accounts touched by an applied operation.
type Receipt struct {
	Accounts []*accounts.Account `json:"accounts"`
}
