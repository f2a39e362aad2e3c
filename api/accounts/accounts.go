// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/ledger/api/utils"
	"github.com/vechain/ledger/balances"
)

type Accounts struct {
	ledger *balances.Balances
}

func New(ledger *balances.Balances) *Accounts {
	return &Accounts{
		ledger,
	}
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.ParseAddress(mux.Vars(req)["address"], "address")
	if err != nil {
		return err
	}
	acc, exists, err := a.ledger.Account(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, ConvertAccount(addr, acc, exists))
}

func (a *Accounts) handleGetIssuance(w http.ResponseWriter, _ *http.Request) error {
	iss, err := a.ledger.TotalIssuance()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Issuance{
		TotalIssuance:      iss,
		ExistentialDeposit: a.ledger.ExistentialDeposit(),
	})
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/issuance").
		Methods(http.MethodGet).
		Name("accounts_get_issuance").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetIssuance))
	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("accounts_get_account").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
}
