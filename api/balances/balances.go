// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package balances serves the ledger operations over http.
//
// The api acts as the trusted host of the ledger: the From of a transfer is taken
// as the signed origin without further proof, so authentication of callers belongs
// in front of it. Root operations are additionally gated by the api-allow-root flag.
package balances

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/ledger/api/accounts"
	"github.com/vechain/ledger/api/utils"
	"github.com/vechain/ledger/balances"
	"github.com/vechain/ledger/thor"
)

var errRootDisabled = errors.New("root operations are disabled")

type Balances struct {
	ledger    *balances.Balances
	allowRoot bool
}

// New creates the balances api. Root operations are refused unless allowRoot is set.
func New(ledger *balances.Balances, allowRoot bool) *Balances {
	return &Balances{
		ledger,
		allowRoot,
	}
}

// convertError maps ledger errors to http errors.
func convertError(err error) error {
	switch {
	case errors.Is(err, balances.ErrInsufficientBalance),
		errors.Is(err, balances.ErrKeepAlive),
		errors.Is(err, balances.ErrExistentialDeposit),
		errors.Is(err, balances.ErrOverflow):
		return utils.Rejected(err)
	case errors.Is(err, balances.ErrBadOrigin):
		return utils.Forbidden(err)
	}
	return err
}

// apply runs op, persists its effects and responds the touched accounts.
func (b *Balances) apply(w http.ResponseWriter, op func() error, touched ...thor.Address) error {
	if err := op(); err != nil {
		return convertError(err)
	}
	if err := b.ledger.Commit(); err != nil {
		return err
	}

	receipt := &Receipt{Accounts: make([]*accounts.Account, 0, len(touched))}
	for _, addr := range touched {
		acc, exists, err := b.ledger.Account(addr)
		if err != nil {
			return err
		}
		receipt.Accounts = append(receipt.Accounts, accounts.ConvertAccount(addr, acc, exists))
	}
	return utils.WriteJSON(w, receipt)
}

func (b *Balances) handleTransfer(w http.ResponseWriter, req *http.Request) error {
	var body Transfer
	if err := utils.ParseBody(req.Body, &body); err != nil {
		return err
	}
	return b.apply(w, func() error {
		return b.ledger.Transfer(balances.Signed(body.From), body.To, body.Amount)
	}, body.From, body.To)
}

func (b *Balances) handleTransferKeepAlive(w http.ResponseWriter, req *http.Request) error {
	var body Transfer
	if err := utils.ParseBody(req.Body, &body); err != nil {
		return err
	}
	return b.apply(w, func() error {
		return b.ledger.TransferKeepAlive(balances.Signed(body.From), body.To, body.Amount)
	}, body.From, body.To)
}

func (b *Balances) handleForceTransfer(w http.ResponseWriter, req *http.Request) error {
	if !b.allowRoot {
		return utils.Forbidden(errRootDisabled)
	}
	var body ForceTransfer
	if err := utils.ParseBody(req.Body, &body); err != nil {
		return err
	}
	return b.apply(w, func() error {
		return b.ledger.ForceTransfer(balances.Root(), body.Source, body.Dest, body.Amount)
	}, body.Source, body.Dest)
}

func (b *Balances) handleSetBalance(w http.ResponseWriter, req *http.Request) error {
	if !b.allowRoot {
		return utils.Forbidden(errRootDisabled)
	}
	var body SetBalance
	if err := utils.ParseBody(req.Body, &body); err != nil {
		return err
	}
	return b.apply(w, func() error {
		return b.ledger.SetBalance(balances.Root(), body.Who, body.Free, body.Reserved)
	}, body.Who)
}

func (b *Balances) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/transfer").
		Methods(http.MethodPost).
		Name("balances_transfer").
		HandlerFunc(utils.WrapHandlerFunc(b.handleTransfer))
	sub.Path("/transfer-keep-alive").
		Methods(http.MethodPost).
		Name("balances_transfer_keep_alive").
		HandlerFunc(utils.WrapHandlerFunc(b.handleTransferKeepAlive))
	sub.Path("/force-transfer").
		Methods(http.MethodPost).
		Name("balances_force_transfer").
		HandlerFunc(utils.WrapHandlerFunc(b.handleForceTransfer))
	sub.Path("/set-balance").
		Methods(http.MethodPost).
		Name("balances_set_balance").
		HandlerFunc(utils.WrapHandlerFunc(b.handleSetBalance))
}
