// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"github.com/pkg/errors"

	"github.com/vechain/ledger/balances"
	"github.com/vechain/ledger/thor"
)

type RangeType string

const (
	Seq  RangeType = "seq"
	Time RangeType = "time"
)

type OrderType string

const (
	ASC  OrderType = "asc"
	DESC OrderType = "desc"
)

type Range struct {
	Unit RangeType `json:"unit"`
	From uint64    `json:"from"`
	To   uint64    `json:"to"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// Filter narrows down stored events. Nil fields match everything.
type Filter struct {
	Account *thor.Address `json:"account"` // matches either side of a transfer
	Names   []string      `json:"names"`
	Range   *Range        `json:"range"`
	Options *Options      `json:"options"`
	Order   OrderType     `json:"order"` // default asc
}

// Event is the stored form of a ledger event.
type Event struct {
	Seq          uint64       `json:"seq"`   // sequence number of the operation
	Index        uint32       `json:"index"` // index within the operation
	Time         uint64       `json:"time"`  // unix seconds
	Name         string       `json:"name"`
	Account      thor.Address `json:"account"` // sender, or the subject account
	Counterparty thor.Address `json:"counterparty"`
	Amount       thor.Balance `json:"amount"` // transfer amount, endowment, dust, (un)reserved amount or set free balance
	Reserved     thor.Balance `json:"reserved"`
}

// NewEvent flattens a ledger event into its stored form.
func NewEvent(seq uint64, index uint32, time uint64, ev balances.Event) (*Event, error) {
	e := &Event{
		Seq:   seq,
		Index: index,
		Time:  time,
		Name:  ev.Name(),
	}
	switch ev := ev.(type) {
	case *balances.TransferEvent:
		e.Account, e.Counterparty, e.Amount = ev.From, ev.To, ev.Amount
	case *balances.EndowedEvent:
		e.Account, e.Amount = ev.Account, ev.Free
	case *balances.ReapedEvent:
		e.Account, e.Amount = ev.Account, ev.Dust
	case *balances.BalanceSetEvent:
		e.Account, e.Amount, e.Reserved = ev.Who, ev.Free, ev.Reserved
	case *balances.ReservedEvent:
		e.Account, e.Amount = ev.Who, ev.Amount
	case *balances.UnreservedEvent:
		e.Account, e.Amount = ev.Who, ev.Amount
	default:
		return nil, errors.Errorf("unsupported event %T", ev)
	}
	return e, nil
}
