// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package balances

import (
	"github.com/vechain/ledger/thor"
)

// Event names.
const (
	EventTransfer   = "Transfer"
	EventEndowed    = "Endowed"
	EventReaped     = "Reaped"
	EventBalanceSet = "BalanceSet"
	EventReserved   = "Reserved"
	EventUnreserved = "Unreserved"
)

// Event is emitted by a successful operation.
type Event interface {
	Name() string
}

// TransferEvent is emitted when value moves between two accounts.
type TransferEvent struct {
	From   thor.Address
	To     thor.Address
	Amount thor.Balance
}

// EndowedEvent is emitted when an account is created.
type EndowedEvent struct {
	Account thor.Address
	Free    thor.Balance
}

// ReapedEvent is emitted when an account is removed. Dust is the destroyed balance.
type ReapedEvent struct {
	Account thor.Address
	Dust    thor.Balance
}

// BalanceSetEvent is emitted by SetBalance with the resulting balances.
type BalanceSetEvent struct {
	Who      thor.Address
	Free     thor.Balance
	Reserved thor.Balance
}

// ReservedEvent is emitted when free balance is moved to reserved.
type ReservedEvent struct {
	Who    thor.Address
	Amount thor.Balance
}

// UnreservedEvent is emitted when reserved balance is moved back to free.
type UnreservedEvent struct {
	Who    thor.Address
	Amount thor.Balance
}

func (*TransferEvent) Name() string   { return EventTransfer }
func (*EndowedEvent) Name() string    { return EventEndowed }
func (*ReapedEvent) Name() string     { return EventReaped }
func (*BalanceSetEvent) Name() string { return EventBalanceSet }
func (*ReservedEvent) Name() string   { return EventReserved }
func (*UnreservedEvent) Name() string { return EventUnreserved }

// EventSink receives the events of each successful operation, in emission order.
type EventSink interface {
	Handle(events []Event) error
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(events []Event) error

func (f EventSinkFunc) Handle(events []Event) error { return f(events) }
