// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package balances

import (
	"github.com/vechain/ledger/state"
	"github.com/vechain/ledger/thor"
)

// Outcome is the existence decision on an account record.
type Outcome int

const (
	// Keep means the record stays stored.
	Keep Outcome = iota
	// Reap means the record is removed and its balance destroyed.
	Reap
)

func (o Outcome) String() string {
	if o == Reap {
		return "reap"
	}
	return "keep"
}

// Decision is the result of Evaluate.
type Decision struct {
	Outcome Outcome
	Dust    thor.Balance // balance destroyed by reaping, free and reserved together
}

// Evaluate decides whether the account record survives a mutation.
// A record whose free plus reserved balance is below the existential deposit
// is reaped, and both its free and reserved balance are destroyed.
func Evaluate(acc state.Account, existentialDeposit thor.Balance) Decision {
	total := acc.Total()
	if total.Lt(existentialDeposit) {
		return Decision{Outcome: Reap, Dust: total}
	}
	return Decision{Outcome: Keep}
}
