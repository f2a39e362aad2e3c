// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

// Ledger parameters.
var (
	// DefaultExistentialDeposit is the existential deposit of the dev network.
	DefaultExistentialDeposit = NewBalance(500)

	// ExistentialDepositMultiplier scales the existential deposit into the
	// balances used by benchmark and dev fixtures.
	ExistentialDepositMultiplier = NewBalance(10)
)
