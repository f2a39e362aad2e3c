// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package balances

import "github.com/pkg/errors"

var (
	// ErrInsufficientBalance is returned when a debit exceeds the free balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrKeepAlive is returned when an operation would reap an account required to stay alive.
	ErrKeepAlive = errors.New("transfer would kill account")
	// ErrExistentialDeposit is returned when a new account would be created below the existential deposit.
	ErrExistentialDeposit = errors.New("value too low to create account")
	// ErrOverflow is returned when a credit exceeds the maximum balance.
	ErrOverflow = errors.New("balance overflow")
	// ErrBadOrigin is returned when the origin is not allowed to call the operation.
	ErrBadOrigin = errors.New("bad origin")
)
