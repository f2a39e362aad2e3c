// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package balances

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/vechain/ledger/thor"
)

// Scenario prepares a single operation under best or worst case conditions.
type Scenario struct {
	Name string
	// Setup funds the accounts involved. seed keeps accounts of different runs apart.
	Setup func(b *Balances, seed uint32) (*Case, error)
}

// Case is a prepared scenario.
type Case struct {
	Run    func() error
	Verify func() error
}

// ScenarioAccount derives a deterministic account address.
func ScenarioAccount(name string, index, seed uint32) thor.Address {
	var buf [8]byte
	binary.BigEndian.PutUint32(buf[:], index)
	binary.BigEndian.PutUint32(buf[4:], seed)
	return thor.BytesToAddress(append([]byte(name), buf[:]...))
}

// Scenarios returns the operation scenarios exercised by benchmarks.
func Scenarios() []Scenario {
	return []Scenario{
		{"transfer", setupTransfer},
		{"transfer_best_case", setupTransferBestCase},
		{"transfer_keep_alive", setupTransferKeepAlive},
		{"set_balance_creating", setupSetBalanceCreating},
		{"set_balance_killing", setupSetBalanceKilling},
		{"force_transfer", setupForceTransfer},
	}
}

// makeFreeBalanceBe sets the free balance, keeping the reserved one.
func (b *Balances) makeFreeBalanceBe(who thor.Address, free thor.Balance) error {
	reserved, err := b.ReservedBalance(who)
	if err != nil {
		return err
	}
	return b.SetBalance(Root(), who, free, reserved)
}

// richBalance funds a caller far above any amount a scenario moves,
// leaving room in the issuance for every run.
func richBalance(b *Balances) thor.Balance {
	return b.ExistentialDeposit().SaturatingMul(thor.ExistentialDepositMultiplier).SaturatingMul(thor.NewBalance(1 << 40))
}

func expectFree(b *Balances, who thor.Address, want thor.Balance) error {
	got, err := b.FreeBalance(who)
	if err != nil {
		return err
	}
	if got != want {
		return errors.Errorf("free balance of %v: want %v, got %v", who, want, got)
	}
	return nil
}

func expectNonZeroFree(b *Balances, who thor.Address) error {
	got, err := b.FreeBalance(who)
	if err != nil {
		return err
	}
	if got.IsZero() {
		return errors.Errorf("free balance of %v: want non-zero", who)
	}
	return nil
}

// the transfer kills the sender and creates the recipient
func setupTransfer(b *Balances, seed uint32) (*Case, error) {
	ed := b.ExistentialDeposit()
	caller := ScenarioAccount("caller", 0, seed)
	recipient := ScenarioAccount("recipient", 0, seed)

	if err := b.makeFreeBalanceBe(caller, ed.SaturatingMul(thor.ExistentialDepositMultiplier)); err != nil {
		return nil, err
	}
	multiplier, _ := thor.ExistentialDepositMultiplier.CheckedSub(thor.NewBalance(1))
	amount := ed.SaturatingMul(multiplier).SaturatingAdd(thor.NewBalance(1))

	return &Case{
		Run: func() error { return b.Transfer(Signed(caller), recipient, amount) },
		Verify: func() error {
			if err := expectFree(b, caller, thor.Balance{}); err != nil {
				return err
			}
			return expectFree(b, recipient, amount)
		},
	}, nil
}

// both accounts exist before and after the transfer
func setupTransferBestCase(b *Balances, seed uint32) (*Case, error) {
	ed := b.ExistentialDeposit()
	caller := ScenarioAccount("caller", 0, seed)
	recipient := ScenarioAccount("recipient", 0, seed)

	if err := b.makeFreeBalanceBe(caller, richBalance(b)); err != nil {
		return nil, err
	}
	if err := b.makeFreeBalanceBe(recipient, ed); err != nil {
		return nil, err
	}
	amount := ed.SaturatingMul(thor.ExistentialDepositMultiplier)

	return &Case{
		Run: func() error { return b.Transfer(Signed(caller), recipient, amount) },
		Verify: func() error {
			if err := expectNonZeroFree(b, caller); err != nil {
				return err
			}
			return expectNonZeroFree(b, recipient)
		},
	}, nil
}

// the recipient is created
func setupTransferKeepAlive(b *Balances, seed uint32) (*Case, error) {
	caller := ScenarioAccount("caller", 0, seed)
	recipient := ScenarioAccount("recipient", 0, seed)

	if err := b.makeFreeBalanceBe(caller, richBalance(b)); err != nil {
		return nil, err
	}
	amount := b.ExistentialDeposit().SaturatingMul(thor.ExistentialDepositMultiplier)

	return &Case{
		Run: func() error { return b.TransferKeepAlive(Signed(caller), recipient, amount) },
		Verify: func() error {
			if err := expectNonZeroFree(b, caller); err != nil {
				return err
			}
			return expectFree(b, recipient, amount)
		},
	}, nil
}

func setupSetBalanceCreating(b *Balances, seed uint32) (*Case, error) {
	user := ScenarioAccount("user", 0, seed)
	amount := b.ExistentialDeposit().SaturatingMul(thor.ExistentialDepositMultiplier)
	if err := b.makeFreeBalanceBe(user, amount); err != nil {
		return nil, err
	}

	return &Case{
		Run: func() error { return b.SetBalance(Root(), user, amount, amount) },
		Verify: func() error {
			if err := expectFree(b, user, amount); err != nil {
				return err
			}
			reserved, err := b.ReservedBalance(user)
			if err != nil {
				return err
			}
			if reserved != amount {
				return errors.Errorf("reserved balance of %v: want %v, got %v", user, amount, reserved)
			}
			return nil
		},
	}, nil
}

func setupSetBalanceKilling(b *Balances, seed uint32) (*Case, error) {
	user := ScenarioAccount("user", 0, seed)
	amount := b.ExistentialDeposit().SaturatingMul(thor.ExistentialDepositMultiplier)
	if err := b.makeFreeBalanceBe(user, amount); err != nil {
		return nil, err
	}

	return &Case{
		Run:    func() error { return b.SetBalance(Root(), user, thor.Balance{}, thor.Balance{}) },
		Verify: func() error { return expectFree(b, user, thor.Balance{}) },
	}, nil
}

// the transfer kills the source and creates the recipient
func setupForceTransfer(b *Balances, seed uint32) (*Case, error) {
	ed := b.ExistentialDeposit()
	source := ScenarioAccount("source", 0, seed)
	recipient := ScenarioAccount("recipient", 0, seed)

	if err := b.makeFreeBalanceBe(source, ed.SaturatingMul(thor.ExistentialDepositMultiplier)); err != nil {
		return nil, err
	}
	multiplier, _ := thor.ExistentialDepositMultiplier.CheckedSub(thor.NewBalance(1))
	amount := ed.SaturatingMul(multiplier).SaturatingAdd(thor.NewBalance(1))

	return &Case{
		Run: func() error { return b.ForceTransfer(Root(), source, recipient, amount) },
		Verify: func() error {
			if err := expectFree(b, source, thor.Balance{}); err != nil {
				return err
			}
			return expectFree(b, recipient, amount)
		},
	}, nil
}
