// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package balances

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/ledger/state"
	"github.com/vechain/ledger/thor"
)

type randomOp struct {
	Kind     uint8
	From     uint8
	To       uint8
	Amount   uint16
	Reserved uint16
}

type snapshot struct {
	accounts map[thor.Address]state.Account
	issuance thor.Balance
}

func takeSnapshot(t *testing.T, b *Balances) snapshot {
	snap := snapshot{accounts: make(map[thor.Address]state.Account)}
	require.NoError(t, b.ForEach(func(addr thor.Address, acc state.Account) bool {
		snap.accounts[addr] = acc
		return true
	}))
	snap.issuance = issuance(t, b)
	return snap
}

func TestRandomOperations(t *testing.T) {
	const ed = 100

	accounts := make([]thor.Address, 6)
	for i := range accounts {
		accounts[i] = ScenarioAccount("fuzz", uint32(i), 0)
	}

	for seed := int64(1); seed <= 8; seed++ {
		b, _ := newTestLedger(t, ed)
		f := fuzz.NewWithSeed(seed).NilChance(0)

		for step := range 300 {
			var op randomOp
			f.Fuzz(&op)

			from := accounts[int(op.From)%len(accounts)]
			to := accounts[int(op.To)%len(accounts)]
			amount := thor.NewBalance(uint64(op.Amount))

			before := takeSnapshot(t, b)
			var err error
			switch op.Kind % 7 {
			case 0:
				err = b.Transfer(Signed(from), to, amount)
			case 1:
				err = b.TransferKeepAlive(Signed(from), to, amount)
			case 2:
				err = b.ForceTransfer(Root(), from, to, amount)
			case 3:
				err = b.SetBalance(Root(), to, amount, thor.NewBalance(uint64(op.Reserved)))
			case 4:
				err = b.Reserve(from, amount)
			case 5:
				_, err = b.Unreserve(from, amount)
			case 6:
				if step%10 == 0 {
					err = b.Commit()
				}
			}
			after := takeSnapshot(t, b)

			if err != nil {
				cause := errors.Cause(err)
				assert.Contains(t, []error{ErrInsufficientBalance, ErrKeepAlive, ErrExistentialDeposit, ErrOverflow}, cause)
				assert.Equal(t, before, after, "failed operation changed the state")
			}

			if op.Kind%7 == 1 && err == nil && from != to && !amount.IsZero() {
				_, ok := after.accounts[from]
				assert.True(t, ok, "keep alive transfer reaped the sender")
			}

			var sum thor.Balance
			for addr, acc := range after.accounts {
				assert.False(t, acc.Total().Lt(thor.NewBalance(ed)), "account %v below existential deposit", addr)
				sum = sum.SaturatingAdd(acc.Total())
			}
			assert.Equal(t, sum, after.issuance)
		}
	}
}
