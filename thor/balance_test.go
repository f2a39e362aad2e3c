// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBalanceChecked(t *testing.T) {
	one := NewBalance(1)
	ten := NewBalance(10)

	tests := []struct {
		name string
		fn   func() (Balance, bool)
		want Balance
		ok   bool
	}{
		{"add", func() (Balance, bool) { return ten.CheckedAdd(one) }, NewBalance(11), true},
		{"add overflow", func() (Balance, bool) { return MaxBalance.CheckedAdd(one) }, Balance{}, false},
		{"sub", func() (Balance, bool) { return ten.CheckedSub(one) }, NewBalance(9), true},
		{"sub to zero", func() (Balance, bool) { return ten.CheckedSub(ten) }, Balance{}, true},
		{"sub underflow", func() (Balance, bool) { return one.CheckedSub(ten) }, Balance{}, false},
		{"mul", func() (Balance, bool) { return ten.CheckedMul(ten) }, NewBalance(100), true},
		{"mul overflow", func() (Balance, bool) { return MaxBalance.CheckedMul(ten) }, Balance{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.fn()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBalanceSaturating(t *testing.T) {
	one := NewBalance(1)
	ten := NewBalance(10)

	assert.Equal(t, MaxBalance, MaxBalance.SaturatingAdd(one))
	assert.Equal(t, Balance{}, one.SaturatingSub(ten))
	assert.Equal(t, MaxBalance, MaxBalance.SaturatingMul(ten))
	assert.Equal(t, NewBalance(11), ten.SaturatingAdd(one))
	assert.Equal(t, NewBalance(5000), DefaultExistentialDeposit.SaturatingMul(ExistentialDepositMultiplier))
}

func TestBalanceCompare(t *testing.T) {
	assert.True(t, NewBalance(1).Lt(NewBalance(2)))
	assert.False(t, NewBalance(2).Lt(NewBalance(2)))
	assert.Equal(t, 0, NewBalance(2).Cmp(NewBalance(2)))
	assert.Equal(t, 1, MaxBalance.Cmp(NewBalance(2)))
	assert.True(t, Balance{}.IsZero())
	assert.Equal(t, NewBalance(3), NewBalance(3).Min(NewBalance(7)))
}

func TestParseBalance(t *testing.T) {
	b, err := ParseBalance("1000")
	require.NoError(t, err)
	assert.Equal(t, NewBalance(1000), b)

	b, err = ParseBalance("0x10")
	require.NoError(t, err)
	assert.Equal(t, NewBalance(16), b)

	_, err = ParseBalance("-1")
	assert.Error(t, err)

	_, err = ParseBalance("")
	assert.Error(t, err)

	maxBig := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	b, err = ParseBalance(maxBig.String())
	require.NoError(t, err)
	assert.Equal(t, MaxBalance, b)
	assert.Equal(t, maxBig, b.Big())

	_, ok := BalanceFromBig(new(big.Int).Add(maxBig, big.NewInt(1)))
	assert.False(t, ok)
	_, ok = BalanceFromBig(big.NewInt(-1))
	assert.False(t, ok)
}

func TestBalanceEncoding(t *testing.T) {
	type doc struct {
		Amount Balance `json:"amount" yaml:"amount"`
	}

	data, err := json.Marshal(&doc{NewBalance(42)})
	require.NoError(t, err)
	assert.Equal(t, `{"amount":"42"}`, string(data))

	var d doc
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"0x2a"}`), &d))
	assert.Equal(t, NewBalance(42), d.Amount)

	require.NoError(t, yaml.Unmarshal([]byte("amount: 42\n"), &d))
	assert.Equal(t, NewBalance(42), d.Amount)

	for _, b := range []Balance{{}, NewBalance(1), NewBalance(1 << 40), MaxBalance} {
		enc, err := rlp.EncodeToBytes(b)
		require.NoError(t, err)
		var dec Balance
		require.NoError(t, rlp.DecodeBytes(enc, &dec))
		assert.Equal(t, b, dec)
	}
}
