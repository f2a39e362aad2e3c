// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"io"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Balance is an amount of the smallest token unit.
// The zero value is a zero balance. Balances are values and compare with ==.
type Balance struct {
	v uint256.Int
}

// MaxBalance is the largest representable balance.
var MaxBalance = func() (b Balance) {
	b.v.SetAllOne()
	return
}()

// NewBalance creates a balance from an uint64.
func NewBalance(n uint64) (b Balance) {
	b.v.SetUint64(n)
	return
}

// ParseBalance parses a decimal, or 0x prefixed hex, string.
func ParseBalance(s string) (Balance, error) {
	var b Balance
	s = strings.TrimSpace(s)
	if len(s) > 1 && strings.ToLower(s[:2]) == "0x" {
		if err := b.v.SetFromHex(s); err != nil {
			return Balance{}, errors.Wrap(err, "parse balance")
		}
		return b, nil
	}
	if err := b.v.SetFromDecimal(s); err != nil {
		return Balance{}, errors.Wrap(err, "parse balance")
	}
	return b, nil
}

// MustParseBalance is like ParseBalance but panics on error.
func MustParseBalance(s string) Balance {
	b, err := ParseBalance(s)
	if err != nil {
		panic(err)
	}
	return b
}

// BalanceFromBig converts a big integer. ok is false if x is negative or too large.
func BalanceFromBig(x *big.Int) (b Balance, ok bool) {
	if x.Sign() < 0 {
		return Balance{}, false
	}
	if overflow := b.v.SetFromBig(x); overflow {
		return Balance{}, false
	}
	return b, true
}

// CheckedAdd returns b+x, ok is false on overflow.
func (b Balance) CheckedAdd(x Balance) (Balance, bool) {
	var r Balance
	if _, overflow := r.v.AddOverflow(&b.v, &x.v); overflow {
		return Balance{}, false
	}
	return r, true
}

// CheckedSub returns b-x, ok is false on underflow.
func (b Balance) CheckedSub(x Balance) (Balance, bool) {
	var r Balance
	if _, underflow := r.v.SubOverflow(&b.v, &x.v); underflow {
		return Balance{}, false
	}
	return r, true
}

// CheckedMul returns b*x, ok is false on overflow.
func (b Balance) CheckedMul(x Balance) (Balance, bool) {
	var r Balance
	if _, overflow := r.v.MulOverflow(&b.v, &x.v); overflow {
		return Balance{}, false
	}
	return r, true
}

// SaturatingAdd returns b+x, clamped at MaxBalance.
func (b Balance) SaturatingAdd(x Balance) Balance {
	if r, ok := b.CheckedAdd(x); ok {
		return r
	}
	return MaxBalance
}

// SaturatingSub returns b-x, clamped at zero.
func (b Balance) SaturatingSub(x Balance) Balance {
	if r, ok := b.CheckedSub(x); ok {
		return r
	}
	return Balance{}
}

// SaturatingMul returns b*x, clamped at MaxBalance.
func (b Balance) SaturatingMul(x Balance) Balance {
	if r, ok := b.CheckedMul(x); ok {
		return r
	}
	return MaxBalance
}

// Cmp compares b and x and returns -1, 0 or +1.
func (b Balance) Cmp(x Balance) int {
	return b.v.Cmp(&x.v)
}

// Lt returns b < x.
func (b Balance) Lt(x Balance) bool {
	return b.v.Lt(&x.v)
}

// IsZero returns if the balance is zero.
func (b Balance) IsZero() bool {
	return b.v.IsZero()
}

// Min returns the smaller of b and x.
func (b Balance) Min(x Balance) Balance {
	if x.Lt(b) {
		return x
	}
	return b
}

// Big returns the balance as a new big integer.
func (b Balance) Big() *big.Int {
	return b.v.ToBig()
}

// String returns the decimal form.
func (b Balance) String() string {
	return b.v.Dec()
}

// MarshalText implements encoding.TextMarshaler.
func (b Balance) MarshalText() ([]byte, error) {
	return []byte(b.v.Dec()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Balance) UnmarshalText(text []byte) error {
	v, err := ParseBalance(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// EncodeRLP implements rlp.Encoder.
func (b Balance) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &b.v)
}

// DecodeRLP implements rlp.Decoder.
func (b *Balance) DecodeRLP(s *rlp.Stream) error {
	return s.ReadUint256(&b.v)
}
