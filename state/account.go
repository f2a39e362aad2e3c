// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/ledger/kv"
	"github.com/vechain/ledger/thor"
)

// Account is the balance record of an address.
// RLP encoded objects are stored in the accounts bucket.
type Account struct {
	Free     thor.Balance
	Reserved thor.Balance
}

// Total returns free plus reserved, saturating at the maximum balance.
func (a *Account) Total() thor.Balance {
	return a.Free.SaturatingAdd(a.Reserved)
}

// IsEmpty returns if an account is empty.
// An empty account has zero free and zero reserved balance.
func (a *Account) IsEmpty() bool {
	return a.Free.IsZero() && a.Reserved.IsZero()
}

// loadAccount load an account object by address from the store.
// If the given address not found, an empty account returned.
func loadAccount(getter kv.Getter, addr thor.Address) (Account, error) {
	data, err := getter.Get(addr[:])
	if err != nil {
		if getter.IsNotFound(err) {
			return Account{}, nil
		}
		return Account{}, err
	}
	return decodeAccount(addr, data)
}

func decodeAccount(addr thor.Address, data []byte) (Account, error) {
	var a Account
	if err := rlp.DecodeBytes(data, &a); err != nil {
		return Account{}, errors.Wrapf(err, "decode account %v", addr)
	}
	return a, nil
}

// saveAccount save account into the store.
// An empty account is deleted.
func saveAccount(putter kv.Putter, addr thor.Address, a Account) error {
	if a.IsEmpty() {
		return putter.Delete(addr[:])
	}
	data, err := rlp.EncodeToBytes(&a)
	if err != nil {
		return err
	}
	return putter.Put(addr[:], data)
}

func loadIssuance(getter kv.Getter) (thor.Balance, error) {
	data, err := getter.Get(issuanceStoreKey)
	if err != nil {
		if getter.IsNotFound(err) {
			return thor.Balance{}, nil
		}
		return thor.Balance{}, err
	}
	var b thor.Balance
	if err := rlp.DecodeBytes(data, &b); err != nil {
		return thor.Balance{}, errors.Wrap(err, "decode issuance")
	}
	return b, nil
}

func saveIssuance(putter kv.Putter, b thor.Balance) error {
	data, err := rlp.EncodeToBytes(b)
	if err != nil {
		return err
	}
	return putter.Put(issuanceStoreKey, data)
}

// loadGenesis reads the genesis marker, reporting whether it is set.
func loadGenesis(getter kv.Getter) (string, bool, error) {
	data, err := getter.Get(genesisStoreKey)
	if err != nil {
		if getter.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}
