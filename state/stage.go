// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/vechain/ledger/kv"
	"github.com/vechain/ledger/thor"
)

// Stage abstracts changes on the account records.
type Stage struct {
	db       kv.Store
	accounts map[thor.Address]Account
	issuance *thor.Balance
	genesis  *string
}

// Len returns the count of staged account changes.
func (s *Stage) Len() int {
	return len(s.accounts)
}

// Commit commits all changes into the store atomically.
func (s *Stage) Commit() error {
	bulk := s.db.Bulk()
	accounts := AccountBucket.NewPutter(bulk)
	for addr, acc := range s.accounts {
		if err := saveAccount(accounts, addr, acc); err != nil {
			return err
		}
	}
	meta := MetaBucket.NewPutter(bulk)
	if s.issuance != nil {
		if err := saveIssuance(meta, *s.issuance); err != nil {
			return err
		}
	}
	if s.genesis != nil {
		if err := meta.Put(genesisStoreKey, []byte(*s.genesis)); err != nil {
			return err
		}
	}
	return bulk.Write()
}
