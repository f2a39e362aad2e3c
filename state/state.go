// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/vechain/ledger/cache"
	"github.com/vechain/ledger/kv"
	"github.com/vechain/ledger/stackedmap"
	"github.com/vechain/ledger/thor"
)

const (
	// AccountBucket is the kv bucket of account records, keyed by address.
	AccountBucket kv.Bucket = "a"
	// MetaBucket holds ledger wide values.
	MetaBucket kv.Bucket = "m"

	accountCacheSize = 16384
)

var (
	issuanceStoreKey = []byte("issuance")
	genesisStoreKey  = []byte("genesis")
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// stacked map key of the total issuance
type issuanceKey struct{}

// stacked map key of the genesis marker
type genesisKey struct{}

// State manages the account records.
// It's not safe for concurrent use.
type State struct {
	db       kv.Store
	accounts kv.Store
	meta     kv.Store
	cache    *cache.LRU[thor.Address, Account] // committed accounts only
	sm       *stackedmap.StackedMap[any, any]  // keeps revisions of uncommitted changes
}

// New create state object.
func New(db kv.Store) *State {
	lru, err := cache.NewLRU[thor.Address, Account](accountCacheSize)
	if err != nil {
		panic(err)
	}
	s := &State{
		db:       db,
		accounts: AccountBucket.NewStore(db),
		meta:     MetaBucket.NewStore(db),
		cache:    lru,
	}
	s.reset()
	return s
}

func (s *State) reset() {
	s.sm = stackedmap.New(s.cacheGetter)
}

// cacheGetter implements stackedmap.MapGetter.
func (s *State) cacheGetter(key any) (any, bool, error) {
	switch k := key.(type) {
	case thor.Address:
		acc, err := s.cache.GetOrLoad(k, func(addr thor.Address) (Account, error) {
			metricStateAccess().AddWithLabel(1, map[string]string{"op": "load"})
			return loadAccount(s.accounts, addr)
		})
		if err != nil {
			return nil, false, err
		}
		return acc, true, nil
	case issuanceKey:
		iss, err := loadIssuance(s.meta)
		if err != nil {
			return nil, false, err
		}
		return iss, true, nil
	case genesisKey:
		name, ok, err := loadGenesis(s.meta)
		if err != nil {
			return nil, false, err
		}
		return name, ok, nil
	}
	panic(fmt.Errorf("unexpected key type %+v", key))
}

// GetAccount returns the account of the given address.
// A missing account reads as the empty account.
func (s *State) GetAccount(addr thor.Address) (Account, error) {
	v, _, err := s.sm.Get(addr)
	if err != nil {
		return Account{}, &Error{err}
	}
	return v.(Account), nil
}

// Get returns the account of the given address and whether it exists.
func (s *State) Get(addr thor.Address) (Account, bool, error) {
	acc, err := s.GetAccount(addr)
	if err != nil {
		return Account{}, false, err
	}
	return acc, !acc.IsEmpty(), nil
}

// Exists returns whether an account exists at the given address.
// See Account.IsEmpty()
func (s *State) Exists(addr thor.Address) (bool, error) {
	_, exists, err := s.Get(addr)
	return exists, err
}

// SetAccount updates the account of the given address.
// Setting an empty account removes it.
func (s *State) SetAccount(addr thor.Address, acc Account) {
	s.sm.Put(addr, acc)
}

// Remove deletes the account at the given address.
func (s *State) Remove(addr thor.Address) {
	s.sm.Put(addr, Account{})
}

// GetIssuance returns the total issuance.
func (s *State) GetIssuance() (thor.Balance, error) {
	v, _, err := s.sm.Get(issuanceKey{})
	if err != nil {
		return thor.Balance{}, &Error{err}
	}
	return v.(thor.Balance), nil
}

// SetIssuance sets the total issuance.
func (s *State) SetIssuance(b thor.Balance) {
	s.sm.Put(issuanceKey{}, b)
}

// GetGenesis returns the name of the genesis the ledger was initialized with.
// It returns false if no genesis has been allocated yet.
func (s *State) GetGenesis() (string, bool, error) {
	v, ok, err := s.sm.Get(genesisKey{})
	if err != nil {
		return "", false, &Error{err}
	}
	if !ok {
		return "", false, nil
	}
	return v.(string), true, nil
}

// SetGenesis marks the ledger as initialized by the named genesis.
func (s *State) SetGenesis(name string) {
	s.sm.Put(genesisKey{}, name)
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

type changeSet struct {
	accounts map[thor.Address]Account
	issuance *thor.Balance
	genesis  *string
}

// changes collects the latest value of every changed key.
func (s *State) changes() changeSet {
	cs := changeSet{accounts: make(map[thor.Address]Account)}
	s.sm.Journal(func(k, v any) bool {
		switch key := k.(type) {
		case thor.Address:
			cs.accounts[key] = v.(Account)
		case issuanceKey:
			iss := v.(thor.Balance)
			cs.issuance = &iss
		case genesisKey:
			name := v.(string)
			cs.genesis = &name
		}
		return true
	})
	return cs
}

// Stage makes a stage object to commit the uncommitted changes.
func (s *State) Stage() *Stage {
	cs := s.changes()
	return &Stage{
		db:       s.db,
		accounts: cs.accounts,
		issuance: cs.issuance,
		genesis:  cs.genesis,
	}
}

// Commit writes all uncommitted changes to the store and clears the journal.
// Checkpoints made before are invalidated.
func (s *State) Commit() error {
	stage := s.Stage()
	if err := stage.Commit(); err != nil {
		return &Error{err}
	}
	for addr, acc := range stage.accounts {
		s.cache.Add(addr, acc)
	}
	s.reset()

	stats := s.cache.Stats()
	metricCacheHitRate().Set(int64(stats.HitRate() * 100))
	metricStateAccess().AddWithLabel(int64(len(stage.accounts)), map[string]string{"op": "commit"})
	return nil
}

// ForEach iterates over existing accounts, uncommitted changes included.
// The committed accounts are visited in key order, followed by accounts created since the last commit.
// Iteration stops once fn returns false.
func (s *State) ForEach(fn func(addr thor.Address, acc Account) bool) error {
	changed := s.changes().accounts

	it := s.accounts.Iterate(kv.Range{})
	defer it.Release()

	for it.Next() {
		key := it.Key()
		if len(key) != len(thor.Address{}) {
			continue
		}
		addr := thor.BytesToAddress(key)

		acc, ok := changed[addr]
		if ok {
			delete(changed, addr)
		} else {
			loaded, err := decodeAccount(addr, it.Value())
			if err != nil {
				return &Error{err}
			}
			acc = loaded
		}
		if acc.IsEmpty() {
			continue
		}
		if !fn(addr, acc) {
			return nil
		}
	}
	if err := it.Error(); err != nil {
		return &Error{err}
	}

	for addr, acc := range changed {
		if acc.IsEmpty() {
			continue
		}
		if !fn(addr, acc) {
			return nil
		}
	}
	return nil
}
