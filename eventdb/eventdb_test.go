// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/ledger/balances"
	"github.com/vechain/ledger/lvldb"
	"github.com/vechain/ledger/state"
	"github.com/vechain/ledger/thor"
)

var (
	alice = thor.BytesToAddress([]byte("alice"))
	bob   = thor.BytesToAddress([]byte("bob"))
)

func newTestDB(t *testing.T) *EventDB {
	db, err := NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.now = func() time.Time { return time.Unix(1000, 0) }
	return db
}

func TestHandleAndFilter(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Handle([]balances.Event{
		&balances.EndowedEvent{Account: alice, Free: thor.NewBalance(100)},
		&balances.BalanceSetEvent{Who: alice, Free: thor.NewBalance(100), Reserved: thor.NewBalance(5)},
	}))
	require.NoError(t, db.Handle([]balances.Event{
		&balances.EndowedEvent{Account: bob, Free: thor.NewBalance(91)},
		&balances.TransferEvent{From: alice, To: bob, Amount: thor.NewBalance(91)},
		&balances.ReapedEvent{Account: alice, Dust: thor.NewBalance(14)},
	}))
	require.NoError(t, db.Handle(nil))

	all, err := db.Filter(nil)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, &Event{
		Seq:      1,
		Index:    1,
		Time:     1000,
		Name:     balances.EventBalanceSet,
		Account:  alice,
		Amount:   thor.NewBalance(100),
		Reserved: thor.NewBalance(5),
	}, all[1])
	assert.Equal(t, &Event{
		Seq:          2,
		Index:        1,
		Time:         1000,
		Name:         balances.EventTransfer,
		Account:      alice,
		Counterparty: bob,
		Amount:       thor.NewBalance(91),
	}, all[3])

	// bob appears as the recipient of the transfer
	events, err := db.Filter(&Filter{Account: &bob})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, balances.EventEndowed, events[0].Name)
	assert.Equal(t, balances.EventTransfer, events[1].Name)

	events, err = db.Filter(&Filter{Names: []string{balances.EventReaped, balances.EventEndowed}})
	require.NoError(t, err)
	assert.Len(t, events, 3)

	events, err = db.Filter(&Filter{Range: &Range{Unit: Seq, From: 2, To: 2}, Order: DESC})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, balances.EventReaped, events[0].Name)

	events, err = db.Filter(&Filter{Range: &Range{Unit: Time, From: 2000}})
	require.NoError(t, err)
	assert.Empty(t, events)

	events, err = db.Filter(&Filter{Options: &Options{Offset: 1, Limit: 2}})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, uint32(1), events[0].Index)
	assert.Equal(t, uint64(2), events[1].Seq)
}

func TestReopenContinuesSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")

	db, err := New(path)
	require.NoError(t, err)
	require.NoError(t, db.Handle([]balances.Event{&balances.ReservedEvent{Who: alice, Amount: thor.NewBalance(1)}}))
	require.NoError(t, db.Close())

	db, err = New(path)
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, path, db.Path())

	require.NoError(t, db.Handle([]balances.Event{&balances.UnreservedEvent{Who: alice, Amount: thor.NewBalance(1)}}))
	events, err := db.Filter(nil)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, uint64(2), events[1].Seq)
}

func TestLedgerSink(t *testing.T) {
	db := newTestDB(t)

	store, err := lvldb.NewMem()
	require.NoError(t, err)
	defer store.Close()

	ledger, err := balances.New(state.New(store), thor.NewBalance(10), balances.WithEventSink(db))
	require.NoError(t, err)

	require.NoError(t, ledger.SetBalance(balances.Root(), alice, thor.NewBalance(100), thor.Balance{}))
	require.NoError(t, ledger.Transfer(balances.Signed(alice), bob, thor.NewBalance(95)))
	assert.Error(t, ledger.Transfer(balances.Signed(alice), bob, thor.NewBalance(95)))

	events, err := db.Filter(&Filter{Names: []string{balances.EventReaped}})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, alice, events[0].Account)
	assert.Equal(t, thor.NewBalance(5), events[0].Amount)
	assert.Equal(t, uint64(2), events[0].Seq)
}
