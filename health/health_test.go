// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/ledger/balances"
	"github.com/vechain/ledger/thor"
)

type mockLedger struct {
	issuance thor.Balance
	err      error
}

func (m *mockLedger) TotalIssuance() (thor.Balance, error) {
	return m.issuance, m.err
}

func TestHealth(t *testing.T) {
	ledger := &mockLedger{issuance: thor.NewBalance(100)}
	h := New()
	now := time.Unix(1000, 0)
	h.now = func() time.Time { return now }

	status, err := h.Status(ledger, 0)
	require.NoError(t, err)
	assert.True(t, status.Healthy)
	assert.True(t, status.StoreReachable)
	assert.Equal(t, thor.NewBalance(100), status.Issuance)
	assert.Nil(t, status.Activity.Timestamp)

	// no activity yet
	status, err = h.Status(ledger, time.Minute)
	require.NoError(t, err)
	assert.False(t, status.Healthy)

	require.NoError(t, h.Handle([]balances.Event{
		&balances.EndowedEvent{},
		&balances.TransferEvent{},
	}))
	require.NoError(t, h.Handle(nil))

	status, err = h.Status(ledger, time.Minute)
	require.NoError(t, err)
	assert.True(t, status.Healthy)
	assert.Equal(t, uint64(1), status.Activity.Operations)
	assert.Equal(t, balances.EventTransfer, status.Activity.LastEvent)
	assert.Equal(t, now, *status.Activity.Timestamp)

	now = now.Add(2 * time.Minute)
	status, err = h.Status(ledger, time.Minute)
	require.NoError(t, err)
	assert.False(t, status.Healthy)

	ledger.err = errors.New("closed")
	status, err = h.Status(ledger, 0)
	require.NoError(t, err)
	assert.False(t, status.Healthy)
	assert.False(t, status.StoreReachable)
}
