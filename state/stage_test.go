// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/ledger/thor"
)

func TestStage(t *testing.T) {
	st, db := newTestState(t)

	addr := thor.BytesToAddress([]byte("acc1"))
	st.SetAccount(addr, Account{Free: thor.NewBalance(1)})
	st.SetAccount(addr, Account{Free: thor.NewBalance(10)})
	st.SetIssuance(thor.NewBalance(10))

	stage := st.Stage()
	assert.Equal(t, 1, stage.Len())
	require.NoError(t, stage.Commit())

	acc, err := loadAccount(AccountBucket.NewStore(db), addr)
	require.NoError(t, err)
	assert.Equal(t, thor.NewBalance(10), acc.Free)

	iss, err := loadIssuance(MetaBucket.NewStore(db))
	require.NoError(t, err)
	assert.Equal(t, thor.NewBalance(10), iss)
}
