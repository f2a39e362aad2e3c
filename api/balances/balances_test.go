// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package balances

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/ledger/api/accounts"
	"github.com/vechain/ledger/balances"
	"github.com/vechain/ledger/lvldb"
	"github.com/vechain/ledger/state"
	"github.com/vechain/ledger/thor"
)

var (
	alice = thor.BytesToAddress([]byte("alice"))
	bob   = thor.BytesToAddress([]byte("bob"))
	carol = thor.BytesToAddress([]byte("carol"))
)

func initBalancesServer(t *testing.T, allowRoot bool) (*httptest.Server, *balances.Balances) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ledger, err := balances.New(state.New(db), thor.NewBalance(10))
	require.NoError(t, err)
	require.NoError(t, ledger.SetBalance(balances.Root(), alice, thor.NewBalance(100), thor.Balance{}))
	require.NoError(t, ledger.Commit())

	router := mux.NewRouter()
	New(ledger, allowRoot).Mount(router, "/balances")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, ledger
}

func httpPost(t *testing.T, url string, obj any) ([]byte, int) {
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	res, err := http.Post(url, "application/json", bytes.NewReader(data)) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func decodeReceipt(t *testing.T, body []byte) map[thor.Address]*accounts.Account {
	var receipt Receipt
	require.NoError(t, json.Unmarshal(body, &receipt))
	m := make(map[thor.Address]*accounts.Account, len(receipt.Accounts))
	for _, acc := range receipt.Accounts {
		m[acc.Address] = acc
	}
	return m
}

func TestTransfer(t *testing.T) {
	ts, ledger := initBalancesServer(t, false)

	body, code := httpPost(t, ts.URL+"/balances/transfer", &Transfer{From: alice, To: bob, Amount: thor.NewBalance(40)})
	require.Equal(t, http.StatusOK, code, string(body))
	accs := decodeReceipt(t, body)
	assert.Equal(t, thor.NewBalance(60), accs[alice].Free)
	assert.Equal(t, thor.NewBalance(40), accs[bob].Free)
	assert.True(t, accs[bob].Exists)

	// new destination below existential deposit
	body, code = httpPost(t, ts.URL+"/balances/transfer", &Transfer{From: alice, To: carol, Amount: thor.NewBalance(5)})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, string(body), "value too low to create account")

	// sender is reaped
	body, code = httpPost(t, ts.URL+"/balances/transfer", &Transfer{From: alice, To: bob, Amount: thor.NewBalance(55)})
	require.Equal(t, http.StatusOK, code, string(body))
	accs = decodeReceipt(t, body)
	assert.False(t, accs[alice].Exists)
	assert.Equal(t, thor.NewBalance(95), accs[bob].Free)

	iss, err := ledger.TotalIssuance()
	require.NoError(t, err)
	assert.Equal(t, thor.NewBalance(95), iss)
}

func TestTransferKeepAlive(t *testing.T) {
	ts, _ := initBalancesServer(t, false)

	body, code := httpPost(t, ts.URL+"/balances/transfer-keep-alive", &Transfer{From: alice, To: bob, Amount: thor.NewBalance(95)})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, string(body), "transfer would kill account")

	body, code = httpPost(t, ts.URL+"/balances/transfer-keep-alive", &Transfer{From: alice, To: bob, Amount: thor.NewBalance(90)})
	require.Equal(t, http.StatusOK, code, string(body))
	accs := decodeReceipt(t, body)
	assert.Equal(t, thor.NewBalance(10), accs[alice].Free)
	assert.True(t, accs[alice].Exists)
}

func TestBadBody(t *testing.T) {
	ts, _ := initBalancesServer(t, false)

	_, code := httpPost(t, ts.URL+"/balances/transfer", map[string]any{"from": alice, "unknown": 1})
	assert.Equal(t, http.StatusBadRequest, code)

	_, code = httpPost(t, ts.URL+"/balances/transfer", map[string]any{"from": alice, "to": bob, "amount": "abc"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRootDisabled(t *testing.T) {
	ts, _ := initBalancesServer(t, false)

	_, code := httpPost(t, ts.URL+"/balances/force-transfer", &ForceTransfer{Source: alice, Dest: bob, Amount: thor.NewBalance(50)})
	assert.Equal(t, http.StatusForbidden, code)

	_, code = httpPost(t, ts.URL+"/balances/set-balance", &SetBalance{Who: bob, Free: thor.NewBalance(50)})
	assert.Equal(t, http.StatusForbidden, code)
}

func TestRootOperations(t *testing.T) {
	ts, ledger := initBalancesServer(t, true)

	body, code := httpPost(t, ts.URL+"/balances/force-transfer", &ForceTransfer{Source: alice, Dest: bob, Amount: thor.NewBalance(95)})
	require.Equal(t, http.StatusOK, code, string(body))
	accs := decodeReceipt(t, body)
	assert.False(t, accs[alice].Exists)
	assert.Equal(t, thor.NewBalance(95), accs[bob].Free)

	body, code = httpPost(t, ts.URL+"/balances/set-balance", &SetBalance{Who: carol, Free: thor.NewBalance(30), Reserved: thor.NewBalance(3)})
	require.Equal(t, http.StatusOK, code, string(body))
	accs = decodeReceipt(t, body)
	assert.Equal(t, thor.NewBalance(30), accs[carol].Free)
	assert.Equal(t, thor.NewBalance(3), accs[carol].Reserved)

	// wipe out bob
	body, code = httpPost(t, ts.URL+"/balances/set-balance", &SetBalance{Who: bob, Free: thor.NewBalance(9)})
	require.Equal(t, http.StatusOK, code, string(body))
	accs = decodeReceipt(t, body)
	assert.False(t, accs[bob].Exists)

	iss, err := ledger.TotalIssuance()
	require.NoError(t, err)
	assert.Equal(t, thor.NewBalance(33), iss)
}
