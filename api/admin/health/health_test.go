// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/ledger/balances"
	"github.com/vechain/ledger/health"
	"github.com/vechain/ledger/lvldb"
	"github.com/vechain/ledger/state"
	"github.com/vechain/ledger/thor"
)

func TestHealthAPI(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	h := health.New()
	ledger, err := balances.New(state.New(db), thor.NewBalance(10), balances.WithEventSink(h))
	require.NoError(t, err)

	router := mux.NewRouter()
	New(h, ledger).Mount(router, "/admin/health")

	get := func(url string) (*health.Status, int) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, url, nil))
		if rr.Code == http.StatusBadRequest {
			return nil, rr.Code
		}
		var status health.Status
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&status))
		return &status, rr.Code
	}

	status, code := get("/admin/health")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, status.Healthy)

	_, code = get("/admin/health?maxIdle=1m")
	assert.Equal(t, http.StatusServiceUnavailable, code)

	require.NoError(t, ledger.SetBalance(balances.Root(), thor.BytesToAddress([]byte("alice")), thor.NewBalance(50), thor.Balance{}))

	status, code = get("/admin/health?maxIdle=1m")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, uint64(1), status.Activity.Operations)
	assert.Equal(t, thor.NewBalance(50), status.Issuance)

	_, code = get("/admin/health?maxIdle=soon")
	assert.Equal(t, http.StatusBadRequest, code)
}
