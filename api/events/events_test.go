// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events_test

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

	"github.com/vechain/ledger/api/events"
	"github.com/vechain/ledger/balances"
	"github.com/vechain/ledger/eventdb"
	"github.com/vechain/ledger/thor"
)

var (
	alice = thor.BytesToAddress([]byte("alice"))
	bob   = thor.BytesToAddress([]byte("bob"))
)

func initEventServer(t *testing.T, limit uint64) *httptest.Server {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Handle([]balances.Event{
		&balances.EndowedEvent{Account: alice, Free: thor.NewBalance(100)},
		&balances.BalanceSetEvent{Who: alice, Free: thor.NewBalance(100)},
	}))
	for range 10 {
		require.NoError(t, db.Handle([]balances.Event{
			&balances.TransferEvent{From: alice, To: bob, Amount: thor.NewBalance(1)},
		}))
	}

	router := mux.NewRouter()
	events.New(db, limit).Mount(router, "/events")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func httpDo(t *testing.T, method, url string, body []byte) ([]byte, int) {
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return data, res.StatusCode
}

func postFilter(t *testing.T, ts *httptest.Server, filter any) ([]*eventdb.Event, int) {
	data, err := json.Marshal(filter)
	require.NoError(t, err)
	body, code := httpDo(t, http.MethodPost, ts.URL+"/events", data)
	if code != http.StatusOK {
		return nil, code
	}
	var evs []*eventdb.Event
	require.NoError(t, json.Unmarshal(body, &evs))
	return evs, code
}

func TestFilterEvents(t *testing.T) {
	ts := initEventServer(t, 20)

	evs, code := postFilter(t, ts, &eventdb.Filter{Account: &bob})
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, evs, 10)
	for _, ev := range evs {
		assert.Equal(t, balances.EventTransfer, ev.Name)
		assert.Equal(t, bob, ev.Counterparty)
	}

	evs, code = postFilter(t, ts, &eventdb.Filter{
		Range:   &eventdb.Range{Unit: eventdb.Seq, From: 2, To: 5},
		Options: &eventdb.Options{Offset: 1, Limit: 2},
		Order:   eventdb.DESC,
	})
	require.Equal(t, http.StatusOK, code)
	require.Len(t, evs, 2)
	assert.Equal(t, uint64(4), evs[0].Seq)
	assert.Equal(t, uint64(3), evs[1].Seq)

	evs, code = postFilter(t, ts, &eventdb.Filter{Names: []string{balances.EventReaped}})
	require.Equal(t, http.StatusOK, code)
	assert.NotNil(t, evs)
	assert.Empty(t, evs)
}

func TestFilterLimits(t *testing.T) {
	ts := initEventServer(t, 5)

	_, code := postFilter(t, ts, &eventdb.Filter{Options: &eventdb.Options{Limit: 6}})
	assert.Equal(t, http.StatusForbidden, code)

	// without options the result must fit in the limit
	_, code = postFilter(t, ts, &eventdb.Filter{})
	assert.Equal(t, http.StatusForbidden, code)

	evs, code := postFilter(t, ts, &eventdb.Filter{Options: &eventdb.Options{Limit: 5}})
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, evs, 5)

	_, code = postFilter(t, ts, &eventdb.Filter{Range: &eventdb.Range{Unit: eventdb.Seq, From: 5, To: 1}})
	assert.Equal(t, http.StatusBadRequest, code)

	_, code = postFilter(t, ts, &eventdb.Filter{Range: &eventdb.Range{Unit: "block", From: 1, To: 5}})
	assert.Equal(t, http.StatusBadRequest, code)

	_, code = httpDo(t, http.MethodPost, ts.URL+"/events", []byte(`{"foo":1}`))
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetEvents(t *testing.T) {
	ts := initEventServer(t, 20)

	body, code := httpDo(t, http.MethodGet, ts.URL+"/events?account="+alice.String()+"&name="+balances.EventEndowed, nil)
	require.Equal(t, http.StatusOK, code)
	var evs []*eventdb.Event
	require.NoError(t, json.Unmarshal(body, &evs))
	require.Len(t, evs, 1)
	assert.Equal(t, thor.NewBalance(100), evs[0].Amount)

	body, code = httpDo(t, http.MethodGet, ts.URL+"/events?order=desc&limit=3&offset=1", nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body, &evs))
	require.Len(t, evs, 3)
	assert.Equal(t, uint64(10), evs[0].Seq)

	_, code = httpDo(t, http.MethodGet, ts.URL+"/events?account=0x1", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	_, code = httpDo(t, http.MethodGet, ts.URL+"/events?limit=x", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}
