// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/ledger/balances"
	"github.com/vechain/ledger/eventdb"
	"github.com/vechain/ledger/lvldb"
	"github.com/vechain/ledger/state"
	"github.com/vechain/ledger/thor"
)

func initSubscriptionServer(t *testing.T) (*httptest.Server, *Hub, *balances.Balances) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	hub := NewHub(1)
	ledger, err := balances.New(state.New(db), thor.NewBalance(10), balances.WithEventSink(hub))
	require.NoError(t, err)

	router := mux.NewRouter()
	New(hub, []string{"*"}).Mount(router, "/subscriptions")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, hub, ledger
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	u := url.URL{Scheme: "ws", Host: strings.TrimPrefix(ts.URL, "http://"), Path: "/subscriptions/events", RawQuery: query}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) *eventdb.Event {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var ev eventdb.Event
	require.NoError(t, conn.ReadJSON(&ev))
	return &ev
}

func TestSubscribeEvents(t *testing.T) {
	ts, _, ledger := initSubscriptionServer(t)

	conn := dial(t, ts, "account="+bob.String())

	require.NoError(t, ledger.SetBalance(balances.Root(), alice, thor.NewBalance(100), thor.Balance{}))
	require.NoError(t, ledger.Transfer(balances.Signed(alice), bob, thor.NewBalance(30)))

	ev := readEvent(t, conn)
	assert.Equal(t, balances.EventEndowed, ev.Name)
	assert.Equal(t, bob, ev.Account)
	assert.Equal(t, uint64(2), ev.Seq)

	ev = readEvent(t, conn)
	assert.Equal(t, balances.EventTransfer, ev.Name)
	assert.Equal(t, alice, ev.Account)
	assert.Equal(t, bob, ev.Counterparty)
	assert.Equal(t, thor.NewBalance(30), ev.Amount)
}

func TestSubscribeBadAccount(t *testing.T) {
	ts, _, _ := initSubscriptionServer(t)

	u := url.URL{Scheme: "ws", Host: strings.TrimPrefix(ts.URL, "http://"), Path: "/subscriptions/events", RawQuery: "account=0x12"}
	_, res, err := websocket.DefaultDialer.Dial(u.String(), nil)
	assert.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestHubCloseDisconnects(t *testing.T) {
	ts, hub, _ := initSubscriptionServer(t)

	conn := dial(t, ts, "")
	hub.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "unexpected error: %v", err)
}
