// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"net/http/pprof"
	"strings"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/ledger/api/accounts"
	"github.com/vechain/ledger/api/balances"
	"github.com/vechain/ledger/api/events"
	"github.com/vechain/ledger/api/subscriptions"
	ledger "github.com/vechain/ledger/balances"
	"github.com/vechain/ledger/eventdb"
	"github.com/vechain/ledger/log"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	AllowRoot       bool
	PprofOn         bool
	EnableReqLogger *atomic.Bool
	EnableMetrics   bool
	EventsLimit     uint64
}

// New return api router.
// eventDB and hub are optional, their routes are not mounted when nil.
func New(
	l *ledger.Balances,
	eventDB *eventdb.EventDB,
	hub *subscriptions.Hub,
	opts Options,
) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	accounts.New(l).
		Mount(router, "/accounts")
	balances.New(l, opts.AllowRoot).
		Mount(router, "/balances")
	if eventDB != nil {
		events.New(eventDB, opts.EventsLimit).
			Mount(router, "/events")
	}
	closeFn := func() {}
	if hub != nil {
		subscriptions.New(hub, origins).
			Mount(router, "/subscriptions")
		// hijacked websocket conns are released by closing the hub
		closeFn = hub.Close
	}
	if opts.PprofOn {
		router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		router.HandleFunc("/debug/pprof/profile", pprof.Profile)
		router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		router.HandleFunc("/debug/pprof/trace", pprof.Trace)
		router.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type", "x-request-id"}),
		handlers.ExposedHeaders([]string{"x-request-id"}),
	)(handler)

	handler = RequestLoggerHandler(handler, logger, opts.EnableReqLogger)

	return handler.ServeHTTP, closeFn
}
