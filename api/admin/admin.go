// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/ledger/api/admin/apilogs"
	healthAPI "github.com/vechain/ledger/api/admin/health"
	"github.com/vechain/ledger/api/admin/loglevel"
	"github.com/vechain/ledger/health"
)

// New returns the admin router, served apart from the public API.
func New(logLevel *slog.LevelVar, health *health.Health, ledger health.Ledger, apiLogs *atomic.Bool) http.HandlerFunc {
	router := mux.NewRouter()
	sub := router.PathPrefix("/admin").Subrouter()

	loglevel.New(logLevel).Mount(sub, "/loglevel")
	healthAPI.New(health, ledger).Mount(sub, "/health")
	apilogs.New(apiLogs).Mount(sub, "/apilogs")

	handler := handlers.CompressHandler(router)
	return handler.ServeHTTP
}
