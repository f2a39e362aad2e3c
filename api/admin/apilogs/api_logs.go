// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package apilogs

import (
	"net/http"
	"sync/atomic"

	"github.com/gorilla/mux"

	"github.com/vechain/ledger/api"
	"github.com/vechain/ledger/api/utils"
	"github.com/vechain/ledger/log"
)

var logger = log.WithContext("pkg", "apilogs")

// APILogs exposes the switch read by api.RequestLoggerHandler.
type APILogs struct {
	enabled *atomic.Bool
}

func New(enabled *atomic.Bool) *APILogs {
	return &APILogs{enabled}
}

func (a *APILogs) status() api.LogStatus {
	return api.LogStatus{Enabled: a.enabled.Load()}
}

func (a *APILogs) handleGet(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, a.status())
}

func (a *APILogs) handlePost(w http.ResponseWriter, req *http.Request) error {
	var body api.LogStatus
	if err := utils.ParseBody(req.Body, &body); err != nil {
		return err
	}
	if prev := a.enabled.Swap(body.Enabled); prev != body.Enabled {
		logger.Info("api request logging switched", "enabled", body.Enabled)
	}
	return utils.WriteJSON(w, a.status())
}

func (a *APILogs) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("admin_get_api_logs").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGet))
	sub.Path("").
		Methods(http.MethodPost).
		Name("admin_post_api_logs").
		HandlerFunc(utils.WrapHandlerFunc(a.handlePost))
}
