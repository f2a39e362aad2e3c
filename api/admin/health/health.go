// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/ledger/api/utils"
	"github.com/vechain/ledger/health"
)

type API struct {
	health *health.Health
	ledger health.Ledger
}

func New(health *health.Health, ledger health.Ledger) *API {
	return &API{
		health: health,
		ledger: ledger,
	}
}

func (h *API) handleGetHealth(w http.ResponseWriter, r *http.Request) error {
	var maxIdle time.Duration
	if s := r.URL.Query().Get("maxIdle"); s != "" {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return utils.BadRequest(errors.WithMessage(err, "maxIdle"))
		}
		maxIdle = parsed
	}

	status, err := h.health.Status(h.ledger, maxIdle)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", utils.JSONContentType)
	if !status.Healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	return utils.WriteJSON(w, status)
}

func (h *API) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("admin_get_health").
		HandlerFunc(utils.WrapHandlerFunc(h.handleGetHealth))
}
