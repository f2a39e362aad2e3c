// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/pborman/uuid"

	"github.com/vechain/ledger/log"
)

const requestIDHeader = "X-Request-Id"

// RequestLoggerHandler tags every request with an id and, while enabled is set,
// logs it with its body. An incoming X-Request-Id is kept, otherwise one is generated.
// The id is echoed in the response.
func RequestLoggerHandler(handler http.Handler, logger log.Logger, enabled *atomic.Bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.New()
		}
		w.Header().Set(requestIDHeader, reqID)

		if enabled == nil || !enabled.Load() {
			handler.ServeHTTP(w, r)
			return
		}

		// the body can be read only once, give the handler a copy
		var bodyBytes []byte
		if r.Body != nil {
			var err error
			if bodyBytes, err = io.ReadAll(r.Body); err != nil {
				logger.Warn("unexpected body read error", "id", reqID, "err", err)
				http.Error(w, "unable to read body", http.StatusBadRequest)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}

		start := time.Now()
		handler.ServeHTTP(w, r)

		logger.Info("API Request",
			"id", reqID,
			"URI", r.URL.String(),
			"Method", r.Method,
			"Body", string(bodyBytes),
			"elapsed", time.Since(start),
		)
	})
}
