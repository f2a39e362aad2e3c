// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package apilogs

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/ledger/api"
)

func TestAPILogsHandler(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		body         []byte
		startValue   bool
		expectedEnd  bool
		expectedHTTP int
	}{
		{"enable", http.MethodPost, []byte(`{"enabled":true}`), false, true, http.StatusOK},
		{"disable", http.MethodPost, []byte(`{"enabled":false}`), true, false, http.StatusOK},
		{"get", http.MethodGet, nil, true, true, http.StatusOK},
		{"bad body", http.MethodPost, []byte(`{"enabled":"yes"}`), true, true, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var enabled atomic.Bool
			enabled.Store(tt.startValue)

			req, err := http.NewRequest(tt.method, "/admin/apilogs", bytes.NewReader(tt.body))
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			router := mux.NewRouter()
			New(&enabled).Mount(router, "/admin/apilogs")
			router.ServeHTTP(rr, req)

			require.Equal(t, tt.expectedHTTP, rr.Code)
			assert.Equal(t, tt.expectedEnd, enabled.Load())
			if rr.Code == http.StatusOK {
				var status api.LogStatus
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&status))
				assert.Equal(t, tt.expectedEnd, status.Enabled)
			}
		})
	}
}
