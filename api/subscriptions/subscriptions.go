// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/vechain/ledger/api/utils"
	"github.com/vechain/ledger/log"
	"github.com/vechain/ledger/metrics"
	"github.com/vechain/ledger/thor"
)

var (
	logger                 = log.WithContext("pkg", "subscriptions")
	metricActiveWebsockets = metrics.LazyLoadGauge("api_active_websocket_count")
)

const (
	// time allowed to write a message to the peer
	writeWait = 10 * time.Second
	// time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second
	// must be less than pongWait
	pingPeriod = (pongWait * 7) / 10
)

var errHubClosed = errors.New("subscriptions closed")

type Subscriptions struct {
	hub      *Hub
	upgrader *websocket.Upgrader
}

// New creates the subscriptions api. allowedOrigins lists the accepted
// websocket origins, "*" accepts any.
func New(hub *Hub, allowedOrigins []string) *Subscriptions {
	return &Subscriptions{
		hub: hub,
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header["Origin"]
				if len(origin) == 0 {
					return true
				}
				u, err := url.Parse(origin[0])
				if err != nil {
					return false
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || allowed == u.Host || allowed == origin[0] {
						return true
					}
				}
				return false
			},
		},
	}
}

func (s *Subscriptions) handleSubscribeEvents(w http.ResponseWriter, req *http.Request) error {
	var account *thor.Address
	if str := req.URL.Query().Get("account"); str != "" {
		addr, err := utils.ParseAddress(str, "account")
		if err != nil {
			return err
		}
		account = &addr
	}

	sub, ok := s.hub.subscribe(account)
	if !ok {
		return utils.HTTPError(errHubClosed, http.StatusServiceUnavailable)
	}
	defer s.hub.unsubscribe(sub)

	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		// the upgrader has responded
		logger.Debug("upgrade failed", "err", err)
		return nil
	}
	defer conn.Close()

	metricActiveWebsockets().Add(1)
	defer metricActiveWebsockets().Add(-1)

	if err := s.pipe(conn, sub); err != nil {
		logger.Debug("subscription closed", "err", err)
	}
	return nil
}

// pipe writes the subscriber's events to conn until either side goes away.
func (s *Subscriptions) pipe(conn *websocket.Conn, sub *subscriber) error {
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	for {
		select {
		case msgs, ok := <-sub.ch:
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				return conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			}
			for _, msg := range msgs {
				if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
					return err
				}
				if err := conn.WriteJSON(msg); err != nil {
					return err
				}
			}
		case <-pingTicker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return err
			}
		case <-closed:
			return nil
		}
	}
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/events").
		Methods(http.MethodGet).
		Name("subscriptions_events").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubscribeEvents))
}
