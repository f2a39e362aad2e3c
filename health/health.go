// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"sync"
	"time"

	"github.com/vechain/ledger/balances"
	"github.com/vechain/ledger/log"
	"github.com/vechain/ledger/thor"
)

var logger = log.WithContext("pkg", "health")

// Ledger is the part of the ledger probed for health.
type Ledger interface {
	TotalIssuance() (thor.Balance, error)
}

type Activity struct {
	Operations uint64     `json:"operations"`
	LastEvent  string     `json:"lastEvent"`
	Timestamp  *time.Time `json:"timestamp"`
}

type Status struct {
	Healthy        bool         `json:"healthy"`
	StoreReachable bool         `json:"storeReachable"`
	Issuance       thor.Balance `json:"issuance"`
	Activity       *Activity    `json:"activity"`
}

// Health tracks ledger activity. It implements balances.EventSink.
type Health struct {
	lock      sync.RWMutex
	ops       uint64
	lastEvent string
	lastOp    time.Time
	now       func() time.Time
}

var _ balances.EventSink = (*Health)(nil)

func New() *Health {
	return &Health{
		now: time.Now,
	}
}

// Handle records a successful operation.
func (h *Health) Handle(events []balances.Event) error {
	if len(events) == 0 {
		return nil
	}
	h.lock.Lock()
	defer h.lock.Unlock()

	h.ops++
	h.lastEvent = events[len(events)-1].Name()
	h.lastOp = h.now()
	return nil
}

// Status reports the ledger healthy if its store is readable. With a non-zero
// maxIdle, it also requires an operation within that duration.
func (h *Health) Status(ledger Ledger, maxIdle time.Duration) (*Status, error) {
	// the ledger delivers events under its own lock, so it is probed without holding ours
	h.lock.RLock()
	ops, lastEvent, lastOp := h.ops, h.lastEvent, h.lastOp
	h.lock.RUnlock()

	status := &Status{
		Activity: &Activity{
			Operations: ops,
			LastEvent:  lastEvent,
		},
	}
	if !lastOp.IsZero() {
		status.Activity.Timestamp = &lastOp
	}

	iss, err := ledger.TotalIssuance()
	if err != nil {
		logger.Warn("ledger store unreachable", "err", err)
	} else {
		status.StoreReachable = true
		status.Issuance = iss
	}

	status.Healthy = status.StoreReachable
	if maxIdle > 0 && (lastOp.IsZero() || h.now().Sub(lastOp) > maxIdle) {
		status.Healthy = false
	}
	return status, nil
}
