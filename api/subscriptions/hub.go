// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"sync"
	"time"

	"github.com/vechain/ledger/balances"
	"github.com/vechain/ledger/eventdb"
	"github.com/vechain/ledger/thor"
)

const subscriberBacklog = 64

// subscriber receives the events of the account it watches, or all events if account is nil.
type subscriber struct {
	account *thor.Address
	ch      chan []*eventdb.Event
}

func (s *subscriber) match(ev *eventdb.Event) bool {
	if s.account == nil {
		return true
	}
	return ev.Account == *s.account || (ev.Name == balances.EventTransfer && ev.Counterparty == *s.account)
}

// Hub fans ledger events out to live subscribers. It implements balances.EventSink.
// Delivery never blocks the ledger: a subscriber that falls behind is dropped.
type Hub struct {
	mu      sync.Mutex
	subs    map[*subscriber]struct{}
	nextSeq uint64
	now     func() time.Time
	closed  bool
}

var _ balances.EventSink = (*Hub)(nil)

// NewHub creates a hub numbering delivered batches from nextSeq.
func NewHub(nextSeq uint64) *Hub {
	return &Hub{
		subs:    make(map[*subscriber]struct{}),
		nextSeq: nextSeq,
		now:     time.Now,
	}
}

// Handle broadcasts the events of one operation.
func (h *Hub) Handle(events []balances.Event) error {
	if len(events) == 0 {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	seq, now := h.nextSeq, uint64(h.now().Unix())
	h.nextSeq++

	records := make([]*eventdb.Event, 0, len(events))
	for i, ev := range events {
		rec, err := eventdb.NewEvent(seq, uint32(i), now, ev)
		if err != nil {
			return err
		}
		records = append(records, rec)
	}

	for sub := range h.subs {
		var matched []*eventdb.Event
		for _, rec := range records {
			if sub.match(rec) {
				matched = append(matched, rec)
			}
		}
		if len(matched) == 0 {
			continue
		}
		select {
		case sub.ch <- matched:
		default:
			logger.Debug("dropping slow subscriber", "seq", seq)
			h.remove(sub)
		}
	}
	return nil
}

func (h *Hub) subscribe(account *thor.Address) (*subscriber, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, false
	}
	sub := &subscriber{
		account: account,
		ch:      make(chan []*eventdb.Event, subscriberBacklog),
	}
	h.subs[sub] = struct{}{}
	return sub, true
}

func (h *Hub) unsubscribe(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(sub)
}

// remove must be called with the lock held.
func (h *Hub) remove(sub *subscriber) {
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.ch)
	}
}

// Len returns the number of live subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close disconnects all subscribers. Further subscriptions are refused.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for sub := range h.subs {
		h.remove(sub)
	}
}
