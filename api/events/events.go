// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"fmt"
	"math"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/ledger/api/utils"
	"github.com/vechain/ledger/eventdb"
)

type Events struct {
	db    *eventdb.EventDB
	limit uint64
}

func New(db *eventdb.EventDB, limit uint64) *Events {
	return &Events{
		db,
		limit,
	}
}

func (e *Events) filter(filter *eventdb.Filter) ([]*eventdb.Event, error) {
	if filter.Options != nil && filter.Options.Limit > e.limit {
		return nil, utils.Forbidden(fmt.Errorf("options.limit exceeds the maximum allowed value of %d", e.limit))
	}
	if filter.Options != nil && filter.Options.Offset > math.MaxInt64 {
		return nil, utils.BadRequest(fmt.Errorf("options.offset exceeds the maximum allowed value of %d", int64(math.MaxInt64)))
	}
	if filter.Range != nil {
		if filter.Range.Unit != eventdb.Seq && filter.Range.Unit != eventdb.Time {
			return nil, utils.BadRequest(fmt.Errorf("range.unit: unsupported unit %q", filter.Range.Unit))
		}
		if filter.Range.From > filter.Range.To {
			return nil, utils.BadRequest(errors.New("range.to must be greater than or equal to range.from"))
		}
	}
	if filter.Order != "" && filter.Order != eventdb.ASC && filter.Order != eventdb.DESC {
		return nil, utils.BadRequest(fmt.Errorf("order: unsupported order %q", filter.Order))
	}
	if filter.Options == nil {
		// one more than the limit, to detect an oversized result
		filter.Options = &eventdb.Options{
			Offset: 0,
			Limit:  e.limit + 1,
		}
	}

	events, err := e.db.Filter(filter)
	if err != nil {
		return nil, err
	}
	if len(events) > int(e.limit) {
		return nil, utils.Forbidden(fmt.Errorf("the number of filtered events exceeds the maximum allowed value of %d, please use pagination", e.limit))
	}
	if events == nil {
		events = []*eventdb.Event{}
	}
	return events, nil
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	var filter eventdb.Filter
	if err := utils.ParseBody(req.Body, &filter); err != nil {
		return err
	}
	events, err := e.filter(&filter)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, events)
}

// handleGetEvents is the query string form of the filter, for one account.
func (e *Events) handleGetEvents(w http.ResponseWriter, req *http.Request) error {
	query := req.URL.Query()

	var filter eventdb.Filter
	if s := query.Get("account"); s != "" {
		addr, err := utils.ParseAddress(s, "account")
		if err != nil {
			return err
		}
		filter.Account = &addr
	}
	filter.Names = query["name"]
	filter.Order = eventdb.OrderType(query.Get("order"))

	limit, hasLimit, err := utils.QueryUint(query, "limit")
	if err != nil {
		return err
	}
	offset, _, err := utils.QueryUint(query, "offset")
	if err != nil {
		return err
	}
	if hasLimit {
		filter.Options = &eventdb.Options{Offset: offset, Limit: limit}
	}

	events, err := e.filter(&filter)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, events)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("events_filter").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
	sub.Path("").
		Methods(http.MethodGet).
		Name("events_get").
		HandlerFunc(utils.WrapHandlerFunc(e.handleGetEvents))
}
