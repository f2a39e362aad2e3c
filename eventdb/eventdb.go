// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"database/sql"
	"math/big"
	"strings"
	"sync"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/vechain/ledger/balances"
	"github.com/vechain/ledger/log"
	"github.com/vechain/ledger/thor"
)

var logger = log.WithContext("pkg", "eventdb")

// EventDB persists ledger events. It implements balances.EventSink,
// every delivered batch is stored under a new sequence number.
type EventDB struct {
	path          string
	db            *sql.DB
	sqliteVersion string

	mu      sync.Mutex
	nextSeq uint64
	now     func() time.Time
}

var _ balances.EventSink = (*EventDB)(nil)

// New open an event db
func New(path string) (*EventDB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// memory databases are per connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(eventTableSchema); err != nil {
		db.Close()
		return nil, err
	}

	var maxSeq sql.NullInt64
	if err := db.QueryRow("SELECT MAX(seq) FROM event").Scan(&maxSeq); err != nil {
		db.Close()
		return nil, err
	}

	s, _, _ := sqlite3.Version()
	logger.Debug("event db opened", "path", path, "sqlite", s, "seq", maxSeq.Int64)
	return &EventDB{
		path:          path,
		db:            db,
		sqliteVersion: s,
		nextSeq:       uint64(maxSeq.Int64) + 1,
		now:           time.Now,
	}, nil
}

// NewMem create a memory sqlite db
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

// Handle stores the events of one operation.
func (db *EventDB) Handle(events []balances.Event) error {
	if len(events) == 0 {
		return nil
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	seq, now := db.nextSeq, uint64(db.now().Unix())
	records := make([]*Event, 0, len(events))
	for i, ev := range events {
		rec, err := NewEvent(seq, uint32(i), now, ev)
		if err != nil {
			return err
		}
		records = append(records, rec)
	}
	if err := db.Insert(records); err != nil {
		return err
	}
	db.nextSeq++
	return nil
}

// NextSeq returns the sequence number the next handled batch will be stored under.
func (db *EventDB) NextSeq() uint64 {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.nextSeq
}

// Insert inserts events into db.
func (db *EventDB) Insert(events []*Event) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	for _, ev := range events {
		var counterparty []byte
		if ev.Name == balances.EventTransfer {
			counterparty = ev.Counterparty.Bytes()
		}
		if _, err = tx.Exec("INSERT OR REPLACE INTO event(seq, eventIndex, time, name, account, counterparty, amount, reserved) VALUES (?, ?, ?, ?, ?, ?, ?, ?);",
			ev.Seq,
			ev.Index,
			ev.Time,
			ev.Name,
			ev.Account.Bytes(),
			counterparty,
			ev.Amount.Big().Bytes(),
			ev.Reserved.Big().Bytes()); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Filter return events with options
func (db *EventDB) Filter(filter *Filter) ([]*Event, error) {
	if filter == nil {
		return db.query("SELECT * FROM event ORDER BY seq ASC, eventIndex ASC")
	}
	var args []any
	stmt := "SELECT * FROM event WHERE 1"

	if filter.Range != nil {
		condition := "seq"
		if filter.Range.Unit == Time {
			condition = "time"
		}
		args = append(args, filter.Range.From)
		stmt += " AND " + condition + " >= ?"
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND " + condition + " <= ?"
		}
	}
	if filter.Account != nil {
		args = append(args, filter.Account.Bytes(), filter.Account.Bytes())
		stmt += " AND (account = ? OR counterparty = ?)"
	}
	if len(filter.Names) > 0 {
		stmt += " AND name IN (?" + strings.Repeat(", ?", len(filter.Names)-1) + ")"
		for _, name := range filter.Names {
			args = append(args, name)
		}
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC, eventIndex DESC"
	} else {
		stmt += " ORDER BY seq ASC, eventIndex ASC"
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.query(stmt, args...)
}

// query query events
func (db *EventDB) query(stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.Query(stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var (
			seq          uint64
			index        uint32
			ts           uint64
			name         string
			account      []byte
			counterparty []byte
			amount       []byte
			reserved     []byte
		)
		if err := rows.Scan(
			&seq,
			&index,
			&ts,
			&name,
			&account,
			&counterparty,
			&amount,
			&reserved,
		); err != nil {
			return nil, err
		}
		events = append(events, &Event{
			Seq:          seq,
			Index:        index,
			Time:         ts,
			Name:         name,
			Account:      thor.BytesToAddress(account),
			Counterparty: thor.BytesToAddress(counterparty),
			Amount:       balanceValue(amount),
			Reserved:     balanceValue(reserved),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// Path return db's path
func (db *EventDB) Path() string {
	return db.path
}

// Close close sqlite
func (db *EventDB) Close() error {
	return db.db.Close()
}

func balanceValue(data []byte) thor.Balance {
	b, _ := thor.BalanceFromBig(new(big.Int).SetBytes(data))
	return b
}
