// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

const eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	seq INTEGER NOT NULL,
	eventIndex INTEGER NOT NULL,
	time INTEGER NOT NULL,
	name TEXT NOT NULL,
	account BLOB(20) NOT NULL,
	counterparty BLOB(20),
	amount BLOB(32),
	reserved BLOB(32),
	PRIMARY KEY (seq, eventIndex)
);

CREATE INDEX IF NOT EXISTS event_account ON event(account);
CREATE INDEX IF NOT EXISTS event_counterparty ON event(counterparty);
CREATE INDEX IF NOT EXISTS event_time ON event(time);`
