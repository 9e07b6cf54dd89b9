// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

// create a table for module events
const eventTableSchema = `
CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY NOT NULL,
	blockNumber INTEGER NOT NULL,
	origin BLOB(20) NOT NULL,
	name TEXT NOT NULL,
	postID BLOB(32) NOT NULL,
	account BLOB(20),
	data BLOB
);

CREATE INDEX IF NOT EXISTS event_i_name ON event(name);
CREATE INDEX IF NOT EXISTS event_i_post ON event(postID);
CREATE INDEX IF NOT EXISTS event_i_account ON event(account);
`
