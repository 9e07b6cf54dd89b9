// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"
	"math"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/bullchain/bullchain/bull"
)

type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
	stmtCache     *stmtCache
}

// New create or open log db at given path.
func New(path string) (*LogDB, error) {
	return open(path, path+"?_journal=wal&cache=shared")
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return open(":memory:", "file::memory:")
}

func open(path, dsn string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	// a memory db only lives as long as its single connection
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, err
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path,
		db,
		driverVer,
		newStmtCache(db),
	}, nil
}

// Close close the log db.
func (db *LogDB) Close() error {
	db.stmtCache.Clear()
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	const query = "SELECT seq, origin, name, postID, account, data FROM event"
	if filter == nil {
		return db.queryEvents(ctx, query+" ORDER BY seq ASC")
	}

	var (
		args []any
		stmt = query + " WHERE 1"
	)
	if filter.Range != nil {
		args = append(args, newSequence(filter.Range.From, 0))
		stmt += " AND seq >= ?"
		if filter.Range.To >= filter.Range.From {
			args = append(args, newSequence(filter.Range.To, math.MaxInt32))
			stmt += " AND seq <= ?"
		}
	}

	for i, criteria := range filter.CriteriaSet {
		if i == 0 {
			stmt += " AND (( 1"
		} else {
			stmt += " OR ( 1"
		}
		if criteria.Name != nil {
			args = append(args, *criteria.Name)
			stmt += " AND name = ?"
		}
		if criteria.PostID != nil {
			args = append(args, criteria.PostID.Bytes())
			stmt += " AND postID = ?"
		}
		if criteria.Account != nil {
			args = append(args, criteria.Account.Bytes())
			stmt += " AND account = ?"
		}
		stmt += " )"
	}
	if len(filter.CriteriaSet) > 0 {
		stmt += ")"
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC"
	} else {
		stmt += " ORDER BY seq ASC"
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryEvents(ctx, stmt, args...)
}

func (db *LogDB) queryEvents(ctx context.Context, query string, args ...any) ([]*Event, error) {
	stmt, err := db.stmtCache.Prepare(query)
	if err != nil {
		return nil, err
	}
	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq     sequence
			origin  []byte
			name    string
			postID  []byte
			account []byte
			data    []byte
		)
		if err := rows.Scan(&seq, &origin, &name, &postID, &account, &data); err != nil {
			return nil, err
		}
		event := &Event{
			BlockNumber: seq.BlockNumber(),
			Index:       seq.Index(),
			Origin:      bull.BytesToAddress(origin),
			Name:        name,
			PostID:      bull.BytesToBytes32(postID),
			Data:        data,
		}
		if len(account) > 0 {
			a := bull.BytesToAddress(account)
			event.Account = &a
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// NewestBlockNumber returns the number of the newest block having events, or 0.
func (db *LogDB) NewestBlockNumber() (uint32, error) {
	var seq sql.NullInt64
	if err := db.db.QueryRow("SELECT MAX(seq) FROM event").Scan(&seq); err != nil {
		return 0, err
	}
	if !seq.Valid {
		return 0, nil
	}
	return sequence(seq.Int64).BlockNumber(), nil
}

// NewWriter creates a log writer.
func (db *LogDB) NewWriter() *Writer {
	return &Writer{db: db.db}
}

// Writer accumulates events and writes them in one sql transaction.
type Writer struct {
	db     *sql.DB
	events []*Event
}

// Write queues the events of one block. Indices are assigned in order.
func (w *Writer) Write(blockNum uint32, events []*Event) {
	for i, ev := range events {
		ev.BlockNumber = blockNum
		ev.Index = uint32(i)
		w.events = append(w.events, ev)
	}
}

// UncommittedCount returns the count of uncommitted events.
func (w *Writer) UncommittedCount() int {
	return len(w.events)
}

// Commit writes queued events.
func (w *Writer) Commit() error {
	if len(w.events) == 0 {
		return nil
	}
	err := w.exec(func(tx *sql.Tx) error {
		for _, ev := range w.events {
			var account []byte
			if ev.Account != nil {
				account = ev.Account.Bytes()
			}
			if _, err := tx.Exec("INSERT OR REPLACE INTO event(seq, blockNumber, origin, name, postID, account, data) VALUES (?, ?, ?, ?, ?, ?, ?)",
				newSequence(ev.BlockNumber, ev.Index),
				ev.BlockNumber,
				ev.Origin.Bytes(),
				ev.Name,
				ev.PostID.Bytes(),
				account,
				ev.Data,
			); err != nil {
				return errors.Wrap(err, "insert event")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	w.events = w.events[:0]
	return nil
}

// Rollback drops queued events.
func (w *Writer) Rollback() {
	w.events = w.events[:0]
}

// Truncate deletes events of blocks after blockNum (included).
func (w *Writer) Truncate(blockNum uint32) error {
	return w.exec(func(tx *sql.Tx) error {
		_, err := tx.Exec("DELETE FROM event WHERE seq >= ?", newSequence(blockNum, 0))
		return err
	})
}

func (w *Writer) exec(proc func(*sql.Tx) error) error {
	tx, err := w.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
