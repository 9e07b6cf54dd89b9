// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bullchain/bullchain/bull"
	"github.com/bullchain/bullchain/logdb"
)

func newEvents(n int, name string, post bull.Bytes32, account *bull.Address) []*logdb.Event {
	var events []*logdb.Event
	for range n {
		events = append(events, &logdb.Event{
			Origin:  bull.BytesToAddress([]byte("origin")),
			Name:    name,
			PostID:  post,
			Account: account,
			Data:    []byte(`{}`),
		})
	}
	return events
}

func TestEvents(t *testing.T) {
	db, err := logdb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	alice := bull.BytesToAddress([]byte("alice"))
	gm := bull.Blake2b([]byte("gm"))
	gn := bull.Blake2b([]byte("gn"))

	w := db.NewWriter()
	w.Write(1, newEvents(1, "PostSubmitted", gm, &alice))
	w.Write(2, append(newEvents(3, "VoteSubmitted", gm, &alice), newEvents(2, "PostSubmitted", gn, &alice)...))
	w.Write(3, newEvents(1, "PostEnded", gm, nil))
	assert.Equal(t, 7, w.UncommittedCount())
	require.NoError(t, w.Commit())
	assert.Zero(t, w.UncommittedCount())

	newest, err := db.NewestBlockNumber()
	require.NoError(t, err)
	assert.Equal(t, uint32(3), newest)

	all, err := db.FilterEvents(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, all, 7)
	assert.Equal(t, uint32(2), all[1].BlockNumber)
	assert.Equal(t, uint32(0), all[1].Index)
	assert.Equal(t, uint32(4), all[5].Index)
	assert.Nil(t, all[6].Account)
	assert.Equal(t, alice, *all[0].Account)

	name := "PostSubmitted"
	events, err := db.FilterEvents(context.Background(), &logdb.EventFilter{
		CriteriaSet: []*logdb.EventCriteria{{Name: &name}},
	})
	require.NoError(t, err)
	assert.Len(t, events, 3)

	events, err = db.FilterEvents(context.Background(), &logdb.EventFilter{
		CriteriaSet: []*logdb.EventCriteria{{Name: &name, PostID: &gm}, {PostID: &gn}},
		Order:       logdb.DESC,
	})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, gn, events[0].PostID)
	assert.Equal(t, gm, events[2].PostID)

	events, err = db.FilterEvents(context.Background(), &logdb.EventFilter{
		Range:   &logdb.Range{From: 2, To: 2},
		Options: &logdb.Options{Offset: 1, Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, uint32(1), events[0].Index)

	require.NoError(t, db.NewWriter().Truncate(2))
	all, err = db.FilterEvents(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPersistent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.db")
	db, err := logdb.New(path)
	require.NoError(t, err)

	w := db.NewWriter()
	w.Write(5, newEvents(2, "VoteUnfrozen", bull.Bytes32{1}, nil))
	require.NoError(t, w.Commit())
	require.NoError(t, db.Close())

	db, err = logdb.New(path)
	require.NoError(t, err)
	defer db.Close()
	events, err := db.FilterEvents(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, path, db.Path())
}
