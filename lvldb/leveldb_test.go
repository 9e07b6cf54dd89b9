// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bullchain/bullchain/kv"
)

func TestLevelDB(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Get([]byte("missing"))
	assert.True(t, db.IsNotFound(err))

	require.NoError(t, db.Put([]byte("k1"), []byte("v1")))
	v, err := db.Get([]byte("k1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), v)

	has, err := db.Has([]byte("k1"))
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, db.Delete([]byte("k1")))
	has, err = db.Has([]byte("k1"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestLevelDBBulkAndSnapshot(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	bulk := db.Bulk()
	require.NoError(t, bulk.Put([]byte("a"), []byte("1")))
	require.NoError(t, bulk.Put([]byte("b"), []byte("2")))
	assert.Equal(t, 2, bulk.Len())

	snapshot := db.Snapshot()
	defer snapshot.Release()

	require.NoError(t, bulk.Write())

	_, err = snapshot.Get([]byte("a"))
	assert.True(t, snapshot.IsNotFound(err), "snapshot must not see later writes")

	v, err := db.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), v)
}

func TestBucket(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	store := kv.Bucket("x").NewStore(db)
	other := kv.Bucket("y").NewStore(db)

	require.NoError(t, store.Put([]byte("1"), []byte("one")))
	require.NoError(t, store.Put([]byte("2"), []byte("two")))
	require.NoError(t, other.Put([]byte("3"), []byte("three")))

	raw, err := db.Get([]byte("x1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), raw)

	iter := store.Iterate(kv.Range{})
	defer iter.Release()
	var keys []string
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	require.NoError(t, iter.Error())
	assert.Equal(t, []string{"1", "2"}, keys)
}
