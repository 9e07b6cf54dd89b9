// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bullchain/bullchain/stackedmap"
)

func M(a ...any) []any {
	return a
}

func TestStackedMap(t *testing.T) {
	src := make(map[string]string)
	src["foo"] = "bar"

	sm := stackedmap.New(func(key string) (string, bool, error) {
		v, r := src[key]
		return v, r, nil
	})

	tests := []struct {
		f         func()
		depth     int
		putKey    string
		putValue  string
		getKey    string
		getReturn []any
	}{
		{func() {}, 0, "", "", "foo", M("bar", true, nil)},
		{func() { sm.Push() }, 1, "foo", "baz", "foo", M("baz", true, nil)},
		{func() { sm.Push() }, 2, "foo", "qux", "foo", M("qux", true, nil)},
		{func() { sm.Pop() }, 1, "", "", "foo", M("baz", true, nil)},
		{func() { sm.Push() }, 2, "foo", "quux", "foo", M("quux", true, nil)},
		{func() { sm.PopTo(0) }, 0, "", "", "foo", M("bar", true, nil)},
		{func() {}, 0, "", "", "missing", M("", false, nil)},
	}

	for _, test := range tests {
		test.f()
		assert.Equal(t, test.depth, sm.Depth())
		if test.putKey != "" {
			sm.Put(test.putKey, test.putValue)
		}
		v, ok, err := sm.Get(test.getKey)
		assert.Equal(t, test.getReturn, M(v, ok, err))
	}
}

func TestStackedMapPutTwiceThenPop(t *testing.T) {
	sm := stackedmap.New(func(key int) (int, bool, error) { return 0, false, nil })

	sm.Push()
	sm.Put(1, 10)
	sm.Push()
	sm.Put(1, 20)
	sm.Put(1, 30)

	v, ok, _ := sm.Get(1)
	assert.True(t, ok)
	assert.Equal(t, 30, v)

	sm.Pop()
	v, ok, _ = sm.Get(1)
	assert.True(t, ok)
	assert.Equal(t, 10, v)
}

func TestStackedMapJournal(t *testing.T) {
	sm := stackedmap.New(func(key string) (int, bool, error) { return 0, false, nil })
	sm.Push()
	sm.Put("a", 1)
	sm.Put("b", 2)
	sm.Push()
	sm.Put("a", 3)

	var keys []string
	var values []int
	sm.Journal(func(k string, v int) bool {
		keys = append(keys, k)
		values = append(values, v)
		return true
	})
	assert.Equal(t, []string{"a", "b", "a"}, keys)
	assert.Equal(t, []int{1, 2, 3}, values)

	sm.Pop()
	count := 0
	sm.Journal(func(string, int) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}
