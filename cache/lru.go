// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import lru "github.com/hashicorp/golang-lru"

// LRU is a fixed size cache with hit statistics.
type LRU struct {
	cache *lru.Cache
	stats Stats
}

func NewLRU(maxSize int) (*LRU, error) {
	cache, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &LRU{cache: cache}, nil
}

type Loader func(key any) (any, error)

// GetOrLoad returns the cached value of key, or loads and caches it.
// Errors are not cached.
func (l *LRU) GetOrLoad(key any, loader Loader) (any, error) {
	if v, ok := l.cache.Get(key); ok {
		l.stats.Hit()
		return v, nil
	}
	l.stats.Miss()
	v, err := loader(key)
	if err != nil {
		return nil, err
	}
	l.cache.Add(key, v)
	return v, nil
}

func (l *LRU) Get(key any) (any, bool) {
	return l.cache.Get(key)
}

func (l *LRU) Add(key, value any) {
	l.cache.Add(key, value)
}

// Purge drops all entries.
func (l *LRU) Purge() {
	l.cache.Purge()
}

func (l *LRU) Len() int {
	return l.cache.Len()
}

// Stats returns whether the hit rate changed since last call, and the hit and miss counts.
func (l *LRU) Stats() (bool, int64, int64) {
	return l.stats.Stats()
}
