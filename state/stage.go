// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/bullchain/bullchain/bull"
	"github.com/bullchain/bullchain/kv"
)

// Stage abstracts changes of a state, ready to be committed.
type Stage struct {
	store   kv.Store
	changes map[storageKey][]byte
	order   []storageKey
}

// Len returns number of changed slots.
func (s *Stage) Len() int {
	return len(s.order)
}

// Hash computes a digest over the changed slots, in write order.
func (s *Stage) Hash() bull.Bytes32 {
	parts := make([][]byte, 0, len(s.order)*2)
	for _, k := range s.order {
		parts = append(parts, k.Bytes(), s.changes[k])
	}
	return bull.Blake2b(parts...)
}

// Commit writes all changes into the store atomically.
func (s *Stage) Commit() error {
	bulk := s.store.Bulk()
	for _, k := range s.order {
		v := s.changes[k]
		var err error
		if len(v) == 0 {
			err = bulk.Delete(k.Bytes())
		} else {
			err = bulk.Put(k.Bytes(), v)
		}
		if err != nil {
			return &Error{err}
		}
	}
	if err := bulk.Write(); err != nil {
		return &Error{err}
	}
	return nil
}
