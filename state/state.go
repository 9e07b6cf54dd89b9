// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/bullchain/bullchain/bull"
	"github.com/bullchain/bullchain/kv"
	"github.com/bullchain/bullchain/stackedmap"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr bull.Address
	key  bull.Bytes32
}

// Bytes returns the on-disk key: address followed by slot key.
func (k storageKey) Bytes() []byte {
	b := make([]byte, 0, bull.AddressLength+32)
	b = append(b, k.addr[:]...)
	return append(b, k.key[:]...)
}

// State manages module storage on top of a kv store.
// All writes are journaled and only reach the store on Stage().Commit().
type State struct {
	store kv.Store
	cache map[storageKey][]byte
	sm    *stackedmap.StackedMap[storageKey, []byte]
}

// New create state object.
func New(store kv.Store) *State {
	s := &State{
		store: store,
		cache: make(map[storageKey][]byte),
	}
	s.sm = stackedmap.New(s.cacheGetter)
	// base level, never popped by RevertTo
	s.sm.Push()
	return s
}

// cacheGetter implements stackedmap.MapGetter.
func (s *State) cacheGetter(key storageKey) ([]byte, bool, error) {
	if v, ok := s.cache[key]; ok {
		return v, true, nil
	}
	v, err := s.store.Get(key.Bytes())
	if err != nil {
		if !s.store.IsNotFound(err) {
			return nil, false, err
		}
		v = nil
	}
	s.cache[key] = v
	return v, true, nil
}

// GetRawStorage returns raw storage value for given address and key.
// An empty value means the slot is unset.
func (s *State) GetRawStorage(addr bull.Address, key bull.Bytes32) ([]byte, error) {
	v, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return v, nil
}

// SetRawStorage set raw storage value. Setting an empty value clears the slot.
func (s *State) SetRawStorage(addr bull.Address, key bull.Bytes32, raw []byte) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
func (s *State) EncodeStorage(addr bull.Address, key bull.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
func (s *State) DecodeStorage(addr bull.Address, key bull.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	if revision < 1 {
		revision = 1
	}
	s.sm.PopTo(revision)
}

// Stage collects the net changes made since the state was created.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey][]byte)
	var order []storageKey
	s.sm.Journal(func(k storageKey, v []byte) bool {
		if _, ok := changes[k]; !ok {
			order = append(order, k)
		}
		changes[k] = v
		return true
	})
	return &Stage{store: s.store, changes: changes, order: order}
}
