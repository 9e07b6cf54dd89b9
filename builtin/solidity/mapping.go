// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"errors"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/bullchain/bullchain/bull"
)

var (
	ErrKeyExists   = errors.New("solidity: key already exists")
	ErrKeyNotFound = errors.New("solidity: key not found")
)

type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction for builtin modules, similar to the mapping in Solidity.
// Values are rlp encoded; an empty slot decodes to the zero value of V.
type Mapping[K Key, V any] struct {
	context *Context
	basePos bull.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos bull.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) bull.Bytes32 {
	return bull.Blake2b(key.Bytes(), m.basePos.Bytes())
}

func (m *Mapping[K, V]) raw(key K) ([]byte, error) {
	raw, err := m.context.state.GetRawStorage(m.context.address, m.position(key))
	if err != nil {
		return nil, err
	}
	m.context.UseGas(toWordSize(len(raw)) * bull.SloadWeight)
	return raw, nil
}

// Get returns the value stored under key, or the zero value if absent.
func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	raw, err := m.raw(key)
	if err != nil || len(raw) == 0 {
		return value, err
	}
	err = rlp.DecodeBytes(raw, &value)
	return
}

// Exists reports whether a value is stored under key.
func (m *Mapping[K, V]) Exists(key K) (bool, error) {
	raw, err := m.raw(key)
	if err != nil {
		return false, err
	}
	return len(raw) > 0, nil
}

// Insert stores a value under a key that must be empty.
func (m *Mapping[K, V]) Insert(key K, value V) error {
	exists, err := m.Exists(key)
	if err != nil {
		return err
	}
	if exists {
		return ErrKeyExists
	}
	return m.set(key, value, bull.SstoreSetWeight)
}

// Update overwrites the value of a key that must be present.
func (m *Mapping[K, V]) Update(key K, value V) error {
	exists, err := m.Exists(key)
	if err != nil {
		return err
	}
	if !exists {
		return ErrKeyNotFound
	}
	return m.set(key, value, bull.SstoreResetWeight)
}

// Upsert stores the value regardless of whether the key is present.
func (m *Mapping[K, V]) Upsert(key K, value V) error {
	exists, err := m.Exists(key)
	if err != nil {
		return err
	}
	if exists {
		return m.set(key, value, bull.SstoreResetWeight)
	}
	return m.set(key, value, bull.SstoreSetWeight)
}

// Delete clears the slot of key. Deleting an absent key is a no-op.
func (m *Mapping[K, V]) Delete(key K) {
	m.context.UseGas(bull.SclearWeight)
	m.context.state.SetRawStorage(m.context.address, m.position(key), nil)
}

func (m *Mapping[K, V]) set(key K, value V, weight uint64) error {
	return m.context.state.EncodeStorage(m.context.address, m.position(key), func() ([]byte, error) {
		val, err := rlp.EncodeToBytes(value)
		if err != nil {
			return nil, err
		}
		m.context.UseGas(toWordSize(len(val)) * weight)
		return val, nil
	})
}
