// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/bullchain/bullchain/bull"
)

// Raw is a single rlp encoded value stored at a fixed slot.
type Raw[V any] struct {
	context *Context
	pos     bull.Bytes32
}

func NewRaw[V any](context *Context, pos bull.Bytes32) *Raw[V] {
	return &Raw[V]{context: context, pos: pos}
}

func (r *Raw[V]) Get() (value V, err error) {
	err = r.context.state.DecodeStorage(r.context.address, r.pos, func(raw []byte) error {
		r.context.UseGas(toWordSize(len(raw)) * bull.SloadWeight)
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

func (r *Raw[V]) Upsert(value V) error {
	return r.context.state.EncodeStorage(r.context.address, r.pos, func() ([]byte, error) {
		val, err := rlp.EncodeToBytes(value)
		if err != nil {
			return nil, err
		}
		r.context.UseGas(toWordSize(len(val)) * bull.SstoreResetWeight)
		return val, nil
	})
}
