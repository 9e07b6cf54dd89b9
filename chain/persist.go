// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/bullchain/bullchain/kv"
)

const (
	blockStoreName = "chain.blocks" // for blocks keyed by number
	propStoreName  = "chain.props"  // for property-named values such as best block number
)

var bestBlockNumKey = []byte("best-block-num")

func numberKey(num uint32) []byte {
	var k [4]byte
	binary.BigEndian.PutUint32(k[:], num)
	return k[:]
}

func saveRLP(w kv.Putter, key []byte, val any) error {
	data, err := rlp.EncodeToBytes(val)
	if err != nil {
		return err
	}
	return w.Put(key, data)
}

func loadRLP(r kv.Getter, key []byte, val any) error {
	data, err := r.Get(key)
	if err != nil {
		return err
	}
	return rlp.DecodeBytes(data, val)
}

func saveBlock(w kv.Putter, b *Block) error {
	return saveRLP(w, numberKey(b.Number()), b)
}

func loadBlock(r kv.Getter, num uint32) (*Block, error) {
	var b Block
	if err := loadRLP(r, numberKey(num), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func saveBestBlockNum(w kv.Putter, num uint32) error {
	return w.Put(bestBlockNumKey, numberKey(num))
}

func loadBestBlockNum(r kv.Getter) (uint32, error) {
	data, err := r.Get(bestBlockNumKey)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(data), nil
}
