// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"github.com/bullchain/bullchain/chain"
)

// max blocks consumed by a single Read
const readBatch = 64

type blockReader struct {
	chain *chain.Chain
	next  uint32
}

// newBlockReader reads blocks after the one numbered pos.
func newBlockReader(chain *chain.Chain, pos uint32) *blockReader {
	return &blockReader{
		chain: chain,
		next:  pos + 1,
	}
}

func (br *blockReader) Read() ([]any, bool, error) {
	to, ok := nextBatch(br.chain, br.next)
	if !ok {
		return nil, false, nil
	}
	var msgs []any
	for num := br.next; num <= to; num++ {
		b, err := br.chain.GetBlock(num)
		if err != nil {
			return nil, false, err
		}
		msgs = append(msgs, convertBlock(b))
	}
	br.next = to + 1
	return msgs, true, nil
}

// nextBatch returns the last block number of the batch starting at from.
func nextBatch(chain *chain.Chain, from uint32) (uint32, bool) {
	best := chain.BestBlock().Number()
	if from > best {
		return 0, false
	}
	if best-from >= readBatch {
		return from + readBatch - 1, true
	}
	return best, true
}
