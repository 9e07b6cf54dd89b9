// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package calls

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/bullchain/bullchain/builtin/bullposting/types"
	"github.com/bullchain/bullchain/bull"
	"github.com/bullchain/bullchain/tx"
)

// Clause is the json form of a module call.
type Clause struct {
	Kind       tx.Kind         `json:"kind"`
	Content    string          `json:"content,omitempty"`
	ContentHex *hexutil.Bytes  `json:"contentHex,omitempty"`
	Amount     uint64          `json:"amount,omitempty"`
	Direction  types.Direction `json:"direction"`
}

func (c *Clause) content() []byte {
	if c.ContentHex != nil {
		return *c.ContentHex
	}
	return []byte(c.Content)
}

// CallRequest is a clause with either a signature of its origin, or an
// unauthenticated origin when the node allows it.
type CallRequest struct {
	Clause    Clause        `json:"clause"`
	Origin    *bull.Address `json:"origin,omitempty"`
	Signature hexutil.Bytes `json:"signature,omitempty"`
}

// BlockRef identifies the block a call was sealed into.
type BlockRef struct {
	Number uint32       `json:"number"`
	ID     bull.Bytes32 `json:"id"`
}

type CallResult struct {
	Block   BlockRef    `json:"block"`
	Receipt *tx.Receipt `json:"receipt"`
}
