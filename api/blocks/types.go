// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blocks

import (
	"github.com/bullchain/bullchain/bull"
	"github.com/bullchain/bullchain/chain"
	"github.com/bullchain/bullchain/tx"
)

type Call struct {
	Origin    bull.Address `json:"origin"`
	Kind      tx.Kind      `json:"kind"`
	PostID    bull.Bytes32 `json:"postID"`
	Amount    uint64       `json:"amount"`
	Direction string       `json:"direction"`
}

type JSONBlock struct {
	Number     uint32       `json:"number"`
	ID         bull.Bytes32 `json:"id"`
	ParentID   bull.Bytes32 `json:"parentID"`
	StateHash  bull.Bytes32 `json:"stateHash"`
	WeightUsed uint64       `json:"weightUsed"`
	Calls      []*Call      `json:"calls"`
	Receipts   tx.Receipts  `json:"receipts,omitempty"`
}

// AdvanceRequest seals empty blocks.
type AdvanceRequest struct {
	Count uint32 `json:"count"`
}

func convertBlock(b *chain.Block, expanded bool) *JSONBlock {
	jb := &JSONBlock{
		Number:     b.Number(),
		ID:         b.ID(),
		ParentID:   b.Header.ParentID,
		StateHash:  b.Header.StateHash,
		WeightUsed: b.Header.WeightUsed,
		Calls:      make([]*Call, 0, len(b.Calls)),
	}
	for _, call := range b.Calls {
		jb.Calls = append(jb.Calls, &Call{
			Origin:    call.Origin,
			Kind:      call.Clause.Kind(),
			PostID:    call.Clause.PostID(),
			Amount:    call.Clause.Amount(),
			Direction: call.Clause.Direction().String(),
		})
	}
	if expanded {
		jb.Receipts = b.Receipts
	}
	return jb
}
