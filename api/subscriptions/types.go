// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"encoding/json"

	"github.com/bullchain/bullchain/bull"
	"github.com/bullchain/bullchain/chain"
	"github.com/bullchain/bullchain/logdb"
)

// BlockMessage block piped by websocket
type BlockMessage struct {
	Number     uint32       `json:"number"`
	ID         bull.Bytes32 `json:"id"`
	ParentID   bull.Bytes32 `json:"parentID"`
	StateHash  bull.Bytes32 `json:"stateHash"`
	WeightUsed uint64       `json:"weightUsed"`
	Calls      int          `json:"calls"`
	Reverted   int          `json:"reverted"`
}

func convertBlock(b *chain.Block) *BlockMessage {
	msg := &BlockMessage{
		Number:     b.Number(),
		ID:         b.ID(),
		ParentID:   b.Header.ParentID,
		StateHash:  b.Header.StateHash,
		WeightUsed: b.Header.WeightUsed,
		Calls:      len(b.Calls),
	}
	for _, r := range b.Receipts {
		if r.Reverted {
			msg.Reverted++
		}
	}
	return msg
}

// LogMeta block info of an event
type LogMeta struct {
	BlockID     bull.Bytes32 `json:"blockID"`
	BlockNumber uint32       `json:"blockNumber"`
	Index       uint32       `json:"index"`
	Origin      bull.Address `json:"origin"`
}

// EventMessage event piped by websocket
type EventMessage struct {
	Name    string          `json:"name"`
	PostID  bull.Bytes32    `json:"postID"`
	Account *bull.Address   `json:"account,omitempty"`
	Data    json.RawMessage `json:"data"`
	Meta    LogMeta         `json:"meta"`
}

func convertEvent(blockID bull.Bytes32, ev *logdb.Event) *EventMessage {
	return &EventMessage{
		Name:    ev.Name,
		PostID:  ev.PostID,
		Account: ev.Account,
		Data:    ev.Data,
		Meta: LogMeta{
			BlockID:     blockID,
			BlockNumber: ev.BlockNumber,
			Index:       ev.Index,
			Origin:      ev.Origin,
		},
	}
}

// EventFilter contains options for event subscription. Empty fields match anything.
type EventFilter struct {
	Name    *string
	PostID  *bull.Bytes32
	Account *bull.Address
}

func (f *EventFilter) criteria() []*logdb.EventCriteria {
	if f.Name == nil && f.PostID == nil && f.Account == nil {
		return nil
	}
	return []*logdb.EventCriteria{{
		Name:    f.Name,
		PostID:  f.PostID,
		Account: f.Account,
	}}
}
