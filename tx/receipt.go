// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"encoding/json"

	"github.com/bullchain/bullchain/bull"
)

// Event is an event emitted by a clause, with its payload json encoded.
type Event struct {
	Name    string          `json:"name"`
	PostID  bull.Bytes32    `json:"postID"`
	Account *bull.Address   `json:"account,omitempty" rlp:"nil"`
	Data    json.RawMessage `json:"data"`
}

// Receipt represents the results of a clause execution.
type Receipt struct {
	Origin bull.Address `json:"origin"`
	// kind of the revert error, empty if not reverted
	Error string `json:"error,omitempty"`
	// human readable error message
	Message    string   `json:"message,omitempty"`
	Reverted   bool     `json:"reverted"`
	WeightUsed uint64   `json:"weightUsed"`
	Events     []*Event `json:"events"`
}

// Receipts slice of receipts.
type Receipts []*Receipt

// WeightUsed returns the weight used by all receipts.
func (rs Receipts) WeightUsed() (total uint64) {
	for _, r := range rs {
		total += r.WeightUsed
	}
	return
}
