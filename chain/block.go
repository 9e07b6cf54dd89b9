// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/bullchain/bullchain/bull"
	"github.com/bullchain/bullchain/tx"
)

// Header contains almost all information about a block, except its clauses.
type Header struct {
	Number     uint32
	ParentID   bull.Bytes32
	StateHash  bull.Bytes32 // digest of the state changes made by the block
	WeightUsed uint64
}

// ID computes id of the block. The first 4 bytes are the block number.
func (h *Header) ID() (id bull.Bytes32) {
	id = bull.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, h)
	})
	binary.BigEndian.PutUint32(id[:], h.Number)
	return
}

// Call is a clause along with its authenticated origin.
type Call struct {
	Origin bull.Address
	Clause *tx.Clause
}

// Block is an immutable block, a header with its calls and their receipts.
type Block struct {
	Header   Header
	Calls    []*Call
	Receipts tx.Receipts
}

// ID returns the id of the block.
func (b *Block) ID() bull.Bytes32 {
	return b.Header.ID()
}

// Number returns the block number.
func (b *Block) Number() uint32 {
	return b.Header.Number
}

// Number extract block number from block id.
func Number(blockID bull.Bytes32) uint32 {
	return binary.BigEndian.Uint32(blockID[:])
}

func (b *Block) String() string {
	return fmt.Sprintf(`Block(%v)
	Number:		%v
	ParentID:	%v
	StateHash:	%v
	WeightUsed:	%v
	Calls:		%v`, b.ID(), b.Header.Number, b.Header.ParentID, b.Header.StateHash, b.Header.WeightUsed, len(b.Calls))
}
