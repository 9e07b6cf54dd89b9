// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/bullchain/bullchain/builtin/bullposting/types"
	"github.com/bullchain/bullchain/bull"
)

// Kind names the module operation a clause invokes.
type Kind string

const (
	KindSubmitPost    Kind = "submit_post"
	KindSubmitVote    Kind = "submit_vote"
	KindUpdateVote    Kind = "update_vote"
	KindResolveVoting Kind = "resolve_voting"
	KindEndPost       Kind = "end_post"
)

// Valid returns whether the kind is a known operation.
func (k Kind) Valid() bool {
	switch k {
	case KindSubmitPost, KindSubmitVote, KindUpdateVote, KindResolveVoting, KindEndPost:
		return true
	}
	return false
}

type clauseBody struct {
	Kind      Kind
	Content   []byte
	Amount    uint64
	Direction types.Direction
}

// Clause is the basic execution unit, one module call.
type Clause struct {
	body clauseBody
}

// NewClause create a new clause instance.
func NewClause(kind Kind, content []byte) *Clause {
	return &Clause{
		clauseBody{
			Kind:    kind,
			Content: append([]byte(nil), content...),
		},
	}
}

// WithAmount create a new clause copy with amount changed.
// Amount is the bond of a post or the stake of a vote.
func (c *Clause) WithAmount(amount uint64) *Clause {
	newClause := *c
	newClause.body.Amount = amount
	return &newClause
}

// WithDirection create a new clause copy with direction changed.
func (c *Clause) WithDirection(dir types.Direction) *Clause {
	newClause := *c
	newClause.body.Direction = dir
	return &newClause
}

func (c *Clause) Kind() Kind {
	return c.body.Kind
}

// Content returns a copy of the post content.
func (c *Clause) Content() []byte {
	return append([]byte(nil), c.body.Content...)
}

func (c *Clause) Amount() uint64 {
	return c.body.Amount
}

func (c *Clause) Direction() types.Direction {
	return c.body.Direction
}

// PostID returns the id of the post the clause addresses.
func (c *Clause) PostID() types.PostID {
	return types.PostIDOf(c.body.Content)
}

// SigningHash returns the hash an origin signs to authenticate the clause.
func (c *Clause) SigningHash() bull.Bytes32 {
	return bull.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, &c.body)
	})
}

// EncodeRLP implements rlp.Encoder
func (c *Clause) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &c.body)
}

// DecodeRLP implements rlp.Decoder
func (c *Clause) DecodeRLP(s *rlp.Stream) error {
	var body clauseBody
	if err := s.Decode(&body); err != nil {
		return err
	}
	*c = Clause{body}
	return nil
}

func (c *Clause) String() string {
	return fmt.Sprintf(`
		(Kind:		%v
		 Post:		%v
		 Amount:	%v
		 Direction:	%v)`, c.body.Kind,
		c.PostID().AbbrevString(),
		c.body.Amount,
		c.body.Direction)
}
