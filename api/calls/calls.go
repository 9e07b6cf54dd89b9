// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package calls

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/bullchain/bullchain/api/utils"
	"github.com/bullchain/bullchain/bull"
	"github.com/bullchain/bullchain/chain"
	"github.com/bullchain/bullchain/tx"
)

type Calls struct {
	chain *chain.Chain
	// accept a bare origin without signature
	unsigned bool
}

func New(chain *chain.Chain, unsigned bool) *Calls {
	return &Calls{chain, unsigned}
}

func (c *Calls) origin(req *CallRequest, clause *tx.Clause) (bull.Address, error) {
	if len(req.Signature) > 0 {
		origin, err := tx.Origin(clause, req.Signature)
		if err != nil {
			return bull.Address{}, utils.BadRequest(errors.WithMessage(err, "signature"))
		}
		if req.Origin != nil && *req.Origin != origin {
			return bull.Address{}, utils.BadRequest(errors.New("origin does not match signature"))
		}
		return origin, nil
	}
	if req.Origin == nil {
		return bull.Address{}, utils.BadRequest(errors.New("origin or signature required"))
	}
	if !c.unsigned {
		return bull.Address{}, utils.HTTPError(errors.New("unsigned calls are not allowed"), http.StatusForbidden)
	}
	return *req.Origin, nil
}

func (c *Calls) handleCall(w http.ResponseWriter, req *http.Request) error {
	var body CallRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if !body.Clause.Kind.Valid() {
		return utils.BadRequest(errors.Errorf("clause: unknown kind %q", body.Clause.Kind))
	}
	clause := tx.NewClause(body.Clause.Kind, body.Clause.content()).
		WithAmount(body.Clause.Amount).
		WithDirection(body.Clause.Direction)

	origin, err := c.origin(&body, clause)
	if err != nil {
		return err
	}

	receipt, b, err := c.chain.Apply(origin, clause)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &CallResult{
		Block:   BlockRef{b.Number(), b.ID()},
		Receipt: receipt,
	})
}

func (c *Calls) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(c.handleCall))
}
