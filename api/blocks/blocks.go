// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blocks

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/bullchain/bullchain/api/utils"
	"github.com/bullchain/bullchain/chain"
)

// MaxAdvance caps the blocks sealed by one advance request.
const MaxAdvance = 100_000

type Blocks struct {
	chain *chain.Chain
}

func New(chain *chain.Chain) *Blocks {
	return &Blocks{chain}
}

func (b *Blocks) handleGetBlock(w http.ResponseWriter, req *http.Request) error {
	revision := mux.Vars(req)["revision"]
	expanded := req.URL.Query().Get("expanded") == "true"

	if revision == "best" || revision == "" {
		return utils.WriteJSON(w, convertBlock(b.chain.BestBlock(), expanded))
	}
	num, err := strconv.ParseUint(revision, 10, 32)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "revision"))
	}
	block, err := b.chain.GetBlock(uint32(num))
	if err != nil {
		if chain.IsNotFound(err) {
			return utils.WriteJSON(w, nil)
		}
		return err
	}
	return utils.WriteJSON(w, convertBlock(block, expanded))
}

func (b *Blocks) handleAdvance(w http.ResponseWriter, req *http.Request) error {
	var body AdvanceRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Count == 0 || body.Count > MaxAdvance {
		return utils.BadRequest(errors.Errorf("count: must be in [1, %d]", MaxAdvance))
	}
	best, err := b.chain.Advance(body.Count)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertBlock(best, false))
}

func (b *Blocks) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(b.handleAdvance))
	sub.Path("/{revision}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(b.handleGetBlock))
}
