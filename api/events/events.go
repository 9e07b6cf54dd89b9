// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/bullchain/bullchain/api/utils"
	"github.com/bullchain/bullchain/chain"
	"github.com/bullchain/bullchain/logdb"
)

type Events struct {
	chain *chain.Chain
	db    *logdb.LogDB
	limit uint64
}

func New(chain *chain.Chain, db *logdb.LogDB, logsLimit uint64) *Events {
	return &Events{chain, db, logsLimit}
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	var filter EventFilter
	if err := utils.ParseJSON(req.Body, &filter); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if filter.Order != "" && filter.Order != logdb.ASC && filter.Order != logdb.DESC {
		return utils.BadRequest(errors.Errorf("order: unknown %q", filter.Order))
	}
	if filter.Range != nil && filter.Range.From != nil && filter.Range.To != nil && *filter.Range.From > *filter.Range.To {
		return utils.BadRequest(errors.New("range: from > to"))
	}

	evs, err := e.db.FilterEvents(req.Context(), convertFilter(&filter, e.chain.BestBlock().Number(), e.limit))
	if err != nil {
		return err
	}
	result := make([]*FilteredEvent, 0, len(evs))
	for _, ev := range evs {
		result = append(result, convertEvent(ev))
	}
	return utils.WriteJSON(w, result)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
