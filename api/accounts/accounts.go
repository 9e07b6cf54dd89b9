// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"
	"sort"

	"github.com/gorilla/mux"

	"github.com/bullchain/bullchain/api/utils"
	"github.com/bullchain/bullchain/chain"
	"github.com/bullchain/bullchain/runtime"
)

type Accounts struct {
	chain *chain.Chain
}

func New(chain *chain.Chain) *Accounts {
	return &Accounts{chain}
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}

	var acc *Account
	err = a.chain.View(func(rt *runtime.Runtime, _ *chain.Block) error {
		view, err := rt.Custodian().Account(addr)
		if err != nil {
			return err
		}
		acc = &Account{
			Free:      view.Free,
			Held:      view.Held,
			Frozen:    view.Frozen,
			Reducible: view.Reducible,
			Total:     view.Total(),
			Holds:     make(map[string]uint64, len(view.Holds)),
			Freezes:   make([]*Freeze, 0, len(view.Freezes)),
		}
		for reason, amount := range view.Holds {
			acc.Holds[string(reason)] = amount
		}
		for id, amount := range view.Freezes {
			acc.Freezes = append(acc.Freezes, &Freeze{id.Reason, id.Subject, amount})
		}
		sort.Slice(acc.Freezes, func(i, j int) bool {
			return acc.Freezes[i].Subject.String() < acc.Freezes[j].Subject.String()
		})
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, acc)
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
}
