// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package posts

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/bullchain/bullchain/api/utils"
	"github.com/bullchain/bullchain/builtin/bullposting/types"
	"github.com/bullchain/bullchain/bull"
	"github.com/bullchain/bullchain/cache"
	"github.com/bullchain/bullchain/chain"
	"github.com/bullchain/bullchain/runtime"
)

var errPostNotFound = errors.New("post not found")

type Posts struct {
	chain *chain.Chain
	views *cache.LRU
}

type viewKey struct {
	best bull.Bytes32
	id   types.PostID
}

func New(chain *chain.Chain) *Posts {
	views, err := cache.NewLRU(1024)
	if err != nil {
		panic(err)
	}
	return &Posts{chain, views}
}

func (p *Posts) getPost(id types.PostID) (*Post, error) {
	var view *Post
	err := p.chain.View(func(rt *runtime.Runtime, best *chain.Block) error {
		// views are immutable within a block
		v, err := p.views.GetOrLoad(viewKey{best.ID(), id}, func(any) (any, error) {
			module := rt.Module()
			post, err := module.Post(id)
			if err != nil {
				return nil, err
			}
			if post == nil {
				return (*Post)(nil), nil
			}
			count, err := module.VoteCount(id)
			if err != nil {
				return nil, err
			}
			return &Post{
				ID:          id,
				Submitter:   post.Submitter,
				Bond:        post.Bond,
				BullVotes:   post.BullVotes,
				BearVotes:   post.BearVotes,
				VotingUntil: post.VotingUntil,
				Voting:      post.IsVoting(best.Number() + 1),
				Resolved:    post.Resolved,
				VoteCount:   count,
				Leading:     leading(post.BullVotes, post.BearVotes),
			}, nil
		})
		if err != nil {
			return err
		}
		view = v.(*Post)
		return nil
	})
	return view, err
}

func (p *Posts) handleGetPost(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.Bytes32Var(req, "id")
	if err != nil {
		return err
	}
	post, err := p.getPost(id)
	if err != nil {
		return err
	}
	if post == nil {
		return utils.NotFound(errPostNotFound)
	}
	return utils.WriteJSON(w, post)
}

func (p *Posts) handleGetVoters(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.Bytes32Var(req, "id")
	if err != nil {
		return err
	}
	var voters []bull.Address
	err = p.chain.View(func(rt *runtime.Runtime, _ *chain.Block) error {
		module := rt.Module()
		post, err := module.Post(id)
		if err != nil {
			return err
		}
		if post == nil {
			return utils.NotFound(errPostNotFound)
		}
		voters, err = module.Voters(id)
		return err
	})
	if err != nil {
		return err
	}
	if voters == nil {
		voters = []bull.Address{}
	}
	return utils.WriteJSON(w, &Voters{voters})
}

func (p *Posts) handleGetVote(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.Bytes32Var(req, "id")
	if err != nil {
		return err
	}
	voter, err := utils.AddressVar(req, "voter")
	if err != nil {
		return err
	}
	var vote *Vote
	err = p.chain.View(func(rt *runtime.Runtime, _ *chain.Block) error {
		v, err := rt.Module().Vote(voter, id)
		if err != nil {
			return err
		}
		if v != nil {
			vote = &Vote{voter, v.Amount, v.Direction}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if vote == nil {
		return utils.NotFound(errors.New("vote not found"))
	}
	return utils.WriteJSON(w, vote)
}

func (p *Posts) handleHash(w http.ResponseWriter, req *http.Request) error {
	content := req.URL.Query().Get("content")
	if content == "" {
		return utils.BadRequest(errors.New("content: empty"))
	}
	return utils.WriteJSON(w, &Hash{types.PostIDOf([]byte(content))})
}

// Mount mounts the post routes under pathPrefix, and the content hash helper at /hash.
func (p *Posts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{id}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(p.handleGetPost))
	sub.Path("/{id}/voters").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(p.handleGetVoters))
	sub.Path("/{id}/votes/{voter}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(p.handleGetVote))
	root.Path("/hash").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(p.handleHash))
}
