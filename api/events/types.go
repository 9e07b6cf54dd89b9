// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"encoding/json"
	"math"

	"github.com/bullchain/bullchain/bull"
	"github.com/bullchain/bullchain/logdb"
)

type EventCriteria struct {
	Name    *string       `json:"name"`
	PostID  *bull.Bytes32 `json:"postID"`
	Account *bull.Address `json:"account"`
}

type Range struct {
	From *uint32 `json:"from"`
	To   *uint32 `json:"to"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

type EventFilter struct {
	CriteriaSet []*EventCriteria `json:"criteriaSet"`
	Range       *Range           `json:"range"`
	Options     *Options         `json:"options"`
	Order       logdb.Order      `json:"order"`
}

type Meta struct {
	BlockNumber uint32       `json:"blockNumber"`
	Index       uint32       `json:"index"`
	Origin      bull.Address `json:"origin"`
}

type FilteredEvent struct {
	Name    string          `json:"name"`
	PostID  bull.Bytes32    `json:"postID"`
	Account *bull.Address   `json:"account,omitempty"`
	Data    json.RawMessage `json:"data"`
	Meta    Meta            `json:"meta"`
}

func convertEvent(ev *logdb.Event) *FilteredEvent {
	return &FilteredEvent{
		Name:    ev.Name,
		PostID:  ev.PostID,
		Account: ev.Account,
		Data:    ev.Data,
		Meta: Meta{
			BlockNumber: ev.BlockNumber,
			Index:       ev.Index,
			Origin:      ev.Origin,
		},
	}
}

func convertFilter(filter *EventFilter, best uint32, limit uint64) *logdb.EventFilter {
	if limit == 0 {
		limit = math.MaxInt64
	}
	f := &logdb.EventFilter{
		Order:   filter.Order,
		Range:   &logdb.Range{From: 0, To: best},
		Options: &logdb.Options{Offset: 0, Limit: limit},
	}
	if filter.Range != nil {
		if filter.Range.From != nil {
			f.Range.From = *filter.Range.From
		}
		if filter.Range.To != nil && *filter.Range.To < best {
			f.Range.To = *filter.Range.To
		}
	}
	if filter.Options != nil {
		f.Options.Offset = filter.Options.Offset
		if filter.Options.Limit > 0 && filter.Options.Limit < limit {
			f.Options.Limit = filter.Options.Limit
		}
	}
	for _, c := range filter.CriteriaSet {
		f.CriteriaSet = append(f.CriteriaSet, &logdb.EventCriteria{
			Name:    c.Name,
			PostID:  c.PostID,
			Account: c.Account,
		})
	}
	return f
}
