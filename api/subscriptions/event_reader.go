// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"context"

	"github.com/bullchain/bullchain/bull"
	"github.com/bullchain/bullchain/chain"
	"github.com/bullchain/bullchain/logdb"
)

type eventReader struct {
	ctx    context.Context
	chain  *chain.Chain
	logDB  *logdb.LogDB
	filter *EventFilter
	next   uint32
}

func newEventReader(ctx context.Context, chain *chain.Chain, logDB *logdb.LogDB, pos uint32, filter *EventFilter) *eventReader {
	return &eventReader{
		ctx:    ctx,
		chain:  chain,
		logDB:  logDB,
		filter: filter,
		next:   pos + 1,
	}
}

func (er *eventReader) Read() ([]any, bool, error) {
	to, ok := nextBatch(er.chain, er.next)
	if !ok {
		return nil, false, nil
	}
	events, err := er.logDB.FilterEvents(er.ctx, &logdb.EventFilter{
		CriteriaSet: er.filter.criteria(),
		Range:       &logdb.Range{From: er.next, To: to},
		Order:       logdb.ASC,
	})
	if err != nil {
		return nil, false, err
	}

	var (
		msgs []any
		ids  = make(map[uint32]bull.Bytes32)
	)
	for _, ev := range events {
		id, ok := ids[ev.BlockNumber]
		if !ok {
			b, err := er.chain.GetBlock(ev.BlockNumber)
			if err != nil {
				return nil, false, err
			}
			id = b.ID()
			ids[ev.BlockNumber] = id
		}
		msgs = append(msgs, convertEvent(id, ev))
	}
	er.next = to + 1
	return msgs, true, nil
}
