// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"github.com/bullchain/bullchain/bull"
)

// Event is a module event as stored in db.
type Event struct {
	BlockNumber uint32
	Index       uint32 // index of the event in its block
	Origin      bull.Address
	Name        string
	PostID      bull.Bytes32
	Account     *bull.Address // nil if the event concerns no account
	Data        []byte
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range is an inclusive block number range.
type Range struct {
	From uint32
	To   uint32
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// EventCriteria matches events by every non-nil field.
type EventCriteria struct {
	Name    *string
	PostID  *bull.Bytes32
	Account *bull.Address
}

// EventFilter matches events in range satisfying any of the criteria.
type EventFilter struct {
	CriteriaSet []*EventCriteria
	Range       *Range
	Options     *Options
	Order       Order
}
