// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import "github.com/bullchain/bullchain/bull"

// Account for marshal account
type Account struct {
	Free      uint64            `json:"free"`
	Held      uint64            `json:"held"`
	Frozen    uint64            `json:"frozen"`
	Reducible uint64            `json:"reducible"`
	Total     uint64            `json:"total"`
	Holds     map[string]uint64 `json:"holds"`
	Freezes   []*Freeze         `json:"freezes"`
}

type Freeze struct {
	Reason  string       `json:"reason"`
	Subject bull.Bytes32 `json:"subject"`
	Amount  uint64       `json:"amount"`
}
