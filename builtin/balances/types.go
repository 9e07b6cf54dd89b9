// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package balances

import (
	"github.com/bullchain/bullchain/bull"
)

// HoldReason tags a reserved bucket of an account.
type HoldReason string

// FreezeID identifies one lock on an account. Locks with different ids do not stack;
// the frozen amount of an account is the largest of its locks.
type FreezeID struct {
	Reason  string
	Subject bull.Bytes32
}

type hold struct {
	Reason HoldReason
	Amount uint64
}

// freezeKey addresses the lock of id on an account.
type freezeKey struct {
	Who bull.Address
	ID  FreezeID
}

func (k freezeKey) Bytes() []byte {
	b := make([]byte, 0, bull.AddressLength+32+len(k.ID.Reason))
	b = append(b, k.Who[:]...)
	b = append(b, k.ID.Subject[:]...)
	return append(b, k.ID.Reason...)
}

// freezeEntry is one lock, linked into the per-account freeze list.
type freezeEntry struct {
	Amount uint64
	Prev   *FreezeID `rlp:"nil"`
	Next   *FreezeID `rlp:"nil"`
}

// account is the stored record. Locks live in their own slots; the record keeps
// the list head, the lock count and the largest lock.
type account struct {
	Free       uint64
	Holds      []hold
	Frozen     uint64
	Freezes    uint32
	FreezeHead *FreezeID `rlp:"nil"`
}

func (a *account) isEmpty() bool {
	return a.Free == 0 && len(a.Holds) == 0 && a.Freezes == 0
}

func (a *account) held() uint64 {
	var sum uint64
	for _, h := range a.Holds {
		sum += h.Amount
	}
	return sum
}

func (a *account) holdIndex(reason HoldReason) int {
	for i, h := range a.Holds {
		if h.Reason == reason {
			return i
		}
	}
	return -1
}

// reducible is the part of free balance that is neither held nor locked by a freeze.
// Freezes cover held funds first.
func (a *account) reducible(force bool) uint64 {
	if force {
		return a.Free
	}
	held, frozen := a.held(), a.Frozen
	if frozen <= held {
		return a.Free
	}
	locked := frozen - held
	if locked >= a.Free {
		return 0
	}
	return a.Free - locked
}

// Account is the public view of an account.
type Account struct {
	Free      uint64
	Held      uint64
	Frozen    uint64
	Reducible uint64
	Holds     map[HoldReason]uint64
	Freezes   map[FreezeID]uint64
}

// Total returns free plus held balance.
func (a *Account) Total() uint64 {
	return a.Free + a.Held
}
