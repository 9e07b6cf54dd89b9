// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package balances

import (
	"github.com/pkg/errors"

	"github.com/bullchain/bullchain/bull"
)

// Locks of an account form a doubly linked list, newest first. Adding, resizing or
// removing a lock writes a bounded number of slots however many locks the account has.
// Only shrinking or removing the largest lock walks the list, to find the new largest.

func (b *Balances) getFreeze(who bull.Address, id FreezeID) (*freezeEntry, error) {
	entry, err := b.freezes.Get(freezeKey{who, id})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get freeze")
	}
	return entry, nil
}

// linkedFreeze loads a lock referenced by the list, which must exist.
func (b *Balances) linkedFreeze(who bull.Address, id FreezeID) (*freezeEntry, error) {
	entry, err := b.getFreeze(who, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, errors.Errorf("freeze list of %v broken at %v", who, id.Subject)
	}
	return entry, nil
}

func (b *Balances) putFreeze(who bull.Address, id FreezeID, entry *freezeEntry) error {
	if err := b.freezes.Upsert(freezeKey{who, id}, entry); err != nil {
		return errors.Wrap(err, "failed to set freeze")
	}
	return nil
}

// insertFreeze links a new lock at the head of the list.
func (b *Balances) insertFreeze(who bull.Address, acc *account, id FreezeID, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if int(acc.Freezes) >= b.maxFreezes {
		return ErrTooManyFreezes
	}
	if acc.FreezeHead != nil {
		head, err := b.linkedFreeze(who, *acc.FreezeHead)
		if err != nil {
			return err
		}
		head.Prev = &id
		if err := b.putFreeze(who, *acc.FreezeHead, head); err != nil {
			return err
		}
	}
	if err := b.putFreeze(who, id, &freezeEntry{Amount: amount, Next: acc.FreezeHead}); err != nil {
		return err
	}
	acc.FreezeHead = &id
	acc.Freezes++
	acc.Frozen = max(acc.Frozen, amount)
	return b.put(who, acc)
}

// resizeFreeze sets the size of an existing lock.
func (b *Balances) resizeFreeze(who bull.Address, acc *account, id FreezeID, entry *freezeEntry, amount uint64) error {
	prev := entry.Amount
	entry.Amount = amount
	if err := b.putFreeze(who, id, entry); err != nil {
		return err
	}
	switch {
	case amount >= acc.Frozen:
		acc.Frozen = amount
	case prev == acc.Frozen:
		if err := b.recomputeFrozen(who, acc); err != nil {
			return err
		}
	}
	return b.put(who, acc)
}

// removeFreeze unlinks a lock and clears its slot.
func (b *Balances) removeFreeze(who bull.Address, acc *account, id FreezeID, entry *freezeEntry) error {
	if entry.Prev != nil {
		prev, err := b.linkedFreeze(who, *entry.Prev)
		if err != nil {
			return err
		}
		prev.Next = entry.Next
		if err := b.putFreeze(who, *entry.Prev, prev); err != nil {
			return err
		}
	} else {
		acc.FreezeHead = entry.Next
	}
	if entry.Next != nil {
		next, err := b.linkedFreeze(who, *entry.Next)
		if err != nil {
			return err
		}
		next.Prev = entry.Prev
		if err := b.putFreeze(who, *entry.Next, next); err != nil {
			return err
		}
	}
	b.freezes.Delete(freezeKey{who, id})
	acc.Freezes--

	if entry.Amount == acc.Frozen {
		if err := b.recomputeFrozen(who, acc); err != nil {
			return err
		}
	}
	return b.put(who, acc)
}

func (b *Balances) recomputeFrozen(who bull.Address, acc *account) error {
	var largest uint64
	if err := b.iterFreezes(who, acc, func(_ FreezeID, amount uint64) error {
		largest = max(largest, amount)
		return nil
	}); err != nil {
		return err
	}
	acc.Frozen = largest
	return nil
}

// iterFreezes visits the locks of the account, newest first.
func (b *Balances) iterFreezes(who bull.Address, acc *account, fn func(id FreezeID, amount uint64) error) error {
	for ptr := acc.FreezeHead; ptr != nil; {
		entry, err := b.linkedFreeze(who, *ptr)
		if err != nil {
			return err
		}
		if err := fn(*ptr, entry.Amount); err != nil {
			return err
		}
		ptr = entry.Next
	}
	return nil
}
