// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package roster

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/bullchain/bullchain/builtin/bullposting/types"
	"github.com/bullchain/bullchain/builtin/solidity"
	"github.com/bullchain/bullchain/bull"
)

var (
	slotEntries = bull.BytesToBytes32([]byte("voters"))
	slotLengths = bull.BytesToBytes32([]byte("voters-length"))
	slotCounts  = bull.BytesToBytes32([]byte("vote-counts"))

	ErrFull = errors.New("roster is full")
)

type entryKey struct {
	post  types.PostID
	index uint32
}

func (k entryKey) Bytes() []byte {
	b := make([]byte, 36)
	copy(b, k.post[:])
	binary.BigEndian.PutUint32(b[32:], k.index)
	return b
}

// Roster keeps, per post, a bounded stack of voters and the vote count tracked beside it.
type Roster struct {
	capacity uint32
	entries  *solidity.Mapping[entryKey, bull.Address]
	lengths  *solidity.Mapping[types.PostID, uint32]
	counts   *solidity.Mapping[types.PostID, uint32]
}

func New(sctx *solidity.Context, capacity uint32) *Roster {
	return &Roster{
		capacity: capacity,
		entries:  solidity.NewMapping[entryKey, bull.Address](sctx, slotEntries),
		lengths:  solidity.NewMapping[types.PostID, uint32](sctx, slotLengths),
		counts:   solidity.NewMapping[types.PostID, uint32](sctx, slotCounts),
	}
}

// Len returns the number of voters on the roster of the post.
func (r *Roster) Len(post types.PostID) (uint32, error) {
	n, err := r.lengths.Get(post)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get roster length")
	}
	return n, nil
}

func (r *Roster) setLen(post types.PostID, n uint32) error {
	if n == 0 {
		r.lengths.Delete(post)
		return nil
	}
	if err := r.lengths.Upsert(post, n); err != nil {
		return errors.Wrap(err, "failed to set roster length")
	}
	return nil
}

// Push appends a voter. It fails with ErrFull once the roster holds capacity voters.
func (r *Roster) Push(post types.PostID, voter bull.Address) error {
	n, err := r.Len(post)
	if err != nil {
		return err
	}
	if n >= r.capacity {
		return ErrFull
	}
	if err := r.entries.Insert(entryKey{post, n}, voter); err != nil {
		return errors.Wrap(err, "failed to push voter")
	}
	return r.setLen(post, n+1)
}

// Pop removes the last voter. ok is false when the roster is empty.
func (r *Roster) Pop(post types.PostID) (voter bull.Address, ok bool, err error) {
	n, err := r.Len(post)
	if err != nil || n == 0 {
		return bull.Address{}, false, err
	}
	key := entryKey{post, n - 1}
	if voter, err = r.entries.Get(key); err != nil {
		return bull.Address{}, false, errors.Wrap(err, "failed to get voter")
	}
	r.entries.Delete(key)
	if err := r.setLen(post, n-1); err != nil {
		return bull.Address{}, false, err
	}
	return voter, true, nil
}

// List returns all voters in insertion order.
func (r *Roster) List(post types.PostID) ([]bull.Address, error) {
	n, err := r.Len(post)
	if err != nil {
		return nil, err
	}
	voters := make([]bull.Address, 0, n)
	for i := uint32(0); i < n; i++ {
		voter, err := r.entries.Get(entryKey{post, i})
		if err != nil {
			return nil, errors.Wrap(err, "failed to get voter")
		}
		voters = append(voters, voter)
	}
	return voters, nil
}

// Count returns the vote count of the post.
func (r *Roster) Count(post types.PostID) (uint32, error) {
	n, err := r.counts.Get(post)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get vote count")
	}
	return n, nil
}

// Increment adds one to the vote count, initializing it if absent.
func (r *Roster) Increment(post types.PostID) error {
	n, err := r.Count(post)
	if err != nil {
		return err
	}
	if err := r.counts.Upsert(post, n+1); err != nil {
		return errors.Wrap(err, "failed to set vote count")
	}
	return nil
}

// Decrement subtracts one from the vote count and deletes it at zero.
func (r *Roster) Decrement(post types.PostID) error {
	n, err := r.Count(post)
	if err != nil {
		return err
	}
	if n <= 1 {
		r.counts.Delete(post)
		return nil
	}
	if err := r.counts.Update(post, n-1); err != nil {
		return errors.Wrap(err, "failed to set vote count")
	}
	return nil
}
