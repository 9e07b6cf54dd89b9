// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package balances

import (
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/bullchain/bullchain/builtin/reverts"
	"github.com/bullchain/bullchain/builtin/solidity"
	"github.com/bullchain/bullchain/bull"
	"github.com/bullchain/bullchain/log"
)

var (
	slotAccounts = bull.BytesToBytes32([]byte("accounts"))
	slotIssuance = bull.BytesToBytes32([]byte("total-issuance"))
	slotFreezes  = bull.BytesToBytes32([]byte("freezes"))

	logger = log.WithContext("pkg", "balances")
)

var (
	ErrInsufficientBalance = reverts.New("InsufficientBalance", "insufficient balance")
	ErrTooManyFreezes      = reverts.New("TooManyFreezes", "too many freezes")
	ErrOverflow            = reverts.New("Overflow", "balance overflow")
)

// DefaultMaxFreezes is the number of distinct freeze ids an account may carry.
const DefaultMaxFreezes = 10000

// Balances keeps free balance, holds and freezes of every account.
type Balances struct {
	accounts   *solidity.Mapping[bull.Address, *account]
	freezes    *solidity.Mapping[freezeKey, *freezeEntry]
	issuance   *solidity.Raw[uint64]
	maxFreezes int
}

func New(sctx *solidity.Context, maxFreezes uint32) *Balances {
	if maxFreezes == 0 {
		maxFreezes = DefaultMaxFreezes
	}
	return &Balances{
		accounts:   solidity.NewMapping[bull.Address, *account](sctx, slotAccounts),
		freezes:    solidity.NewMapping[freezeKey, *freezeEntry](sctx, slotFreezes),
		issuance:   solidity.NewRaw[uint64](sctx, slotIssuance),
		maxFreezes: int(maxFreezes),
	}
}

func (b *Balances) get(who bull.Address) (*account, error) {
	acc, err := b.accounts.Get(who)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get account")
	}
	if acc == nil {
		acc = &account{}
	}
	return acc, nil
}

func (b *Balances) put(who bull.Address, acc *account) error {
	if acc.isEmpty() {
		b.accounts.Delete(who)
		return nil
	}
	if err := b.accounts.Upsert(who, acc); err != nil {
		return errors.Wrap(err, "failed to set account")
	}
	return nil
}

// Account returns a view of the account.
func (b *Balances) Account(who bull.Address) (*Account, error) {
	acc, err := b.get(who)
	if err != nil {
		return nil, err
	}
	view := &Account{
		Free:      acc.Free,
		Held:      acc.held(),
		Frozen:    acc.Frozen,
		Reducible: acc.reducible(false),
		Holds:     make(map[HoldReason]uint64, len(acc.Holds)),
		Freezes:   make(map[FreezeID]uint64, acc.Freezes),
	}
	for _, h := range acc.Holds {
		view.Holds[h.Reason] = h.Amount
	}
	if err := b.iterFreezes(who, acc, func(id FreezeID, amount uint64) error {
		view.Freezes[id] = amount
		return nil
	}); err != nil {
		return nil, err
	}
	return view, nil
}

// TotalBalance returns free plus held balance.
func (b *Balances) TotalBalance(who bull.Address) (uint64, error) {
	acc, err := b.get(who)
	if err != nil {
		return 0, err
	}
	return acc.Free + acc.held(), nil
}

// ReducibleBalance returns the amount that can be moved out of free balance.
// With force, freezes are ignored.
func (b *Balances) ReducibleBalance(who bull.Address, force bool) (uint64, error) {
	acc, err := b.get(who)
	if err != nil {
		return 0, err
	}
	return acc.reducible(force), nil
}

func (b *Balances) TotalIssuance() (uint64, error) {
	return b.issuance.Get()
}

func (b *Balances) Hold(reason HoldReason, who bull.Address, amount uint64) error {
	logger.Debug("hold", "reason", reason, "who", who, "amount", amount)

	acc, err := b.get(who)
	if err != nil {
		return err
	}
	if acc.reducible(false) < amount {
		return ErrInsufficientBalance
	}
	acc.Free -= amount
	if i := acc.holdIndex(reason); i >= 0 {
		acc.Holds[i].Amount += amount
	} else {
		acc.Holds = append(acc.Holds, hold{reason, amount})
	}
	return b.put(who, acc)
}

// Release moves held funds back to free balance and returns the amount released.
// With bestEffort, releases as much as is held instead of failing.
func (b *Balances) Release(reason HoldReason, who bull.Address, amount uint64, bestEffort bool) (uint64, error) {
	logger.Debug("release", "reason", reason, "who", who, "amount", amount)

	acc, err := b.get(who)
	if err != nil {
		return 0, err
	}
	i := acc.holdIndex(reason)
	var held uint64
	if i >= 0 {
		held = acc.Holds[i].Amount
	}
	if held < amount {
		if !bestEffort {
			return 0, ErrInsufficientBalance
		}
		amount = held
	}
	if amount == 0 {
		return 0, nil
	}
	free, overflow := math.SafeAdd(acc.Free, amount)
	if overflow {
		return 0, ErrOverflow
	}
	acc.Free = free
	acc.Holds[i].Amount -= amount
	if acc.Holds[i].Amount == 0 {
		acc.Holds = append(acc.Holds[:i], acc.Holds[i+1:]...)
	}
	return amount, b.put(who, acc)
}

func (b *Balances) BalanceOnHold(reason HoldReason, who bull.Address) (uint64, error) {
	acc, err := b.get(who)
	if err != nil {
		return 0, err
	}
	if i := acc.holdIndex(reason); i >= 0 {
		return acc.Holds[i].Amount, nil
	}
	return 0, nil
}

// ExtendFreeze sets the lock of id to the larger of its current size and amount.
func (b *Balances) ExtendFreeze(id FreezeID, who bull.Address, amount uint64) error {
	logger.Debug("extend freeze", "id", id.Reason, "subject", id.Subject, "who", who, "amount", amount)

	acc, err := b.get(who)
	if err != nil {
		return err
	}
	entry, err := b.getFreeze(who, id)
	if err != nil {
		return err
	}
	if entry == nil {
		return b.insertFreeze(who, acc, id, amount)
	}
	if entry.Amount >= amount {
		return nil
	}
	return b.resizeFreeze(who, acc, id, entry, amount)
}

// SetFreeze replaces the size of the lock of id. A zero amount removes it.
func (b *Balances) SetFreeze(id FreezeID, who bull.Address, amount uint64) error {
	logger.Debug("set freeze", "id", id.Reason, "subject", id.Subject, "who", who, "amount", amount)

	acc, err := b.get(who)
	if err != nil {
		return err
	}
	entry, err := b.getFreeze(who, id)
	if err != nil {
		return err
	}
	switch {
	case entry == nil:
		return b.insertFreeze(who, acc, id, amount)
	case amount == 0:
		return b.removeFreeze(who, acc, id, entry)
	case amount == entry.Amount:
		return nil
	default:
		return b.resizeFreeze(who, acc, id, entry, amount)
	}
}

// Thaw removes the lock of id and returns its size.
func (b *Balances) Thaw(id FreezeID, who bull.Address) (uint64, error) {
	logger.Debug("thaw", "id", id.Reason, "subject", id.Subject, "who", who)

	acc, err := b.get(who)
	if err != nil {
		return 0, err
	}
	entry, err := b.getFreeze(who, id)
	if err != nil {
		return 0, err
	}
	if entry == nil {
		return 0, nil
	}
	return entry.Amount, b.removeFreeze(who, acc, id, entry)
}

func (b *Balances) BalanceFrozen(id FreezeID, who bull.Address) (uint64, error) {
	entry, err := b.getFreeze(who, id)
	if err != nil || entry == nil {
		return 0, err
	}
	return entry.Amount, nil
}

// MintInto credits new tokens to free balance.
func (b *Balances) MintInto(who bull.Address, amount uint64) error {
	logger.Debug("mint", "who", who, "amount", amount)
	if amount == 0 {
		return nil
	}

	issuance, err := b.issuance.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get issuance")
	}
	issuance, overflow := math.SafeAdd(issuance, amount)
	if overflow {
		return ErrOverflow
	}
	acc, err := b.get(who)
	if err != nil {
		return err
	}
	free, overflow := math.SafeAdd(acc.Free, amount)
	if overflow {
		return ErrOverflow
	}
	acc.Free = free
	if err := b.put(who, acc); err != nil {
		return err
	}
	return b.issuance.Upsert(issuance)
}

// BurnFrom destroys tokens from free balance and returns the amount burned.
// With force, freezes are ignored. With bestEffort, burns what is available instead of failing.
func (b *Balances) BurnFrom(who bull.Address, amount uint64, bestEffort, force bool) (uint64, error) {
	logger.Debug("burn", "who", who, "amount", amount, "bestEffort", bestEffort, "force", force)

	acc, err := b.get(who)
	if err != nil {
		return 0, err
	}
	available := acc.reducible(force)
	if available < amount {
		if !bestEffort {
			return 0, ErrInsufficientBalance
		}
		amount = available
	}
	if amount == 0 {
		return 0, nil
	}
	issuance, err := b.issuance.Get()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get issuance")
	}
	acc.Free -= amount
	if err := b.put(who, acc); err != nil {
		return 0, err
	}
	// genesis endowments are minted, so issuance always covers a burn
	issuance, underflow := math.SafeSub(issuance, amount)
	if underflow {
		issuance = 0
	}
	return amount, b.issuance.Upsert(issuance)
}
