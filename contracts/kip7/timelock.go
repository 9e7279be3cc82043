/*
 * tokenspec - The token contract test harness
 *
 * Copyright The tokenspec Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package kip7

import (
	"encoding/hex"
	"math/big"

	"github.com/ooeunoo/tokenspec/contracts"
	"github.com/ooeunoo/tokenspec/ledger"
)

// Lock is a time lock over part of a holder's balance, keyed by reason.
// The tokens stay locked while Release is in the future and the lock has
// not been claimed.
type Lock struct {
	Amount  *big.Int
	Release uint64
	Claimed bool
}

var (
	LockedEvent = contracts.Event{
		Name: "Locked",
		Inputs: []contracts.EventArg{
			{Name: "_of", Type: "address", Indexed: true},
			{Name: "_reason", Type: "bytes32", Indexed: true},
			{Name: "_amount", Type: "uint256"},
			{Name: "_validity", Type: "uint256"},
		},
	}
	UnlockedEvent = contracts.Event{
		Name: "Unlocked",
		Inputs: []contracts.EventArg{
			{Name: "_of", Type: "address", Indexed: true},
			{Name: "_reason", Type: "bytes32", Indexed: true},
			{Name: "_amount", Type: "uint256"},
		},
	}
)

func lockKey(holder ledger.Address, reason [32]byte) string {
	return "lock/" + holder.Hex() + "/" + hex.EncodeToString(reason[:])
}

func reasonsKey(holder ledger.Address) string {
	return "lockReasons/" + holder.Hex()
}

func loadLock(c *ledger.Context, holder ledger.Address, reason [32]byte) Lock {
	v, ok := c.Load(lockKey(holder, reason))
	if !ok {
		return Lock{Amount: new(big.Int)}
	}
	lock := v.(Lock)
	lock.Amount = new(big.Int).Set(lock.Amount)
	return lock
}

func storeLock(c *ledger.Context, holder ledger.Address, reason [32]byte, lock Lock) {
	lock.Amount = new(big.Int).Set(lock.Amount)
	c.Store(lockKey(holder, reason), lock)

	reasons := lockReasons(c, holder)
	for _, r := range reasons {
		if r == reason {
			return
		}
	}
	c.Store(reasonsKey(holder), append(reasons, reason))
}

// lockReasons returns a copy of every reason holder was ever locked for.
func lockReasons(c *ledger.Context, holder ledger.Address) [][32]byte {
	v, ok := c.Load(reasonsKey(holder))
	if !ok {
		return nil
	}
	stored := v.([][32]byte)
	reasons := make([][32]byte, len(stored))
	copy(reasons, stored)
	return reasons
}

// tokensLocked is the amount locked for reason, claimed or not yet released.
func tokensLocked(c *ledger.Context, holder ledger.Address, reason [32]byte) *big.Int {
	lock := loadLock(c, holder, reason)
	if lock.Claimed {
		return new(big.Int)
	}
	return lock.Amount
}

func tokensLockedAtTime(c *ledger.Context, holder ledger.Address, reason [32]byte, at uint64) *big.Int {
	lock := loadLock(c, holder, reason)
	if lock.Claimed || lock.Release <= at {
		return new(big.Int)
	}
	return lock.Amount
}

// lockedBalance sums the locks of holder that are still in force.
func lockedBalance(c *ledger.Context, holder ledger.Address) *big.Int {
	total := new(big.Int)
	for _, reason := range lockReasons(c, holder) {
		total.Add(total, tokensLockedAtTime(c, holder, reason, c.Block.Timestamp))
	}
	return total
}

func unlockableTokens(c *ledger.Context, holder ledger.Address) *big.Int {
	total := new(big.Int)
	for _, reason := range lockReasons(c, holder) {
		lock := loadLock(c, holder, reason)
		if !lock.Claimed && lock.Release <= c.Block.Timestamp {
			total.Add(total, lock.Amount)
		}
	}
	return total
}

// claimUnlockable marks every released lock of holder as claimed.
func claimUnlockable(c *ledger.Context, holder ledger.Address) *big.Int {
	total := new(big.Int)
	for _, reason := range lockReasons(c, holder) {
		lock := loadLock(c, holder, reason)
		if lock.Claimed || lock.Release > c.Block.Timestamp {
			continue
		}
		lock.Claimed = true
		storeLock(c, holder, reason, lock)
		total.Add(total, lock.Amount)
		c.Emit(UnlockedEvent.Name, holder, reason, new(big.Int).Set(lock.Amount))
	}
	return total
}

func totalBalance(c *ledger.Context, holder ledger.Address) *big.Int {
	return c.BigInt(balanceKey(holder))
}

// transferableBalance is the total balance minus the locks in force.
func transferableBalance(c *ledger.Context, holder ledger.Address) *big.Int {
	balance := totalBalance(c, holder)
	return balance.Sub(balance, lockedBalance(c, holder))
}

type lockArgs struct {
	holder  ledger.Address
	reason  [32]byte
	amount  *big.Int
	release uint64
}

func checkNewLock(c *ledger.Context, holder ledger.Address, reason [32]byte, amount *big.Int, funder ledger.Address) error {
	if holder.IsZero() {
		return ledger.Revert("TimeLockable: lock account the zero address")
	}
	if amount.Sign() == 0 {
		return ledger.Revert("TimeLockable: Amount can not be zero")
	}
	if tokensLocked(c, holder, reason).Sign() > 0 {
		return ledger.Revert("TimeLockable: Tokens already locked")
	}
	if transferableBalance(c, funder).Cmp(amount) < 0 {
		return ledger.Revert("TimeLockable: Not enough amount")
	}
	return nil
}

func recordLock(c *ledger.Context, l lockArgs) {
	storeLock(c, l.holder, l.reason, Lock{
		Amount:  l.amount,
		Release: l.release,
	})
	c.Emit(LockedEvent.Name, l.holder, l.reason, new(big.Int).Set(l.amount), l.release)
}

// parseLock reads (holder, amount, reason, release) arguments.
func parseLock(args ledger.Args) (lockArgs, error) {
	var l lockArgs
	var err error
	if l.holder, err = args.Address(0); err != nil {
		return l, err
	}
	if l.amount, err = args.Uint256(1); err != nil {
		return l, err
	}
	if l.reason, err = args.Bytes32(2); err != nil {
		return l, err
	}
	if l.release, err = args.Uint64(3); err != nil {
		return l, err
	}
	return l, nil
}

func holderAndReason(args ledger.Args) (ledger.Address, [32]byte, error) {
	holder, err := args.Address(0)
	if err != nil {
		return ledger.ZeroAddress, [32]byte{}, err
	}
	reason, err := args.Bytes32(1)
	if err != nil {
		return ledger.ZeroAddress, [32]byte{}, err
	}
	return holder, reason, nil
}

var lockInputs = []contracts.Arg{
	{Name: "account", Type: "address"},
	{Name: "amount", Type: "uint256"},
	{Name: "reason", Type: "bytes32"},
	{Name: "release", Type: "uint256"},
}

func timeLockable(d *contracts.Definition) {
	d.
		Method(
			contracts.Method{
				Name:    "lock",
				Inputs:  lockInputs,
				Outputs: []contracts.Arg{{Type: "bool"}},
				Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
					if err := contracts.OnlyOwner(c); err != nil {
						return nil, err
					}
					l, err := parseLock(args)
					if err != nil {
						return nil, err
					}
					if err := checkNewLock(c, l.holder, l.reason, l.amount, l.holder); err != nil {
						return nil, err
					}
					recordLock(c, l)
					return true, nil
				},
			},
			contracts.Method{
				Name:    "transferWithLock",
				Inputs:  lockInputs,
				Outputs: []contracts.Arg{{Type: "bool"}},
				Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
					if err := contracts.OnlyOwner(c); err != nil {
						return nil, err
					}
					l, err := parseLock(args)
					if err != nil {
						return nil, err
					}
					if err := checkNewLock(c, l.holder, l.reason, l.amount, c.Sender); err != nil {
						return nil, err
					}
					if err := transfer(c, c.Sender, l.holder, l.amount); err != nil {
						return nil, err
					}
					recordLock(c, l)
					return true, nil
				},
			},
			contracts.Method{
				Name: "extendLock",
				Inputs: []contracts.Arg{
					{Name: "account", Type: "address"},
					{Name: "reason", Type: "bytes32"},
					{Name: "time", Type: "uint256"},
				},
				Outputs: []contracts.Arg{{Type: "bool"}},
				Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
					if err := contracts.OnlyOwner(c); err != nil {
						return nil, err
					}
					holder, reason, err := holderAndReason(args)
					if err != nil {
						return nil, err
					}
					extension, err := args.Uint64(2)
					if err != nil {
						return nil, err
					}
					if tokensLocked(c, holder, reason).Sign() == 0 {
						return nil, ledger.Revert("TimeLockable: No tokens locked")
					}
					lock := loadLock(c, holder, reason)
					lock.Release += extension
					storeLock(c, holder, reason, lock)
					c.Emit(LockedEvent.Name, holder, reason, lock.Amount, lock.Release)
					return true, nil
				},
			},
			contracts.Method{
				Name: "increaseLockAmount",
				Inputs: []contracts.Arg{
					{Name: "account", Type: "address"},
					{Name: "reason", Type: "bytes32"},
					{Name: "amount", Type: "uint256"},
				},
				Outputs: []contracts.Arg{{Type: "bool"}},
				Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
					if err := contracts.OnlyOwner(c); err != nil {
						return nil, err
					}
					holder, reason, err := holderAndReason(args)
					if err != nil {
						return nil, err
					}
					amount, err := args.Uint256(2)
					if err != nil {
						return nil, err
					}
					if tokensLocked(c, holder, reason).Sign() == 0 {
						return nil, ledger.Revert("TimeLockable: No tokens locked")
					}
					if amount.Sign() == 0 {
						return nil, ledger.Revert("TimeLockable: Amount can not be zero")
					}
					if transferableBalance(c, holder).Cmp(amount) < 0 {
						return nil, ledger.Revert("TimeLockable: Not enough amount")
					}
					lock := loadLock(c, holder, reason)
					lock.Amount.Add(lock.Amount, amount)
					storeLock(c, holder, reason, lock)
					c.Emit(LockedEvent.Name, holder, reason, new(big.Int).Set(lock.Amount), lock.Release)
					return true, nil
				},
			},
			contracts.Method{
				Name:   "unlock",
				Inputs: []contracts.Arg{{Name: "account", Type: "address"}},
				Outputs: []contracts.Arg{
					{Name: "unlockableTokens", Type: "uint256"},
				},
				Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
					holder, err := args.Address(0)
					if err != nil {
						return nil, err
					}
					return claimUnlockable(c, holder), nil
				},
			},
			contracts.Method{
				Name:   "locked",
				Inputs: []contracts.Arg{{Name: "account", Type: "address"}, {Name: "reason", Type: "bytes32"}},
				Outputs: []contracts.Arg{
					{Name: "amount", Type: "uint256"},
					{Name: "release", Type: "uint256"},
					{Name: "claimed", Type: "bool"},
				},
				Mutability: contracts.View,
				Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
					holder, reason, err := holderAndReason(args)
					if err != nil {
						return nil, err
					}
					return loadLock(c, holder, reason), nil
				},
			},
			contracts.Method{
				Name:       "tokensLocked",
				Inputs:     []contracts.Arg{{Name: "account", Type: "address"}, {Name: "reason", Type: "bytes32"}},
				Outputs:    []contracts.Arg{{Name: "amount", Type: "uint256"}},
				Mutability: contracts.View,
				Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
					holder, reason, err := holderAndReason(args)
					if err != nil {
						return nil, err
					}
					return tokensLocked(c, holder, reason), nil
				},
			},
			contracts.Method{
				Name: "tokensLockedAtTime",
				Inputs: []contracts.Arg{
					{Name: "account", Type: "address"},
					{Name: "reason", Type: "bytes32"},
					{Name: "time", Type: "uint256"},
				},
				Outputs:    []contracts.Arg{{Name: "amount", Type: "uint256"}},
				Mutability: contracts.View,
				Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
					holder, reason, err := holderAndReason(args)
					if err != nil {
						return nil, err
					}
					at, err := args.Uint64(2)
					if err != nil {
						return nil, err
					}
					return tokensLockedAtTime(c, holder, reason, at), nil
				},
			},
			contracts.Method{
				Name:       "totalBalanceOf",
				Inputs:     []contracts.Arg{{Name: "account", Type: "address"}},
				Outputs:    []contracts.Arg{{Name: "amount", Type: "uint256"}},
				Mutability: contracts.View,
				Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
					holder, err := args.Address(0)
					if err != nil {
						return nil, err
					}
					return totalBalance(c, holder), nil
				},
			},
			contracts.Method{
				Name:       "getUnlockableTokens",
				Inputs:     []contracts.Arg{{Name: "account", Type: "address"}},
				Outputs:    []contracts.Arg{{Name: "unlockableTokens", Type: "uint256"}},
				Mutability: contracts.View,
				Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
					holder, err := args.Address(0)
					if err != nil {
						return nil, err
					}
					return unlockableTokens(c, holder), nil
				},
			},
		).
		Event(LockedEvent, UnlockedEvent)
}
