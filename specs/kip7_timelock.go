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

package specs

import (
	"math/big"

	"github.com/ooeunoo/tokenspec/contracts/kip7"
	"github.com/ooeunoo/tokenspec/expect"
	"github.com/ooeunoo/tokenspec/harness"
	"github.com/ooeunoo/tokenspec/ledger"
)

func (s *kip7Scenario) timeLockable() *harness.Suite {
	transferWithLock := func(t *harness.T, to *ledger.Account, reason [32]byte, release uint64) {
		t.Require(expect.Tx(s.as(s.owner).TransferWithLock(t.Context(), to.Address, one, reason, release)).Succeed())
	}
	increaseTo := func(t *harness.T, target uint64) {
		t.Require(t.Env().Clock.IncreaseTo(t.Context(), target))
	}

	return &harness.Suite{
		Name:       "ERC20TimeLockable",
		BeforeEach: s.useTimes,
		Cases: []harness.Case{
			{
				Name: "Extensions: Prevents non-owner from transferWithLock",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.Tx(s.as(s.owner).Transfer(ctx, s.user1.Address, one)).Succeed())
					t.Require(expect.Tx(s.as(s.user1).TransferWithLock(ctx, s.user2.Address, one, s.reason, s.afterHour)).
						RevertedWith("Ownable: caller is not the owner"))
				},
			},
			{
				Name: "Extensions: Allows owner from transferWithLock. and fire the Locked event",
				Run: func(t *harness.T) {
					ctx := t.Context()
					transferWithLock(t, s.user1, s.reason, s.afterHour)

					t.Require(expect.Value(s.token.Locked(ctx, s.user1.Address, s.reason)).
						Equal(kip7.Lock{Amount: one, Release: s.afterHour, Claimed: false}))

					t.Require(expect.Tx(s.as(s.owner).TransferWithLock(ctx, s.user1.Address, one, s.otherReason, s.afterHour)).
						Emit(s.token, "Locked").WithArgs(s.user1.Address, s.otherReason, one, s.afterHour))
				},
			},
			{
				Name: "Extensions: Prevents non-owner from extendLock",
				Run: func(t *harness.T) {
					transferWithLock(t, s.user1, s.reason, s.afterHour)
					t.Require(expect.Tx(s.as(s.user1).ExtendLock(t.Context(), s.user1.Address, s.reason, s.afterYear)).
						RevertedWith("Ownable: caller is not the owner"))
				},
			},
			{
				Name: "Extensions: Prevents extend lockup time if there is no lockup",
				Run: func(t *harness.T) {
					t.Require(expect.Tx(s.as(s.owner).ExtendLock(t.Context(), s.user1.Address, s.reason, s.afterYear)).
						RevertedWith("TimeLockable: No tokens locked"))
				},
			},
			{
				Name: "Extensions: Allows owner from extendLock. and fire the locked event",
				Run: func(t *harness.T) {
					ctx := t.Context()
					transferWithLock(t, s.user1, s.reason, s.afterHour)
					t.Require(expect.Tx(s.as(s.owner).ExtendLock(ctx, s.user1.Address, s.reason, s.afterYear)).Succeed())
					t.Require(expect.Value(s.token.Locked(ctx, s.user1.Address, s.reason)).
						Equal(kip7.Lock{Amount: one, Release: s.afterHour + s.afterYear, Claimed: false}))
				},
			},
			{
				Name: "Extensions: Prevents non-owner from increaseLockAmount",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.Tx(s.as(s.owner).Transfer(ctx, s.user1.Address, one)).Succeed())
					transferWithLock(t, s.user1, s.reason, s.afterHour)
					t.Require(expect.Tx(s.as(s.user1).IncreaseLockAmount(ctx, s.user1.Address, s.reason, one)).
						RevertedWith("Ownable: caller is not the owner"))
				},
			},
			{
				Name: "Extensions: Prevents increase lock amount if there is no locked",
				Run: func(t *harness.T) {
					t.Require(expect.Tx(s.as(s.owner).IncreaseLockAmount(t.Context(), s.user1.Address, s.reason, one)).
						RevertedWith("TimeLockable: No tokens locked"))
				},
			},
			{
				Name: "Extensions: Prevents increase lock zero amount",
				Run: func(t *harness.T) {
					transferWithLock(t, s.user1, s.reason, s.afterHour)
					t.Require(expect.Tx(s.as(s.owner).IncreaseLockAmount(t.Context(), s.user1.Address, s.reason, zero)).
						RevertedWith("TimeLockable: Amount can not be zero"))
				},
			},
			{
				Name: "Extensions: Prevents increase lock amount if holder has no amount",
				Run: func(t *harness.T) {
					transferWithLock(t, s.user1, s.reason, s.afterHour)
					t.Require(expect.Tx(s.as(s.owner).IncreaseLockAmount(t.Context(), s.user1.Address, s.reason, one)).
						RevertedWith("TimeLockable: Not enough amount"))
				},
			},
			{
				Name: "Extensions: Allows owner from increaseLockAmount and fire the locked event",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.Tx(s.as(s.owner).Transfer(ctx, s.user1.Address, one)).Succeed())
					transferWithLock(t, s.user1, s.reason, s.afterHour)
					t.Require(expect.Tx(s.as(s.owner).IncreaseLockAmount(ctx, s.user1.Address, s.reason, one)).Succeed())
					t.Require(expect.Value(s.token.Locked(ctx, s.user1.Address, s.reason)).
						Equal(kip7.Lock{Amount: two, Release: s.afterHour, Claimed: false}))
				},
			},
			{
				Name: "Extensions: Prevents non-owner from lock",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.Tx(s.as(s.owner).Transfer(ctx, s.user1.Address, one)).Succeed())
					t.Require(expect.Tx(s.as(s.user2).Lock(ctx, s.user1.Address, one, s.reason, s.afterHour)).
						RevertedWith("Ownable: caller is not the owner"))
				},
			},
			{
				Name: "Extensions: Prevents non-address to lock",
				Run: func(t *harness.T) {
					t.Require(expect.Tx(s.as(s.owner).Lock(t.Context(), ledger.ZeroAddress, one, s.reason, s.afterHour)).
						RevertedWith("TimeLockable: lock account the zero address"))
				},
			},
			{
				Name: "Extensions: Prevents zero amount to lock",
				Run: func(t *harness.T) {
					t.Require(expect.Tx(s.as(s.owner).Lock(t.Context(), s.user1.Address, zero, s.reason, s.afterHour)).
						RevertedWith("TimeLockable: Amount can not be zero"))
				},
			},
			{
				Name: "Extensions: Prevent the same reason lock for a specified address from lock",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.Tx(s.as(s.owner).Transfer(ctx, s.user1.Address, two)).Succeed())
					t.Require(expect.Tx(s.as(s.owner).Lock(ctx, s.user1.Address, one, s.reason, s.afterHour)).Succeed())
					t.Require(expect.Tx(s.as(s.owner).Lock(ctx, s.user1.Address, one, s.reason, s.afterHour)).
						RevertedWith("TimeLockable: Tokens already locked"))
				},
			},
			{
				Name: "Extensions: Prevent exceed amount to lock",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.Tx(s.as(s.owner).Transfer(ctx, s.user1.Address, one)).Succeed())
					t.Require(expect.Tx(s.as(s.owner).Lock(ctx, s.user1.Address, two, s.reason, s.afterHour)).
						RevertedWith("TimeLockable: Not enough amount"))
				},
			},
			{
				Name: "Extensions: Allows lock after the lock for the same reason unlocked",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.Tx(s.as(s.owner).Transfer(ctx, s.user1.Address, two)).Succeed())
					t.Require(expect.Tx(s.as(s.owner).Lock(ctx, s.user1.Address, one, s.reason, s.afterHour)).Succeed())
					increaseTo(t, s.afterHour)
					t.Require(expect.ChangeTokenBalances(ctx, s.token,
						addresses(s.user1, s.user2), amounts(negOne, one),
						s.transferFn(ctx, s.user1, s.user2.Address, one),
					))

					t.Require(expect.Tx(s.as(s.owner).Lock(ctx, s.user1.Address, one, s.reason, s.afterYear)).Succeed())
					t.Require(expect.Value(s.token.TokensLocked(ctx, s.user1.Address, s.reason)).Equal(one))
					t.Require(expect.Value(s.token.TotalBalanceOf(ctx, s.user1.Address)).Equal(one))
					t.Require(expect.Value(s.token.TokensLockedAtTime(ctx, s.user1.Address, s.reason, s.afterHour+1)).Equal(one))
				},
			},
			{
				Name: "Extensions: Returns tokens locked for a specified address for a specified reason",
				Run: func(t *harness.T) {
					transferWithLock(t, s.user1, s.reason, s.afterHour)
					t.Require(expect.Value(s.token.TokensLocked(t.Context(), s.user1.Address, s.reason)).Equal(one))
				},
			},
			{
				Name: "Extensions: Returns unlockable tokens for a specified address",
				Run: func(t *harness.T) {
					transferWithLock(t, s.user1, s.reason, s.beforeHour)
					t.Require(expect.Value(s.token.GetUnlockableTokens(t.Context(), s.user1.Address)).Equal(one))
				},
			},
			{
				Name: "Extensions: Returns tokens locked for a specified address for a specified reason at a specific time",
				Run: func(t *harness.T) {
					ctx := t.Context()
					transferWithLock(t, s.user1, s.reason, s.afterYear)
					t.Require(expect.Value(s.token.TokensLockedAtTime(ctx, s.user1.Address, s.reason, s.afterHour)).Equal(one))
					t.Require(expect.Value(s.token.TokensLockedAtTime(ctx, s.user1.Address, s.reason, s.afterYear)).Equal(zero))
				},
			},
			{
				Name: "Extensions: Unlock which unlockable tokens when transfer. and fire the unlocked event",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.Tx(s.as(s.owner).TransferWithLock(ctx, s.user1.Address, one, s.reason, s.beforeHour)).
						Emit(s.token, "Transfer").WithArgs(s.owner.Address, s.user1.Address, one))
					t.Require(expect.Value(s.token.BalanceOf(ctx, s.user1.Address)).Equal(one))
				},
			},
			{
				Name: "Extensions: Returns transferable token to balanceOf",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.Tx(s.as(s.owner).Transfer(ctx, s.user1.Address, one)).Succeed())
					transferWithLock(t, s.user1, s.reason, s.beforeYear)
					transferWithLock(t, s.user1, s.otherReason, s.afterYear)

					t.Require(expect.Value(s.token.BalanceOf(ctx, s.user1.Address)).Equal(two))
				},
			},
			{
				Name: "Extensions: Returns total tokens which locked and transferable for a specified address ",
				Run: func(t *harness.T) {
					transferWithLock(t, s.user1, s.reason, s.beforeHour)
					transferWithLock(t, s.user1, s.otherReason, s.afterHour)
					t.Require(expect.Value(s.token.TotalBalanceOf(t.Context(), s.user1.Address)).Equal(two))
				},
			},
			{
				Name: "Extensions: Prevent transfers tokens locked",
				Run: func(t *harness.T) {
					transferWithLock(t, s.user1, s.reason, s.afterHour)
					t.Require(expect.Tx(s.as(s.user1).Transfer(t.Context(), s.user2.Address, one)).
						RevertedWith("ERC20: transfer amount exceeds balance"))
				},
			},
			{
				Name: "Extensions: Allows transfers tokens unlocked",
				Run: func(t *harness.T) {
					ctx := t.Context()
					transferWithLock(t, s.user1, s.reason, s.afterHour)
					increaseTo(t, s.afterHour)
					t.Require(expect.ChangeTokenBalances(ctx, s.token,
						addresses(s.user1, s.user2), amounts(negOne, one),
						s.transferFn(ctx, s.user1, s.user2.Address, one),
					))
				},
			},
			{
				Name: "Extensions: Prevent transferFrom token locked",
				Run: func(t *harness.T) {
					ctx := t.Context()
					transferWithLock(t, s.user1, s.reason, s.afterHour)
					t.Require(expect.Tx(s.as(s.user1).Approve(ctx, s.user2.Address, one)).Succeed())
					t.Require(expect.Tx(s.as(s.user2).TransferFrom(ctx, s.user1.Address, s.user3.Address, one)).
						RevertedWith("ERC20: transfer amount exceeds balance"))
				},
			},
			{
				Name: "Extensions: Allows transferFrom tokens unlocked",
				Run: func(t *harness.T) {
					ctx := t.Context()
					transferWithLock(t, s.user1, s.reason, s.afterHour)
					t.Require(expect.Tx(s.as(s.user1).Approve(ctx, s.user2.Address, one)).Succeed())
					increaseTo(t, s.afterHour)
					t.Require(expect.ChangeTokenBalances(ctx, s.token,
						addresses(s.user1, s.user2, s.user3), amounts(negOne, zero, one),
						s.transferFromFn(ctx, s.user2, s.user1.Address, s.user3.Address, one),
					))
				},
			},
			{
				Name: "Extensions: Prevents the same reason lock for a specified address from transferWithLock",
				Run: func(t *harness.T) {
					transferWithLock(t, s.user1, s.reason, s.afterHour)
					t.Require(expect.Tx(s.as(s.owner).TransferWithLock(t.Context(), s.user1.Address, one, s.reason, s.afterHour)).
						RevertedWith("TimeLockable: Tokens already locked"))
				},
			},
			{
				Name: "Extensions: Prevents non-address from transferWithLock",
				Run: func(t *harness.T) {
					t.Require(expect.Tx(s.as(s.owner).TransferWithLock(t.Context(), ledger.ZeroAddress, one, s.reason, s.afterHour)).
						RevertedWith("TimeLockable: lock account the zero address"))
				},
			},
			{
				Name: "Extensions: Prevents non-amount from transferWithLock",
				Run: func(t *harness.T) {
					t.Require(expect.Tx(s.as(s.owner).TransferWithLock(t.Context(), s.user1.Address, zero, s.reason, s.afterHour)).
						RevertedWith("TimeLockable: Amount can not be zero"))
				},
			},
			{
				Name: "Extensions: Prevents exceed-amount from transferWithLock",
				Run: func(t *harness.T) {
					ctx := t.Context()
					ownerBalance, err := s.token.BalanceOf(ctx, s.owner.Address)
					t.Require(err)
					t.Require(expect.Tx(s.as(s.owner).TransferWithLock(ctx, s.user1.Address, new(big.Int).Add(ownerBalance, one), s.reason, s.afterHour)).
						RevertedWith("TimeLockable: Not enough amount"))
				},
			},
		},
	}
}
