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
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ooeunoo/tokenspec/clock"
	"github.com/ooeunoo/tokenspec/ledger"
)

var (
	one           = big.NewInt(1)
	two           = big.NewInt(2)
	initialSupply = big.NewInt(1_000_000)
)

type fixture struct {
	ledger *ledger.Ledger
	clock  *clock.Clock
	token  *Token
	owner  *ledger.Account
	user1  *ledger.Account
	user2  *ledger.Account
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	l := ledger.New(ledger.WithGenesisTime(1_600_000_000), ledger.WithAccounts(4, "kip7"))
	accounts := l.Accounts()

	token, receipt, err := Deploy(context.Background(), l, accounts[0], "KIP7", "KIP7", initialSupply)
	require.NoError(t, err)
	require.NotNil(t, receipt)

	return &fixture{
		ledger: l,
		clock:  clock.New(l.ClockBackend()),
		token:  token,
		owner:  accounts[0],
		user1:  accounts[1],
		user2:  accounts[2],
	}
}

func requireReverted(t *testing.T, err error, reason string) {
	t.Helper()

	require.Error(t, err)
	got, ok := ledger.RevertReason(err)
	require.True(t, ok, "expected revert, got %v", err)
	assert.Equal(t, reason, got)
}

func requireBalance(t *testing.T, f *fixture, account *ledger.Account, want *big.Int) {
	t.Helper()

	got, err := f.token.BalanceOf(context.Background(), account.Address)
	require.NoError(t, err)
	assert.Equal(t, 0, want.Cmp(got), "balance of %s: want %s, got %s", account.Address, want, got)
}

func now(t *testing.T, f *fixture) uint64 {
	t.Helper()

	ts, err := f.clock.Latest(context.Background())
	require.NoError(t, err)
	return ts
}

func TestMetadata(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	name, err := f.token.Name(ctx)
	require.NoError(t, err)
	assert.Equal(t, "KIP7", name)

	decimals, err := f.token.Decimals(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(Decimals), decimals)

	supply, err := f.token.TotalSupply(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, initialSupply.Cmp(supply))

	requireBalance(t, f, f.owner, initialSupply)
}

func TestTransfer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	receipt, err := f.token.Transfer(ctx, f.user1.Address, one)
	require.NoError(t, err)
	require.Len(t, receipt.Logs, 1)
	assert.Equal(t, "Transfer", receipt.Logs[0].Event)
	assert.Equal(t, true, receipt.Return)

	requireBalance(t, f, f.user1, one)

	_, err = f.token.Transfer(ctx, ledger.ZeroAddress, one)
	requireReverted(t, err, "ERC20: transfer to the zero address")

	_, err = f.token.Connect(f.user1).Transfer(ctx, f.user2.Address, two)
	requireReverted(t, err, "ERC20: transfer amount exceeds balance")
}

func TestTransferFrom(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	_, err := f.token.Approve(ctx, f.user1.Address, one)
	require.NoError(t, err)

	_, err = f.token.Connect(f.user1).TransferFrom(ctx, f.owner.Address, f.user2.Address, two)
	requireReverted(t, err, "ERC20: transfer amount exceeds allowance")

	receipt, err := f.token.Connect(f.user1).TransferFrom(ctx, f.owner.Address, f.user2.Address, one)
	require.NoError(t, err)
	require.Len(t, receipt.Logs, 2)
	assert.Equal(t, "Transfer", receipt.Logs[0].Event)
	assert.Equal(t, "Approval", receipt.Logs[1].Event)

	allowance, err := f.token.Allowance(ctx, f.owner.Address, f.user1.Address)
	require.NoError(t, err)
	assert.Zero(t, allowance.Sign())

	_, err = f.token.DecreaseAllowance(ctx, f.user1.Address, one)
	requireReverted(t, err, "ERC20: decreased allowance below zero")

	_, err = f.token.Approve(ctx, ledger.ZeroAddress, one)
	requireReverted(t, err, "ERC20: approve to the zero address")
}

func TestFreezeAndPause(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	_, err := f.token.Freeze(ctx, f.user1.Address)
	require.NoError(t, err)

	frozen, err := f.token.IsFreezed(ctx, f.user1.Address)
	require.NoError(t, err)
	assert.True(t, frozen)

	_, err = f.token.Transfer(ctx, f.user1.Address, one)
	requireReverted(t, err, "Freezable: to freezed")

	_, err = f.token.Approve(ctx, f.user1.Address, one)
	require.NoError(t, err)
	_, err = f.token.Connect(f.user1).TransferFrom(ctx, f.owner.Address, f.user2.Address, one)
	requireReverted(t, err, "Freezable: sender freezed")

	_, err = f.token.Unfreeze(ctx, f.user1.Address)
	require.NoError(t, err)

	_, err = f.token.Pause(ctx)
	require.NoError(t, err)
	_, err = f.token.Mint(ctx, one)
	requireReverted(t, err, "Pausable: token transfer while paused")
	_, err = f.token.Burn(ctx, one)
	requireReverted(t, err, "Pausable: token transfer while paused")
}

func TestBurn(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	_, err := f.token.Approve(ctx, f.user1.Address, big.NewInt(3))
	require.NoError(t, err)

	receipt, err := f.token.Connect(f.user1).BurnFrom(ctx, f.owner.Address, one)
	require.NoError(t, err)
	require.Len(t, receipt.Logs, 2)
	assert.Equal(t, "Approval", receipt.Logs[0].Event)
	assert.Equal(t, "Transfer", receipt.Logs[1].Event)

	supply, err := f.token.TotalSupply(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, new(big.Int).Sub(initialSupply, one).Cmp(supply))

	_, err = f.token.Connect(f.user2).BurnFrom(ctx, f.owner.Address, one)
	requireReverted(t, err, "ERC20: burn amount exceeds allowance")

	_, err = f.token.Connect(f.user2).Burn(ctx, one)
	requireReverted(t, err, "ERC20: burn amount exceeds balance")
}

func TestTimeLock(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	reason := [32]byte{1}
	afterHour := now(t, f) + clock.Hours(1)

	receipt, err := f.token.TransferWithLock(ctx, f.user1.Address, one, reason, afterHour)
	require.NoError(t, err)
	require.Len(t, receipt.Logs, 2)
	assert.Equal(t, "Transfer", receipt.Logs[0].Event)
	assert.Equal(t, "Locked", receipt.Logs[1].Event)

	lock, err := f.token.Locked(ctx, f.user1.Address, reason)
	require.NoError(t, err)
	assert.Equal(t, 0, one.Cmp(lock.Amount))
	assert.Equal(t, afterHour, lock.Release)
	assert.False(t, lock.Claimed)

	requireBalance(t, f, f.user1, new(big.Int))

	total, err := f.token.TotalBalanceOf(ctx, f.user1.Address)
	require.NoError(t, err)
	assert.Equal(t, 0, one.Cmp(total))

	_, err = f.token.Connect(f.user1).Transfer(ctx, f.user2.Address, one)
	requireReverted(t, err, "ERC20: transfer amount exceeds balance")

	_, err = f.token.TransferWithLock(ctx, f.user1.Address, one, reason, afterHour)
	requireReverted(t, err, "TimeLockable: Tokens already locked")

	_, err = f.token.IncreaseLockAmount(ctx, f.user1.Address, reason, one)
	requireReverted(t, err, "TimeLockable: Not enough amount")

	require.NoError(t, f.clock.IncreaseTo(ctx, afterHour))

	unlockable, err := f.token.GetUnlockableTokens(ctx, f.user1.Address)
	require.NoError(t, err)
	assert.Equal(t, 0, one.Cmp(unlockable))

	receipt, err = f.token.Connect(f.user1).Transfer(ctx, f.user2.Address, one)
	require.NoError(t, err)
	require.Len(t, receipt.Logs, 2)
	assert.Equal(t, "Unlocked", receipt.Logs[0].Event)
	assert.Equal(t, "Transfer", receipt.Logs[1].Event)

	requireBalance(t, f, f.user2, one)

	locked, err := f.token.TokensLocked(ctx, f.user1.Address, reason)
	require.NoError(t, err)
	assert.Zero(t, locked.Sign())
}

func TestLockChecks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	reason := [32]byte{2}
	release := now(t, f) + clock.Years(1)

	_, err := f.token.Connect(f.user1).Lock(ctx, f.user1.Address, one, reason, release)
	requireReverted(t, err, "Ownable: caller is not the owner")

	_, err = f.token.Lock(ctx, ledger.ZeroAddress, one, reason, release)
	requireReverted(t, err, "TimeLockable: lock account the zero address")

	_, err = f.token.Lock(ctx, f.user1.Address, new(big.Int), reason, release)
	requireReverted(t, err, "TimeLockable: Amount can not be zero")

	_, err = f.token.Lock(ctx, f.user1.Address, one, reason, release)
	requireReverted(t, err, "TimeLockable: Not enough amount")

	_, err = f.token.ExtendLock(ctx, f.user1.Address, reason, clock.Days(1))
	requireReverted(t, err, "TimeLockable: No tokens locked")

	_, err = f.token.Transfer(ctx, f.user1.Address, two)
	require.NoError(t, err)
	_, err = f.token.Lock(ctx, f.user1.Address, one, reason, release)
	require.NoError(t, err)

	_, err = f.token.ExtendLock(ctx, f.user1.Address, reason, clock.Days(1))
	require.NoError(t, err)
	_, err = f.token.IncreaseLockAmount(ctx, f.user1.Address, reason, one)
	require.NoError(t, err)

	lock, err := f.token.Locked(ctx, f.user1.Address, reason)
	require.NoError(t, err)
	assert.Equal(t, 0, two.Cmp(lock.Amount))
	assert.Equal(t, release+clock.Days(1), lock.Release)

	atRelease, err := f.token.TokensLockedAtTime(ctx, f.user1.Address, reason, lock.Release)
	require.NoError(t, err)
	assert.Zero(t, atRelease.Sign())

	before, err := f.token.TokensLockedAtTime(ctx, f.user1.Address, reason, lock.Release-1)
	require.NoError(t, err)
	assert.Equal(t, 0, two.Cmp(before))
}

func TestABIIncludesExtensions(t *testing.T) {
	t.Parallel()

	d := Definition()
	for _, name := range []string{
		"transfer", "owner", "burnFrom", "mint", "pause", "freeze", "transferWithLock", "getUnlockableTokens",
	} {
		_, ok := d.Lookup(name)
		assert.True(t, ok, name)
	}
}
