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

	"github.com/pkg/errors"

	"github.com/ooeunoo/tokenspec/contracts"
	"github.com/ooeunoo/tokenspec/ledger"
)

// Token is a typed binding to a deployed KIP7All contract.
type Token struct {
	*contracts.Bound
}

// Deploy deploys KIP7All, minting initialSupply to signer.
func Deploy(
	ctx context.Context,
	backend contracts.Backend,
	signer *ledger.Account,
	name string,
	symbol string,
	initialSupply *big.Int,
) (*Token, *ledger.Receipt, error) {
	bound, receipt, err := contracts.Deploy(ctx, backend, signer, Definition(), name, symbol, initialSupply)
	if err != nil {
		return nil, nil, err
	}
	return &Token{Bound: bound}, receipt, nil
}

func At(backend contracts.Backend, address ledger.Address, signer *ledger.Account) *Token {
	return &Token{Bound: contracts.Bind(backend, address, signer)}
}

// Connect returns a binding that sends transactions signed by signer.
func (t *Token) Connect(signer *ledger.Account) *Token {
	return &Token{Bound: t.WithSigner(signer)}
}

func (t *Token) Name(ctx context.Context) (string, error) {
	return t.CallString(ctx, "name")
}

func (t *Token) Symbol(ctx context.Context) (string, error) {
	return t.CallString(ctx, "symbol")
}

func (t *Token) Decimals(ctx context.Context) (uint64, error) {
	return t.CallUint64(ctx, "decimals")
}

func (t *Token) TotalSupply(ctx context.Context) (*big.Int, error) {
	return t.CallBigInt(ctx, "totalSupply")
}

// BalanceOf returns the transferable balance of account.
func (t *Token) BalanceOf(ctx context.Context, account ledger.Address) (*big.Int, error) {
	return t.CallBigInt(ctx, "balanceOf", account)
}

// TotalBalanceOf returns the balance of account including locked tokens.
func (t *Token) TotalBalanceOf(ctx context.Context, account ledger.Address) (*big.Int, error) {
	return t.CallBigInt(ctx, "totalBalanceOf", account)
}

func (t *Token) Allowance(ctx context.Context, owner, spender ledger.Address) (*big.Int, error) {
	return t.CallBigInt(ctx, "allowance", owner, spender)
}

func (t *Token) Owner(ctx context.Context) (ledger.Address, error) {
	return t.CallAddress(ctx, "owner")
}

func (t *Token) Paused(ctx context.Context) (bool, error) {
	return t.CallBool(ctx, "paused")
}

func (t *Token) IsFreezed(ctx context.Context, account ledger.Address) (bool, error) {
	return t.CallBool(ctx, "isFreezed", account)
}

func (t *Token) Locked(ctx context.Context, holder ledger.Address, reason [32]byte) (Lock, error) {
	v, err := t.Call(ctx, "locked", holder, reason)
	if err != nil {
		return Lock{}, err
	}
	lock, ok := v.(Lock)
	if !ok {
		return Lock{}, errors.Errorf("locked returned %T, expected Lock", v)
	}
	return lock, nil
}

func (t *Token) TokensLocked(ctx context.Context, holder ledger.Address, reason [32]byte) (*big.Int, error) {
	return t.CallBigInt(ctx, "tokensLocked", holder, reason)
}

func (t *Token) TokensLockedAtTime(ctx context.Context, holder ledger.Address, reason [32]byte, at uint64) (*big.Int, error) {
	return t.CallBigInt(ctx, "tokensLockedAtTime", holder, reason, at)
}

func (t *Token) GetUnlockableTokens(ctx context.Context, holder ledger.Address) (*big.Int, error) {
	return t.CallBigInt(ctx, "getUnlockableTokens", holder)
}

func (t *Token) Transfer(ctx context.Context, to ledger.Address, amount *big.Int) (*ledger.Receipt, error) {
	return t.Transact(ctx, "transfer", to, amount)
}

func (t *Token) TransferFrom(ctx context.Context, from, to ledger.Address, amount *big.Int) (*ledger.Receipt, error) {
	return t.Transact(ctx, "transferFrom", from, to, amount)
}

func (t *Token) Approve(ctx context.Context, spender ledger.Address, amount *big.Int) (*ledger.Receipt, error) {
	return t.Transact(ctx, "approve", spender, amount)
}

func (t *Token) IncreaseAllowance(ctx context.Context, spender ledger.Address, added *big.Int) (*ledger.Receipt, error) {
	return t.Transact(ctx, "increaseAllowance", spender, added)
}

func (t *Token) DecreaseAllowance(ctx context.Context, spender ledger.Address, subtracted *big.Int) (*ledger.Receipt, error) {
	return t.Transact(ctx, "decreaseAllowance", spender, subtracted)
}

func (t *Token) Mint(ctx context.Context, amount *big.Int) (*ledger.Receipt, error) {
	return t.Transact(ctx, "mint", amount)
}

func (t *Token) Burn(ctx context.Context, amount *big.Int) (*ledger.Receipt, error) {
	return t.Transact(ctx, "burn", amount)
}

func (t *Token) BurnFrom(ctx context.Context, account ledger.Address, amount *big.Int) (*ledger.Receipt, error) {
	return t.Transact(ctx, "burnFrom", account, amount)
}

func (t *Token) TransferOwnership(ctx context.Context, newOwner ledger.Address) (*ledger.Receipt, error) {
	return t.Transact(ctx, "transferOwnership", newOwner)
}

func (t *Token) RenounceOwnership(ctx context.Context) (*ledger.Receipt, error) {
	return t.Transact(ctx, "renounceOwnership")
}

func (t *Token) Pause(ctx context.Context) (*ledger.Receipt, error) {
	return t.Transact(ctx, "pause")
}

func (t *Token) Unpause(ctx context.Context) (*ledger.Receipt, error) {
	return t.Transact(ctx, "unpause")
}

func (t *Token) Freeze(ctx context.Context, account ledger.Address) (*ledger.Receipt, error) {
	return t.Transact(ctx, "freeze", account)
}

func (t *Token) Unfreeze(ctx context.Context, account ledger.Address) (*ledger.Receipt, error) {
	return t.Transact(ctx, "unfreeze", account)
}

func (t *Token) Lock(ctx context.Context, holder ledger.Address, amount *big.Int, reason [32]byte, release uint64) (*ledger.Receipt, error) {
	return t.Transact(ctx, "lock", holder, amount, reason, release)
}

func (t *Token) TransferWithLock(ctx context.Context, to ledger.Address, amount *big.Int, reason [32]byte, release uint64) (*ledger.Receipt, error) {
	return t.Transact(ctx, "transferWithLock", to, amount, reason, release)
}

func (t *Token) ExtendLock(ctx context.Context, holder ledger.Address, reason [32]byte, extension uint64) (*ledger.Receipt, error) {
	return t.Transact(ctx, "extendLock", holder, reason, extension)
}

func (t *Token) IncreaseLockAmount(ctx context.Context, holder ledger.Address, reason [32]byte, amount *big.Int) (*ledger.Receipt, error) {
	return t.Transact(ctx, "increaseLockAmount", holder, reason, amount)
}

func (t *Token) Unlock(ctx context.Context, holder ledger.Address) (*ledger.Receipt, error) {
	return t.Transact(ctx, "unlock", holder)
}
