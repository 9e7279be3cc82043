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

package erc721

import (
	"context"
	"math/big"

	"github.com/ooeunoo/tokenspec/contracts"
	"github.com/ooeunoo/tokenspec/ledger"
)

// Token is a typed binding to a deployed ERC721All contract.
type Token struct {
	*contracts.Bound
}

func Deploy(
	ctx context.Context,
	backend contracts.Backend,
	signer *ledger.Account,
	name string,
	symbol string,
) (*Token, *ledger.Receipt, error) {
	bound, receipt, err := contracts.Deploy(ctx, backend, signer, Definition(), name, symbol)
	if err != nil {
		return nil, nil, err
	}
	return &Token{Bound: bound}, receipt, nil
}

func At(backend contracts.Backend, address ledger.Address, signer *ledger.Account) *Token {
	return &Token{Bound: contracts.Bind(backend, address, signer)}
}

func (t *Token) Connect(signer *ledger.Account) *Token {
	return &Token{Bound: t.WithSigner(signer)}
}

func (t *Token) Name(ctx context.Context) (string, error) {
	return t.CallString(ctx, "name")
}

func (t *Token) Symbol(ctx context.Context) (string, error) {
	return t.CallString(ctx, "symbol")
}

func (t *Token) TokenURI(ctx context.Context, tokenID *big.Int) (string, error) {
	return t.CallString(ctx, "tokenURI", tokenID)
}

func (t *Token) SupportsInterface(ctx context.Context, id [4]byte) (bool, error) {
	return t.CallBool(ctx, "supportsInterface", id)
}

func (t *Token) BalanceOf(ctx context.Context, owner ledger.Address) (*big.Int, error) {
	return t.CallBigInt(ctx, "balanceOf", owner)
}

func (t *Token) OwnerOf(ctx context.Context, tokenID *big.Int) (ledger.Address, error) {
	return t.CallAddress(ctx, "ownerOf", tokenID)
}

func (t *Token) GetApproved(ctx context.Context, tokenID *big.Int) (ledger.Address, error) {
	return t.CallAddress(ctx, "getApproved", tokenID)
}

func (t *Token) IsApprovedForAll(ctx context.Context, owner, operator ledger.Address) (bool, error) {
	return t.CallBool(ctx, "isApprovedForAll", owner, operator)
}

func (t *Token) Owner(ctx context.Context) (ledger.Address, error) {
	return t.CallAddress(ctx, "owner")
}

func (t *Token) Paused(ctx context.Context) (bool, error) {
	return t.CallBool(ctx, "paused")
}

func (t *Token) Approve(ctx context.Context, to ledger.Address, tokenID *big.Int) (*ledger.Receipt, error) {
	return t.Transact(ctx, "approve", to, tokenID)
}

func (t *Token) SetApprovalForAll(ctx context.Context, operator ledger.Address, approved bool) (*ledger.Receipt, error) {
	return t.Transact(ctx, "setApprovalForAll", operator, approved)
}

func (t *Token) TransferFrom(ctx context.Context, from, to ledger.Address, tokenID *big.Int) (*ledger.Receipt, error) {
	return t.Transact(ctx, "transferFrom", from, to, tokenID)
}

func (t *Token) SafeTransferFrom(ctx context.Context, from, to ledger.Address, tokenID *big.Int) (*ledger.Receipt, error) {
	return t.Transact(ctx, "safeTransferFrom(address,address,uint256)", from, to, tokenID)
}

func (t *Token) SafeTransferFromWithData(ctx context.Context, from, to ledger.Address, tokenID *big.Int, data []byte) (*ledger.Receipt, error) {
	return t.Transact(ctx, "safeTransferFrom(address,address,uint256,bytes)", from, to, tokenID, data)
}

func (t *Token) Mint(ctx context.Context, to ledger.Address, tokenID *big.Int) (*ledger.Receipt, error) {
	return t.Transact(ctx, "mint", to, tokenID)
}

func (t *Token) Burn(ctx context.Context, tokenID *big.Int) (*ledger.Receipt, error) {
	return t.Transact(ctx, "burn", tokenID)
}

func (t *Token) SetBaseURI(ctx context.Context, baseURI string) (*ledger.Receipt, error) {
	return t.Transact(ctx, "setBaseURI", baseURI)
}

func (t *Token) TransferOwnership(ctx context.Context, newOwner ledger.Address) (*ledger.Receipt, error) {
	return t.Transact(ctx, "transferOwnership", newOwner)
}

func (t *Token) Pause(ctx context.Context) (*ledger.Receipt, error) {
	return t.Transact(ctx, "pause")
}

func (t *Token) Unpause(ctx context.Context) (*ledger.Receipt, error) {
	return t.Transact(ctx, "unpause")
}
