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

// Package erc721 implements ERC721All, a non-fungible token with metadata,
// owner-only minting, burning and pausable transfers.
package erc721

import (
	"math/big"

	"github.com/ooeunoo/tokenspec/contracts"
	"github.com/ooeunoo/tokenspec/ledger"
)

const ContractName = "ERC721All"

// Interface ids answered by supportsInterface.
var (
	InterfaceERC165          = [4]byte{0x01, 0xff, 0xc9, 0xa7}
	InterfaceERC721          = [4]byte{0x80, 0xac, 0x58, 0xcd}
	InterfaceERC721Metadata  = [4]byte{0x5b, 0x5e, 0x13, 0x9f}
	supportedInterfaceLookup = map[[4]byte]bool{
		InterfaceERC165:         true,
		InterfaceERC721:         true,
		InterfaceERC721Metadata: true,
	}
)

var (
	TransferEvent = contracts.Event{
		Name: "Transfer",
		Inputs: []contracts.EventArg{
			{Name: "from", Type: "address", Indexed: true},
			{Name: "to", Type: "address", Indexed: true},
			{Name: "tokenId", Type: "uint256", Indexed: true},
		},
	}
	ApprovalEvent = contracts.Event{
		Name: "Approval",
		Inputs: []contracts.EventArg{
			{Name: "owner", Type: "address", Indexed: true},
			{Name: "approved", Type: "address", Indexed: true},
			{Name: "tokenId", Type: "uint256", Indexed: true},
		},
	}
	ApprovalForAllEvent = contracts.Event{
		Name: "ApprovalForAll",
		Inputs: []contracts.EventArg{
			{Name: "owner", Type: "address", Indexed: true},
			{Name: "operator", Type: "address", Indexed: true},
			{Name: "approved", Type: "bool"},
		},
	}
)

func ownerKey(tokenID *big.Int) string {
	return "owner/" + tokenID.String()
}

func approvalKey(tokenID *big.Int) string {
	return "approval/" + tokenID.String()
}

func balanceKey(a ledger.Address) string {
	return "balance/" + a.Hex()
}

func operatorKey(owner, operator ledger.Address) string {
	return "operator/" + owner.Hex() + "/" + operator.Hex()
}

// Definition returns the ERC721All contract code.
func Definition() *contracts.Definition {
	d := contracts.NewDefinition(ContractName).
		Constructor(
			[]contracts.Arg{
				{Name: "name_", Type: "string"},
				{Name: "symbol_", Type: "string"},
			},
			func(c *ledger.Context, args ledger.Args) error {
				name, err := args.String(0)
				if err != nil {
					return err
				}
				symbol, err := args.String(1)
				if err != nil {
					return err
				}
				c.SetString("name", name)
				c.SetString("symbol", symbol)
				contracts.InitOwnable(c)
				return nil
			},
		).
		Event(TransferEvent, ApprovalEvent, ApprovalForAllEvent)

	metadata(d)
	core(d)
	contracts.Ownable(d)
	extensions(d)
	contracts.Pausable(d, contracts.OnlyOwner)

	return d
}

func exists(c *ledger.Context, tokenID *big.Int) bool {
	_, ok := c.Load(ownerKey(tokenID))
	return ok
}

func ownerOf(c *ledger.Context, tokenID *big.Int) (ledger.Address, error) {
	if !exists(c, tokenID) {
		return ledger.ZeroAddress, ledger.Revert("ERC721: owner query for nonexistent token")
	}
	return c.Address(ownerKey(tokenID)), nil
}

func isApprovedForAll(c *ledger.Context, owner, operator ledger.Address) bool {
	return c.Bool(operatorKey(owner, operator))
}

func isApprovedOrOwner(c *ledger.Context, spender ledger.Address, tokenID *big.Int) (bool, error) {
	if !exists(c, tokenID) {
		return false, ledger.Revert("ERC721: operator query for nonexistent token")
	}
	owner := c.Address(ownerKey(tokenID))
	return spender == owner ||
		c.Address(approvalKey(tokenID)) == spender ||
		isApprovedForAll(c, owner, spender), nil
}

func approve(c *ledger.Context, to ledger.Address, tokenID *big.Int) {
	if to.IsZero() {
		c.Delete(approvalKey(tokenID))
	} else {
		c.SetAddress(approvalKey(tokenID), to)
	}
	c.Emit(ApprovalEvent.Name, c.Address(ownerKey(tokenID)), to, new(big.Int).Set(tokenID))
}

func beforeTokenTransfer(c *ledger.Context) error {
	if contracts.IsPaused(c) {
		return ledger.Revert("ERC721Pausable: token transfer while paused")
	}
	return nil
}

func addBalance(c *ledger.Context, a ledger.Address, delta int64) {
	balance := c.BigInt(balanceKey(a))
	c.SetBigInt(balanceKey(a), balance.Add(balance, big.NewInt(delta)))
}

func transfer(c *ledger.Context, from, to ledger.Address, tokenID *big.Int) error {
	owner, err := ownerOf(c, tokenID)
	if err != nil {
		return err
	}
	if owner != from {
		return ledger.Revert("ERC721: transfer of token that is not own")
	}
	if to.IsZero() {
		return ledger.Revert("ERC721: transfer to the zero address")
	}
	if err := beforeTokenTransfer(c); err != nil {
		return err
	}

	approve(c, ledger.ZeroAddress, tokenID)

	addBalance(c, from, -1)
	addBalance(c, to, 1)
	c.SetAddress(ownerKey(tokenID), to)

	c.Emit(TransferEvent.Name, from, to, new(big.Int).Set(tokenID))
	return nil
}

func mint(c *ledger.Context, to ledger.Address, tokenID *big.Int) error {
	if to.IsZero() {
		return ledger.Revert("ERC721: mint to the zero address")
	}
	if exists(c, tokenID) {
		return ledger.Revert("ERC721: token already minted")
	}
	if err := beforeTokenTransfer(c); err != nil {
		return err
	}

	addBalance(c, to, 1)
	c.SetAddress(ownerKey(tokenID), to)

	c.Emit(TransferEvent.Name, ledger.ZeroAddress, to, new(big.Int).Set(tokenID))
	return nil
}

func burn(c *ledger.Context, tokenID *big.Int) error {
	owner, err := ownerOf(c, tokenID)
	if err != nil {
		return err
	}
	if err := beforeTokenTransfer(c); err != nil {
		return err
	}

	approve(c, ledger.ZeroAddress, tokenID)

	addBalance(c, owner, -1)
	c.Delete(ownerKey(tokenID))

	c.Emit(TransferEvent.Name, owner, ledger.ZeroAddress, new(big.Int).Set(tokenID))
	return nil
}

func metadata(d *contracts.Definition) {
	d.Method(
		contracts.Method{
			Name:       "name",
			Outputs:    []contracts.Arg{{Type: "string"}},
			Mutability: contracts.View,
			Fn: func(c *ledger.Context, _ ledger.Args) (interface{}, error) {
				return c.String("name"), nil
			},
		},
		contracts.Method{
			Name:       "symbol",
			Outputs:    []contracts.Arg{{Type: "string"}},
			Mutability: contracts.View,
			Fn: func(c *ledger.Context, _ ledger.Args) (interface{}, error) {
				return c.String("symbol"), nil
			},
		},
		contracts.Method{
			Name:       "tokenURI",
			Inputs:     []contracts.Arg{{Name: "tokenId", Type: "uint256"}},
			Outputs:    []contracts.Arg{{Type: "string"}},
			Mutability: contracts.View,
			Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
				tokenID, err := args.Uint256(0)
				if err != nil {
					return nil, err
				}
				if !exists(c, tokenID) {
					return nil, ledger.Revert("ERC721Metadata: URI query for nonexistent token")
				}
				base := c.String("baseURI")
				if base == "" {
					return "", nil
				}
				return base + tokenID.String(), nil
			},
		},
		contracts.Method{
			Name:   "setBaseURI",
			Inputs: []contracts.Arg{{Name: "baseURI_", Type: "string"}},
			Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
				if err := contracts.OnlyOwner(c); err != nil {
					return nil, err
				}
				base, err := args.String(0)
				if err != nil {
					return nil, err
				}
				c.SetString("baseURI", base)
				return nil, nil
			},
		},
		contracts.Method{
			Name:       "supportsInterface",
			Inputs:     []contracts.Arg{{Name: "interfaceId", Type: "bytes4"}},
			Outputs:    []contracts.Arg{{Type: "bool"}},
			Mutability: contracts.View,
			Fn: func(_ *ledger.Context, args ledger.Args) (interface{}, error) {
				id, ok := args[0].([4]byte)
				if !ok {
					return nil, ledger.Revert("ERC721: invalid interface id")
				}
				return supportedInterfaceLookup[id], nil
			},
		},
	)
}

func transferFromMethod(name string, inputs []contracts.Arg) contracts.Method {
	return contracts.Method{
		Name:   name,
		Inputs: inputs,
		Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
			from, err := args.Address(0)
			if err != nil {
				return nil, err
			}
			to, err := args.Address(1)
			if err != nil {
				return nil, err
			}
			tokenID, err := args.Uint256(2)
			if err != nil {
				return nil, err
			}
			ok, err := isApprovedOrOwner(c, c.Sender, tokenID)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, ledger.Revert("ERC721: transfer caller is not owner nor approved")
			}
			return nil, transfer(c, from, to, tokenID)
		},
	}
}

var transferInputs = []contracts.Arg{
	{Name: "from", Type: "address"},
	{Name: "to", Type: "address"},
	{Name: "tokenId", Type: "uint256"},
}

func core(d *contracts.Definition) {
	d.Method(
		contracts.Method{
			Name:       "balanceOf",
			Inputs:     []contracts.Arg{{Name: "owner", Type: "address"}},
			Outputs:    []contracts.Arg{{Type: "uint256"}},
			Mutability: contracts.View,
			Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
				owner, err := args.Address(0)
				if err != nil {
					return nil, err
				}
				if owner.IsZero() {
					return nil, ledger.Revert("ERC721: balance query for the zero address")
				}
				return c.BigInt(balanceKey(owner)), nil
			},
		},
		contracts.Method{
			Name:       "ownerOf",
			Inputs:     []contracts.Arg{{Name: "tokenId", Type: "uint256"}},
			Outputs:    []contracts.Arg{{Type: "address"}},
			Mutability: contracts.View,
			Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
				tokenID, err := args.Uint256(0)
				if err != nil {
					return nil, err
				}
				return ownerOf(c, tokenID)
			},
		},
		contracts.Method{
			Name:   "approve",
			Inputs: []contracts.Arg{{Name: "to", Type: "address"}, {Name: "tokenId", Type: "uint256"}},
			Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
				to, err := args.Address(0)
				if err != nil {
					return nil, err
				}
				tokenID, err := args.Uint256(1)
				if err != nil {
					return nil, err
				}
				owner, err := ownerOf(c, tokenID)
				if err != nil {
					return nil, err
				}
				if to == owner {
					return nil, ledger.Revert("ERC721: approval to current owner")
				}
				if c.Sender != owner && !isApprovedForAll(c, owner, c.Sender) {
					return nil, ledger.Revert("ERC721: approve caller is not owner nor approved for all")
				}
				approve(c, to, tokenID)
				return nil, nil
			},
		},
		contracts.Method{
			Name:       "getApproved",
			Inputs:     []contracts.Arg{{Name: "tokenId", Type: "uint256"}},
			Outputs:    []contracts.Arg{{Type: "address"}},
			Mutability: contracts.View,
			Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
				tokenID, err := args.Uint256(0)
				if err != nil {
					return nil, err
				}
				if !exists(c, tokenID) {
					return nil, ledger.Revert("ERC721: approved query for nonexistent token")
				}
				return c.Address(approvalKey(tokenID)), nil
			},
		},
		contracts.Method{
			Name:   "setApprovalForAll",
			Inputs: []contracts.Arg{{Name: "operator", Type: "address"}, {Name: "approved", Type: "bool"}},
			Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
				operator, err := args.Address(0)
				if err != nil {
					return nil, err
				}
				approved, err := args.Bool(1)
				if err != nil {
					return nil, err
				}
				if operator == c.Sender {
					return nil, ledger.Revert("ERC721: approve to caller")
				}
				c.SetBool(operatorKey(c.Sender, operator), approved)
				c.Emit(ApprovalForAllEvent.Name, c.Sender, operator, approved)
				return nil, nil
			},
		},
		contracts.Method{
			Name:       "isApprovedForAll",
			Inputs:     []contracts.Arg{{Name: "owner", Type: "address"}, {Name: "operator", Type: "address"}},
			Outputs:    []contracts.Arg{{Type: "bool"}},
			Mutability: contracts.View,
			Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
				owner, err := args.Address(0)
				if err != nil {
					return nil, err
				}
				operator, err := args.Address(1)
				if err != nil {
					return nil, err
				}
				return isApprovedForAll(c, owner, operator), nil
			},
		},
		transferFromMethod("transferFrom", transferInputs),
		transferFromMethod("safeTransferFrom", transferInputs),
		transferFromMethod("safeTransferFrom", append(
			append([]contracts.Arg{}, transferInputs...),
			contracts.Arg{Name: "_data", Type: "bytes"},
		)),
	)
}

func extensions(d *contracts.Definition) {
	d.Method(
		contracts.Method{
			Name:   "mint",
			Inputs: []contracts.Arg{{Name: "to", Type: "address"}, {Name: "tokenId", Type: "uint256"}},
			Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
				if err := contracts.OnlyOwner(c); err != nil {
					return nil, err
				}
				to, err := args.Address(0)
				if err != nil {
					return nil, err
				}
				tokenID, err := args.Uint256(1)
				if err != nil {
					return nil, err
				}
				return nil, mint(c, to, tokenID)
			},
		},
		contracts.Method{
			Name:   "burn",
			Inputs: []contracts.Arg{{Name: "tokenId", Type: "uint256"}},
			Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
				tokenID, err := args.Uint256(0)
				if err != nil {
					return nil, err
				}
				ok, err := isApprovedOrOwner(c, c.Sender, tokenID)
				if err != nil {
					return nil, err
				}
				if !ok {
					return nil, ledger.Revert("ERC721Burnable: caller is not owner nor approved")
				}
				return nil, burn(c, tokenID)
			},
		},
	)
}
