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

// Package kip7 implements KIP7All, a fungible token with the ERC20 surface
// plus the Ownable, Burnable, Mintable, Pausable, Freezable and
// TimeLockable extensions.
package kip7

import (
	"math/big"

	"github.com/ooeunoo/tokenspec/contracts"
	"github.com/ooeunoo/tokenspec/ledger"
)

const (
	ContractName = "KIP7All"
	Decimals     = 18
)

var (
	TransferEvent = contracts.Event{
		Name: "Transfer",
		Inputs: []contracts.EventArg{
			{Name: "from", Type: "address", Indexed: true},
			{Name: "to", Type: "address", Indexed: true},
			{Name: "value", Type: "uint256"},
		},
	}
	ApprovalEvent = contracts.Event{
		Name: "Approval",
		Inputs: []contracts.EventArg{
			{Name: "owner", Type: "address", Indexed: true},
			{Name: "spender", Type: "address", Indexed: true},
			{Name: "value", Type: "uint256"},
		},
	}
)

func balanceKey(a ledger.Address) string {
	return "balance/" + a.Hex()
}

func allowanceKey(owner, spender ledger.Address) string {
	return "allowance/" + owner.Hex() + "/" + spender.Hex()
}

// Definition returns the KIP7All contract code.
func Definition() *contracts.Definition {
	d := contracts.NewDefinition(ContractName).
		Constructor(
			[]contracts.Arg{
				{Name: "name_", Type: "string"},
				{Name: "symbol_", Type: "string"},
				{Name: "initialSupply", Type: "uint256"},
			},
			construct,
		).
		Event(TransferEvent, ApprovalEvent)

	erc20(d)
	contracts.Ownable(d)
	burnable(d)
	mintable(d)
	contracts.Pausable(d, contracts.OnlyOwner)
	freezable(d)
	timeLockable(d)

	return d
}

func construct(c *ledger.Context, args ledger.Args) error {
	name, err := args.String(0)
	if err != nil {
		return err
	}
	symbol, err := args.String(1)
	if err != nil {
		return err
	}
	initialSupply, err := args.Uint256(2)
	if err != nil {
		return err
	}

	c.SetString("name", name)
	c.SetString("symbol", symbol)
	contracts.InitOwnable(c)

	return mint(c, c.Sender, initialSupply)
}

func erc20(d *contracts.Definition) {
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
			Name:       "decimals",
			Outputs:    []contracts.Arg{{Type: "uint8"}},
			Mutability: contracts.View,
			Fn: func(*ledger.Context, ledger.Args) (interface{}, error) {
				return uint64(Decimals), nil
			},
		},
		contracts.Method{
			Name:       "totalSupply",
			Outputs:    []contracts.Arg{{Type: "uint256"}},
			Mutability: contracts.View,
			Fn: func(c *ledger.Context, _ ledger.Args) (interface{}, error) {
				return c.BigInt("totalSupply"), nil
			},
		},
		contracts.Method{
			Name:       "balanceOf",
			Inputs:     []contracts.Arg{{Name: "account", Type: "address"}},
			Outputs:    []contracts.Arg{{Type: "uint256"}},
			Mutability: contracts.View,
			Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
				account, err := args.Address(0)
				if err != nil {
					return nil, err
				}
				return transferableBalance(c, account), nil
			},
		},
		contracts.Method{
			Name:       "allowance",
			Inputs:     []contracts.Arg{{Name: "owner", Type: "address"}, {Name: "spender", Type: "address"}},
			Outputs:    []contracts.Arg{{Type: "uint256"}},
			Mutability: contracts.View,
			Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
				owner, err := args.Address(0)
				if err != nil {
					return nil, err
				}
				spender, err := args.Address(1)
				if err != nil {
					return nil, err
				}
				return c.BigInt(allowanceKey(owner, spender)), nil
			},
		},
		contracts.Method{
			Name:    "transfer",
			Inputs:  []contracts.Arg{{Name: "recipient", Type: "address"}, {Name: "amount", Type: "uint256"}},
			Outputs: []contracts.Arg{{Type: "bool"}},
			Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
				to, err := args.Address(0)
				if err != nil {
					return nil, err
				}
				amount, err := args.Uint256(1)
				if err != nil {
					return nil, err
				}
				if err := transfer(c, c.Sender, to, amount); err != nil {
					return nil, err
				}
				return true, nil
			},
		},
		contracts.Method{
			Name: "transferFrom",
			Inputs: []contracts.Arg{
				{Name: "sender", Type: "address"},
				{Name: "recipient", Type: "address"},
				{Name: "amount", Type: "uint256"},
			},
			Outputs: []contracts.Arg{{Type: "bool"}},
			Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
				from, err := args.Address(0)
				if err != nil {
					return nil, err
				}
				to, err := args.Address(1)
				if err != nil {
					return nil, err
				}
				amount, err := args.Uint256(2)
				if err != nil {
					return nil, err
				}
				if isFrozen(c, c.Sender) {
					return nil, ledger.Revert("Freezable: sender freezed")
				}
				if err := transfer(c, from, to, amount); err != nil {
					return nil, err
				}
				if err := spendAllowance(c, from, c.Sender, amount, "ERC20: transfer amount exceeds allowance"); err != nil {
					return nil, err
				}
				return true, nil
			},
		},
		contracts.Method{
			Name:    "approve",
			Inputs:  []contracts.Arg{{Name: "spender", Type: "address"}, {Name: "amount", Type: "uint256"}},
			Outputs: []contracts.Arg{{Type: "bool"}},
			Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
				spender, err := args.Address(0)
				if err != nil {
					return nil, err
				}
				amount, err := args.Uint256(1)
				if err != nil {
					return nil, err
				}
				if err := approve(c, c.Sender, spender, amount); err != nil {
					return nil, err
				}
				return true, nil
			},
		},
		contracts.Method{
			Name:    "increaseAllowance",
			Inputs:  []contracts.Arg{{Name: "spender", Type: "address"}, {Name: "addedValue", Type: "uint256"}},
			Outputs: []contracts.Arg{{Type: "bool"}},
			Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
				spender, err := args.Address(0)
				if err != nil {
					return nil, err
				}
				added, err := args.Uint256(1)
				if err != nil {
					return nil, err
				}
				current := c.BigInt(allowanceKey(c.Sender, spender))
				if err := approve(c, c.Sender, spender, current.Add(current, added)); err != nil {
					return nil, err
				}
				return true, nil
			},
		},
		contracts.Method{
			Name:    "decreaseAllowance",
			Inputs:  []contracts.Arg{{Name: "spender", Type: "address"}, {Name: "subtractedValue", Type: "uint256"}},
			Outputs: []contracts.Arg{{Type: "bool"}},
			Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
				spender, err := args.Address(0)
				if err != nil {
					return nil, err
				}
				subtracted, err := args.Uint256(1)
				if err != nil {
					return nil, err
				}
				current := c.BigInt(allowanceKey(c.Sender, spender))
				if current.Cmp(subtracted) < 0 {
					return nil, ledger.Revert("ERC20: decreased allowance below zero")
				}
				if err := approve(c, c.Sender, spender, current.Sub(current, subtracted)); err != nil {
					return nil, err
				}
				return true, nil
			},
		},
	)
}

// beforeTokenTransfer runs before every balance change. from is zero for
// mints and to is zero for burns.
func beforeTokenTransfer(c *ledger.Context, from, to ledger.Address) error {
	if contracts.IsPaused(c) {
		return ledger.Revert("Pausable: token transfer while paused")
	}
	if !from.IsZero() && isFrozen(c, from) {
		return ledger.Revert("Freezable: from freezed")
	}
	if !to.IsZero() && isFrozen(c, to) {
		return ledger.Revert("Freezable: to freezed")
	}
	return nil
}

func transfer(c *ledger.Context, from, to ledger.Address, amount *big.Int) error {
	if from.IsZero() {
		return ledger.Revert("ERC20: transfer from the zero address")
	}
	if to.IsZero() {
		return ledger.Revert("ERC20: transfer to the zero address")
	}
	if err := beforeTokenTransfer(c, from, to); err != nil {
		return err
	}
	claimUnlockable(c, from)

	if transferableBalance(c, from).Cmp(amount) < 0 {
		return ledger.Revert("ERC20: transfer amount exceeds balance")
	}

	fromBalance := c.BigInt(balanceKey(from))
	c.SetBigInt(balanceKey(from), fromBalance.Sub(fromBalance, amount))
	toBalance := c.BigInt(balanceKey(to))
	c.SetBigInt(balanceKey(to), toBalance.Add(toBalance, amount))

	c.Emit(TransferEvent.Name, from, to, new(big.Int).Set(amount))
	return nil
}

func mint(c *ledger.Context, to ledger.Address, amount *big.Int) error {
	if to.IsZero() {
		return ledger.Revert("ERC20: mint to the zero address")
	}
	if err := beforeTokenTransfer(c, ledger.ZeroAddress, to); err != nil {
		return err
	}

	supply := c.BigInt("totalSupply")
	c.SetBigInt("totalSupply", supply.Add(supply, amount))
	balance := c.BigInt(balanceKey(to))
	c.SetBigInt(balanceKey(to), balance.Add(balance, amount))

	c.Emit(TransferEvent.Name, ledger.ZeroAddress, to, new(big.Int).Set(amount))
	return nil
}

func burn(c *ledger.Context, from ledger.Address, amount *big.Int) error {
	if from.IsZero() {
		return ledger.Revert("ERC20: burn from the zero address")
	}
	if err := beforeTokenTransfer(c, from, ledger.ZeroAddress); err != nil {
		return err
	}
	claimUnlockable(c, from)

	if transferableBalance(c, from).Cmp(amount) < 0 {
		return ledger.Revert("ERC20: burn amount exceeds balance")
	}

	balance := c.BigInt(balanceKey(from))
	c.SetBigInt(balanceKey(from), balance.Sub(balance, amount))
	supply := c.BigInt("totalSupply")
	c.SetBigInt("totalSupply", supply.Sub(supply, amount))

	c.Emit(TransferEvent.Name, from, ledger.ZeroAddress, new(big.Int).Set(amount))
	return nil
}

func approve(c *ledger.Context, owner, spender ledger.Address, amount *big.Int) error {
	if owner.IsZero() {
		return ledger.Revert("ERC20: approve from the zero address")
	}
	if spender.IsZero() {
		return ledger.Revert("ERC20: approve to the zero address")
	}
	c.SetBigInt(allowanceKey(owner, spender), amount)
	c.Emit(ApprovalEvent.Name, owner, spender, new(big.Int).Set(amount))
	return nil
}

func spendAllowance(c *ledger.Context, owner, spender ledger.Address, amount *big.Int, reason string) error {
	current := c.BigInt(allowanceKey(owner, spender))
	if current.Cmp(amount) < 0 {
		return ledger.Revert(reason)
	}
	return approve(c, owner, spender, current.Sub(current, amount))
}

func burnable(d *contracts.Definition) {
	d.Method(
		contracts.Method{
			Name:   "burn",
			Inputs: []contracts.Arg{{Name: "amount", Type: "uint256"}},
			Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
				amount, err := args.Uint256(0)
				if err != nil {
					return nil, err
				}
				return nil, burn(c, c.Sender, amount)
			},
		},
		contracts.Method{
			Name:   "burnFrom",
			Inputs: []contracts.Arg{{Name: "account", Type: "address"}, {Name: "amount", Type: "uint256"}},
			Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
				account, err := args.Address(0)
				if err != nil {
					return nil, err
				}
				amount, err := args.Uint256(1)
				if err != nil {
					return nil, err
				}
				if err := spendAllowance(c, account, c.Sender, amount, "ERC20: burn amount exceeds allowance"); err != nil {
					return nil, err
				}
				return nil, burn(c, account, amount)
			},
		},
	)
}

func mintable(d *contracts.Definition) {
	d.Method(contracts.Method{
		Name:    "mint",
		Inputs:  []contracts.Arg{{Name: "amount", Type: "uint256"}},
		Outputs: []contracts.Arg{{Type: "bool"}},
		Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
			if err := contracts.OnlyOwner(c); err != nil {
				return nil, err
			}
			amount, err := args.Uint256(0)
			if err != nil {
				return nil, err
			}
			if err := mint(c, c.Sender, amount); err != nil {
				return nil, err
			}
			return true, nil
		},
	})
}
