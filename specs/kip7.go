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

// Package specs holds the scenario libraries run against token contracts.
// Each library returns a harness.Suite that deploys a fresh token before
// every case and drives it through its public methods only.
package specs

import (
	"context"
	"math/big"

	"github.com/ooeunoo/tokenspec/clock"
	"github.com/ooeunoo/tokenspec/contracts/kip7"
	"github.com/ooeunoo/tokenspec/expect"
	"github.com/ooeunoo/tokenspec/harness"
	"github.com/ooeunoo/tokenspec/ledger"
	"github.com/ooeunoo/tokenspec/units"
)

var (
	zero   = big.NewInt(0)
	one    = big.NewInt(1)
	two    = big.NewInt(2)
	three  = big.NewInt(3)
	negOne = big.NewInt(-1)
)

// KIP7Options configures the KIP7 scenarios.
type KIP7Options struct {
	// Contract is the registered contract deployed before every case.
	Contract      string
	Name          string
	Symbol        string
	Decimals      uint64
	InitialSupply *big.Int
}

func (o KIP7Options) withDefaults() KIP7Options {
	if o.Contract == "" {
		o.Contract = kip7.ContractName
	}
	if o.Name == "" {
		o.Name = "KIP7"
	}
	if o.Symbol == "" {
		o.Symbol = "KIP7"
	}
	if o.Decimals == 0 {
		o.Decimals = kip7.Decimals
	}
	if o.InitialSupply == nil {
		o.InitialSupply = units.Tokens(10_000_000, int32(o.Decimals))
	}
	return o
}

type players struct {
	owner *ledger.Account
	user1 *ledger.Account
	user2 *ledger.Account
	user3 *ledger.Account
}

func usePlayers(t *harness.T, p *players) {
	signers := t.Env().Signers()
	if len(signers) < 4 {
		t.Fatalf("scenarios need 4 signers, network has %d", len(signers))
	}
	p.owner, p.user1, p.user2, p.user3 = signers[0], signers[1], signers[2], signers[3]
}

func (p *players) tag(env *harness.Environment) {
	env.NameTag(ledger.ZeroAddress, "ZeroAddress")
	env.NameTag(p.owner.Address, "Owner")
	env.NameTag(p.user1.Address, "User1")
	env.NameTag(p.user2.Address, "User2")
	env.NameTag(p.user3.Address, "User3")
}

func addresses(accounts ...*ledger.Account) []ledger.Address {
	out := make([]ledger.Address, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.Address)
	}
	return out
}

func amounts(values ...*big.Int) []*big.Int {
	return values
}

type kip7Scenario struct {
	players
	opts  KIP7Options
	token *kip7.Token

	reason      [32]byte
	otherReason [32]byte

	now        uint64
	beforeYear uint64
	beforeHour uint64
	afterHour  uint64
	afterYear  uint64
}

// as returns the token connected to signer.
func (s *kip7Scenario) as(signer *ledger.Account) *kip7.Token {
	return s.token.Connect(signer)
}

func (s *kip7Scenario) transferFn(ctx context.Context, from *ledger.Account, to ledger.Address, amount *big.Int) expect.TxFunc {
	return func() (*ledger.Receipt, error) {
		return s.as(from).Transfer(ctx, to, amount)
	}
}

func (s *kip7Scenario) transferFromFn(ctx context.Context, spender *ledger.Account, from, to ledger.Address, amount *big.Int) expect.TxFunc {
	return func() (*ledger.Receipt, error) {
		return s.as(spender).TransferFrom(ctx, from, to, amount)
	}
}

// KIP7 returns the scenarios of a KIP7 token with every extension.
func KIP7(opts KIP7Options) *harness.Suite {
	s := &kip7Scenario{opts: opts.withDefaults()}

	return &harness.Suite{
		Name: "KIP7Mock",
		Setup: func(t *harness.T) {
			usePlayers(t, &s.players)
		},
		BeforeEach: func(t *harness.T) {
			env := t.Env()
			s.tag(env)

			bound, _, err := env.Deploy(
				t.Context(),
				s.owner,
				s.opts.Contract,
				s.opts.Name,
				s.opts.Symbol,
				s.opts.InitialSupply,
			)
			t.Require(err)
			s.token = kip7.At(env.Ledger, bound.Address(), s.owner)
			env.NameTag(bound.Address(), "Contract")
		},
		Suites: []*harness.Suite{
			s.metadata(),
			s.standard(),
			s.recommend(),
			{
				Name: "ERC20 Extensions",
				Suites: []*harness.Suite{
					s.ownable(),
					s.burnable(),
					s.mintable(),
					s.pausable(),
					s.freezable(),
					s.timeLockable(),
				},
			},
		},
	}
}

func (s *kip7Scenario) metadata() *harness.Suite {
	return &harness.Suite{
		Name: "ERC20 Metadata",
		Cases: []harness.Case{
			{
				Name: "Optional: returns the name of the token",
				Run: func(t *harness.T) {
					t.Require(expect.Value(s.token.Name(t.Context())).Equal(s.opts.Name))
				},
			},
			{
				Name: "Optional: returns the symbol of the token",
				Run: func(t *harness.T) {
					t.Require(expect.Value(s.token.Symbol(t.Context())).Equal(s.opts.Symbol))
				},
			},
			{
				Name: "Optional: returns the number of decimals the token uses",
				Run: func(t *harness.T) {
					t.Require(expect.Value(s.token.Decimals(t.Context())).Equal(s.opts.Decimals))
				},
			},
		},
	}
}

func (s *kip7Scenario) standard() *harness.Suite {
	return &harness.Suite{
		Name: "ERC20 Standard",
		Cases: []harness.Case{
			{
				Name: "Required: Returns the total token supply.",
				Run: func(t *harness.T) {
					t.Require(expect.Value(s.token.TotalSupply(t.Context())).Equal(s.opts.InitialSupply))
				},
			},
			{
				Name: "Required: Returns the account balance of another account with address _owner.",
				Run: func(t *harness.T) {
					t.Require(expect.Value(s.token.BalanceOf(t.Context(), s.owner.Address)).Equal(s.opts.InitialSupply))
				},
			},
			{
				Name: "Required: Transfers _value amount of tokens to address _to, and MUST fire the Transfer event.",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.ChangeTokenBalances(ctx, s.token,
						addresses(s.owner, s.user1), amounts(negOne, one),
						s.transferFn(ctx, s.owner, s.user1.Address, one),
					))

					t.Require(expect.Tx(s.as(s.owner).Transfer(ctx, s.user1.Address, one)).
						Emit(s.token, "Transfer").WithArgs(s.owner.Address, s.user1.Address, one))
				},
			},
			{
				Name: "Required: Transfers _value amount of tokens from address _from to address _to, and MUST fire the Transfer event.",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.Tx(s.as(s.owner).Approve(ctx, s.user1.Address, one)).Succeed())
					t.Require(expect.ChangeTokenBalances(ctx, s.token,
						addresses(s.owner, s.user1, s.user2), amounts(negOne, zero, one),
						s.transferFromFn(ctx, s.user1, s.owner.Address, s.user2.Address, one),
					))

					t.Require(expect.Tx(s.as(s.owner).Approve(ctx, s.user1.Address, one)).Succeed())
					t.Require(expect.Tx(s.as(s.user1).TransferFrom(ctx, s.owner.Address, s.user2.Address, one)).
						Emit(s.token, "Transfer").WithArgs(s.owner.Address, s.user2.Address, one))
				},
			},
			{
				Name: "Required: Prevents to of non-address to transfer",
				Run: func(t *harness.T) {
					t.Require(expect.Tx(s.as(s.owner).Transfer(t.Context(), ledger.ZeroAddress, one)).
						RevertedWith("ERC20: transfer to the zero address"))
				},
			},
			{
				Name: "Required: Prevents exceed-amount to transfer",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.Tx(s.as(s.owner).Transfer(ctx, s.user1.Address, one)).Succeed())
					t.Require(expect.Tx(s.as(s.user1).Transfer(ctx, s.user2.Address, two)).
						RevertedWith("ERC20: transfer amount exceeds balance"))
				},
			},
			{
				Name: "Required: Prevents non-address to approve",
				Run: func(t *harness.T) {
					t.Require(expect.Tx(s.as(s.owner).Approve(t.Context(), ledger.ZeroAddress, one)).
						RevertedWith("ERC20: approve to the zero address"))
				},
			},
			{
				Name: "Required: Returns the amount which _spender is still allowed to withdraw from _owner.",
				Run: func(t *harness.T) {
					t.Require(expect.Value(s.token.Allowance(t.Context(), s.owner.Address, s.user1.Address)).Equal(zero))
				},
			},
			{
				Name: "Required: Allows _spender to withdraw from your account multiple times, up to the _value amount.",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.Tx(s.as(s.owner).Approve(ctx, s.user1.Address, one)).Succeed())
					t.Require(expect.Value(s.token.Allowance(ctx, s.owner.Address, s.user1.Address)).Equal(one))

					t.Require(expect.Tx(s.as(s.owner).Approve(ctx, s.user1.Address, one)).
						Emit(s.token, "Approval").WithArgs(s.owner.Address, s.user1.Address, one))
				},
			},
			{
				Name: "Required: Prevents exceed-allowance to transferFrom",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.Tx(s.as(s.owner).Approve(ctx, s.user1.Address, one)).Succeed())
					t.Require(expect.Tx(s.as(s.user1).TransferFrom(ctx, s.owner.Address, s.user2.Address, two)).
						RevertedWith("ERC20: transfer amount exceeds allowance"))
				},
			},
		},
	}
}

func (s *kip7Scenario) recommend() *harness.Suite {
	return &harness.Suite{
		Name: "ERC20 Recommend",
		Cases: []harness.Case{
			{
				Name: "Recommend: Increase the amount of tokens that an owner allowed to a spender, and fire the Approval event",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.Tx(s.as(s.owner).Approve(ctx, s.user1.Address, one)).Succeed())

					t.Require(expect.Tx(s.as(s.owner).IncreaseAllowance(ctx, s.user1.Address, one)).
						Emit(s.token, "Approval").WithArgs(s.owner.Address, s.user1.Address, two))
					t.Require(expect.Value(s.token.Allowance(ctx, s.owner.Address, s.user1.Address)).Equal(two))
				},
			},
			{
				Name: "Recommend: Decrease the amount of tokens that an owner allowed to a spender. and fire the Approval event",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.Tx(s.as(s.owner).Approve(ctx, s.user1.Address, one)).Succeed())
					t.Require(expect.Tx(s.as(s.owner).DecreaseAllowance(ctx, s.user1.Address, one)).
						Emit(s.token, "Approval").WithArgs(s.owner.Address, s.user1.Address, zero))
					t.Require(expect.Value(s.token.Allowance(ctx, s.owner.Address, s.user1.Address)).Equal(zero))
				},
			},
			{
				Name: "Recommend: Prevents decrease approve amount than the current allowance",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.Tx(s.as(s.owner).Approve(ctx, s.user1.Address, one)).Succeed())
					t.Require(expect.Tx(s.as(s.owner).DecreaseAllowance(ctx, s.user1.Address, two)).
						RevertedWith("ERC20: decreased allowance below zero"))
				},
			},
		},
	}
}

func (s *kip7Scenario) ownable() *harness.Suite {
	return &harness.Suite{
		Name: "ERC20Ownable",
		Cases: []harness.Case{
			{
				Name: "Extensions: Has an owner",
				Run: func(t *harness.T) {
					t.Require(expect.Value(s.token.Owner(t.Context())).Equal(s.owner.Address))
				},
			},
			{
				Name: "Extensions: Changes owner after transfer ownership",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.Tx(s.as(s.owner).TransferOwnership(ctx, s.user1.Address)).Succeed())
					t.Require(expect.Value(s.token.Owner(ctx)).Equal(s.user1.Address))
				},
			},
			{
				Name: "Extensions: Prevents non-owner from transfer ownership",
				Run: func(t *harness.T) {
					t.Require(expect.Tx(s.as(s.user1).TransferOwnership(t.Context(), s.user1.Address)).
						RevertedWith("Ownable: caller is not the owner"))
				},
			},
			{
				Name: "Extensions: Prevents non-address to transfer ownership",
				Run: func(t *harness.T) {
					t.Require(expect.Tx(s.as(s.owner).TransferOwnership(t.Context(), ledger.ZeroAddress)).
						RevertedWith("Ownable: new owner is the zero address"))
				},
			},
			{
				Name: "Extensions: Change owner to zero after renounce ownership",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.Tx(s.as(s.owner).RenounceOwnership(ctx)).Succeed())
					t.Require(expect.Value(s.token.Owner(ctx)).Equal(ledger.ZeroAddress))
				},
			},
			{
				Name: "Extensions: Prevents non-owner from renounce ownership",
				Run: func(t *harness.T) {
					t.Require(expect.Tx(s.as(s.user1).RenounceOwnership(t.Context())).
						RevertedWith("Ownable: caller is not the owner"))
				},
			},
		},
	}
}

func (s *kip7Scenario) burnable() *harness.Suite {
	return &harness.Suite{
		Name: "ERC20Burnable",
		Cases: []harness.Case{
			{
				Name: "Extensions: Allows within balance to burn. with decrease totalSupply and fire the Transfer event",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.ChangeTokenBalances(ctx, s.token,
						addresses(s.owner), amounts(negOne),
						func() (*ledger.Receipt, error) { return s.as(s.owner).Burn(ctx, one) },
					))

					t.Require(expect.Value(s.token.TotalSupply(ctx)).
						Equal(new(big.Int).Sub(s.opts.InitialSupply, one)))

					t.Require(expect.Tx(s.as(s.owner).Burn(ctx, one)).
						Emit(s.token, "Transfer").WithArgs(s.owner.Address, ledger.ZeroAddress, one))
				},
			},
			{
				Name: "Extensions: Allows within allowance balance to burnFrom. with decrease totalSupply and fire the Transfer, Approval event",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.Tx(s.as(s.owner).Approve(ctx, s.user1.Address, three)).Succeed())

					t.Require(expect.ChangeTokenBalances(ctx, s.token,
						addresses(s.owner, s.user1), amounts(negOne, zero),
						func() (*ledger.Receipt, error) { return s.as(s.user1).BurnFrom(ctx, s.owner.Address, one) },
					))

					t.Require(expect.Value(s.token.TotalSupply(ctx)).
						Equal(new(big.Int).Sub(s.opts.InitialSupply, one)))

					t.Require(expect.Tx(s.as(s.user1).BurnFrom(ctx, s.owner.Address, one)).
						Emit(s.token, "Approval").WithArgs(s.owner.Address, s.user1.Address, one))

					t.Require(expect.Tx(s.as(s.user1).BurnFrom(ctx, s.owner.Address, one)).
						Emit(s.token, "Transfer").WithArgs(s.owner.Address, ledger.ZeroAddress, one))
				},
			},
			{
				Name: "Extensions: Prevents exceed balance to burn",
				Run: func(t *harness.T) {
					t.Require(expect.Tx(s.as(s.user1).Burn(t.Context(), one)).
						RevertedWith("ERC20: burn amount exceeds balance"))
				},
			},
			{
				Name: "Extensions: Prevents exceed allowance to burnFrom",
				Run: func(t *harness.T) {
					t.Require(expect.Tx(s.as(s.user1).BurnFrom(t.Context(), s.owner.Address, one)).
						RevertedWith("ERC20: burn amount exceeds allowance"))
				},
			},
		},
	}
}

func (s *kip7Scenario) mintable() *harness.Suite {
	return &harness.Suite{
		Name: "ERC20Mintable",
		Cases: []harness.Case{
			{
				Name: "Extensions: Prevents non-owner to mint",
				Run: func(t *harness.T) {
					t.Require(expect.Tx(s.as(s.user1).Mint(t.Context(), one)).
						RevertedWith("Ownable: caller is not the owner"))
				},
			},
			{
				Name: "Extensions: Allows owner to mint. with increase totalSupply and fire the Transfer event",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.ChangeTokenBalance(ctx, s.token, s.owner.Address, one,
						func() (*ledger.Receipt, error) { return s.as(s.owner).Mint(ctx, one) },
					))

					t.Require(expect.Value(s.token.TotalSupply(ctx)).
						Equal(new(big.Int).Add(s.opts.InitialSupply, one)))

					t.Require(expect.Tx(s.as(s.owner).Mint(ctx, one)).
						Emit(s.token, "Transfer").WithArgs(ledger.ZeroAddress, s.owner.Address, one))
				},
			},
		},
	}
}

func (s *kip7Scenario) pausable() *harness.Suite {
	pause := func(t *harness.T) {
		t.Require(expect.Tx(s.as(s.owner).Pause(t.Context())).Succeed())
	}
	unpause := func(t *harness.T) {
		t.Require(expect.Tx(s.as(s.owner).Unpause(t.Context())).Succeed())
	}
	approveUser1 := func(t *harness.T) {
		t.Require(expect.Tx(s.as(s.owner).Approve(t.Context(), s.user1.Address, one)).Succeed())
	}
	transferChangesBalances := func(t *harness.T) {
		ctx := t.Context()
		t.Require(expect.ChangeTokenBalances(ctx, s.token,
			addresses(s.owner, s.user1), amounts(negOne, one),
			s.transferFn(ctx, s.owner, s.user1.Address, one),
		))
	}
	transferFromChangesBalances := func(t *harness.T) {
		ctx := t.Context()
		t.Require(expect.ChangeTokenBalances(ctx, s.token,
			addresses(s.owner, s.user1, s.user2), amounts(negOne, zero, one),
			s.transferFromFn(ctx, s.user1, s.owner.Address, s.user2.Address, one),
		))
	}

	return &harness.Suite{
		Name: "ERC20Pausable",
		Cases: []harness.Case{
			{
				Name: "Extensions: Prevents non-owner from paused",
				Run: func(t *harness.T) {
					t.Require(expect.Tx(s.as(s.user1).Pause(t.Context())).
						RevertedWith("Ownable: caller is not the owner"))
				},
			},
			{
				Name: "Extensions: Prevents non-owner from unpaused",
				Run: func(t *harness.T) {
					pause(t)
					t.Require(expect.Tx(s.as(s.user1).Unpause(t.Context())).
						RevertedWith("Ownable: caller is not the owner"))
				},
			},
			{
				Name: "Extensions: Prevents unpause when unpause state",
				Run: func(t *harness.T) {
					t.Require(expect.Tx(s.as(s.owner).Unpause(t.Context())).
						RevertedWith("Pausable: not paused"))
				},
			},
			{
				Name: "Extensions: Prevents pause when pause state",
				Run: func(t *harness.T) {
					pause(t)
					t.Require(expect.Tx(s.as(s.owner).Pause(t.Context())).
						RevertedWith("Pausable: paused"))
				},
			},
			{
				Name: "Extensions: Change pause state after pause. and fire the Paused events",
				Run: func(t *harness.T) {
					t.Require(expect.Tx(s.as(s.owner).Pause(t.Context())).
						Emit(s.token, "Paused").WithArgs(s.owner.Address))
				},
			},
			{
				Name: "Extensions: Change pause status after unpause. and fire the Unpaused event",
				Run: func(t *harness.T) {
					pause(t)
					t.Require(expect.Tx(s.as(s.owner).Unpause(t.Context())).
						Emit(s.token, "Unpaused").WithArgs(s.owner.Address))
				},
			},
			{
				Name: "Extensions: Allows transfer when unpaused",
				Run:  transferChangesBalances,
			},
			{
				Name: "Extensions: Allows transferFrom when unpaused",
				Run: func(t *harness.T) {
					approveUser1(t)
					transferFromChangesBalances(t)
				},
			},
			{
				Name: "Extensions: Prevents transfer when paused",
				Run: func(t *harness.T) {
					pause(t)
					t.Require(expect.Tx(s.as(s.owner).Transfer(t.Context(), s.user1.Address, one)).
						RevertedWith("Pausable: token transfer while paused"))
				},
			},
			{
				Name: "Extensions: Prevents transferFrom when paused",
				Run: func(t *harness.T) {
					pause(t)
					approveUser1(t)
					t.Require(expect.Tx(s.as(s.user1).TransferFrom(t.Context(), s.owner.Address, s.user2.Address, one)).
						RevertedWith("Pausable: token transfer while paused"))
				},
			},
			{
				Name: "Extensions: Allows transfer when paused and then unpaused",
				Run: func(t *harness.T) {
					pause(t)
					unpause(t)
					transferChangesBalances(t)
				},
			},
			{
				Name: "Extensions: Allows transferFrom when paused and then unpaused",
				Run: func(t *harness.T) {
					pause(t)
					unpause(t)
					approveUser1(t)
					transferFromChangesBalances(t)
				},
			},
			{
				Name: "Extensions: Prevents mint when paused",
				Run: func(t *harness.T) {
					pause(t)
					t.Require(expect.Tx(s.as(s.owner).Mint(t.Context(), one)).
						RevertedWith("Pausable: token transfer while paused"))
				},
			},
			{
				Name: "Extensions: Prevents burn when paused",
				Run: func(t *harness.T) {
					pause(t)
					t.Require(expect.Tx(s.as(s.owner).Burn(t.Context(), one)).
						RevertedWith("Pausable: token transfer while paused"))
				},
			},
			{
				Name: "Extensions: Allows mint when unpaused",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.ChangeTokenBalance(ctx, s.token, s.owner.Address, one,
						func() (*ledger.Receipt, error) { return s.as(s.owner).Mint(ctx, one) },
					))
				},
			},
			{
				Name: "Extensions: Allows burn when unpaused",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.ChangeTokenBalance(ctx, s.token, s.owner.Address, negOne,
						func() (*ledger.Receipt, error) { return s.as(s.owner).Burn(ctx, one) },
					))
				},
			},
		},
	}
}

func (s *kip7Scenario) freezable() *harness.Suite {
	freeze := func(t *harness.T, account *ledger.Account) {
		t.Require(expect.Tx(s.as(s.owner).Freeze(t.Context(), account.Address)).Succeed())
	}
	approveUser1 := func(t *harness.T) {
		t.Require(expect.Tx(s.as(s.owner).Approve(t.Context(), s.user1.Address, one)).Succeed())
	}
	transferFromReverts := func(t *harness.T, reason string) {
		t.Require(expect.Tx(s.as(s.user1).TransferFrom(t.Context(), s.owner.Address, s.user2.Address, one)).
			RevertedWith(reason))
	}

	return &harness.Suite{
		Name: "ERC20Freezable",
		Cases: []harness.Case{
			{
				Name: "Extensions: Prevents non-owner from freezed",
				Run: func(t *harness.T) {
					t.Require(expect.Tx(s.as(s.user1).Freeze(t.Context(), s.user2.Address)).
						RevertedWith("Ownable: caller is not the owner"))
				},
			},
			{
				Name: "Extensions: Prevents non-owner from unfreezed",
				Run: func(t *harness.T) {
					freeze(t, s.user1)
					t.Require(expect.Tx(s.as(s.user1).Unfreeze(t.Context(), s.user1.Address)).
						RevertedWith("Ownable: caller is not the owner"))
				},
			},
			{
				Name: "Extensions: Change freeze state after freezed",
				Run: func(t *harness.T) {
					freeze(t, s.user1)
					t.Require(expect.Value(s.token.IsFreezed(t.Context(), s.user1.Address)).True())
				},
			},
			{
				Name: "Extensions: Change freeze status after unfreezed",
				Run: func(t *harness.T) {
					ctx := t.Context()
					freeze(t, s.user1)
					t.Require(expect.Tx(s.as(s.owner).Unfreeze(ctx, s.user1.Address)).Succeed())
					t.Require(expect.Value(s.token.IsFreezed(ctx, s.user1.Address)).False())
				},
			},
			{
				Name: "Extensions: Allows transfer when sender, receiver unfreezed",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.ChangeTokenBalances(ctx, s.token,
						addresses(s.owner, s.user1), amounts(negOne, one),
						s.transferFn(ctx, s.owner, s.user1.Address, one),
					))
				},
			},
			{
				Name: "Extensions: Allows transferFrom when sender, spender, receiver unfreezed",
				Run: func(t *harness.T) {
					ctx := t.Context()
					approveUser1(t)
					t.Require(expect.ChangeTokenBalances(ctx, s.token,
						addresses(s.owner, s.user1, s.user2), amounts(negOne, zero, one),
						s.transferFromFn(ctx, s.user1, s.owner.Address, s.user2.Address, one),
					))
				},
			},
			{
				Name: "Extensions: Prevents transfer when sender freezed",
				Run: func(t *harness.T) {
					freeze(t, s.owner)
					t.Require(expect.Tx(s.as(s.owner).Transfer(t.Context(), s.user1.Address, one)).
						RevertedWith("Freezable: from freezed"))
				},
			},
			{
				Name: "Extensions: Prevents transfer when receiver freezed",
				Run: func(t *harness.T) {
					freeze(t, s.user1)
					t.Require(expect.Tx(s.as(s.owner).Transfer(t.Context(), s.user1.Address, one)).
						RevertedWith("Freezable: to freezed"))
				},
			},
			{
				Name: "Extensions: Prevents transferFrom when sender freezed",
				Run: func(t *harness.T) {
					freeze(t, s.owner)
					approveUser1(t)
					transferFromReverts(t, "Freezable: from freezed")
				},
			},
			{
				Name: "Extensions: Prevents transferFrom when spender freezed",
				Run: func(t *harness.T) {
					freeze(t, s.user1)
					approveUser1(t)
					transferFromReverts(t, "Freezable: sender freezed")
				},
			},
			{
				Name: "Extensions: Prevents transferFrom when receiver freezed",
				Run: func(t *harness.T) {
					freeze(t, s.user2)
					approveUser1(t)
					transferFromReverts(t, "Freezable: to freezed")
				},
			},
			{
				Name: "Extensions: Prevents mint when to freezed",
				Run: func(t *harness.T) {
					freeze(t, s.owner)
					t.Require(expect.Tx(s.as(s.owner).Mint(t.Context(), one)).
						RevertedWith("Freezable: to freezed"))
				},
			},
			{
				Name: "Extensions: Prevents burn when from freezed",
				Run: func(t *harness.T) {
					freeze(t, s.owner)
					t.Require(expect.Tx(s.as(s.owner).Burn(t.Context(), one)).
						RevertedWith("Freezable: from freezed"))
				},
			},
		},
	}
}

// useTimes reads fresh lock reasons and the reference times of the
// latest block.
func (s *kip7Scenario) useTimes(t *harness.T) {
	var err error
	s.reason, err = units.RandomBytes32()
	t.Require(err)
	s.otherReason, err = units.RandomBytes32()
	t.Require(err)

	s.now, err = t.Env().Clock.Latest(t.Context())
	t.Require(err)

	s.beforeYear = before(s.now, clock.Years(1))
	s.beforeHour = before(s.now, clock.Hours(1))
	s.afterHour = s.now + clock.Hours(1)
	s.afterYear = s.now + clock.Years(1)
}

// before returns now-d, stopping at the epoch.
func before(now, d uint64) uint64 {
	if d > now {
		return 0
	}
	return now - d
}
