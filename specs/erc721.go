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

	"github.com/ooeunoo/tokenspec/contracts/erc721"
	"github.com/ooeunoo/tokenspec/expect"
	"github.com/ooeunoo/tokenspec/harness"
	"github.com/ooeunoo/tokenspec/ledger"
)

type ERC721Options struct {
	// Contract is the registered contract deployed before every case.
	Contract string
	Name     string
	Symbol   string
	BaseURI  string
}

func (o ERC721Options) withDefaults() ERC721Options {
	if o.Contract == "" {
		o.Contract = erc721.ContractName
	}
	if o.Name == "" {
		o.Name = "ERC721"
	}
	if o.Symbol == "" {
		o.Symbol = "ERC721"
	}
	if o.BaseURI == "" {
		o.BaseURI = "https://token.example/"
	}
	return o
}

type erc721Scenario struct {
	players
	opts  ERC721Options
	token *erc721.Token
}

func (s *erc721Scenario) as(signer *ledger.Account) *erc721.Token {
	return s.token.Connect(signer)
}

func (s *erc721Scenario) mint(t *harness.T, to *ledger.Account, tokenID *big.Int) {
	t.Require(expect.Tx(s.as(s.owner).Mint(t.Context(), to.Address, tokenID)).Succeed())
}

// ERC721 returns the scenarios of an ERC721 token with metadata, burn,
// mint and pause extensions.
func ERC721(opts ERC721Options) *harness.Suite {
	s := &erc721Scenario{opts: opts.withDefaults()}

	return &harness.Suite{
		Name: "ERC721Mock",
		Setup: func(t *harness.T) {
			usePlayers(t, &s.players)
		},
		BeforeEach: func(t *harness.T) {
			env := t.Env()
			s.tag(env)

			bound, _, err := env.Deploy(t.Context(), s.owner, s.opts.Contract, s.opts.Name, s.opts.Symbol)
			t.Require(err)
			s.token = erc721.At(env.Ledger, bound.Address(), s.owner)
			env.NameTag(bound.Address(), "Contract")
		},
		Suites: []*harness.Suite{
			s.metadata(),
			s.standard(),
			s.approvals(),
			{
				Name: "ERC721 Extensions",
				Suites: []*harness.Suite{
					s.burnable(),
					s.pausable(),
				},
			},
		},
	}
}

func (s *erc721Scenario) metadata() *harness.Suite {
	return &harness.Suite{
		Name: "ERC721 Metadata",
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
				Name: "Optional: returns the token URI from the base URI",
				Run: func(t *harness.T) {
					ctx := t.Context()
					s.mint(t, s.user1, one)
					t.Require(expect.Value(s.token.TokenURI(ctx, one)).Equal(""))

					t.Require(expect.Tx(s.as(s.owner).SetBaseURI(ctx, s.opts.BaseURI)).Succeed())
					t.Require(expect.Value(s.token.TokenURI(ctx, one)).Equal(s.opts.BaseURI + "1"))
				},
			},
			{
				Name: "Optional: Prevents URI query for nonexistent token",
				Run: func(t *harness.T) {
					t.Require(expect.Value(s.token.TokenURI(t.Context(), one)).
						RevertedWith("ERC721Metadata: URI query for nonexistent token"))
				},
			},
			{
				Name: "Optional: Prevents non-owner from setting the base URI",
				Run: func(t *harness.T) {
					t.Require(expect.Tx(s.as(s.user1).SetBaseURI(t.Context(), s.opts.BaseURI)).
						RevertedWith("Ownable: caller is not the owner"))
				},
			},
			{
				Name: "Required: Supports the ERC165, ERC721 and metadata interfaces",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.Value(s.token.SupportsInterface(ctx, erc721.InterfaceERC165)).True())
					t.Require(expect.Value(s.token.SupportsInterface(ctx, erc721.InterfaceERC721)).True())
					t.Require(expect.Value(s.token.SupportsInterface(ctx, erc721.InterfaceERC721Metadata)).True())
					t.Require(expect.Value(s.token.SupportsInterface(ctx, [4]byte{0xff, 0xff, 0xff, 0xff})).False())
				},
			},
		},
	}
}

func (s *erc721Scenario) standard() *harness.Suite {
	return &harness.Suite{
		Name: "ERC721 Standard",
		Cases: []harness.Case{
			{
				Name: "Required: Allows owner to mint. and fire the Transfer event",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.Tx(s.as(s.owner).Mint(ctx, s.user1.Address, one)).
						Emit(s.token, "Transfer").WithArgs(ledger.ZeroAddress, s.user1.Address, one))
					t.Require(expect.Value(s.token.BalanceOf(ctx, s.user1.Address)).Equal(one))
					t.Require(expect.Value(s.token.OwnerOf(ctx, one)).Equal(s.user1.Address))
				},
			},
			{
				Name: "Required: Prevents non-owner to mint",
				Run: func(t *harness.T) {
					t.Require(expect.Tx(s.as(s.user1).Mint(t.Context(), s.user1.Address, one)).
						RevertedWith("Ownable: caller is not the owner"))
				},
			},
			{
				Name: "Required: Prevents minting an existing token",
				Run: func(t *harness.T) {
					s.mint(t, s.user1, one)
					t.Require(expect.Tx(s.as(s.owner).Mint(t.Context(), s.user2.Address, one)).
						RevertedWith("ERC721: token already minted"))
				},
			},
			{
				Name: "Required: Prevents minting to the zero address",
				Run: func(t *harness.T) {
					t.Require(expect.Tx(s.as(s.owner).Mint(t.Context(), ledger.ZeroAddress, one)).
						RevertedWith("ERC721: mint to the zero address"))
				},
			},
			{
				Name: "Required: Prevents balance query for the zero address",
				Run: func(t *harness.T) {
					t.Require(expect.Value(s.token.BalanceOf(t.Context(), ledger.ZeroAddress)).
						RevertedWith("ERC721: balance query for the zero address"))
				},
			},
			{
				Name: "Required: Prevents owner query for nonexistent token",
				Run: func(t *harness.T) {
					t.Require(expect.Value(s.token.OwnerOf(t.Context(), one)).
						RevertedWith("ERC721: owner query for nonexistent token"))
				},
			},
			{
				Name: "Required: Transfers ownership of a token, and MUST fire the Transfer event",
				Run: func(t *harness.T) {
					ctx := t.Context()
					s.mint(t, s.user1, one)
					t.Require(expect.Tx(s.as(s.user1).TransferFrom(ctx, s.user1.Address, s.user2.Address, one)).
						Emit(s.token, "Transfer").WithArgs(s.user1.Address, s.user2.Address, one))
					t.Require(expect.Value(s.token.OwnerOf(ctx, one)).Equal(s.user2.Address))
					t.Require(expect.Value(s.token.BalanceOf(ctx, s.user1.Address)).Equal(zero))
					t.Require(expect.Value(s.token.BalanceOf(ctx, s.user2.Address)).Equal(one))
				},
			},
			{
				Name: "Required: Safely transfers ownership of a token",
				Run: func(t *harness.T) {
					ctx := t.Context()
					s.mint(t, s.user1, one)
					s.mint(t, s.user1, two)
					t.Require(expect.Tx(s.as(s.user1).SafeTransferFrom(ctx, s.user1.Address, s.user2.Address, one)).
						Emit(s.token, "Transfer").WithArgs(s.user1.Address, s.user2.Address, one))
					t.Require(expect.Tx(s.as(s.user1).SafeTransferFromWithData(ctx, s.user1.Address, s.user3.Address, two, []byte{0x42})).
						Emit(s.token, "Transfer").WithArgs(s.user1.Address, s.user3.Address, two))
					t.Require(expect.Value(s.token.OwnerOf(ctx, two)).Equal(s.user3.Address))
				},
			},
			{
				Name: "Required: Prevents transfer by a non-owner non-approved caller",
				Run: func(t *harness.T) {
					s.mint(t, s.user1, one)
					t.Require(expect.Tx(s.as(s.user2).TransferFrom(t.Context(), s.user1.Address, s.user2.Address, one)).
						RevertedWith("ERC721: transfer caller is not owner nor approved"))
				},
			},
			{
				Name: "Required: Prevents transfer from an address that does not own the token",
				Run: func(t *harness.T) {
					s.mint(t, s.user1, one)
					t.Require(expect.Tx(s.as(s.user1).TransferFrom(t.Context(), s.user2.Address, s.user3.Address, one)).
						RevertedWith("ERC721: transfer of token that is not own"))
				},
			},
			{
				Name: "Required: Prevents transfer to the zero address",
				Run: func(t *harness.T) {
					s.mint(t, s.user1, one)
					t.Require(expect.Tx(s.as(s.user1).TransferFrom(t.Context(), s.user1.Address, ledger.ZeroAddress, one)).
						RevertedWith("ERC721: transfer to the zero address"))
				},
			},
		},
	}
}

func (s *erc721Scenario) approvals() *harness.Suite {
	return &harness.Suite{
		Name: "ERC721 Approvals",
		Cases: []harness.Case{
			{
				Name: "Required: Approves an address for a token, and MUST fire the Approval event",
				Run: func(t *harness.T) {
					ctx := t.Context()
					s.mint(t, s.user1, one)
					t.Require(expect.Tx(s.as(s.user1).Approve(ctx, s.user2.Address, one)).
						Emit(s.token, "Approval").WithArgs(s.user1.Address, s.user2.Address, one))
					t.Require(expect.Value(s.token.GetApproved(ctx, one)).Equal(s.user2.Address))
				},
			},
			{
				Name: "Required: Allows approved address to transfer and clears the approval",
				Run: func(t *harness.T) {
					ctx := t.Context()
					s.mint(t, s.user1, one)
					t.Require(expect.Tx(s.as(s.user1).Approve(ctx, s.user2.Address, one)).Succeed())
					t.Require(expect.Tx(s.as(s.user2).TransferFrom(ctx, s.user1.Address, s.user3.Address, one)).Succeed())
					t.Require(expect.Value(s.token.OwnerOf(ctx, one)).Equal(s.user3.Address))
					t.Require(expect.Value(s.token.GetApproved(ctx, one)).Equal(ledger.ZeroAddress))
				},
			},
			{
				Name: "Required: Prevents approval to current owner",
				Run: func(t *harness.T) {
					s.mint(t, s.user1, one)
					t.Require(expect.Tx(s.as(s.user1).Approve(t.Context(), s.user1.Address, one)).
						RevertedWith("ERC721: approval to current owner"))
				},
			},
			{
				Name: "Required: Prevents approval by a non-owner non-operator",
				Run: func(t *harness.T) {
					s.mint(t, s.user1, one)
					t.Require(expect.Tx(s.as(s.user2).Approve(t.Context(), s.user3.Address, one)).
						RevertedWith("ERC721: approve caller is not owner nor approved for all"))
				},
			},
			{
				Name: "Required: Prevents approved query for nonexistent token",
				Run: func(t *harness.T) {
					t.Require(expect.Value(s.token.GetApproved(t.Context(), one)).
						RevertedWith("ERC721: approved query for nonexistent token"))
				},
			},
			{
				Name: "Required: Enables an operator, and MUST fire the ApprovalForAll event",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.Tx(s.as(s.user1).SetApprovalForAll(ctx, s.user2.Address, true)).
						Emit(s.token, "ApprovalForAll").WithArgs(s.user1.Address, s.user2.Address, true))
					t.Require(expect.Value(s.token.IsApprovedForAll(ctx, s.user1.Address, s.user2.Address)).True())

					t.Require(expect.Tx(s.as(s.user1).SetApprovalForAll(ctx, s.user2.Address, false)).Succeed())
					t.Require(expect.Value(s.token.IsApprovedForAll(ctx, s.user1.Address, s.user2.Address)).False())
				},
			},
			{
				Name: "Required: Allows operator to approve and transfer",
				Run: func(t *harness.T) {
					ctx := t.Context()
					s.mint(t, s.user1, one)
					s.mint(t, s.user1, two)
					t.Require(expect.Tx(s.as(s.user1).SetApprovalForAll(ctx, s.user2.Address, true)).Succeed())
					t.Require(expect.Tx(s.as(s.user2).Approve(ctx, s.user3.Address, one)).Succeed())
					t.Require(expect.Tx(s.as(s.user2).TransferFrom(ctx, s.user1.Address, s.user2.Address, two)).Succeed())
					t.Require(expect.Value(s.token.GetApproved(ctx, one)).Equal(s.user3.Address))
					t.Require(expect.Value(s.token.OwnerOf(ctx, two)).Equal(s.user2.Address))
				},
			},
			{
				Name: "Required: Prevents approving the caller as operator",
				Run: func(t *harness.T) {
					t.Require(expect.Tx(s.as(s.user1).SetApprovalForAll(t.Context(), s.user1.Address, true)).
						RevertedWith("ERC721: approve to caller"))
				},
			},
		},
	}
}

func (s *erc721Scenario) burnable() *harness.Suite {
	return &harness.Suite{
		Name: "ERC721Burnable",
		Cases: []harness.Case{
			{
				Name: "Extensions: Allows owner of a token to burn. and fire the Transfer event",
				Run: func(t *harness.T) {
					ctx := t.Context()
					s.mint(t, s.user1, one)
					t.Require(expect.Tx(s.as(s.user1).Burn(ctx, one)).
						Emit(s.token, "Transfer").WithArgs(s.user1.Address, ledger.ZeroAddress, one))
					t.Require(expect.Value(s.token.BalanceOf(ctx, s.user1.Address)).Equal(zero))
					t.Require(expect.Value(s.token.OwnerOf(ctx, one)).
						RevertedWith("ERC721: owner query for nonexistent token"))
				},
			},
			{
				Name: "Extensions: Allows approved address to burn",
				Run: func(t *harness.T) {
					ctx := t.Context()
					s.mint(t, s.user1, one)
					t.Require(expect.Tx(s.as(s.user1).Approve(ctx, s.user2.Address, one)).Succeed())
					t.Require(expect.Tx(s.as(s.user2).Burn(ctx, one)).Succeed())
				},
			},
			{
				Name: "Extensions: Prevents non-owner non-approved from burn",
				Run: func(t *harness.T) {
					s.mint(t, s.user1, one)
					t.Require(expect.Tx(s.as(s.user2).Burn(t.Context(), one)).
						RevertedWith("ERC721Burnable: caller is not owner nor approved"))
				},
			},
		},
	}
}

func (s *erc721Scenario) pausable() *harness.Suite {
	pause := func(t *harness.T) {
		t.Require(expect.Tx(s.as(s.owner).Pause(t.Context())).Succeed())
	}

	return &harness.Suite{
		Name: "ERC721Pausable",
		BeforeEach: func(t *harness.T) {
			s.mint(t, s.user1, one)
		},
		Cases: []harness.Case{
			{
				Name: "Extensions: Prevents non-owner from paused",
				Run: func(t *harness.T) {
					t.Require(expect.Tx(s.as(s.user1).Pause(t.Context())).
						RevertedWith("Ownable: caller is not the owner"))
				},
			},
			{
				Name: "Extensions: Change pause state after pause. and fire the Paused events",
				Run: func(t *harness.T) {
					ctx := t.Context()
					t.Require(expect.Tx(s.as(s.owner).Pause(ctx)).
						Emit(s.token, "Paused").WithArgs(s.owner.Address))
					t.Require(expect.Value(s.token.Paused(ctx)).True())
				},
			},
			{
				Name: "Extensions: Prevents transfer when paused",
				Run: func(t *harness.T) {
					pause(t)
					t.Require(expect.Tx(s.as(s.user1).TransferFrom(t.Context(), s.user1.Address, s.user2.Address, one)).
						RevertedWith("ERC721Pausable: token transfer while paused"))
				},
			},
			{
				Name: "Extensions: Prevents mint when paused",
				Run: func(t *harness.T) {
					pause(t)
					t.Require(expect.Tx(s.as(s.owner).Mint(t.Context(), s.user1.Address, two)).
						RevertedWith("ERC721Pausable: token transfer while paused"))
				},
			},
			{
				Name: "Extensions: Prevents burn when paused",
				Run: func(t *harness.T) {
					pause(t)
					t.Require(expect.Tx(s.as(s.user1).Burn(t.Context(), one)).
						RevertedWith("ERC721Pausable: token transfer while paused"))
				},
			},
			{
				Name: "Extensions: Allows transfer when paused and then unpaused",
				Run: func(t *harness.T) {
					ctx := t.Context()
					pause(t)
					t.Require(expect.Tx(s.as(s.owner).Unpause(ctx)).
						Emit(s.token, "Unpaused").WithArgs(s.owner.Address))
					t.Require(expect.Tx(s.as(s.user1).TransferFrom(ctx, s.user1.Address, s.user2.Address, one)).Succeed())
				},
			},
		},
	}
}
