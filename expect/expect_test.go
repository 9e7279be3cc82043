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

package expect

import (
	"context"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ooeunoo/tokenspec/ledger"
)

type lock struct {
	Amount  *big.Int
	Release uint64
	Claimed bool
	hidden  int
}

func TestEqual(t *testing.T) {
	t.Parallel()

	a := ledger.DeriveAccounts("expect", 1)[0].Address

	tests := []struct {
		name string
		got  interface{}
		want interface{}
		ok   bool
	}{
		{"big and int", big.NewInt(5), 5, true},
		{"uint64 and big", uint64(5), big.NewInt(5), true},
		{"different numbers", big.NewInt(5), 6, false},
		{"zero big", new(big.Int), 0, true},
		{"negative", big.NewInt(-1), -1, true},
		{"strings", "KIP7", "KIP7", true},
		{"string and number", "5", 5, false},
		{"address", a, a, true},
		{"address and hex", a, a.Hex(), true},
		{"bools", true, false, false},
		{"bytes32", [32]byte{1}, ledger.Hash{1}, true},
		{
			"structs by exported fields",
			lock{Amount: big.NewInt(1), Release: 10, hidden: 1},
			lock{Amount: big.NewInt(1), Release: 10, hidden: 2},
			true,
		},
		{
			"struct field mismatch",
			lock{Amount: big.NewInt(1), Release: 10},
			lock{Amount: big.NewInt(1), Release: 11},
			false,
		},
		{"nil and nil", nil, nil, true},
		{"nil big and zero", (*big.Int)(nil), 0, false},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			err := Equal(test.got, test.want)
			if test.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrAssertion)
			}
		})
	}
}

func TestEqualMessage(t *testing.T) {
	t.Parallel()

	err := Equal(big.NewInt(1), 2)
	require.Error(t, err)
	assert.Equal(t, "expected 1 to equal 2", err.Error())
}

func TestValue(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Value(big.NewInt(3), nil).Equal(3))
	assert.Error(t, Value(big.NewInt(3), nil).Equal(4))
	assert.NoError(t, Value(true, nil).True())
	assert.NoError(t, Value(false, nil).False())

	callErr := errors.New("boom")
	assert.ErrorIs(t, Value(nil, callErr).Equal(3), callErr)

	assert.NoError(t, Value(nil, ledger.Revert("nope")).RevertedWith("nope"))
}

func TestRevertedWith(t *testing.T) {
	t.Parallel()

	receipt := &ledger.Receipt{}

	assert.NoError(t, Tx(nil, ledger.Revert("ERC20: transfer to the zero address")).
		RevertedWith("ERC20: transfer to the zero address"))

	err := Tx(receipt, nil).RevertedWith("reason")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "didn't revert")

	err = Tx(nil, ledger.Revert("other")).RevertedWith("reason")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `other reason was found: "other"`)

	err = Tx(nil, ledger.ErrNonceMismatch).RevertedWith("reason")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "other exception was thrown")

	assert.NoError(t, Tx(nil, ledger.Revert("x")).Reverted())
	assert.Error(t, Tx(receipt, nil).Reverted())
	assert.NoError(t, Tx(receipt, nil).Succeed())
	assert.Error(t, Tx(nil, ledger.Revert("x")).Succeed())
}

type contract ledger.Address

func (c contract) Address() ledger.Address {
	return ledger.Address(c)
}

func TestEmit(t *testing.T) {
	t.Parallel()

	accounts := ledger.DeriveAccounts("emit", 3)
	token := contract(accounts[0].Address)
	other := contract(accounts[1].Address)
	user := accounts[2].Address

	receipt := &ledger.Receipt{
		Logs: []*ledger.Log{
			{Address: token.Address(), Event: "Transfer", Args: []interface{}{user, user, big.NewInt(1)}},
			{Address: token.Address(), Event: "Transfer", Args: []interface{}{user, ledger.ZeroAddress, big.NewInt(2)}},
			{Address: other.Address(), Event: "Approval", Args: []interface{}{user, user, big.NewInt(3)}},
		},
	}

	tx := Tx(receipt, nil)

	assert.NoError(t, tx.Emit(token, "Transfer").Err())
	assert.Len(t, tx.Emit(token, "Transfer").Logs(), 2)
	assert.NoError(t, tx.Emit(token, "Transfer").WithArgs(user, ledger.ZeroAddress, 2))
	assert.NoError(t, tx.Emit(other, "Approval").WithArgs(user, user, uint64(3)))

	err := tx.Emit(token, "Transfer").WithArgs(user, user, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected arguments")

	assert.Error(t, tx.Emit(token, "Transfer").WithArgs(user))
	assert.Error(t, tx.Emit(token, "Approval").Err())
	assert.Error(t, tx.Emit(other, "Approval").WithArgs(user, user, 4))

	failed := Tx(nil, ledger.Revert("nope")).Emit(token, "Transfer")
	assert.ErrorIs(t, failed.Err(), ErrAssertion)
	assert.ErrorIs(t, failed.WithArgs(), ErrAssertion)
}

type fakeBalances map[ledger.Address]*big.Int

func (b fakeBalances) BalanceOf(_ context.Context, account ledger.Address) (*big.Int, error) {
	if balance, ok := b[account]; ok {
		return new(big.Int).Set(balance), nil
	}
	return new(big.Int), nil
}

func TestChangeTokenBalances(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	accounts := ledger.DeriveAccounts("balances", 3)
	owner, user1, user2 := accounts[0].Address, accounts[1].Address, accounts[2].Address

	token := fakeBalances{owner: big.NewInt(10)}
	transfer := func(from, to ledger.Address, n int64) TxFunc {
		return func() (*ledger.Receipt, error) {
			token[from] = new(big.Int).Sub(token[from], big.NewInt(n))
			if token[to] == nil {
				token[to] = new(big.Int)
			}
			token[to] = new(big.Int).Add(token[to], big.NewInt(n))
			return &ledger.Receipt{}, nil
		}
	}

	err := ChangeTokenBalances(
		ctx,
		token,
		[]ledger.Address{owner, user1, user2},
		[]*big.Int{big.NewInt(-1), big.NewInt(1), big.NewInt(0)},
		transfer(owner, user1, 1),
	)
	assert.NoError(t, err)

	assert.NoError(t, ChangeTokenBalance(ctx, token, user2, big.NewInt(2), transfer(owner, user2, 2)))

	err = ChangeTokenBalance(ctx, token, user2, big.NewInt(2), transfer(owner, user2, 3))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "it has changed by 3")

	err = ChangeTokenBalance(ctx, token, user2, big.NewInt(1), func() (*ledger.Receipt, error) {
		return nil, ledger.Revert("ERC20: transfer amount exceeds balance")
	})
	assert.ErrorIs(t, err, ErrAssertion)

	err = ChangeTokenBalances(ctx, token, []ledger.Address{owner}, nil, transfer(owner, user1, 1))
	assert.Error(t, err)
}
