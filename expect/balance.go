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

	"github.com/pkg/errors"

	"github.com/ooeunoo/tokenspec/ledger"
)

// BalanceReader is a token whose balances can be read.
type BalanceReader interface {
	BalanceOf(ctx context.Context, account ledger.Address) (*big.Int, error)
}

// TxFunc sends the transaction whose balance effect is measured.
type TxFunc func() (*ledger.Receipt, error)

// ChangeTokenBalance expects fn to change the balance of account by delta.
func ChangeTokenBalance(ctx context.Context, token BalanceReader, account ledger.Address, delta *big.Int, fn TxFunc) error {
	return ChangeTokenBalances(ctx, token, []ledger.Address{account}, []*big.Int{delta}, fn)
}

// ChangeTokenBalances expects fn to change the balance of each account by
// the delta at the same index. fn must succeed.
func ChangeTokenBalances(ctx context.Context, token BalanceReader, accounts []ledger.Address, deltas []*big.Int, fn TxFunc) error {
	if len(accounts) != len(deltas) {
		return errors.Errorf("%d accounts but %d deltas", len(accounts), len(deltas))
	}

	before, err := balances(ctx, token, accounts)
	if err != nil {
		return err
	}

	if _, err := fn(); err != nil {
		return failf("expected transaction to change balances, but it failed: %v", err)
	}

	after, err := balances(ctx, token, accounts)
	if err != nil {
		return err
	}

	for i, account := range accounts {
		changed := new(big.Int).Sub(after[i], before[i])
		if changed.Cmp(deltas[i]) != 0 {
			return failf(
				"expected %s to change balance by %s, but it has changed by %s",
				account,
				deltas[i],
				changed,
			)
		}
	}
	return nil
}

func balances(ctx context.Context, token BalanceReader, accounts []ledger.Address) ([]*big.Int, error) {
	out := make([]*big.Int, 0, len(accounts))
	for _, account := range accounts {
		balance, err := token.BalanceOf(ctx, account)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read balance of %s", account)
		}
		out = append(out, balance)
	}
	return out, nil
}
