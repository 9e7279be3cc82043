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

package contracts

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ooeunoo/tokenspec/ledger"
)

func greeter() *Definition {
	d := NewDefinition("Greeter").
		Constructor(
			[]Arg{{Name: "greeting", Type: "string"}},
			func(c *ledger.Context, args ledger.Args) error {
				greeting, err := args.String(0)
				if err != nil {
					return err
				}
				c.SetString("greeting", greeting)
				InitOwnable(c)
				return nil
			},
		).
		Method(
			Method{
				Name:       "greet",
				Outputs:    []Arg{{Type: "string"}},
				Mutability: View,
				Fn: func(c *ledger.Context, _ ledger.Args) (interface{}, error) {
					return c.String("greeting"), nil
				},
			},
			Method{
				Name:   "setGreeting",
				Inputs: []Arg{{Name: "greeting", Type: "string"}},
				Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
					if err := WhenNotPaused(c); err != nil {
						return nil, err
					}
					greeting, err := args.String(0)
					if err != nil {
						return nil, err
					}
					c.SetString("greeting", greeting)
					return nil, nil
				},
			},
			Method{
				Name:   "setGreeting",
				Inputs: []Arg{{Name: "greeting", Type: "string"}, {Name: "suffix", Type: "string"}},
				Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
					greeting, err := args.String(0)
					if err != nil {
						return nil, err
					}
					suffix, err := args.String(1)
					if err != nil {
						return nil, err
					}
					c.SetString("greeting", greeting+suffix)
					return nil, nil
				},
			},
		)
	Ownable(d)
	Pausable(d, OnlyOwner)
	return d
}

func deployGreeter(t *testing.T) (*ledger.Ledger, *Bound) {
	l := ledger.New(ledger.WithGenesisTime(1_600_000_000), ledger.WithAccounts(3, "contracts"))
	bound, receipt, err := Deploy(context.Background(), l, l.Accounts()[0], greeter(), "hello")
	require.NoError(t, err)
	require.Len(t, receipt.Logs, 1)
	assert.Equal(t, "OwnershipTransferred", receipt.Logs[0].Event)
	return l, bound
}

func TestSelectors(t *testing.T) {
	t.Parallel()

	transfer := Method{
		Name:   "transfer",
		Inputs: []Arg{{Name: "to", Type: "address"}, {Name: "amount", Type: "uint256"}},
	}
	assert.Equal(t, "transfer(address,uint256)", transfer.Signature())
	selector := transfer.Selector()
	assert.Equal(t, "a9059cbb", hex.EncodeToString(selector[:]))

	event := Event{
		Name: "Transfer",
		Inputs: []EventArg{
			{Name: "from", Type: "address", Indexed: true},
			{Name: "to", Type: "address", Indexed: true},
			{Name: "value", Type: "uint256"},
		},
	}
	assert.Equal(
		t,
		"0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef",
		event.Topic().Hex(),
	)
}

func TestDefinitionInvoke(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, bound := deployGreeter(t)

	greeting, err := bound.CallString(ctx, "greet")
	require.NoError(t, err)
	assert.Equal(t, "hello", greeting)

	_, err = bound.Transact(ctx, "setGreeting", "hi")
	require.NoError(t, err)
	greeting, err = bound.CallString(ctx, "greet")
	require.NoError(t, err)
	assert.Equal(t, "hi", greeting)

	_, err = bound.Transact(ctx, "setGreeting", "hi", "!")
	require.NoError(t, err)
	_, err = bound.Transact(ctx, "setGreeting(string)", "hey")
	require.NoError(t, err)
	greeting, err = bound.CallString(ctx, "greet")
	require.NoError(t, err)
	assert.Equal(t, "hey", greeting)

	_, err = bound.Transact(ctx, "missing")
	assert.ErrorIs(t, err, ledger.ErrUnknownMethod)

	_, err = bound.Transact(ctx, "setGreeting", "a", "b", "c")
	assert.ErrorIs(t, err, ledger.ErrUnknownMethod)

	_, err = bound.Call(ctx, "greet", "unexpected")
	assert.ErrorIs(t, err, ledger.ErrInvalidArgument)

	_, err = bound.CallBool(ctx, "greet")
	assert.Error(t, err)
}

func TestDefinitionRegistration(t *testing.T) {
	t.Parallel()

	d := greeter()

	m, ok := d.Lookup("greet")
	require.True(t, ok)
	assert.Equal(t, View, m.Mutability)

	_, ok = d.Lookup("setGreeting")
	assert.False(t, ok)

	m, ok = d.Lookup("setGreeting(string,string)")
	require.True(t, ok)
	assert.Equal(t, Nonpayable, m.Mutability)

	assert.Panics(t, func() {
		d.Method(Method{Name: "greet"})
	})
	assert.Panics(t, func() {
		d.Event(Paused)
	})
}

func TestABI(t *testing.T) {
	t.Parallel()

	entries := greeter().ABI()

	require.NotEmpty(t, entries)
	assert.Equal(t, "constructor", entries[0].Type)
	assert.Equal(t, []ABIParam{{Name: "greeting", Type: "string", InternalType: "string"}}, entries[0].Inputs)

	var names []string
	for _, entry := range entries[1:] {
		names = append(names, entry.Type+":"+entry.Name)
	}
	assert.Equal(
		t,
		[]string{
			"event:OwnershipTransferred",
			"event:Paused",
			"event:Unpaused",
			"function:greet",
			"function:owner",
			"function:pause",
			"function:paused",
			"function:renounceOwnership",
			"function:setGreeting",
			"function:setGreeting",
			"function:transferOwnership",
			"function:unpause",
		},
		names,
	)

	encoded, err := json.Marshal(entries[1])
	require.NoError(t, err)
	assert.JSONEq(
		t,
		`{
			"type": "event",
			"name": "OwnershipTransferred",
			"anonymous": false,
			"inputs": [
				{"name": "previousOwner", "type": "address", "internalType": "address", "indexed": true},
				{"name": "newOwner", "type": "address", "internalType": "address", "indexed": true}
			]
		}`,
		string(encoded),
	)
}

func TestOwnable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l, bound := deployGreeter(t)
	owner, user := l.Accounts()[0], l.Accounts()[1]

	current, err := bound.CallAddress(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, owner.Address, current)

	_, err = bound.WithSigner(user).Transact(ctx, "transferOwnership", user.Address)
	reason, _ := ledger.RevertReason(err)
	assert.Equal(t, "Ownable: caller is not the owner", reason)

	_, err = bound.Transact(ctx, "transferOwnership", ledger.ZeroAddress)
	reason, _ = ledger.RevertReason(err)
	assert.Equal(t, "Ownable: new owner is the zero address", reason)

	receipt, err := bound.Transact(ctx, "transferOwnership", user.Address)
	require.NoError(t, err)
	require.Len(t, receipt.Logs, 1)
	assert.Equal(t, []interface{}{owner.Address, user.Address}, receipt.Logs[0].Args)

	_, err = bound.WithSigner(user).Transact(ctx, "renounceOwnership")
	require.NoError(t, err)
	current, err = bound.CallAddress(ctx, "owner")
	require.NoError(t, err)
	assert.True(t, current.IsZero())
}

func TestPausable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l, bound := deployGreeter(t)
	owner, user := l.Accounts()[0], l.Accounts()[1]

	_, err := bound.Transact(ctx, "unpause")
	reason, _ := ledger.RevertReason(err)
	assert.Equal(t, "Pausable: not paused", reason)

	_, err = bound.WithSigner(user).Transact(ctx, "pause")
	reason, _ = ledger.RevertReason(err)
	assert.Equal(t, "Ownable: caller is not the owner", reason)

	receipt, err := bound.Transact(ctx, "pause")
	require.NoError(t, err)
	require.Len(t, receipt.Logs, 1)
	assert.Equal(t, "Paused", receipt.Logs[0].Event)
	assert.Equal(t, []interface{}{owner.Address}, receipt.Logs[0].Args)

	paused, err := bound.CallBool(ctx, "paused")
	require.NoError(t, err)
	assert.True(t, paused)

	_, err = bound.Transact(ctx, "pause")
	reason, _ = ledger.RevertReason(err)
	assert.Equal(t, "Pausable: paused", reason)

	_, err = bound.Transact(ctx, "setGreeting", "blocked")
	reason, _ = ledger.RevertReason(err)
	assert.Equal(t, "Pausable: paused", reason)

	receipt, err = bound.Transact(ctx, "unpause")
	require.NoError(t, err)
	assert.Equal(t, "Unpaused", receipt.Logs[0].Event)
}

func TestBoundWithoutSigner(t *testing.T) {
	t.Parallel()

	l, bound := deployGreeter(t)
	unsigned := Bind(l, bound.Address(), nil)

	_, err := unsigned.Transact(context.Background(), "pause")
	assert.ErrorIs(t, err, ledger.ErrNoSigner)

	greeting, err := unsigned.CallString(context.Background(), "greet")
	require.NoError(t, err)
	assert.Equal(t, "hello", greeting)

	_, _, err = Deploy(context.Background(), l, nil, greeter(), "x")
	assert.ErrorIs(t, err, ledger.ErrNoSigner)
}
