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
	"github.com/ooeunoo/tokenspec/contracts"
	"github.com/ooeunoo/tokenspec/ledger"
)

var (
	FreezedEvent = contracts.Event{
		Name:   "Freezed",
		Inputs: []contracts.EventArg{{Name: "account", Type: "address", Indexed: true}},
	}
	UnfreezedEvent = contracts.Event{
		Name:   "Unfreezed",
		Inputs: []contracts.EventArg{{Name: "account", Type: "address", Indexed: true}},
	}
)

func frozenKey(a ledger.Address) string {
	return "frozen/" + a.Hex()
}

func isFrozen(c *ledger.Context, a ledger.Address) bool {
	return c.Bool(frozenKey(a))
}

func setFrozen(frozen bool, event string) contracts.MethodFunc {
	return func(c *ledger.Context, args ledger.Args) (interface{}, error) {
		if err := contracts.OnlyOwner(c); err != nil {
			return nil, err
		}
		account, err := args.Address(0)
		if err != nil {
			return nil, err
		}
		c.SetBool(frozenKey(account), frozen)
		c.Emit(event, account)
		return nil, nil
	}
}

func freezable(d *contracts.Definition) {
	d.
		Method(
			contracts.Method{
				Name:       "isFreezed",
				Inputs:     []contracts.Arg{{Name: "account", Type: "address"}},
				Outputs:    []contracts.Arg{{Type: "bool"}},
				Mutability: contracts.View,
				Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
					account, err := args.Address(0)
					if err != nil {
						return nil, err
					}
					return isFrozen(c, account), nil
				},
			},
			contracts.Method{
				Name:   "freeze",
				Inputs: []contracts.Arg{{Name: "account", Type: "address"}},
				Fn:     setFrozen(true, FreezedEvent.Name),
			},
			contracts.Method{
				Name:   "unfreeze",
				Inputs: []contracts.Arg{{Name: "account", Type: "address"}},
				Fn:     setFrozen(false, UnfreezedEvent.Name),
			},
		).
		Event(FreezedEvent, UnfreezedEvent)
}
