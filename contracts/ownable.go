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
	"github.com/ooeunoo/tokenspec/ledger"
)

const ownerKey = "ownable/owner"

var OwnershipTransferred = Event{
	Name: "OwnershipTransferred",
	Inputs: []EventArg{
		{Name: "previousOwner", Type: "address", Indexed: true},
		{Name: "newOwner", Type: "address", Indexed: true},
	},
}

// InitOwnable makes the deployer the owner.
func InitOwnable(c *ledger.Context) {
	setOwner(c, c.Sender)
}

func Owner(c *ledger.Context) ledger.Address {
	return c.Address(ownerKey)
}

// OnlyOwner reverts unless the caller is the owner.
func OnlyOwner(c *ledger.Context) error {
	if c.Sender != Owner(c) {
		return ledger.Revert("Ownable: caller is not the owner")
	}
	return nil
}

func setOwner(c *ledger.Context, owner ledger.Address) {
	previous := Owner(c)
	c.SetAddress(ownerKey, owner)
	c.Emit(OwnershipTransferred.Name, previous, owner)
}

// Ownable adds owner, transferOwnership and renounceOwnership to d.
func Ownable(d *Definition) *Definition {
	return d.
		Method(
			Method{
				Name:       "owner",
				Outputs:    []Arg{{Type: "address"}},
				Mutability: View,
				Fn: func(c *ledger.Context, _ ledger.Args) (interface{}, error) {
					return Owner(c), nil
				},
			},
			Method{
				Name:   "transferOwnership",
				Inputs: []Arg{{Name: "newOwner", Type: "address"}},
				Fn: func(c *ledger.Context, args ledger.Args) (interface{}, error) {
					if err := OnlyOwner(c); err != nil {
						return nil, err
					}
					newOwner, err := args.Address(0)
					if err != nil {
						return nil, err
					}
					if newOwner.IsZero() {
						return nil, ledger.Revert("Ownable: new owner is the zero address")
					}
					setOwner(c, newOwner)
					return nil, nil
				},
			},
			Method{
				Name: "renounceOwnership",
				Fn: func(c *ledger.Context, _ ledger.Args) (interface{}, error) {
					if err := OnlyOwner(c); err != nil {
						return nil, err
					}
					setOwner(c, ledger.ZeroAddress)
					return nil, nil
				},
			},
		).
		Event(OwnershipTransferred)
}
