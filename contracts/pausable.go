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

const pausedKey = "pausable/paused"

var (
	Paused = Event{
		Name:   "Paused",
		Inputs: []EventArg{{Name: "account", Type: "address"}},
	}
	Unpaused = Event{
		Name:   "Unpaused",
		Inputs: []EventArg{{Name: "account", Type: "address"}},
	}
)

func IsPaused(c *ledger.Context) bool {
	return c.Bool(pausedKey)
}

// WhenNotPaused reverts while the contract is paused.
func WhenNotPaused(c *ledger.Context) error {
	if IsPaused(c) {
		return ledger.Revert("Pausable: paused")
	}
	return nil
}

// WhenPaused reverts unless the contract is paused.
func WhenPaused(c *ledger.Context) error {
	if !IsPaused(c) {
		return ledger.Revert("Pausable: not paused")
	}
	return nil
}

func Pause(c *ledger.Context) error {
	if err := WhenNotPaused(c); err != nil {
		return err
	}
	c.SetBool(pausedKey, true)
	c.Emit(Paused.Name, c.Sender)
	return nil
}

func Unpause(c *ledger.Context) error {
	if err := WhenPaused(c); err != nil {
		return err
	}
	c.SetBool(pausedKey, false)
	c.Emit(Unpaused.Name, c.Sender)
	return nil
}

// Pausable adds paused, pause and unpause to d. guard authorizes the
// callers of pause and unpause; nil allows anyone.
func Pausable(d *Definition, guard func(c *ledger.Context) error) *Definition {
	guarded := func(action func(c *ledger.Context) error) MethodFunc {
		return func(c *ledger.Context, _ ledger.Args) (interface{}, error) {
			if guard != nil {
				if err := guard(c); err != nil {
					return nil, err
				}
			}
			return nil, action(c)
		}
	}

	return d.
		Method(
			Method{
				Name:       "paused",
				Outputs:    []Arg{{Type: "bool"}},
				Mutability: View,
				Fn: func(c *ledger.Context, _ ledger.Args) (interface{}, error) {
					return IsPaused(c), nil
				},
			},
			Method{Name: "pause", Fn: guarded(Pause)},
			Method{Name: "unpause", Fn: guarded(Unpause)},
		).
		Event(Paused, Unpaused)
}
