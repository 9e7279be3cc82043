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

package ledger

import (
	"math/big"

	iradix "github.com/hashicorp/go-immutable-radix"
)

// Code is the executable logic of a contract.
type Code interface {
	Name() string
	Construct(c *Context, args Args) error
	Invoke(c *Context, method string, args Args) (interface{}, error)
}

// Context is the environment a contract executes in: the caller,
// the contract's own address, the block it runs in and the contract's
// private storage.
type Context struct {
	Sender Address
	Self   Address
	Block  Header

	txn  *iradix.Txn
	logs []*Log
}

func newContext(sender, self Address, header Header, txn *iradix.Txn) *Context {
	return &Context{
		Sender: sender,
		Self:   self,
		Block:  header,
		txn:    txn,
	}
}

func (c *Context) key(key string) []byte {
	return storageKey(c.Self, key)
}

// Load reads a storage slot of the executing contract.
func (c *Context) Load(key string) (interface{}, bool) {
	return c.txn.Get(c.key(key))
}

// Store writes a storage slot. Stored values must not be mutated afterwards.
func (c *Context) Store(key string, value interface{}) {
	c.txn.Insert(c.key(key), value)
}

func (c *Context) Delete(key string) {
	c.txn.Delete(c.key(key))
}

// Emit records an event emitted by the executing contract.
func (c *Context) Emit(event string, args ...interface{}) {
	c.logs = append(c.logs, &Log{
		Address: c.Self,
		Event:   event,
		Args:    args,
		Index:   uint(len(c.logs)),
	})
}

// BigInt returns a copy of a stored integer, zero when unset.
func (c *Context) BigInt(key string) *big.Int {
	v, ok := c.Load(key)
	if !ok {
		return new(big.Int)
	}
	return new(big.Int).Set(v.(*big.Int))
}

func (c *Context) SetBigInt(key string, v *big.Int) {
	c.Store(key, new(big.Int).Set(v))
}

func (c *Context) Bool(key string) bool {
	v, ok := c.Load(key)
	if !ok {
		return false
	}
	return v.(bool)
}

func (c *Context) SetBool(key string, v bool) {
	c.Store(key, v)
}

func (c *Context) Address(key string) Address {
	v, ok := c.Load(key)
	if !ok {
		return ZeroAddress
	}
	return v.(Address)
}

func (c *Context) SetAddress(key string, v Address) {
	c.Store(key, v)
}

func (c *Context) String(key string) string {
	v, ok := c.Load(key)
	if !ok {
		return ""
	}
	return v.(string)
}

func (c *Context) SetString(key string, v string) {
	c.Store(key, v)
}
