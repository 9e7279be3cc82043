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
	"math/big"

	"github.com/pkg/errors"

	"github.com/ooeunoo/tokenspec/ledger"
)

// Backend is the contract-call interface of a ledger.
type Backend interface {
	Deploy(ctx context.Context, from *ledger.Account, code ledger.Code, args ...interface{}) (*ledger.Receipt, error)
	Transact(ctx context.Context, from *ledger.Account, to ledger.Address, method string, args ...interface{}) (*ledger.Receipt, error)
	Call(ctx context.Context, from ledger.Address, to ledger.Address, method string, args ...interface{}) (interface{}, error)
}

var _ Backend = &ledger.Ledger{}

// Bound is a deployed contract together with the account that signs
// transactions sent to it.
type Bound struct {
	backend Backend
	address ledger.Address
	signer  *ledger.Account
}

func Bind(backend Backend, address ledger.Address, signer *ledger.Account) *Bound {
	return &Bound{
		backend: backend,
		address: address,
		signer:  signer,
	}
}

// Deploy deploys code signed by signer and binds the new contract to it.
func Deploy(
	ctx context.Context,
	backend Backend,
	signer *ledger.Account,
	code ledger.Code,
	args ...interface{},
) (*Bound, *ledger.Receipt, error) {
	if signer == nil {
		return nil, nil, ledger.ErrNoSigner
	}
	receipt, err := backend.Deploy(ctx, signer, code, args...)
	if err != nil {
		return nil, nil, err
	}
	return Bind(backend, receipt.ContractAddress, signer), receipt, nil
}

func (b *Bound) Address() ledger.Address {
	return b.address
}

func (b *Bound) Signer() *ledger.Account {
	return b.signer
}

func (b *Bound) Backend() Backend {
	return b.backend
}

// WithSigner returns a copy of the binding that signs with signer.
func (b *Bound) WithSigner(signer *ledger.Account) *Bound {
	bound := *b
	bound.signer = signer
	return &bound
}

func (b *Bound) Transact(ctx context.Context, method string, args ...interface{}) (*ledger.Receipt, error) {
	if b.signer == nil {
		return nil, ledger.ErrNoSigner
	}
	return b.backend.Transact(ctx, b.signer, b.address, method, args...)
}

// Call runs a read-only method. The signer, when present, is the caller.
func (b *Bound) Call(ctx context.Context, method string, args ...interface{}) (interface{}, error) {
	from := ledger.ZeroAddress
	if b.signer != nil {
		from = b.signer.Address
	}
	return b.backend.Call(ctx, from, b.address, method, args...)
}

func (b *Bound) CallBigInt(ctx context.Context, method string, args ...interface{}) (*big.Int, error) {
	v, err := b.Call(ctx, method, args...)
	if err != nil {
		return nil, err
	}
	n, ok := v.(*big.Int)
	if !ok {
		return nil, unexpectedResult(method, "*big.Int", v)
	}
	return n, nil
}

func (b *Bound) CallUint64(ctx context.Context, method string, args ...interface{}) (uint64, error) {
	v, err := b.Call(ctx, method, args...)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case uint64:
		return n, nil
	case *big.Int:
		if n.IsUint64() {
			return n.Uint64(), nil
		}
	}
	return 0, unexpectedResult(method, "uint64", v)
}

func (b *Bound) CallBool(ctx context.Context, method string, args ...interface{}) (bool, error) {
	v, err := b.Call(ctx, method, args...)
	if err != nil {
		return false, err
	}
	flag, ok := v.(bool)
	if !ok {
		return false, unexpectedResult(method, "bool", v)
	}
	return flag, nil
}

func (b *Bound) CallString(ctx context.Context, method string, args ...interface{}) (string, error) {
	v, err := b.Call(ctx, method, args...)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", unexpectedResult(method, "string", v)
	}
	return s, nil
}

func (b *Bound) CallAddress(ctx context.Context, method string, args ...interface{}) (ledger.Address, error) {
	v, err := b.Call(ctx, method, args...)
	if err != nil {
		return ledger.ZeroAddress, err
	}
	a, ok := v.(ledger.Address)
	if !ok {
		return ledger.ZeroAddress, unexpectedResult(method, "address", v)
	}
	return a, nil
}

func unexpectedResult(method, want string, got interface{}) error {
	return errors.Errorf("%s returned %T, expected %s", method, got, want)
}
