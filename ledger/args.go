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

	"github.com/pkg/errors"
)

// Args are the positional arguments of a contract call.
type Args []interface{}

func (a Args) at(i int) (interface{}, error) {
	if i < 0 || i >= len(a) {
		return nil, errors.Wrapf(ErrInvalidArgument, "missing argument %d", i)
	}
	return a[i], nil
}

func (a Args) Address(i int) (Address, error) {
	v, err := a.at(i)
	if err != nil {
		return ZeroAddress, err
	}
	switch v := v.(type) {
	case Address:
		return v, nil
	case *Address:
		return *v, nil
	case string:
		return ParseAddress(v)
	}
	return ZeroAddress, errors.Wrapf(ErrInvalidArgument, "argument %d: %T is not an address", i, v)
}

// BigInt accepts any integer type and returns a fresh copy.
func (a Args) BigInt(i int) (*big.Int, error) {
	v, err := a.at(i)
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case *big.Int:
		if v == nil {
			break
		}
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case int:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case uint:
		return new(big.Int).SetUint64(uint64(v)), nil
	}
	return nil, errors.Wrapf(ErrInvalidArgument, "argument %d: %T is not an integer", i, v)
}

// Uint256 is BigInt restricted to non-negative values.
func (a Args) Uint256(i int) (*big.Int, error) {
	v, err := a.BigInt(i)
	if err != nil {
		return nil, err
	}
	if v.Sign() < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "argument %d: negative value %s", i, v)
	}
	return v, nil
}

func (a Args) Uint64(i int) (uint64, error) {
	v, err := a.BigInt(i)
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, errors.Wrapf(ErrInvalidArgument, "argument %d: %s does not fit in uint64", i, v)
	}
	return v.Uint64(), nil
}

func (a Args) Bytes32(i int) ([32]byte, error) {
	v, err := a.at(i)
	if err != nil {
		return [32]byte{}, err
	}
	switch v := v.(type) {
	case [32]byte:
		return v, nil
	case Hash:
		return v, nil
	}
	return [32]byte{}, errors.Wrapf(ErrInvalidArgument, "argument %d: %T is not bytes32", i, v)
}

func (a Args) String(i int) (string, error) {
	v, err := a.at(i)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.Wrapf(ErrInvalidArgument, "argument %d: %T is not a string", i, v)
	}
	return s, nil
}

func (a Args) Bool(i int) (bool, error) {
	v, err := a.at(i)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, errors.Wrapf(ErrInvalidArgument, "argument %d: %T is not a bool", i, v)
	}
	return b, nil
}
