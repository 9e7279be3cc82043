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

// Package units converts between human readable token amounts and their
// integer on-chain representation, and builds fixed-size byte values.
package units

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/cockroachdb/apd"
	"github.com/pkg/errors"
)

// EtherDecimals is the number of decimals of ether and of most tokens.
const EtherDecimals = 18

// decimalContext carries enough precision for uint256 amounts.
var decimalContext = apd.BaseContext.WithPrecision(100)

// ParseUnits parses a decimal string such as "1.5" into an integer amount
// scaled by 10^decimals. Values with more fractional digits than decimals
// are rejected.
func ParseUnits(value string, decimals int32) (*big.Int, error) {
	d, _, err := apd.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid amount %q", value)
	}
	if d.Form != apd.Finite {
		return nil, errors.Errorf("invalid amount %q", value)
	}

	d.Exponent += decimals

	scaled := new(apd.Decimal)
	cond, err := decimalContext.Quantize(scaled, d, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid amount %q", value)
	}
	if cond.Inexact() {
		return nil, errors.Errorf("amount %q has more than %d decimals", value, decimals)
	}

	result := new(big.Int).Set(&scaled.Coeff)
	if scaled.Negative {
		result.Neg(result)
	}
	return result, nil
}

// FormatUnits renders an integer amount scaled by 10^decimals as a
// decimal string. The fractional part always has at least one digit.
func FormatUnits(value *big.Int, decimals int32) string {
	text := apd.NewWithBigInt(value, -decimals).Text('f')

	if !strings.Contains(text, ".") {
		return text + ".0"
	}
	text = strings.TrimRight(text, "0")
	if strings.HasSuffix(text, ".") {
		text += "0"
	}
	return text
}

func ParseEther(value string) (*big.Int, error) {
	return ParseUnits(value, EtherDecimals)
}

func FormatEther(value *big.Int) string {
	return FormatUnits(value, EtherDecimals)
}

// Tokens returns n whole tokens of a token with the given decimals.
func Tokens(n int64, decimals int32) *big.Int {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	return scale.Mul(scale, big.NewInt(n))
}

// StringToBytes32 encodes s as a right zero-padded bytes32 string. The
// last byte is reserved for the terminator, so s may be at most 31 bytes.
func StringToBytes32(s string) ([32]byte, error) {
	var out [32]byte
	if len(s) > 31 {
		return out, errors.Errorf("bytes32 string must be less than 32 bytes: %q", s)
	}
	copy(out[:], s)
	return out, nil
}

// Bytes32ToString decodes a bytes32 string written by StringToBytes32.
func Bytes32ToString(b [32]byte) (string, error) {
	end := 0
	for end < len(b) && b[end] != 0 {
		end++
	}
	if end == len(b) {
		return "", errors.New("invalid bytes32 string: no null terminator")
	}
	return string(b[:end]), nil
}

func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, errors.Wrap(err, "reading random bytes")
	}
	return b, nil
}

func RandomBytes32() ([32]byte, error) {
	var out [32]byte
	b, err := RandomBytes(len(out))
	if err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}
