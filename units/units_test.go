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

package units

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value    string
		decimals int32
		want     string
	}{
		{"1", 18, "1000000000000000000"},
		{"1.5", 18, "1500000000000000000"},
		{"0.000000000000000001", 18, "1"},
		{"10000000", 18, "10000000000000000000000000"},
		{"-2.25", 2, "-225"},
		{"42", 0, "42"},
		{"1.50", 1, "15"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.value, func(t *testing.T) {
			t.Parallel()

			got, err := ParseUnits(test.value, test.decimals)
			require.NoError(t, err)
			assert.Equal(t, test.want, got.String())
		})
	}
}

func TestParseUnitsErrors(t *testing.T) {
	t.Parallel()

	_, err := ParseUnits("1.234", 2)
	assert.Error(t, err)

	_, err = ParseUnits("abc", 18)
	assert.Error(t, err)

	_, err = ParseUnits("Infinity", 18)
	assert.Error(t, err)
}

func TestFormatUnits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1.0", FormatEther(Tokens(1, EtherDecimals)))
	assert.Equal(t, "1.5", FormatUnits(big.NewInt(15), 1))
	assert.Equal(t, "0.000000000000000001", FormatEther(big.NewInt(1)))
	assert.Equal(t, "0.0", FormatEther(new(big.Int)))
	assert.Equal(t, "7.0", FormatUnits(big.NewInt(7), 0))
}

func TestUnitsRoundTrip(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"1.0", "0.5", "123456789.000000000000000001", "10000000.0"} {
		parsed, err := ParseEther(value)
		require.NoError(t, err)
		assert.Equal(t, value, FormatEther(parsed))
	}
}

func TestStringToBytes32(t *testing.T) {
	t.Parallel()

	b, err := StringToBytes32("vesting")
	require.NoError(t, err)
	assert.Equal(t, byte('v'), b[0])
	assert.Equal(t, byte(0), b[7])

	s, err := Bytes32ToString(b)
	require.NoError(t, err)
	assert.Equal(t, "vesting", s)

	_, err = StringToBytes32("this string is far too long for bytes32")
	assert.Error(t, err)

	var full [32]byte
	for i := range full {
		full[i] = 'a'
	}
	_, err = Bytes32ToString(full)
	assert.Error(t, err)
}

func TestRandomBytes(t *testing.T) {
	t.Parallel()

	b, err := RandomBytes(16)
	require.NoError(t, err)
	assert.Len(t, b, 16)

	first, err := RandomBytes32()
	require.NoError(t, err)
	second, err := RandomBytes32()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
