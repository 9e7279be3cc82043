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
	"encoding/hex"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zeroLogger() zerolog.Logger {
	return zerolog.Nop()
}

func TestParseAddress(t *testing.T) {
	t.Parallel()

	a, err := ParseAddress("0x00000000000000000000000000000000000000ff")
	require.NoError(t, err)
	assert.Equal(t, byte(0xff), a[19])
	assert.Equal(t, "0x00000000000000000000000000000000000000ff", a.String())

	_, err = ParseAddress("0x1234")
	assert.Error(t, err)

	_, err = ParseAddress("0xzz")
	assert.Error(t, err)

	assert.True(t, ZeroAddress.IsZero())
	assert.False(t, a.IsZero())
}

func TestAddressJSON(t *testing.T) {
	t.Parallel()

	a := DeriveAccounts("json", 1)[0].Address

	encoded, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, `"`+a.Hex()+`"`, string(encoded))

	var decoded Address
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, a, decoded)
}

func TestKeccak256(t *testing.T) {
	t.Parallel()

	assert.Equal(
		t,
		"c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		hex.EncodeToString(Keccak256()),
	)
	assert.Equal(
		t,
		"a9059cbb",
		hex.EncodeToString(Keccak256([]byte("transfer(address,uint256)"))[:4]),
	)
}

func TestArgs(t *testing.T) {
	t.Parallel()

	a := DeriveAccounts("args", 1)[0].Address
	args := Args{a, big.NewInt(5), uint64(7), [32]byte{1}, "name", true, -1}

	address, err := args.Address(0)
	require.NoError(t, err)
	assert.Equal(t, a, address)

	n, err := args.BigInt(1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n.Int64())

	u, err := args.Uint64(2)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), u)

	b, err := args.Bytes32(3)
	require.NoError(t, err)
	assert.Equal(t, byte(1), b[0])

	s, err := args.String(4)
	require.NoError(t, err)
	assert.Equal(t, "name", s)

	flag, err := args.Bool(5)
	require.NoError(t, err)
	assert.True(t, flag)

	_, err = args.Uint256(6)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = args.Address(1)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = args.String(10)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSignTx(t *testing.T) {
	t.Parallel()

	accounts := DeriveAccounts("sign", 2)
	tx := &Transaction{
		ChainID: DefaultChainID,
		From:    accounts[0].Address,
		Method:  "transfer",
		Args:    []interface{}{accounts[1].Address, big.NewInt(1)},
	}

	assert.Error(t, accounts[1].SignTx(tx))
	require.NoError(t, accounts[0].SignTx(tx))
	assert.Len(t, tx.Signature, crypto.SignatureLength)

	from, err := signer(mustSigningHash(t, tx), tx.Signature)
	require.NoError(t, err)
	assert.Equal(t, accounts[0].Address, from)
	assert.NotEqual(t, Hash{}, tx.Hash())
}

func mustSigningHash(t *testing.T, tx *Transaction) Hash {
	t.Helper()
	hash, err := tx.SigningHash()
	require.NoError(t, err)
	return hash
}

func TestAccountAddress(t *testing.T) {
	t.Parallel()

	// First default account of hardhat and anvil.
	key, err := crypto.HexToECDSA("ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	require.NoError(t, err)

	account := AccountFromKey(key)
	assert.Equal(t, "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266", account.Address.Hex())

	again := DeriveAccounts("seed", 2)
	assert.Equal(t, DeriveAccounts("seed", 2)[1].Address, again[1].Address)
	assert.NotEqual(t, again[0].Address, again[1].Address)
}
