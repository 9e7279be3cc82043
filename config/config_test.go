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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ooeunoo/tokenspec/ledger"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()

	assert.Equal(t, "hardhat", cfg.DefaultNetwork)
	assert.Equal(t, "0.8.1", cfg.Compiler.Version)
	assert.Equal(t, Optimizer{Enabled: true, Runs: 200}, cfg.Compiler.Optimizer)
	assert.True(t, cfg.Reporter.Enabled)
	assert.Equal(t, AbiExporter{Path: "abis", Clear: true, Flat: true, Spacing: 2}, cfg.AbiExporter)
	require.NoError(t, cfg.Validate())

	network, err := cfg.Network("")
	require.NoError(t, err)
	assert.Equal(t, ledger.DefaultChainID, network.ChainID)
	assert.Equal(t, ledger.DefaultAccounts, network.Accounts)
	assert.False(t, network.IsRemote())

	_, err = cfg.Network("mainnet")
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	t.Parallel()

	cfg := Default()
	err := cfg.Apply(map[string]string{
		"TOKENSPEC_NETWORK":      "ERC20.test",
		"TOKENSPEC_ACCOUNTS":     "4",
		"TOKENSPEC_GENESIS_TIME": "1600000000",
		"TOKENSPEC_REPORTER":     "false",
		"TOKENSPEC_ABI_PATH":     "out/abis",
		"UNRELATED":              "ignored",
	})
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	network, err := cfg.Network("")
	require.NoError(t, err)
	assert.Equal(t, 4, network.Accounts)
	assert.Equal(t, uint64(1600000000), network.GenesisTime)
	assert.Equal(t, ledger.DefaultChainID, network.ChainID)
	assert.Equal(t, ledger.DefaultSeed, network.Seed)
	assert.False(t, cfg.Reporter.Enabled)
	assert.Equal(t, "out/abis", cfg.AbiExporter.Path)

	// The default network is untouched.
	hardhat, err := cfg.Network(DefaultNetwork)
	require.NoError(t, err)
	assert.Equal(t, ledger.DefaultAccounts, hardhat.Accounts)
}

func TestApplyInvalid(t *testing.T) {
	t.Parallel()

	assert.Error(t, Default().Apply(map[string]string{"TOKENSPEC_CHAIN_ID": "abc"}))
	assert.Error(t, Default().Apply(map[string]string{"TOKENSPEC_ACCOUNTS": "many"}))
	assert.Error(t, Default().Apply(map[string]string{"TOKENSPEC_TRACER": "maybe"}))

	cfg := Default()
	require.NoError(t, cfg.Apply(map[string]string{"TOKENSPEC_ACCOUNTS": "0"}))
	assert.Error(t, cfg.Validate())

	cfg = Default()
	require.NoError(t, cfg.Apply(map[string]string{"TOKENSPEC_ACCOUNTS": "0", "TOKENSPEC_RPC_URL": "http://localhost:8545"}))
	assert.NoError(t, cfg.Validate())
}

func TestLoadEnvFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("TOKENSPEC_SEED=fixture\nTOKENSPEC_BLOCK_INTERVAL=15\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	network, err := cfg.Network("")
	require.NoError(t, err)
	assert.Equal(t, "fixture", network.Seed)
	assert.Equal(t, uint64(15), network.BlockInterval)

	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
