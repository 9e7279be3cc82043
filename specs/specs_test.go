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

package specs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ooeunoo/tokenspec/config"
	"github.com/ooeunoo/tokenspec/harness"
	"github.com/ooeunoo/tokenspec/ledger"
)

func runSuite(t *testing.T, suite *harness.Suite) harness.Results {
	t.Helper()

	runner := harness.NewRunner().WithConfig(config.Default())
	results, err := runner.RunTests(context.Background(), suite)
	require.NoError(t, err)

	for _, result := range results {
		result := result
		t.Run(result.FullName(), func(t *testing.T) {
			assert.NoError(t, result.Error)
		})
	}
	return results
}

func TestKIP7(t *testing.T) {
	t.Parallel()

	suite := KIP7(KIP7Options{})
	results := runSuite(t, suite)

	assert.Len(t, results, len(harness.NewRunner().GetTests(suite)))
	assert.Len(t, results, 87)
}

func TestERC721(t *testing.T) {
	t.Parallel()

	suite := ERC721(ERC721Options{})
	results := runSuite(t, suite)

	assert.Len(t, results, len(harness.NewRunner().GetTests(suite)))
}

func TestKIP7Shuffled(t *testing.T) {
	t.Parallel()

	results, err := harness.NewRunner().
		WithRandomSeed(7).
		WithFilter("ERC20TimeLockable").
		RunTests(context.Background(), KIP7(KIP7Options{}))
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Empty(t, results.Failed())
}

func TestKIP7DetectsWrongExpectations(t *testing.T) {
	t.Parallel()

	results, err := harness.NewRunner().
		WithFilter("ERC20 Metadata").
		RunTests(context.Background(), KIP7(KIP7Options{Name: "Other", Symbol: "OTH", Decimals: 6}))
	require.NoError(t, err)
	require.Len(t, results, 3)

	// The token is deployed with the configured name and symbol, but
	// decimals are fixed by the contract.
	assert.NoError(t, results[0].Error)
	assert.NoError(t, results[1].Error)
	assert.Error(t, results[2].Error)
}

func TestSuitesLeaveLedgerUntouched(t *testing.T) {
	t.Parallel()

	runner := harness.NewRunner()
	env, err := runner.Environment()
	require.NoError(t, err)
	before := env.Ledger.LatestBlock()

	_, err = runner.RunTests(context.Background(), ERC721(ERC721Options{}))
	require.NoError(t, err)

	after := env.Ledger.LatestBlock()
	assert.Equal(t, before.Number, after.Number)
	assert.Equal(t, before.Timestamp, after.Timestamp)
	assert.Equal(t, "Owner", env.Tracer.NameTag(env.Signers()[0].Address))
	assert.Equal(t, "ZeroAddress", env.Tracer.NameTag(ledger.ZeroAddress))
}

func TestTooFewSigners(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	network := cfg.Networks[config.DefaultNetwork]
	network.Accounts = 2
	cfg.Networks[config.DefaultNetwork] = network

	_, err := harness.NewRunner().WithConfig(cfg).RunTests(context.Background(), KIP7(KIP7Options{}))
	assert.Error(t, err)
}
