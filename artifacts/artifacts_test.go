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

package artifacts

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ooeunoo/tokenspec/config"
	"github.com/ooeunoo/tokenspec/contracts"
	"github.com/ooeunoo/tokenspec/ledger"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := Default()
	assert.Equal(t, []string{"ERC721All", "KIP7All"}, r.Names())

	_, err := r.Get("Missing")
	assert.ErrorIs(t, err, ErrNotFound)

	a, err := r.Get("KIP7All")
	require.NoError(t, err)
	err = r.Register(a)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	assert.Error(t, r.Register(Artifact{Name: "Empty"}))
	assert.Panics(t, func() {
		r.MustRegister(a)
	})
}

func TestRegistryDeploy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l := ledger.New(ledger.WithAccounts(2, "artifacts"))
	owner := l.Accounts()[0]

	bound, receipt, err := Default().Deploy(ctx, l, owner, "ERC721All", "Name", "SYM")
	require.NoError(t, err)
	assert.Equal(t, receipt.ContractAddress, bound.Address())

	symbol, err := bound.CallString(ctx, "symbol")
	require.NoError(t, err)
	assert.Equal(t, "SYM", symbol)

	_, _, err = Default().Deploy(ctx, l, owner, "Missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = Default().Deploy(ctx, l, owner, "ERC721All", "only name")
	assert.ErrorIs(t, err, ledger.ErrInvalidArgument)
}

func TestExportFlat(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "abis")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	stale := filepath.Join(dir, "Stale.json")
	require.NoError(t, os.WriteFile(stale, []byte("[]"), 0o644))

	written, err := Export(Default(), config.AbiExporter{
		Path:    dir,
		Clear:   true,
		Flat:    true,
		Spacing: 2,
	})
	require.NoError(t, err)
	assert.Equal(
		t,
		[]string{filepath.Join(dir, "ERC721All.json"), filepath.Join(dir, "KIP7All.json")},
		written,
	)

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))

	data, err := os.ReadFile(filepath.Join(dir, "KIP7All.json"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[\n  {"))

	var entries []contracts.ABIEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.NotEmpty(t, entries)
	assert.Equal(t, "constructor", entries[0].Type)
	assert.Len(t, entries[0].Inputs, 3)

	var functions []string
	for _, entry := range entries {
		if entry.Type == "function" {
			functions = append(functions, entry.Name)
		}
	}
	assert.Contains(t, functions, "transferWithLock")
	assert.Contains(t, functions, "balanceOf")
}

func TestExportNested(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	written, err := Export(Default(), config.AbiExporter{Path: dir, Spacing: 4})
	require.NoError(t, err)
	require.Len(t, written, 2)

	path := filepath.Join(dir, "contracts", "KIP7", "KIP7All.sol", "KIP7All.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[\n    {"))

	_, err = Export(Default(), config.AbiExporter{})
	assert.Error(t, err)
}
