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

package harness

import (
	"context"
	"io"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ooeunoo/tokenspec/config"
)

func passing(name string) Case {
	return Case{Name: name, Run: func(*T) {}}
}

func TestRunTestsHookOrder(t *testing.T) {
	t.Parallel()

	var calls []string
	record := func(call string) Hook {
		return func(*T) { calls = append(calls, call) }
	}

	suite := &Suite{
		Name:       "outer",
		Setup:      record("outer.setup"),
		BeforeEach: record("outer.beforeEach"),
		AfterEach:  record("outer.afterEach"),
		TearDown:   record("outer.tearDown"),
		Cases: []Case{
			{Name: "a", Run: record("outer.a")},
		},
		Suites: []*Suite{
			{
				Name:       "inner",
				Setup:      record("inner.setup"),
				BeforeEach: record("inner.beforeEach"),
				AfterEach:  record("inner.afterEach"),
				Cases: []Case{
					{Name: "b", Run: record("inner.b")},
				},
			},
		},
	}

	results, err := NewRunner().RunTests(context.Background(), suite)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "outer/a", results[0].FullName())
	assert.Equal(t, "outer/inner/b", results[1].FullName())
	assert.Empty(t, results.Failed())

	assert.Equal(t,
		[]string{
			"outer.setup",
			"outer.beforeEach",
			"outer.a",
			"outer.afterEach",
			"inner.setup",
			"outer.beforeEach",
			"inner.beforeEach",
			"inner.b",
			"inner.afterEach",
			"outer.afterEach",
			"outer.tearDown",
		},
		calls,
	)
}

func TestCasesAreIsolated(t *testing.T) {
	t.Parallel()

	var setupHeight, setupTime uint64

	check := func(t *T) {
		ctx := t.Context()
		height, err := t.Env().Clock.LatestBlock(ctx)
		t.Require(err)
		now, err := t.Env().Clock.Latest(ctx)
		t.Require(err)
		if height != setupHeight || now != setupTime {
			t.Fatalf("expected block %d at %d, got block %d at %d", setupHeight, setupTime, height, now)
		}
	}
	mutate := func(t *T) {
		ctx := t.Context()
		t.Require(t.Env().Clock.Increase(ctx, 3600))
		t.Require(t.Env().Clock.AdvanceBlockTo(ctx, setupHeight+5))
	}

	suite := &Suite{
		Name: "isolation",
		Setup: func(t *T) {
			ctx := t.Context()
			t.Require(t.Env().Clock.AdvanceBlock(ctx))
			var err error
			setupHeight, err = t.Env().Clock.LatestBlock(ctx)
			t.Require(err)
			setupTime, err = t.Env().Clock.Latest(ctx)
			t.Require(err)
		},
		Cases: []Case{
			{Name: "check", Run: check},
			{Name: "mutate", Run: mutate},
			{Name: "check again", Run: check},
		},
	}

	runner := NewRunner()
	results, err := runner.RunTests(context.Background(), suite)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, result := range results {
		assert.NoError(t, result.Error, result.FullName())
	}

	env, err := runner.Environment()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), env.Ledger.LatestBlock().Number)
}

func TestFailuresAreRecordedPerCase(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")

	suite := &Suite{
		Name: "failures",
		Cases: []Case{
			{Name: "require", Run: func(t *T) { t.Require(errBoom) }},
			{Name: "fatal", Run: func(t *T) { t.Fatalf("expected %d", 1) }},
			{Name: "panic", Run: func(*T) { panic("unexpected") }},
			passing("pass"),
		},
	}

	results, err := NewRunner().RunTests(context.Background(), suite)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.ErrorIs(t, results[0].Error, errBoom)
	assert.EqualError(t, results[1].Error, "expected 1")
	assert.EqualError(t, results[2].Error, "unexpected")
	assert.NoError(t, results[3].Error)
	assert.Len(t, results.Failed(), 3)
}

func TestHookFailures(t *testing.T) {
	t.Parallel()

	errHook := errors.New("hook")

	t.Run("beforeEach fails the case", func(t *testing.T) {
		t.Parallel()

		ran := false
		suite := &Suite{
			Name:       "hooks",
			BeforeEach: func(t *T) { t.Require(errHook) },
			Cases: []Case{
				{Name: "case", Run: func(*T) { ran = true }},
			},
		}

		results, err := NewRunner().RunTests(context.Background(), suite)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.ErrorIs(t, results[0].Error, errHook)
		assert.False(t, ran)
	})

	t.Run("setup aborts the run", func(t *testing.T) {
		t.Parallel()

		suite := &Suite{
			Name:  "hooks",
			Setup: func(t *T) { t.Require(errHook) },
			Cases: []Case{passing("case")},
		}

		_, err := NewRunner().RunTests(context.Background(), suite)
		assert.ErrorIs(t, err, errHook)
	})
}

func TestFailedCaseDoesNotStopTheRun(t *testing.T) {
	t.Parallel()

	errMismatch := errors.New("expected 1 to equal 2")
	var heights []uint64

	observe := func(t *T) {
		height, err := t.Env().Clock.LatestBlock(t.Context())
		t.Require(err)
		heights = append(heights, height)
	}

	suite := &Suite{
		Name: "run",
		Cases: []Case{
			{Name: "fails after mining", Run: func(t *T) {
				t.Require(t.Env().Clock.AdvanceBlockTo(t.Context(), 3))
				t.Require(errMismatch)
			}},
			{Name: "passes", Run: observe},
		},
		Suites: []*Suite{
			{
				Name:  "nested",
				Cases: []Case{{Name: "still runs", Run: observe}},
			},
		},
	}

	results, err := NewRunner().RunTests(context.Background(), suite)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "run/fails after mining", results[0].FullName())
	assert.ErrorIs(t, results[0].Error, errMismatch)
	assert.Equal(t, "run/passes", results[1].FullName())
	assert.NoError(t, results[1].Error)
	assert.Equal(t, "run/nested/still runs", results[2].FullName())
	assert.NoError(t, results[2].Error)

	assert.Equal(t, []uint64{0, 0}, heights)
	assert.Len(t, results.Failed(), 1)
}

func TestFailedSetupRevertsLedger(t *testing.T) {
	t.Parallel()

	env, err := UseEnvironment(config.Default(), "", zerolog.Nop())
	require.NoError(t, err)

	errSetup := errors.New("setup")
	suite := &Suite{
		Name: "setup",
		Setup: func(t *T) {
			t.Require(t.Env().Clock.AdvanceBlockTo(t.Context(), 4))
			t.Require(errSetup)
		},
		Cases: []Case{passing("case")},
	}

	_, err = NewRunner().WithEnvironment(env).RunTests(context.Background(), suite)
	assert.ErrorIs(t, err, errSetup)
	assert.Equal(t, uint64(0), env.Ledger.LatestBlock().Number)
}

func newNestedSuite() *Suite {
	return &Suite{
		Name:  "token",
		Cases: []Case{passing("name"), passing("symbol")},
		Suites: []*Suite{
			{
				Name:  "transfer",
				Cases: []Case{passing("moves balance"), passing("reverts")},
			},
		},
	}
}

func TestGetTests(t *testing.T) {
	t.Parallel()

	tests := NewRunner().GetTests(newNestedSuite())
	assert.Equal(t,
		[]string{
			"token/name",
			"token/symbol",
			"token/transfer/moves balance",
			"token/transfer/reverts",
		},
		tests,
	)
}

func TestFilter(t *testing.T) {
	t.Parallel()

	results, err := NewRunner().
		WithFilter("transfer/").
		RunTests(context.Background(), newNestedSuite())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "token/transfer/moves balance", results[0].FullName())

	_, err = NewRunner().WithFilter("(").RunTests(context.Background(), newNestedSuite())
	assert.Error(t, err)
}

func TestRunTest(t *testing.T) {
	t.Parallel()

	result, err := NewRunner().RunTest(context.Background(), newNestedSuite(), "token/transfer/reverts")
	require.NoError(t, err)
	assert.Equal(t, "reverts", result.TestName)
	assert.Equal(t, []string{"token", "transfer"}, result.Path)
	assert.NoError(t, result.Error)

	_, err = NewRunner().RunTest(context.Background(), newNestedSuite(), "token/missing")
	assert.ErrorIs(t, err, ErrTestNotFound)
}

func TestRandomSeed(t *testing.T) {
	t.Parallel()

	suite := &Suite{Name: "shuffle"}
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		suite.Cases = append(suite.Cases, passing(name))
	}

	names := func(results Results) []string {
		out := make([]string, 0, len(results))
		for _, r := range results {
			out = append(out, r.TestName)
		}
		return out
	}

	first, err := NewRunner().WithRandomSeed(42).RunTests(context.Background(), suite)
	require.NoError(t, err)
	second, err := NewRunner().WithRandomSeed(42).RunTests(context.Background(), suite)
	require.NoError(t, err)

	assert.Equal(t, names(first), names(second))
	assert.ElementsMatch(t, []string{"a", "b", "c", "d", "e", "f", "g", "h"}, names(first))
	assert.Equal(t, "a", suite.Cases[0].Name)
}

func TestCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner().RunTests(ctx, newNestedSuite())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLogs(t *testing.T) {
	t.Parallel()

	suite := &Suite{
		Name: "logs",
		Cases: []Case{
			{Name: "case", Run: func(t *T) { t.Logf("hello %s", "world") }},
		},
	}

	runner := NewRunner().WithLogger(zerolog.New(io.Discard))
	_, err := runner.RunTests(context.Background(), suite)
	require.NoError(t, err)
	assert.Contains(t, runner.Logs(), "hello world")
	assert.Contains(t, runner.Logs(), "environment ready")

	quiet := NewRunner()
	_, err = quiet.RunTests(context.Background(), suite)
	require.NoError(t, err)
	assert.Empty(t, quiet.Logs())
}

func TestEnvironment(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	env, err := UseEnvironment(config.Default(), "", zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultNetwork, env.Name)
	require.NotEmpty(t, env.Signers())

	owner := env.Signers()[0]
	token, receipt, err := env.Deploy(ctx, owner, "KIP7All", "KIP7", "KIP7", big.NewInt(100))
	require.NoError(t, err)
	assert.Equal(t, token.Address(), receipt.ContractAddress)

	env.NameTag(token.Address(), "Contract")
	assert.Equal(t, "Contract", env.Tracer.NameTag(token.Address()))

	balance, err := token.CallBigInt(ctx, "balanceOf", owner.Address)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance.Int64())

	_, _, err = env.Deploy(ctx, owner, "Missing")
	assert.Error(t, err)
}

func TestRemoteEnvironment(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Networks["remote"] = config.Network{URL: "http://127.0.0.1:8545"}

	_, err := UseEnvironment(cfg, "remote", zerolog.Nop())
	assert.ErrorIs(t, err, ErrRemoteNetwork)

	_, err = UseEnvironment(cfg, "missing", zerolog.Nop())
	assert.Error(t, err)
}

func TestPrettyPrintResults(t *testing.T) {
	t.Parallel()

	results := Results{
		{Path: []string{"token"}, TestName: "name"},
		{Path: []string{"token"}, TestName: "symbol", Error: errors.New("expected \"A\"\nto equal \"B\"")},
	}

	assert.Equal(t,
		"Test results: \"token\"\n"+
			"- PASS: token/name\n"+
			"- FAIL: token/symbol\n\t\texpected \"A\"\n\t\t\tto equal \"B\"\n",
		PrettyPrintResults(results, "token"),
	)
}
