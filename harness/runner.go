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
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/ooeunoo/tokenspec/config"
)

const nameSeparator = "/"

// ErrTestNotFound is returned by RunTest for an unknown case name.
var ErrTestNotFound = errors.New("test not found")

type Results []Result

type Result struct {
	// Path holds the names of the enclosing suites, outermost first.
	Path     []string
	TestName string
	Error    error
}

func (r Result) FullName() string {
	return strings.Join(append(append([]string{}, r.Path...), r.TestName), nameSeparator)
}

// Failed returns the results with an error.
func (rs Results) Failed() Results {
	failed := make(Results, 0)
	for _, r := range rs {
		if r.Error != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

type Runner struct {
	logger zerolog.Logger

	config  *config.Config
	network string

	// env is built on first use unless one was provided.
	env *Environment

	randomSeed int64
	filter     string

	// logCollection is a hook attached to the environment logger, in
	// order to aggregate and expose the log messages of a run.
	logCollection *logCollectionHook
}

func NewRunner() *Runner {
	return &Runner{
		logger:        zerolog.Nop(),
		logCollection: newLogCollectionHook(),
	}
}

func (r *Runner) WithLogger(logger zerolog.Logger) *Runner {
	r.logger = logger
	return r
}

func (r *Runner) WithConfig(cfg *config.Config) *Runner {
	r.config = cfg
	return r
}

// WithNetwork selects the configured network to run on. The default
// network is used otherwise.
func (r *Runner) WithNetwork(name string) *Runner {
	r.network = name
	return r
}

// WithEnvironment runs the suites against env instead of a fresh one.
func (r *Runner) WithEnvironment(env *Environment) *Runner {
	r.env = env
	return r
}

// WithRandomSeed shuffles the cases of every suite. Zero keeps the
// declaration order.
func (r *Runner) WithRandomSeed(seed int64) *Runner {
	r.randomSeed = seed
	return r
}

// WithFilter only runs the cases whose full name matches the regular
// expression pattern.
func (r *Runner) WithFilter(pattern string) *Runner {
	r.filter = pattern
	return r
}

// Environment returns the environment of the runner, building it when
// none exists yet.
func (r *Runner) Environment() (*Environment, error) {
	if r.env != nil {
		return r.env, nil
	}
	env, err := UseEnvironment(r.config, r.network, r.logger.Hook(r.logCollection))
	if err != nil {
		return nil, err
	}
	r.env = env
	return env, nil
}

// RunTests runs all the cases of suite and of its nested suites.
func (r *Runner) RunTests(ctx context.Context, suite *Suite) (results Results, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()

	match := func(string) bool { return true }
	if r.filter != "" {
		re, err := regexp.Compile(r.filter)
		if err != nil {
			return nil, errors.Wrap(err, "invalid test filter")
		}
		match = re.MatchString
	}

	return r.run(ctx, suite, match)
}

// RunTest runs the single case with the given full name, including the
// hooks of its enclosing suites.
func (r *Runner) RunTest(ctx context.Context, suite *Suite, name string) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()

	results, err := r.run(ctx, suite, func(fullName string) bool {
		return fullName == name
	})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, errors.Wrap(ErrTestNotFound, name)
	}
	return &results[0], nil
}

// GetTests returns the full names of all the cases of suite, in
// declaration order.
func (r *Runner) GetTests(suite *Suite) []string {
	tests := make([]string, 0)
	walk(suite, nil, func(path []string, c Case) {
		tests = append(tests, joinName(path, c.Name))
	})
	return tests
}

// Logs returns the log messages emitted through the runner logger by the
// environment the cases ran in, including transaction traces and the
// messages of T.Logf. Messages below the logger level are not kept.
func (r *Runner) Logs() []string {
	return r.logCollection.Logs()
}

func (r *Runner) run(ctx context.Context, suite *Suite, match func(string) bool) (Results, error) {
	env, err := r.Environment()
	if err != nil {
		return nil, err
	}

	results := make(Results, 0)
	err = r.runSuite(ctx, env, suite, nil, nil, match, &results)
	return results, err
}

func (r *Runner) runSuite(
	ctx context.Context,
	env *Environment,
	suite *Suite,
	path []string,
	parents []*Suite,
	match func(string) bool,
	results *Results,
) (err error) {
	path = append(path[:len(path):len(path)], suite.Name)
	chain := append(parents[:len(parents):len(parents)], suite)

	if !hasMatchingCases(suite, path[:len(path)-1], match) {
		return nil
	}

	// Setup state must not leak into sibling suites.
	snapshot := env.Ledger.Snapshot()
	defer func() {
		if err != nil {
			env.Ledger.Revert(snapshot)
		}
	}()

	suiteName := strings.Join(path, nameSeparator)

	if suite.Setup != nil {
		err := r.invoke(ctx, env, joinName(path, "setup"), suite.Setup)
		if err != nil {
			return errors.Wrapf(err, "%s: setup failed", suiteName)
		}
	}

	cases := make([]Case, len(suite.Cases))
	copy(cases, suite.Cases)
	if r.randomSeed != 0 {
		rng := rand.New(rand.NewSource(r.randomSeed))
		rng.Shuffle(len(cases), func(i, j int) {
			cases[i], cases[j] = cases[j], cases[i]
		})
	}

	for _, c := range cases {
		if !match(joinName(path, c.Name)) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := r.runCase(ctx, env, chain, path, c)
		if err != nil {
			return err
		}
		*results = append(*results, result)
	}

	for _, child := range suite.Suites {
		err := r.runSuite(ctx, env, child, path, chain, match, results)
		if err != nil {
			return err
		}
	}

	if suite.TearDown != nil {
		err := r.invoke(ctx, env, joinName(path, "tearDown"), suite.TearDown)
		if err != nil {
			return errors.Wrapf(err, "%s: tearDown failed", suiteName)
		}
	}

	if !env.Ledger.Revert(snapshot) {
		return errors.Errorf("%s: failed to revert to snapshot %d", suiteName, snapshot)
	}
	return nil
}

func (r *Runner) runCase(
	ctx context.Context,
	env *Environment,
	chain []*Suite,
	path []string,
	c Case,
) (Result, error) {
	name := joinName(path, c.Name)
	snapshot := env.Ledger.Snapshot()

	var testErr error
	for _, suite := range chain {
		if suite.BeforeEach == nil {
			continue
		}
		if err := r.invoke(ctx, env, name, suite.BeforeEach); err != nil {
			testErr = errors.Wrap(err, "beforeEach")
			break
		}
	}

	if testErr == nil {
		testErr = r.invoke(ctx, env, name, c.Run)
	}

	for i := len(chain) - 1; i >= 0; i-- {
		if chain[i].AfterEach == nil {
			continue
		}
		err := r.invoke(ctx, env, name, chain[i].AfterEach)
		if err != nil && testErr == nil {
			testErr = errors.Wrap(err, "afterEach")
		}
	}

	if !env.Ledger.Revert(snapshot) {
		return Result{}, errors.Errorf("%s: failed to revert to snapshot %d", name, snapshot)
	}

	event := r.logger.Debug()
	if testErr != nil {
		event = r.logger.Info().Err(testErr)
	}
	event.Str("test", name).Msg("test finished")

	return Result{
		Path:     path,
		TestName: c.Name,
		Error:    testErr,
	}, nil
}

func (r *Runner) invoke(ctx context.Context, env *Environment, name string, fn func(*T)) (err error) {
	// Individually fail each case for any failed expectation or panic.
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()

	fn(&T{
		ctx:    ctx,
		env:    env,
		name:   name,
		logger: r.logger.Hook(r.logCollection),
	})
	return nil
}

// panicError turns a recovered value into the error of a case.
func panicError(r interface{}) error {
	switch r := r.(type) {
	case failure:
		return r.err
	case error:
		return r
	default:
		return errors.Errorf("%v", r)
	}
}

func hasMatchingCases(suite *Suite, path []string, match func(string) bool) bool {
	found := false
	walk(suite, path, func(casePath []string, c Case) {
		if match(joinName(casePath, c.Name)) {
			found = true
		}
	})
	return found
}

func walk(suite *Suite, path []string, visit func(path []string, c Case)) {
	path = append(path[:len(path):len(path)], suite.Name)
	for _, c := range suite.Cases {
		visit(path, c)
	}
	for _, child := range suite.Suites {
		walk(child, path, visit)
	}
}

func joinName(path []string, name string) string {
	return strings.Join(append(path[:len(path):len(path)], name), nameSeparator)
}

// PrettyPrintResults is a utility function to pretty print the test results.
func PrettyPrintResults(results Results, suiteName string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Test results: %q\n", suiteName)
	for _, result := range results {
		sb.WriteString(PrettyPrintResult(result.FullName(), result.Error))
		sb.WriteRune('\n')
	}
	return sb.String()
}

func PrettyPrintResult(name string, err error) string {
	if err == nil {
		return fmt.Sprintf("- PASS: %s", name)
	}

	// Indent the error messages
	errString := strings.ReplaceAll(err.Error(), "\n", "\n\t\t\t")

	return fmt.Sprintf("- FAIL: %s\n\t\t%s", name, errString)
}
