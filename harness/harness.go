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

// Package harness runs scenario suites against a simulated ledger.
//
// A Suite groups cases and hooks the way describe blocks do: Setup and
// TearDown run once per suite, BeforeEach and AfterEach run around every
// case of the suite and of its nested suites. Every case starts from the
// ledger state left by the setup hooks, because the runner snapshots the
// ledger before the case and reverts it afterwards.
package harness

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Hook is a setup or teardown function of a suite.
type Hook func(t *T)

type Case struct {
	Name string
	Run  func(t *T)
}

type Suite struct {
	Name       string
	Setup      Hook
	BeforeEach Hook
	AfterEach  Hook
	TearDown   Hook
	Cases      []Case
	Suites     []*Suite
}

// T is handed to every hook and case.
type T struct {
	ctx    context.Context
	env    *Environment
	name   string
	logger zerolog.Logger
}

// failure carries an error out of a case through a panic, so that
// scenarios can stop at the first failed expectation.
type failure struct {
	err error
}

func (t *T) Context() context.Context {
	return t.ctx
}

func (t *T) Env() *Environment {
	return t.env
}

// Name returns the full name of the running case or hook.
func (t *T) Name() string {
	return t.name
}

// Require stops the case when err is not nil.
func (t *T) Require(err error) {
	if err != nil {
		panic(failure{err: err})
	}
}

func (t *T) Fatalf(format string, args ...interface{}) {
	panic(failure{err: errors.Errorf(format, args...)})
}

func (t *T) Logf(format string, args ...interface{}) {
	t.logger.Info().Str("test", t.name).Msgf(format, args...)
}
