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

// Package expect provides the assertions used by token scenarios. Every
// assertion returns an error describing the mismatch instead of failing a
// test directly, so the same scenario runs under the harness runner and
// under go test.
package expect

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// ErrAssertion is matched by every assertion failure.
var ErrAssertion = errors.New("assertion failed")

// AssertionError describes a failed expectation.
type AssertionError struct {
	Message string
}

func (e *AssertionError) Error() string {
	return e.Message
}

func (e *AssertionError) Is(target error) bool {
	return target == ErrAssertion
}

func failf(format string, args ...interface{}) error {
	return &AssertionError{Message: fmt.Sprintf(format, args...)}
}

// Equal reports whether got and want are equal by value. Integers of
// any type compare numerically, and structs compare by exported fields.
func Equal(got, want interface{}) error {
	if !equal(got, want) {
		return failf("expected %s to equal %s", format(got), format(want))
	}
	return nil
}

func equal(got, want interface{}) bool {
	return assert.ObjectsAreEqual(normalize(got), normalize(want))
}

func True(got bool) error {
	if !got {
		return failf("expected true, got false")
	}
	return nil
}

func False(got bool) error {
	if got {
		return failf("expected false, got true")
	}
	return nil
}

// format renders v for failure messages.
func format(v interface{}) string {
	switch n := normalize(v).(type) {
	case number:
		return string(n)
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("%v", n)
	}
}

// ValueAssertion checks the result of a read-only call.
type ValueAssertion struct {
	value interface{}
	err   error
}

// Value wraps a call result, typically Value(token.BalanceOf(ctx, a)).
func Value(v interface{}, err error) *ValueAssertion {
	return &ValueAssertion{value: v, err: err}
}

func (a *ValueAssertion) Equal(want interface{}) error {
	if a.err != nil {
		return errors.Wrap(a.err, "call failed")
	}
	return Equal(a.value, want)
}

func (a *ValueAssertion) True() error {
	if a.err != nil {
		return errors.Wrap(a.err, "call failed")
	}
	return Equal(a.value, true)
}

func (a *ValueAssertion) False() error {
	if a.err != nil {
		return errors.Wrap(a.err, "call failed")
	}
	return Equal(a.value, false)
}

// RevertedWith expects the call to revert with reason.
func (a *ValueAssertion) RevertedWith(reason string) error {
	return revertedWith(a.err, reason)
}
