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

package expect

import (
	"fmt"
	"strings"

	"github.com/ooeunoo/tokenspec/ledger"
)

// Addressable is anything with an on-chain address, such as a bound
// contract.
type Addressable interface {
	Address() ledger.Address
}

// TxAssertion checks the outcome of a transaction.
type TxAssertion struct {
	receipt *ledger.Receipt
	err     error
}

// Tx wraps a transaction result, typically Tx(token.Transfer(ctx, to, n)).
func Tx(receipt *ledger.Receipt, err error) *TxAssertion {
	return &TxAssertion{receipt: receipt, err: err}
}

func (a *TxAssertion) Receipt() *ledger.Receipt {
	return a.receipt
}

// Succeed expects the transaction to be mined.
func (a *TxAssertion) Succeed() error {
	if a.err != nil {
		return failf("expected transaction to succeed, but it failed: %v", a.err)
	}
	return nil
}

// Reverted expects the transaction to revert for any reason.
func (a *TxAssertion) Reverted() error {
	if a.err == nil {
		return failf("expected transaction to be reverted, but it didn't revert")
	}
	if _, ok := ledger.RevertReason(a.err); !ok {
		return failf("expected transaction to be reverted, but other exception was thrown: %v", a.err)
	}
	return nil
}

func (a *TxAssertion) RevertedWith(reason string) error {
	return revertedWith(a.err, reason)
}

func revertedWith(err error, reason string) error {
	if err == nil {
		return failf("expected transaction to be reverted with %q, but it didn't revert", reason)
	}
	got, ok := ledger.RevertReason(err)
	if !ok {
		return failf("expected transaction to be reverted with %q, but other exception was thrown: %v", reason, err)
	}
	if got != reason {
		return failf("expected transaction to be reverted with %q, but other reason was found: %q", reason, got)
	}
	return nil
}

// Emit selects the logs named event emitted by emitter.
func (a *TxAssertion) Emit(emitter Addressable, event string) *EventAssertion {
	e := &EventAssertion{
		emitter: emitter.Address(),
		event:   event,
	}
	if a.err != nil {
		e.err = failf("expected event %q to be emitted, but the transaction failed: %v", event, a.err)
		return e
	}
	for _, log := range a.receipt.Logs {
		if log.Address == e.emitter && log.Event == event {
			e.logs = append(e.logs, log)
		}
	}
	if len(e.logs) == 0 {
		e.err = failf("expected event %q to be emitted, but it wasn't", event)
	}
	return e
}

// EventAssertion checks emitted events.
type EventAssertion struct {
	emitter ledger.Address
	event   string
	logs    []*ledger.Log
	err     error
}

// Err reports whether the event was emitted at all.
func (e *EventAssertion) Err() error {
	return e.err
}

// Logs returns the matching logs.
func (e *EventAssertion) Logs() []*ledger.Log {
	return e.logs
}

// WithArgs expects one of the matching logs to carry exactly args.
func (e *EventAssertion) WithArgs(args ...interface{}) error {
	if e.err != nil {
		return e.err
	}

	mismatches := make([]string, 0, len(e.logs))
	for _, log := range e.logs {
		if len(log.Args) != len(args) {
			mismatches = append(mismatches, fmt.Sprintf(
				"expected %d arguments, but event has %d",
				len(args),
				len(log.Args),
			))
			continue
		}
		if equal(log.Args, args) {
			return nil
		}
		mismatches = append(mismatches, fmt.Sprintf(
			"expected arguments %s, but got %s",
			format(args),
			format(log.Args),
		))
	}

	return failf("event %q: %s", e.event, strings.Join(mismatches, "; "))
}
