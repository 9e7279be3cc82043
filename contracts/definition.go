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

// Package contracts provides the building blocks for contract code run by
// the simulated ledger: method tables with ABI metadata, typed bindings and
// the Ownable and Pausable extensions shared by the token contracts.
package contracts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/ooeunoo/tokenspec/ledger"
)

type Mutability string

const (
	View       Mutability = "view"
	Pure       Mutability = "pure"
	Nonpayable Mutability = "nonpayable"
)

// Arg is a named, ABI-typed method input or output.
type Arg struct {
	Name string
	Type string
}

type MethodFunc func(c *ledger.Context, args ledger.Args) (interface{}, error)

type ConstructorFunc func(c *ledger.Context, args ledger.Args) error

type Method struct {
	Name       string
	Inputs     []Arg
	Outputs    []Arg
	Mutability Mutability
	Fn         MethodFunc
}

// Signature returns the canonical signature, e.g. "transfer(address,uint256)".
func (m Method) Signature() string {
	return signature(m.Name, argTypes(m.Inputs))
}

// Selector returns the first four bytes of the keccak256 of the signature.
func (m Method) Selector() [4]byte {
	var selector [4]byte
	copy(selector[:], ledger.Keccak256([]byte(m.Signature())))
	return selector
}

type EventArg struct {
	Name    string
	Type    string
	Indexed bool
}

type Event struct {
	Name   string
	Inputs []EventArg
}

func (e Event) Signature() string {
	types := make([]string, 0, len(e.Inputs))
	for _, input := range e.Inputs {
		types = append(types, input.Type)
	}
	return signature(e.Name, types)
}

// Topic returns the keccak256 of the event signature.
func (e Event) Topic() ledger.Hash {
	return ledger.Keccak256Hash([]byte(e.Signature()))
}

func signature(name string, types []string) string {
	return fmt.Sprintf("%s(%s)", name, strings.Join(types, ","))
}

func argTypes(args []Arg) []string {
	types := make([]string, 0, len(args))
	for _, arg := range args {
		types = append(types, arg.Type)
	}
	return types
}

// Definition is contract code assembled from a method table.
// It implements ledger.Code.
type Definition struct {
	name string

	constructorInputs []Arg
	constructor       ConstructorFunc

	methods    []*Method
	bySig      map[string]*Method
	byName     map[string][]*Method
	events     []Event
	eventNames map[string]struct{}
}

var _ ledger.Code = &Definition{}

func NewDefinition(name string) *Definition {
	return &Definition{
		name:       name,
		bySig:      map[string]*Method{},
		byName:     map[string][]*Method{},
		eventNames: map[string]struct{}{},
	}
}

func (d *Definition) Name() string {
	return d.name
}

func (d *Definition) Constructor(inputs []Arg, fn ConstructorFunc) *Definition {
	d.constructorInputs = inputs
	d.constructor = fn
	return d
}

// Method registers methods. Overloads are allowed as long as their
// signatures differ. Registering a signature twice panics.
func (d *Definition) Method(methods ...Method) *Definition {
	for _, m := range methods {
		m := m
		sig := m.Signature()
		if _, ok := d.bySig[sig]; ok {
			panic(fmt.Sprintf("%s: method %s registered twice", d.name, sig))
		}
		if m.Mutability == "" {
			m.Mutability = Nonpayable
		}
		d.methods = append(d.methods, &m)
		d.bySig[sig] = &m
		d.byName[m.Name] = append(d.byName[m.Name], &m)
	}
	return d
}

func (d *Definition) Event(events ...Event) *Definition {
	for _, e := range events {
		if _, ok := d.eventNames[e.Name]; ok {
			panic(fmt.Sprintf("%s: event %s registered twice", d.name, e.Name))
		}
		d.eventNames[e.Name] = struct{}{}
		d.events = append(d.events, e)
	}
	return d
}

// Methods returns the registered methods in registration order.
func (d *Definition) Methods() []Method {
	methods := make([]Method, 0, len(d.methods))
	for _, m := range d.methods {
		methods = append(methods, *m)
	}
	return methods
}

func (d *Definition) Events() []Event {
	events := make([]Event, len(d.events))
	copy(events, d.events)
	return events
}

// Lookup resolves a method by full signature or, when it is not
// overloaded, by name.
func (d *Definition) Lookup(method string) (Method, bool) {
	m, err := d.resolve(method, -1)
	if err != nil {
		return Method{}, false
	}
	return *m, true
}

func (d *Definition) resolve(method string, arity int) (*Method, error) {
	if strings.Contains(method, "(") {
		m, ok := d.bySig[method]
		if !ok {
			return nil, errors.Wrapf(ledger.ErrUnknownMethod, "%s.%s", d.name, method)
		}
		return m, nil
	}

	candidates := d.byName[method]
	switch {
	case len(candidates) == 0:
		return nil, errors.Wrapf(ledger.ErrUnknownMethod, "%s.%s", d.name, method)
	case len(candidates) == 1:
		return candidates[0], nil
	}

	for _, m := range candidates {
		if len(m.Inputs) == arity {
			return m, nil
		}
	}

	sigs := make([]string, 0, len(candidates))
	for _, m := range candidates {
		sigs = append(sigs, m.Signature())
	}
	sort.Strings(sigs)
	return nil, errors.Wrapf(
		ledger.ErrUnknownMethod,
		"%s.%s is ambiguous: %s",
		d.name,
		method,
		strings.Join(sigs, ", "),
	)
}

func (d *Definition) Construct(c *ledger.Context, args ledger.Args) error {
	if err := checkArity(d.name, "constructor", d.constructorInputs, args); err != nil {
		return err
	}
	if d.constructor == nil {
		return nil
	}
	return d.constructor(c, args)
}

func (d *Definition) Invoke(c *ledger.Context, method string, args ledger.Args) (interface{}, error) {
	m, err := d.resolve(method, len(args))
	if err != nil {
		return nil, err
	}
	if err := checkArity(d.name, m.Name, m.Inputs, args); err != nil {
		return nil, err
	}
	return m.Fn(c, args)
}

func checkArity(contract, method string, inputs []Arg, args ledger.Args) error {
	if len(args) != len(inputs) {
		return errors.Wrapf(
			ledger.ErrInvalidArgument,
			"%s.%s: expected %d arguments, got %d",
			contract,
			method,
			len(inputs),
			len(args),
		)
	}
	return nil
}
