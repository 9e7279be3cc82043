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

// Package artifacts keeps the registry of deployable contracts and writes
// their ABIs to disk.
package artifacts

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/ooeunoo/tokenspec/contracts"
	"github.com/ooeunoo/tokenspec/contracts/erc721"
	"github.com/ooeunoo/tokenspec/contracts/kip7"
	"github.com/ooeunoo/tokenspec/ledger"
)

var (
	ErrAlreadyRegistered = errors.New("contract already registered")
	ErrNotFound          = errors.New("contract not found")
)

// Factory builds fresh contract code for a deployment.
type Factory func() *contracts.Definition

// Artifact is a registered contract.
type Artifact struct {
	Name       string
	SourceName string
	Factory    Factory
}

// ABI returns the contract ABI.
func (a Artifact) ABI() []contracts.ABIEntry {
	return a.Factory().ABI()
}

type Registry struct {
	mu        sync.RWMutex
	artifacts map[string]Artifact
}

func NewRegistry() *Registry {
	return &Registry{
		artifacts: map[string]Artifact{},
	}
}

// Default returns a registry holding KIP7All and ERC721All.
func Default() *Registry {
	r := NewRegistry()
	r.MustRegister(Artifact{
		Name:       kip7.ContractName,
		SourceName: "contracts/KIP7/KIP7All.sol",
		Factory:    kip7.Definition,
	})
	r.MustRegister(Artifact{
		Name:       erc721.ContractName,
		SourceName: "contracts/ERC721/ERC721All.sol",
		Factory:    erc721.Definition,
	})
	return r
}

func (r *Registry) Register(a Artifact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.artifacts[a.Name]; ok {
		return errors.Wrap(ErrAlreadyRegistered, a.Name)
	}
	if a.Factory == nil {
		return errors.Errorf("contract %s has no factory", a.Name)
	}
	r.artifacts[a.Name] = a
	return nil
}

func (r *Registry) MustRegister(a Artifact) {
	if err := r.Register(a); err != nil {
		panic(err)
	}
}

func (r *Registry) Get(name string) (Artifact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.artifacts[name]
	if !ok {
		return Artifact{}, errors.Wrap(ErrNotFound, name)
	}
	return a, nil
}

// Names returns the registered contract names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.artifacts))
	for name := range r.artifacts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Deploy deploys the named contract signed by signer, the way a contract
// factory obtained by name would.
func (r *Registry) Deploy(
	ctx context.Context,
	backend contracts.Backend,
	signer *ledger.Account,
	name string,
	args ...interface{},
) (*contracts.Bound, *ledger.Receipt, error) {
	a, err := r.Get(name)
	if err != nil {
		return nil, nil, err
	}
	return contracts.Deploy(ctx, backend, signer, a.Factory(), args...)
}
