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

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/ooeunoo/tokenspec/artifacts"
	"github.com/ooeunoo/tokenspec/clock"
	"github.com/ooeunoo/tokenspec/config"
	"github.com/ooeunoo/tokenspec/contracts"
	"github.com/ooeunoo/tokenspec/ledger"
)

// ErrRemoteNetwork is returned when scenarios are pointed at a network
// only reachable over JSON-RPC. Scenarios sign and execute transactions
// against an in-process ledger.
var ErrRemoteNetwork = errors.New("remote networks cannot run scenarios")

// Environment is everything a scenario runs against: one ledger, the
// clock driving it, the funded signers and the contract registry.
type Environment struct {
	Name     string
	Network  config.Network
	Config   *config.Config
	Ledger   *ledger.Ledger
	Clock    *clock.Clock
	Registry *artifacts.Registry
	Tracer   *ledger.Tracer
}

// UseEnvironment builds the environment for the named network of cfg.
// The empty name selects the default network.
func UseEnvironment(cfg *config.Config, name string, logger zerolog.Logger) (*Environment, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if name == "" {
		name = cfg.DefaultNetwork
	}

	network, err := cfg.Network(name)
	if err != nil {
		return nil, err
	}
	if network.IsRemote() {
		return nil, errors.Wrapf(ErrRemoteNetwork, "network %q (%s)", name, network.URL)
	}

	tracerLogger := zerolog.Nop()
	if cfg.Tracer.Enabled {
		tracerLogger = logger
	}
	tracer := ledger.NewTracer(tracerLogger)

	opts := append(
		network.LedgerOptions(),
		ledger.WithLogger(logger),
		ledger.WithTracer(tracer),
	)
	l := ledger.New(opts...)

	logger.Debug().
		Str("network", name).
		Uint64("chainId", l.ChainID()).
		Int("accounts", len(l.Accounts())).
		Msg("environment ready")

	return &Environment{
		Name:     name,
		Network:  network,
		Config:   cfg,
		Ledger:   l,
		Clock:    clock.New(l.ClockBackend(), clock.WithLogger(logger)),
		Registry: artifacts.Default(),
		Tracer:   tracer,
	}, nil
}

// Signers returns the funded accounts of the ledger, in derivation order.
func (e *Environment) Signers() []*ledger.Account {
	return e.Ledger.Accounts()
}

// Deploy deploys the named registered contract signed by signer.
func (e *Environment) Deploy(
	ctx context.Context,
	signer *ledger.Account,
	name string,
	args ...interface{},
) (*contracts.Bound, *ledger.Receipt, error) {
	return e.Registry.Deploy(ctx, e.Ledger, signer, name, args...)
}

// NameTag labels address in transaction traces.
func (e *Environment) NameTag(address ledger.Address, name string) {
	e.Tracer.SetNameTag(address, name)
}
