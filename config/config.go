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

// Package config holds the static project configuration: networks the
// harness can run against, compiler settings recorded in exported
// artifacts, and the reporter, ABI exporter and tracer switches.
package config

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/ooeunoo/tokenspec/ledger"
)

const (
	DefaultNetwork = "hardhat"
	DefaultEnvFile = ".env"
	EnvPrefix      = "TOKENSPEC_"
)

// Network describes a ledger. A network with a URL is remote and only
// reachable through JSON-RPC; otherwise an in-process ledger is built.
type Network struct {
	ChainID       uint64
	Accounts      int
	Seed          string
	BlockInterval uint64
	GenesisTime   uint64
	URL           string
}

func (n Network) IsRemote() bool {
	return n.URL != ""
}

// LedgerOptions returns the options building an in-process ledger for n.
func (n Network) LedgerOptions() []ledger.Option {
	return []ledger.Option{
		ledger.WithChainID(n.ChainID),
		ledger.WithAccounts(n.Accounts, n.Seed),
		ledger.WithBlockInterval(n.BlockInterval),
		ledger.WithGenesisTime(n.GenesisTime),
	}
}

type Optimizer struct {
	Enabled bool
	Runs    int
}

type Compiler struct {
	Version   string
	Optimizer Optimizer
}

// Reporter controls the per-method call report printed after a run.
type Reporter struct {
	Enabled bool
}

// AbiExporter controls where and how contract ABIs are written.
type AbiExporter struct {
	Path    string
	Clear   bool
	Flat    bool
	Spacing int
}

type Tracer struct {
	Enabled bool
}

type Config struct {
	DefaultNetwork string
	Networks       map[string]Network
	Compiler       Compiler
	Reporter       Reporter
	AbiExporter    AbiExporter
	Tracer         Tracer
}

func Default() *Config {
	return &Config{
		DefaultNetwork: DefaultNetwork,
		Networks: map[string]Network{
			DefaultNetwork: {
				ChainID:       ledger.DefaultChainID,
				Accounts:      ledger.DefaultAccounts,
				Seed:          ledger.DefaultSeed,
				BlockInterval: ledger.DefaultBlockInterval,
			},
		},
		Compiler: Compiler{
			Version: "0.8.1",
			Optimizer: Optimizer{
				Enabled: true,
				Runs:    200,
			},
		},
		Reporter: Reporter{
			Enabled: true,
		},
		AbiExporter: AbiExporter{
			Path:    "abis",
			Clear:   true,
			Flat:    true,
			Spacing: 2,
		},
		Tracer: Tracer{
			Enabled: true,
		},
	}
}

// Load returns the default configuration with TOKENSPEC_* overrides
// applied. Variables are read from envFiles, or from .env when it exists
// and no file is given. Variables already set in the process environment
// take precedence over the files.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		if _, err := os.Stat(DefaultEnvFile); err == nil {
			envFiles = []string{DefaultEnvFile}
		}
	}

	env := map[string]string{}
	if len(envFiles) > 0 {
		fileEnv, err := godotenv.Read(envFiles...)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read env files")
		}
		env = fileEnv
	}
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(key, EnvPrefix) {
			env[key] = value
		}
	}

	cfg := Default()
	if err := cfg.Apply(env); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply applies TOKENSPEC_* variables to c. Network settings apply to the
// selected default network.
func (c *Config) Apply(env map[string]string) error {
	if name, ok := env[EnvPrefix+"NETWORK"]; ok && name != "" {
		c.DefaultNetwork = name
	}

	network := c.Networks[c.DefaultNetwork]
	if network.Seed == "" {
		network = c.Networks[DefaultNetwork]
	}

	uints := map[string]*uint64{
		"CHAIN_ID":       &network.ChainID,
		"BLOCK_INTERVAL": &network.BlockInterval,
		"GENESIS_TIME":   &network.GenesisTime,
	}
	for _, suffix := range sortedKeys(uints) {
		value, ok := env[EnvPrefix+suffix]
		if !ok {
			continue
		}
		parsed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid %s%s", EnvPrefix, suffix)
		}
		*uints[suffix] = parsed
	}

	if value, ok := env[EnvPrefix+"ACCOUNTS"]; ok {
		accounts, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrapf(err, "invalid %sACCOUNTS", EnvPrefix)
		}
		network.Accounts = accounts
	}
	if value, ok := env[EnvPrefix+"SEED"]; ok {
		network.Seed = value
	}
	if value, ok := env[EnvPrefix+"RPC_URL"]; ok {
		network.URL = value
	}

	c.Networks[c.DefaultNetwork] = network

	bools := map[string]*bool{
		"REPORTER":  &c.Reporter.Enabled,
		"TRACER":    &c.Tracer.Enabled,
		"ABI_CLEAR": &c.AbiExporter.Clear,
		"ABI_FLAT":  &c.AbiExporter.Flat,
		"OPTIMIZER": &c.Compiler.Optimizer.Enabled,
	}
	for _, suffix := range sortedKeys(bools) {
		value, ok := env[EnvPrefix+suffix]
		if !ok {
			continue
		}
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Wrapf(err, "invalid %s%s", EnvPrefix, suffix)
		}
		*bools[suffix] = parsed
	}

	if value, ok := env[EnvPrefix+"ABI_PATH"]; ok {
		c.AbiExporter.Path = value
	}

	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (c *Config) Validate() error {
	network, ok := c.Networks[c.DefaultNetwork]
	if !ok {
		return errors.Errorf("default network %q is not configured", c.DefaultNetwork)
	}
	if !network.IsRemote() && network.Accounts < 1 {
		return errors.Errorf("network %q needs at least one account", c.DefaultNetwork)
	}
	if c.AbiExporter.Path == "" {
		return errors.New("ABI exporter path is empty")
	}
	if c.AbiExporter.Spacing < 0 {
		return errors.New("ABI exporter spacing is negative")
	}
	return nil
}

// Network returns the named network. The empty name selects the default.
func (c *Config) Network(name string) (Network, error) {
	if name == "" {
		name = c.DefaultNetwork
	}
	network, ok := c.Networks[name]
	if !ok {
		return Network{}, errors.Errorf("unknown network %q", name)
	}
	return network, nil
}
