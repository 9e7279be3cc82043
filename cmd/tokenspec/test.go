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

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"github.com/xlab/treeprint"

	"github.com/ooeunoo/tokenspec/harness"
	"github.com/ooeunoo/tokenspec/specs"
)

var testCmd = &cli.Command{
	Name:  "test",
	Usage: "run the scenario suites and print the results",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "suite",
			Usage: "suite to run: kip7, erc721 or all",
			Value: "all",
		},
		&cli.Int64Flag{
			Name:  "seed",
			Usage: "shuffle cases within each suite with this seed (0 keeps declaration order)",
		},
		&cli.StringFlag{
			Name:  "run",
			Usage: "only run cases whose full name matches this regular expression",
		},
		&cli.StringFlag{
			Name:  "network",
			Usage: "network to run against (default: the configured default network)",
		},
	},
	Action: runTest,
}

func selectSuites(name string) ([]*harness.Suite, error) {
	switch strings.ToLower(name) {
	case "kip7":
		return []*harness.Suite{specs.KIP7(specs.KIP7Options{})}, nil
	case "erc721":
		return []*harness.Suite{specs.ERC721(specs.ERC721Options{})}, nil
	case "all", "":
		return []*harness.Suite{
			specs.KIP7(specs.KIP7Options{}),
			specs.ERC721(specs.ERC721Options{}),
		}, nil
	default:
		return nil, fmt.Errorf("unknown suite %q", name)
	}
}

func runTest(cctx *cli.Context) error {
	ctx := cctx.Context

	logger, err := configLogger(cctx)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cctx)
	if err != nil {
		return err
	}
	suites, err := selectSuites(cctx.String("suite"))
	if err != nil {
		return err
	}

	runner := harness.NewRunner().
		WithLogger(logger).
		WithConfig(cfg).
		WithNetwork(cctx.String("network")).
		WithRandomSeed(cctx.Int64("seed")).
		WithFilter(cctx.String("run"))

	failed := 0
	for _, suite := range suites {
		results, err := runner.RunTests(ctx, suite)
		if err != nil {
			return err
		}

		fmt.Println(resultTree(suite.Name, results).String())

		for _, result := range results.Failed() {
			fmt.Println(harness.PrettyPrintResult(result.FullName(), result.Error))
		}
		failed += len(results.Failed())
	}

	if cfg.Reporter.Enabled {
		env, err := runner.Environment()
		if err != nil {
			return err
		}
		printCallReport(env)
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d test(s) failed", failed), 1)
	}
	return nil
}

// resultTree nests every result under its enclosing suites.
func resultTree(root string, results harness.Results) treeprint.Tree {
	tree := treeprint.NewWithRoot(root)
	branches := map[string]treeprint.Tree{}

	for _, result := range results {
		parent := tree
		// The outermost suite is the root.
		for i := 1; i < len(result.Path); i++ {
			key := strings.Join(result.Path[:i+1], "/")
			branch, ok := branches[key]
			if !ok {
				branch = parent.AddBranch(result.Path[i])
				branches[key] = branch
			}
			parent = branch
		}

		status := "PASS"
		if result.Error != nil {
			status = "FAIL"
		}
		parent.AddMetaNode(status, result.TestName)
	}
	return tree
}

func printCallReport(env *harness.Environment) {
	entries := env.Ledger.CallReport().Entries()
	if len(entries) == 0 {
		return
	}

	fmt.Fprintln(os.Stdout, "Call report:")
	for _, entry := range entries {
		fmt.Fprintf(os.Stdout, "  %-16s %-24s calls=%-5d reverts=%d\n", entry.Contract, entry.Method, entry.Calls, entry.Reverts)
	}
}
