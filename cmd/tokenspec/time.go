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
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/ooeunoo/tokenspec/clock"
	"github.com/ooeunoo/tokenspec/rpc"
)

var rpcURLFlag = &cli.StringFlag{
	Name:    "rpc-url",
	Usage:   "JSON-RPC endpoint of the node",
	Value:   "http://127.0.0.1:8545",
	EnvVars: []string{"TOKENSPEC_RPC_URL"},
}

var timeCmd = &cli.Command{
	Name:  "time",
	Usage: "drive the virtual clock of a JSON-RPC node",
	Flags: []cli.Flag{rpcURLFlag},
	Subcommands: []*cli.Command{
		{
			Name:   "latest",
			Usage:  "print the latest block timestamp",
			Action: withClock(printLatest),
		},
		{
			Name:   "block",
			Usage:  "print the latest block number",
			Action: withClock(printBlock),
		},
		{
			Name:  "mine",
			Usage: "mine one empty block",
			Action: withClock(func(cctx *cli.Context, c *clock.Clock) error {
				if err := c.AdvanceBlock(cctx.Context); err != nil {
					return err
				}
				return printBlock(cctx, c)
			}),
		},
		{
			Name:      "increase",
			Usage:     "move the clock forward and mine a block",
			ArgsUsage: "<seconds>",
			Action: withClock(func(cctx *cli.Context, c *clock.Clock) error {
				seconds, err := uintArg(cctx, "seconds")
				if err != nil {
					return err
				}
				if err := c.Increase(cctx.Context, seconds); err != nil {
					return err
				}
				return printLatest(cctx, c)
			}),
		},
		{
			Name:      "increase-to",
			Usage:     "move the clock to a unix timestamp and mine a block",
			ArgsUsage: "<timestamp>",
			Action: withClock(func(cctx *cli.Context, c *clock.Clock) error {
				target, err := uintArg(cctx, "timestamp")
				if err != nil {
					return err
				}
				if err := c.IncreaseTo(cctx.Context, target); err != nil {
					return err
				}
				return printLatest(cctx, c)
			}),
		},
		{
			Name:      "advance-to",
			Usage:     "mine blocks until the given block number",
			ArgsUsage: "<number>",
			Action: withClock(func(cctx *cli.Context, c *clock.Clock) error {
				target, err := uintArg(cctx, "number")
				if err != nil {
					return err
				}
				if err := c.AdvanceBlockTo(cctx.Context, target); err != nil {
					return err
				}
				return printBlock(cctx, c)
			}),
		},
	},
}

func withClock(action func(cctx *cli.Context, c *clock.Clock) error) cli.ActionFunc {
	return func(cctx *cli.Context) error {
		logger, err := configLogger(cctx)
		if err != nil {
			return err
		}
		client := rpc.NewClient(cctx.String("rpc-url"), rpc.WithClientLogger(logger))
		return action(cctx, clock.New(client, clock.WithLogger(logger)))
	}
}

func uintArg(cctx *cli.Context, name string) (uint64, error) {
	s := cctx.Args().First()
	if s == "" {
		return 0, fmt.Errorf("need to provide %s as an argument", name)
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	return v, nil
}

func printLatest(cctx *cli.Context, c *clock.Clock) error {
	now, err := c.Latest(cctx.Context)
	if err != nil {
		return err
	}
	fmt.Println(now)
	return nil
}

func printBlock(cctx *cli.Context, c *clock.Clock) error {
	number, err := c.LatestBlock(cctx.Context)
	if err != nil {
		return err
	}
	fmt.Println(number)
	return nil
}
