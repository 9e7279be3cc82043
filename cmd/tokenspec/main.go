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
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/ooeunoo/tokenspec/config"
)

func main() {
	app := cli.App{
		Name:  "tokenspec",
		Usage: "run token contract scenarios against a simulated ledger",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "env-file",
				Usage:   "dotenv files with TOKENSPEC_* settings (default: .env when present)",
				EnvVars: []string{"TOKENSPEC_ENV_FILE"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log verbosity (trace, debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"TOKENSPEC_LOG_LEVEL"},
			},
		},
	}
	app.Commands = []*cli.Command{
		testCmd,
		nodeCmd,
		timeCmd,
		exportABICmd,
	}
	app.RunAndExitOnError()
}

func configLogger(cctx *cli.Context) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cctx.String("log-level"))
	if err != nil {
		return zerolog.Logger{}, err
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger(), nil
}

func loadConfig(cctx *cli.Context) (*config.Config, error) {
	return config.Load(cctx.StringSlice("env-file")...)
}
