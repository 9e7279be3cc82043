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

	"github.com/urfave/cli/v2"

	"github.com/ooeunoo/tokenspec/artifacts"
)

var exportABICmd = &cli.Command{
	Name:  "export-abi",
	Usage: "write the ABI of every registered contract as JSON",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "path",
			Usage: "output directory (default: the configured ABI exporter path)",
		},
	},
	Action: func(cctx *cli.Context) error {
		cfg, err := loadConfig(cctx)
		if err != nil {
			return err
		}
		exporter := cfg.AbiExporter
		if path := cctx.String("path"); path != "" {
			exporter.Path = path
		}

		written, err := artifacts.Export(artifacts.Default(), exporter)
		if err != nil {
			return err
		}
		for _, path := range written {
			fmt.Println(path)
		}
		return nil
	},
}
