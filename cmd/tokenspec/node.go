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
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ooeunoo/tokenspec/ledger"
	"github.com/ooeunoo/tokenspec/rpc"
)

var nodeCmd = &cli.Command{
	Name:  "node",
	Usage: "serve an in-process ledger over JSON-RPC",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "listen",
			Usage:   "address to listen on",
			Value:   "127.0.0.1:8545",
			EnvVars: []string{"TOKENSPEC_LISTEN"},
		},
		&cli.StringFlag{
			Name:  "network",
			Usage: "network to build the ledger from (default: the configured default network)",
		},
	},
	Action: runNode,
}

func runNode(cctx *cli.Context) error {
	logger, err := configLogger(cctx)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cctx)
	if err != nil {
		return err
	}
	network, err := cfg.Network(cctx.String("network"))
	if err != nil {
		return err
	}
	if network.IsRemote() {
		return cli.Exit("cannot serve a remote network", 1)
	}

	opts := append(network.LedgerOptions(), ledger.WithLogger(logger))
	if cfg.Tracer.Enabled {
		opts = append(opts, ledger.WithTracer(ledger.NewTracer(logger)))
	}
	l := ledger.New(opts...)

	for i, account := range l.Accounts() {
		logger.Info().Int("index", i).Str("address", account.Address.Hex()).Msg("account")
	}

	server := rpc.NewServer(l, rpc.WithServerLogger(logger))

	ctx, stop := signal.NotifyContext(cctx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(cctx.String("listen"))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
