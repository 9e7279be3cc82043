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

package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ooeunoo/tokenspec/ledger"
)

// ClientVersion is returned by web3_clientVersion.
const ClientVersion = "tokenspec/v0.1.0"

var requestsHandled = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tokenspec_rpc_requests_handled",
	Help: "Number of JSON-RPC requests handled, by method and outcome",
}, []string{"method", "status"})

type handlerFunc func(ctx context.Context, params []json.RawMessage) (interface{}, error)

// Server exposes a ledger's clock and block primitives over JSON-RPC.
type Server struct {
	ledger   *ledger.Ledger
	logger   zerolog.Logger
	echo     *echo.Echo
	handlers map[string]handlerFunc
}

type ServerOption func(*Server)

func WithServerLogger(logger zerolog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

func NewServer(l *ledger.Ledger, opts ...ServerOption) *Server {
	s := &Server{
		ledger: l,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.handlers = map[string]handlerFunc{
		"web3_clientVersion":   s.clientVersion,
		"eth_chainId":          s.chainID,
		"eth_blockNumber":      s.blockNumber,
		"eth_getBlockByNumber": s.blockByNumber,
		"eth_accounts":         s.accounts,
		"evm_mine":             s.mine,
		"evm_increaseTime":     s.increaseTime,
		"evm_snapshot":         s.snapshot,
		"evm_revert":           s.revert,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Debug().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
		}
		s.logger.Warn().Err(err).Int("statusCode", code).Str("path", c.Path()).Msg("HTTP request error")
		_ = c.NoContent(code)
	}

	e.POST("/", s.handleHTTP)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	s.echo = e
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(listen string) error {
	s.logger.Info().Str("listen", listen).Uint64("chainId", s.ledger.ChainID()).Msg("starting JSON-RPC node")
	return s.echo.Start(listen)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHTTP(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()

	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var batch []json.RawMessage
		if err := json.Unmarshal(body, &batch); err != nil {
			return c.JSON(http.StatusOK, errorResponse(nil, newError(CodeParseError, "parse error: %v", err)))
		}
		if len(batch) == 0 {
			return c.JSON(http.StatusOK, errorResponse(nil, newError(CodeInvalidRequest, "empty batch")))
		}
		responses := make([]*Response, 0, len(batch))
		for _, raw := range batch {
			responses = append(responses, s.handleMessage(ctx, raw))
		}
		return c.JSON(http.StatusOK, responses)
	}

	return c.JSON(http.StatusOK, s.handleMessage(ctx, body))
}

func (s *Server) handleMessage(ctx context.Context, raw json.RawMessage) *Response {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return errorResponse(nil, newError(CodeParseError, "parse error: %v", err))
	}
	if req.JSONRPC != jsonrpcVersion || req.Method == "" {
		return errorResponse(req.ID, newError(CodeInvalidRequest, "invalid request"))
	}

	handler, ok := s.handlers[req.Method]
	if !ok {
		requestsHandled.WithLabelValues("unknown", "error").Inc()
		return errorResponse(req.ID, newError(CodeMethodNotFound, "the method %s does not exist/is not available", req.Method))
	}

	result, err := handler(ctx, req.Params)
	if err != nil {
		requestsHandled.WithLabelValues(req.Method, "error").Inc()
		rpcErr, ok := err.(*Error)
		if !ok {
			rpcErr = &Error{Code: CodeServerError, Message: err.Error()}
		}
		s.logger.Debug().Err(err).Str("method", req.Method).Msg("request failed")
		return errorResponse(req.ID, rpcErr)
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		requestsHandled.WithLabelValues(req.Method, "error").Inc()
		return errorResponse(req.ID, newError(CodeInternalError, "failed to encode result: %v", err))
	}

	requestsHandled.WithLabelValues(req.Method, "ok").Inc()
	return &Response{
		JSONRPC: jsonrpcVersion,
		ID:      req.ID,
		Result:  encoded,
	}
}

func errorResponse(id json.RawMessage, err *Error) *Response {
	if id == nil {
		id = json.RawMessage("null")
	}
	return &Response{
		JSONRPC: jsonrpcVersion,
		ID:      id,
		Error:   err,
	}
}

func param(params []json.RawMessage, i int, v interface{}) error {
	if i >= len(params) {
		return newError(CodeInvalidParams, "missing value for required argument %d", i)
	}
	if err := json.Unmarshal(params[i], v); err != nil {
		return newError(CodeInvalidParams, "invalid argument %d: %v", i, err)
	}
	return nil
}

func (s *Server) clientVersion(context.Context, []json.RawMessage) (interface{}, error) {
	return ClientVersion, nil
}

func (s *Server) chainID(context.Context, []json.RawMessage) (interface{}, error) {
	return Quantity(s.ledger.ChainID()), nil
}

func (s *Server) blockNumber(context.Context, []json.RawMessage) (interface{}, error) {
	return Quantity(s.ledger.LatestBlock().Number), nil
}

func (s *Server) blockByNumber(_ context.Context, params []json.RawMessage) (interface{}, error) {
	var tag string
	if err := param(params, 0, &tag); err != nil {
		return nil, err
	}

	var block *ledger.Block
	switch tag {
	case "latest", "pending", "safe", "finalized":
		block = s.ledger.LatestBlock()
	case "earliest":
		block, _ = s.ledger.BlockByNumber(0)
	default:
		number, err := DecodeQuantity(tag)
		if err != nil {
			return nil, newError(CodeInvalidParams, "invalid block tag: %v", err)
		}
		found, ok := s.ledger.BlockByNumber(number)
		if !ok {
			// Unknown blocks are a null result, not an error.
			return nil, nil
		}
		block = found
	}

	return encodeBlock(block), nil
}

func encodeBlock(b *ledger.Block) *Block {
	txs := make([]string, 0, len(b.Receipts))
	for _, receipt := range b.Receipts {
		txs = append(txs, receipt.TxHash.Hex())
	}
	return &Block{
		Number:       Quantity(b.Number),
		Timestamp:    Quantity(b.Timestamp),
		Hash:         b.Hash.Hex(),
		ParentHash:   b.ParentHash.Hex(),
		Transactions: txs,
	}
}

func (s *Server) accounts(context.Context, []json.RawMessage) (interface{}, error) {
	accounts := s.ledger.Accounts()
	addresses := make([]ledger.Address, 0, len(accounts))
	for _, account := range accounts {
		addresses = append(addresses, account.Address)
	}
	return addresses, nil
}

func (s *Server) mine(ctx context.Context, _ []json.RawMessage) (interface{}, error) {
	if _, err := s.ledger.Mine(ctx); err != nil {
		return nil, err
	}
	return "0x0", nil
}

func (s *Server) increaseTime(ctx context.Context, params []json.RawMessage) (interface{}, error) {
	var seconds Quantity
	if err := param(params, 0, &seconds); err != nil {
		return nil, err
	}
	total, err := s.ledger.IncreaseTime(ctx, uint64(seconds))
	if err != nil {
		return nil, err
	}
	return total, nil
}

func (s *Server) snapshot(context.Context, []json.RawMessage) (interface{}, error) {
	return Quantity(s.ledger.Snapshot()), nil
}

func (s *Server) revert(_ context.Context, params []json.RawMessage) (interface{}, error) {
	var id Quantity
	if err := param(params, 0, &id); err != nil {
		return nil, err
	}
	return s.ledger.Revert(uint64(id)), nil
}
