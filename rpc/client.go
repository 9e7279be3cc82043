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
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/ooeunoo/tokenspec/clock"
	"github.com/ooeunoo/tokenspec/ledger"
)

// leveledZerolog adapts zerolog to retryablehttp.LeveledLogger.
type leveledZerolog struct {
	inner zerolog.Logger
}

var _ retryablehttp.LeveledLogger = leveledZerolog{}

// re-writes HTTP client ERROR to WARN level (because of retries)
func (l leveledZerolog) Error(msg string, keysAndValues ...interface{}) {
	l.inner.Warn().Fields(keysAndValues).Msg(msg)
}

func (l leveledZerolog) Warn(msg string, keysAndValues ...interface{}) {
	l.inner.Warn().Fields(keysAndValues).Msg(msg)
}

func (l leveledZerolog) Info(msg string, keysAndValues ...interface{}) {
	l.inner.Info().Fields(keysAndValues).Msg(msg)
}

func (l leveledZerolog) Debug(msg string, keysAndValues ...interface{}) {
	l.inner.Debug().Fields(keysAndValues).Msg(msg)
}

// mutating lists the methods that change node state. They are sent once,
// since a retry after a lost response would apply them twice.
var mutating = map[string]bool{
	"evm_mine":         true,
	"evm_increaseTime": true,
	"evm_snapshot":     true,
	"evm_revert":       true,
}

type methodKey struct{}

// checkRetry applies the default retry policy to read-only methods.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if method, _ := ctx.Value(methodKey{}).(string); mutating[method] {
		return false, ctx.Err()
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// Client talks to a JSON-RPC node. It implements clock.Backend, so a clock
// can drive a remote ledger.
type Client struct {
	url    string
	http   *retryablehttp.Client
	logger zerolog.Logger
	nextID atomic.Uint64
}

var _ clock.Backend = &Client{}

type ClientOption func(*Client)

func WithClientLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
		c.http.Logger = retryablehttp.LeveledLogger(leveledZerolog{inner: logger})
	}
}

// WithMaxRetries sets the maximum number of retries for the HTTP client.
func WithMaxRetries(maxRetries int) ClientOption {
	return func(c *Client) {
		c.http.RetryMax = maxRetries
	}
}

// WithRetryWait sets the minimum and maximum wait time between retries.
func WithRetryWait(waitMin, waitMax time.Duration) ClientOption {
	return func(c *Client) {
		c.http.RetryWaitMin = waitMin
		c.http.RetryWaitMax = waitMax
	}
}

// WithTimeout bounds every HTTP attempt.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.http.HTTPClient.Timeout = timeout
	}
}

// NewClient returns a client for the node at url. Read-only calls are
// retried on connection errors and 5xx statuses (except 501), and
// intermediate failures are logged at WARN level.
func NewClient(url string, opts ...ClientOption) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 100 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.HTTPClient.Timeout = 20 * time.Second
	retryClient.Logger = retryablehttp.LeveledLogger(leveledZerolog{inner: zerolog.Nop()})
	retryClient.CheckRetry = checkRetry

	c := &Client{
		url:    url,
		http:   retryClient,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Call invokes method with params and decodes the result into result,
// which may be nil. JSON-RPC error responses are returned as *Error.
func (c *Client) Call(ctx context.Context, result interface{}, method string, params ...interface{}) error {
	if params == nil {
		params = []interface{}{}
	}
	id := c.nextID.Add(1)

	body, err := json.Marshal(map[string]interface{}{
		"jsonrpc": jsonrpcVersion,
		"id":      id,
		"method":  method,
		"params":  params,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s request", method)
	}

	ctx = context.WithValue(ctx, methodKey{}, method)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s request", method)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s request failed", method)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("%s request failed with HTTP status %d", method, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s response", method)
	}

	var response Response
	if err := json.Unmarshal(raw, &response); err != nil {
		return errors.Wrapf(err, "failed to decode %s response", method)
	}
	if response.Error != nil {
		return response.Error
	}

	c.logger.Debug().Str("method", method).Uint64("id", id).Msg("rpc call")

	if result == nil || len(response.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(response.Result, result); err != nil {
		return errors.Wrapf(err, "failed to decode %s result", method)
	}
	return nil
}

func (c *Client) ClientVersion(ctx context.Context) (string, error) {
	var version string
	err := c.Call(ctx, &version, "web3_clientVersion")
	return version, err
}

func (c *Client) ChainID(ctx context.Context) (uint64, error) {
	var id Quantity
	err := c.Call(ctx, &id, "eth_chainId")
	return uint64(id), err
}

func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	var number Quantity
	err := c.Call(ctx, &number, "eth_blockNumber")
	return uint64(number), err
}

// BlockByNumber returns the block with the given number or tag, such as
// "latest". A missing block is returned as nil.
func (c *Client) BlockByNumber(ctx context.Context, tag string) (*Block, error) {
	var block *Block
	err := c.Call(ctx, &block, "eth_getBlockByNumber", tag, false)
	return block, err
}

func (c *Client) Accounts(ctx context.Context) ([]ledger.Address, error) {
	var hexes []string
	if err := c.Call(ctx, &hexes, "eth_accounts"); err != nil {
		return nil, err
	}
	addresses := make([]ledger.Address, 0, len(hexes))
	for _, h := range hexes {
		a, err := ledger.ParseAddress(h)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return addresses, nil
}

func (c *Client) Mine(ctx context.Context) error {
	return c.Call(ctx, nil, "evm_mine")
}

func (c *Client) IncreaseTime(ctx context.Context, seconds uint64) error {
	return c.Call(ctx, nil, "evm_increaseTime", seconds)
}

func (c *Client) LatestBlock(ctx context.Context) (clock.Block, error) {
	block, err := c.BlockByNumber(ctx, "latest")
	if err != nil {
		return clock.Block{}, err
	}
	if block == nil {
		return clock.Block{}, errors.New("node returned no latest block")
	}
	return clock.Block{
		Number:    uint64(block.Number),
		Timestamp: uint64(block.Timestamp),
	}, nil
}

func (c *Client) Snapshot(ctx context.Context) (uint64, error) {
	var id Quantity
	err := c.Call(ctx, &id, "evm_snapshot")
	return uint64(id), err
}

func (c *Client) Revert(ctx context.Context, id uint64) (bool, error) {
	var ok bool
	err := c.Call(ctx, &ok, "evm_revert", EncodeQuantity(id))
	return ok, err
}
