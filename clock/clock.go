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

package clock

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultSlowThreshold is the wall-clock time after which AdvanceBlockTo
// warns that it is mining a lot of blocks.
const DefaultSlowThreshold = 5 * time.Second

// Block is the part of a ledger block the clock cares about.
type Block struct {
	Number    uint64
	Timestamp uint64
}

// Backend is the ledger surface driven by the clock:
// mine one block, jump the clock forward, read the latest block.
// Any ledger exposing these three primitives can back a Clock.
type Backend interface {
	Mine(ctx context.Context) error
	IncreaseTime(ctx context.Context, seconds uint64) error
	LatestBlock(ctx context.Context) (Block, error)
}

// Wall reads real time. It is only used to measure how long
// block advancement takes, never to compute ledger time.
type Wall interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

type systemWall struct{}

func (systemWall) Now() time.Time                  { return time.Now() }
func (systemWall) Since(t time.Time) time.Duration { return time.Since(t) }

// Clock moves a ledger's block height and block time forward.
type Clock struct {
	backend       Backend
	wall          Wall
	logger        zerolog.Logger
	slowThreshold time.Duration
}

type Option func(*Clock)

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Clock) {
		c.logger = logger
	}
}

// WithWall replaces the wall clock used for the slow-advance warning.
func WithWall(wall Wall) Option {
	return func(c *Clock) {
		c.wall = wall
	}
}

// WithSlowThreshold sets how long AdvanceBlockTo may run before it warns.
// A zero threshold disables the warning.
func WithSlowThreshold(threshold time.Duration) Option {
	return func(c *Clock) {
		c.slowThreshold = threshold
	}
}

func New(backend Backend, opts ...Option) *Clock {
	c := &Clock{
		backend:       backend,
		wall:          systemWall{},
		logger:        zerolog.Nop(),
		slowThreshold: DefaultSlowThreshold,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LatestBlock returns the current block height.
func (c *Clock) LatestBlock(ctx context.Context) (uint64, error) {
	block, err := c.backend.LatestBlock(ctx)
	if err != nil {
		return 0, err
	}
	return block.Number, nil
}

// Latest returns the timestamp of the current block.
func (c *Clock) Latest(ctx context.Context) (uint64, error) {
	block, err := c.backend.LatestBlock(ctx)
	if err != nil {
		return 0, err
	}
	return block.Timestamp, nil
}

// AdvanceBlock mines exactly one empty block.
func (c *Clock) AdvanceBlock(ctx context.Context) error {
	return c.backend.Mine(ctx)
}

// AdvanceBlockTo mines blocks one at a time until the block height
// reaches target. A target below the current height is rejected
// before anything is mined.
func (c *Clock) AdvanceBlockTo(ctx context.Context, target uint64) error {
	current, err := c.LatestBlock(ctx)
	if err != nil {
		return err
	}
	if target < current {
		return &InvalidTargetError{
			Kind:    TargetBlock,
			Target:  target,
			Current: current,
		}
	}

	start := c.wall.Now()
	notified := false

	for current < target {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !notified && c.slowThreshold > 0 && c.wall.Since(start) >= c.slowThreshold {
			notified = true
			c.logger.Warn().
				Uint64("current", current).
				Uint64("target", target).
				Msg("advancing too many blocks is causing this test to be slow")
		}

		if err := c.backend.Mine(ctx); err != nil {
			return err
		}

		current, err = c.LatestBlock(ctx)
		if err != nil {
			return err
		}
	}

	return nil
}

// Increase jumps the ledger clock forward by the given number of seconds
// and mines a block to commit the new time.
func (c *Clock) Increase(ctx context.Context, seconds uint64) error {
	if err := c.backend.IncreaseTime(ctx, seconds); err != nil {
		return err
	}
	return c.backend.Mine(ctx)
}

// IncreaseTo moves the ledger clock forward so that the latest block
// timestamp is at least target. Moving to the current timestamp is allowed.
func (c *Clock) IncreaseTo(ctx context.Context, target uint64) error {
	now, err := c.Latest(ctx)
	if err != nil {
		return err
	}
	if target < now {
		return &InvalidTargetError{
			Kind:    TargetTime,
			Target:  target,
			Current: now,
		}
	}

	return c.Increase(ctx, target-now)
}
