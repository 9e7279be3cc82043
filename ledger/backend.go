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

package ledger

import (
	"context"

	"github.com/ooeunoo/tokenspec/clock"
)

// ClockBackend exposes the ledger's mining and time primitives to a clock.
func (l *Ledger) ClockBackend() clock.Backend {
	return clockBackend{ledger: l}
}

type clockBackend struct {
	ledger *Ledger
}

var _ clock.Backend = clockBackend{}

func (b clockBackend) Mine(ctx context.Context) error {
	_, err := b.ledger.Mine(ctx)
	return err
}

func (b clockBackend) IncreaseTime(ctx context.Context, seconds uint64) error {
	_, err := b.ledger.IncreaseTime(ctx, seconds)
	return err
}

func (b clockBackend) LatestBlock(ctx context.Context) (clock.Block, error) {
	if err := ctx.Err(); err != nil {
		return clock.Block{}, err
	}
	latest := b.ledger.LatestBlock()
	return clock.Block{
		Number:    latest.Number,
		Timestamp: latest.Timestamp,
	}, nil
}
