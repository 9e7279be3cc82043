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
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Tracer logs every executed transaction, printing known addresses
// by their name tag ("Owner", "User1", "Contract", ...).
type Tracer struct {
	mu       sync.RWMutex
	logger   zerolog.Logger
	nameTags map[Address]string
}

func NewTracer(logger zerolog.Logger) *Tracer {
	return &Tracer{
		logger:   logger,
		nameTags: map[Address]string{},
	}
}

func (t *Tracer) SetNameTag(a Address, name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nameTags[a] = name
}

// NameTag returns the tag of a, or its hex form when it has none.
func (t *Tracer) NameTag(a Address) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if name, ok := t.nameTags[a]; ok {
		return name
	}
	return a.Hex()
}

// FormatArgs renders event or call arguments using name tags.
func (t *Tracer) FormatArgs(args []interface{}) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, t.formatArg(arg))
	}
	return strings.Join(parts, ", ")
}

func (t *Tracer) formatArg(arg interface{}) string {
	switch v := arg.(type) {
	case Address:
		return t.NameTag(v)
	case *big.Int:
		return v.String()
	case [32]byte:
		return "0x" + hex.EncodeToString(v[:])
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprint(v)
	}
}

func (t *Tracer) traceTransaction(tx *Transaction, receipt *Receipt, err error) {
	to := "CREATE"
	if !tx.IsDeployment() {
		to = t.NameTag(tx.To)
	}

	if err != nil {
		event := t.logger.Debug()
		if reason, ok := RevertReason(err); ok {
			event = event.Str("revert", reason)
		} else {
			event = event.Err(err)
		}
		event.
			Str("from", t.NameTag(tx.From)).
			Str("to", to).
			Str("method", tx.Method).
			Str("args", t.FormatArgs(tx.Args)).
			Msg("transaction failed")
		return
	}

	t.logger.Debug().
		Uint64("block", receipt.BlockNumber).
		Str("from", t.NameTag(tx.From)).
		Str("to", to).
		Str("method", tx.Method).
		Str("args", t.FormatArgs(tx.Args)).
		Msg("transaction")

	for _, log := range receipt.Logs {
		t.logger.Debug().
			Str("contract", t.NameTag(log.Address)).
			Str("event", log.Event).
			Str("args", t.FormatArgs(log.Args)).
			Msg("event")
	}
}
