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
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var blocksMined = promauto.NewCounter(prometheus.CounterOpts{
	Name: "tokenspec_ledger_blocks_mined",
	Help: "Number of blocks mined by simulated ledgers",
})

var transactionsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tokenspec_ledger_transactions_processed",
	Help: "Number of transactions processed by simulated ledgers",
}, []string{"status"})

var timeIncreased = promauto.NewCounter(prometheus.CounterOpts{
	Name: "tokenspec_ledger_time_increased_seconds",
	Help: "Total seconds simulated ledgers were moved forward",
})

// CallEntry is one line of the call report.
type CallEntry struct {
	Contract string
	Method   string
	Calls    int
	Reverts  int
}

// CallReport tallies transactions per contract method.
type CallReport struct {
	mu      sync.Mutex
	entries map[[2]string]*CallEntry
}

func newCallReport() *CallReport {
	return &CallReport{
		entries: map[[2]string]*CallEntry{},
	}
}

func (r *CallReport) record(contract, method string, reverted bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := [2]string{contract, method}
	entry, ok := r.entries[key]
	if !ok {
		entry = &CallEntry{
			Contract: contract,
			Method:   method,
		}
		r.entries[key] = entry
	}
	entry.Calls++
	if reverted {
		entry.Reverts++
	}
}

// Entries returns the tally sorted by contract, then method.
func (r *CallReport) Entries() []CallEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]CallEntry, 0, len(r.entries))
	for _, entry := range r.entries {
		entries = append(entries, *entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Contract != entries[j].Contract {
			return entries[i].Contract < entries[j].Contract
		}
		return entries[i].Method < entries[j].Method
	})
	return entries
}
