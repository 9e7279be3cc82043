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

package harness

import (
	"sync"

	"github.com/rs/zerolog"
)

// logCollectionHook can be attached to zerolog.Logger objects, in order
// to aggregate the log messages of an environment in a string slice,
// containing only the message.
type logCollectionHook struct {
	mu   sync.Mutex
	logs []string
}

var _ zerolog.Hook = &logCollectionHook{}

func newLogCollectionHook() *logCollectionHook {
	return &logCollectionHook{
		logs: make([]string, 0),
	}
}

func (h *logCollectionHook) Run(_ *zerolog.Event, level zerolog.Level, msg string) {
	if level == zerolog.NoLevel || msg == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.logs = append(h.logs, msg)
}

func (h *logCollectionHook) Logs() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	logs := make([]string, len(h.logs))
	copy(logs, h.logs)
	return logs
}
