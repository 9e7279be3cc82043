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
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidTarget is matched by every InvalidTargetError.
var ErrInvalidTarget = errors.New("invalid target")

type TargetKind int

const (
	TargetBlock TargetKind = iota
	TargetTime
)

// InvalidTargetError is returned when a block height or timestamp target
// lies behind the ledger's current position.
type InvalidTargetError struct {
	Kind    TargetKind
	Target  uint64
	Current uint64
}

func (e *InvalidTargetError) Error() string {
	switch e.Kind {
	case TargetTime:
		return fmt.Sprintf(
			"cannot increase current time (%d) to a moment in the past (%d)",
			e.Current,
			e.Target,
		)
	default:
		return fmt.Sprintf(
			"target block #(%d) is lower than current block #(%d)",
			e.Target,
			e.Current,
		)
	}
}

func (e *InvalidTargetError) Is(target error) bool {
	return target == ErrInvalidTarget
}
