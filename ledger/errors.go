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
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrUnknownAccount   = errors.New("unknown sender account")
	ErrInvalidSignature = errors.New("invalid transaction signature")
	ErrInvalidChainID   = errors.New("invalid chain id")
	ErrNonceMismatch    = errors.New("nonce mismatch")
	ErrNoCode           = errors.New("no contract code at address")
	ErrUnknownMethod    = errors.New("function selector was not recognized")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNoSigner         = errors.New("no signer connected")
)

// RevertError is returned when contract code rejects a transaction or call.
// The ledger discards every state change made before the revert.
type RevertError struct {
	Reason string
}

func (e *RevertError) Error() string {
	return fmt.Sprintf(
		"VM Exception while processing transaction: reverted with reason string '%s'",
		e.Reason,
	)
}

// Revert aborts contract execution with reason.
func Revert(reason string) error {
	return &RevertError{Reason: reason}
}

// RevertReason extracts the revert reason from err, if any.
func RevertReason(err error) (string, bool) {
	var revertErr *RevertError
	if errors.As(err, &revertErr) {
		return revertErr.Reason, true
	}
	return "", false
}
