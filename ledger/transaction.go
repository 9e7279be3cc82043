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
	"encoding/json"

	"github.com/pkg/errors"
)

// Transaction is a signed request to execute a contract method.
// A transaction whose To is the zero address deploys a contract.
type Transaction struct {
	ChainID   uint64
	From      Address
	To        Address
	Nonce     uint64
	Method    string
	Args      []interface{}
	Signature []byte

	// code is the contract deployed by a deployment transaction.
	code Code
}

type signingPayload struct {
	ChainID uint64        `json:"chainId"`
	From    Address       `json:"from"`
	To      Address       `json:"to"`
	Nonce   uint64        `json:"nonce"`
	Method  string        `json:"method"`
	Args    []interface{} `json:"args"`
}

// IsDeployment reports whether the transaction creates a contract.
func (tx *Transaction) IsDeployment() bool {
	return tx.To.IsZero()
}

// SigningHash is the digest covered by the signature.
func (tx *Transaction) SigningHash() (Hash, error) {
	payload, err := json.Marshal(signingPayload{
		ChainID: tx.ChainID,
		From:    tx.From,
		To:      tx.To,
		Nonce:   tx.Nonce,
		Method:  tx.Method,
		Args:    tx.Args,
	})
	if err != nil {
		return Hash{}, errors.Wrap(err, "failed to encode transaction")
	}
	return Keccak256Hash(payload), nil
}

// Hash identifies a signed transaction.
func (tx *Transaction) Hash() Hash {
	signing, err := tx.SigningHash()
	if err != nil {
		return Hash{}
	}
	return Keccak256Hash(signing[:], tx.Signature)
}

// Log is an event emitted by a contract.
type Log struct {
	Address     Address
	Event       string
	Args        []interface{}
	BlockNumber uint64
	TxHash      Hash
	Index       uint
}

// Receipt describes the outcome of an executed transaction.
type Receipt struct {
	TxHash          Hash
	BlockNumber     uint64
	BlockTimestamp  uint64
	From            Address
	To              Address
	ContractAddress Address
	Method          string
	Logs            []*Log
	Return          interface{}
}
