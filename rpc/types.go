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

// Package rpc serves a ledger over the JSON-RPC surface of EVM development
// nodes and provides the matching client.
package rpc

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const jsonrpcVersion = "2.0"

// JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
	// CodeServerError is used for ledger failures such as reverts.
	CodeServerError = -32000
)

type Request struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      json.RawMessage   `json:"id,omitempty"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params,omitempty"`
}

type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is a JSON-RPC error object. Clients return it for every error
// response of the server.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return "rpc error " + strconv.Itoa(e.Code) + ": " + e.Message
}

func newError(code int, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: errors.Errorf(format, args...).Error(),
	}
}

// Quantity is an unsigned integer encoded as 0x-prefixed hex. Decoding
// also accepts plain JSON numbers, which some callers send for
// evm_increaseTime.
type Quantity uint64

func (q Quantity) MarshalText() ([]byte, error) {
	return []byte(EncodeQuantity(uint64(q))), nil
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := DecodeQuantity(s)
		if err != nil {
			return err
		}
		*q = Quantity(v)
		return nil
	}

	v, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return errors.Wrapf(err, "invalid quantity %s", data)
	}
	*q = Quantity(v)
	return nil
}

func EncodeQuantity(v uint64) string {
	return "0x" + strconv.FormatUint(v, 16)
}

func DecodeQuantity(s string) (uint64, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return 0, errors.Errorf("quantity %q is missing the 0x prefix", s)
	}
	digits := s[2:]
	if digits == "" {
		return 0, errors.Errorf("quantity %q has no digits", s)
	}
	v, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid quantity %q", s)
	}
	return v, nil
}

// Block is the subset of the block object returned by
// eth_getBlockByNumber.
type Block struct {
	Number       Quantity `json:"number"`
	Timestamp    Quantity `json:"timestamp"`
	Hash         string   `json:"hash"`
	ParentHash   string   `json:"parentHash"`
	Transactions []string `json:"transactions"`
}
