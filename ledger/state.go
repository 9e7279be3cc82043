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
	iradix "github.com/hashicorp/go-immutable-radix"
)

// Ledger state lives in an immutable radix tree. Every block keeps the
// root it produced, so rolling back is a matter of picking an older root.
//
//	code/<address>          Code deployed at address
//	nonce/<address>         uint64 transaction count
//	store/<address>/<key>   contract storage

func storageKey(contract Address, key string) []byte {
	return []byte("store/" + contract.Hex() + "/" + key)
}

func codeKey(a Address) []byte {
	return []byte("code/" + a.Hex())
}

func nonceKey(a Address) []byte {
	return []byte("nonce/" + a.Hex())
}

type reader interface {
	Get(k []byte) (interface{}, bool)
}

func loadNonce(r reader, a Address) uint64 {
	v, ok := r.Get(nonceKey(a))
	if !ok {
		return 0
	}
	return v.(uint64)
}

func loadCode(r reader, a Address) Code {
	v, ok := r.Get(codeKey(a))
	if !ok {
		return nil
	}
	return v.(Code)
}

func storeNonce(txn *iradix.Txn, a Address, nonce uint64) {
	txn.Insert(nonceKey(a), nonce)
}

func storeCode(txn *iradix.Txn, a Address, code Code) {
	txn.Insert(codeKey(a), code)
}

// contractAddress derives the address of a contract created by sender
// with the given nonce.
func contractAddress(sender Address, nonce uint64) (a Address) {
	var n [8]byte
	for i := 0; i < 8; i++ {
		n[7-i] = byte(nonce >> (8 * i))
	}
	copy(a[:], Keccak256([]byte("create"), sender[:], n[:])[HashLength-AddressLength:])
	return a
}
