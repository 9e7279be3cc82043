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
	"crypto/ecdsa"
	"encoding/binary"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// Account is a secp256k1 key pair able to sign transactions. Its address
// is derived from the public key as on Ethereum.
type Account struct {
	Address Address
	key     *ecdsa.PrivateKey
}

// NewAccount derives an account deterministically from seed.
func NewAccount(seed []byte) *Account {
	digest := Keccak256(seed)
	for {
		key, err := crypto.ToECDSA(digest)
		if err == nil {
			return AccountFromKey(key)
		}
		// Out of curve range, rehash.
		digest = Keccak256(digest)
	}
}

// AccountFromKey wraps an existing private key.
func AccountFromKey(key *ecdsa.PrivateKey) *Account {
	return &Account{
		Address: Address(crypto.PubkeyToAddress(key.PublicKey)),
		key:     key,
	}
}

// DeriveAccounts derives n accounts from a shared seed phrase.
func DeriveAccounts(seed string, n int) []*Account {
	accounts := make([]*Account, 0, n)
	for i := 0; i < n; i++ {
		var index [8]byte
		binary.BigEndian.PutUint64(index[:], uint64(i))
		accounts = append(accounts, NewAccount(append([]byte(seed), index[:]...)))
	}
	return accounts
}

func (a *Account) PublicKey() *ecdsa.PublicKey {
	return &a.key.PublicKey
}

// SignTx fills in the 65 byte [R || S || V] transaction signature.
func (a *Account) SignTx(tx *Transaction) error {
	if tx.From != a.Address {
		return errors.Errorf("account %s cannot sign for %s", a.Address, tx.From)
	}
	hash, err := tx.SigningHash()
	if err != nil {
		return err
	}
	sig, err := crypto.Sign(hash[:], a.key)
	if err != nil {
		return errors.Wrap(err, "failed to sign transaction")
	}
	tx.Signature = sig
	return nil
}

// signer recovers the address that signed hash.
func signer(hash Hash, sig []byte) (Address, error) {
	pub, err := crypto.SigToPub(hash[:], sig)
	if err != nil {
		return Address{}, err
	}
	return Address(crypto.PubkeyToAddress(*pub)), nil
}
