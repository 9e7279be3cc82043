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
	"crypto/ecdsa"
	"encoding/binary"
	"sync"
	"time"

	iradix "github.com/hashicorp/go-immutable-radix"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	DefaultChainID       uint64 = 31337
	DefaultBlockInterval uint64 = 1
	DefaultAccounts             = 20
	DefaultSeed                 = "tokenspec"
)

// Header identifies a block and carries its timestamp.
type Header struct {
	Number     uint64
	Timestamp  uint64
	Hash       Hash
	ParentHash Hash
}

// Block is a mined block. Every accepted transaction is mined
// into its own block.
type Block struct {
	Header
	Transactions []*Transaction
	Receipts     []*Receipt

	state *iradix.Tree
}

type snapshot struct {
	height      uint64
	pendingTime uint64
}

// Ledger is an in-process, single-writer simulated blockchain.
type Ledger struct {
	mu sync.Mutex

	logger   zerolog.Logger
	tracer   *Tracer
	chainID  uint64
	interval uint64

	blocks []*Block

	// pendingTime is added to the timestamp of the next mined block.
	pendingTime uint64

	accounts []*Account
	keys     map[Address]*ecdsa.PublicKey

	snapshots      map[uint64]snapshot
	nextSnapshotID uint64

	calls *CallReport
}

type config struct {
	logger      zerolog.Logger
	tracer      *Tracer
	chainID     uint64
	interval    uint64
	genesisTime uint64
	accounts    int
	seed        string
}

type Option func(*config)

func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func WithTracer(tracer *Tracer) Option {
	return func(c *config) {
		c.tracer = tracer
	}
}

func WithChainID(chainID uint64) Option {
	return func(c *config) {
		c.chainID = chainID
	}
}

// WithBlockInterval sets how many seconds a block advances the clock
// when no time increase is pending.
func WithBlockInterval(seconds uint64) Option {
	return func(c *config) {
		c.interval = seconds
	}
}

// WithGenesisTime pins the genesis timestamp. By default the wall clock
// at construction time is used.
func WithGenesisTime(timestamp uint64) Option {
	return func(c *config) {
		c.genesisTime = timestamp
	}
}

// WithAccounts sets the number of funded signer accounts and the seed
// they are derived from.
func WithAccounts(n int, seed string) Option {
	return func(c *config) {
		c.accounts = n
		c.seed = seed
	}
}

func New(opts ...Option) *Ledger {
	cfg := config{
		logger:   zerolog.Nop(),
		chainID:  DefaultChainID,
		interval: DefaultBlockInterval,
		accounts: DefaultAccounts,
		seed:     DefaultSeed,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.genesisTime == 0 {
		cfg.genesisTime = uint64(time.Now().Unix())
	}
	if cfg.interval == 0 {
		cfg.interval = DefaultBlockInterval
	}
	if cfg.tracer == nil {
		cfg.tracer = NewTracer(cfg.logger)
	}

	l := &Ledger{
		logger:    cfg.logger,
		tracer:    cfg.tracer,
		chainID:   cfg.chainID,
		interval:  cfg.interval,
		keys:      map[Address]*ecdsa.PublicKey{},
		snapshots: map[uint64]snapshot{},
		calls:     newCallReport(),
	}

	for _, account := range DeriveAccounts(cfg.seed, cfg.accounts) {
		l.addAccount(account)
	}

	genesis := &Block{
		Header: Header{
			Number:    0,
			Timestamp: cfg.genesisTime,
		},
		state: iradix.New(),
	}
	genesis.Hash = blockHash(genesis)
	l.blocks = []*Block{genesis}

	return l
}

func (l *Ledger) addAccount(account *Account) {
	l.accounts = append(l.accounts, account)
	l.keys[account.Address] = account.PublicKey()
}

// AddAccount registers an externally created account as a valid signer.
func (l *Ledger) AddAccount(account *Account) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.addAccount(account)
}

// Accounts returns the signer accounts, in derivation order.
func (l *Ledger) Accounts() []*Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	accounts := make([]*Account, len(l.accounts))
	copy(accounts, l.accounts)
	return accounts
}

func (l *Ledger) ChainID() uint64 {
	return l.chainID
}

func (l *Ledger) Tracer() *Tracer {
	return l.tracer
}

func (l *Ledger) CallReport() *CallReport {
	return l.calls
}

func (l *Ledger) latest() *Block {
	return l.blocks[len(l.blocks)-1]
}

// LatestBlock returns the most recently mined block.
func (l *Ledger) LatestBlock() *Block {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.latest()
}

// BlockByNumber returns the block at the given height.
func (l *Ledger) BlockByNumber(number uint64) (*Block, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if number >= uint64(len(l.blocks)) {
		return nil, false
	}
	return l.blocks[number], true
}

// Nonce returns the number of transactions sent by a.
func (l *Ledger) Nonce(a Address) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return loadNonce(l.latest().state, a)
}

// CodeAt returns the contract deployed at a.
func (l *Ledger) CodeAt(a Address) (Code, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	code := loadCode(l.latest().state, a)
	return code, code != nil
}

// nextHeader is the header the next mined block will get.
func (l *Ledger) nextHeader() Header {
	parent := l.latest()
	step := l.interval
	if l.pendingTime > step {
		step = l.pendingTime
	}
	return Header{
		Number:     parent.Number + 1,
		Timestamp:  parent.Timestamp + step,
		ParentHash: parent.Hash,
	}
}

func (l *Ledger) appendBlock(header Header, state *iradix.Tree, tx *Transaction, receipt *Receipt) *Block {
	block := &Block{
		Header: header,
		state:  state,
	}
	if tx != nil {
		block.Transactions = []*Transaction{tx}
		block.Receipts = []*Receipt{receipt}
	}
	block.Hash = blockHash(block)

	l.pendingTime = 0
	l.blocks = append(l.blocks, block)
	blocksMined.Inc()

	return block
}

func blockHash(b *Block) Hash {
	var number, timestamp [8]byte
	binary.BigEndian.PutUint64(number[:], b.Number)
	binary.BigEndian.PutUint64(timestamp[:], b.Timestamp)

	parts := [][]byte{b.ParentHash[:], number[:], timestamp[:]}
	for _, tx := range b.Transactions {
		h := tx.Hash()
		parts = append(parts, h[:])
	}
	return Keccak256Hash(parts...)
}

// Mine mines one empty block.
func (l *Ledger) Mine(ctx context.Context) (*Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	block := l.appendBlock(l.nextHeader(), l.latest().state, nil, nil)

	l.logger.Debug().
		Uint64("number", block.Number).
		Uint64("timestamp", block.Timestamp).
		Msg("mined empty block")

	return block, nil
}

// IncreaseTime moves the timestamp of the next mined block forward by
// seconds and returns the total pending increase.
func (l *Ledger) IncreaseTime(ctx context.Context, seconds uint64) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.pendingTime += seconds
	timeIncreased.Add(float64(seconds))

	return l.pendingTime, nil
}

// Snapshot records the current chain so it can be restored with Revert.
func (l *Ledger) Snapshot() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextSnapshotID++
	l.snapshots[l.nextSnapshotID] = snapshot{
		height:      l.latest().Number,
		pendingTime: l.pendingTime,
	}
	return l.nextSnapshotID
}

// Revert restores the chain recorded by Snapshot. The snapshot and every
// snapshot taken after it are discarded. It reports whether id was known.
func (l *Ledger) Revert(id uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap, ok := l.snapshots[id]
	if !ok {
		return false
	}

	for other := range l.snapshots {
		if other >= id {
			delete(l.snapshots, other)
		}
	}

	l.blocks = l.blocks[:snap.height+1]
	l.pendingTime = snap.pendingTime

	l.logger.Debug().
		Uint64("snapshot", id).
		Uint64("height", snap.height).
		Msg("reverted to snapshot")

	return true
}

// Deploy signs and sends a transaction creating a contract running code.
// The new contract address is in the receipt.
func (l *Ledger) Deploy(ctx context.Context, from *Account, code Code, args ...interface{}) (*Receipt, error) {
	tx := &Transaction{
		ChainID: l.chainID,
		From:    from.Address,
		Nonce:   l.Nonce(from.Address),
		Method:  code.Name(),
		Args:    args,
		code:    code,
	}
	if err := from.SignTx(tx); err != nil {
		return nil, err
	}
	return l.SendTransaction(ctx, tx)
}

// Transact signs and sends a transaction invoking method on contract to.
func (l *Ledger) Transact(ctx context.Context, from *Account, to Address, method string, args ...interface{}) (*Receipt, error) {
	tx := &Transaction{
		ChainID: l.chainID,
		From:    from.Address,
		To:      to,
		Nonce:   l.Nonce(from.Address),
		Method:  method,
		Args:    args,
	}
	if err := from.SignTx(tx); err != nil {
		return nil, err
	}
	return l.SendTransaction(ctx, tx)
}

// SendTransaction executes a signed transaction and mines it into a new
// block. A transaction that fails or reverts mines nothing and leaves
// the state untouched.
func (l *Ledger) SendTransaction(ctx context.Context, tx *Transaction) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.verify(tx); err != nil {
		transactionsProcessed.WithLabelValues("rejected").Inc()
		return nil, err
	}

	parent := l.latest()
	txn := parent.state.Txn()

	nonce := loadNonce(txn, tx.From)
	if tx.Nonce != nonce {
		transactionsProcessed.WithLabelValues("rejected").Inc()
		return nil, errors.Wrapf(ErrNonceMismatch, "expected nonce %d, got %d", nonce, tx.Nonce)
	}

	header := l.nextHeader()

	var (
		code    Code
		self    Address
		result  interface{}
		execErr error
	)

	if tx.IsDeployment() {
		code = tx.code
		if code == nil {
			transactionsProcessed.WithLabelValues("rejected").Inc()
			return nil, errors.Wrap(ErrNoCode, "deployment without code")
		}
		self = contractAddress(tx.From, nonce)
		storeCode(txn, self, code)
	} else {
		self = tx.To
		code = loadCode(txn, self)
		if code == nil {
			transactionsProcessed.WithLabelValues("rejected").Inc()
			return nil, errors.Wrapf(ErrNoCode, "transaction to %s", self)
		}
	}

	c := newContext(tx.From, self, header, txn)

	if tx.IsDeployment() {
		execErr = code.Construct(c, tx.Args)
	} else {
		result, execErr = code.Invoke(c, tx.Method, tx.Args)
	}

	method := tx.Method
	if tx.IsDeployment() {
		method = "constructor"
	}

	if execErr != nil {
		_, reverted := RevertReason(execErr)
		if reverted {
			transactionsProcessed.WithLabelValues("reverted").Inc()
		} else {
			transactionsProcessed.WithLabelValues("failed").Inc()
			execErr = errors.Wrapf(execErr, "%s.%s", code.Name(), method)
		}
		l.calls.record(code.Name(), method, reverted)
		l.tracer.traceTransaction(tx, nil, execErr)
		return nil, execErr
	}

	storeNonce(txn, tx.From, nonce+1)

	txHash := tx.Hash()
	for _, log := range c.logs {
		log.BlockNumber = header.Number
		log.TxHash = txHash
	}

	receipt := &Receipt{
		TxHash:         txHash,
		BlockNumber:    header.Number,
		BlockTimestamp: header.Timestamp,
		From:           tx.From,
		To:             tx.To,
		Method:         method,
		Logs:           c.logs,
		Return:         result,
	}
	if tx.IsDeployment() {
		receipt.ContractAddress = self
	}

	l.appendBlock(header, txn.Commit(), tx, receipt)

	transactionsProcessed.WithLabelValues("success").Inc()
	l.calls.record(code.Name(), method, false)
	l.tracer.traceTransaction(tx, receipt, nil)

	return receipt, nil
}

func (l *Ledger) verify(tx *Transaction) error {
	if tx.ChainID != l.chainID {
		return errors.Wrapf(ErrInvalidChainID, "expected %d, got %d", l.chainID, tx.ChainID)
	}

	if _, ok := l.keys[tx.From]; !ok {
		return errors.Wrapf(ErrUnknownAccount, "%s", tx.From)
	}

	hash, err := tx.SigningHash()
	if err != nil {
		return err
	}
	from, err := signer(hash, tx.Signature)
	if err != nil || from != tx.From {
		return ErrInvalidSignature
	}

	return nil
}

// Call executes method against the latest block without mining
// anything. State changes made by the method are discarded.
func (l *Ledger) Call(ctx context.Context, from Address, to Address, method string, args ...interface{}) (interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	latest := l.latest()
	txn := latest.state.Txn()

	code := loadCode(txn, to)
	if code == nil {
		return nil, errors.Wrapf(ErrNoCode, "call to %s", to)
	}

	return code.Invoke(newContext(from, to, latest.Header, txn), method, args)
}

// LogFilter selects logs. Zero fields match everything.
type LogFilter struct {
	Address Address
	Event   string
}

// Logs returns the logs of every block matching filter, oldest first.
func (l *Ledger) Logs(filter LogFilter) []*Log {
	l.mu.Lock()
	defer l.mu.Unlock()

	logs := make([]*Log, 0)
	for _, block := range l.blocks {
		for _, receipt := range block.Receipts {
			for _, log := range receipt.Logs {
				if !filter.Address.IsZero() && log.Address != filter.Address {
					continue
				}
				if filter.Event != "" && log.Event != filter.Event {
					continue
				}
				logs = append(logs, log)
			}
		}
	}
	return logs
}
