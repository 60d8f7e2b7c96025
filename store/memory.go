package store

import (
	"sync"

	"github.com/btcgateway/chainmodel/chain"
	"github.com/btcgateway/chainmodel/chainhash"
)

// MemoryStore is an in-memory TxIndex and BlockIndex, suitable for tests
// and short-lived tooling. It holds no data once the process exits.
type MemoryStore struct {
	mu    sync.RWMutex
	txs   map[chainhash.Hash]chain.Transaction
	blocks map[chainhash.Hash]chain.Block
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		txs:    make(map[chainhash.Hash]chain.Transaction),
		blocks: make(map[chainhash.Hash]chain.Block),
	}
}

func (s *MemoryStore) PutTransaction(tx chain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs[tx.TxID()] = tx
	return nil
}

func (s *MemoryStore) GetTransaction(id chainhash.Hash) (chain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tx, ok := s.txs[id]
	if !ok {
		return chain.Transaction{}, ErrNotFound
	}
	return tx, nil
}

func (s *MemoryStore) HasTransaction(id chainhash.Hash) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.txs[id]
	return ok, nil
}

func (s *MemoryStore) PutBlock(block chain.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks[block.BlockHash()] = block
	return nil
}

func (s *MemoryStore) GetBlock(hash chainhash.Hash) (chain.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	block, ok := s.blocks[hash]
	if !ok {
		return chain.Block{}, ErrNotFound
	}
	return block, nil
}

func (s *MemoryStore) GetHeader(hash chainhash.Hash) (chain.Header, error) {
	block, err := s.GetBlock(hash)
	if err != nil {
		return chain.Header{}, err
	}
	return block.Header, nil
}

func (s *MemoryStore) HasBlock(hash chainhash.Hash) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blocks[hash]
	return ok, nil
}
