// Package store defines the pluggable persistence boundary for decoded
// chain objects: lookups a validation engine or indexer needs once it has
// parsed a transaction or block, keyed by the identity hashes the chain
// package already computes. It carries no Berkeley-DB schema and no
// consensus logic of its own — callers decode with package chain, then
// hand the result here to be retrievable later.
package store

import (
	"errors"

	"github.com/btcgateway/chainmodel/chain"
	"github.com/btcgateway/chainmodel/chainhash"
)

// ErrNotFound is returned by a lookup for a hash the store has never seen.
var ErrNotFound = errors.New("store: not found")

// TxIndex stores and retrieves transactions keyed by their TxID.
type TxIndex interface {
	PutTransaction(tx chain.Transaction) error
	GetTransaction(id chainhash.Hash) (chain.Transaction, error)
	HasTransaction(id chainhash.Hash) (bool, error)
}

// BlockIndex stores and retrieves block headers and, optionally, their
// full transaction bodies, keyed by block hash.
type BlockIndex interface {
	PutBlock(block chain.Block) error
	GetBlock(hash chainhash.Hash) (chain.Block, error)
	GetHeader(hash chainhash.Hash) (chain.Header, error)
	HasBlock(hash chainhash.Hash) (bool, error)
}
