package store

import (
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/btcgateway/chainmodel/chain"
	"github.com/btcgateway/chainmodel/chainhash"
	"github.com/btcgateway/chainmodel/wire"
)

var (
	txBucket    = []byte("transactions")
	blockBucket = []byte("blocks")
)

// BoltStore is a bbolt-backed TxIndex and BlockIndex. It stores each
// entity under its identity hash, encoded with the same canonical codec
// used on the wire.
type BoltStore struct {
	db *bbolt.DB
}

// OpenBoltStore opens (creating if necessary) a bbolt database at path and
// ensures its two buckets exist.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening bbolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(txBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(blockBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) PutTransaction(transaction chain.Transaction) error {
	w := wire.NewWriter(0)
	chain.EncodeTransaction(w, transaction)
	id := transaction.TxID()

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(txBucket).Put(id[:], w.Bytes())
	})
}

func (s *BoltStore) GetTransaction(id chainhash.Hash) (chain.Transaction, error) {
	var raw []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(txBucket).Get(id[:])
		if v == nil {
			return ErrNotFound
		}
		raw = make([]byte, len(v))
		copy(raw, v)
		return nil
	})
	if err != nil {
		return chain.Transaction{}, err
	}

	r := wire.NewReader(raw)
	decoded := chain.DecodeTransaction(r)
	if !r.IsValid() {
		return chain.Transaction{}, fmt.Errorf("store: stored transaction %s is corrupt", id)
	}
	return decoded, nil
}

func (s *BoltStore) HasTransaction(id chainhash.Hash) (bool, error) {
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		found = tx.Bucket(txBucket).Get(id[:]) != nil
		return nil
	})
	return found, err
}

func (s *BoltStore) PutBlock(block chain.Block) error {
	w := wire.NewWriter(0)
	chain.EncodeBlock(w, block)
	hash := block.BlockHash()

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(blockBucket).Put(hash[:], w.Bytes())
	})
}

func (s *BoltStore) GetBlock(hash chainhash.Hash) (chain.Block, error) {
	var raw []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(blockBucket).Get(hash[:])
		if v == nil {
			return ErrNotFound
		}
		raw = make([]byte, len(v))
		copy(raw, v)
		return nil
	})
	if err != nil {
		return chain.Block{}, err
	}

	r := wire.NewReader(raw)
	decoded := chain.DecodeBlock(r)
	if !r.IsValid() {
		return chain.Block{}, fmt.Errorf("store: stored block %s is corrupt", hash)
	}
	return decoded, nil
}

func (s *BoltStore) GetHeader(hash chainhash.Hash) (chain.Header, error) {
	block, err := s.GetBlock(hash)
	if err != nil {
		return chain.Header{}, err
	}
	return block.Header, nil
}

func (s *BoltStore) HasBlock(hash chainhash.Hash) (bool, error) {
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		found = tx.Bucket(blockBucket).Get(hash[:]) != nil
		return nil
	})
	return found, err
}
