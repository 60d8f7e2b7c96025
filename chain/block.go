package chain

import (
	"github.com/btcgateway/chainmodel/chainhash"
	"github.com/btcgateway/chainmodel/wire"
)

// Block is a header followed by its full transaction list, the first of
// which must be the coinbase.
type Block struct {
	Header       Header
	Transactions []Transaction
}

// BlockHash returns the hash identity of the block: its header's hash.
func (b Block) BlockHash() chainhash.Hash {
	return b.Header.BlockHash()
}

// IsValid reports whether b decoded successfully and obeys the
// coinbase-position invariant: at least one transaction, the first of
// which is a coinbase, and no other transaction is a coinbase.
func (b Block) IsValid() bool {
	if len(b.Transactions) == 0 {
		return false
	}
	if !b.Transactions[0].IsCoinbase() {
		return false
	}
	for _, tx := range b.Transactions[1:] {
		if !tx.IsValid() {
			return false
		}
		if tx.IsCoinbase() {
			return false
		}
	}
	return true
}

// SerializeSize returns the encoded size of b in bytes.
func (b Block) SerializeSize() int {
	n := HeaderSize + wire.CompactSizeLen(uint64(len(b.Transactions)))
	for _, tx := range b.Transactions {
		n += tx.SerializeSize()
	}
	return n
}

// DecodeBlock reads a header followed by a compact-size transaction count
// and that many transactions, each in its own legacy-or-segwit form.
func DecodeBlock(r *wire.Reader) Block {
	header := DecodeHeader(r)
	if !r.IsValid() {
		return Block{}
	}
	count := r.ReadCompactSize()
	if !r.IsValid() || count > wire.MaxBlockWeight {
		return Block{}
	}
	txs := make([]Transaction, count)
	for i := range txs {
		txs[i] = DecodeTransaction(r)
		if !r.IsValid() {
			return Block{}
		}
	}
	return Block{Header: header, Transactions: txs}
}

// EncodeBlock writes b's canonical encoding to w.
func EncodeBlock(w *wire.Writer, b Block) {
	EncodeHeader(w, b.Header)
	w.WriteCompactSize(uint64(len(b.Transactions)))
	for _, tx := range b.Transactions {
		EncodeTransaction(w, tx)
	}
}
