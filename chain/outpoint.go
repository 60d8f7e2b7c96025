// Package chain implements the Bitcoin chain object model: outputs,
// inputs, witnesses, transactions, headers, and blocks, together with
// their canonical little-endian codecs, identity hashes, sigop accounting,
// and merkle-root/witness-commitment computation.
//
// Every decoder here follows the same failure model as package wire: a
// malformed encoding never panics and never returns an error value. It
// sets the underlying wire.Reader's sticky invalid flag and the caller
// checks IsValid once at the end, exactly as spec'd for the byte-I/O layer
// beneath this package.
package chain

import (
	"github.com/btcgateway/chainmodel/chainhash"
	"github.com/btcgateway/chainmodel/wire"
)

// CoinbaseIndex is the outpoint index that, together with an all-zero
// hash, denotes the synthetic coinbase outpoint.
const CoinbaseIndex = 0xFFFFFFFF

// Outpoint references a specific output of a specific transaction.
type Outpoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// CoinbaseOutpoint returns the synthetic outpoint that marks a coinbase
// input: an all-zero hash with index CoinbaseIndex.
func CoinbaseOutpoint() Outpoint {
	return Outpoint{Index: CoinbaseIndex}
}

// IsCoinbase reports whether o is the synthetic coinbase outpoint.
func (o Outpoint) IsCoinbase() bool {
	return o.Index == CoinbaseIndex && o.Hash.IsZero()
}

// Equal reports byte-wise equality of the referenced hash and index.
func (o Outpoint) Equal(other Outpoint) bool {
	return o.Hash == other.Hash && o.Index == other.Index
}

// decodeOutpoint reads a 36-byte outpoint: txid (32) || index (4 LE).
func decodeOutpoint(r *wire.Reader) Outpoint {
	hashBytes := r.ReadBytes(chainhash.Size)
	index := r.ReadUint32()
	if !r.IsValid() {
		return Outpoint{}
	}
	var hash chainhash.Hash
	copy(hash[:], hashBytes)
	return Outpoint{Hash: hash, Index: index}
}

// encodeOutpoint writes the 36-byte outpoint encoding.
func encodeOutpoint(w *wire.Writer, o Outpoint) {
	w.WriteBytes(o.Hash[:])
	w.WriteUint32(o.Index)
}
