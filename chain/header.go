package chain

import (
	"github.com/btcgateway/chainmodel/chainhash"
	"github.com/btcgateway/chainmodel/wire"
)

// HeaderSize is the fixed serialized size of a block header in bytes.
const HeaderSize = 80

// Header is a block's fixed 80-byte header: version, previous block hash,
// merkle root, timestamp, difficulty target, and nonce.
type Header struct {
	Version    uint32
	PrevBlock  chainhash.Hash
	MerkleRoot chainhash.Hash
	Timestamp  uint32
	Bits       uint32
	Nonce      uint32
}

// BlockHash returns the header's identity hash: Hash256 of its 80-byte
// encoding.
func (h Header) BlockHash() chainhash.Hash {
	return chainhash.Hash256(encodeHeaderBytes(h))
}

// Equal reports field-wise equality.
func (h Header) Equal(other Header) bool {
	return h.Version == other.Version &&
		h.PrevBlock == other.PrevBlock &&
		h.MerkleRoot == other.MerkleRoot &&
		h.Timestamp == other.Timestamp &&
		h.Bits == other.Bits &&
		h.Nonce == other.Nonce
}

func encodeHeaderBytes(h Header) []byte {
	w := wire.NewWriter(HeaderSize)
	encodeHeader(w, h)
	return w.Bytes()
}

// encodeHeader writes h's fixed 80-byte encoding to w.
func encodeHeader(w *wire.Writer, h Header) {
	w.WriteUint32(h.Version)
	w.WriteBytes(h.PrevBlock[:])
	w.WriteBytes(h.MerkleRoot[:])
	w.WriteUint32(h.Timestamp)
	w.WriteUint32(h.Bits)
	w.WriteUint32(h.Nonce)
}

// DecodeHeader reads a fixed 80-byte header from r.
func DecodeHeader(r *wire.Reader) Header {
	version := r.ReadUint32()
	prevBlock := r.ReadBytes(chainhash.Size)
	merkleRoot := r.ReadBytes(chainhash.Size)
	timestamp := r.ReadUint32()
	bits := r.ReadUint32()
	nonce := r.ReadUint32()
	if !r.IsValid() {
		return Header{}
	}
	var prev, merkle chainhash.Hash
	copy(prev[:], prevBlock)
	copy(merkle[:], merkleRoot)
	return Header{
		Version:    version,
		PrevBlock:  prev,
		MerkleRoot: merkle,
		Timestamp:  timestamp,
		Bits:       bits,
		Nonce:      nonce,
	}
}

// EncodeHeader writes h's canonical 80-byte encoding to w.
func EncodeHeader(w *wire.Writer, h Header) {
	encodeHeader(w, h)
}
