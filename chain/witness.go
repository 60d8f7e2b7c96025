package chain

import "github.com/btcgateway/chainmodel/wire"

// maxWitnessElementSize bounds an individual witness stack element to the
// block weight limit; no single element can legitimately exceed it.
const maxWitnessElementSize = wire.MaxBlockWeight

// Witness is an ordered stack of byte-vector elements carried alongside an
// input, outside the legacy input encoding, per BIP144.
type Witness struct {
	elements [][]byte
}

// NewWitness builds a Witness from an explicit element list.
func NewWitness(elements [][]byte) Witness {
	return Witness{elements: elements}
}

// IsEmpty reports whether the witness carries no elements — the signal
// that its owning input contributes no witness data.
func (w Witness) IsEmpty() bool {
	return len(w.elements) == 0
}

// Elements returns the witness's stack elements in order.
func (w Witness) Elements() [][]byte {
	return w.elements
}

// LastElement returns the final stack element, or nil if the witness is
// empty.
func (w Witness) LastElement() []byte {
	if len(w.elements) == 0 {
		return nil
	}
	return w.elements[len(w.elements)-1]
}

// Equal reports element-wise byte equality between two witnesses.
func (w Witness) Equal(other Witness) bool {
	if len(w.elements) != len(other.elements) {
		return false
	}
	for i := range w.elements {
		if len(w.elements[i]) != len(other.elements[i]) {
			return false
		}
		for j := range w.elements[i] {
			if w.elements[i][j] != other.elements[i][j] {
				return false
			}
		}
	}
	return true
}

// SerializeSize returns the encoded size of the witness in bytes.
func (w Witness) SerializeSize() int {
	n := wire.CompactSizeLen(uint64(len(w.elements)))
	for _, e := range w.elements {
		n += wire.VarBytesLen(len(e))
	}
	return n
}

// DecodeWitness reads a compact-size element count followed by that many
// compact-size-prefixed byte vectors. A zero count (a single 0x00 byte)
// decodes to the empty witness.
func DecodeWitness(r *wire.Reader) Witness {
	count := r.ReadCompactSize()
	if !r.IsValid() {
		return Witness{}
	}
	if count > wire.MaxBlockWeight {
		r.SetInvalid()
		return Witness{}
	}
	if count == 0 {
		return Witness{}
	}
	elements := make([][]byte, count)
	for i := range elements {
		elements[i] = r.ReadVarBytes(maxWitnessElementSize)
		if !r.IsValid() {
			return Witness{}
		}
	}
	return Witness{elements: elements}
}

// EncodeWitness writes w's canonical encoding to buf. The empty witness
// encodes as a single compact-size zero byte.
func EncodeWitness(buf *wire.Writer, w Witness) {
	buf.WriteCompactSize(uint64(len(w.elements)))
	for _, e := range w.elements {
		buf.WriteVarBytes(e)
	}
}
