package chain

import (
	"github.com/btcgateway/chainmodel/chainhash"
	"github.com/btcgateway/chainmodel/wire"
)

// segwitMarker and segwitFlag are the two bytes BIP144 inserts between a
// transaction's version and its input count to signal that witness data
// follows the outputs. DecodeTransaction does not treat a 0x00 byte
// followed by a zero flag as a marker+flag pair: it rewinds and decodes the
// legacy form instead. Any non-zero flag value is accepted as the segwit
// flag, though EncodeTransaction only ever writes segwitFlag.
const (
	segwitMarker = 0x00
	segwitFlag   = 0x01
)

// Transaction is a version, an ordered list of inputs and outputs, and a
// locktime. Inputs carry their witnesses; IsSegwit reports whether any of
// them actually has one.
type Transaction struct {
	Version  uint32
	Inputs   []Input
	Outputs  []Output
	LockTime uint32
}

// IsSegwit reports whether at least one input carries a non-empty witness,
// which is what triggers the BIP144 encoding on output.
func (tx Transaction) IsSegwit() bool {
	for _, in := range tx.Inputs {
		if !in.Witness.IsEmpty() {
			return true
		}
	}
	return false
}

// IsCoinbase reports whether tx is a coinbase transaction: exactly one
// input, spending the synthetic coinbase outpoint.
func (tx Transaction) IsCoinbase() bool {
	return len(tx.Inputs) == 1 && tx.Inputs[0].IsCoinbase()
}

// IsValid reports whether tx decoded successfully: it has at least one
// input and one output. DecodeTransaction returns the zero Transaction,
// which fails this check, on any malformed input.
func (tx Transaction) IsValid() bool {
	return len(tx.Inputs) > 0 && len(tx.Outputs) > 0
}

// SignatureOperations returns tx's total sigop contribution: the sum of
// every input's SignatureOperations plus every output's
// SignatureOperations, for the given policy flags. prevOuts, if non-nil,
// must have one entry per input, supplying the referenced prevout (or nil
// where unknown) to each input's accounting.
func (tx Transaction) SignatureOperations(bip16, bip141 bool, prevOuts []*Output) int {
	var count int
	for i, in := range tx.Inputs {
		var prevOut *Output
		if prevOuts != nil && i < len(prevOuts) {
			prevOut = prevOuts[i]
		}
		count += in.SignatureOperations(bip16, bip141, prevOut)
	}
	for _, out := range tx.Outputs {
		count += out.SignatureOperations(bip141)
	}
	return count
}

// TxID returns the hash identity of tx's legacy serialization — the
// encoding with every witness stripped. It is stable across a witness
// upgrade of an otherwise-unchanged transaction.
func (tx Transaction) TxID() chainhash.Hash {
	return chainhash.Hash256(tx.encodeLegacy())
}

// WTxID returns the hash identity of tx's segwit serialization when tx
// carries witness data, and equals TxID otherwise.
func (tx Transaction) WTxID() chainhash.Hash {
	if !tx.IsSegwit() {
		return tx.TxID()
	}
	return chainhash.Hash256(tx.encodeSegwit())
}

// SerializeSize returns the encoded size of tx in bytes, using the segwit
// encoding if tx carries any witness data.
func (tx Transaction) SerializeSize() int {
	if tx.IsSegwit() {
		return len(tx.encodeSegwit())
	}
	return len(tx.encodeLegacy())
}

// Equal reports structural equality of every field.
func (tx Transaction) Equal(other Transaction) bool {
	if tx.Version != other.Version || tx.LockTime != other.LockTime {
		return false
	}
	if len(tx.Inputs) != len(other.Inputs) || len(tx.Outputs) != len(other.Outputs) {
		return false
	}
	for i := range tx.Inputs {
		if !tx.Inputs[i].Equal(other.Inputs[i]) {
			return false
		}
	}
	for i := range tx.Outputs {
		if !tx.Outputs[i].Equal(other.Outputs[i]) {
			return false
		}
	}
	return true
}

func (tx Transaction) encodeLegacy() []byte {
	w := wire.NewWriter(0)
	w.WriteUint32(tx.Version)
	w.WriteCompactSize(uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		encodeInputPrefix(w, in)
	}
	w.WriteCompactSize(uint64(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		EncodeOutput(w, out)
	}
	w.WriteUint32(tx.LockTime)
	return w.Bytes()
}

func (tx Transaction) encodeSegwit() []byte {
	w := wire.NewWriter(0)
	w.WriteUint32(tx.Version)
	w.WriteUint8(segwitMarker)
	w.WriteUint8(segwitFlag)
	w.WriteCompactSize(uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		encodeInputPrefix(w, in)
	}
	w.WriteCompactSize(uint64(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		EncodeOutput(w, out)
	}
	for _, in := range tx.Inputs {
		EncodeWitness(w, in.Witness)
	}
	w.WriteUint32(tx.LockTime)
	return w.Bytes()
}

// EncodeTransaction writes tx's canonical encoding to w: the BIP144
// marker+flag+witness-suffix form when tx carries any witness data, and
// the legacy form otherwise.
func EncodeTransaction(w *wire.Writer, tx Transaction) {
	if tx.IsSegwit() {
		w.WriteBytes(tx.encodeSegwit())
		return
	}
	w.WriteBytes(tx.encodeLegacy())
}

// DecodeTransaction reads a transaction in either its legacy or its BIP144
// segwit form. The two are disambiguated by a single bounded lookahead:
// after the version, a 0x00 byte followed by a non-zero flag byte is
// tentatively read as a marker+flag pair, and the compact-size input count
// that should follow it is peeked. A zero input count there is the
// genuine ambiguous case — a legacy transaction with zero inputs happens
// to start its input list with the same 0x00 byte a marker would use — so
// the reader rewinds to before the marker and falls back to decoding a
// legacy transaction with zero inputs, which is what a zero-input legacy
// encoding actually is.
func DecodeTransaction(r *wire.Reader) Transaction {
	version := r.ReadUint32()
	if !r.IsValid() {
		return Transaction{}
	}

	segwit := false
	mark := r.Mark()
	if b, ok := r.PeekByte(); ok && b == segwitMarker {
		r.ReadUint8()
		flag := r.ReadUint8()
		if !r.IsValid() {
			return Transaction{}
		}
		if flag != 0 {
			countMark := r.Mark()
			count := r.ReadCompactSize()
			if !r.IsValid() {
				return Transaction{}
			}
			if count == 0 {
				r.Reset(mark)
			} else {
				r.Reset(countMark)
				segwit = true
			}
		} else {
			r.Reset(mark)
		}
	}

	inputCount := r.ReadCompactSize()
	if !r.IsValid() || inputCount > wire.MaxBlockWeight {
		return Transaction{}
	}
	inputs := make([]Input, inputCount)
	for i := range inputs {
		inputs[i] = decodeInputPrefix(r)
		if !r.IsValid() {
			return Transaction{}
		}
	}

	outputCount := r.ReadCompactSize()
	if !r.IsValid() || outputCount > wire.MaxBlockWeight {
		return Transaction{}
	}
	outputs := make([]Output, outputCount)
	for i := range outputs {
		outputs[i] = DecodeOutput(r)
		if !r.IsValid() {
			return Transaction{}
		}
	}

	if segwit {
		for i := range inputs {
			inputs[i].Witness = DecodeWitness(r)
			if !r.IsValid() {
				return Transaction{}
			}
		}
	}

	lockTime := r.ReadUint32()
	if !r.IsValid() {
		return Transaction{}
	}

	return Transaction{
		Version:  version,
		Inputs:   inputs,
		Outputs:  outputs,
		LockTime: lockTime,
	}
}
