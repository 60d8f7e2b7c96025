package chain

import (
	"github.com/btcgateway/chainmodel/txscript"
	"github.com/btcgateway/chainmodel/wire"
)

// NotFoundValue is the sentinel satoshi value, paired with an empty
// script, that denotes the "not-found" prevout used during signature
// hashing when a referenced output cannot be located.
const NotFoundValue uint64 = 0xFFFFFFFFFFFFFFFF

// Output is a (value, script) pair: the value in satoshis and the script
// that must be satisfied to spend it.
type Output struct {
	Value  uint64
	Script txscript.Script
}

// NotFoundOutput returns the sentinel output used as a placeholder when a
// referenced prevout cannot be located. Its IsValid reports false.
func NotFoundOutput() Output {
	return Output{Value: NotFoundValue}
}

// IsValid reports false only for the not-found sentinel; every other
// output, including the zero value, is valid by construction.
func (o Output) IsValid() bool {
	return !(o.Value == NotFoundValue && o.Script.Len() == 0)
}

// Equal reports whether two outputs carry the same value and structurally
// equal scripts.
func (o Output) Equal(other Output) bool {
	return o.Value == other.Value && o.Script.Equal(other.Script)
}

// SignatureOperations returns the output's sigop contribution. Under
// BIP141, legacy sigops are penalized quadratically by a factor of 4.
func (o Output) SignatureOperations(bip141 bool) int {
	count := o.Script.SigOps(false)
	if bip141 {
		return count * 4
	}
	return count
}

// IsDust reports whether the output's value is below min and it is not
// provably unspendable — unspendable outputs never enter the UTXO set and
// so are never considered dust.
func (o Output) IsDust(min uint64) bool {
	return o.Value < min && !o.Script.IsUnspendable()
}

// CommittedHash reports whether the output's script matches the BIP141
// witness-commitment pattern, returning the embedded commitment hash.
func (o Output) CommittedHash() ([32]byte, bool) {
	return o.Script.CommitmentHash()
}

// SerializeSize returns the encoded size of the output in bytes.
func (o Output) SerializeSize() int {
	return 8 + o.Script.SerializeSize()
}

// DecodeOutput reads value (8 LE) || script from r.
func DecodeOutput(r *wire.Reader) Output {
	value := r.ReadUint64()
	script := txscript.Decode(r)
	if !r.IsValid() {
		return Output{}
	}
	return Output{Value: value, Script: script}
}

// EncodeOutput writes o's canonical encoding to w.
func EncodeOutput(w *wire.Writer, o Output) {
	w.WriteUint64(o.Value)
	txscript.Encode(w, o.Script)
}
