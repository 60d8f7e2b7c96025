package chain

import (
	"github.com/btcgateway/chainmodel/txscript"
	"github.com/btcgateway/chainmodel/wire"
)

// MaxSequence is the sequence value signaling that a locktime, if any, is
// not enforced by the consuming input and RBF (replace-by-fee) signaling
// is disabled.
const MaxSequence uint32 = 0xFFFFFFFF

// Input is an (outpoint, script, sequence, witness) tuple. The witness is
// logically part of the input but is carried in a separate section of the
// transaction's byte layout; see DecodeTransaction/EncodeTransaction.
type Input struct {
	Previous Outpoint
	Script   txscript.Script
	Sequence uint32
	Witness  Witness
}

// IsCoinbase reports whether this input spends the synthetic coinbase
// outpoint.
func (in Input) IsCoinbase() bool {
	return in.Previous.IsCoinbase()
}

// Equal reports structural equality across every field, including the
// witness.
func (in Input) Equal(other Input) bool {
	return in.Previous.Equal(other.Previous) &&
		in.Script.Equal(other.Script) &&
		in.Sequence == other.Sequence &&
		in.Witness.Equal(other.Witness)
}

// lastPush returns the data pushed by the final operation of the input's
// script, or nil if the script is empty, prefailed, or its last operation
// is not a push. This is the redeem script for a P2SH-spending input.
func (in Input) lastPush() []byte {
	ops := in.Script.Ops()
	if len(ops) == 0 {
		return nil
	}
	last := ops[len(ops)-1]
	if !last.IsPush() {
		return nil
	}
	return last.Data
}

// SignatureOperations returns the input's sigop contribution: the
// script's own (non-accurate) count, plus, when bip16 is set and the
// referenced prevout is a P2SH script, the accurate sigop count of the
// redeem script pushed as the input script's final element, plus, when
// bip141 is set and the referenced prevout is a witness program, the
// sigops attributable to that witness program (P2WPKH contributes 1;
// P2WSH contributes the accurate sigops of the last witness element
// decoded as a script). prevOut may be nil or invalid, in which case
// witness- and redeem-script-attributable sigops are zero.
func (in Input) SignatureOperations(bip16, bip141 bool, prevOut *Output) int {
	count := in.Script.SigOps(false)
	if prevOut == nil || !prevOut.IsValid() {
		return count
	}

	if bip16 && prevOut.Script.IsPayToScriptHash() {
		if redeem := in.lastPush(); redeem != nil {
			redeemScript := txscript.ParseRaw(redeem)
			count += redeemScript.SigOps(true)
		}
	}

	if bip141 {
		version, program, ok := prevOut.Script.IsWitnessProgram()
		if ok && version == 0 {
			switch len(program) {
			case 20:
				count++
			case 32:
				if last := in.Witness.LastElement(); last != nil {
					witnessScript := txscript.ParseRaw(last)
					count += witnessScript.SigOps(true)
				}
			}
		}
	}

	return count
}

// SerializeSize returns the encoded size of the input's prefix (outpoint,
// script, sequence) in bytes — the witness is sized separately.
func (in Input) SerializeSize() int {
	return 36 + in.Script.SerializeSize() + 4
}

// decodeInputPrefix reads previous_outpoint (36) || script || sequence
// (4 LE). The witness is not part of this encoding.
func decodeInputPrefix(r *wire.Reader) Input {
	previous := decodeOutpoint(r)
	script := txscript.Decode(r)
	sequence := r.ReadUint32()
	if !r.IsValid() {
		return Input{}
	}
	return Input{Previous: previous, Script: script, Sequence: sequence}
}

// encodeInputPrefix writes in's prefix encoding (without its witness).
func encodeInputPrefix(w *wire.Writer, in Input) {
	encodeOutpoint(w, in.Previous)
	txscript.Encode(w, in.Script)
	w.WriteUint32(in.Sequence)
}
